// Package x86 implements an instruction-set simulator for the 16-bit
// Intel 8086 family.
//
// It decodes a flat byte image of a program one instruction at a time and
// either prints the disassembly in a syntax compatible with a 16-bit
// flat-mode assembler, or executes the instruction against a simulated
// Machine (general-purpose registers, segment registers, an instruction
// pointer, status flags, and a one-megabyte byte-addressable memory).
//
// The decoder covers the MOV/ADD/ADC/SUB/SBB/CMP families, conditional
// jumps, the LOOP family, and HLT. Segmentation math is out of scope: the
// simulator addresses memory with a flat 20-bit-addressable offset rather
// than computing segment:offset linear addresses.
//
// Example usage:
//
//	logger := log.New()
//	mem, err := x86.NewMemory(x86.DefaultMemorySize, logger)
//	if err != nil {
//	    logger.Fatal("creating memory", log.Err(err))
//	}
//	m, err := x86.NewMachine(mem)
//	if err != nil {
//	    logger.Fatal("creating machine", log.Err(err))
//	}
//	if err := x86.LoadProgram(m, program); err != nil {
//	    logger.Fatal("loading program", log.Err(err))
//	}
//	if err := x86.Run(m, x86.ModeSimulate); err != nil {
//	    logger.Fatal("running program", log.Err(err))
//	}
package x86
