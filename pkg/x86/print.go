package x86

import (
	"fmt"
	"strings"
)

// BitsHeader is the directive a disassembly listing opens with, matching
// the assemblers that would need to reassemble it.
const BitsHeader = "bits 16"

// format renders a decoded instruction's disassembly text. ip is the
// address it was fetched from, needed to compute a jump or loop's
// "$+2+offset" target notation.
func format(instr DecodedInstruction, ip uint16) string {
	switch {
	case instr.IsHalt:
		return "hlt"
	case instr.IsJump:
		return fmt.Sprintf("%s $+2%+d", instr.JumpCond, instr.JumpOffset)
	case instr.IsLoop:
		return fmt.Sprintf("%s $+2%+d", instr.LoopKind, instr.JumpOffset)
	default:
		needsPrefix := instr.Src.Kind == OperandImmediate && instr.Dst.Kind == OperandMemory
		dst := formatOperand(instr.Dst, instr.Wide, false)
		src := formatOperand(instr.Src, instr.Wide, needsPrefix)
		return fmt.Sprintf("%s %s, %s", instr.Kind, dst, src)
	}
}

func formatOperand(op Operand, wide bool, needsSizePrefix bool) string {
	switch op.Kind {
	case OperandRegister:
		return op.Reg.String()
	case OperandMemory:
		return op.Mem.String()
	case OperandImmediate:
		if needsSizePrefix {
			if wide {
				return fmt.Sprintf("word %s", formatImmediate(op))
			}
			return fmt.Sprintf("byte %s", formatImmediate(op))
		}
		return formatImmediate(op)
	default:
		return "?"
	}
}

// formatImmediate renders an immediate operand's value, printing the
// signed interpretation for a sign-extended byte immediate (the 0x83
// arithmetic-immediate family) so e.g. "sub cx, -2" matches the encoded
// byte rather than its zero-padded word magnitude.
func formatImmediate(op Operand) string {
	if op.ImmSigned {
		return fmt.Sprintf("%d", int16(op.Imm))
	}
	return fmt.Sprintf("%d", op.Imm)
}

// finalStateRegisters lists the general-purpose registers in the order a
// final-state dump conventionally shows them.
var finalStateRegisters = []RegisterName{AX, BX, CX, DX, SP, BP, SI, DI}

var flagLetters = []struct {
	get   func(Flags) bool
	label string
}{
	{Flags.GetCarry, "C"},
	{Flags.GetParity, "P"},
	{Flags.GetAuxCarry, "A"},
	{Flags.GetZero, "Z"},
	{Flags.GetSign, "S"},
	{Flags.GetOverflow, "O"},
}

func formatFlags(f Flags) string {
	var b strings.Builder
	for _, fl := range flagLetters {
		if fl.get(f) {
			b.WriteString(fl.label)
		}
	}
	return b.String()
}

// PrintFinalState renders the machine's registers, flags and instruction
// pointer the way a "run to completion and show me the state" invocation
// reports its result.
func PrintFinalState(m *Machine) []string {
	lines := make([]string, 0, len(finalStateRegisters)+2)
	for _, reg := range finalStateRegisters {
		value, err := m.Registers.Read(reg)
		if err != nil {
			continue
		}
		if value == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("      %s: 0x%04x (%d)", reg, value, value))
	}
	lines = append(lines, fmt.Sprintf("      ip: 0x%04x (%d)", m.IP(), m.IP()))
	if flags := formatFlags(m.Flags); flags != "" {
		lines = append(lines, fmt.Sprintf("   flags: %s", flags))
	}
	return lines
}
