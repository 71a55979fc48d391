package x86

import "errors"

// Sentinel errors for the error kinds named in the simulator's error
// handling design. All of them are terminal: the decode-dispatch loop
// stops as soon as one is returned, wraps it with positional context via
// fmt.Errorf("...: %w", ...), and the caller exits with a nonzero status.
var (
	// ErrUnknownOpcode is returned when neither the primary 6-bit opcode
	// table nor the full-byte opcode table recognizes the instruction
	// byte at IP.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrUnimplementedOperandForm is returned when a decoded instruction
	// has a form with no decoder or executor, such as an
	// arithmetic-immediate opcode extension other than ADD/ADC/SUB/SBB/CMP.
	ErrUnimplementedOperandForm = errors.New("unimplemented operand form")

	// ErrUnexpectedEndOfStream is returned when a required second byte,
	// displacement, or immediate lies beyond the memory extent reachable
	// from IP.
	ErrUnexpectedEndOfStream = errors.New("unexpected end of instruction stream")

	// ErrMemoryOutOfRange is returned when a computed memory index is
	// negative or falls at or beyond the memory size.
	ErrMemoryOutOfRange = errors.New("memory access out of range")

	// ErrUnknownRegister is returned on a read or write to a register
	// name that is not part of the enumerated register set.
	ErrUnknownRegister = errors.New("unknown register")

	// ErrHaltReached signals normal termination via the HLT opcode. It is
	// not a failure: callers should treat it as a successful run.
	ErrHaltReached = errors.New("halt reached")
)
