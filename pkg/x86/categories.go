package x86

import "github.com/retroenv/sim8086/set"

// arithmeticMnemonics names the instructions whose result updates the
// arithmetic flags (Carry, AuxCarry, Overflow) in addition to Sign, Zero
// and Parity. MOV never touches flags at all, so it is excluded.
var arithmeticMnemonics = set.NewFromSlice([]string{"add", "adc", "sub", "sbb", "cmp"})

// WritesDestinationMnemonics names the instructions that store their
// result back into the destination operand. CMP computes the same
// subtraction as SUB but discards the result, so it is excluded.
var WritesDestinationMnemonics = set.NewFromSlice([]string{"mov", "add", "adc", "sub", "sbb"})

// ConditionalJumpMnemonics names every conditional-jump opcode this
// simulator decodes.
var ConditionalJumpMnemonics = set.NewFromSlice([]string{
	"jo", "jno", "jb", "jnb", "je", "jne", "jbe", "jnbe",
	"js", "jns", "jp", "jnp", "jl", "jnl", "jle", "jnle",
})

// LoopMnemonics names the LOOP-family opcodes: three CX-decrementing
// variants plus JCXZ, which tests CX without decrementing it.
var LoopMnemonics = set.NewFromSlice([]string{"loop", "loopz", "loopnz", "jcxz"})

// BranchingMnemonics is the union of every instruction that can redirect
// control flow away from the next sequential byte. Disassemblers use this
// to find basic block boundaries.
var BranchingMnemonics = ConditionalJumpMnemonics.Union(LoopMnemonics)

// UpdatesArithmeticFlags reports whether kind's executor runs through
// applyArith8/applyArith16, as opposed to MOV, which leaves every flag
// untouched.
func UpdatesArithmeticFlags(kind InstructionKind) bool {
	return arithmeticMnemonics.Contains(kind.String())
}
