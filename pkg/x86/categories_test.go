package x86

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdatesArithmeticFlags(t *testing.T) {
	assert.True(t, UpdatesArithmeticFlags(KindAdd))
	assert.True(t, UpdatesArithmeticFlags(KindCmp))
	assert.False(t, UpdatesArithmeticFlags(KindMov))
}

func TestWritesDestinationMnemonics(t *testing.T) {
	assert.True(t, WritesDestinationMnemonics.Contains("mov"))
	assert.True(t, WritesDestinationMnemonics.Contains("add"))
	assert.False(t, WritesDestinationMnemonics.Contains("cmp"), "cmp discards its result")
}

func TestBranchingMnemonicsIsUnionOfJumpsAndLoops(t *testing.T) {
	assert.True(t, BranchingMnemonics.Contains("je"))
	assert.True(t, BranchingMnemonics.Contains("loop"))
	assert.True(t, BranchingMnemonics.Contains("jcxz"))
	assert.False(t, BranchingMnemonics.Contains("mov"))
}

func TestConditionalJumpMnemonicsCoversAllSixteen(t *testing.T) {
	assert.Equal(t, 16, ConditionalJumpMnemonics.Size())
}

func TestLoopMnemonicsCoversAllFour(t *testing.T) {
	assert.Equal(t, 4, LoopMnemonics.Size())
}

func TestConditionalJumpMnemonicsUsesCanonicalNames(t *testing.T) {
	assert.True(t, ConditionalJumpMnemonics.Contains("jnbe"))
	assert.True(t, ConditionalJumpMnemonics.Contains("jnl"))
	assert.True(t, ConditionalJumpMnemonics.Contains("jnle"))
	assert.False(t, ConditionalJumpMnemonics.Contains("ja"), "ja is a print alias, not the canonical mnemonic")
}

func TestDecodedInstructionMnemonic(t *testing.T) {
	mem, err := NewMemory(16, nil)
	assert.NoError(t, err)
	assert.NoError(t, mem.LoadProgram([]byte{0x74, 0x02})) // je $+2+2
	instr, err := decode(mem, 0)
	assert.NoError(t, err)
	assert.Equal(t, "je", instr.mnemonic())
	assert.True(t, BranchingMnemonics.Contains(instr.mnemonic()))
}
