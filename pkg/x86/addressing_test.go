package x86

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeModRM(t *testing.T) {
	// mod=01, reg=011, rm=110 -> 0b01_011_110 = 0x5E
	modrm := DecodeModRM(0x5E)
	assert.Equal(t, uint8(1), modrm.Mod)
	assert.Equal(t, uint8(3), modrm.Reg)
	assert.Equal(t, uint8(6), modrm.RM)
}

func TestModRMDisplacementSize(t *testing.T) {
	assert.Equal(t, 0, ModRM{Mod: 0, RM: 0}.displacementSize())
	assert.Equal(t, 2, ModRM{Mod: 0, RM: 6}.displacementSize(), "mod=0/rm=6 is the direct-address special case")
	assert.Equal(t, 1, ModRM{Mod: 1, RM: 0}.displacementSize())
	assert.Equal(t, 2, ModRM{Mod: 2, RM: 0}.displacementSize())
	assert.Equal(t, 0, ModRM{Mod: 3, RM: 0}.displacementSize())
}

func TestEffectiveAddressFromModRM(t *testing.T) {
	ea := effectiveAddressFromModRM(ModRM{Mod: 1, RM: 7}, signExtend8(0x05))
	assert.Equal(t, BaseBx, ea.Base)
	assert.False(t, ea.Direct)
	assert.Equal(t, uint16(5), ea.Displacement)

	direct := effectiveAddressFromModRM(ModRM{Mod: 0, RM: 6}, 0x1234)
	assert.True(t, direct.Direct)
	assert.Equal(t, uint16(0x1234), direct.Displacement)
}

func TestEffectiveAddressLinearAddressAllBases(t *testing.T) {
	var regs RegisterFile
	assert.NoError(t, regs.Write(BX, 0x0010))
	assert.NoError(t, regs.Write(SI, 0x0002))
	assert.NoError(t, regs.Write(DI, 0x0003))
	assert.NoError(t, regs.Write(BP, 0x0020))

	cases := []struct {
		base AddressBase
		want uint32
	}{
		{BaseBxSi, 0x0012},
		{BaseBxDi, 0x0013},
		{BaseBpSi, 0x0022},
		{BaseBpDi, 0x0023},
		{BaseSi, 0x0002},
		{BaseDi, 0x0003},
		{BaseBpOrDirect, 0x0020},
		{BaseBx, 0x0010},
	}
	for _, c := range cases {
		ea := EffectiveAddress{Base: c.base}
		addr, err := ea.LinearAddress(&regs)
		assert.NoError(t, err)
		assert.Equal(t, c.want, addr, "base %v", c.base)
	}
}

func TestEffectiveAddressLinearAddressWithDisplacement(t *testing.T) {
	var regs RegisterFile
	assert.NoError(t, regs.Write(BX, 0x0010))

	ea := EffectiveAddress{Base: BaseBx, Displacement: signExtend8(0xFE)} // -2
	addr, err := ea.LinearAddress(&regs)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x000E), addr)
}

func TestEffectiveAddressLinearAddressDirect(t *testing.T) {
	var regs RegisterFile
	ea := EffectiveAddress{Direct: true, Displacement: 0x00AA}
	addr, err := ea.LinearAddress(&regs)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x00AA), addr)
}

func TestEffectiveAddressString(t *testing.T) {
	assert.Equal(t, "[bx + si]", EffectiveAddress{Base: BaseBxSi}.String())
	assert.Equal(t, "[bp + 10]", EffectiveAddress{Base: BaseBpOrDirect, Displacement: 10}.String())
	assert.Equal(t, "[bx - 2]", EffectiveAddress{Base: BaseBx, Displacement: signExtend8(0xFE)}.String())
	assert.Equal(t, "[170]", EffectiveAddress{Direct: true, Displacement: 170}.String())
}

func TestSignExtend8(t *testing.T) {
	assert.Equal(t, uint16(0x00FF), signExtend8(0xFF)&0x00FF)
	assert.Equal(t, uint16(0xFFFF), signExtend8(0xFF))
	assert.Equal(t, uint16(0x007F), signExtend8(0x7F))
	assert.Equal(t, uint16(0xFF80), signExtend8(0x80))
}
