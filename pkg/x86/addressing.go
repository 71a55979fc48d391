package x86

import "fmt"

// AddressBase names the register or register pair that seeds an effective
// address calculation, mirroring the eight R/M encodings of the ModR/M
// byte's memory forms.
type AddressBase uint8

const (
	BaseBxSi AddressBase = iota // [BX+SI]
	BaseBxDi                    // [BX+DI]
	BaseBpSi                    // [BP+SI]
	BaseBpDi                    // [BP+DI]
	BaseSi                      // [SI]
	BaseDi                      // [DI]
	BaseBpOrDirect               // [BP], or a direct address when Mod==0
	BaseBx                       // [BX]
)

var addressBaseNames = map[AddressBase]string{
	BaseBxSi: "bx + si", BaseBxDi: "bx + di",
	BaseBpSi: "bp + si", BaseBpDi: "bp + di",
	BaseSi: "si", BaseDi: "di",
	BaseBpOrDirect: "bp", BaseBx: "bx",
}

func (b AddressBase) String() string {
	if name, ok := addressBaseNames[b]; ok {
		return name
	}
	return "unknown"
}

// baseTable maps a ModR/M R/M field (0-7) to the base it seeds.
var baseTable = [8]AddressBase{BaseBxSi, BaseBxDi, BaseBpSi, BaseBpDi, BaseSi, BaseDi, BaseBpOrDirect, BaseBx}

// EffectiveAddress is the decoded form of a memory operand: a base
// register pair (or a direct address, the Mod==0/RM==6 special case) plus
// a displacement. There are 24 distinct forms — 8 base shapes times 3
// displacement widths (none, 8-bit, 16-bit) — though Mod==0/RM==6 only
// ever appears with a 16-bit displacement standing in for a bare address.
type EffectiveAddress struct {
	Base         AddressBase
	Direct       bool   // true only for the Mod==0, R/M==6 direct-address form
	Displacement uint16 // sign-extended 8-bit, or raw 16-bit displacement/address
}

// effectiveAddressFromModRM decodes the memory-operand form of a ModR/M
// byte. modrm.Mod must not be 3 (register addressing has no effective
// address). The displacement, if any, has already been fetched and
// sign-extended by the caller.
func effectiveAddressFromModRM(modrm ModRM, displacement uint16) EffectiveAddress {
	base := baseTable[modrm.RM]
	direct := modrm.Mod == 0 && modrm.RM == 6
	return EffectiveAddress{Base: base, Direct: direct, Displacement: displacement}
}

// LinearAddress resolves an EffectiveAddress against the current register
// file. The simulator has no segmentation model: the result is the raw
// 16-bit offset computation, zero-extended into the flat memory space.
func (ea EffectiveAddress) LinearAddress(regs *RegisterFile) (uint32, error) {
	if ea.Direct {
		return uint32(ea.Displacement), nil
	}

	var sum uint16
	switch ea.Base {
	case BaseBxSi:
		sum = must(regs.Read(BX)) + must(regs.Read(SI))
	case BaseBxDi:
		sum = must(regs.Read(BX)) + must(regs.Read(DI))
	case BaseBpSi:
		sum = must(regs.Read(BP)) + must(regs.Read(SI))
	case BaseBpDi:
		sum = must(regs.Read(BP)) + must(regs.Read(DI))
	case BaseSi:
		sum = must(regs.Read(SI))
	case BaseDi:
		sum = must(regs.Read(DI))
	case BaseBpOrDirect:
		sum = must(regs.Read(BP))
	case BaseBx:
		sum = must(regs.Read(BX))
	default:
		return 0, fmt.Errorf("%w: address base %v", ErrUnimplementedOperandForm, ea.Base)
	}

	return uint32(sum + ea.Displacement), nil
}

// must unwraps a RegisterFile read that is only ever called with one of
// the fixed base registers above, which can never fail.
func must(value uint16, err error) uint16 {
	if err != nil {
		panic(err)
	}
	return value
}

// String renders the effective address the way a disassembler would:
// "[bx + si]", "[bp + si + 10]", "[bx - 2]", or "[1234]" for a direct
// address.
func (ea EffectiveAddress) String() string {
	if ea.Direct {
		return fmt.Sprintf("[%d]", ea.Displacement)
	}
	if ea.Displacement == 0 {
		return fmt.Sprintf("[%s]", ea.Base)
	}
	disp := int16(ea.Displacement)
	if disp < 0 {
		return fmt.Sprintf("[%s - %d]", ea.Base, -disp)
	}
	return fmt.Sprintf("[%s + %d]", ea.Base, disp)
}

// ModRM is the decoded form of a ModR/M byte: Mod selects the addressing
// form, Reg names the "reg" operand (a register, or an opcode extension
// for the arithmetic-immediate family), and RM names the second operand,
// either a register (Mod==3) or the seed of an effective address.
type ModRM struct {
	Mod uint8
	Reg uint8
	RM  uint8
}

// DecodeModRM splits a raw ModR/M byte into its three fields.
func DecodeModRM(b uint8) ModRM {
	return ModRM{
		Mod: (b >> 6) & 0x03,
		Reg: (b >> 3) & 0x07,
		RM:  b & 0x07,
	}
}

// displacementSize reports how many displacement bytes follow a ModR/M
// byte: 0 for register addressing or Mod==0 (except the RM==6 direct
// address special case, which borrows the 16-bit width), 1 for Mod==1,
// and 2 for Mod==2 or the direct-address special case.
func (m ModRM) displacementSize() int {
	switch m.Mod {
	case 0:
		if m.RM == 6 {
			return 2
		}
		return 0
	case 1:
		return 1
	case 2:
		return 2
	default:
		return 0
	}
}

// signExtend8 widens a byte to a 16-bit value, preserving its sign — the
// rule every 8-bit displacement and immediate in this instruction set is
// fetched under.
func signExtend8(b uint8) uint16 {
	return uint16(int16(int8(b)))
}
