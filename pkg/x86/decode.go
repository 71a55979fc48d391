package x86

import "fmt"

// Mode selects whether Step disassembles an instruction or executes it.
type Mode uint8

const (
	// ModeSimulate decodes and fully executes each instruction.
	ModeSimulate Mode = iota
	// ModePrint decodes each instruction and renders its disassembly
	// text without mutating registers, flags, or memory. The
	// instruction pointer still advances, since that is how the decoder
	// walks across a whole program.
	ModePrint
)

// OperandKind names what an Operand refers to.
type OperandKind uint8

const (
	OperandRegister OperandKind = iota
	OperandMemory
	OperandImmediate
)

// Operand is a single decoded instruction operand.
type Operand struct {
	Kind OperandKind
	Reg  RegisterName
	Mem  EffectiveAddress
	Imm  uint16
	// ImmSigned marks an OperandImmediate whose Imm bit pattern is a
	// sign-extended byte (the 0x83 arithmetic-immediate family), so it
	// prints as a signed value rather than its unsigned word magnitude.
	ImmSigned bool
}

// DecodedInstruction is the fully decoded form of one instruction: enough
// to both execute it against a Machine and render its disassembly text,
// without decoding it twice.
type DecodedInstruction struct {
	Length uint16
	Wide   bool
	Kind   InstructionKind

	Dst Operand
	Src Operand

	IsJump     bool
	JumpCond   JumpCondition
	IsLoop     bool
	LoopKind   LoopKind
	JumpOffset int16 // signed displacement, relative to the address of the following instruction

	IsHalt bool
}

// mnemonic returns the bare instruction mnemonic, independent of
// operands, for classification against the category sets in
// categories.go.
func (instr DecodedInstruction) mnemonic() string {
	switch {
	case instr.IsHalt:
		return "hlt"
	case instr.IsJump:
		return instr.JumpCond.String()
	case instr.IsLoop:
		return instr.LoopKind.String()
	default:
		return instr.Kind.String()
	}
}

func fetchByte(mem *Memory, addr uint32) (uint8, error) {
	b, err := mem.Read8(addr)
	if err != nil {
		return 0, fmt.Errorf("%w: at 0x%05X", ErrUnexpectedEndOfStream, addr)
	}
	return b, nil
}

func fetchWord(mem *Memory, addr uint32) (uint16, error) {
	low, err := fetchByte(mem, addr)
	if err != nil {
		return 0, err
	}
	high, err := fetchByte(mem, addr+1)
	if err != nil {
		return 0, err
	}
	return uint16(high)<<8 | uint16(low), nil
}

func pickAccumulator(wide bool) RegisterName {
	if wide {
		return AX
	}
	return AL
}

// decodeModRMOperand reads a ModR/M byte's trailing displacement (if any)
// and returns the operand it names: a register for Mod==3, otherwise an
// effective address. pos is advanced past any displacement bytes.
func decodeModRMOperand(mem *Memory, modrm ModRM, wide bool, pos *uint32) (Operand, error) {
	if modrm.Mod == 3 {
		return Operand{Kind: OperandRegister, Reg: RegisterFromField(modrm.RM, wide)}, nil
	}

	var disp uint16
	switch modrm.displacementSize() {
	case 1:
		b, err := fetchByte(mem, *pos)
		if err != nil {
			return Operand{}, err
		}
		disp = signExtend8(b)
		*pos++
	case 2:
		w, err := fetchWord(mem, *pos)
		if err != nil {
			return Operand{}, err
		}
		disp = w
		*pos += 2
	}

	return Operand{Kind: OperandMemory, Mem: effectiveAddressFromModRM(modrm, disp)}, nil
}

// decode reads and classifies the instruction starting at ip, without
// mutating the machine. Both Step's Simulate and Print paths share it.
func decode(mem *Memory, ip uint32) (DecodedInstruction, error) {
	opcodeByte, err := fetchByte(mem, ip)
	if err != nil {
		return DecodedInstruction{}, err
	}

	if entry, ok := fullByteOpcodes[opcodeByte]; ok {
		return decodeFullByte(mem, ip, opcodeByte, entry)
	}

	decoded, ok := lookupPrimary(opcodeByte)
	if !ok {
		return DecodedInstruction{}, fmt.Errorf("%w: 0x%02X", ErrUnknownOpcode, opcodeByte)
	}

	switch decoded.Opcode {
	case RegisterMemoryToFromRegister:
		return decodeRegMemToFromReg(mem, ip, opcodeByte, decoded.Kind)
	case ImmediateToRegisterMemory:
		return decodeImmToRegMem(mem, ip, opcodeByte, decoded.Kind)
	case ImmediateToRegister:
		return decodeImmToReg(mem, ip, opcodeByte)
	case MemoryAccumulator:
		return decodeMemAccumulator(mem, ip, opcodeByte, decoded.Kind)
	default:
		return DecodedInstruction{}, fmt.Errorf("%w: opcode kind %v", ErrUnimplementedOperandForm, decoded.Opcode)
	}
}

func decodeFullByte(mem *Memory, ip uint32, opcodeByte uint8, entry fullByteEntry) (DecodedInstruction, error) {
	switch entry.kind {
	case fullByteHalt:
		return DecodedInstruction{Length: 1, IsHalt: true}, nil

	case fullByteJump, fullByteLoop:
		pos := ip + 1
		rel, err := fetchByte(mem, pos)
		if err != nil {
			return DecodedInstruction{}, err
		}
		pos++
		instr := DecodedInstruction{
			Length:     uint16(pos - ip),
			JumpOffset: int16(int8(rel)),
		}
		if entry.kind == fullByteJump {
			instr.IsJump = true
			instr.JumpCond = entry.condition
		} else {
			instr.IsLoop = true
			instr.LoopKind = entry.loop
		}
		return instr, nil

	default:
		return DecodedInstruction{}, fmt.Errorf("%w: 0x%02X", ErrUnknownOpcode, opcodeByte)
	}
}

func decodeRegMemToFromReg(mem *Memory, ip uint32, opcodeByte uint8, kind InstructionKind) (DecodedInstruction, error) {
	direction := opcodeByte&0x02 != 0
	wide := opcodeByte&0x01 != 0

	pos := ip + 1
	modrmByte, err := fetchByte(mem, pos)
	if err != nil {
		return DecodedInstruction{}, err
	}
	pos++
	modrm := DecodeModRM(modrmByte)

	regOperand := Operand{Kind: OperandRegister, Reg: RegisterFromField(modrm.Reg, wide)}
	rmOperand, err := decodeModRMOperand(mem, modrm, wide, &pos)
	if err != nil {
		return DecodedInstruction{}, err
	}

	dst, src := rmOperand, regOperand
	if direction {
		dst, src = regOperand, rmOperand
	}

	return DecodedInstruction{Length: uint16(pos - ip), Wide: wide, Kind: kind, Dst: dst, Src: src}, nil
}

func decodeImmToRegMem(mem *Memory, ip uint32, opcodeByte uint8, kind InstructionKind) (DecodedInstruction, error) {
	wide := opcodeByte&0x01 != 0
	signExtendImm := kind == KindDerived && opcodeByte&0x02 != 0

	pos := ip + 1
	modrmByte, err := fetchByte(mem, pos)
	if err != nil {
		return DecodedInstruction{}, err
	}
	pos++
	modrm := DecodeModRM(modrmByte)

	if kind == KindDerived {
		resolvedKind, ok := resolveDerived(modrm.Reg)
		if !ok {
			return DecodedInstruction{}, fmt.Errorf("%w: arithmetic-immediate reg %03b", ErrUnimplementedOperandForm, modrm.Reg)
		}
		kind = resolvedKind
	}

	dst, err := decodeModRMOperand(mem, modrm, wide, &pos)
	if err != nil {
		return DecodedInstruction{}, err
	}

	var imm uint16
	var immSigned bool
	switch {
	case !wide:
		b, ferr := fetchByte(mem, pos)
		if ferr != nil {
			return DecodedInstruction{}, ferr
		}
		imm = uint16(b)
		pos++
	case signExtendImm:
		b, ferr := fetchByte(mem, pos)
		if ferr != nil {
			return DecodedInstruction{}, ferr
		}
		imm = signExtend8(b)
		immSigned = true
		pos++
	default:
		w, ferr := fetchWord(mem, pos)
		if ferr != nil {
			return DecodedInstruction{}, ferr
		}
		imm = w
		pos += 2
	}

	src := Operand{Kind: OperandImmediate, Imm: imm, ImmSigned: immSigned}
	return DecodedInstruction{Length: uint16(pos - ip), Wide: wide, Kind: kind, Dst: dst, Src: src}, nil
}

func decodeImmToReg(mem *Memory, ip uint32, opcodeByte uint8) (DecodedInstruction, error) {
	wide := opcodeByte&0x08 != 0
	reg := RegisterFromField(opcodeByte&0x07, wide)

	pos := ip + 1
	var imm uint16
	if wide {
		w, err := fetchWord(mem, pos)
		if err != nil {
			return DecodedInstruction{}, err
		}
		imm = w
		pos += 2
	} else {
		b, err := fetchByte(mem, pos)
		if err != nil {
			return DecodedInstruction{}, err
		}
		imm = uint16(b)
		pos++
	}

	dst := Operand{Kind: OperandRegister, Reg: reg}
	src := Operand{Kind: OperandImmediate, Imm: imm}
	return DecodedInstruction{Length: uint16(pos - ip), Wide: wide, Kind: KindMov, Dst: dst, Src: src}, nil
}

func decodeMemAccumulator(mem *Memory, ip uint32, opcodeByte uint8, kind InstructionKind) (DecodedInstruction, error) {
	wide := opcodeByte&0x01 != 0
	acc := Operand{Kind: OperandRegister, Reg: pickAccumulator(wide)}
	pos := ip + 1

	if kind == KindMov {
		toMemory := opcodeByte&0x02 != 0
		addr, err := fetchWord(mem, pos)
		if err != nil {
			return DecodedInstruction{}, err
		}
		pos += 2
		memOperand := Operand{Kind: OperandMemory, Mem: EffectiveAddress{Direct: true, Displacement: addr}}

		dst, src := acc, memOperand
		if toMemory {
			dst, src = memOperand, acc
		}
		return DecodedInstruction{Length: uint16(pos - ip), Wide: wide, Kind: kind, Dst: dst, Src: src}, nil
	}

	var imm uint16
	if wide {
		w, err := fetchWord(mem, pos)
		if err != nil {
			return DecodedInstruction{}, err
		}
		imm = w
		pos += 2
	} else {
		b, err := fetchByte(mem, pos)
		if err != nil {
			return DecodedInstruction{}, err
		}
		imm = uint16(b)
		pos++
	}

	src := Operand{Kind: OperandImmediate, Imm: imm}
	return DecodedInstruction{Length: uint16(pos - ip), Wide: wide, Kind: kind, Dst: acc, Src: src}, nil
}

// Step decodes the instruction at the machine's current IP and either
// executes it (ModeSimulate) or renders its disassembly text (ModePrint),
// returning that text either way. IP advances past the decoded
// instruction, with two exceptions in Simulate mode: a jump or loop
// instruction's executor repositions IP itself, and HLT leaves IP
// unchanged and returns ErrHaltReached.
func Step(m *Machine, mode Mode) (string, error) {
	ip := m.IP()
	instr, err := decode(m.Memory, uint32(ip))
	if err != nil {
		return "", err
	}

	text := format(instr, ip)

	if instr.IsHalt {
		if mode == ModeSimulate {
			return text, ErrHaltReached
		}
		m.SetIP(ip + instr.Length)
		return text, nil
	}

	if mode == ModePrint {
		m.SetIP(ip + instr.Length)
		return text, nil
	}

	if err := execute(m, instr, ip); err != nil {
		return text, err
	}
	if !BranchingMnemonics.Contains(instr.mnemonic()) {
		m.SetIP(ip + instr.Length)
	}
	return text, nil
}

// Run repeatedly calls Step in the given mode until HLT is reached or an
// error occurs. A clean HLT is reported as a nil error: callers that need
// the individual disassembly or trace lines should drive Step themselves.
func Run(m *Machine, mode Mode) error {
	for {
		text, err := Step(m, mode)
		if err == nil {
			if mode == ModePrint && text == "hlt" {
				return nil
			}
			continue
		}
		if isHalt(err) {
			return nil
		}
		return err
	}
}

func isHalt(err error) bool {
	return err == ErrHaltReached
}
