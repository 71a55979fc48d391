package x86

// InstructionKind names the operation a decoded opcode performs, once any
// ambiguity inherent in the raw opcode byte has been resolved.
type InstructionKind uint8

const (
	// KindNone is the zero value: no operation, or an operation (HALT)
	// that carries no further instruction-kind distinction.
	KindNone InstructionKind = iota
	KindMov
	KindAdd
	KindAdc
	KindSub
	KindSbb
	KindCmp
	// KindDerived marks the 0b100000 arithmetic-immediate opcode family,
	// whose actual operation is only known once the ModR/M Reg field (the
	// opcode extension) has been read: 000=Add, 010=Adc, 101=Sub,
	// 011=Sbb, 111=Cmp.
	KindDerived
)

var instructionKindNames = map[InstructionKind]string{
	KindNone: "none", KindMov: "mov", KindAdd: "add", KindAdc: "adc",
	KindSub: "sub", KindSbb: "sbb", KindCmp: "cmp", KindDerived: "derived",
}

func (k InstructionKind) String() string {
	if name, ok := instructionKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// resolveDerived maps the ModR/M Reg (opcode extension) field of a
// 0b100000 arithmetic-immediate instruction to the real InstructionKind.
// Reg values other than the five listed have no instruction in this set.
func resolveDerived(reg uint8) (InstructionKind, bool) {
	switch reg {
	case 0b000:
		return KindAdd, true
	case 0b010:
		return KindAdc, true
	case 0b101:
		return KindSub, true
	case 0b011:
		return KindSbb, true
	case 0b111:
		return KindCmp, true
	default:
		return KindNone, false
	}
}

// OpcodeKind names the operand-encoding shape of a decoded opcode: which
// bytes follow the opcode byte and how they resolve to operands.
type OpcodeKind uint8

const (
	// KindOpUnknown marks a byte that decoded to nothing.
	KindOpUnknown OpcodeKind = iota
	// RegisterMemoryToFromRegister: a ModR/M byte follows; D selects
	// direction (reg<-r/m or r/m<-reg) and W selects operand width.
	RegisterMemoryToFromRegister
	// ImmediateToRegisterMemory: a ModR/M byte (Reg holds an opcode
	// extension for the Derived family) followed by an immediate.
	ImmediateToRegisterMemory
	// ImmediateToRegister: the short MOV-immediate form, register
	// selected by the low 3 bits of the opcode byte itself.
	ImmediateToRegister
	// MemoryAccumulator: AL/AX with no ModR/M byte, either to/from a
	// 16-bit direct address (MOV's moffs forms) or with an immediate
	// source (ADD/ADC/SUB/SBB/CMP's accumulator forms).
	MemoryAccumulator
	// Jump: a conditional jump or LOOP family opcode, one signed 8-bit
	// displacement follows.
	Jump
	// Halt: HLT, no operands.
	Halt
)

var opcodeKindNames = map[OpcodeKind]string{
	KindOpUnknown:                "unknown",
	RegisterMemoryToFromRegister: "register_memory_to_from_register",
	ImmediateToRegisterMemory:    "immediate_to_register_memory",
	ImmediateToRegister:          "immediate_to_register",
	MemoryAccumulator:            "memory_accumulator",
	Jump:                         "jump",
	Halt:                         "halt",
}

func (k OpcodeKind) String() string {
	if name, ok := opcodeKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// DecodedOpcode pairs the operand-encoding shape of an opcode byte with
// the operation it performs.
type DecodedOpcode struct {
	Opcode OpcodeKind
	Kind   InstructionKind
}
