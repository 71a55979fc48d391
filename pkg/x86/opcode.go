package x86

// haltOpcode is the single-byte HLT instruction.
const haltOpcode uint8 = 0xF4

// primaryOpcodes indexes the 64 possible values of an opcode byte's top 6
// bits. Most instruction bytes are fully classified by these 6 bits alone
// (the low 1-2 bits select direction/width and are read separately by the
// decoder); the entries at positions not listed below are zero-valued
// (KindOpUnknown) and fall through to ErrUnknownOpcode unless the
// full-byte table below claims the byte first.
var primaryOpcodes = [64]DecodedOpcode{
	0x00: {RegisterMemoryToFromRegister, KindAdd}, // 000000xx ADD r/m, r
	0x01: {MemoryAccumulator, KindAdd},             // 0000010w ADD acc, imm

	0x04: {RegisterMemoryToFromRegister, KindAdc}, // 000100xx ADC r/m, r
	0x05: {MemoryAccumulator, KindAdc},             // 0001010w ADC acc, imm
	0x06: {RegisterMemoryToFromRegister, KindSbb}, // 000110xx SBB r/m, r
	0x07: {MemoryAccumulator, KindSbb},             // 0001110w SBB acc, imm

	0x0A: {RegisterMemoryToFromRegister, KindSub}, // 001010xx SUB r/m, r
	0x0B: {MemoryAccumulator, KindSub},             // 0010110w SUB acc, imm
	0x0E: {RegisterMemoryToFromRegister, KindCmp}, // 001110xx CMP r/m, r
	0x0F: {MemoryAccumulator, KindCmp},             // 0011110w CMP acc, imm

	0x20: {ImmediateToRegisterMemory, KindDerived}, // 100000xx ADD/ADC/SUB/SBB/CMP r/m, imm

	0x22: {RegisterMemoryToFromRegister, KindMov}, // 100010xx MOV r/m, r
	0x28: {MemoryAccumulator, KindMov},             // 1010000w / 1010001w MOV acc, moffs

	0x2C: {ImmediateToRegister, KindMov}, // 1011wrrr (w=0, reg 000-011) MOV reg, imm
	0x2D: {ImmediateToRegister, KindMov}, // 1011wrrr (w=0, reg 100-111) MOV reg, imm
	0x2E: {ImmediateToRegister, KindMov},
	0x2F: {ImmediateToRegister, KindMov},

	0x31: {ImmediateToRegisterMemory, KindMov}, // 1100011w MOV r/m, imm
}

// lookupPrimary classifies an opcode byte using the 6-bit primary table.
func lookupPrimary(opcode uint8) (DecodedOpcode, bool) {
	entry := primaryOpcodes[opcode>>2]
	if entry.Opcode == KindOpUnknown {
		return DecodedOpcode{}, false
	}
	return entry, true
}

// JumpCondition names a conditional-jump predicate over the flags word.
type JumpCondition uint8

const (
	JO JumpCondition = iota
	JNO
	JB
	JNB
	JE
	JNE
	JBE
	JNBE // JA is the common alias for this condition (not-below-or-equal)
	JS
	JNS
	JP
	JNP
	JL
	JNL  // JGE is the common alias for this condition (not-less)
	JLE
	JNLE // JG is the common alias for this condition (not-less-or-equal)
)

var jumpConditionNames = map[JumpCondition]string{
	JO: "jo", JNO: "jno", JB: "jb", JNB: "jnb",
	JE: "je", JNE: "jne", JBE: "jbe", JNBE: "jnbe",
	JS: "js", JNS: "jns", JP: "jp", JNP: "jnp",
	JL: "jl", JNL: "jnl", JLE: "jle", JNLE: "jnle",
}

func (c JumpCondition) String() string {
	if name, ok := jumpConditionNames[c]; ok {
		return name
	}
	return "unknown"
}

// Taken reports whether the condition holds against the given flags.
func (c JumpCondition) Taken(f Flags) bool {
	switch c {
	case JO:
		return f.GetOverflow()
	case JNO:
		return !f.GetOverflow()
	case JB:
		return f.GetCarry()
	case JNB:
		return !f.GetCarry()
	case JE:
		return f.GetZero()
	case JNE:
		return !f.GetZero()
	case JBE:
		return f.GetCarry() || f.GetZero()
	case JNBE:
		return !f.GetCarry() && !f.GetZero()
	case JS:
		return f.GetSign()
	case JNS:
		return !f.GetSign()
	case JP:
		return f.GetParity()
	case JNP:
		return !f.GetParity()
	case JL:
		return f.GetSign() != f.GetOverflow()
	case JNL:
		return f.GetSign() == f.GetOverflow()
	case JLE:
		return f.GetZero() || f.GetSign() != f.GetOverflow()
	case JNLE:
		return !f.GetZero() && f.GetSign() == f.GetOverflow()
	default:
		return false
	}
}

// LoopKind names one of the LOOP-family instructions, which combine a CX
// decrement (except JCXZ) with a jump condition of their own.
type LoopKind uint8

const (
	LoopNZ LoopKind = iota // LOOPNZ/LOOPNE: dec CX, jump if CX != 0 && !ZF
	LoopZ                  // LOOPZ/LOOPE: dec CX, jump if CX != 0 && ZF
	LoopCX                 // LOOP: dec CX, jump if CX != 0
	JumpCXZero             // JCXZ: jump if CX == 0, no decrement
)

var loopKindNames = map[LoopKind]string{
	LoopNZ: "loopnz", LoopZ: "loopz", LoopCX: "loop", JumpCXZero: "jcxz",
}

func (l LoopKind) String() string {
	if name, ok := loopKindNames[l]; ok {
		return name
	}
	return "unknown"
}

// fullByteKind tags what the full-byte opcode table below resolved a byte
// to, since it spans two unrelated instruction families plus HALT.
type fullByteKind uint8

const (
	fullByteJump fullByteKind = iota
	fullByteLoop
	fullByteHalt
)

// fullByteEntry is one row of the full-byte override table.
type fullByteEntry struct {
	kind      fullByteKind
	condition JumpCondition
	loop      LoopKind
}

// fullByteOpcodes takes precedence over primaryOpcodes: every byte it
// lists decodes as a conditional jump, a LOOP-family instruction, or HLT,
// none of which share a decoding shape with the 6-bit table's entries.
var fullByteOpcodes = map[uint8]fullByteEntry{
	0x70: {kind: fullByteJump, condition: JO},
	0x71: {kind: fullByteJump, condition: JNO},
	0x72: {kind: fullByteJump, condition: JB},
	0x73: {kind: fullByteJump, condition: JNB},
	0x74: {kind: fullByteJump, condition: JE},
	0x75: {kind: fullByteJump, condition: JNE},
	0x76: {kind: fullByteJump, condition: JBE},
	0x77: {kind: fullByteJump, condition: JNBE},
	0x78: {kind: fullByteJump, condition: JS},
	0x79: {kind: fullByteJump, condition: JNS},
	0x7A: {kind: fullByteJump, condition: JP},
	0x7B: {kind: fullByteJump, condition: JNP},
	0x7C: {kind: fullByteJump, condition: JL},
	0x7D: {kind: fullByteJump, condition: JNL},
	0x7E: {kind: fullByteJump, condition: JLE},
	0x7F: {kind: fullByteJump, condition: JNLE},

	0xE0: {kind: fullByteLoop, loop: LoopNZ},
	0xE1: {kind: fullByteLoop, loop: LoopZ},
	0xE2: {kind: fullByteLoop, loop: LoopCX},
	0xE3: {kind: fullByteLoop, loop: JumpCXZero},

	0xF4: {kind: fullByteHalt},
}
