package x86

import "fmt"

// readOperand resolves an operand's current value. wide selects whether a
// memory operand is read as a byte or a word; register and immediate
// operands already carry their own width.
func readOperand(m *Machine, op Operand, wide bool) (uint16, error) {
	switch op.Kind {
	case OperandRegister:
		return m.Registers.Read(op.Reg)
	case OperandMemory:
		addr, err := op.Mem.LinearAddress(&m.Registers)
		if err != nil {
			return 0, err
		}
		if wide {
			return m.Memory.Read16(addr)
		}
		b, err := m.Memory.Read8(addr)
		return uint16(b), err
	case OperandImmediate:
		return op.Imm, nil
	default:
		return 0, fmt.Errorf("%w: operand kind %d", ErrUnimplementedOperandForm, op.Kind)
	}
}

func writeOperand(m *Machine, op Operand, wide bool, value uint16) error {
	switch op.Kind {
	case OperandRegister:
		return m.Registers.Write(op.Reg, value)
	case OperandMemory:
		addr, err := op.Mem.LinearAddress(&m.Registers)
		if err != nil {
			return err
		}
		if wide {
			return m.Memory.Write16(addr, value)
		}
		return m.Memory.Write8(addr, uint8(value))
	default:
		return fmt.Errorf("%w: cannot write operand kind %d", ErrUnimplementedOperandForm, op.Kind)
	}
}

// execute applies a decoded instruction's effect to the machine. ip is the
// address the instruction was fetched from; jumps and loops compute their
// target relative to it rather than relative to the machine's current IP,
// since the two always agree here but the relationship is clearer spelled
// out explicitly.
func execute(m *Machine, instr DecodedInstruction, ip uint16) error {
	switch {
	case instr.IsJump:
		return executeJump(m, instr, ip)
	case instr.IsLoop:
		return executeLoop(m, instr, ip)
	default:
		return executeArithmeticOrMov(m, instr)
	}
}

func executeJump(m *Machine, instr DecodedInstruction, ip uint16) error {
	fallthroughIP := ip + instr.Length
	if instr.JumpCond.Taken(m.Flags) {
		m.SetIP(fallthroughIP + uint16(instr.JumpOffset))
	} else {
		m.SetIP(fallthroughIP)
	}
	return nil
}

func executeLoop(m *Machine, instr DecodedInstruction, ip uint16) error {
	cx, err := m.Registers.Read(CX)
	if err != nil {
		return err
	}

	if instr.LoopKind != JumpCXZero {
		cx--
		if err := m.Registers.Write(CX, cx); err != nil {
			return err
		}
	}

	var taken bool
	switch instr.LoopKind {
	case LoopCX:
		taken = cx != 0
	case LoopNZ:
		taken = cx != 0 && !m.Flags.GetZero()
	case LoopZ:
		taken = cx != 0 && m.Flags.GetZero()
	case JumpCXZero:
		taken = cx == 0
	}

	fallthroughIP := ip + instr.Length
	if taken {
		m.SetIP(fallthroughIP + uint16(instr.JumpOffset))
	} else {
		m.SetIP(fallthroughIP)
	}
	return nil
}

func executeArithmeticOrMov(m *Machine, instr DecodedInstruction) error {
	srcVal, err := readOperand(m, instr.Src, instr.Wide)
	if err != nil {
		return err
	}

	if !UpdatesArithmeticFlags(instr.Kind) {
		return writeOperand(m, instr.Dst, instr.Wide, srcVal)
	}

	dstVal, err := readOperand(m, instr.Dst, instr.Wide)
	if err != nil {
		return err
	}

	var result uint16
	if instr.Wide {
		r, err := arith16(instr.Kind, dstVal, srcVal, m.Flags.GetCarry())
		if err != nil {
			return err
		}
		m.applyArith16(r)
		result = r.result
	} else {
		r, err := arith8(instr.Kind, uint8(dstVal), uint8(srcVal), m.Flags.GetCarry())
		if err != nil {
			return err
		}
		m.applyArith8(r)
		result = uint16(r.result)
	}

	if !WritesDestinationMnemonics.Contains(instr.Kind.String()) {
		return nil
	}
	return writeOperand(m, instr.Dst, instr.Wide, result)
}

func arith8(kind InstructionKind, a, b uint8, carryIn bool) (arithResult8, error) {
	switch kind {
	case KindAdd:
		return add8(a, b, false), nil
	case KindAdc:
		return add8(a, b, carryIn), nil
	case KindSub, KindCmp:
		return sub8(a, b, false), nil
	case KindSbb:
		return sub8(a, b, carryIn), nil
	default:
		return arithResult8{}, fmt.Errorf("%w: arithmetic kind %v", ErrUnimplementedOperandForm, kind)
	}
}

func arith16(kind InstructionKind, a, b uint16, carryIn bool) (arithResult16, error) {
	switch kind {
	case KindAdd:
		return add16(a, b, false), nil
	case KindAdc:
		return add16(a, b, carryIn), nil
	case KindSub, KindCmp:
		return sub16(a, b, false), nil
	case KindSbb:
		return sub16(a, b, carryIn), nil
	default:
		return arithResult16{}, fmt.Errorf("%w: arithmetic kind %v", ErrUnimplementedOperandForm, kind)
	}
}
