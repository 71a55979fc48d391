package x86

import (
	"fmt"
	"strings"
)

// TraceStep captures a machine's register, flag and IP state at one point
// in execution, along with the opcode byte at IP and a caller-supplied
// instruction text. Capturing two of these around a Step call (see
// CaptureTrace) gives the --trace CLI flag a pre/post diff to print.
type TraceStep struct {
	IP          uint16
	Opcode      uint8
	Instruction string

	AX, BX, CX, DX uint16
	SP, BP, SI, DI uint16
	Flags          Flags
}

// CaptureTrace snapshots the machine's state and the opcode byte at its
// current IP, without advancing anything. instructionText is stored as
// given; nothing is disassembled here.
func CaptureTrace(m *Machine, instructionText string) TraceStep {
	ts := TraceStep{
		IP:          m.IP(),
		Instruction: instructionText,
		Flags:       m.Flags,
	}
	ts.Opcode, _ = m.Memory.Read8(uint32(ts.IP))
	ts.AX, _ = m.Registers.Read(AX)
	ts.BX, _ = m.Registers.Read(BX)
	ts.CX, _ = m.Registers.Read(CX)
	ts.DX, _ = m.Registers.Read(DX)
	ts.SP, _ = m.Registers.Read(SP)
	ts.BP, _ = m.Registers.Read(BP)
	ts.SI, _ = m.Registers.Read(SI)
	ts.DI, _ = m.Registers.Read(DI)
	return ts
}

// String renders a single trace line.
func (ts TraceStep) String() string {
	return fmt.Sprintf("%04X %02X %-20s AX=%04X BX=%04X CX=%04X DX=%04X SP=%04X BP=%04X SI=%04X DI=%04X FL=%s",
		ts.IP, ts.Opcode, ts.Instruction,
		ts.AX, ts.BX, ts.CX, ts.DX, ts.SP, ts.BP, ts.SI, ts.DI, formatFlags(ts.Flags))
}

// DiffString renders what changed between a pre-execution TraceStep (the
// receiver) and the post-execution TraceStep for the same instruction.
func (pre TraceStep) DiffString(post TraceStep) string {
	var changes []string
	compare := func(name string, before, after uint16) {
		if before != after {
			changes = append(changes, fmt.Sprintf("%s:%04x->%04x", name, before, after))
		}
	}
	compare("ax", pre.AX, post.AX)
	compare("bx", pre.BX, post.BX)
	compare("cx", pre.CX, post.CX)
	compare("dx", pre.DX, post.DX)
	compare("sp", pre.SP, post.SP)
	compare("bp", pre.BP, post.BP)
	compare("si", pre.SI, post.SI)
	compare("di", pre.DI, post.DI)
	compare("ip", pre.IP, post.IP)
	if pre.Flags != post.Flags {
		changes = append(changes, fmt.Sprintf("flags:%s->%s", formatFlags(pre.Flags), formatFlags(post.Flags)))
	}

	return fmt.Sprintf("%04x %-20s %s", pre.IP, post.Instruction, strings.Join(changes, " "))
}
