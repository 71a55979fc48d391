package x86

import "fmt"

// DefaultMemorySize is the full 1 MiB flat, byte-addressable memory this
// simulator models.
const DefaultMemorySize = 1024 * 1024

// Machine is the complete simulated processor state: a register file,
// the flags word, and the memory it executes against. A Machine is an
// owned value rather than global state, so independent simulation runs
// can be constructed side by side in the same process.
type Machine struct {
	Registers RegisterFile
	Flags     Flags
	Memory    *Memory
}

// NewMachine returns a Machine with every register and flag zeroed,
// backed by memory, with any Options applied on top.
func NewMachine(memory *Memory, options ...Option) (*Machine, error) {
	if memory == nil {
		return nil, fmt.Errorf("x86: NewMachine requires non-nil memory")
	}
	opts := newOptions(options...)
	m := &Machine{Memory: memory}
	m.SetIP(opts.initialIP)
	_ = m.Registers.Write(SP, opts.initialSP)
	return m, nil
}

// IP returns the current instruction pointer.
func (m *Machine) IP() uint16 {
	value, _ := m.Registers.Read(IP)
	return value
}

// SetIP sets the instruction pointer.
func (m *Machine) SetIP(value uint16) {
	_ = m.Registers.Write(IP, value)
}

// LoadProgram copies program into memory starting at offset 0 and places
// a HLT byte immediately after it, so a Run that reaches the end of the
// supplied image halts cleanly instead of decoding whatever garbage (or
// zero bytes, which happen to decode as ADD) follows it.
func LoadProgram(m *Machine, program []byte) error {
	if err := m.Memory.LoadProgram(program); err != nil {
		return err
	}
	return m.Memory.Write8(uint32(len(program)), haltOpcode)
}
