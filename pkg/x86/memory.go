package x86

import (
	"fmt"

	"github.com/retroenv/sim8086/log"
)

// Memory is a flat byte-addressable simulated memory. The simulator does
// not model segmentation, so every address passed to Memory is already a
// linear offset into the backing array.
type Memory struct {
	data   []byte
	logger *log.Logger
}

// NewMemory returns a zeroed Memory of the given size. logger may be nil,
// in which case out-of-range accesses are not logged before the error is
// returned to the caller.
func NewMemory(size uint32, logger *log.Logger) (*Memory, error) {
	if size == 0 {
		return nil, fmt.Errorf("x86: memory size must be greater than zero")
	}
	return &Memory{
		data:   make([]byte, size),
		logger: logger,
	}, nil
}

// Size returns the memory's total size in bytes.
func (m *Memory) Size() uint32 {
	return uint32(len(m.data))
}

// Data returns a copy of the full memory contents.
func (m *Memory) Data() []byte {
	data := make([]byte, len(m.data))
	copy(data, m.data)
	return data
}

func (m *Memory) inRange(addr uint32) bool {
	return addr < uint32(len(m.data))
}

// Read8 reads a single byte at addr. Out-of-range addresses return
// ErrMemoryOutOfRange rather than clamping or substituting a default
// value: a program that walks off the end of memory has hit a fatal
// condition, not a don't-care one.
func (m *Memory) Read8(addr uint32) (uint8, error) {
	if !m.inRange(addr) {
		if m.logger != nil {
			m.logger.Debug("memory read out of range", log.String("address", fmt.Sprintf("0x%05X", addr)))
		}
		return 0, fmt.Errorf("%w: read at 0x%05X", ErrMemoryOutOfRange, addr)
	}
	return m.data[addr], nil
}

// Read16 reads a little-endian word starting at addr.
func (m *Memory) Read16(addr uint32) (uint16, error) {
	low, err := m.Read8(addr)
	if err != nil {
		return 0, err
	}
	high, err := m.Read8(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(high)<<8 | uint16(low), nil
}

// Write8 writes a single byte at addr, or returns ErrMemoryOutOfRange.
func (m *Memory) Write8(addr uint32, value uint8) error {
	if !m.inRange(addr) {
		if m.logger != nil {
			m.logger.Debug("memory write out of range",
				log.String("address", fmt.Sprintf("0x%05X", addr)),
				log.String("value", fmt.Sprintf("0x%02X", value)))
		}
		return fmt.Errorf("%w: write at 0x%05X", ErrMemoryOutOfRange, addr)
	}
	m.data[addr] = value
	return nil
}

// Write16 writes a little-endian word at addr. Both bytes are written
// even when the low byte is the only one that changed.
func (m *Memory) Write16(addr uint32, value uint16) error {
	if err := m.Write8(addr, uint8(value)); err != nil {
		return err
	}
	return m.Write8(addr+1, uint8(value>>8))
}

// LoadProgram copies data into memory starting at offset 0.
func (m *Memory) LoadProgram(data []byte) error {
	if uint32(len(data)) > uint32(len(m.data)) {
		return fmt.Errorf("%w: program of %d bytes exceeds memory size %d",
			ErrMemoryOutOfRange, len(data), len(m.data))
	}
	copy(m.data, data)
	if m.logger != nil {
		m.logger.Debug("loaded program into memory", log.Int("size", len(data)))
	}
	return nil
}

// Dump renders [start, end) as a classic hex-and-ASCII listing, sixteen
// bytes per line. end is clamped to the memory size.
func (m *Memory) Dump(start, end uint32) []string {
	size := uint32(len(m.data))
	if start >= size {
		return nil
	}
	if end > size {
		end = size
	}

	const bytesPerLine = 16
	lines := make([]string, 0, (end-start+bytesPerLine-1)/bytesPerLine)

	for addr := start; addr < end; addr += bytesPerLine {
		line := fmt.Sprintf("%06X: ", addr)

		for i := range uint32(bytesPerLine) {
			if addr+i < end {
				line += fmt.Sprintf("%02X ", m.data[addr+i])
			} else {
				line += "   "
			}
		}

		line += " |"
		for i := range uint32(bytesPerLine) {
			if addr+i >= end {
				break
			}
			b := m.data[addr+i]
			if b >= 32 && b <= 126 {
				line += string(rune(b))
			} else {
				line += "."
			}
		}
		line += "|"

		lines = append(lines, line)
	}

	return lines
}
