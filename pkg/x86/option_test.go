package x86

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOptionsDefaultsToZero(t *testing.T) {
	opts := newOptions()
	assert.Equal(t, uint16(0), opts.initialIP)
	assert.Equal(t, uint16(0), opts.initialSP)
}

func TestWithInitialIPAndSP(t *testing.T) {
	opts := newOptions(WithInitialIP(0x0200), WithInitialSP(0xFFF0))
	assert.Equal(t, uint16(0x0200), opts.initialIP)
	assert.Equal(t, uint16(0xFFF0), opts.initialSP)
}

func TestOptionsAppliedInOrder(t *testing.T) {
	opts := newOptions(WithInitialIP(0x0100), WithInitialIP(0x0300))
	assert.Equal(t, uint16(0x0300), opts.initialIP, "later options override earlier ones")
}
