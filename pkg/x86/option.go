package x86

// Options holds the handful of values a Machine can be seeded with at
// construction. There is no DOS or BIOS preset here: this simulator has
// no segmentation model and no interrupt vector table, so the only
// meaningful starting state is where IP and SP begin.
type Options struct {
	initialIP uint16
	initialSP uint16
}

// Option configures a Machine at construction time.
type Option func(*Options)

func newOptions(options ...Option) Options {
	var opts Options
	for _, option := range options {
		option(&opts)
	}
	return opts
}

// WithInitialIP sets the instruction pointer a Machine starts execution
// from. Most callers load a program at offset 0 and leave this at its
// zero-value default.
func WithInitialIP(ip uint16) Option {
	return func(o *Options) {
		o.initialIP = ip
	}
}

// WithInitialSP sets the initial stack pointer. The instruction set this
// simulator implements never pushes or pops, but a caller composing a
// larger harness around it may still want SP seeded sensibly.
func WithInitialSP(sp uint16) Option {
	return func(o *Options) {
		o.initialSP = sp
	}
}
