// Command sim8086 disassembles or simulates a flat 16-bit 8086 program image.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/retroenv/sim8086/buildinfo"
	"github.com/retroenv/sim8086/log"
	"github.com/retroenv/sim8086/pkg/x86"
)

var (
	version = "dev"
	commit  string
	date    string
)

var (
	dumpPath  string
	dumpRange string
	trace     bool
	maxSteps  int
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:     "sim8086",
		Short:   "Disassemble or simulate a flat 16-bit 8086 program image",
		Version: buildinfo.Version(version, commit, date),
	}

	root.AddCommand(newRunCommand(), newDisasmCommand())
	return root
}

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Execute a program image and print its final machine state",
		Args:  cobra.ExactArgs(1),
		RunE:  runRun,
	}
	cmd.Flags().StringVarP(&dumpPath, "dump", "d", "", "write the full memory image to this path after running (default memory_dump.data if given with no path)")
	cmd.Flags().Lookup("dump").NoOptDefVal = "memory_dump.data"
	cmd.Flags().StringVar(&dumpRange, "dump-range", "", "print a hex dump of memory[start:end] to stdout, e.g. 0:256")
	cmd.Flags().BoolVar(&trace, "trace", false, "print one line per executed instruction")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "stop after this many instructions (0 = unbounded)")
	return cmd
}

func newDisasmCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm <file>",
		Short: "Print the disassembly of a program image",
		Args:  cobra.ExactArgs(1),
		RunE:  runDisasm,
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := log.New()

	m, program, err := loadMachine(args[0])
	if err != nil {
		return err
	}
	logger.Info("loaded program", log.String("file", args[0]), log.Int("bytes", len(program)))

	if err := simulate(m, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	for _, line := range x86.PrintFinalState(m) {
		fmt.Println(line)
	}

	if dumpRange != "" {
		start, end, err := parseDumpRange(dumpRange)
		if err != nil {
			return err
		}
		for _, line := range m.Memory.Dump(start, end) {
			fmt.Println(line)
		}
	}

	if dumpPath != "" {
		if err := os.WriteFile(dumpPath, m.Memory.Data(), 0o644); err != nil {
			return fmt.Errorf("writing memory dump: %w", err)
		}
		logger.Info("wrote memory dump", log.String("path", dumpPath))
	}

	return nil
}

func runDisasm(cmd *cobra.Command, args []string) error {
	m, _, err := loadMachine(args[0])
	if err != nil {
		return err
	}

	fmt.Println(x86.BitsHeader)
	fmt.Println()

	for {
		text, err := x86.Step(m, x86.ModePrint)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return err
		}
		fmt.Println(text)
		if strings.TrimSpace(text) == "hlt" {
			return nil
		}
	}
}

func simulate(m *x86.Machine, logger *log.Logger) error {
	steps := 0
	for {
		pre := x86.CaptureTrace(m, "")
		text, err := x86.Step(m, x86.ModeSimulate)
		if err != nil {
			if errors.Is(err, x86.ErrHaltReached) {
				if trace {
					logger.Info("halt reached")
				}
				return nil
			}
			return fmt.Errorf("at ip 0x%04x: %w", pre.IP, err)
		}

		if trace {
			post := x86.CaptureTrace(m, text)
			fmt.Println(pre.DiffString(post))
		}

		steps++
		if maxSteps > 0 && steps >= maxSteps {
			logger.Info("stopped at max-steps", log.Int("steps", steps))
			return nil
		}
	}
}

func loadMachine(path string) (*x86.Machine, []byte, error) {
	program, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading program image: %w", err)
	}

	mem, err := x86.NewMemory(x86.DefaultMemorySize, log.New())
	if err != nil {
		return nil, nil, err
	}
	m, err := x86.NewMachine(mem)
	if err != nil {
		return nil, nil, err
	}
	if err := x86.LoadProgram(m, program); err != nil {
		return nil, nil, err
	}
	return m, program, nil
}

func parseDumpRange(spec string) (uint32, uint32, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid --dump-range %q, expected start:end", spec)
	}
	start, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --dump-range start: %w", err)
	}
	end, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --dump-range end: %w", err)
	}
	return uint32(start), uint32(end), nil
}
