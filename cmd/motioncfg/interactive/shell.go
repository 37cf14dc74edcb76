// Package interactive provides the motioncfg settings shell.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/chzyer/readline"

	"github.com/motion-firmware/motioncfg/pkg/config"
	"github.com/motion-firmware/motioncfg/pkg/machine"
	"github.com/motion-firmware/motioncfg/pkg/persistence"
)

// Shell is an interactive prompt that reads and changes the settings of a
// loaded machine.
type Shell struct {
	machine *machine.Machine
	store   *persistence.Store
	logger  *slog.Logger
	rl      *readline.Instance

	// dirty is set by a change and cleared by save.
	dirty bool
}

// New creates a shell for m. The store receives the configuration on save;
// nil disables saving.
func New(m *machine.Machine, store *persistence.Store, logger *slog.Logger) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "motion> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	s := newShell(m, store, logger)
	s.rl = rl
	return s, nil
}

func newShell(m *machine.Machine, store *persistence.Store, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Shell{machine: m, store: store, logger: logger}
}

// Stdout returns a writer that coordinates with the readline input.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Stderr returns a writer that coordinates with the readline input.
func (s *Shell) Stderr() io.Writer {
	return s.rl.Stderr()
}

// Run reads commands until exit, EOF or ctx is done.
func (s *Shell) Run(ctx context.Context) {
	defer s.rl.Close()

	out := s.rl.Stdout()
	printHelp(out)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(out, "Exiting...")
			return
		}
		if s.Handle(out, line) {
			return
		}
	}
}

// Handle runs one command line and writes its output to w. It returns true
// when the shell should exit.
func (s *Shell) Handle(w io.Writer, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	if strings.HasPrefix(input, "$") {
		s.cmdSetting(w, input)
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		printHelp(w)
	case "list", "ls":
		s.cmdList(w, args)
	case "dump":
		s.cmdDump(w, args)
	case "check":
		s.cmdCheck(w)
	case "pins":
		s.machine.ReportPins(s.logger)
	case "save":
		s.cmdSave(w)
	case "quit", "exit", "q":
		if s.dirty {
			fmt.Fprintln(w, "Unsaved changes discarded")
		}
		fmt.Fprintln(w, "Exiting...")
		return true
	default:
		fmt.Fprintf(w, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, `
Settings Shell Commands:
  $/path             - Show a setting, e.g. $/axes/x/steps_per_mm
  $/path=value       - Change a setting
  list [prefix]      - Show every setting, optionally under a path prefix
  dump [format]      - Print the configuration (yaml, json)
  check              - Validate the whole configuration
  pins               - Log every bound pin
  save               - Write the configuration back to its file
  help               - Show this help
  quit               - Exit the shell`)
}

func (s *Shell) cmdSetting(w io.Writer, line string) {
	report, err := s.machine.Exec(line)
	if report == "" {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	if strings.Contains(line, "=") {
		s.dirty = true
	}
	fmt.Fprintln(w, report)
	if err != nil {
		fmt.Fprintf(w, "Invalid:\n%v\n", err)
	}
}

func (s *Shell) cmdList(w io.Writer, args []string) {
	prefix := ""
	if len(args) > 0 {
		prefix = "$" + strings.TrimPrefix(args[0], "$")
	}
	for _, line := range s.machine.List() {
		if strings.HasPrefix(strings.ToLower(line), strings.ToLower(prefix)) {
			fmt.Fprintln(w, line)
		}
	}
}

func (s *Shell) cmdDump(w io.Writer, args []string) {
	format := machine.FormatYAML
	if len(args) > 0 {
		f, err := machine.ParseFormat(args[0])
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return
		}
		format = f
	}
	if format == machine.FormatCBOR {
		fmt.Fprintln(w, "Error: cbor is binary, use the dump command instead")
		return
	}
	data, err := s.machine.Dump(format)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(w, strings.TrimRight(string(data), "\n"))
}

func (s *Shell) cmdCheck(w io.Writer) {
	if err := config.Validate(s.machine); err != nil {
		fmt.Fprintf(w, "Invalid:\n%v\n", err)
		return
	}
	fmt.Fprintln(w, "Configuration ok")
}

func (s *Shell) cmdSave(w io.Writer) {
	if s.store == nil {
		fmt.Fprintln(w, "Error: no file to save to")
		return
	}
	if err := config.Validate(s.machine); err != nil {
		fmt.Fprintf(w, "Not saved, configuration is invalid:\n%v\n", err)
		return
	}
	data, err := s.machine.Dump(machine.FormatYAML)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	if err := s.store.Save(data); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	s.dirty = false
	fmt.Fprintf(w, "Saved %s\n", s.store.Path())
}
