// Package commands implements the motioncfg CLI commands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/motion-firmware/motioncfg/pkg/log"
	"github.com/motion-firmware/motioncfg/pkg/machine"
	"github.com/motion-firmware/motioncfg/pkg/persistence"
)

// ErrNoConfig is returned when the configuration file does not exist.
var ErrNoConfig = errors.New("configuration file not found")

// Env carries the loggers shared by every command.
type Env struct {
	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger

	// Changes receives setting change events. Nil discards them.
	Changes log.Logger
}

func (e Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e.Logger
}

func (e Env) options() []machine.Option {
	opts := []machine.Option{machine.WithLogger(e.logger())}
	if e.Changes != nil {
		opts = append(opts, machine.WithChangeLog(e.Changes))
	}
	return opts
}

// Load reads the configuration at path and builds a machine from it. The
// returned store writes back to the same file.
func Load(path string, env Env) (*machine.Machine, *persistence.Store, error) {
	store := persistence.NewStore(path)
	data, err := store.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if data == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoConfig, path)
	}

	m, err := machine.Load(data, env.options()...)
	if err != nil {
		return nil, nil, err
	}
	return m, store, nil
}

// Save writes the machine back to its store as YAML.
func Save(m *machine.Machine, store *persistence.Store) error {
	data, err := m.Dump(machine.FormatYAML)
	if err != nil {
		return fmt.Errorf("failed to generate configuration: %w", err)
	}
	if err := store.Save(data); err != nil {
		return fmt.Errorf("failed to save %s: %w", store.Path(), err)
	}
	return nil
}
