package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/motion-firmware/motioncfg/pkg/config"
	"github.com/motion-firmware/motioncfg/pkg/machine"
	"github.com/motion-firmware/motioncfg/pkg/persistence"
)

// ErrExists is returned by RunInit when the target file already exists.
var ErrExists = errors.New("file already exists")

// RunCheck loads the configuration and reports every problem found.
func RunCheck(path string, env Env, w io.Writer) error {
	m, _, err := Load(path, env)
	if err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Fprintf(w, "  %s\n", line)
		}
		return fmt.Errorf("%s is invalid", path)
	}
	defer m.Close()

	fmt.Fprintf(w, "%s: ok (%s on %s)\n", path, m.Name.Value(), m.Board.Value())
	m.ReportPins(env.logger())
	return nil
}

// RunDump regenerates the configuration in the named format.
func RunDump(path, format string, env Env, w io.Writer) error {
	f, err := machine.ParseFormat(format)
	if err != nil {
		return err
	}
	m, _, err := Load(path, env)
	if err != nil {
		return err
	}
	defer m.Close()

	data, err := m.Dump(f)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// RunGet prints the "$path=value" report of one setting.
func RunGet(path, settingPath string, env Env, w io.Writer) error {
	m, _, err := Load(path, env)
	if err != nil {
		return err
	}
	defer m.Close()

	report, err := m.Exec("$" + settingPath)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, report)
	return nil
}

// RunSet applies "path=value" assignments in order and saves the result.
// Nothing is written when any assignment fails.
func RunSet(path string, assignments []string, env Env, w io.Writer) error {
	m, store, err := Load(path, env)
	if err != nil {
		return err
	}
	defer m.Close()

	for _, a := range assignments {
		if !strings.Contains(a, "=") {
			return fmt.Errorf("invalid assignment %q: want path=value", a)
		}
		// Invariants may hold only after later assignments; the whole tree is
		// validated once all of them are applied.
		report, err := m.Exec("$" + a)
		if report == "" {
			return err
		}
		fmt.Fprintln(w, report)
	}
	if err := config.Validate(m); err != nil {
		return err
	}
	return Save(m, store)
}

// RunList prints every setting as a "$path=value" line.
func RunList(path string, env Env, w io.Writer) error {
	m, _, err := Load(path, env)
	if err != nil {
		return err
	}
	defer m.Close()

	for _, line := range m.List() {
		fmt.Fprintln(w, line)
	}
	return nil
}

// RunInit writes the built-in wall plotter profile to path.
func RunInit(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
	}
	return persistence.NewStore(path).Save(machine.WallPlotterProfile)
}
