package runtime

import (
	"errors"
	"fmt"
	"strings"
)

// Command errors.
var (
	ErrNotSetting = errors.New("not a setting command")
)

// Command is a parsed "$path" or "$path=value" line.
type Command struct {
	Path  string
	Value string
	IsSet bool
}

// ParseCommand parses a setting command line.
func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "$/") {
		return Command{}, fmt.Errorf("%w: %q", ErrNotSetting, line)
	}
	path, value, isSet := strings.Cut(line[1:], "=")
	path = strings.TrimRight(strings.TrimSpace(path), "/")
	if path == "" {
		return Command{}, fmt.Errorf("%w: %q: empty path", ErrNotSetting, line)
	}
	return Command{Path: path, Value: strings.TrimSpace(value), IsSet: isSet}, nil
}

// Report returns the "$path=value" report line of an item.
func Report(path, value string) string {
	return "$" + path + "=" + value
}
