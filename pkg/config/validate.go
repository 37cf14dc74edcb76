package config

import (
	"errors"
	"fmt"
)

// validateHandler calls Validate on every present node and collects the
// failures with the path of the node.
type validateHandler struct {
	NopItems

	path []string
	errs []error
}

// Validate runs the node-level checks over the tree rooted at root and
// returns every failure joined, or nil.
func Validate(root Configurable) error {
	h := &validateHandler{}
	h.check("/", root)
	root.Group(h)
	return errors.Join(h.errs...)
}

func (h *validateHandler) Type() HandlerType { return HandlerValidator }

func (h *validateHandler) MatchesUninitialized(string) bool { return false }

func (h *validateHandler) EnterSection(name string, value Configurable) {
	h.check(JoinPath(h.path, name), value)
	h.path = append(h.path, name)
	value.Group(h)
	h.path = h.path[:len(h.path)-1]
}

func (h *validateHandler) check(path string, value Configurable) {
	v, ok := value.(Validator)
	if !ok {
		return
	}
	if err := v.Validate(); err != nil {
		h.errs = append(h.errs, fmt.Errorf("%s: %w", path, err))
	}
}
