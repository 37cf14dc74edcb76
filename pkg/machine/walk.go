package machine

import (
	"github.com/motion-firmware/motioncfg/pkg/config"
	"github.com/motion-firmware/motioncfg/pkg/setting"
)

// walker visits every present node and pin of a tree. It never allocates.
type walker struct {
	config.NopItems

	path   []string
	onNode func(path string, node config.Configurable)
	onPin  func(path string, p *setting.Pin)
}

func walk(root config.Configurable, w *walker) {
	if w.onNode != nil {
		w.onNode("/", root)
	}
	root.Group(w)
}

func (w *walker) Type() config.HandlerType { return config.HandlerGenerator }

func (w *walker) MatchesUninitialized(string) bool { return false }

func (w *walker) EnterSection(name string, value config.Configurable) {
	if w.onNode != nil {
		w.onNode(config.JoinPath(w.path, name), value)
	}
	w.path = append(w.path, name)
	value.Group(w)
	w.path = w.path[:len(w.path)-1]
}

func (w *walker) ItemPin(name string, p *setting.Pin) {
	if w.onPin != nil {
		w.onPin(config.JoinPath(w.path, name), p)
	}
}
