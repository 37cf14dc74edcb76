package config

import (
	"github.com/stretchr/testify/mock"

	"github.com/motion-firmware/motioncfg/pkg/setting"
)

// mockHandler is a testify mock of the section hooks and mode of a Handler.
type mockHandler struct {
	mock.Mock
	NopItems
}

func (m *mockHandler) Type() HandlerType {
	return m.Called().Get(0).(HandlerType)
}

func (m *mockHandler) MatchesUninitialized(name string) bool {
	return m.Called(name).Bool(0)
}

func (m *mockHandler) EnterSection(name string, value Configurable) {
	m.Called(name, value)
}

// recorder records item and section calls and recurses into sections.
type recorder struct {
	NopItems

	typ     HandlerType
	headers map[string]bool
	calls   []string
}

func (r *recorder) Type() HandlerType { return r.typ }

func (r *recorder) MatchesUninitialized(name string) bool { return r.headers[name] }

func (r *recorder) EnterSection(name string, value Configurable) {
	r.calls = append(r.calls, "section:"+name)
	value.Group(r)
}

func (r *recorder) ItemBool(name string, _ *setting.Setting[bool]) {
	r.calls = append(r.calls, name)
}

func (r *recorder) ItemInt32(name string, _ *setting.Setting[int32], _, _ int32) {
	r.calls = append(r.calls, name)
}

func (r *recorder) ItemFloat(name string, _ *setting.Setting[float32], _, _ float32) {
	r.calls = append(r.calls, name)
}

type leaf struct {
	visits int
	On     setting.Setting[bool]
}

func (l *leaf) Group(h Handler) {
	l.visits++
	h.ItemBool("on", &l.On)
}

type parent struct {
	Child *leaf
}

func (p *parent) Group(h Handler) {
	Section(h, "child", &p.Child)
}
