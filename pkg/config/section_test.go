package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/motion-firmware/motioncfg/pkg/setting"
)

func TestSectionParsingNilSlotMatchingHeader(t *testing.T) {
	h := &mockHandler{}
	h.On("Type").Return(HandlerParser)
	h.On("MatchesUninitialized", "child").Return(true)
	h.On("EnterSection", "child", mock.AnythingOfType("*config.leaf")).Once()

	p := &parent{}
	p.Group(h)

	assert.NotNil(t, p.Child)
	h.AssertExpectations(t)
	h.AssertNumberOfCalls(t, "EnterSection", 1)
	h.AssertNumberOfCalls(t, "Type", 1)
}

func TestSectionParsingNilSlotOtherHeader(t *testing.T) {
	h := &mockHandler{}
	h.On("Type").Return(HandlerParser)
	h.On("MatchesUninitialized", "child").Return(false)

	p := &parent{}
	p.Group(h)

	assert.Nil(t, p.Child)
	h.AssertNotCalled(t, "EnterSection", mock.Anything, mock.Anything)
}

func TestSectionParsingPopulatedSlot(t *testing.T) {
	h := &mockHandler{}
	h.On("Type").Return(HandlerParser)
	h.On("MatchesUninitialized", mock.Anything).Return(true).Maybe()

	existing := &leaf{}
	p := &parent{Child: existing}
	p.Group(h)

	assert.Same(t, existing, p.Child)
	assert.Equal(t, 0, existing.visits)
	h.AssertNotCalled(t, "EnterSection", mock.Anything, mock.Anything)
}

func TestSectionNotParsingPopulatedSlot(t *testing.T) {
	for _, typ := range []HandlerType{HandlerAfterParse, HandlerRuntime, HandlerGenerator, HandlerValidator} {
		t.Run(typ.String(), func(t *testing.T) {
			existing := &leaf{}
			h := &mockHandler{}
			h.On("Type").Return(typ)
			h.On("EnterSection", "child", existing).Once()

			p := &parent{Child: existing}
			p.Group(h)

			assert.Same(t, existing, p.Child)
			h.AssertExpectations(t)
			h.AssertNotCalled(t, "MatchesUninitialized", mock.Anything)
		})
	}
}

func TestSectionNotParsingNilSlot(t *testing.T) {
	h := &mockHandler{}
	h.On("Type").Return(HandlerGenerator)

	p := &parent{}
	p.Group(h)

	assert.Nil(t, p.Child)
	h.AssertNotCalled(t, "EnterSection", mock.Anything, mock.Anything)
	h.AssertNotCalled(t, "MatchesUninitialized", mock.Anything)
}

func TestSectionChildVisitedOnce(t *testing.T) {
	r := &recorder{typ: HandlerParser, headers: map[string]bool{"child": true}}
	p := &parent{}
	p.Group(r)

	if p.Child == nil {
		t.Fatal("expected child to be allocated")
	}
	if p.Child.visits != 1 {
		t.Errorf("child visits = %d, want 1", p.Child.visits)
	}

	// A second parse pass must not allocate or visit again.
	first := p.Child
	p.Group(r)
	if p.Child != first || first.visits != 1 {
		t.Errorf("second parse pass changed the populated slot")
	}
}

type ordered struct {
	A   leaf
	B   leaf
	C   leaf
	Sub *leaf
}

func (o *ordered) Group(h Handler) {
	h.ItemBool("a", &o.A.On)
	h.ItemBool("b", &o.B.On)
	h.ItemBool("c", &o.C.On)
	Section(h, "sub", &o.Sub)
}

func TestDeclarationOrder(t *testing.T) {
	for _, typ := range []HandlerType{HandlerParser, HandlerAfterParse, HandlerRuntime, HandlerGenerator, HandlerValidator} {
		t.Run(typ.String(), func(t *testing.T) {
			r := &recorder{typ: typ, headers: map[string]bool{"sub": true}}
			o := &ordered{Sub: nil}
			if !typ.IsParsing() {
				o.Sub = &leaf{}
			}
			o.Group(r)
			assert.Equal(t, []string{"a", "b", "c", "section:sub", "on"}, r.calls)
		})
	}
}

func TestHandlerTypeIsParsing(t *testing.T) {
	assert.True(t, HandlerParser.IsParsing())
	for _, typ := range []HandlerType{HandlerAfterParse, HandlerRuntime, HandlerGenerator, HandlerValidator} {
		assert.False(t, typ.IsParsing(), typ.String())
	}
	assert.Equal(t, "unknown", HandlerType(99).String())
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/axes", JoinPath(nil, "axes"))
	assert.Equal(t, "/axes/x/steps_per_mm", JoinPath([]string{"axes", "x"}, "steps_per_mm"))
	assert.Equal(t, "/axes", JoinPath([]string{""}, "axes"))
}

type defaulted struct {
	Rate     setting.Setting[int32]
	defaults int
}

func (d *defaulted) SetDefaults() {
	d.defaults++
	d.Rate.Set(400)
}

func (d *defaulted) Group(h Handler) {
	h.ItemInt32("rate", &d.Rate, 0, 1000)
}

type defaultedParent struct {
	Child *defaulted
}

func (p *defaultedParent) Group(h Handler) {
	Section(h, "child", &p.Child)
}

func TestSectionAppliesDefaultsOnAllocation(t *testing.T) {
	r := &recorder{typ: HandlerParser, headers: map[string]bool{"child": true}}
	p := &defaultedParent{}
	p.Group(r)

	assert.Equal(t, int32(400), p.Child.Rate.Value())
	assert.Equal(t, 1, p.Child.defaults)

	// An existing child keeps its values.
	p.Child.Rate.Set(7)
	p.Group(r)
	assert.Equal(t, int32(7), p.Child.Rate.Value())
	assert.Equal(t, 1, p.Child.defaults)
}
