package config

// afterParseHandler calls AfterParse on each present node before visiting
// its children, so a node can allocate required children with defaults.
type afterParseHandler struct {
	NopItems
}

// AfterParse runs the post-parse hooks over the tree rooted at root.
func AfterParse(root Configurable) {
	h := &afterParseHandler{}
	h.EnterSection("", root)
}

func (h *afterParseHandler) Type() HandlerType { return HandlerAfterParse }

func (h *afterParseHandler) MatchesUninitialized(string) bool { return false }

func (h *afterParseHandler) EnterSection(_ string, value Configurable) {
	if ap, ok := value.(AfterParser); ok {
		ap.AfterParse()
	}
	value.Group(h)
}
