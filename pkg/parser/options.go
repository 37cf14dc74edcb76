package parser

import (
	"io"
	"log/slog"

	"github.com/motion-firmware/motioncfg/pkg/log"
	"github.com/motion-firmware/motioncfg/pkg/pin"
)

// Option configures a Parser.
type Option func(*Parser)

// WithPins sets the bank pins are acquired from. Without it each Parser
// uses a fresh ESP32 bank.
func WithPins(b *pin.Bank) Option {
	return func(p *Parser) { p.pins = b }
}

// WithLogger sets the operational logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithChangeLog sets where change events go.
func WithChangeLog(l log.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.changes = l
		}
	}
}

// WithSession sets the session ID stamped on change events.
func WithSession(id string) Option {
	return func(p *Parser) { p.session = id }
}

// WithSource sets the source stamped on change events.
// The default is log.SourceFile.
func WithSource(s log.Source) Option {
	return func(p *Parser) { p.source = s }
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
