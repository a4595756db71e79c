package registry

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// IDFunc returns a fresh, never reused entity ID.
type IDFunc func() string

// Clock returns the current time.
type Clock func() time.Time

// Confirmer asks the user to approve a destructive action described by
// prompt. Returning false cancels the action. A nil Confirmer declines.
type Confirmer func(prompt string) bool

// AlwaysConfirm approves every prompt. Use it when the caller has already
// obtained consent, e.g. a --yes flag.
func AlwaysConfirm(string) bool { return true }

// NewUUID generates a UUID v7 for entity IDs.
func NewUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

type options struct {
	ids   IDFunc
	clock Clock
	log   zerolog.Logger
}

func defaultOptions() options {
	return options{
		ids:   NewUUID,
		clock: time.Now,
		log:   zerolog.Nop(),
	}
}

// Option configures Open.
type Option func(*options)

// WithIDFunc replaces the UUID v7 generator.
func WithIDFunc(f IDFunc) Option {
	return func(o *options) { o.ids = f }
}

// WithClock replaces time.Now as the source of registration dates.
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLogger sets the logger stores use for load and persist events.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

func confirmed(confirm Confirmer, prompt string) bool {
	return confirm != nil && confirm(prompt)
}
