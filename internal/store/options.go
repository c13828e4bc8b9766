package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/tasktracker/internal/logging"
)

type options struct {
	log   logging.Logger
	clock func() time.Time
	newID func() string
	seed  bool
}

func defaultOptions() options {
	return options{
		log:   logging.Nop(),
		clock: time.Now,
		newID: uuid.NewString,
		seed:  true,
	}
}

// Option configures a Store.
type Option func(*options)

func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithClock sets the source of task creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.clock = now
		}
	}
}

// WithIDGenerator sets the generator for new user and task ids.
func WithIDGenerator(gen func() string) Option {
	return func(o *options) {
		if gen != nil {
			o.newID = gen
		}
	}
}

// WithSeed enables or disables first-run baseline data. Enabled by default.
func WithSeed(enabled bool) Option {
	return func(o *options) { o.seed = enabled }
}
