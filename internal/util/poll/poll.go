package poll

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrExhausted is returned when the condition is still not met after the
// configured number of checks.
var ErrExhausted = errors.New("condition not met")

// Config holds polling configuration.
type Config struct {
	MaxChecks    int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// Option is a functional option for polling configuration.
type Option func(*Config)

// Condition reports whether the awaited state has been reached.
type Condition func(ctx context.Context) (done bool, err error)

// Until calls cond until it reports done, returns an error, or MaxChecks
// calls have been made. Delays between checks grow by Multiplier up to
// MaxDelay. Context cancellation is respected throughout.
func Until(ctx context.Context, cond Condition, opts ...Option) error {
	cfg := &Config{
		MaxChecks:    60,
		InitialDelay: 1 * time.Second,
		MaxDelay:     15 * time.Second,
		Multiplier:   2.0,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	delay := cfg.InitialDelay

	for check := 1; check <= cfg.MaxChecks; check++ {
		done, err := cond(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		if check < cfg.MaxChecks {
			select {
			case <-ctx.Done():
				return fmt.Errorf("stopped waiting after %d checks: %w", check, ctx.Err())
			case <-time.After(delay):
				delay = time.Duration(float64(delay) * cfg.Multiplier)
				if delay > cfg.MaxDelay {
					delay = cfg.MaxDelay
				}
			}
		}
	}

	return fmt.Errorf("%w after %d checks", ErrExhausted, cfg.MaxChecks)
}

// WithMaxChecks sets the maximum number of condition checks.
func WithMaxChecks(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.MaxChecks = n
		}
	}
}

// WithInitialDelay sets the delay before the second check.
func WithInitialDelay(d time.Duration) Option {
	return func(c *Config) {
		c.InitialDelay = d
	}
}

// WithMaxDelay caps the delay between checks.
func WithMaxDelay(d time.Duration) Option {
	return func(c *Config) {
		c.MaxDelay = d
	}
}

// WithMultiplier sets the backoff multiplier.
func WithMultiplier(m float64) Option {
	return func(c *Config) {
		c.Multiplier = m
	}
}
