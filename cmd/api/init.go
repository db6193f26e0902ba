package main

import (
	"context"

	"keypad-calculator/internal/calculator"
	"keypad-calculator/internal/config"
	"keypad-calculator/internal/observability"
)

// initMetrics initialises all metric providers and application-specific
// metric instruments.
func initMetrics(ctx context.Context) (func(context.Context) error, error) {
	shutdown, err := observability.InitMetrics(ctx)
	if err != nil {
		return nil, err
	}

	if err := calculator.InitMetrics(); err != nil {
		return nil, err
	}

	return shutdown, nil
}

// newStore builds the session store from configuration. The store is always
// usable; a non-nil error reports a locale that fell back to the default.
func newStore(cfg config.CalculatorConfig) (*calculator.Store, error) {
	opts, err := calculator.NewSessionOptions(cfg.Locale, cfg.GreetingAfter, cfg.Greeting)
	return calculator.NewStore(cfg.MaxSessions, opts), err
}
