package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"keypad-calculator/internal/calculator"
	"keypad-calculator/internal/config"
	"keypad-calculator/internal/observability"
	"keypad-calculator/internal/tui"
)

func newRootCmd() *cobra.Command {
	var locale string

	root := &cobra.Command{
		Use:           "calc",
		Short:         "Keypad calculator for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return config.LoadDotEnv()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			opts, err := sessionOptions(cmd, cfg.Calculator, locale)
			if err != nil {
				return err
			}

			// the keypad owns the terminal, so logs go to a file or nowhere
			if err := observability.InitFileLogger(cfg.Log.File); err != nil {
				return err
			}
			defer observability.SyncLogger()

			session := calculator.NewSession("terminal", opts)
			observability.Logger.Info("keypad started", zap.String("session", session.ID))
			app := tui.New(session, observability.Logger)

			_, err = tea.NewProgram(app, tea.WithAltScreen()).Run()
			return err
		},
	}

	root.PersistentFlags().StringVar(&locale, "locale", "", "BCP 47 locale for digit grouping (overrides calculator.locale)")
	root.AddCommand(newPressCmd(&locale))
	return root
}

// sessionOptions applies the --locale flag over the configured locale. A
// malformed locale is an error for every command.
func sessionOptions(cmd *cobra.Command, cfg config.CalculatorConfig, locale string) (calculator.SessionOptions, error) {
	if cmd.Flags().Changed("locale") {
		cfg.Locale = locale
	}
	return calculator.NewSessionOptions(cfg.Locale, cfg.GreetingAfter, cfg.Greeting)
}
