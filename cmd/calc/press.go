package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"keypad-calculator/internal/calculator"
	"keypad-calculator/internal/config"
)

func newPressCmd(locale *string) *cobra.Command {
	return &cobra.Command{
		Use:   "press KEY...",
		Short: "Press keys on a fresh calculator and print the readout",
		Long: `Press keys on a fresh calculator and print the readout.

Keys are digits, ".", the operations + - x / (or + − × ÷), "=", "clr" and "del".
The first line shows the previous operand and pending operation, the second
the current operand.`,
		Example: "  calc press 1 2 + 3 0 =\n  calc --locale de-DE press 1 2 3 4 5",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actions, err := calculator.ParseKeys(args)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts, err := sessionOptions(cmd, cfg.Calculator, *locale)
			if err != nil {
				return err
			}

			session := calculator.NewSession("press", opts)
			for _, a := range actions {
				session.Dispatch(a)
			}

			d := session.Display()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, d.PreviousLine())
			fmt.Fprintln(out, d.Current)
			return nil
		},
	}
}
