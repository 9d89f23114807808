package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"portfolio/services"
)

var visitor string

var themeCmd = &cobra.Command{
	Use:   "theme [get|set <light|dark>|toggle]",
	Short: "Inspect or change a visitor's stored theme",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		themes, err := buildThemeService(cfg)
		if err != nil {
			return err
		}
		defer themes.Close()

		ctx := cmd.Context()
		action := "get"
		if len(args) > 0 {
			action = args[0]
		}

		switch action {
		case "get":
			t, err := themes.Current(ctx, visitor)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), t)
		case "set":
			if len(args) != 2 {
				return fmt.Errorf("usage: theme set <light|dark>")
			}
			t, err := services.ParseTheme(args[1])
			if err != nil {
				return err
			}
			if err := themes.Set(ctx, visitor, t); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), t)
		case "toggle":
			t, err := themes.Toggle(ctx, visitor)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), t)
		default:
			return fmt.Errorf("unknown theme action %q", action)
		}
		return nil
	},
}

func init() {
	themeCmd.Flags().StringVar(&visitor, "visitor", "cli", "visitor id whose preference to use")
	rootCmd.AddCommand(themeCmd)
}
