package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"portfolio/models"
	"portfolio/services"
)

var noPrompt bool

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the portfolio sections from the terminal",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		index, err := buildIndex(cfg)
		if err != nil {
			return fmt.Errorf("loading search index: %w", err)
		}

		query := strings.Join(args, " ")
		if query == "" && !noPrompt {
			prompt := promptui.Prompt{Label: "Search"}
			if query, err = prompt.Run(); err != nil {
				return fmt.Errorf("query prompt: %w", err)
			}
		}

		view := &terminalSearchView{out: os.Stdout}
		widget := services.NewSearchWidget(index, view)
		results := widget.Input(query)
		if noPrompt || len(results) == 0 {
			return nil
		}

		choice := promptui.Select{
			Label: "Jump to section",
			Items: results,
			Templates: &promptui.SelectTemplates{
				Active:   "▸ {{ .Title | cyan }} {{ .Anchor | faint }}",
				Inactive: "  {{ .Title }} {{ .Anchor | faint }}",
				Selected: "{{ .Title | green }}",
				Details:  "{{ .Body }}",
			},
		}
		i, _, err := choice.Run()
		if err != nil {
			return fmt.Errorf("section selection: %w", err)
		}
		return widget.Select(results[i].Anchor)
	},
}

// terminalSearchView prints the widget's render calls
type terminalSearchView struct {
	out io.Writer
}

func (v *terminalSearchView) RenderResults(query string, results []models.SearchEntry, state models.SearchState) {
	switch state {
	case models.SearchIdle:
		fmt.Fprintln(v.out, dimStyle.Render("Type a query to search the portfolio."))
	case models.SearchNoResults:
		fmt.Fprintln(v.out, dimStyle.Render(fmt.Sprintf("No results found for %q.", query)))
	default:
		fmt.Fprintln(v.out, headerStyle.Render(fmt.Sprintf("%d result(s) for %q", len(results), query)))
		for _, r := range results {
			fmt.Fprintf(v.out, "  %s %s\n    %s\n", titleStyle.Render(r.Title), anchorStyle.Render(r.Anchor), r.Body)
		}
	}
}

func (v *terminalSearchView) Dismiss() {}

func (v *terminalSearchView) ScrollTo(anchor string) {
	fmt.Fprintf(v.out, "→ %s\n", anchorStyle.Render(anchor))
}

func init() {
	searchCmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "print results without the interactive picker")
	rootCmd.AddCommand(searchCmd)
}
