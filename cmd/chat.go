package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"portfolio/models"
	"portfolio/services"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the portfolio assistant in the terminal",
	Long: `Starts an interactive session. Plain lines are sent to the assistant;
"/search <query>" searches the sections, "/go <#anchor>" picks a result and
"/quit" exits.`,
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

		ctx := cmd.Context()
		bot := buildChatbot(ctx, cfg, log)

		term := &terminalSource{in: os.Stdin, out: os.Stdout}
		search := services.NewSearchWidget(index, &terminalSearchView{out: os.Stdout})
		chat := services.NewChatWidget(bot, nil, &terminalChatView{out: os.Stdout})
		services.Bind(ctx, term, search, chat, log)

		fmt.Fprintf(os.Stdout, "%s (provider: %s)\n", headerStyle.Render("Portfolio assistant"), bot.GetCurrentProvider())
		return term.Run()
	},
}

// terminalSource turns stdin lines into widget events
type terminalSource struct {
	in  io.Reader
	out io.Writer

	onSearch func(string)
	onSelect func(string)
	onChat   func(string)
}

func (t *terminalSource) OnSearchInput(h func(string))  { t.onSearch = h }
func (t *terminalSource) OnResultSelect(h func(string)) { t.onSelect = h }
func (t *terminalSource) OnChatSubmit(h func(string))   { t.onChat = h }

// Run reads lines until EOF or /quit
func (t *terminalSource) Run() error {
	scanner := bufio.NewScanner(t.in)
	fmt.Fprint(t.out, userStyle.Render("you> "))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "/quit" || line == "/exit":
			return nil
		case strings.HasPrefix(line, "/search "):
			t.onSearch(strings.TrimPrefix(line, "/search "))
		case strings.HasPrefix(line, "/go "):
			t.onSelect(strings.TrimSpace(strings.TrimPrefix(line, "/go ")))
		default:
			t.onChat(line)
		}
		fmt.Fprint(t.out, userStyle.Render("you> "))
	}
	return scanner.Err()
}

// terminalChatView prints the assistant side of the transcript
type terminalChatView struct {
	out io.Writer
}

// AppendTurn is a no-op: the user's line is already on screen
func (v *terminalChatView) AppendTurn(models.ConversationTurn) {}

func (v *terminalChatView) ShowPending() {
	fmt.Fprintln(v.out, dimStyle.Render("assistant is typing..."))
}

func (v *terminalChatView) Resolve(reply services.Reply) {
	if reply.Failed {
		fmt.Fprintf(v.out, "%s %s\n", assistantStyle.Render("assistant>"), errorStyle.Render(reply.Turn.Content))
		return
	}
	fmt.Fprintf(v.out, "%s %s\n", assistantStyle.Render("assistant>"), reply.Turn.Content)
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
