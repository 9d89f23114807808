package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"portfolio/models"
	"portfolio/services"
)

func TestTerminalSource_DispatchesLines(t *testing.T) {
	var out bytes.Buffer
	bot := services.NewChatbot(context.Background(), services.ChatbotConfig{Preferred: models.ProviderDummy})

	term := &terminalSource{
		in:  strings.NewReader("/search css\n/go #skills\nhello\n/quit\nnever read\n"),
		out: &out,
	}
	search := services.NewSearchWidget(services.DefaultIndex(), &terminalSearchView{out: &out})
	chat := services.NewChatWidget(bot, nil, &terminalChatView{out: &out})
	services.Bind(context.Background(), term, search, chat, nil)

	if err := term.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()
	for _, want := range []string{"Skills", "#skills", "assistant>"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if chat.Conversation().Len() != 3 {
		t.Errorf("conversation length = %d, want 3", chat.Conversation().Len())
	}
}

func TestThemeCommand(t *testing.T) {
	t.Setenv("PORTFOLIO_ENV", "test")
	t.Setenv("PORTFOLIO_THEME__STORE", "sqlite")
	t.Setenv("PORTFOLIO_THEME__SQLITE_PATH", filepath.Join(t.TempDir(), "themes.db"))
	cfg := filepath.Join(t.TempDir(), "missing.yml")

	run := func(args ...string) string {
		t.Helper()
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs(append([]string{"--config", cfg}, args...))
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return strings.TrimSpace(out.String())
	}

	if got := run("theme", "get", "--visitor", "alice"); got != "dark" {
		t.Fatalf("get = %q, want dark", got)
	}
	if got := run("theme", "toggle", "--visitor", "alice"); got != "light" {
		t.Fatalf("toggle = %q, want light", got)
	}
	if got := run("theme", "get", "--visitor", "alice"); got != "light" {
		t.Fatalf("persisted = %q, want light", got)
	}
	if got := run("theme", "set", "dark", "--visitor", "alice"); got != "dark" {
		t.Fatalf("set = %q, want dark", got)
	}
}
