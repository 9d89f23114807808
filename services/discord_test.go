package services

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"portfolio/models"
)

func TestSplitMessage(t *testing.T) {
	if got := splitMessage("short", 10); len(got) != 1 || got[0] != "short" {
		t.Fatalf("short message split: %v", got)
	}

	msg := strings.Repeat("word ", 100)
	chunks := splitMessage(msg, 60)
	for i, c := range chunks {
		if len(c) > 60 {
			t.Errorf("chunk %d has %d bytes", i, len(c))
		}
		if strings.HasPrefix(c, " ") {
			t.Errorf("chunk %d starts with a space", i)
		}
	}
	if n := len(strings.Fields(strings.Join(chunks, " "))); n != 100 {
		t.Errorf("chunks hold %d words, want 100", n)
	}

	noSpaces := strings.Repeat("x", 25)
	if got := splitMessage(noSpaces, 10); len(got) != 3 || got[2] != "xxxxx" {
		t.Errorf("hard split = %v", got)
	}

	wide := strings.Repeat("日", 1000)
	chunks = splitMessage(wide, discordChunkSize)
	for i, c := range chunks {
		if !utf8.ValidString(c) {
			t.Errorf("chunk %d is invalid UTF-8 (len %d)", i, len(c))
		}
		if len(c) > discordChunkSize {
			t.Errorf("chunk %d has %d bytes", i, len(c))
		}
	}
	if strings.Join(chunks, "") != wide {
		t.Error("chunks do not reassemble the message")
	}

	// a single rune wider than the limit still makes progress
	if got := splitMessage("日日", 2); len(got) != 2 || got[0] != "日" {
		t.Errorf("narrow limit split = %q", got)
	}
}

func TestDiscordService_Respond(t *testing.T) {
	fake := &fakeCompleter{name: "chatgpt", available: true, reply: "Hi from the bot"}
	bot := NewChatbot(context.Background(), ChatbotConfig{Preferred: models.ProviderChatGPT}, fake)
	d := NewDiscordService(DiscordConfig{}, bot, DefaultIndex(), nil)

	if d.IsEnabled() {
		t.Fatal("service without token should be disabled")
	}
	if err := d.Start(); err == nil {
		t.Fatal("Start without token should fail")
	}

	if _, ok := d.respond(context.Background(), "c1", "just chatting"); ok {
		t.Fatal("non-command answered")
	}

	reply, ok := d.respond(context.Background(), "c1", "!chat hello")
	if !ok || reply != "Hi from the bot" {
		t.Fatalf("chat reply = %q, %v", reply, ok)
	}
	d.respond(context.Background(), "c1", "!chat again")
	d.respond(context.Background(), "c2", "!chat other channel")

	if fake.callCount() != 3 {
		t.Fatalf("calls = %d", fake.callCount())
	}
	if n := len(fake.calls[1]); n != 4 {
		t.Fatalf("second message in c1 sent %d turns, want 4", n)
	}
	if n := len(fake.calls[2]); n != 2 {
		t.Fatalf("first message in c2 sent %d turns, want 2", n)
	}

	reply, _ = d.respond(context.Background(), "c1", "!chat   ")
	if !strings.Contains(reply, "Please provide a message") {
		t.Fatalf("empty chat reply = %q", reply)
	}

	reply, _ = d.respond(context.Background(), "c1", "!search css")
	if !strings.Contains(reply, "#skills") {
		t.Fatalf("search reply = %q", reply)
	}
	reply, _ = d.respond(context.Background(), "c1", "!search quantum chromodynamics")
	if !strings.Contains(reply, "No results") {
		t.Fatalf("empty search reply = %q", reply)
	}

	if status := d.GetStatus(); status["status"] != "disabled" || status["channels"] != 2 {
		t.Fatalf("status = %v", status)
	}
}
