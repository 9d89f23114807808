package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"portfolio/models"
)

// fakeCompleter records every transcript it is asked to complete
type fakeCompleter struct {
	name      string
	available bool
	reply     string
	err       error

	mu    sync.Mutex
	calls [][]models.ConversationTurn
}

func (f *fakeCompleter) Name() string                   { return f.name }
func (f *fakeCompleter) Available(context.Context) bool { return f.available }

func (f *fakeCompleter) Complete(_ context.Context, turns []models.ConversationTurn) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, turns)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeCompleter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestChatbot(t *testing.T, c *fakeCompleter) *Chatbot {
	t.Helper()
	return NewChatbot(context.Background(), ChatbotConfig{
		Preferred:    models.ProviderChatGPT,
		SystemPrompt: "system prompt",
	}, c)
}

func TestSubmit_BlankIsIgnored(t *testing.T) {
	fake := &fakeCompleter{name: "chatgpt", available: true, reply: "unused"}
	bot := newTestChatbot(t, fake)
	conv := bot.NewConversation()

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, ok := bot.Submit(context.Background(), conv, text); ok {
			t.Errorf("Submit(%q) reported ok", text)
		}
	}
	if conv.Len() != 1 {
		t.Fatalf("history length = %d, want only the system turn", conv.Len())
	}
	if fake.callCount() != 0 {
		t.Fatalf("completion called %d times for blank input", fake.callCount())
	}
}

func TestSubmit_FailureKeepsOnlyUserTurn(t *testing.T) {
	fake := &fakeCompleter{name: "chatgpt", available: true, err: errors.New("503 service unavailable")}
	bot := newTestChatbot(t, fake)
	conv := bot.NewConversation()
	before := conv.Turns()

	reply, ok := bot.Submit(context.Background(), conv, "hello")
	if !ok {
		t.Fatal("Submit reported not ok")
	}
	if !reply.Failed || reply.Err == nil {
		t.Fatalf("reply = %+v, want failed with error", reply)
	}
	if reply.Turn.Content != DefaultFallbackMessage {
		t.Fatalf("displayed %q, want fallback", reply.Turn.Content)
	}

	after := conv.Turns()
	if len(after) != len(before)+1 {
		t.Fatalf("history grew by %d turns, want 1", len(after)-len(before))
	}
	last := after[len(after)-1]
	if last.Role != models.RoleUser || last.Content != "hello" {
		t.Fatalf("last turn = %+v, want user hello", last)
	}
}

func TestSubmit_SuccessAppendsPair(t *testing.T) {
	fake := &fakeCompleter{name: "chatgpt", available: true, reply: "Hi there!"}
	bot := newTestChatbot(t, fake)
	conv := bot.NewConversation()
	before := conv.Len()

	reply, ok := bot.Submit(context.Background(), conv, "hello")
	if !ok || reply.Failed {
		t.Fatalf("reply = %+v ok=%v", reply, ok)
	}
	if reply.Turn.Content != "Hi there!" {
		t.Fatalf("displayed %q, want Hi there!", reply.Turn.Content)
	}

	turns := conv.Turns()
	if len(turns) != before+2 {
		t.Fatalf("history length = %d, want %d", len(turns), before+2)
	}
	want := []models.ConversationTurn{
		{Role: models.RoleUser, Content: "hello"},
		{Role: models.RoleAssistant, Content: "Hi there!"},
	}
	for i, w := range want {
		if got := turns[before+i]; got != w {
			t.Errorf("turn %d = %+v, want %+v", before+i, got, w)
		}
	}
}

func TestSubmit_SendsWholeHistory(t *testing.T) {
	fake := &fakeCompleter{name: "chatgpt", available: true, reply: "ok"}
	bot := newTestChatbot(t, fake)
	conv := bot.NewConversation()

	bot.Submit(context.Background(), conv, "first")
	bot.Submit(context.Background(), conv, "  second  ")

	if fake.callCount() != 2 {
		t.Fatalf("calls = %d, want 2", fake.callCount())
	}
	sent := fake.calls[1]
	want := []models.ConversationTurn{
		{Role: models.RoleSystem, Content: "system prompt"},
		{Role: models.RoleUser, Content: "first"},
		{Role: models.RoleAssistant, Content: "ok"},
		{Role: models.RoleUser, Content: "second"},
	}
	if len(sent) != len(want) {
		t.Fatalf("sent %d turns, want %d", len(sent), len(want))
	}
	for i := range want {
		if sent[i] != want[i] {
			t.Errorf("sent[%d] = %+v, want %+v", i, sent[i], want[i])
		}
	}
}

func TestSubmit_ConcurrentStaysPaired(t *testing.T) {
	fake := &fakeCompleter{name: "chatgpt", available: true, reply: "ack"}
	bot := newTestChatbot(t, fake)
	conv := bot.NewConversation()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			bot.Submit(context.Background(), conv, fmt.Sprintf("msg %d", i))
		}(i)
	}
	wg.Wait()

	turns := conv.Turns()
	if len(turns) != 41 {
		t.Fatalf("history length = %d, want 41", len(turns))
	}
	if turns[0].Role != models.RoleSystem {
		t.Fatalf("first turn is %s, want system", turns[0].Role)
	}
	for i := 1; i < len(turns); i += 2 {
		if turns[i].Role != models.RoleUser || turns[i+1].Role != models.RoleAssistant {
			t.Fatalf("turns %d/%d = %s/%s, want user/assistant", i, i+1, turns[i].Role, turns[i+1].Role)
		}
	}
}

func TestNewChatbot_ProviderSelection(t *testing.T) {
	tests := []struct {
		name      string
		preferred models.LLMProvider
		local     bool
		chatgpt   bool
		want      models.LLMProvider
	}{
		{"auto prefers local", models.ProviderAuto, true, true, models.ProviderLocal},
		{"auto falls back to chatgpt", models.ProviderAuto, false, true, models.ProviderChatGPT},
		{"chatgpt preferred", models.ProviderChatGPT, true, true, models.ProviderChatGPT},
		{"chatgpt falls back to local", models.ProviderChatGPT, true, false, models.ProviderLocal},
		{"nothing reachable", models.ProviderLocal, false, false, models.ProviderDummy},
		{"dummy forced", models.ProviderDummy, true, true, models.ProviderDummy},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bot := NewChatbot(context.Background(), ChatbotConfig{Preferred: tc.preferred},
				&fakeCompleter{name: "local", available: tc.local},
				&fakeCompleter{name: "chatgpt", available: tc.chatgpt},
			)
			if got := bot.GetCurrentProvider(); got != tc.want {
				t.Fatalf("provider = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestRefreshProviders(t *testing.T) {
	local := &fakeCompleter{name: "local", available: false}
	bot := NewChatbot(context.Background(), ChatbotConfig{Preferred: models.ProviderLocal}, local)
	if got := bot.GetCurrentProvider(); got != models.ProviderDummy {
		t.Fatalf("provider = %s, want dummy", got)
	}

	local.available = true
	if got := bot.RefreshProviders(context.Background()); got != models.ProviderLocal {
		t.Fatalf("after refresh provider = %s, want local", got)
	}
}

func TestDummyCompleter(t *testing.T) {
	d := NewDummyCompleter()
	reply, err := d.Complete(context.Background(), []models.ConversationTurn{
		{Role: models.RoleSystem, Content: "sys"},
		{Role: models.RoleUser, Content: "What skills do you have?"},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if reply == "" {
		t.Fatal("empty reply")
	}
}

func TestChatbot_TrySubmit(t *testing.T) {
	fake := &fakeCompleter{name: "chatgpt", available: true, reply: "hello"}
	bot := newTestChatbot(t, fake)
	conv := bot.NewConversation()

	if _, ok, err := bot.TrySubmit(context.Background(), conv, "   "); ok || err != nil {
		t.Fatalf("blank TrySubmit = ok %v, err %v", ok, err)
	}

	conv.submitMu.Lock()
	_, ok, err := bot.TrySubmit(context.Background(), conv, "while busy")
	conv.submitMu.Unlock()
	if ok || !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("busy TrySubmit = ok %v, err %v", ok, err)
	}
	if conv.Len() != 1 || fake.callCount() != 0 {
		t.Fatalf("busy TrySubmit touched the conversation: len %d, calls %d", conv.Len(), fake.callCount())
	}

	reply, ok, err := bot.TrySubmit(context.Background(), conv, "hi")
	if err != nil || !ok || reply.Turn.Content != "hello" {
		t.Fatalf("TrySubmit = %+v, %v, %v", reply, ok, err)
	}
	if conv.Len() != 3 {
		t.Fatalf("conversation has %d turns, want 3", conv.Len())
	}
}
