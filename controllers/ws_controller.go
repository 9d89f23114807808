package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"portfolio/logger"
	"portfolio/models"
	"portfolio/services"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Inbound websocket message types
const (
	wsSearchInput  = "search_input"
	wsSearchSelect = "search_select"
	wsChatSubmit   = "chat_submit"
)

// Outbound websocket message types
const (
	wsSession         = "session"
	wsSearchResults   = "search_results"
	wsSearchDismissed = "search_dismissed"
	wsScrollTo        = "scroll_to"
	wsChatTurn        = "chat_turn"
	wsChatPending     = "chat_pending"
	wsChatReply       = "chat_reply"
	wsError           = "error"
)

const wsChatQueueSize = 8

// wsInbound is a page event sent by the browser
type wsInbound struct {
	Type   string `json:"type"`
	Query  string `json:"query,omitempty"`
	Anchor string `json:"anchor,omitempty"`
	Text   string `json:"text,omitempty"`
}

// wsOutbound is a render instruction sent to the browser
type wsOutbound struct {
	Type      string                   `json:"type"`
	SessionID string                   `json:"session_id,omitempty"`
	Query     string                   `json:"query,omitempty"`
	State     models.SearchState       `json:"state,omitempty"`
	Results   []models.SearchEntry     `json:"results,omitempty"`
	Anchor    string                   `json:"anchor,omitempty"`
	Turn      *models.ConversationTurn `json:"turn,omitempty"`
	HTML      string                   `json:"html,omitempty"`
	Failed    bool                     `json:"failed,omitempty"`
	Error     string                   `json:"error,omitempty"`
}

// wsPage is one browser tab: an event source for the widgets and the
// view they render into
type wsPage struct {
	conn   *websocket.Conn
	writeM sync.Mutex
	ctx    context.Context
	logger *zap.Logger

	onSearch func(string)
	onSelect func(string)
	onChat   func(string)
}

func (p *wsPage) OnSearchInput(h func(string))  { p.onSearch = h }
func (p *wsPage) OnResultSelect(h func(string)) { p.onSelect = h }
func (p *wsPage) OnChatSubmit(h func(string))   { p.onChat = h }

func (p *wsPage) send(msg wsOutbound) {
	p.writeM.Lock()
	defer p.writeM.Unlock()
	if err := p.conn.WriteJSON(msg); err != nil {
		p.logger.Debug("websocket write", zap.Error(err))
	}
}

func (p *wsPage) RenderResults(query string, results []models.SearchEntry, state models.SearchState) {
	p.send(wsOutbound{Type: wsSearchResults, Query: query, State: state, Results: results})
}

func (p *wsPage) Dismiss() {
	p.send(wsOutbound{Type: wsSearchDismissed})
}

func (p *wsPage) ScrollTo(anchor string) {
	p.send(wsOutbound{Type: wsScrollTo, Anchor: anchor})
}

func (p *wsPage) AppendTurn(turn models.ConversationTurn) {
	p.send(wsOutbound{Type: wsChatTurn, Turn: &turn})
}

func (p *wsPage) ShowPending() {
	p.send(wsOutbound{Type: wsChatPending})
}

func (p *wsPage) Resolve(reply services.Reply) {
	turn := reply.Turn
	p.send(wsOutbound{
		Type:   wsChatReply,
		Turn:   &turn,
		HTML:   renderReply(p.ctx, reply),
		Failed: reply.Failed,
	})
}

func (c *Controller) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range c.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// WebSocketHandler drives the search and chat widgets from browser events.
// The session_id query parameter resumes an existing conversation.
func (c *Controller) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: c.checkOrigin}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.FromContext(r.Context()).Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	sessionID, conv := c.sessions.GetOrCreate(r.URL.Query().Get("session_id"))
	ctx, l := logger.WithSession(context.WithoutCancel(r.Context()), sessionID)

	page := &wsPage{conn: conn, ctx: ctx, logger: l}
	search := services.NewSearchWidget(c.index, page)
	chat := services.NewChatWidget(c.chatbot, conv, page)
	services.Bind(ctx, page, search, chat, l)

	page.send(wsOutbound{Type: wsSession, SessionID: sessionID})

	// one worker per page keeps chat submissions in the order they were typed
	queue := make(chan string, wsChatQueueSize)
	closed := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		if dropped := drainChatQueue(queue, closed, page.onChat); dropped > 0 {
			l.Debug("dropped queued chat messages after disconnect", zap.Int("count", dropped))
		}
	}()
	defer func() {
		close(closed)
		close(queue)
		<-done
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				l.Warn("websocket read", zap.Error(err))
			}
			return
		}

		var msg wsInbound
		if err := json.Unmarshal(data, &msg); err != nil {
			page.send(wsOutbound{Type: wsError, Error: "invalid message format"})
			continue
		}

		switch msg.Type {
		case wsSearchInput:
			page.onSearch(msg.Query)
		case wsSearchSelect:
			page.onSelect(msg.Anchor)
		case wsChatSubmit:
			select {
			case queue <- msg.Text:
			default:
				page.send(wsOutbound{Type: wsError, Error: "too many pending messages"})
			}
		default:
			page.send(wsOutbound{Type: wsError, Error: "unknown message type: " + msg.Type})
		}
	}
}

// drainChatQueue submits queued messages in order until queue is closed.
// Once closed is signalled the page is gone, so messages still waiting are
// dropped without reaching the chatbot; the transcript only ever holds
// turns whose reply someone was waiting for. Returns the number dropped.
func drainChatQueue(queue <-chan string, closed <-chan struct{}, submit func(string)) int {
	dropped := 0
	for text := range queue {
		select {
		case <-closed:
			dropped++
			continue
		default:
		}
		submit(text)
	}
	return dropped
}
