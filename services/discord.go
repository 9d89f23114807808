package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"portfolio/models"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Discord caps messages at 2000 characters.
const (
	discordMessageLimit = 2000
	discordChunkSize    = 1900
)

// DiscordConfig configures the Discord front-end
type DiscordConfig struct {
	Token         string
	CommandPrefix string
	SearchPrefix  string
}

// DiscordService answers chat and search commands in Discord channels.
// Each channel has its own conversation.
type DiscordService struct {
	session       *discordgo.Session
	chatbot       *Chatbot
	index         *SearchIndex
	sessions      *SessionStore
	commandPrefix string
	searchPrefix  string
	enabled       bool
	startTime     time.Time
	logger        *zap.Logger
}

// NewDiscordService creates the front-end. Without a token the service is
// created disabled and Start reports an error.
func NewDiscordService(cfg DiscordConfig, chatbot *Chatbot, index *SearchIndex, logger *zap.Logger) *DiscordService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CommandPrefix == "" {
		cfg.CommandPrefix = "!chat "
	}
	if cfg.SearchPrefix == "" {
		cfg.SearchPrefix = "!search "
	}

	service := &DiscordService{
		chatbot:       chatbot,
		index:         index,
		sessions:      NewSessionStore("discord", chatbot.NewConversation),
		commandPrefix: cfg.CommandPrefix,
		searchPrefix:  cfg.SearchPrefix,
		startTime:     time.Now(),
		logger:        logger.Named("discord"),
	}

	if cfg.Token == "" {
		service.logger.Info("discord bot disabled: no bot token configured")
		return service
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		service.logger.Error("creating discord session", zap.Error(err))
		return service
	}
	service.session = session

	session.AddHandler(func(s *discordgo.Session, event *discordgo.Ready) {
		service.logger.Info("bot is online",
			zap.String("user", event.User.Username),
			zap.Int("guilds", len(event.Guilds)),
		)
	})
	session.AddHandler(service.messageCreate)
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

	service.enabled = true
	service.logger.Info("discord service initialized",
		zap.String("chat_prefix", cfg.CommandPrefix),
		zap.String("search_prefix", cfg.SearchPrefix),
	)
	return service
}

// Start opens the gateway connection
func (d *DiscordService) Start() error {
	if !d.enabled {
		return fmt.Errorf("discord service not enabled (missing bot token)")
	}
	if err := d.session.Open(); err != nil {
		return fmt.Errorf("opening discord connection: %w", err)
	}
	d.logger.Info("discord bot started")
	return nil
}

// Stop closes the gateway connection
func (d *DiscordService) Stop() error {
	if d.session != nil {
		return d.session.Close()
	}
	return nil
}

func (d *DiscordService) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if !d.handles(m.Content) {
		return
	}

	if err := s.ChannelTyping(m.ChannelID); err != nil {
		d.logger.Debug("typing indicator failed", zap.Error(err))
	}

	reply, ok := d.respond(context.Background(), m.ChannelID, m.Content)
	if !ok {
		return
	}
	d.sendMessage(s, m.ChannelID, reply)

	d.logger.Info("discord command",
		zap.String("user", m.Author.Username),
		zap.String("channel", m.ChannelID),
	)
}

func (d *DiscordService) handles(content string) bool {
	return strings.HasPrefix(content, d.commandPrefix) || strings.HasPrefix(content, d.searchPrefix)
}

// respond turns one channel message into the bot's reply. ok is false for
// messages that are not commands.
func (d *DiscordService) respond(ctx context.Context, channelID, content string) (string, bool) {
	switch {
	case strings.HasPrefix(content, d.searchPrefix):
		query := strings.TrimSpace(content[len(d.searchPrefix):])
		if query == "" {
			return fmt.Sprintf("Please provide a query after `%s`", strings.TrimSpace(d.searchPrefix)), true
		}
		return formatSearchResults(query, d.index.Search(query)), true

	case strings.HasPrefix(content, d.commandPrefix):
		text := strings.TrimSpace(content[len(d.commandPrefix):])
		if text == "" {
			return fmt.Sprintf("Please provide a message after `%s`", strings.TrimSpace(d.commandPrefix)), true
		}
		_, conv := d.sessions.GetOrCreate("discord_" + channelID)
		reply, ok := d.chatbot.Submit(ctx, conv, text)
		if !ok {
			return "", false
		}
		return reply.Turn.Content, true
	}
	return "", false
}

func formatSearchResults(query string, results []models.SearchEntry) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results found for %q.", query)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Results for %q:\n", query)
	for _, r := range results {
		fmt.Fprintf(&b, "- **%s** (%s): %s\n", r.Title, r.Anchor, r.Body)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// sendMessage sends a reply, splitting it when it exceeds Discord's limit
func (d *DiscordService) sendMessage(s *discordgo.Session, channelID, message string) {
	if len(message) <= discordMessageLimit {
		if _, err := s.ChannelMessageSend(channelID, message); err != nil {
			d.logger.Error("sending discord message", zap.Error(err))
		}
		return
	}

	chunks := splitMessage(message, discordChunkSize)
	for i, chunk := range chunks {
		if i > 0 {
			chunk = "...continued:\n" + chunk
		}
		if i < len(chunks)-1 {
			chunk += "\n..."
		}
		if _, err := s.ChannelMessageSend(channelID, chunk); err != nil {
			d.logger.Error("sending discord message chunk", zap.Int("chunk", i), zap.Error(err))
		}
		time.Sleep(200 * time.Millisecond)
	}
}

// splitMessage splits a message into chunks of at most maxLength bytes,
// preferring word boundaries in the second half of each chunk
func splitMessage(message string, maxLength int) []string {
	if len(message) <= maxLength {
		return []string{message}
	}

	var chunks []string
	for len(message) > maxLength {
		splitIndex := maxLength
		if spaceIndex := strings.LastIndex(message[:maxLength], " "); spaceIndex > maxLength/2 {
			splitIndex = spaceIndex
		}
		// never cut inside a multi-byte rune
		for splitIndex > 0 && !utf8.RuneStart(message[splitIndex]) {
			splitIndex--
		}
		if splitIndex == 0 {
			_, splitIndex = utf8.DecodeRuneInString(message)
		}
		chunks = append(chunks, message[:splitIndex])
		message = strings.TrimPrefix(message[splitIndex:], " ")
	}
	if len(message) > 0 {
		chunks = append(chunks, message)
	}
	return chunks
}

// IsEnabled reports whether a bot token was configured
func (d *DiscordService) IsEnabled() bool {
	return d.enabled
}

// GetStatus returns the current status of the Discord service
func (d *DiscordService) GetStatus() map[string]interface{} {
	status := map[string]interface{}{
		"enabled":        d.enabled,
		"command_prefix": d.commandPrefix,
		"search_prefix":  d.searchPrefix,
		"channels":       d.sessions.Len(),
		"uptime":         time.Since(d.startTime).String(),
	}

	switch {
	case d.enabled && d.session != nil && d.session.State != nil && d.session.State.User != nil:
		status["status"] = "connected"
		status["user"] = d.session.State.User.Username
		status["guilds"] = len(d.session.State.Guilds)
	case d.enabled:
		status["status"] = "initialized_not_started"
	default:
		status["status"] = "disabled"
	}
	return status
}
