package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// EventSource is a UI toolkit that delivers user actions to handlers.
// Web sockets, terminals and chat bots implement it.
type EventSource interface {
	OnSearchInput(handler func(query string))
	OnResultSelect(handler func(anchor string))
	OnChatSubmit(handler func(text string))
}

// Bind registers the widgets' handlers on src. Either widget may be nil
// when the surface only hosts the other one.
func Bind(ctx context.Context, src EventSource, search *SearchWidget, chat *ChatWidget, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if search != nil {
		src.OnSearchInput(func(query string) {
			search.Input(query)
		})
		src.OnResultSelect(func(anchor string) {
			if err := search.Select(anchor); err != nil {
				if errors.Is(err, ErrUnknownAnchor) {
					logger.Debug("ignoring selection of unknown anchor", zap.String("anchor", anchor))
					return
				}
				logger.Warn("search selection failed", zap.Error(err))
			}
		})
	}

	if chat != nil {
		src.OnChatSubmit(func(text string) {
			chat.Submit(ctx, text)
		})
	}
}
