package bot

import (
	"context"
	"fmt"

	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/adapter"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/command"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/config"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/constants"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/discord"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/domain"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/server"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/service/catalog"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/service/cleanup"
	"go.uber.org/zap"
)

// Dependencies carries the assembled services the bot orchestrates.
type Dependencies struct {
	Config         *config.Config
	Logger         *zap.Logger
	Session        *discord.Session
	MessageAdapter *adapter.MessageAdapter
	Dispatcher     command.Dispatcher
	Catalog        *catalog.Service
	Cleanup        *cleanup.Service
	KeepAlive      *server.KeepAlive
}

// Bot wires the gateway event stream into the command pipeline and owns the
// background routines (catalog refresh, cleanup sweeps, keep-alive server).
type Bot struct {
	deps          *Dependencies
	removeHandler func()
}

func NewBot(deps *Dependencies) (*Bot, error) {
	if deps == nil {
		return nil, fmt.Errorf("bot dependencies must not be nil")
	}
	if deps.Session == nil || deps.MessageAdapter == nil || deps.Dispatcher == nil {
		return nil, fmt.Errorf("bot messaging dependencies not configured")
	}
	return &Bot{deps: deps}, nil
}

// Start connects the gateway and runs until the context is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	logger := b.deps.Logger

	b.removeHandler = b.deps.Session.OnMessage(func(msg *discord.InboundMessage) {
		go b.processMessage(ctx, msg)
	})

	if err := b.deps.Session.Open(); err != nil {
		return err
	}

	if b.deps.Catalog != nil {
		b.deps.Catalog.StartRefreshLoop(ctx, b.deps.Config.Catalog.RefreshInterval)
	}

	if b.deps.Cleanup != nil && b.deps.Config.Cleanup.Enabled {
		b.deps.Cleanup.Start(ctx)
		logger.Info("Message cleanup enabled",
			zap.Duration("interval", b.deps.Config.Cleanup.Interval),
		)
	}

	if b.deps.KeepAlive != nil {
		go func() {
			if err := b.deps.KeepAlive.Run(ctx); err != nil {
				logger.Error("Keep-alive server error", zap.Error(err))
			}
		}()
	}

	logger.Info("Bot is ready")
	<-ctx.Done()
	return nil
}

// Shutdown detaches handlers and closes the gateway connection.
func (b *Bot) Shutdown(ctx context.Context) error {
	if b.removeHandler != nil {
		b.removeHandler()
		b.removeHandler = nil
	}
	return b.deps.Session.Close()
}

// processMessage is the request boundary: one inbound event, one reply.
// Panics are recovered here so a malformed request cannot take down the
// event loop.
func (b *Bot) processMessage(ctx context.Context, msg *discord.InboundMessage) {
	logger := b.deps.Logger

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Recovered from panic in message handler",
				zap.Any("panic", r),
				zap.String("channel_id", msg.ChannelID),
			)
		}
	}()

	if msg.IsBot {
		return
	}

	parsed := b.deps.MessageAdapter.ParseMessage(msg.Content)
	if parsed.Type == domain.CommandUnknown {
		return
	}

	cmdCtx := domain.NewCommandContext(msg.ChannelID, msg.MessageID, msg.GuildID, msg.AuthorID, msg.Content)

	reqCtx, cancel := context.WithTimeout(ctx, constants.APIConfig.RequestTimeout)
	defer cancel()

	if _, err := b.deps.Dispatcher.Publish(reqCtx, cmdCtx, command.CommandEvent{
		Type:   parsed.Type,
		Params: parsed.Params,
	}); err != nil {
		logger.Error("Command execution failed",
			zap.String("command", parsed.Type.String()),
			zap.String("sender", msg.AuthorID),
			zap.Error(err),
		)
	}
}
