package app

import (
	"context"
	"fmt"

	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/adapter"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/bot"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/command"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/config"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/constants"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/discord"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/domain"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/server"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/service/cache"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/service/catalog"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/service/cleanup"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/service/itad"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/service/matcher"
	"go.uber.org/zap"
)

// Container bundles assembled services for constructing runtime components like Bot.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	botDeps *bot.Dependencies
}

// NewBot instantiates a bot using the pre-built dependency graph.
func (c *Container) NewBot() (*bot.Bot, error) {
	if c == nil || c.botDeps == nil {
		return nil, fmt.Errorf("bot dependencies not initialized")
	}
	return bot.NewBot(c.botDeps)
}

// Build assembles all infrastructure services and returns a container capable
// of creating fully-wired bots. Heavy initialization (gateway session, redis,
// shop directory, catalog snapshot) happens here so bot.NewBot stays focused
// on orchestration.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	// Messaging primitives
	session, err := discord.NewSession(cfg.Discord.Token, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	messageAdapter := adapter.NewMessageAdapter(cfg.Bot.Prefix)
	formatter := adapter.NewResponseFormatter(cfg.Bot.Prefix)

	// Cache
	cacheSvc, err := cache.NewCacheService(cache.CacheConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache service: %w", err)
	}
	closers = append(closers, func() {
		_ = cacheSvc.Close()
	})

	// Price provider and supporting snapshots
	itadClient := itad.NewClient(cfg.ITAD.APIKey, logger)

	shopNames, shopErr := itadClient.ListShops(ctx, cfg.ITAD.Country)
	if shopErr != nil {
		logger.Warn("Shop directory unavailable, shop ids will be shown raw", zap.Error(shopErr))
		shopNames = map[int]string{}
	} else {
		logger.Info("Shop directory loaded", zap.Int("shops", len(shopNames)))
	}

	catalogSvc := catalog.NewService(cfg.Catalog.SourceURL, logger)
	catalogSvc.Refresh(ctx)

	resolver := matcher.NewGameResolver(itadClient, cacheSvc, logger)

	// Command pipeline
	cmdDeps := &command.Dependencies{
		Resolver:  resolver,
		Provider:  itadClient,
		DealCache: cacheSvc,
		Catalog:   catalogSvc,
		ShopNames: shopNames,
		Country:   cfg.ITAD.Country,
		Formatter: formatter,
		SendMessage: sendReply(session),
		SendError:   sendReply(session),
		Logger: logger,
	}

	registry := command.NewRegistry()
	registry.Register(command.NewPriceCommand(cmdDeps))
	registry.Register(command.NewHelpCommand(cmdDeps))
	dispatcher := command.NewSequentialDispatcher(registry)

	cleanupSvc := cleanup.NewService(session, session.BotUserID, cfg.Cleanup.Interval, logger)
	keepAlive := server.NewKeepAlive(cfg.KeepAlive.Addr, cacheSvc.IsConnected, logger)

	deps := &bot.Dependencies{
		Config:         cfg,
		Logger:         logger,
		Session:        session,
		MessageAdapter: messageAdapter,
		Dispatcher:     dispatcher,
		Catalog:        catalogSvc,
		Cleanup:        cleanupSvc,
		KeepAlive:      keepAlive,
	}

	return &Container{
		Config:  cfg,
		Logger:  logger,
		botDeps: deps,
	}, nil
}

func sendReply(session *discord.Session) func(cmdCtx *domain.CommandContext, message string) error {
	return func(cmdCtx *domain.CommandContext, message string) error {
		sendCtx, cancel := context.WithTimeout(context.Background(), constants.APIConfig.RequestTimeout)
		defer cancel()
		return session.SendReply(sendCtx, cmdCtx.ChannelID, cmdCtx.MessageID, cmdCtx.GuildID, message)
	}
}
