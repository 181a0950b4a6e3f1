package cleanup

import (
	"context"
	"time"

	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/constants"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/domain"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// HistorySource is the slice of the chat transport the sweeper needs.
type HistorySource interface {
	ListTextChannels(ctx context.Context) ([]string, error)
	ListMessages(ctx context.Context, channelID string, limit int, beforeID string) ([]domain.ChatMessage, error)
	DeleteMessage(ctx context.Context, channelID, messageID string) error
}

// Service periodically sweeps channel history and deletes messages that are
// neither pinned nor authored by the bot. Failures are logged and swallowed;
// a missed sweep is recovered by the next tick.
type Service struct {
	source      HistorySource
	botUserID   func() string
	logger      *zap.Logger
	interval    time.Duration
	pageSize    int
	concurrency int
}

func NewService(source HistorySource, botUserID func() string, interval time.Duration, logger *zap.Logger) *Service {
	if interval <= 0 {
		interval = constants.CleanupConfig.Interval
	}
	return &Service{
		source:      source,
		botUserID:   botUserID,
		logger:      logger,
		interval:    interval,
		pageSize:    constants.CleanupConfig.PageSize,
		concurrency: constants.CleanupConfig.Concurrency,
	}
}

// Start runs the sweep loop until the context is cancelled.
func (s *Service) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep(ctx)
			}
		}
	}()
}

// Sweep runs one cleanup pass over every visible text channel, bounded to a
// fixed number of concurrent channel sweeps.
func (s *Service) Sweep(ctx context.Context) {
	channels, err := s.source.ListTextChannels(ctx)
	if err != nil {
		s.logger.Warn("Cleanup could not list channels", zap.Error(err))
		return
	}

	p := pool.New().WithMaxGoroutines(s.concurrency)
	for _, channelID := range channels {
		channelID := channelID
		p.Go(func() {
			s.sweepChannel(ctx, channelID)
		})
	}
	p.Wait()
}

func (s *Service) sweepChannel(ctx context.Context, channelID string) {
	messages, err := s.source.ListMessages(ctx, channelID, s.pageSize, "")
	if err != nil {
		s.logger.Warn("Cleanup could not read history",
			zap.String("channel_id", channelID),
			zap.Error(err),
		)
		return
	}

	botID := s.botUserID()
	deleted := 0
	for _, msg := range messages {
		if ctx.Err() != nil {
			return
		}
		if msg.Pinned {
			continue
		}
		if botID != "" && msg.AuthorID == botID {
			continue
		}

		if err := s.source.DeleteMessage(ctx, channelID, msg.ID); err != nil {
			s.logger.Debug("Cleanup delete failed",
				zap.String("channel_id", channelID),
				zap.String("message_id", msg.ID),
				zap.Error(err),
			)
			continue
		}
		deleted++
	}

	if deleted > 0 {
		s.logger.Info("Channel history cleaned",
			zap.String("channel_id", channelID),
			zap.Int("deleted", deleted),
		)
	}
}
