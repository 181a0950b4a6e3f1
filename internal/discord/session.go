package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/domain"
	"go.uber.org/zap"
)

// InboundMessage is one user message delivered by the gateway.
type InboundMessage struct {
	ChannelID  string
	MessageID  string
	GuildID    string
	AuthorID   string
	AuthorName string
	Content    string
	IsBot      bool
}

type MessageHandler func(msg *InboundMessage)

// Session wraps the Discord gateway connection and the REST calls the bot
// needs: replies, channel history and message deletion.
type Session struct {
	session *discordgo.Session
	logger  *zap.Logger
}

func NewSession(token string, logger *zap.Logger) (*Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent
	s.StateEnabled = true

	return &Session{
		session: s,
		logger:  logger,
	}, nil
}

// OnMessage registers a handler for inbound user messages. The returned
// function removes the handler.
func (s *Session) OnMessage(handler MessageHandler) func() {
	return s.session.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		if m == nil || m.Author == nil {
			return
		}
		handler(&InboundMessage{
			ChannelID:  m.ChannelID,
			MessageID:  m.ID,
			GuildID:    m.GuildID,
			AuthorID:   m.Author.ID,
			AuthorName: m.Author.Username,
			Content:    m.Content,
			IsBot:      m.Author.Bot,
		})
	})
}

func (s *Session) Open() error {
	if err := s.session.Open(); err != nil {
		s.logger.Error("Failed to open Discord gateway", zap.Error(err))
		return err
	}
	s.logger.Info("Discord gateway connected",
		zap.String("user", s.BotUsername()),
	)
	return nil
}

func (s *Session) Close() error {
	if err := s.session.Close(); err != nil {
		s.logger.Error("Failed to close Discord gateway", zap.Error(err))
		return err
	}
	s.logger.Info("Discord gateway disconnected")
	return nil
}

func (s *Session) BotUserID() string {
	if s.session.State == nil || s.session.State.User == nil {
		return ""
	}
	return s.session.State.User.ID
}

func (s *Session) BotUsername() string {
	if s.session.State == nil || s.session.State.User == nil {
		return ""
	}
	return s.session.State.User.Username
}

// SendReply sends a message quoting the triggering message.
func (s *Session) SendReply(ctx context.Context, channelID, messageID, guildID, content string) error {
	_, err := s.session.ChannelMessageSendReply(channelID, content, &discordgo.MessageReference{
		MessageID: messageID,
		ChannelID: channelID,
		GuildID:   guildID,
	}, discordgo.WithContext(ctx))
	if err != nil {
		s.logger.Error("Failed to send reply",
			zap.String("channel_id", channelID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// ListTextChannels returns the ids of all guild text channels the bot can
// see, from gateway state with a REST fallback per guild.
func (s *Session) ListTextChannels(ctx context.Context) ([]string, error) {
	if s.session.State == nil {
		return nil, fmt.Errorf("discord state not available")
	}

	var channelIDs []string
	for _, guild := range s.session.State.Guilds {
		channels := guild.Channels
		if len(channels) == 0 {
			fetched, err := s.session.GuildChannels(guild.ID, discordgo.WithContext(ctx))
			if err != nil {
				s.logger.Warn("Failed to list guild channels",
					zap.String("guild_id", guild.ID),
					zap.Error(err),
				)
				continue
			}
			channels = fetched
		}

		for _, ch := range channels {
			if ch.Type == discordgo.ChannelTypeGuildText {
				channelIDs = append(channelIDs, ch.ID)
			}
		}
	}

	return channelIDs, nil
}

// ListMessages pages one channel's history, newest first.
func (s *Session) ListMessages(ctx context.Context, channelID string, limit int, beforeID string) ([]domain.ChatMessage, error) {
	messages, err := s.session.ChannelMessages(channelID, limit, beforeID, "", "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	result := make([]domain.ChatMessage, 0, len(messages))
	for _, m := range messages {
		if m == nil || m.Author == nil {
			continue
		}
		result = append(result, domain.ChatMessage{
			ID:       m.ID,
			AuthorID: m.Author.ID,
			Pinned:   m.Pinned,
		})
	}
	return result, nil
}

func (s *Session) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	return s.session.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx))
}
