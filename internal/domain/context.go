package domain

import "time"

type CommandContext struct {
	ChannelID string
	MessageID string
	GuildID   string
	Sender    string
	Message   string
	Timestamp time.Time
}

func NewCommandContext(channelID, messageID, guildID, sender, message string) *CommandContext {
	return &CommandContext{
		ChannelID: channelID,
		MessageID: messageID,
		GuildID:   guildID,
		Sender:    sender,
		Message:   message,
		Timestamp: time.Now(),
	}
}
