package adapter

import (
	"regexp"
	"strings"

	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/constants"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/domain"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/util"
)

var controlCharsPattern = regexp.MustCompile(`[\x00-\x1F\x7F]`)

// MessageAdapter converts inbound Discord messages to bot commands.
// Any non-command message is treated as a price query, matching the source
// bot's behavior of answering every user message.
type MessageAdapter struct {
	prefix string
}

// NewMessageAdapter creates a new MessageAdapter
func NewMessageAdapter(prefix string) *MessageAdapter {
	if strings.TrimSpace(prefix) == "" {
		prefix = "!"
	}
	return &MessageAdapter{prefix: prefix}
}

// ParsedCommand represents a parsed command
type ParsedCommand struct {
	Type       domain.CommandType
	Params     map[string]any
	RawMessage string
}

// ParseMessage parses a Discord message into a command
func (ma *MessageAdapter) ParseMessage(content string) *ParsedCommand {
	text := strings.TrimSpace(ma.sanitize(content))
	if text == "" {
		return ma.createUnknownCommand(text)
	}

	if strings.HasPrefix(text, ma.prefix) {
		commandText := strings.TrimSpace(text[len(ma.prefix):])
		parts := strings.Fields(commandText)
		if len(parts) == 0 {
			return ma.createUnknownCommand(text)
		}

		command := strings.ToLower(parts[0])
		args := strings.TrimSpace(strings.Join(parts[1:], " "))

		if ma.isHelpCommand(command) {
			return &ParsedCommand{
				Type:       domain.CommandHelp,
				Params:     make(map[string]any),
				RawMessage: text,
			}
		}

		if ma.isPriceCommand(command) && args != "" {
			return &ParsedCommand{
				Type:       domain.CommandPrice,
				Params:     map[string]any{"query": args},
				RawMessage: text,
			}
		}

		return ma.createUnknownCommand(text)
	}

	query := util.TruncateString(text, constants.Limits.MaxQueryLength)
	return &ParsedCommand{
		Type:       domain.CommandPrice,
		Params:     map[string]any{"query": query},
		RawMessage: text,
	}
}

func (ma *MessageAdapter) isHelpCommand(command string) bool {
	return util.Contains([]string{"help", "مساعدة"}, command)
}

func (ma *MessageAdapter) isPriceCommand(command string) bool {
	return util.Contains([]string{"price", "سعر"}, command)
}

func (ma *MessageAdapter) sanitize(text string) string {
	return controlCharsPattern.ReplaceAllString(text, "")
}

func (ma *MessageAdapter) createUnknownCommand(text string) *ParsedCommand {
	return &ParsedCommand{
		Type:       domain.CommandUnknown,
		Params:     make(map[string]any),
		RawMessage: text,
	}
}
