package command

import (
	"context"
	"fmt"

	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/domain"
)

type HelpCommand struct {
	deps *Dependencies
}

func NewHelpCommand(deps *Dependencies) *HelpCommand {
	return &HelpCommand{deps: deps}
}

func (c *HelpCommand) Name() string {
	return domain.CommandHelp.String()
}

func (c *HelpCommand) Description() string {
	return "عرض طريقة الاستخدام"
}

func (c *HelpCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	if c == nil || c.deps == nil || c.deps.SendMessage == nil || c.deps.Formatter == nil {
		return fmt.Errorf("help command dependencies not configured")
	}
	return c.deps.SendMessage(cmdCtx, c.deps.Formatter.FormatHelp())
}
