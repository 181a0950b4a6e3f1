package command

import (
	"context"

	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/domain"
)

// CommandEvent is one parsed command awaiting execution.
type CommandEvent struct {
	Type   domain.CommandType
	Params map[string]any
}

// Dispatcher routes parsed command events to their handlers.
type Dispatcher interface {
	Publish(ctx context.Context, cmdCtx *domain.CommandContext, events ...CommandEvent) (int, error)
}

type sequentialDispatcher struct {
	registry *Registry
}

// NewSequentialDispatcher creates a dispatcher that executes command events
// in the order they are received.
func NewSequentialDispatcher(registry *Registry) Dispatcher {
	return &sequentialDispatcher{registry: registry}
}

func (d *sequentialDispatcher) Publish(ctx context.Context, cmdCtx *domain.CommandContext, events ...CommandEvent) (int, error) {
	if d == nil || d.registry == nil {
		return 0, nil
	}

	executed := 0
	for _, event := range events {
		if event.Type == domain.CommandUnknown {
			continue
		}

		params := cloneParams(event.Params)
		if err := d.registry.Execute(ctx, cmdCtx, event.Type.String(), params); err != nil {
			return executed, err
		}
		executed++
	}
	return executed, nil
}

func cloneParams(src map[string]any) map[string]any {
	if len(src) == 0 {
		return map[string]any{}
	}
	clone := make(map[string]any, len(src))
	for k, v := range src {
		clone[k] = v
	}
	return clone
}
