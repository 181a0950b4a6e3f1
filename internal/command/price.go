package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/domain"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/service/matcher"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/service/pricing"
	"go.uber.org/zap"
)

// PriceCommand runs the full lookup pipeline for one user query:
// resolve game, fetch deals, aggregate, format.
type PriceCommand struct {
	deps *Dependencies
}

func NewPriceCommand(deps *Dependencies) *PriceCommand {
	return &PriceCommand{deps: deps}
}

func (c *PriceCommand) Name() string {
	return domain.CommandPrice.String()
}

func (c *PriceCommand) Description() string {
	return "البحث عن أفضل سعر للعبة"
}

func (c *PriceCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	if err := c.ensureDeps(); err != nil {
		return err
	}

	rawQuery, _ := params["query"].(string)
	rawQuery = strings.TrimSpace(rawQuery)
	if rawQuery == "" {
		return c.deps.SendMessage(cmdCtx, c.deps.Formatter.FormatGameNotFound(rawQuery))
	}

	query := matcher.BuildQuery(rawQuery)

	record, err := c.deps.Resolver.Resolve(ctx, query)
	if err != nil {
		return c.replyForError(cmdCtx, rawQuery, err)
	}

	deals, err := c.listDeals(ctx, record.ID)
	if err != nil {
		return c.replyForError(cmdCtx, rawQuery, err)
	}

	c.enrichShopNames(deals)

	result, err := pricing.Aggregate(record, deals, c.deps.Catalog.Current())
	if err != nil {
		c.deps.Logger.Error("Aggregation failed",
			zap.String("game_id", record.ID),
			zap.Error(err),
		)
		return c.deps.SendError(cmdCtx, c.deps.Formatter.FormatError("حدث خطأ غير متوقع."))
	}

	return c.deps.SendMessage(cmdCtx, c.deps.Formatter.FormatPriceResult(result))
}

func (c *PriceCommand) listDeals(ctx context.Context, gameID string) ([]domain.Deal, error) {
	if c.deps.DealCache != nil {
		if deals, found := c.deps.DealCache.GetDeals(ctx, gameID, c.deps.Country); found {
			return deals, nil
		}
	}

	deals, err := c.deps.Provider.ListDeals(ctx, gameID, c.deps.Country)
	if err != nil {
		return nil, err
	}

	if c.deps.DealCache != nil {
		c.deps.DealCache.SetDeals(ctx, gameID, c.deps.Country, deals)
	}
	return deals, nil
}

func (c *PriceCommand) enrichShopNames(deals []domain.Deal) {
	if len(c.deps.ShopNames) == 0 {
		return
	}
	for i := range deals {
		if deals[i].ShopName == "" {
			deals[i].ShopName = c.deps.ShopNames[deals[i].ShopID]
		}
	}
}

func (c *PriceCommand) replyForError(cmdCtx *domain.CommandContext, rawQuery string, err error) error {
	switch {
	case errors.Is(err, domain.ErrGameNotFound):
		return c.deps.SendMessage(cmdCtx, c.deps.Formatter.FormatGameNotFound(rawQuery))
	case errors.Is(err, domain.ErrProviderUnavailable):
		c.deps.Logger.Warn("Price provider unavailable",
			zap.String("query", rawQuery),
			zap.Error(err),
		)
		return c.deps.SendError(cmdCtx, c.deps.Formatter.FormatProviderError())
	default:
		c.deps.Logger.Error("Price lookup failed",
			zap.String("query", rawQuery),
			zap.Error(err),
		)
		return c.deps.SendError(cmdCtx, c.deps.Formatter.FormatError("حدث خطأ غير متوقع."))
	}
}

func (c *PriceCommand) ensureDeps() error {
	if c == nil || c.deps == nil {
		return fmt.Errorf("price command dependencies not configured")
	}

	if c.deps.SendMessage == nil || c.deps.SendError == nil {
		return fmt.Errorf("message callbacks not configured")
	}

	if c.deps.Resolver == nil || c.deps.Provider == nil || c.deps.Catalog == nil || c.deps.Formatter == nil {
		return fmt.Errorf("price command services not configured")
	}

	return nil
}
