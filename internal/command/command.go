package command

import (
	"context"

	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/adapter"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/domain"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/service/catalog"
	"go.uber.org/zap"
)

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error
}

// GameResolver resolves raw queries into canonical game records.
type GameResolver interface {
	Resolve(ctx context.Context, query domain.GameQuery) (*domain.GameRecord, error)
}

// DealProvider lists current shop offers for a resolved game.
type DealProvider interface {
	ListDeals(ctx context.Context, gameID, country string) ([]domain.Deal, error)
}

// DealCache is the optional cross-process deal cache. A nil cache means
// every request goes to the provider.
type DealCache interface {
	GetDeals(ctx context.Context, gameID, country string) ([]domain.Deal, bool)
	SetDeals(ctx context.Context, gameID, country string, deals []domain.Deal)
}

// CatalogSource hands out the current subscription-catalog snapshot.
type CatalogSource interface {
	Current() *catalog.Snapshot
}

type Dependencies struct {
	Resolver    GameResolver
	Provider    DealProvider
	DealCache   DealCache
	Catalog     CatalogSource
	ShopNames   map[int]string
	Country     string
	Formatter   *adapter.ResponseFormatter
	SendMessage func(cmdCtx *domain.CommandContext, message string) error
	SendError   func(cmdCtx *domain.CommandContext, message string) error
	Logger      *zap.Logger
}
