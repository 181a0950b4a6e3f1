package matcher

import (
	"context"
	"errors"

	"github.com/agnivade/levenshtein"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/constants"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/domain"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/util"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// GameProvider is the slice of the price-provider client the resolver needs.
type GameProvider interface {
	LookupGameByAppID(ctx context.Context, appID int64) (*domain.GameRecord, error)
	SearchGame(ctx context.Context, title string) ([]domain.GameRecord, error)
}

// RecordCache is the cross-process cache for resolved records.
type RecordCache interface {
	GetGameRecord(ctx context.Context, normalizedTitle string) (*domain.GameRecord, bool)
	SetGameRecord(ctx context.Context, normalizedTitle string, record *domain.GameRecord)
}

// GameResolver turns a raw user query into a canonical GameRecord: direct
// Steam app-id lookup when the user pasted a link or id, otherwise a provider
// search ranked by similarity ratio against the normalized hint.
type GameResolver struct {
	provider GameProvider
	cache    RecordCache
	local    *gocache.Cache
	logger   *zap.Logger
}

func NewGameResolver(provider GameProvider, cache RecordCache, logger *zap.Logger) *GameResolver {
	return &GameResolver{
		provider: provider,
		cache:    cache,
		local:    gocache.New(constants.CacheTTL.MatchLocal, 2*constants.CacheTTL.MatchLocal),
		logger:   logger,
	}
}

// BuildQuery derives the per-request query value from the raw message text.
func BuildQuery(raw string) domain.GameQuery {
	query := domain.GameQuery{
		Raw:             raw,
		NormalizedTitle: util.NormalizeTitle(raw),
	}
	if id, ok := util.ExtractSteamAppID(raw); ok {
		query.SteamAppID = id
		query.HasSteamAppID = true
	}
	return query
}

// Similarity is the uniform fuzzy-match measure: 1 - levenshtein/maxlen over
// already-normalized strings. 1 means identical, 0 means nothing in common.
func Similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1
	}

	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}

// Resolve returns the canonical record for a query, or domain.ErrGameNotFound
// when no candidate clears the similarity threshold. A pasted id or store
// link that the provider does not recognize is reported as not found rather
// than fuzzy-matched against the link text.
func (r *GameResolver) Resolve(ctx context.Context, query domain.GameQuery) (*domain.GameRecord, error) {
	if query.HasSteamAppID {
		record, err := r.provider.LookupGameByAppID(ctx, query.SteamAppID)
		if err != nil {
			return nil, err
		}
		return record, nil
	}

	if query.NormalizedTitle == "" {
		return nil, domain.ErrGameNotFound
	}

	if record, found := r.lookupCached(ctx, query.NormalizedTitle); found {
		return record, nil
	}

	candidates, err := r.provider.SearchGame(ctx, query.Raw)
	if err != nil {
		return nil, err
	}

	record := r.selectBest(query.NormalizedTitle, candidates)
	if record == nil {
		return nil, domain.ErrGameNotFound
	}

	r.storeCached(ctx, query.NormalizedTitle, record)
	return record, nil
}

func (r *GameResolver) selectBest(normalizedHint string, candidates []domain.GameRecord) *domain.GameRecord {
	var best *domain.GameRecord
	bestScore := 0.0

	for i := range candidates {
		score := Similarity(normalizedHint, util.NormalizeTitle(candidates[i].Title))
		if best == nil || score > bestScore {
			best = &candidates[i]
			bestScore = score
		}
	}

	if best == nil || bestScore < constants.APIConfig.MatchThreshold {
		if best != nil {
			r.logger.Debug("Best candidate below threshold",
				zap.String("hint", normalizedHint),
				zap.String("candidate", best.Title),
				zap.Float64("score", bestScore),
			)
		}
		return nil
	}

	r.logger.Debug("Game matched",
		zap.String("hint", normalizedHint),
		zap.String("title", best.Title),
		zap.Float64("score", bestScore),
	)
	return best
}

func (r *GameResolver) lookupCached(ctx context.Context, normalizedTitle string) (*domain.GameRecord, bool) {
	if cached, found := r.local.Get(normalizedTitle); found {
		if record, ok := cached.(*domain.GameRecord); ok {
			return record, true
		}
	}

	if r.cache != nil {
		if record, found := r.cache.GetGameRecord(ctx, normalizedTitle); found {
			r.local.SetDefault(normalizedTitle, record)
			return record, true
		}
	}

	return nil, false
}

func (r *GameResolver) storeCached(ctx context.Context, normalizedTitle string, record *domain.GameRecord) {
	r.local.SetDefault(normalizedTitle, record)
	if r.cache != nil {
		r.cache.SetGameRecord(ctx, normalizedTitle, record)
	}
}

// IsNotFound reports whether an error is the expected no-match outcome.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrGameNotFound)
}
