package itad

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/constants"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/domain"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/pkg/errors"
	"go.uber.org/zap"
)

// Client talks to the IsThereAnyDeal API. Every transport failure (non-2xx,
// timeout, malformed body) collapses into domain.ErrProviderUnavailable; the
// pipeline never retries.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(apiKey string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: constants.APIConfig.ITADBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: constants.APIConfig.RequestTimeout,
		},
		logger: logger,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a fake server.
func NewClientWithBaseURL(baseURL, apiKey string, logger *zap.Logger) *Client {
	c := NewClient(apiKey, logger)
	c.baseURL = baseURL
	return c
}

// LookupGameByAppID resolves a game from a Steam app id. Returns
// domain.ErrGameNotFound when the provider has no record for the id.
func (c *Client) LookupGameByAppID(ctx context.Context, appID int64) (*domain.GameRecord, error) {
	params := url.Values{}
	params.Set("appid", strconv.FormatInt(appID, 10))

	var resp lookupResponse
	if err := c.doRequest(ctx, http.MethodGet, "/games/lookup/v1", params, nil, &resp); err != nil {
		return nil, err
	}

	if !resp.Found || resp.Game == nil {
		return nil, domain.ErrGameNotFound
	}

	return &domain.GameRecord{ID: resp.Game.ID, Title: resp.Game.Title}, nil
}

// SearchGame returns up to constants.APIConfig.SearchResults candidates for a
// free-form title. An empty result set is not an error; the resolver decides
// whether any candidate is good enough.
func (c *Client) SearchGame(ctx context.Context, title string) ([]domain.GameRecord, error) {
	params := url.Values{}
	params.Set("title", title)
	params.Set("results", strconv.Itoa(constants.APIConfig.SearchResults))

	var payload []gamePayload
	if err := c.doRequest(ctx, http.MethodGet, "/games/search/v1", params, nil, &payload); err != nil {
		return nil, err
	}

	records := make([]domain.GameRecord, 0, len(payload))
	for _, g := range payload {
		records = append(records, domain.GameRecord{ID: g.ID, Title: g.Title})
	}
	return records, nil
}

// ListDeals fetches the current offers for one game. The provider exposes a
// bulk endpoint, so the request body is a single-element id list.
func (c *Client) ListDeals(ctx context.Context, gameID, country string) ([]domain.Deal, error) {
	params := url.Values{}
	params.Set("country", country)
	params.Set("deals", "true")
	params.Set("vouchers", "true")

	body, err := json.Marshal([]string{gameID})
	if err != nil {
		return nil, errors.NewAPIError("failed to marshal price request", 400, map[string]any{
			"game_id": gameID,
		}).WithCause(err)
	}

	var payload []gamePricesPayload
	if err := c.doRequest(ctx, http.MethodPost, "/games/prices/v3", params, body, &payload); err != nil {
		return nil, err
	}

	for _, entry := range payload {
		if entry.ID != gameID {
			continue
		}
		deals := make([]domain.Deal, 0, len(entry.Deals))
		for _, d := range entry.Deals {
			deals = append(deals, convertDeal(d))
		}
		return deals, nil
	}

	return []domain.Deal{}, nil
}

// ListShops fetches the shop directory for a country, used to resolve display
// names when a deal record omits them.
func (c *Client) ListShops(ctx context.Context, country string) (map[int]string, error) {
	params := url.Values{}
	params.Set("country", country)

	var payload []shopInfoPayload
	if err := c.doRequest(ctx, http.MethodGet, "/service/shops/v1", params, nil, &payload); err != nil {
		return nil, err
	}

	shops := make(map[int]string, len(payload))
	for _, s := range payload {
		shops[s.ID] = s.Title
	}
	return shops, nil
}

func convertDeal(d dealPayload) domain.Deal {
	deal := domain.Deal{
		Amount: -1, // provider omitted the price
		Cut:    d.Cut,
		URL:    d.URL,
	}
	if d.Shop != nil {
		deal.ShopID = d.Shop.ID
		deal.ShopName = d.Shop.Name
	}
	if d.Price != nil {
		deal.Amount = d.Price.Amount
		deal.Currency = d.Price.Currency
	}
	return deal
}

func (c *Client) doRequest(ctx context.Context, method, path string, params url.Values, reqBody []byte, respBody any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("key", c.apiKey)

	reqURL := c.baseURL + path + "?" + params.Encode()

	var bodyReader io.Reader
	if reqBody != nil {
		bodyReader = bytes.NewReader(reqBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return errors.NewAPIError("failed to create request", 500, map[string]any{
			"path": path,
		}).WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("ITAD request failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.logger.Error("ITAD API error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(bodyBytes)),
		)
		return fmt.Errorf("%w: status %d", domain.ErrProviderUnavailable, resp.StatusCode)
	}

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			c.logger.Error("ITAD response decode failed",
				zap.String("path", path),
				zap.Error(err),
			)
			return fmt.Errorf("%w: malformed response", domain.ErrProviderUnavailable)
		}
	}

	return nil
}
