package domain

// GameQuery is built once per inbound message and discarded after the
// request completes.
type GameQuery struct {
	Raw             string
	NormalizedTitle string
	SteamAppID      int64
	HasSteamAppID   bool
}

// GameRecord is the canonical game identity returned by the price provider.
type GameRecord struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Deal is one shop's current offer for a game. Immutable value record.
// Amount is non-negative; a negative Amount means the provider omitted the
// price and the record must never rank as cheapest.
type Deal struct {
	ShopID   int     `json:"shop_id"`
	ShopName string  `json:"shop_name"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Cut      int     `json:"cut"`
	URL      string  `json:"url"`
}

// HasAmount reports whether the provider supplied a usable price.
func (d Deal) HasAmount() bool {
	return d.Amount >= 0
}

// AggregationResult composes a resolved game with its ranked deals.
// Deals are sorted ascending by amount and truncated to the top 5;
// CheapestIndex points at the first minimum-priced entry.
type AggregationResult struct {
	Record        GameRecord
	Deals         []Deal
	CheapestIndex int
	InCatalog     bool
}
