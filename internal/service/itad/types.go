package itad

type gamePayload struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

type lookupResponse struct {
	Found bool         `json:"found"`
	Game  *gamePayload `json:"game"`
}

type shopPayload struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type pricePayload struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type dealPayload struct {
	Shop  *shopPayload  `json:"shop"`
	Price *pricePayload `json:"price"`
	Cut   int           `json:"cut"`
	URL   string        `json:"url"`
}

type gamePricesPayload struct {
	ID    string        `json:"id"`
	Deals []dealPayload `json:"deals"`
}

type shopInfoPayload struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}
