package adapter

import (
	"strings"
	"testing"

	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/domain"
)

func TestParseMessagePlainTextIsPriceQuery(t *testing.T) {
	ma := NewMessageAdapter("!")

	parsed := ma.ParseMessage("Cyberpunk 2077")
	if parsed.Type != domain.CommandPrice {
		t.Fatalf("expected price command, got %v", parsed.Type)
	}
	if parsed.Params["query"] != "Cyberpunk 2077" {
		t.Fatalf("unexpected query: %v", parsed.Params["query"])
	}
}

func TestParseMessagePrefixedPriceCommand(t *testing.T) {
	ma := NewMessageAdapter("!")

	parsed := ma.ParseMessage("!price Hollow Knight")
	if parsed.Type != domain.CommandPrice {
		t.Fatalf("expected price command, got %v", parsed.Type)
	}
	if parsed.Params["query"] != "Hollow Knight" {
		t.Fatalf("unexpected query: %v", parsed.Params["query"])
	}

	parsed = ma.ParseMessage("!سعر هيلو")
	if parsed.Type != domain.CommandPrice {
		t.Fatalf("expected Arabic price alias, got %v", parsed.Type)
	}
}

func TestParseMessageHelpCommand(t *testing.T) {
	ma := NewMessageAdapter("!")

	for _, input := range []string{"!help", "!HELP", "!مساعدة"} {
		parsed := ma.ParseMessage(input)
		if parsed.Type != domain.CommandHelp {
			t.Fatalf("expected help for %q, got %v", input, parsed.Type)
		}
	}
}

func TestParseMessageEmptyAndBareCommands(t *testing.T) {
	ma := NewMessageAdapter("!")

	if parsed := ma.ParseMessage(""); parsed.Type != domain.CommandUnknown {
		t.Fatalf("empty message must be unknown, got %v", parsed.Type)
	}
	if parsed := ma.ParseMessage("   "); parsed.Type != domain.CommandUnknown {
		t.Fatalf("whitespace message must be unknown, got %v", parsed.Type)
	}
	if parsed := ma.ParseMessage("!"); parsed.Type != domain.CommandUnknown {
		t.Fatalf("bare prefix must be unknown, got %v", parsed.Type)
	}
	if parsed := ma.ParseMessage("!price"); parsed.Type != domain.CommandUnknown {
		t.Fatalf("price command without a query must be unknown, got %v", parsed.Type)
	}
	if parsed := ma.ParseMessage("!dance"); parsed.Type != domain.CommandUnknown {
		t.Fatalf("unrecognized command must be unknown, got %v", parsed.Type)
	}
}

func TestParseMessageStripsControlCharacters(t *testing.T) {
	ma := NewMessageAdapter("!")

	parsed := ma.ParseMessage("Halo\x00 Infinite\x1f")
	if parsed.Type != domain.CommandPrice {
		t.Fatalf("expected price command, got %v", parsed.Type)
	}
	if query := parsed.Params["query"].(string); strings.ContainsAny(query, "\x00\x1f") {
		t.Fatalf("control characters survived sanitization: %q", query)
	}
}

func TestParseMessageTruncatesLongQuery(t *testing.T) {
	ma := NewMessageAdapter("!")

	parsed := ma.ParseMessage(strings.Repeat("a", 500))
	query := parsed.Params["query"].(string)
	if len(query) > 210 {
		t.Fatalf("expected truncated query, got %d chars", len(query))
	}
}
