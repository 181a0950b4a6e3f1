package adapter

import (
	"fmt"
	"strings"

	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/constants"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/domain"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/util"
)

// ResponseFormatter renders pipeline results into outbound messages.
// Pure string building, no I/O.
type ResponseFormatter struct {
	prefix string
}

// NewResponseFormatter creates a new ResponseFormatter
func NewResponseFormatter(prefix string) *ResponseFormatter {
	if strings.TrimSpace(prefix) == "" {
		prefix = "!"
	}
	return &ResponseFormatter{prefix: prefix}
}

// FormatPriceResult formats ranked deals for a resolved game. The cheapest
// entry is visually distinguished and the Game Pass membership indicator
// closes the message.
func (f *ResponseFormatter) FormatPriceResult(result *domain.AggregationResult) string {
	if result == nil {
		return f.FormatError("حدث خطأ غير متوقع.")
	}

	title := util.TruncateString(result.Record.Title, constants.Limits.GameTitle)

	if len(result.Deals) == 0 {
		return f.FormatNoOffers(title)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🎮 أفضل سعر للعبة: %s\n\n", title))

	for i, deal := range result.Deals {
		marker := "🏷"
		if i == result.CheapestIndex {
			marker = "⭐"
		}

		sb.WriteString(fmt.Sprintf("%s %s: %s", marker, shopLabel(deal), priceLabel(deal)))
		if deal.Cut > 0 {
			sb.WriteString(fmt.Sprintf(" (خصم %d%%)", deal.Cut))
		}
		sb.WriteString("\n")

		if deal.URL != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", deal.URL))
		}
	}

	sb.WriteString("\n")
	if result.InCatalog {
		sb.WriteString("✅ متوفرة على Game Pass")
	} else {
		sb.WriteString("❌ غير متوفرة على Game Pass")
	}

	return sb.String()
}

// FormatNoOffers formats the informational reply for a game without offers.
func (f *ResponseFormatter) FormatNoOffers(title string) string {
	return fmt.Sprintf("ℹ️ %s\nلا توجد عروض متاحة حاليًا لهذه اللعبة.", title)
}

// FormatGameNotFound formats the informational reply for an unresolved query.
func (f *ResponseFormatter) FormatGameNotFound(query string) string {
	name := util.TruncateString(strings.TrimSpace(query), constants.Limits.GameTitle)
	if name == "" {
		return "❌ لعبة غير موجودة\nلم أتمكن من العثور على اللعبة التي تبحث عنها."
	}
	return fmt.Sprintf("❌ لعبة غير موجودة\nلم أتمكن من العثور على \"%s\".", name)
}

// FormatProviderError formats the user-visible message for a provider outage.
func (f *ResponseFormatter) FormatProviderError() string {
	return f.FormatError("خدمة الأسعار غير متاحة حاليًا، حاول مرة أخرى لاحقًا.")
}

// FormatError formats error message
func (f *ResponseFormatter) FormatError(message string) string {
	return fmt.Sprintf("❌ %s", message)
}

// FormatHelp formats help message
func (f *ResponseFormatter) FormatHelp() string {
	return fmt.Sprintf(`🎮 بوت أسعار الألعاب

أرسل اسم اللعبة أو رابط متجر Steam وسأرد بأفضل الأسعار الحالية
مع توفرها على Game Pass.

أمثلة:
  Cyberpunk 2077
  https://store.steampowered.com/app/1659420

أوامر:
  %shelp - عرض هذه الرسالة`, f.prefix)
}

func shopLabel(deal domain.Deal) string {
	if deal.ShopName != "" {
		return deal.ShopName
	}
	return fmt.Sprintf("متجر %d", deal.ShopID)
}

func priceLabel(deal domain.Deal) string {
	if !deal.HasAmount() {
		return "السعر غير معروف"
	}
	currency := deal.Currency
	if currency == "" {
		currency = "USD"
	}
	return fmt.Sprintf("%.2f %s", deal.Amount, currency)
}
