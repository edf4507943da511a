package notifier

import (
	"fmt"
	"strings"
	"time"

	"GalaPilot/internal/model"
)

// FormatRunReport formats the outcome of one agent run into a Telegram message.
func FormatRunReport(rec *model.ActionRecord, price string, portfolio *model.Portfolio) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🤖 <b>GalaPilot</b> | %s\n\n", rec.Timestamp.Format("2006-01-02 15:04")))
	if price != "" {
		b.WriteString(fmt.Sprintf("GALA price: %s GUSDC\n\n", price))
	}

	b.WriteString(fmt.Sprintf("💡 <b>Decision:</b> %s %s %s\n", rec.Action.Action, rec.Action.Amount, rec.Action.Token))
	if rec.Reasoning != "" {
		b.WriteString(fmt.Sprintf("Reasoning: %s\n", rec.Reasoning))
	}
	b.WriteString(fmt.Sprintf("\nResult: %s\n", rec.Result))

	if portfolio != nil {
		b.WriteString("\n📦 <b>Holdings</b>\n")
		for _, bal := range portfolio.Balances {
			b.WriteString(fmt.Sprintf("  %s: %s\n", bal.Symbol, bal.Quantity))
		}
	}
	return b.String()
}

// FormatFailure formats a run failure notice.
func FormatFailure(stage string, err error) string {
	return fmt.Sprintf("❌ <b>GalaPilot</b> | %s\n\nRun aborted at %s: %v",
		time.Now().Format("2006-01-02 15:04"), stage, err)
}
