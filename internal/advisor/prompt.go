package advisor

import (
	"encoding/json"
	"fmt"
	"strings"

	"GalaPilot/internal/model"
)

// BuildPrompt assembles the reasoning request from the raw price history
// (newest first, embedded verbatim), the current balances and a chronological
// replay of prior actions (oldest first within the retained slice).
func BuildPrompt(priceHistory string, balances []model.TokenBalance, records []model.ActionRecord) string {
	balancesJSON, err := json.Marshal(balances)
	if err != nil {
		balancesJSON = []byte("[]")
	}

	var replay strings.Builder
	// Records are stored newest first; replay them oldest first so the model
	// reads its own history in order.
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		actionJSON, err := json.Marshal(rec.Action)
		if err != nil {
			continue
		}
		step := len(records) - i
		fmt.Fprintf(&replay, "Step %d:\nReasoning: %s\nAction: %s\nResult: %s\n\n",
			step, rec.Reasoning, actionJSON, rec.Result)
	}

	return fmt.Sprintf(`You are a trading assistant for GALA tokens. Every 60 minutes, you receive the following data:

1. **GALA price history** (format: price,ISO8601 timestamp, newest first):
%s

2. **User token balances**: %s

3. **Previous actions and reasoning**:
%s
**Instructions:**
- Analyze the price trend and the user's balances.
- Consider previous actions and their results.
- Provide a short reasoning inside the json response for your decision.
- Only reply with a JSON object in this format:
  {
    "reasoning": "<your reasoning>",
    "action": {"action": "buy"|"sell", "token": "GALA", "amount": <number>}
  }
- Always keep at least 5%% of any token in the wallet and never sell the full amount. Always keep at least 10 GALA in the wallet for transaction fees.
- To encourage proactive trading, aim to either buy or sell between 10%% and 25%% of your GALA or GUSDC holdings in a single transaction.

Example response:
{
  "reasoning": "The price has dropped for 3 hours, so I recommend buying GALA.",
  "action": {"action": "buy", "token": "GALA", "amount": 1.23}
}
`, priceHistory, balancesJSON, replay.String())
}
