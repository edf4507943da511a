package advisor

import (
	"encoding/json"
	"fmt"
	"strings"

	"GalaPilot/internal/model"
)

// ParseError reports a reasoning reply that could not be parsed into a
// decision. It carries the raw reply so the run can log it before aborting.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse decision: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseDecision parses a reasoning reply as strict JSON after stripping any
// surrounding code-fence markers. Any deviation from the expected shape is a
// *ParseError; no partial recovery is attempted.
func ParseDecision(reply string) (*model.Decision, error) {
	text := stripFences(reply)

	var decision model.Decision
	if err := json.Unmarshal([]byte(text), &decision); err != nil {
		return nil, &ParseError{Raw: reply, Err: err}
	}
	if err := validate(&decision); err != nil {
		return nil, &ParseError{Raw: reply, Err: err}
	}
	return &decision, nil
}

func validate(d *model.Decision) error {
	switch d.Action.Action {
	case model.SideBuy, model.SideSell:
	case "":
		return fmt.Errorf("missing action field")
	default:
		return fmt.Errorf("unknown action %q", d.Action.Action)
	}
	if d.Action.Token == "" {
		return fmt.Errorf("missing token field")
	}
	if !d.Action.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", d.Action.Amount)
	}
	return nil
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
