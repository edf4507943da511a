package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"GalaPilot/internal/advisor"
	"GalaPilot/internal/dex"
	"GalaPilot/internal/ledger"
	"GalaPilot/internal/model"
	"GalaPilot/internal/notifier"
	"GalaPilot/internal/policy"
	"GalaPilot/internal/recorder"
	"GalaPilot/internal/trader"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "agent")

// DecisionSource produces a trade decision from an assembled prompt.
type DecisionSource interface {
	RequestDecision(ctx context.Context, prompt string) (*model.Decision, error)
}

// Agent runs one rebalancing cycle per invocation: gate, observe, decide,
// sanitize, execute, record. Each stage either advances the run or ends it;
// a run that ends early leaves the action ledger untouched.
type Agent struct {
	Dex      dex.Client
	Advisor  DecisionSource
	Executor *trader.Executor
	Prices   *ledger.PriceLedger
	Gate     *ledger.RunGate
	Actions  *ledger.ActionLedger
	Recorder recorder.Recorder
	Notifier *notifier.TelegramNotifier

	User       string
	FeeReserve decimal.Decimal

	// Now is the clock, overridable in tests. Nil means time.Now.
	Now func() time.Time
}

func (a *Agent) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// Run executes one cycle. A nil return means the cycle completed or was
// deliberately cut short (gate closed, unusable reply, rejected action); an
// error means the cycle aborted on an external failure.
func (a *Agent) Run(ctx context.Context) error {
	now := a.now()

	ok, wait := a.Gate.TryAcquire(now)
	if !ok {
		log.Infof("run gate closed, next run in %s", wait.Round(time.Second))
		return nil
	}
	if err := a.Gate.Commit(now); err != nil {
		return fmt.Errorf("commit run gate: %w", err)
	}

	latestPrice := a.observePrice(ctx, now)

	portfolio, err := a.Dex.UserAssets(ctx, a.User, 1, 20)
	if err != nil {
		return fmt.Errorf("fetch portfolio: %w", err)
	}
	log.Infof("portfolio: %d tokens, GALA=%s GUSDC=%s",
		portfolio.Count, portfolio.Quantity("GALA"), portfolio.Quantity("GUSDC"))

	prompt := advisor.BuildPrompt(a.Prices.HistoryText(), portfolio.Balances, a.Actions.Records())

	decision, err := a.Advisor.RequestDecision(ctx, prompt)
	if err != nil {
		var perr *advisor.ParseError
		if errors.As(err, &perr) {
			log.Errorf("unusable model reply, skipping run: %v", perr.Err)
			log.Debugf("raw reply: %s", perr.Raw)
			return nil
		}
		return fmt.Errorf("request decision: %w", err)
	}
	log.Infof("decision: %s %s %s (%s)",
		decision.Action.Action, decision.Action.Amount, decision.Action.Token, decision.Reasoning)

	instr, err := policy.Sanitize(decision.Action, portfolio, latestPrice, a.FeeReserve)
	if err != nil {
		var rej *policy.RejectError
		if errors.As(err, &rej) {
			log.Warnf("action rejected: %s", rej.Reason)
			a.record(&recorder.RunRecord{
				Timestamp:    now,
				Price:        latestPrice.String(),
				GalaBalance:  portfolio.Quantity("GALA").String(),
				GusdcBalance: portfolio.Quantity("GUSDC").String(),
				Action:       string(decision.Action.Action),
				Token:        decision.Action.Token,
				Amount:       decision.Action.Amount.String(),
				Reasoning:    decision.Reasoning,
				Result:       rej.Reason,
				Status:       "rejected",
			})
			return nil
		}
		return fmt.Errorf("sanitize action: %w", err)
	}

	outcome, err := a.Executor.Execute(ctx, instr)
	if err != nil {
		return fmt.Errorf("execute trade: %w", err)
	}

	rec := model.ActionRecord{
		Timestamp: now,
		Reasoning: decision.Reasoning,
		Action:    instr.Action,
		Result:    outcome.Result,
	}
	if err := a.Actions.Append(rec); err != nil {
		return fmt.Errorf("append action ledger: %w", err)
	}

	status := "executed"
	if !outcome.Settled {
		status = "failed"
	}
	a.record(&recorder.RunRecord{
		Timestamp:    now,
		Price:        latestPrice.String(),
		GalaBalance:  portfolio.Quantity("GALA").String(),
		GusdcBalance: portfolio.Quantity("GUSDC").String(),
		Action:       string(instr.Action.Action),
		Token:        instr.Action.Token,
		Amount:       instr.Action.Amount.String(),
		Reasoning:    decision.Reasoning,
		TxID:         outcome.TransactionID,
		Result:       outcome.Result,
		Status:       status,
	})

	if a.Notifier != nil {
		report := notifier.FormatRunReport(&rec, latestPrice.String(), portfolio)
		if err := a.Notifier.SendWithRetry(ctx, report, 3); err != nil {
			log.Errorf("send notification: %v", err)
		}
	}
	return nil
}

// observePrice fetches and records the current price. A feed failure is not
// fatal: the newest retained sample stands in, and zero means no price is
// known at all.
func (a *Agent) observePrice(ctx context.Context, now time.Time) decimal.Decimal {
	price, err := a.Dex.CurrentPrice(ctx, dex.PriceKeyGALA)
	if err != nil {
		log.Warnf("price fetch failed: %v", err)
		if sample, ok := a.Prices.Latest(); ok {
			log.Infof("using retained price %s from %s", sample.Price, sample.ObservedAt.Format(time.RFC3339))
			return sample.Price
		}
		return decimal.Zero
	}
	log.Infof("GALA price: %s GUSDC", price)
	if err := a.Prices.Record(price, now); err != nil {
		log.Errorf("record price: %v", err)
	}
	return price
}

func (a *Agent) record(rec *recorder.RunRecord) {
	if a.Recorder == nil {
		return
	}
	if err := a.Recorder.RecordRun(rec); err != nil {
		log.Errorf("record run: %v", err)
	}
}
