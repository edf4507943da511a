package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"GalaPilot/internal/advisor"
	"GalaPilot/internal/agent"
	"GalaPilot/internal/config"
	"GalaPilot/internal/dex"
	"GalaPilot/internal/ledger"
	"GalaPilot/internal/logger"
	"GalaPilot/internal/notifier"
	"GalaPilot/internal/recorder"
	"GalaPilot/internal/trader"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	log.Info("GalaPilot starting...")

	dexClient := dex.NewHTTPClient(cfg.Dex.BaseURL, cfg.Dex.UserAddress, cfg.Dex.PrivateKey)
	gemini := advisor.NewGemini(cfg.Gemini.APIKey, cfg.Gemini.Model)

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warnf("init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	}

	a := &agent.Agent{
		Dex:        dexClient,
		Advisor:    gemini,
		Executor:   trader.NewExecutor(dexClient, cfg.Dex.UserAddress, decimal.NewFromFloat(cfg.Policy.Slippage)),
		Prices:     ledger.NewPriceLedger(cfg.Ledger.PriceFile, cfg.Ledger.PriceRetention.Duration),
		Gate:       ledger.NewRunGate(cfg.Ledger.RunFile, cfg.Schedule.MinInterval.Duration),
		Actions:    ledger.NewActionLedger(cfg.Ledger.ActionFile, cfg.Ledger.MaxActions),
		Recorder:   rec,
		Notifier:   tn,
		User:       cfg.Dex.UserAddress,
		FeeReserve: decimal.NewFromFloat(cfg.Policy.FeeReserve),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runOnce := func() error {
		err := a.Run(ctx)
		if err != nil && tn != nil {
			if nerr := tn.SendWithRetry(ctx, notifier.FormatFailure("agent run", err), 3); nerr != nil {
				log.Errorf("send failure notice: %v", nerr)
			}
		}
		return err
	}

	if cfg.Schedule.Cron == "" {
		// One-shot mode: a single cycle per invocation, scheduling left to
		// the operator (cron, systemd timer, CI).
		if err := runOnce(); err != nil {
			log.Fatalf("run failed: %v", err)
		}
		log.Info("run complete")
		return
	}

	// Daemon mode.
	c := cron.New()
	if _, err := c.AddFunc(cfg.Schedule.Cron, func() {
		if err := runOnce(); err != nil {
			log.Errorf("run failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("register cron task: %v", err)
	}
	c.Start()
	defer c.Stop()
	log.Infof("GalaPilot is running on schedule %q. Press Ctrl+C to stop.", cfg.Schedule.Cron)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping...")
	cancel()
	log.Info("GalaPilot stopped")
}
