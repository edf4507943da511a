package main

import (
	"fmt"
	"io"
	"os"

	"GalaPilot/internal/config"
	"GalaPilot/internal/dashboard"
	"GalaPilot/internal/dex"
	"GalaPilot/internal/ledger"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Dex.UserAddress == "" {
		fmt.Fprintln(os.Stderr, "USER_ADDRESS is required")
		os.Exit(1)
	}

	// The TUI owns the terminal; anything the libraries log would corrupt it.
	logrus.SetOutput(io.Discard)

	collector := &dashboard.Collector{
		Dex:     dex.NewHTTPClient(cfg.Dex.BaseURL, cfg.Dex.UserAddress, cfg.Dex.PrivateKey),
		Scan:    dex.NewScanClient(cfg.Dex.ScanURL),
		Prices:  ledger.NewPriceLedger(cfg.Ledger.PriceFile, cfg.Ledger.PriceRetention.Duration),
		Gate:    ledger.NewRunGate(cfg.Ledger.RunFile, cfg.Schedule.MinInterval.Duration),
		Actions: ledger.NewActionLedger(cfg.Ledger.ActionFile, cfg.Ledger.MaxActions),
		User:    cfg.Dex.UserAddress,
	}

	if err := dashboard.Run(collector); err != nil {
		fmt.Fprintf(os.Stderr, "dashboard: %v\n", err)
		os.Exit(1)
	}
}
