package main

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/xecwallet/sendd/internal/logging"
	"github.com/xecwallet/sendd/internal/metrics"
)

type config struct {
	Port      string            `envconfig:"PORT" default:"8080"`
	LogFormat logging.LogFormat `envconfig:"LOG_FORMAT" default:"text"`

	// WalletAddress is the address whose spendable outputs fund sends.
	WalletAddress string `envconfig:"WALLET_ADDRESS" required:"true"`

	ChronikURL   string `envconfig:"CHRONIK_URL" required:"true"`
	BroadcastURL string `envconfig:"BROADCAST_URL" required:"true"`

	PriceURL          string        `envconfig:"PRICE_URL" default:"https://api.coingecko.com/api/v3"`
	FiatCurrency      string        `envconfig:"FIAT_CURRENCY" default:"usd"`
	PricePollInterval time.Duration `envconfig:"PRICE_POLL_INTERVAL" default:"60s"`

	FeeRatePerByte decimal.Decimal `envconfig:"FEE_RATE_PER_BYTE" default:"2.01"`

	Metrics metrics.Config
}

func newConfig() (config, error) {
	var cfg config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return config{}, fmt.Errorf("failed to process env var: %w", err)
	}
	return cfg, nil
}
