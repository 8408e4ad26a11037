package main

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/xecwallet/sendd/internal/broadcast"
	"github.com/xecwallet/sendd/internal/chronik"
	"github.com/xecwallet/sendd/internal/graceful"
	"github.com/xecwallet/sendd/internal/logging"
	"github.com/xecwallet/sendd/internal/metrics"
	"github.com/xecwallet/sendd/internal/price"
	"github.com/xecwallet/sendd/internal/sendform"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := newConfig()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	logger := logging.NewLogger(cfg.LogFormat)

	metricsServer := metrics.StartMetricsServer(cfg.Metrics, logger)
	defer func() {
		if metricsServer != nil {
			if err := metricsServer.Stop(ctx); err != nil {
				logger.Errorf("failed to stop metrics server: %v", err)
			}
		}
	}()

	rates := price.NewSource(
		price.NewClient(cfg.PriceURL, cfg.FiatCurrency),
		cfg.PricePollInterval,
		logger,
	)
	go rates.Run(ctx)

	handler := sendform.NewHandler(sendform.Deps{
		Rates:         rates,
		Outputs:       chronik.NewClient(cfg.ChronikURL),
		Broadcaster:   broadcast.NewClient(cfg.BroadcastURL),
		FeeRate:       cfg.FeeRatePerByte,
		WalletAddress: cfg.WalletAddress,
		Logger:        logger,
	})

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(metrics.HTTPMiddleware())
	handler.Register(e)

	go func() {
		sig := <-graceful.MakeSigintChan()
		logger.Infof("received exit signal: %v", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("failed to shut down server: %v", err)
		}
		cancel()
	}()

	logger.Infof("send service listening on :%s", cfg.Port)
	if err := e.Start(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		logger.Infof("server stopped: %v", err)
	}
}
