package price

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/xecwallet/sendd/internal/metrics"
)

// fetcher is implemented by Client.
type fetcher interface {
	FetchRate(ctx context.Context) (decimal.Decimal, error)
}

// Source polls the price API in the background and serves the latest rate.
// A failed poll clears the rate so fiat entry degrades instead of using a
// stale or zero price.
type Source struct {
	client   fetcher
	interval time.Duration
	logger   *logrus.Logger

	mu   sync.RWMutex
	rate *decimal.Decimal
}

func NewSource(client fetcher, interval time.Duration, logger *logrus.Logger) *Source {
	return &Source{
		client:   client,
		interval: interval,
		logger:   logger,
	}
}

// Run polls until ctx is cancelled. The first poll happens immediately.
func (s *Source) Run(ctx context.Context) {
	s.poll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.poll(ctx)
		}
	}
}

func (s *Source) poll(ctx context.Context) {
	rate, err := s.client.FetchRate(ctx)
	metrics.RecordPriceFetch(err == nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.logger.Warnf("failed to fetch fiat rate: %v", err)
		s.rate = nil
		return
	}
	s.rate = &rate
}

// Rate returns the current exchange rate, or nil when none is available.
func (s *Source) Rate() *decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.rate == nil {
		return nil
	}
	rate := *s.rate
	return &rate
}
