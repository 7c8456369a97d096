package app

import (
	"fmt"

	"github.com/newthinker/pricelog/internal/collector"
	"github.com/newthinker/pricelog/internal/collector/crypto"
	"github.com/newthinker/pricelog/internal/collector/crypto/coingecko"
	"github.com/newthinker/pricelog/internal/collector/yahoo"
	"github.com/newthinker/pricelog/internal/config"
	"github.com/newthinker/pricelog/internal/fetcher"
	"github.com/newthinker/pricelog/internal/metrics"
	"github.com/newthinker/pricelog/internal/storage/ledger"
	"go.uber.org/zap"
)

// BuildCollectors creates one collector per configured source, in config order.
// All crypto sources share a single combined CoinGecko query.
func BuildCollectors(cfg *config.Config) ([]collector.Collector, error) {
	cg := coingecko.NewWithBaseURL(cfg.CoinGecko.APIKey, cfg.CoinGecko.BaseURL).
		WithHTTPClient(collector.NewHTTPClient(cfg.HTTP.Timeout).
			WithRateLimit(cfg.CoinGecko.RateLimit, cfg.CoinGecko.Burst))
	yahooClient := collector.NewHTTPClient(cfg.HTTP.Timeout).
		WithRateLimit(cfg.Yahoo.RateLimit, cfg.Yahoo.Burst)

	var specs []crypto.Spec
	for _, s := range cfg.Sources {
		if s.Kind == config.KindCrypto {
			specs = append(specs, crypto.Spec{Name: s.Name, CoinID: coingecko.CoinID(s.CoinID)})
		}
	}
	assets := crypto.NewAssets(cg, specs...)

	result := make([]collector.Collector, 0, len(cfg.Sources))
	next := 0
	for _, s := range cfg.Sources {
		switch s.Kind {
		case config.KindCrypto:
			result = append(result, assets[next])
			next++
		case config.KindEquity:
			y, err := yahoo.NewWithBaseURL(s.Name, s.Symbol, cfg.Yahoo.BaseURL)
			if err != nil {
				return nil, fmt.Errorf("source %s: %w", s.Name, err)
			}
			result = append(result, y.WithHTTPClient(yahooClient))
		default:
			return nil, fmt.Errorf("source %s: unknown kind %q", s.Name, s.Kind)
		}
	}
	return result, nil
}

// Build wires the ledger, orchestrator and collectors described by cfg
func Build(cfg *config.Config, logger *zap.Logger, reg *metrics.Registry) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l, err := ledger.NewAppendFS(cfg.DataDir, cfg.Files())
	if err != nil {
		return nil, fmt.Errorf("creating ledger: %w", err)
	}

	opts := []fetcher.Option{}
	if reg != nil {
		opts = append(opts, fetcher.WithMetrics(reg))
	}
	a := New(fetcher.New(l, logger, opts...), logger)
	a.SetInterval(cfg.Interval)

	collectors, err := BuildCollectors(cfg)
	if err != nil {
		return nil, err
	}
	for _, c := range collectors {
		if err := a.RegisterCollector(c); err != nil {
			return nil, err
		}
	}
	if reg != nil {
		reg.SetSources(len(collectors))
	}
	return a, nil
}
