package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/newthinker/pricelog/internal/collector"
	"github.com/newthinker/pricelog/internal/core"
	"github.com/newthinker/pricelog/internal/metrics"
	"github.com/newthinker/pricelog/internal/storage/ledger"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=mock_ledger_test.go -package=fetcher github.com/newthinker/pricelog/internal/storage/ledger Ledger
//go:generate mockgen -destination=mock_collector_test.go -package=fetcher github.com/newthinker/pricelog/internal/collector Collector

// Orchestrator runs one fetch-and-persist pass over a set of collectors
type Orchestrator struct {
	ledger  ledger.Ledger
	logger  *zap.Logger
	metrics *metrics.Registry
	now     func() time.Time
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithMetrics records outcomes into reg
func WithMetrics(reg *metrics.Registry) Option {
	return func(o *Orchestrator) { o.metrics = reg }
}

// WithClock overrides the time source used to stamp readings
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// New creates a new Orchestrator
func New(l ledger.Ledger, logger *zap.Logger, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := &Orchestrator{
		ledger: l,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RunCycle fetches and persists every collector in order, one at a time.
// Per-collector failures are reported and never stop the cycle.
func (o *Orchestrator) RunCycle(ctx context.Context, collectors []collector.Collector) []core.Outcome {
	start := o.now()
	log := o.logger.With(zap.String("cycle_id", uuid.NewString()))
	log.Info("fetching prices",
		zap.String("at", start.UTC().Format(ledger.TimeLayout)),
		zap.Int("sources", len(collectors)),
	)

	outcomes := make([]core.Outcome, 0, len(collectors))
	for _, c := range collectors {
		if ctx.Err() != nil {
			log.Warn("cycle interrupted", zap.Error(ctx.Err()))
			break
		}

		out := o.fetchAndSave(ctx, log, c)
		o.report(log, out)
		outcomes = append(outcomes, out)
	}

	elapsed := o.now().Sub(start)
	if o.metrics != nil {
		o.metrics.RecordCycle(elapsed.Seconds())
	}
	log.Info("fetch cycle completed",
		zap.Int("ok", countOK(outcomes)),
		zap.Int("failed", len(outcomes)-countOK(outcomes)),
		zap.Duration("took", elapsed),
	)
	return outcomes
}

func (o *Orchestrator) fetchAndSave(ctx context.Context, log *zap.Logger, c collector.Collector) (out core.Outcome) {
	out.Source = c.Name()
	defer func() {
		if r := recover(); r != nil {
			out.Kind = core.OutcomeFetchError
			out.Err = fmt.Errorf("collector %s panicked: %v", out.Source, r)
		}
	}()

	log.Info("fetching price", zap.String("source", out.Source))
	price, err := c.FetchPrice(ctx)
	if err != nil {
		out.Kind = core.Classify(err)
		if out.Kind == core.OutcomeSuccess || out.Kind == core.OutcomePersistError {
			out.Kind = core.OutcomeFetchError
		}
		out.Err = err
		return out
	}

	out.Price = price
	reading := core.NewPriceReading(out.Source, price, o.now())
	if err := o.ledger.Save(ctx, reading); err != nil {
		out.Kind = core.OutcomePersistError
		out.Err = err
		return out
	}

	out.Kind = core.OutcomeSuccess
	if o.metrics != nil {
		o.metrics.RecordPrice(out.Source, price, reading.ObservedAt)
	}
	return out
}

// report writes exactly one line per outcome
func (o *Orchestrator) report(log *zap.Logger, out core.Outcome) {
	if o.metrics != nil {
		o.metrics.RecordOutcome(out.Source, string(out.Kind))
	}

	fields := []zap.Field{zap.String("source", out.Source)}
	switch out.Kind {
	case core.OutcomeSuccess:
		log.Info("price saved", append(fields, zap.String("price", "$"+ledger.FormatPrice(out.Price)))...)
	case core.OutcomeRateLimited:
		log.Warn("rate limited: too many requests, will retry next cycle", append(fields, zap.Error(out.Err))...)
	case core.OutcomeDataError:
		log.Error("price missing from response", append(fields, zap.Error(out.Err))...)
	case core.OutcomePersistError:
		log.Error("error saving price",
			append(fields, zap.String("price", "$"+ledger.FormatPrice(out.Price)), zap.Error(out.Err))...)
	default:
		log.Error("error fetching price", append(fields, zap.Error(out.Err))...)
	}
}

func countOK(outcomes []core.Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}
