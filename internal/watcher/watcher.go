// Package watcher coordinates the DCA alert pipeline.
// Flow: poll signatures → claim → fetch tx → decode → classify → schedule → notify
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"solana-dca-watch/internal/balances"
	"solana-dca-watch/internal/classify"
	"solana-dca-watch/internal/decode"
	"solana-dca-watch/internal/domain"
	"solana-dca-watch/internal/notify"
	"solana-dca-watch/internal/observability"
	"solana-dca-watch/internal/report"
	"solana-dca-watch/internal/schedule"
	"solana-dca-watch/internal/solana"
	"solana-dca-watch/internal/storage"
)

// Skip reasons recorded in metrics.
const (
	skipFailed       = "failed_tx"
	skipClaimed      = "already_claimed"
	skipNotFound     = "tx_not_found"
	skipUnrecognized = "unrecognized"
	skipBalances     = "no_balance_pair"
	skipClassify     = "not_classifiable"
	skipSchedule     = "schedule"
)

// Config holds watcher runtime parameters.
type Config struct {
	// ProgramID is the monitored DCA program address.
	ProgramID string

	// PollInterval is the delay between polling rounds.
	PollInterval time.Duration

	// BatchLimit caps signatures fetched per round.
	BatchLimit int
}

// Watcher runs the end-to-end alert pipeline.
type Watcher struct {
	rpc        solana.RPCClient
	signatures storage.SignatureStore
	decoder    *decode.Decoder
	classifier *classify.Classifier
	schedule   *schedule.Calculator
	notifier   notify.Notifier
	archive    storage.DcaEventStore
	metrics    *observability.Metrics
	logger     *log.Logger
	cfg        Config
}

// Options for creating a Watcher.
type Options struct {
	// Required dependencies
	RPC        solana.RPCClient
	Signatures storage.SignatureStore
	Decoder    *decode.Decoder
	Classifier *classify.Classifier
	Schedule   *schedule.Calculator
	Notifier   notify.Notifier

	// Optional
	Archive storage.DcaEventStore  // nil disables event archiving
	Metrics *observability.Metrics // nil falls back to DefaultMetrics
	Logger  *log.Logger            // nil falls back to the standard logger

	Config Config
}

// New creates a new Watcher.
func New(opts Options) (*Watcher, error) {
	switch {
	case opts.RPC == nil:
		return nil, errors.New("watcher: RPC client is required")
	case opts.Signatures == nil:
		return nil, errors.New("watcher: signature store is required")
	case opts.Decoder == nil:
		return nil, errors.New("watcher: decoder is required")
	case opts.Classifier == nil:
		return nil, errors.New("watcher: classifier is required")
	case opts.Schedule == nil:
		return nil, errors.New("watcher: schedule calculator is required")
	case opts.Notifier == nil:
		return nil, errors.New("watcher: notifier is required")
	case opts.Config.ProgramID == "":
		return nil, errors.New("watcher: program ID is required")
	}

	metrics := opts.Metrics
	if metrics == nil {
		metrics = observability.DefaultMetrics
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	cfg := opts.Config
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 10 * time.Second
	}
	if cfg.BatchLimit <= 0 {
		cfg.BatchLimit = 1000
	}

	return &Watcher{
		rpc:        opts.RPC,
		signatures: opts.Signatures,
		decoder:    opts.Decoder,
		classifier: opts.Classifier,
		schedule:   opts.Schedule,
		notifier:   opts.Notifier,
		archive:    opts.Archive,
		metrics:    metrics,
		logger:     logger,
		cfg:        cfg,
	}, nil
}

// Run polls for signatures until the context is canceled. The first round
// fires immediately, then every PollInterval.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if err := w.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.Printf("[watcher] Poll round failed: %v", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunOnce executes a single polling round: fetch the latest signatures for
// the program and process each one.
func (w *Watcher) RunOnce(ctx context.Context) error {
	pollStarted := time.Now()
	sigs, err := w.rpc.GetSignaturesForAddress(ctx, w.cfg.ProgramID, &solana.SignaturesOpts{
		Limit: w.cfg.BatchLimit,
	})
	w.metrics.RPCCallLatency.WithLabelValues("getSignaturesForAddress").Observe(time.Since(pollStarted).Seconds())
	if err != nil {
		return fmt.Errorf("get signatures for %s: %w", w.cfg.ProgramID, err)
	}
	w.metrics.LastSuccessfulPoll.Set(float64(time.Now().Unix()))

	for _, sig := range sigs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		w.metrics.SignaturesSeen.Inc()

		if sig.Err != nil {
			w.metrics.TransactionsSkipped.WithLabelValues(skipFailed).Inc()
			continue
		}
		if err := w.process(ctx, sig.Signature); err != nil {
			w.logger.Printf("[watcher] Processing %s failed: %v", sig.Signature, err)
		}
	}
	return nil
}

// RunLive consumes log notifications from a WebSocket subscription until the
// channel closes or the context is canceled. Failed transactions are skipped
// before claiming, same as the polling path.
func (w *Watcher) RunLive(ctx context.Context, notifs <-chan solana.LogNotification) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case notif, ok := <-notifs:
			if !ok {
				return nil
			}
			w.metrics.SignaturesSeen.Inc()
			if notif.Err != nil {
				w.metrics.TransactionsSkipped.WithLabelValues(skipFailed).Inc()
				continue
			}
			if err := w.process(ctx, notif.Signature); err != nil {
				w.logger.Printf("[watcher] Processing %s failed: %v", notif.Signature, err)
			}
		}
	}
}

// process handles one signature end to end. The signature is claimed before
// any decoding, so a crash mid-processing drops the alert rather than
// duplicating it.
func (w *Watcher) process(ctx context.Context, signature string) error {
	claimed, err := w.signatures.Claim(ctx, signature)
	if err != nil {
		return fmt.Errorf("claim signature: %w", err)
	}
	if !claimed {
		w.metrics.TransactionsSkipped.WithLabelValues(skipClaimed).Inc()
		return nil
	}
	w.metrics.SignaturesClaimed.Inc()

	started := time.Now()
	defer func() {
		w.metrics.ProcessingLatency.Observe(time.Since(started).Seconds())
	}()

	fetchStarted := time.Now()
	tx, err := w.rpc.GetTransaction(ctx, signature)
	w.metrics.RPCCallLatency.WithLabelValues("getTransaction").Observe(time.Since(fetchStarted).Seconds())
	if err != nil {
		return fmt.Errorf("get transaction: %w", err)
	}
	if tx == nil {
		w.metrics.TransactionsSkipped.WithLabelValues(skipNotFound).Inc()
		return nil
	}

	result := w.decoder.Decode(tx)
	if result.Kind != decode.KindOpen {
		w.metrics.DecodeErrors.Inc()
		w.metrics.TransactionsSkipped.WithLabelValues(skipUnrecognized).Inc()
		return nil
	}
	open := result.Open

	a, b, ok := balances.FirstOwnerPair(tx.Meta.PostTokenBalances)
	if !ok {
		w.metrics.TransactionsSkipped.WithLabelValues(skipBalances).Inc()
		return nil
	}

	cls, ok := w.classifier.Classify(ctx, a, b)
	if !ok {
		w.metrics.TransactionsSkipped.WithLabelValues(skipClassify).Inc()
		return nil
	}

	sched, err := w.schedule.Compute(open, cls.DepositToken)
	if err != nil {
		w.metrics.TransactionsSkipped.WithLabelValues(skipSchedule).Inc()
		w.logger.Printf("[watcher] SKIP %s: schedule: %v", signature, err)
		return nil
	}

	user := ""
	if tx.Message != nil && len(tx.Message.AccountKeys) > 0 {
		user = tx.Message.AccountKeys[0]
	}

	text := report.Build(report.Input{
		Open:           open,
		Classification: cls,
		Schedule:       sched,
		UserAccount:    user,
		TxSignature:    signature,
	})

	if err := w.notifier.Send(ctx, text); err != nil {
		w.metrics.NotifyErrors.Inc()
		w.logger.Printf("[watcher] Notify failed for %s: %v", signature, err)
	} else {
		w.metrics.AlertsSent.Inc()
		w.logger.Printf("[watcher] ALERT %s: %s %s, %d cycles", signature, cls.Type, alertSymbol(cls), sched.NumberOfCycles)
	}

	w.archiveEvent(ctx, signature, user, open, cls, sched)
	return nil
}

// archiveEvent stores the processed open for later analysis. Best effort;
// errors are logged and counted, never propagated.
func (w *Watcher) archiveEvent(ctx context.Context, signature, user string, open *domain.DcaOpen, cls *domain.TradeClassification, sched *domain.Schedule) {
	if w.archive == nil {
		return
	}
	event := &domain.DcaEvent{
		TxSignature:      signature,
		User:             user,
		Side:             string(cls.Type),
		DepositMint:      cls.DepositToken.ContractAddress,
		DepositSymbol:    cls.DepositToken.Symbol,
		TargetMint:       cls.TargetToken.ContractAddress,
		TargetSymbol:     cls.TargetToken.Symbol,
		InAmount:         open.InAmount.String(),
		InAmountPerCycle: open.InAmountPerCycle.String(),
		CycleFrequency:   open.CycleFrequency,
		NumberOfCycles:   sched.NumberOfCycles,
		ETASeconds:       sched.ETASeconds,
		CreatedAt:        time.Now().UnixMilli(),
	}
	if err := w.archive.Insert(ctx, event); err != nil {
		w.metrics.ArchiveErrors.Inc()
		w.logger.Printf("[watcher] Archive insert failed for %s: %v", signature, err)
	}
}

func alertSymbol(cls *domain.TradeClassification) string {
	if cls.Type == domain.TradeSell {
		return cls.DepositToken.Symbol
	}
	return cls.TargetToken.Symbol
}
