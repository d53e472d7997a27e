package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cardafy/cardafy/internal/adapter/chain"
	"github.com/cardafy/cardafy/internal/domain/model"
)

// EscrowFacade exposes the subset of application functionality required by the poller.
type EscrowFacade interface {
	UnconfirmedOrders(ctx context.Context, limit int) ([]model.Order, error)
	LockConfirmed(ctx context.Context, txID string) (bool, error)
	MarkOrderConfirmed(ctx context.Context, txID string) error
}

// maxAttempts bounds how often a single order is re-checked before the
// poller stops asking. The order stays visible as unconfirmed either way.
const maxAttempts = 120

// ConfirmationPoller watches the chain provider for locking transactions of
// freshly placed orders and records their confirmation, instead of assuming
// success after a fixed delay.
type ConfirmationPoller struct {
	facade       EscrowFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs     chan model.Order
	attempts map[string]int
	wg       sync.WaitGroup
	cancel   context.CancelFunc
	mu       sync.Mutex
}

// NewConfirmationPoller constructs the poller worker pool.
func NewConfirmationPoller(facade EscrowFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *ConfirmationPoller {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &ConfirmationPoller{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
		attempts:     make(map[string]int),
	}
}

// Start launches background processing.
func (p *ConfirmationPoller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *ConfirmationPoller) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *ConfirmationPoller) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *ConfirmationPoller) fetchAndDispatch(ctx context.Context) {
	orders, err := p.facade.UnconfirmedOrders(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch unconfirmed orders failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		if !p.track(order.TxID) {
			continue
		}
		select {
		case <-ctx.Done():
			return
		case p.jobs <- order:
		}
	}
}

// track counts the attempt and reports whether the order is still worth
// checking.
func (p *ConfirmationPoller) track(txID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := p.attempts[txID]
	if n >= maxAttempts {
		if n == maxAttempts {
			p.attempts[txID] = n + 1
			p.logger.Warn("giving up on confirmation polling", slog.String("tx_id", txID))
		}
		return false
	}
	p.attempts[txID] = n + 1
	return true
}

func (p *ConfirmationPoller) forget(txID string) {
	p.mu.Lock()
	delete(p.attempts, txID)
	p.mu.Unlock()
}

func (p *ConfirmationPoller) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleOrder(ctx, order)
		}
	}
}

func (p *ConfirmationPoller) handleOrder(ctx context.Context, order model.Order) {
	confirmed, err := p.facade.LockConfirmed(ctx, order.TxID)
	if err != nil {
		switch e := err.(type) {
		case chain.TooManyRequestsError:
			p.logger.Warn("chain provider rate limited", slog.Duration("retry_after", e.RetryAfter))
			time.Sleep(e.RetryAfter)
		default:
			p.logger.Error("confirmation check failed", slog.String("tx_id", order.TxID), slog.String("error", err.Error()))
		}
		return
	}

	if !confirmed {
		return
	}

	if err := p.facade.MarkOrderConfirmed(ctx, order.TxID); err != nil {
		p.logger.Error("mark order confirmed failed", slog.String("tx_id", order.TxID), slog.String("error", err.Error()))
		return
	}
	p.forget(order.TxID)
	p.logger.Info("lock transaction confirmed", slog.String("tx_id", order.TxID))
}
