// Package scheduler runs the periodic jobs of the server.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// StockSnapshotter appends one stock snapshot per lot.
type StockSnapshotter interface {
	SnapshotAll(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron    *cron.Cron
	stock   StockSnapshotter
	timeout time.Duration
}

func New(stock StockSnapshotter) *Scheduler {
	return &Scheduler{cron: cron.New(), stock: stock, timeout: 5 * time.Minute}
}

// AddStockSnapshot schedules the stock snapshot job on a standard cron
// spec such as "0 2 * * *".
func (s *Scheduler) AddStockSnapshot(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.SnapshotStock); err != nil {
		return fmt.Errorf("invalid SNAPSHOT_CRON %q: %w", spec, err)
	}
	return nil
}

func (s *Scheduler) SnapshotStock() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.stock.SnapshotAll(ctx)
	if err != nil {
		log.Printf("Stock snapshot failed: %v", err)
		return
	}
	log.Printf("Stock snapshot recorded for %d lots", n)
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("Scheduler started")
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
