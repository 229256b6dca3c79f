// Package scheduler runs periodic catalog maintenance.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"bookcatalog/internal/tasks"
)

// SweepScheduler runs the orphan-author sweep on a cron schedule, as a
// safety net behind the sweep that follows every book deletion.
type SweepScheduler struct {
	sweeper  tasks.OrphanAuthorsSweeper
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewSweepScheduler creates a new scheduler instance. schedule is a
// standard five-field cron expression.
func NewSweepScheduler(sweeper tasks.OrphanAuthorsSweeper, schedule string) *SweepScheduler {
	return &SweepScheduler{
		sweeper:  sweeper,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *SweepScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.runSweep)
	if err != nil {
		return fmt.Errorf("failed to schedule sweep job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Orphan author sweep scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running sweep to
// finish.
func (s *SweepScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	// Release the goroutine watching the parent context
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	log.Printf("Orphan author sweep scheduler: stopped")
}

// IsRunning returns whether the scheduler is active.
func (s *SweepScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

func (s *SweepScheduler) runSweep() {
	deleted, err := s.sweeper.DeleteOrphanAuthors()
	if err != nil {
		log.Printf("Orphan author sweep: failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Orphan author sweep: removed %d authors", deleted)
	}
}
