package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// OrphanAuthorsSweeper provides the ability to delete authors with no
// remaining books.
type OrphanAuthorsSweeper interface {
	DeleteOrphanAuthors() (int64, error)
}

// SweepOrphanAuthorsTask removes authors that no book references anymore.
type SweepOrphanAuthorsTask struct{}

// Config returns the queue configuration for sweep tasks.
func (t SweepOrphanAuthorsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "sweep_orphan_authors",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// SweepOrphanAuthorsProcessor creates a processor function for
// SweepOrphanAuthorsTask.
func SweepOrphanAuthorsProcessor(sweeper OrphanAuthorsSweeper) backlite.QueueProcessor[SweepOrphanAuthorsTask] {
	return func(ctx context.Context, task SweepOrphanAuthorsTask) error {
		if sweeper == nil {
			return fmt.Errorf("orphan authors sweeper not configured")
		}

		deleted, err := sweeper.DeleteOrphanAuthors()
		if err != nil {
			return fmt.Errorf("sweep orphan authors: %w", err)
		}

		log.Printf("[TASK] Swept %d orphan authors", deleted)
		return nil
	}
}

// NewSweepOrphanAuthorsQueue creates a backlite queue for author sweep
// tasks.
func NewSweepOrphanAuthorsQueue(sweeper OrphanAuthorsSweeper) backlite.Queue {
	return backlite.NewQueue(SweepOrphanAuthorsProcessor(sweeper))
}
