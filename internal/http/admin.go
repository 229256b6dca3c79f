package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookcatalog/internal/tasks"
)

// AdminController exposes catalog maintenance operations.
type AdminController struct {
	taskClient *tasks.Client
	sweeper    tasks.OrphanAuthorsSweeper
}

func NewAdminController(taskClient *tasks.Client, sweeper tasks.OrphanAuthorsSweeper) *AdminController {
	return &AdminController{taskClient: taskClient, sweeper: sweeper}
}

// SweepOrphanAuthors removes authors with no remaining books. When the
// task queue is enabled the sweep runs in the background; otherwise it
// runs inline.
// POST /api/admin/authors/sweep
func (ac *AdminController) SweepOrphanAuthors(c *gin.Context) {
	if ac.taskClient != nil {
		ids, err := ac.taskClient.Add(tasks.SweepOrphanAuthorsTask{}).Save()
		if err != nil {
			log.Printf("Failed to enqueue sweep task: %v", err)
			respondInternalError(c, err, "enqueue sweep task")
			return
		}
		respondAccepted(c, "orphan author sweep enqueued", gin.H{"task_ids": ids})
		return
	}

	if ac.sweeper == nil {
		respondError(c, http.StatusServiceUnavailable, "sweep is not available")
		return
	}

	deleted, err := ac.sweeper.DeleteOrphanAuthors()
	if err != nil {
		respondInternalError(c, err, "sweep orphan authors")
		return
	}
	respondSuccess(c, "orphan author sweep completed", gin.H{"deleted": deleted})
}
