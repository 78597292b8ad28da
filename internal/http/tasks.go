package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/ruckusreads/ruckus/internal/entities"
	domainerrors "github.com/ruckusreads/ruckus/internal/errors"
)

// TaskStatusReader looks up background task state.
type TaskStatusReader interface {
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// PrefetchRunner starts a bulk cover prefetch outside its schedule.
type PrefetchRunner interface {
	RunNow(ctx context.Context) (string, error)
}

// ProgressReader reads the latest bulk cover prefetch run.
type ProgressReader interface {
	GetRun(ctx context.Context) (*entities.CoverPrefetchRun, error)
}

type prefetchProgressResponse struct {
	*entities.CoverPrefetchRun
	Percent int `json:"percent"`
}

// TasksController handles task queue endpoints.
type TasksController struct {
	queue    TaskStatusReader
	prefetch PrefetchRunner
	progress ProgressReader
}

// NewTasksController creates a new TasksController. progress may be nil.
func NewTasksController(queue TaskStatusReader, prefetch PrefetchRunner, progress ProgressReader) *TasksController {
	return &TasksController{queue: queue, prefetch: prefetch, progress: progress}
}

// GetTaskStatus returns the status of a specific task.
// GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID, ok := requireParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

// PrefetchCovers enqueues a bulk cover prefetch.
// POST /api/tasks/prefetch-covers
func (tc *TasksController) PrefetchCovers(c *gin.Context) {
	taskID, err := tc.prefetch.RunNow(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "enqueue cover prefetch")
		return
	}
	respondAccepted(c, "task enqueued", gin.H{
		"task_id": taskID,
		"type":    "prefetch_all_covers",
	})
}

// PrefetchProgress reports the last or current bulk prefetch run.
// GET /api/tasks/prefetch-covers/progress
func (tc *TasksController) PrefetchProgress(c *gin.Context) {
	if tc.progress == nil {
		c.JSON(http.StatusOK, gin.H{"status": "idle"})
		return
	}

	run, err := tc.progress.GetRun(c.Request.Context())
	if errors.Is(err, domainerrors.ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{"status": "idle"})
		return
	}
	if err != nil {
		respondError(c, err, "prefetch progress")
		return
	}
	c.JSON(http.StatusOK, prefetchProgressResponse{CoverPrefetchRun: run, Percent: run.Percent()})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
