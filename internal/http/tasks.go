package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"go.uber.org/zap"
)

// ExportsController enqueues listing exports and reports task progress.
type ExportsController struct {
	queue ExportQueue
}

func NewExportsController(queue ExportQueue) *ExportsController {
	return &ExportsController{queue: queue}
}

var errExportsDisabled = errors.New("listing exports are disabled")

func (ec *ExportsController) enqueue(c *gin.Context) (string, error) {
	if ec.queue == nil {
		return "", errExportsDisabled
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()
	return ec.queue.EnqueueExport(ctx)
}

// Enqueue handles POST /api/exports
func (ec *ExportsController) Enqueue(c *gin.Context) {
	id, err := ec.enqueue(c)
	if errors.Is(err, errExportsDisabled) {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error(), Code: "exports_disabled"})
		return
	}
	if err != nil {
		respondInternalError(c, err, "enqueue export")
		return
	}
	respondAccepted(c, "export enqueued", gin.H{"task_id": id})
}

// EnqueueForm handles POST /exports from the rentals page.
func (ec *ExportsController) EnqueueForm(c *gin.Context) {
	id, err := ec.enqueue(c)
	if err != nil {
		requestLogger(c).Warn("export enqueue failed", zap.Error(err))
		redirectWithError(c, "/rentals", err)
		return
	}
	redirectWithNotice(c, "/rentals", "Export queued ("+id+").")
}

// GetTaskStatus handles GET /api/tasks/:id
func (ec *ExportsController) GetTaskStatus(c *gin.Context) {
	if ec.queue == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: errExportsDisabled.Error(), Code: "exports_disabled"})
		return
	}

	taskID := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := ec.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}
	if status == backlite.TaskStatusNotFound {
		respondNotFound(c, "task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
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
