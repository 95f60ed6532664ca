package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"go.uber.org/zap"

	"github.com/mrlokans/carrental/internal/exporters"
)

const ExportListingQueue = "export_listing"

// Export outcomes as stored in settings.
const (
	ExportStatusSuccess = "success"
	ExportStatusFailure = "failure"
)

// ExportListingTask writes the cars, customers and rentals listings to CSV.
type ExportListingTask struct{}

// Config returns the queue configuration for listing exports.
func (t ExportListingTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        ExportListingQueue,
		MaxAttempts: 2,
		Backoff:     30 * time.Second,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ListingExporter produces one export per call.
type ListingExporter interface {
	Export(ctx context.Context) (exporters.ExportResult, error)
}

// ExportRecorder persists the outcome of the most recent export.
type ExportRecorder interface {
	RecordExport(at time.Time, status, dir string) error
}

// RunExport performs one export and records its outcome. The scheduler and
// the CLI call it directly; the queue calls it through ExportListingProcessor.
func RunExport(ctx context.Context, exporter ListingExporter, recorder ExportRecorder, logger *zap.Logger) (exporters.ExportResult, error) {
	if exporter == nil {
		return exporters.ExportResult{}, errors.New("exporter not configured")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	result, err := exporter.Export(ctx)
	status := ExportStatusSuccess
	if err != nil {
		status = ExportStatusFailure
		logger.Error("listing export failed", zap.Error(err))
	} else {
		logger.Info("listing export complete",
			zap.String("dir", result.Dir),
			zap.Int("cars", result.Cars),
			zap.Int("customers", result.Customers),
			zap.Int("rentals", result.Rentals))
	}

	if recorder != nil {
		if recErr := recorder.RecordExport(time.Now(), status, result.Dir); recErr != nil {
			logger.Warn("failed to record export status", zap.Error(recErr))
		}
	}
	if err != nil {
		return result, fmt.Errorf("export listing: %w", err)
	}
	return result, nil
}

// ExportListingProcessor creates a processor function for ExportListingTask.
func ExportListingProcessor(exporter ListingExporter, recorder ExportRecorder, logger *zap.Logger) backlite.QueueProcessor[ExportListingTask] {
	return func(ctx context.Context, _ ExportListingTask) error {
		_, err := RunExport(ctx, exporter, recorder, logger)
		return err
	}
}

// NewExportListingQueue creates a backlite queue for listing exports.
func NewExportListingQueue(exporter ListingExporter, recorder ExportRecorder, logger *zap.Logger) backlite.Queue {
	return backlite.NewQueue(ExportListingProcessor(exporter, recorder, logger))
}
