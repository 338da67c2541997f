package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/retail-daya/retail-daya/internal/jobs"
	"github.com/retail-daya/retail-daya/internal/sales"
)

// WarehouseRefreshJob bumps the sales cache version so every dataset is
// re-fetched on next use.
type WarehouseRefreshJob struct {
	Sales   *sales.Service
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewWarehouseRefreshJob wires dependencies for the refresh handler.
func NewWarehouseRefreshJob(salesSvc *sales.Service, logger *slog.Logger) *WarehouseRefreshJob {
	return &WarehouseRefreshJob{Sales: salesSvc, Logger: logger, Metrics: jobmetrics.NewMetrics(nil)}
}

// Handle processes TaskWarehouseRefresh tasks.
func (j *WarehouseRefreshJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Sales == nil {
		return errors.New("warehouse refresh: handler not configured")
	}
	tracker := j.Metrics.Track(TaskWarehouseRefresh)
	var payload WarehouseRefreshPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return tracker.End(asynq.SkipRetry)
	}
	if err := j.Sales.Refresh(ctx); err != nil {
		j.logger().Error("bump sales cache", slog.Any("error", err))
		return tracker.End(err)
	}
	j.logger().Info("warehouse cache refreshed",
		slog.String("reason", payload.Reason),
		slog.String("requested_by", payload.RequestedBy))
	return tracker.End(nil)
}

func (j *WarehouseRefreshJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
