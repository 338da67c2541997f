package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskWarehouseRefresh retires the cached warehouse datasets so the next
	// page load fetches fresh rows.
	TaskWarehouseRefresh = "warehouse:refresh"
)

// WarehouseRefreshPayload records who or what requested the refresh.
type WarehouseRefreshPayload struct {
	Reason      string `json:"reason"`
	RequestedBy string `json:"requested_by,omitempty"`
}

// NewWarehouseRefreshTask constructs an Asynq task.
func NewWarehouseRefreshTask(payload WarehouseRefreshPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskWarehouseRefresh, data), nil
}
