// Package jobs schedules and processes the recurring channel publications.
package jobs

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	TaskTypeCronFire = "cron:fire"
)

const (
	QueueDefault = "default"
)

// CronFirePayload names which database cron job fired.
type CronFirePayload struct {
	CronID string `json:"cron_id"`
}

func NewCronFireTask(cronID string) (*asynq.Task, error) {
	payload, err := json.Marshal(CronFirePayload{CronID: cronID})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TaskTypeCronFire, payload, asynq.Queue(QueueDefault)), nil
}

// BuildCronSpec prefixes a cron expression with the job's IANA timezone so
// each entry fires on its own local clock.
func BuildCronSpec(timezone, expression string) string {
	if timezone == "" {
		return expression
	}

	return fmt.Sprintf("CRON_TZ=%s %s", timezone, expression)
}
