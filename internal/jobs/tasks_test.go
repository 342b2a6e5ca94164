package jobs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCronSpec(t *testing.T) {
	tests := []struct {
		name       string
		timezone   string
		expression string
		want       string
	}{
		{
			name:       "with timezone",
			timezone:   "Africa/Lagos",
			expression: "0 11 * * 1-5",
			want:       "CRON_TZ=Africa/Lagos 0 11 * * 1-5",
		},
		{
			name:       "without timezone",
			timezone:   "",
			expression: "30 17 * * *",
			want:       "30 17 * * *",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildCronSpec(tt.timezone, tt.expression))
		})
	}
}

func TestNewCronFireTask(t *testing.T) {
	task, err := NewCronFireTask("session_end")
	require.NoError(t, err)

	assert.Equal(t, TaskTypeCronFire, task.Type())

	var payload CronFirePayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "session_end", payload.CronID)
}
