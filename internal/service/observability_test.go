package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogUseCaseObserver(t *testing.T) {
	cases := []struct {
		name      string
		event     UseCaseEvent
		wantLevel string
	}{
		{
			name:      "success",
			event:     UseCaseEvent{Name: "create-task", Duration: 3 * time.Millisecond, Success: true, Fields: map[string]any{"task_id": "t1"}},
			wantLevel: "info",
		},
		{
			name:      "failure",
			event:     UseCaseEvent{Name: "remove-task", Err: errors.New("boom"), Fields: map[string]any{"task_id": "t1"}},
			wantLevel: "error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			obs := NewLogUseCaseObserver(zerolog.New(&buf))
			obs.ObserveUseCase(context.Background(), tc.event)

			var line map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Equal(t, tc.wantLevel, line["level"])
			assert.Equal(t, "service_use_case", line["message"])
			assert.Equal(t, tc.event.Name, line["use_case"])
			assert.Equal(t, tc.event.Success, line["success"])
			assert.Equal(t, "t1", line["task_id"])
			if tc.event.Err != nil {
				assert.Equal(t, "boom", line["error"])
			}
		})
	}
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop([]UseCaseObserver{nil}))

	rec := &recordingObserver{}
	assert.Same(t, rec, useCaseObserverOrNoop([]UseCaseObserver{nil, rec}))
}
