package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

const (
	demoTaskCount        = 9
	demoScheduledTasks   = 5
	demoTodoCount        = 100
	demoCheckpointsEach  = 3
	demoFirstHour        = 8
	demoCheckpointStride = 3
)

// SeedDemoData fills the repositories with a demo data set: tasks task-0
// through task-8 named "Task #N", and 100 todos spread over the first five
// tasks. Todo i spans a day starting on day i/3 after today at 08:00, 11:00
// or 14:00 and carries three undone checkpoints on day i.
func SeedDemoData(ctx context.Context, tasks TaskRepo, todos TodoRepo, now time.Time) error {
	seeded := make([]domain.Task, 0, demoTaskCount)
	for i := 0; i < demoTaskCount; i++ {
		task, err := domain.NewTask(domain.NewID(fmt.Sprintf("task-%d", i)), fmt.Sprintf("Task #%d", i))
		if err != nil {
			return err
		}
		if err := tasks.Create(ctx, &task); err != nil {
			return fmt.Errorf("seeding task %s: %w", task.ID(), err)
		}
		seeded = append(seeded, task)
	}

	for i := 0; i < demoTodoCount; i++ {
		r, err := domain.NewRange(demoInstant(now, i/3, i%3), demoInstant(now, i/3+1, i%3))
		if err != nil {
			return err
		}
		statuses := make([]domain.DoneStatus, 0, demoCheckpointsEach)
		for j := 0; j < demoCheckpointsEach; j++ {
			statuses = append(statuses, domain.NewDoneStatus(domain.GenerateID(), demoInstant(now, i, j), false))
		}
		todo := domain.NewTodo(domain.GenerateID(), seeded[i%demoScheduledTasks], r, domain.NewDoneStatusList(statuses...))
		if err := todos.Create(ctx, todo); err != nil {
			return fmt.Errorf("seeding todo %d: %w", i, err)
		}
	}
	return nil
}

func demoInstant(now time.Time, dayOffset, slot int) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d+dayOffset, demoFirstHour+slot*demoCheckpointStride, 0, 0, 0, time.UTC)
}
