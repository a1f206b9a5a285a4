package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

var testTaskCounter atomic.Int64

// Day is the calendar day fixtures schedule on unless told otherwise.
var Day = time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)

// At returns hour:minute on Day in UTC.
func At(hour, minute int) time.Time {
	return Day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// NewTestTask returns a task with a fresh ID. An empty name gets a numbered
// default.
func NewTestTask(name string) *domain.Task {
	if name == "" {
		name = fmt.Sprintf("Task %d", testTaskCounter.Add(1))
	}
	task, err := domain.NewTask(domain.GenerateID(), name)
	if err != nil {
		panic(err)
	}
	return &task
}

// Todo options
type todoConfig struct {
	id       domain.ID
	start    time.Time
	end      time.Time
	statuses []domain.DoneStatus
}

type TodoOption func(*todoConfig)

func WithTodoID(id string) TodoOption {
	return func(c *todoConfig) {
		c.id = domain.NewID(id)
	}
}

func WithRange(start, end time.Time) TodoOption {
	return func(c *todoConfig) {
		c.start = start
		c.end = end
	}
}

// WithCheckpoints adds one undone status per instant.
func WithCheckpoints(at ...time.Time) TodoOption {
	return func(c *todoConfig) {
		for _, ts := range at {
			c.statuses = append(c.statuses, domain.NewDoneStatus(domain.GenerateID(), ts, false))
		}
	}
}

// WithStatus adds a status with a fixed ID and state.
func WithStatus(id string, at time.Time, done bool) TodoOption {
	return func(c *todoConfig) {
		c.statuses = append(c.statuses, domain.NewDoneStatus(domain.NewID(id), at, done))
	}
}

// NewTestTodo returns a todo for task spanning 08:00 to 18:00 on Day unless
// WithRange says otherwise.
func NewTestTodo(task *domain.Task, opts ...TodoOption) *domain.Todo {
	c := &todoConfig{
		id:    domain.GenerateID(),
		start: At(8, 0),
		end:   At(18, 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	r, err := domain.NewRange(c.start, c.end)
	if err != nil {
		panic(err)
	}
	return domain.NewTodo(c.id, *task, r, domain.NewDoneStatusList(c.statuses...))
}
