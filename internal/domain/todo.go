package domain

// Todo schedules a task over a date-time range and tracks its checkpoints.
// It owns its range and status list; it does not require the checkpoints to
// fall inside the range.
type Todo struct {
	id     ID
	task   Task
	rng    DateTimeRange
	status DoneStatusList
}

func NewTodo(id ID, task Task, r DateTimeRange, status DoneStatusList) *Todo {
	return &Todo{id: id, task: task, rng: r, status: NewDoneStatusList(status.statuses...)}
}

func (t *Todo) ID() ID                 { return t.id }
func (t *Todo) Task() Task             { return t.task }
func (t *Todo) Range() DateTimeRange   { return t.rng }
func (t *Todo) Status() DoneStatusList { return NewDoneStatusList(t.status.statuses...) }

// RangeRef exposes the owned range for in-place, validated mutation.
func (t *Todo) RangeRef() *DateTimeRange { return &t.rng }

// StatusRef exposes the owned status list for in-place mutation.
func (t *Todo) StatusRef() *DoneStatusList { return &t.status }

// SetTask replaces the task the todo schedules.
func (t *Todo) SetTask(task Task) { t.task = task }

// StatusesInRange returns the checkpoints that fall inside the todo's range.
func (t *Todo) StatusesInRange() []*DoneStatus {
	return t.status.FromRange(t.rng)
}

// Clone returns a deep copy that shares no mutable state with t.
func (t *Todo) Clone() *Todo {
	if t == nil {
		return nil
	}
	return NewTodo(t.id, t.task, t.rng, t.status)
}
