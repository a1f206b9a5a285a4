package domain

import "time"

// DoneStatus is a completion checkpoint anchored to an instant. Only the done
// flag can change after construction.
type DoneStatus struct {
	id             ID
	applicableTime time.Time
	done           bool
}

func NewDoneStatus(id ID, applicableTime time.Time, done bool) DoneStatus {
	return DoneStatus{id: id, applicableTime: applicableTime, done: done}
}

func (s DoneStatus) ID() ID                    { return s.id }
func (s DoneStatus) ApplicableTime() time.Time { return s.applicableTime }
func (s DoneStatus) Done() bool                { return s.done }
func (s DoneStatus) Undone() bool              { return !s.done }

func (s *DoneStatus) MarkAsDone()   { s.done = true }
func (s *DoneStatus) MarkAsUndone() { s.done = false }

// DoneStatusList is an ordered set of checkpoints. Order is preserved for
// deterministic iteration only.
type DoneStatusList struct {
	statuses []DoneStatus
}

func NewDoneStatusList(statuses ...DoneStatus) DoneStatusList {
	cp := make([]DoneStatus, len(statuses))
	copy(cp, statuses)
	return DoneStatusList{statuses: cp}
}

// All returns a copy of every status in insertion order.
func (l DoneStatusList) All() []DoneStatus {
	cp := make([]DoneStatus, len(l.statuses))
	copy(cp, l.statuses)
	return cp
}

func (l *DoneStatusList) Add(s DoneStatus) {
	l.statuses = append(l.statuses, s)
}

// Find returns a pointer to the status with the given ID so it can be marked.
func (l *DoneStatusList) Find(id ID) (*DoneStatus, bool) {
	for i := range l.statuses {
		if l.statuses[i].id == id {
			return &l.statuses[i], true
		}
	}
	return nil, false
}

// FromRange returns the statuses whose applicable time r includes, in list
// order. The returned pointers alias the list.
func (l *DoneStatusList) FromRange(r DateTimeRange) []*DoneStatus {
	var out []*DoneStatus
	for i := range l.statuses {
		if r.Includes(l.statuses[i].applicableTime) {
			out = append(out, &l.statuses[i])
		}
	}
	return out
}

func (l DoneStatusList) Dones() int {
	n := 0
	for _, s := range l.statuses {
		if s.Done() {
			n++
		}
	}
	return n
}

func (l DoneStatusList) Undones() int {
	n := 0
	for _, s := range l.statuses {
		if s.Undone() {
			n++
		}
	}
	return n
}

func (l DoneStatusList) MaxDones() int {
	return len(l.statuses)
}

// Complete reports whether every status is done. An empty list is never
// complete.
func (l DoneStatusList) Complete() bool {
	if len(l.statuses) == 0 {
		return false
	}
	return l.Dones() == l.MaxDones()
}

// Ratio returns the done fraction in [0, 1]; 0 for an empty list.
func (l DoneStatusList) Ratio() float64 {
	if len(l.statuses) == 0 {
		return 0
	}
	return float64(l.Dones()) / float64(l.MaxDones())
}
