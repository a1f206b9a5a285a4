package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusListFromDoneCount(done, undone int) DoneStatusList {
	var statuses []DoneStatus
	for i := 0; i < done; i++ {
		statuses = append(statuses, NewDoneStatus(NewID(fmt.Sprintf("done-%d", i)), at(12, 30), true))
	}
	for i := 0; i < undone; i++ {
		statuses = append(statuses, NewDoneStatus(NewID(fmt.Sprintf("undone-%d", i)), at(12, 30), false))
	}
	return NewDoneStatusList(statuses...)
}

func statusListFromTimes(times ...time.Time) DoneStatusList {
	statuses := make([]DoneStatus, 0, len(times))
	for i, ts := range times {
		statuses = append(statuses, NewDoneStatus(NewID(fmt.Sprintf("status-%d", i)), ts, false))
	}
	return NewDoneStatusList(statuses...)
}

func TestDoneStatusList_FromRange(t *testing.T) {
	cases := []struct {
		start, end time.Time
		want       int
	}{
		{at(9, 0), at(13, 0), 3},
		{at(10, 0), at(12, 0), 2},
		{at(10, 0), at(11, 0), 1},
		{at(11, 0), at(12, 0), 1},
		{at(9, 0), at(10, 0), 0},
		{at(13, 0), at(14, 0), 0},
	}
	list := statusListFromTimes(at(10, 0), at(11, 0), at(12, 0))

	for _, tc := range cases {
		r, err := NewRange(tc.start, tc.end)
		require.NoError(t, err)
		assert.Len(t, list.FromRange(r), tc.want, "range %s-%s", tc.start.Format("15:04"), tc.end.Format("15:04"))
	}
}

func TestDoneStatusList_FromRange_PreservesOrderAndDuplicates(t *testing.T) {
	list := statusListFromTimes(at(11, 0), at(10, 0), at(11, 0))
	r, err := NewRange(at(10, 0), at(12, 0))
	require.NoError(t, err)

	got := list.FromRange(r)
	require.Len(t, got, 3)
	assert.Equal(t, NewID("status-0"), got[0].ID())
	assert.Equal(t, NewID("status-1"), got[1].ID())
	assert.Equal(t, NewID("status-2"), got[2].ID())
}

func TestDoneStatusList_FromRange_AliasesList(t *testing.T) {
	list := statusListFromTimes(at(10, 0), at(11, 0))
	r, err := NewRange(at(10, 0), at(11, 0))
	require.NoError(t, err)

	for _, s := range list.FromRange(r) {
		s.MarkAsDone()
	}
	assert.Equal(t, 1, list.Dones())
	assert.Equal(t, 1, list.Undones())
}

func TestDoneStatusList_Complete(t *testing.T) {
	cases := []struct {
		done, undone int
		want         bool
	}{
		{5, 0, true},
		{4, 1, false},
		{1, 4, false},
		{0, 0, false},
	}
	for _, tc := range cases {
		list := statusListFromDoneCount(tc.done, tc.undone)
		assert.Equal(t, tc.want, list.Complete(), "done=%d undone=%d", tc.done, tc.undone)
	}
}

func TestDoneStatusList_Counts(t *testing.T) {
	cases := []struct {
		done, undone int
	}{
		{5, 0},
		{4, 1},
		{1, 4},
		{3, 3},
		{0, 0},
	}
	for _, tc := range cases {
		list := statusListFromDoneCount(tc.done, tc.undone)
		assert.Equal(t, tc.done, list.Dones())
		assert.Equal(t, tc.undone, list.Undones())
		assert.Equal(t, tc.done+tc.undone, list.MaxDones())
	}
}

func TestDoneStatusList_Ratio(t *testing.T) {
	assert.Equal(t, 0.0, statusListFromDoneCount(0, 0).Ratio())
	assert.Equal(t, 0.25, statusListFromDoneCount(1, 3).Ratio())
	assert.Equal(t, 1.0, statusListFromDoneCount(2, 0).Ratio())
}

func TestDoneStatus_MarkIsIdempotent(t *testing.T) {
	s := NewDoneStatus(NewID("s"), at(9, 0), false)
	s.MarkAsDone()
	s.MarkAsDone()
	assert.True(t, s.Done())
	s.MarkAsUndone()
	s.MarkAsUndone()
	assert.True(t, s.Undone())
	assert.Equal(t, at(9, 0), s.ApplicableTime())
	assert.Equal(t, NewID("s"), s.ID())
}

func TestDoneStatusList_FindAndAdd(t *testing.T) {
	list := NewDoneStatusList()
	list.Add(NewDoneStatus(NewID("a"), at(9, 0), false))

	s, ok := list.Find(NewID("a"))
	require.True(t, ok)
	s.MarkAsDone()
	assert.True(t, list.Complete())

	_, ok = list.Find(NewID("missing"))
	assert.False(t, ok)
}

func TestNewDoneStatusList_CopiesInput(t *testing.T) {
	statuses := []DoneStatus{NewDoneStatus(NewID("a"), at(9, 0), false)}
	list := NewDoneStatusList(statuses...)
	statuses[0].MarkAsDone()

	assert.Equal(t, 0, list.Dones(), "list must not alias the caller's slice")
	all := list.All()
	all[0].MarkAsDone()
	assert.Equal(t, 0, list.Dones(), "All must return a copy")
}
