package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/service"
)

const progressWidth = 12

// FormatTodoList renders todos as a table of range, duration and checkpoint
// progress. now anchors the relative "when" column.
func FormatTodoList(todos []*domain.Todo, now time.Time) string {
	if len(todos) == 0 {
		return Dim("No todos scheduled.") + "\n"
	}

	rows := make([][]string, 0, len(todos))
	for _, t := range todos {
		status := t.Status()
		rows = append(rows, []string{
			Dim(t.ID().String()),
			t.Task().Name(),
			FormatRange(t.Range()),
			FormatDuration(domain.RangeDuration(t.Range())),
			RelativeDateFrom(t.Range().Start(), now),
			RenderCounts(status.Dones(), status.MaxDones()),
		})
	}

	var b strings.Builder
	b.WriteString(Header("Todos"))
	b.WriteString("\n")
	b.WriteString(RenderTable([]string{"ID", "TASK", "WHEN", "SPAN", "", "DONE"}, rows))
	return b.String()
}

// FormatTodoDetail renders one todo with every checkpoint. Checkpoints
// outside the todo's range are marked.
func FormatTodoDetail(t *domain.Todo) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", Bold(t.Task().Name()), Dim(t.Task().ID().String()))
	fmt.Fprintf(&b, "%s  %s\n", Dim("ID   "), t.ID())
	fmt.Fprintf(&b, "%s  %s (%s)\n", Dim("When "), FormatRange(t.Range()), FormatDuration(domain.RangeDuration(t.Range())))

	status := t.Status()
	if status.MaxDones() == 0 {
		b.WriteString(Dim("No checkpoints.") + "\n")
		return RenderBox("Todo", strings.TrimRight(b.String(), "\n"))
	}

	fmt.Fprintf(&b, "%s  %s\n\n", Dim("Done "), RenderProgress(status.Ratio(), progressWidth))

	rows := make([][]string, 0, status.MaxDones())
	for _, s := range status.All() {
		note := ""
		if !t.Range().Includes(s.ApplicableTime()) {
			note = StyleYellow.Render("outside range")
		}
		rows = append(rows, []string{
			CheckMark(s.Done()),
			FormatInstant(s.ApplicableTime()),
			Dim(s.ID().String()),
			note,
		})
	}
	b.WriteString(RenderTable([]string{"", "AT", "STATUS ID", ""}, rows))

	return RenderBox("Todo", strings.TrimRight(b.String(), "\n"))
}

// FormatProgress renders a progress summary, optionally scoped to a window.
func FormatProgress(p service.Progress, window *domain.DateTimeRange) string {
	var b strings.Builder
	scope := "all checkpoints"
	if window != nil {
		scope = FormatRange(*window)
	}
	fmt.Fprintf(&b, "%s %s\n", Header("Progress"), Dim(scope))
	if p.MaxDones == 0 {
		b.WriteString(Dim("No checkpoints in scope.") + "\n")
		return b.String()
	}
	fmt.Fprintf(&b, "%s\n", RenderProgress(p.Ratio, progressWidth*2))
	fmt.Fprintf(&b, "%s done, %s open of %d", StyleGreen.Render(fmt.Sprint(p.Dones)), StyleBlue.Render(fmt.Sprint(p.Undones)), p.MaxDones)
	if p.Complete {
		b.WriteString("  " + StyleGreen.Render("✔ complete"))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatImportResult summarises an import.
func FormatImportResult(r *service.ImportResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d tasks, %d todos, %d checkpoints\n",
		StyleGreen.Render("Imported"), len(r.Tasks), r.TodoCount, r.StatusCount)
	for _, t := range r.Tasks {
		fmt.Fprintf(&b, "  %s %s\n", Bold(t.Name()), Dim(t.ID().String()))
	}
	return b.String()
}
