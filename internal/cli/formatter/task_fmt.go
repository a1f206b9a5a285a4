package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cadence/internal/domain"
)

// FormatTaskList renders tasks with the number of todos scheduling each.
func FormatTaskList(tasks []*domain.Task, todoCounts map[domain.ID]int) string {
	if len(tasks) == 0 {
		return Dim("No tasks yet. Create one with: cadence task add --name \"...\"") + "\n"
	}

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			Dim(t.ID().String()),
			t.Name(),
			fmt.Sprintf("%d", todoCounts[t.ID()]),
		})
	}

	var b strings.Builder
	b.WriteString(Header("Tasks"))
	b.WriteString("\n")
	b.WriteString(RenderTable([]string{"ID", "NAME", "TODOS"}, rows))
	return b.String()
}

// FormatTask renders a one-line confirmation for a created or renamed task.
func FormatTask(verb string, t *domain.Task) string {
	return fmt.Sprintf("%s %s %s\n", StyleGreen.Render(verb), Bold(t.Name()), Dim("("+t.ID().String()+")"))
}
