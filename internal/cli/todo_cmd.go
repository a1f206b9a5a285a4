package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/service"
	"github.com/spf13/cobra"
)

func newTodoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage scheduled todos and their checkpoints",
	}

	cmd.AddCommand(
		newTodoListCmd(app),
		newTodoShowCmd(app),
		newTodoAddCmd(app),
		newTodoMarkCmd(app, true),
		newTodoMarkCmd(app, false),
		newTodoRescheduleCmd(app),
		newTodoProgressCmd(app),
		newTodoRemoveCmd(app),
	)

	return cmd
}

func newTodoListCmd(app *App) *cobra.Command {
	var taskID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the todos of a task (default task when --task is omitted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				todos []*domain.Todo
				err   error
			)
			if taskID == "" {
				todos, err = app.TodoList.List(cmd.Context())
			} else {
				todos, err = app.TodoList.ListByTask(cmd.Context(), domain.NewID(taskID))
			}
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTodoList(todos, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&taskID, "task", "", "Task ID")
	return cmd
}

func newTodoShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show TODO_ID",
		Short: "Show a todo and its checkpoints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			todo, err := app.Todos.GetByID(cmd.Context(), domain.NewID(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTodoDetail(todo))
			return nil
		},
	}
}

func newTodoAddCmd(app *App) *cobra.Command {
	var (
		taskID      string
		start, end  string
		checkpoints []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a todo for a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			startAt, err := parseInstant(start)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			endAt, err := parseInstant(end)
			if err != nil {
				return fmt.Errorf("--end: %w", err)
			}

			in := service.CreateTodoInput{
				TaskID: domain.NewID(taskID),
				Start:  startAt,
				End:    endAt,
			}
			for _, c := range checkpoints {
				at, err := parseInstant(c)
				if err != nil {
					return fmt.Errorf("--checkpoint: %w", err)
				}
				in.Checkpoints = append(in.Checkpoints, at)
			}

			todo, err := app.Todos.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created todo %s\n", todo.ID())
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTodoDetail(todo))
			return nil
		},
	}

	cmd.Flags().StringVar(&taskID, "task", "", "Task ID")
	cmd.Flags().StringVar(&start, "start", "", "Start time")
	cmd.Flags().StringVar(&end, "end", "", "End time (exclusive)")
	cmd.Flags().StringArrayVar(&checkpoints, "checkpoint", nil, "Checkpoint time (repeatable)")
	_ = cmd.MarkFlagRequired("task")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newTodoMarkCmd(app *App, done bool) *cobra.Command {
	use, short, verb := "done", "Mark a checkpoint as done", "Marked done"
	if !done {
		use, short, verb = "undone", "Mark a checkpoint as undone", "Marked undone"
	}

	return &cobra.Command{
		Use:   use + " TODO_ID STATUS_ID",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			todoID, statusID := domain.NewID(args[0]), domain.NewID(args[1])

			var (
				todo *domain.Todo
				err  error
			)
			if done {
				todo, err = app.Todos.MarkDone(cmd.Context(), todoID, statusID)
			} else {
				todo, err = app.Todos.MarkUndone(cmd.Context(), todoID, statusID)
			}
			if err != nil {
				return err
			}

			s := todo.Status()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s\n", verb, statusID,
				formatter.RenderCounts(s.Dones(), s.MaxDones()))
			return nil
		},
	}
}

func newTodoRescheduleCmd(app *App) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "reschedule TODO_ID",
		Short: "Move the start and/or end of a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startAt, err := parseOptionalInstant(start)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			endAt, err := parseOptionalInstant(end)
			if err != nil {
				return fmt.Errorf("--end: %w", err)
			}
			if startAt == nil && endAt == nil {
				return errors.New("at least one of --start or --end is required")
			}

			todo, err := app.Todos.Reschedule(cmd.Context(), domain.NewID(args[0]), startAt, endAt)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rescheduled %s to %s\n", todo.ID(), formatter.FormatRange(todo.Range()))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "New start time")
	cmd.Flags().StringVar(&end, "end", "", "New end time (exclusive)")
	return cmd
}

func newTodoProgressCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "progress TODO_ID",
		Short: "Summarise done checkpoints, optionally within --from/--to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			window, err := parseWindow(from, to)
			if err != nil {
				return err
			}

			p, err := app.Todos.Progress(cmd.Context(), domain.NewID(args[0]), window)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProgress(p, window))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Window start")
	cmd.Flags().StringVar(&to, "to", "", "Window end (exclusive)")
	return cmd
}

// parseWindow requires both bounds or neither.
func parseWindow(from, to string) (*domain.DateTimeRange, error) {
	if from == "" && to == "" {
		return nil, nil
	}
	if from == "" || to == "" {
		return nil, errors.New("--from and --to must be given together")
	}

	var start, end time.Time
	var err error
	if start, err = parseInstant(from); err != nil {
		return nil, fmt.Errorf("--from: %w", err)
	}
	if end, err = parseInstant(to); err != nil {
		return nil, fmt.Errorf("--to: %w", err)
	}
	r, err := domain.NewRange(start, end)
	if err != nil {
		return nil, fmt.Errorf("window: %w", err)
	}
	return &r, nil
}

func newTodoRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove TODO_ID",
		Short: "Remove a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.NewID(args[0])
			if err := app.Todos.Remove(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed todo %s\n", id)
			return nil
		},
	}
}
