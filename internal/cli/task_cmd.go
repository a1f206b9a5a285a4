package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskRenameCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				if !app.interactive() {
					return errors.New("--name is required")
				}
				if err := app.promptTaskName(&name); err != nil {
					return err
				}
			}

			task, err := app.Tasks.Create(cmd.Context(), name)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTask("Created task", task))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Task name (prompted when omitted on a terminal)")
	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tasks, err := app.TaskList.List(ctx)
			if err != nil {
				return err
			}

			counts := make(map[domain.ID]int, len(tasks))
			for _, t := range tasks {
				todos, err := app.TodoList.ListByTask(ctx, t.ID())
				if err != nil {
					return err
				}
				counts[t.ID()] = len(todos)
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks, counts))
			return nil
		},
	}
}

func newTaskRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename TASK_ID NAME",
		Short: "Rename a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := app.Tasks.Rename(cmd.Context(), domain.NewID(args[0]), args[1])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTask("Renamed task", task))
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	var force, yes bool

	cmd := &cobra.Command{
		Use:   "remove TASK_ID",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.NewID(args[0])

			if force && !yes && app.interactive() {
				confirmed := false
				if err := app.confirm(fmt.Sprintf("Remove task %s and all its todos?", id), &confirmed); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}

			if err := app.Tasks.Remove(cmd.Context(), id, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed task %s\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Also remove the task's todos")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
