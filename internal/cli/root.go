package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/config"
	"github.com/alexanderramin/cadence/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Tasks    service.TaskService
	TaskList service.TaskRetrieveService
	Todos    service.TodoService
	TodoList service.TodoRetrieveService
	Import   service.ImportService

	// IsInteractive reports whether prompts may be shown.
	IsInteractive func() bool
	// PromptTaskName asks for a task name. Defaults to a huh form.
	PromptTaskName func(name *string) error
	// Confirm asks a yes/no question. Defaults to a huh form.
	Confirm func(title string, result *bool) error
	// Now anchors relative dates. Defaults to time.Now.
	Now func() time.Time
}

// Options are the persistent flags the App is composed from.
type Options struct {
	ConfigPath string
	Store      string
}

// Builder composes an App from Options. The returned func releases its
// resources.
type Builder func(ctx context.Context, opts Options) (*App, func(), error)

// NewRootCmd creates the top-level "cadence" command. build runs before any
// subcommand, after flags are parsed. The returned func releases whatever
// build acquired and must be called once Execute returns, whether or not the
// command failed.
func NewRootCmd(build Builder) (*cobra.Command, func()) {
	app := &App{}
	var opts Options
	cleanup := func() {}

	root := newRoot(app)
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		built, closeFn, err := build(cmd.Context(), opts)
		if err != nil {
			return err
		}
		*app = *built
		if closeFn != nil {
			cleanup = closeFn
		}
		return nil
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.ConfigPath, "config", "", "Config file (.yaml or .toml; default $CADENCE_CONFIG or ~/.cadence/config.yaml)")
	pf.Var(newStoreFlag(&opts.Store), "store", "Backing store: sqlite or memory (overrides config)")

	release := func() {
		cleanup()
		cleanup = func() {}
	}
	return root, release
}

// newRoot registers every subcommand against app.
func newRoot(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "cadence",
		Short:         "Schedule tasks and track their checkpoints",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newTaskCmd(app),
		newTodoCmd(app),
		newImportCmd(app),
	)

	return root
}

// storeFlag is a pflag.Value accepting only known store kinds.
type storeFlag struct {
	value *string
}

var _ pflag.Value = (*storeFlag)(nil)

func newStoreFlag(p *string) *storeFlag {
	return &storeFlag{value: p}
}

func (f *storeFlag) String() string {
	if f.value == nil {
		return ""
	}
	return *f.value
}

func (f *storeFlag) Set(s string) error {
	switch s {
	case config.StoreSQLite, config.StoreMemory:
		*f.value = s
		return nil
	default:
		return fmt.Errorf("must be %s or %s", config.StoreSQLite, config.StoreMemory)
	}
}

func (f *storeFlag) Type() string {
	return "store"
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}
