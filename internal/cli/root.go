package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/weekplan/internal/cli/formatter"
	"github.com/alexanderramin/weekplan/internal/domain"
	"github.com/alexanderramin/weekplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and terminal hooks used by CLI commands.
type App struct {
	Plans  service.PlanService
	Import service.ImportService

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	// CopyText writes text to the system clipboard.
	CopyText func(text string) error

	// Confirm asks a yes/no question. Defaults to a huh confirm form.
	Confirm func(title string) (bool, error)

	// Reconfigure rewires the services when --dir or --backend is given.
	Reconfigure func(planDir, backend string) error

	// RunEditor runs the interactive editor on the open plan. Defaults to a
	// full-screen bubbletea program.
	RunEditor func(ctx context.Context, app *App) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "weekplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	if app.Confirm == nil {
		app.Confirm = confirmForm
	}
	if app.RunEditor == nil {
		app.RunEditor = runEditorProgram
	}

	var planDir, backend string
	root := &cobra.Command{
		Use:           "weekplan",
		Short:         "Hierarchical weekly task planner",
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Arguments are valid from here on; failures are not usage errors.
			cmd.SilenceUsage = true
			if app.Reconfigure == nil || (planDir == "" && backend == "") {
				return nil
			}
			return app.Reconfigure(planDir, backend)
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			planID, err := app.Plans.Latest(cmd.Context())
			if errors.Is(err, domain.ErrNotFound) {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanList(nil))
				return nil
			}
			if err != nil {
				return err
			}
			return openEditor(cmd, app, planID)
		},
	}
	root.PersistentFlags().StringVar(&planDir, "dir", "", "plan directory (overrides config)")
	root.PersistentFlags().StringVar(&backend, "backend", "", "plan store: file or sqlite")

	root.AddCommand(
		newListCmd(app),
		newNewCmd(app),
		newShowCmd(app),
		newImportCmd(app),
		newEditCmd(app),
		newTaskCmd(app),
	)

	return root
}
