package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/weekplan/internal/domain"
	"github.com/alexanderramin/weekplan/internal/tree"
	"github.com/spf13/cobra"
)

// openPlan loads planID into the editing session.
func openPlan(ctx context.Context, app *App, planID string) error {
	return app.Plans.Load(ctx, planID)
}

// resolveTask opens planID and returns the task addressed by a dotted path
// such as "2.1".
func resolveTask(ctx context.Context, app *App, planID, input string) (*domain.Task, tree.Path, error) {
	if err := openPlan(ctx, app, planID); err != nil {
		return nil, nil, err
	}
	path, err := tree.ParsePath(input)
	if err != nil {
		return nil, nil, err
	}
	task, ok := app.Plans.Tree().Resolve(path)
	if !ok {
		return nil, nil, fmt.Errorf("no task at %s in plan %q: %w", path, app.Plans.PlanID(), domain.ErrNotFound)
	}
	return task, path, nil
}

// completePlanIDs offers stored plan identifiers for the first argument.
func completePlanIDs(app *App) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		ids, err := app.Plans.List(cmd.Context())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return ids, cobra.ShellCompDirectiveNoFileComp
	}
}
