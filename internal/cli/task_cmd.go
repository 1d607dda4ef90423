package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/weekplan/internal/cli/formatter"
	"github.com/alexanderramin/weekplan/internal/domain"
	"github.com/alexanderramin/weekplan/internal/service"
	"github.com/alexanderramin/weekplan/internal/tree"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Edit the tasks of a plan",
		Long: `Edit the tasks of a plan.

Tasks are addressed by dotted 1-based paths: "2.1" is the first subtask of the
second top-level task. Every command saves the plan afterwards.`,
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskRemoveCmd(app),
		newTaskMoveCmd(app, "indent", "Make a task a child of its previous sibling", service.PlanService.Indent),
		newTaskMoveCmd(app, "outdent", "Move a task up one level, after its parent", service.PlanService.Outdent),
		newTaskMoveCmd(app, "up", "Swap a task with its previous sibling", service.PlanService.MoveUp),
		newTaskMoveCmd(app, "down", "Swap a task with its next sibling", service.PlanService.MoveDown),
		newTaskToggleCmd(app),
		newTaskRenameCmd(app),
		newTaskOpenCmd(app),
		newTaskPathCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:               "add PLAN [PATH]",
		Short:             "Add a task at the top level or under PATH",
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: completePlanIDs(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var parent *domain.Task
			if len(args) == 2 {
				t, _, err := resolveTask(ctx, app, args[0], args[1])
				if err != nil {
					return err
				}
				parent = t
			} else if err := openPlan(ctx, app, args[0]); err != nil {
				return err
			}

			res, err := app.Plans.Create(ctx, parent)
			if err != nil {
				return err
			}
			if text != "" {
				if res, err = app.Plans.Rename(ctx, res.Node, text); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", taskLine(app, res.Node))
			return nil
		},
	}
	cmd.Flags().StringVarP(&text, "text", "t", "", "task text (defaults to the placeholder)")
	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:               "rm PLAN PATH",
		Aliases:           []string{"delete"},
		Short:             "Delete a task and its subtasks",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completePlanIDs(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			task, path, err := resolveTask(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			line := formatter.FormatTaskLine(path, task)
			sub := domain.Count(task.Children)

			if _, err := app.Plans.Delete(ctx, task); err != nil {
				return err
			}
			msg := "Deleted " + line
			if sub > 0 {
				msg += formatter.Dim(fmt.Sprintf(" (and %s)", formatter.Pluralize(sub, "subtask")))
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

// taskOp is a PlanService method expression, resolved against app.Plans at
// run time so --dir and --backend can rewire the service first.
type taskOp func(s service.PlanService, ctx context.Context, node *domain.Task) (tree.Result, error)

func newTaskMoveCmd(app *App, use, short string, op taskOp) *cobra.Command {
	return &cobra.Command{
		Use:               use + " PLAN PATH",
		Short:             short,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completePlanIDs(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			task, _, err := resolveTask(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			res, err := op(app.Plans, ctx, task)
			if err != nil {
				return err
			}
			if !res.Changed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.Dim("Unchanged:"), taskLine(app, task))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s\n", taskLine(app, res.Node))
			return nil
		},
	}
}

func newTaskToggleCmd(app *App) *cobra.Command {
	var set flagSetValue

	cmd := &cobra.Command{
		Use:               "toggle PLAN PATH --set FLAGS",
		Short:             "Flip task flags (" + flagNames() + ")",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completePlanIDs(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(set.flags) == 0 {
				return fmt.Errorf("--set needs at least one of %s", flagNames())
			}
			ctx := cmd.Context()
			task, _, err := resolveTask(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			for _, f := range set.flags {
				if _, err := app.Plans.Toggle(ctx, task, f); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), taskLine(app, task))
			return nil
		},
	}
	cmd.Flags().Var(&set, "set", "comma-separated flags to flip")
	_ = cmd.MarkFlagRequired("set")
	_ = cmd.RegisterFlagCompletionFunc("set", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return strings.Split(flagNames(), ", "), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func newTaskRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:               "rename PLAN PATH TEXT...",
		Short:             "Replace a task's text",
		Args:              cobra.MinimumNArgs(3),
		ValidArgsFunction: completePlanIDs(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			task, _, err := resolveTask(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			if _, err := app.Plans.Rename(ctx, task, strings.Join(args[2:], " ")); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s\n", taskLine(app, task))
			return nil
		},
	}
}

func newTaskOpenCmd(app *App) *cobra.Command {
	var closed bool

	cmd := &cobra.Command{
		Use:               "open PLAN PATH",
		Short:             "Expand a task in the editor (or collapse it with --closed)",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completePlanIDs(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			task, path, err := resolveTask(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			if _, err := app.Plans.SetOpen(ctx, task, !closed); err != nil {
				return err
			}
			state := "Expanded"
			if closed {
				state = "Collapsed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", state, formatter.FormatTaskLine(path, task))
			return nil
		},
	}
	cmd.Flags().BoolVar(&closed, "closed", false, "collapse instead of expand")
	return cmd
}

func newTaskPathCmd(app *App) *cobra.Command {
	var copyText bool

	cmd := &cobra.Command{
		Use:               "path PLAN PATH",
		Short:             "Print a task's full text, ancestors first",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completePlanIDs(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, _, err := resolveTask(cmd.Context(), app, args[0], args[1])
			if err != nil {
				return err
			}
			full := app.Plans.Tree().FullText(task)
			if copyText {
				if app.CopyText == nil {
					return errors.New("clipboard is not available")
				}
				if err := app.CopyText(full); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), full)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&copyText, "copy", "c", false, "also copy the text to the clipboard")
	return cmd
}

// taskLine renders node with its current path in the open plan.
func taskLine(app *App, node *domain.Task) string {
	return formatter.FormatTaskLine(app.Plans.Tree().PathOf(node), node)
}
