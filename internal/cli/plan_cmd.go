package cli

import (
	"fmt"

	"github.com/alexanderramin/weekplan/internal/cli/formatter"
	"github.com/alexanderramin/weekplan/internal/importer"
	"github.com/spf13/cobra"
)

const markdownWidth = 80

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored plans",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := app.Plans.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanList(ids))
			return nil
		},
	}
}

func newNewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new PLAN",
		Short: "Create an empty plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Plans.New(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created plan %s\n", formatter.Bold(app.Plans.PlanID()))
			return nil
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	var asMarkdown bool

	cmd := &cobra.Command{
		Use:               "show PLAN",
		Short:             "Print a plan outline",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completePlanIDs(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := openPlan(cmd.Context(), app, args[0]); err != nil {
				return err
			}
			forest := app.Plans.Forest()
			if !asMarkdown {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(app.Plans.PlanID(), forest))
				return nil
			}

			md := importer.RenderMarkdown(forest)
			if !app.interactive() {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}
			out, err := formatter.RenderMarkdown(md, markdownWidth, true)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asMarkdown, "markdown", false, "print the plan as a markdown outline")
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:               "edit [PLAN]",
		Short:             "Edit a plan interactively (defaults to the most recent plan)",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completePlanIDs(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			var planID string
			if len(args) == 1 {
				planID = args[0]
			} else {
				latest, err := app.Plans.Latest(cmd.Context())
				if err != nil {
					return fmt.Errorf("no plan to edit: %w", err)
				}
				planID = latest
			}
			return openEditor(cmd, app, planID)
		},
	}
}

func openEditor(cmd *cobra.Command, app *App, planID string) error {
	if err := openPlan(cmd.Context(), app, planID); err != nil {
		return err
	}
	return app.RunEditor(cmd.Context(), app)
}
