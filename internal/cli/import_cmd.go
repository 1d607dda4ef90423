package cli

import (
	"fmt"

	"github.com/alexanderramin/weekplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "import INPUT.md PLAN",
		Short: "Import a markdown checklist as a plan",
		Long: `Import a markdown checklist as a plan.

"##" headings become top-level tasks; "- [ ]" and "- [x]" checkboxes become
subtasks nested by indentation; text wrapped in ** marks a task important.
An existing plan is replaced after confirmation, or at once with --force.`,
		Example: `  weekplan import notes/week-29.md 2025-07-14`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, planID := args[0], args[1]

			if !force {
				exists, err := app.Plans.Exists(cmd.Context(), planID)
				if err != nil {
					return err
				}
				if exists {
					if !app.interactive() {
						return fmt.Errorf("plan %q already exists (use --force to replace it)", planID)
					}
					ok, err := app.Confirm(fmt.Sprintf("Plan %q already exists. Replace it?", planID))
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Import cancelled."))
						return nil
					}
				}
			}

			res, err := app.Import.ImportMarkdownFile(cmd.Context(), input, planID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d top-level tasks into %s\n", res.TopLevelCount, res.PlanID)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace an existing plan without asking")
	return cmd
}
