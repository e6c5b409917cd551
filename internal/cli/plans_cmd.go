package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/gradpath/internal/app"
	"github.com/alexanderramin/gradpath/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPlansCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Browse archived plans",
	}
	cmd.AddCommand(newPlansListCmd(a), newPlansShowCmd(a))
	return cmd
}

func newPlansListCmd(a *App) *cobra.Command {
	var (
		out   outputFlags
		limit int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived plans, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := a.Plans.ListPlans(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return out.emit(cmd, a, "Plans", docs, func() string { return formatter.FormatPlanList(docs) })
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum plans to list")
	out.register(cmd)

	return cmd
}

func newPlansShowCmd(a *App) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show an archived plan by ID or ID prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.Plans.GetPlan(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			var resp app.PlanResponse
			if err := json.Unmarshal(doc.Response, &resp); err != nil {
				return fmt.Errorf("decoding archived plan %s: %w", doc.ID, err)
			}
			resp.DocumentID = doc.ID
			return out.emit(cmd, a, "Plan "+doc.ID[:min(8, len(doc.ID))], json.RawMessage(doc.Response),
				func() string { return formatter.FormatGenerate(&resp) })
		},
	}

	out.register(cmd)

	return cmd
}
