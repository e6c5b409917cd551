package cli

import (
	"github.com/alexanderramin/gradpath/internal/cli/formatter"
	"github.com/alexanderramin/gradpath/internal/importer"
	"github.com/spf13/cobra"
)

func newAuditCmd(a *App) *cobra.Command {
	var (
		out         outputFlags
		catalogPath string
	)

	cmd := &cobra.Command{
		Use:   "audit <plan-file>",
		Short: "Validate and audit an existing plan document",
		Long: `Audit a plan document (JSON or YAML). The file may be a bare plan
{goal, plan, completed_courses} or a saved generate response.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := importer.LoadDocument(args[0])
			if err != nil {
				return err
			}
			resp, err := a.Plans.AuditDocument(cmd.Context(), doc, catalogPath)
			if err != nil {
				return err
			}
			return out.emit(cmd, a, "Audit", resp, func() string { return formatter.FormatAuditResponse(resp) })
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Catalog CSV path (default from GRADPATH_CATALOG)")
	out.register(cmd)

	return cmd
}
