package cli

import (
	"fmt"

	"github.com/alexanderramin/gradpath/internal/app"
	"github.com/alexanderramin/gradpath/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newGenerateCmd(a *App) *cobra.Command {
	var (
		flags       requestFlags
		out         outputFlags
		input       string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build a four-year plan and audit it",
		Long: `Build a four-year plan from the course catalog, validate it, audit it against
the A-G and graduation rubrics, fill A-G gaps, and project GPA.

Flags override values read from --input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.NewPlanRequest()
			if input != "" {
				var err error
				if req, err = loadRequest(input); err != nil {
					return err
				}
			}
			flags.apply(cmd.Flags(), &req)

			if interactive {
				if !a.interactive() {
					return fmt.Errorf("--interactive requires a terminal")
				}
				values := newFormValues(req)
				if err := requestForm(values).Run(); err != nil {
					return fmt.Errorf("request form: %w", err)
				}
				values.applyTo(&req)
			}

			stop := func() {}
			if !out.json && a.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Building plan...")
			}
			resp, err := a.Plans.Generate(cmd.Context(), req)
			stop()
			if err != nil {
				return err
			}
			return out.emit(cmd, a, "Plan", resp, func() string { return formatter.FormatGenerate(resp) })
		},
	}

	flags.register(cmd.Flags())
	out.register(cmd)
	cmd.Flags().StringVarP(&input, "input", "i", "", "Request file (JSON or YAML)")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "Fill in the request with a form")

	return cmd
}
