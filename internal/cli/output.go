package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// outputFlags select how a command prints its result.
type outputFlags struct {
	json  bool
	pager bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.json, "json", false, "Print the raw JSON response")
	cmd.Flags().BoolVar(&o.pager, "pager", false, "Show the report in a scrollable pager (terminal only)")
}

// emit prints v as indented JSON, or the rendered text report. The pager is
// used only when requested and the session is interactive.
func (o *outputFlags) emit(cmd *cobra.Command, app *App, title string, v any, render func() string) error {
	if o.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding output: %w", err)
		}
		return nil
	}
	text := render()
	if o.pager && app.interactive() {
		return runPager(title, text)
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), text)
	return err
}
