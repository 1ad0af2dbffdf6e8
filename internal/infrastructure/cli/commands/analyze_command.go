package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/raqm/internal/app"
	"github.com/doeshing/raqm/internal/domain"
	"github.com/doeshing/raqm/internal/infrastructure/cli/helpers"
)

// NewAnalyzeCommand creates the analyze command, the CLI twin of the HTTP
// endpoint in numeric mode.
func NewAnalyzeCommand(container *app.Container) *cobra.Command {
	var (
		platform string
		asJSON   bool
		copyText bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <numeral>",
		Short: "Produce the assistant's Arabic analysis report for a numeral",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := container.AnalyzeService.Analyze(cmd.Context(), domain.AnalyzeRequest{
				Prompt:   strings.Join(args, " "),
				Platform: platform,
			})
			if err != nil {
				return err
			}
			if copyText {
				helpers.CopyAndReport(cmd.ErrOrStderr(), resp.Response)
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, resp)
			}
			fmt.Fprintln(out, resp.Response)
			return nil
		},
	}

	cmd.Flags().StringVarP(&platform, "platform", "p", "decimal", "Radix token: binary|octal|decimal|hexadecimal")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full endpoint response as JSON")
	cmd.Flags().BoolVarP(&copyText, "copy", "c", false, "Copy the report to the clipboard")
	return cmd
}
