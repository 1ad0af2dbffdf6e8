package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/raqm/internal/app"
	"github.com/doeshing/raqm/internal/converter"
	"github.com/doeshing/raqm/internal/domain"
	"github.com/doeshing/raqm/internal/infrastructure/cli/helpers"
)

// NewConvertCommand creates the convert command. It runs the converter
// in-process; valid conversions are added to history.
func NewConvertCommand(container *app.Container) *cobra.Command {
	var (
		from   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "convert <numeral>",
		Short: "Convert a numeral between binary, octal, decimal and hexadecimal",
		Example: `  raqm convert 1010 --from binary
  raqm convert "1111 0000" --from 2
  raqm convert ff --from hex --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			radix, err := domain.ParseRadix(from)
			if err != nil {
				return err
			}
			input := strings.Join(args, " ")
			result := container.AnalyzeService.Convert(cmd.Context(), input, radix)
			return printConversion(cmd.OutOrStdout(), input, radix, result, asJSON)
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "decimal", "Source radix: binary|octal|decimal|hexadecimal or 2|8|10|16")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func printConversion(out io.Writer, input string, radix domain.Radix, result domain.ConversionResult, asJSON bool) error {
	if asJSON {
		if err := writeJSON(out, result); err != nil {
			return err
		}
	} else {
		helpers.RenderConversion(out, input, radix, result)
	}
	if result.IsValid {
		return nil
	}
	if _, err := converter.Parse(input, radix); err != nil {
		return fmt.Errorf("invalid %s numeral: %w", radix, err)
	}
	return fmt.Errorf("invalid %s numeral", radix)
}
