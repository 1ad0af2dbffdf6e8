package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/raqm/internal/app"
	"github.com/doeshing/raqm/internal/domain"
	"github.com/doeshing/raqm/internal/infrastructure/cli/helpers"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(container *app.Container) *cobra.Command {
	var (
		platform     string
		contentType  string
		model        string
		instructions string
		timeout      time.Duration
		asJSON       bool
		copyText     bool
	)

	cmd := &cobra.Command{
		Use:   "generate <prompt>",
		Short: "Generate Arabic content for a platform and tone",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := domain.ParsePlatform(platform)
			if !ok {
				return fmt.Errorf("unknown platform %q", platform)
			}
			ct, ok := domain.ParseContentType(contentType)
			if !ok {
				return fmt.Errorf("unknown content type %q", contentType)
			}

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			resp, err := container.ContentService.Generate(ctx, domain.GenerateRequest{
				Prompt:        strings.Join(args, " "),
				Platform:      p,
				ContentType:   ct,
				ModelOverride: model,
				Instructions:  instructions,
			})
			if err != nil {
				return err
			}
			if copyText {
				helpers.CopyAndReport(cmd.ErrOrStderr(), resp.Response)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			helpers.RenderGenerated(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	cmd.Flags().StringVarP(&platform, "platform", "p", string(domain.PlatformGeneral), "Target platform (slug or Arabic name)")
	cmd.Flags().StringVarP(&contentType, "content-type", "t", string(domain.ContentGeneral), "Content type (slug or Arabic name)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Override model name (default from config)")
	cmd.Flags().StringVar(&instructions, "instructions", "", "Extra instructions appended to the system prompt")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Overall deadline including fallbacks")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the response as JSON")
	cmd.Flags().BoolVarP(&copyText, "copy", "c", false, "Copy the generated text to the clipboard")
	return cmd
}
