package cli

import (
	"github.com/spf13/cobra"

	"github.com/doeshing/raqm/internal/app"
	"github.com/doeshing/raqm/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. The container is built after flag
// parsing so --config can point at an alternate file; commands annotated with
// commands.AnnotationNoContainer never touch configuration.
func NewRootCmd(opts Options) *cobra.Command {
	container := &app.Container{}
	var configPath string

	root := &cobra.Command{
		Use:   "raqm",
		Short: "raqm - Arabic content assistant and number base converter",
		Long: "raqm converts numerals between binary, octal, decimal and hexadecimal,\n" +
			"reports on them in Arabic, and generates Arabic content for social platforms.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsContainer(cmd) {
				return nil
			}
			built, err := app.BuildContainer(cmd.Context(), app.Options{
				Verbose:    opts.Verbose,
				ConfigPath: configPath,
			})
			if err != nil {
				return err
			}
			*container = *built
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !needsContainer(cmd) {
				return nil
			}
			return container.Close()
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $RAQM_CONFIG or ~/.raqm/config.yaml)")
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", opts.Verbose, "Enable debug logging")

	root.AddCommand(
		commands.NewConvertCommand(container),
		commands.NewAnalyzeCommand(container),
		commands.NewGenerateCommand(container),
		commands.NewServeCommand(container),
		commands.NewHistoryCommand(container),
		commands.NewCacheCommand(container),
		commands.NewConfigCommand(container),
		commands.NewDoctorCommand(container),
		commands.NewVersionCommand(),
	)
	return root
}

func needsContainer(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[commands.AnnotationNoContainer] == "true" {
			return false
		}
		switch c.Name() {
		case "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd, "completion":
			return false
		}
	}
	return cmd.HasParent()
}
