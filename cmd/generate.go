package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"chisel.dev/pkg/chisel/internal/domain"
	m "chisel.dev/pkg/chisel/internal/model"
)

var generateParallelFlag int

// generateCmd represents the generate command.
var generateCmd = newGenerateCmd()

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [paths...]",
		Short: "Generate C headers",
		Long:  generateLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Generate(context.Background(), domain.GenerateArgs{
				Paths:   parsePaths(args),
				Exclude: viper.GetStringSlice(excludeConfigKey),
				LibName: viper.GetString(libNameConfigKey),
				Output:  m.Path(viper.GetString(outputFlagName)),
				Threads: viper.GetInt(parallelConfigKey),
			})
		},
	}

	configureGenerateFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func configureGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&generateParallelFlag, parallelFlagName, "p", viper.GetInt(parallelConfigKey), "number of parallel workers for manifest decoding")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)
}
