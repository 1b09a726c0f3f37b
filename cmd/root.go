// Package cmd provides the root command and CLI setup for chisel.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"chisel.dev/pkg/chisel/internal/adapter"
	"chisel.dev/pkg/chisel/internal/controller"
	"chisel.dev/pkg/chisel/internal/domain"
	m "chisel.dev/pkg/chisel/internal/model"
)

var fsAdapter adapter.ManifestFSAdapter
var manifestAdapter adapter.ManifestAdapter
var headerStore adapter.HeaderStore
var ui controller.UI
var workflow domain.Workflow

// outputDirFlag is a root-level flag shared by commands that read or write
// generated headers.
var outputDirFlag string

// libNameFlag names the native library; it feeds header assignment and the
// umbrella header name.
var libNameFlag string

// excludePatterns filters manifest files for applicable commands.
var excludePatterns []string

// verboseFlag switches the log file to debug level.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewSimpleUI(rootCmd)
	fsAdapter = adapter.NewLocalManifestFSAdapter()
	manifestAdapter = adapter.NewYAMLManifestAdapter()
	headerStore = adapter.NewLocalHeaderStore()
	workflow = domain.NewWorkflow(fsAdapter, manifestAdapter, headerStore, ui)
}

const pathArgsHelp = `Paths may name declaration manifests (*.decl.yaml) or directories that
are scanned recursively for them:
  - .               scan the current directory
  - ./bindings      scan the bindings directory
  - api.decl.yaml   use a single manifest`

const rootLongDescription = `Chisel generates consistent, compilable C header files from declaration
manifests describing the ABI surface of a native library, with correct
cross-header include ordering and guard/linkage wrapping.

` + pathArgsHelp

const generateLongDescription = `Generate C headers and the umbrella header for the given paths
(default: current directory).

` + pathArgsHelp

const listLongDescription = `List declaration manifests and how many of their declarations are
exportable across the C boundary.

` + pathArgsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chisel",
		Short: "C header binding generator",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for generated headers",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringVarP(&libNameFlag, libNameFlagName, "n", viper.GetString(libNameConfigKey), "short name of the native library")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(libNameFlagName), libNameConfigKey)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude manifests matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
