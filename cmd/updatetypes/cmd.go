package updatetypes

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/garronej/react-envs/configs"
	"github.com/garronej/react-envs/pkg/typings"
)

// Command is the update-types command declaration.
var Command = &cobra.Command{
	Use:   "update-types",
	Short: "Write the type declarations for the runtime environment global",
	Run:   run,
	Long: `Maintains the TypeScript declaration scaffolding for the runtime
environment global inside the project source directory, then exits. No
build pipeline is constructed.`,
}

var (
	commandConfig = configs.NewUpdateTypesCommandConfig()
	logConfig     = configs.NewLoggingConfig()
)

func initFlags() {
	Command.Flags().AddFlagSet(commandConfig.FlagSet())
	Command.Flags().AddFlagSet(logConfig.FlagSet())
}

func init() {
	initFlags()
}

func run(cobraCommand *cobra.Command, _ []string) {
	os.Exit(processCommand())
}

func processCommand() int {

	rootLogger := logConfig.NewLogger("update-types")

	if err := commandConfig.Validate(); err != nil {
		rootLogger.Error("configuration is invalid", "reason", err)
		return 1
	}

	sourceDir := commandConfig.ResolvedSourceDir()
	if err := typings.Update(sourceDir); err != nil {
		rootLogger.Error("failed writing type declarations", "source-dir", sourceDir, "reason", err)
		return 1
	}

	rootLogger.Info("type declarations updated", "source-dir", sourceDir)
	return 0
}
