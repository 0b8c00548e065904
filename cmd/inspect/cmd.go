package inspect

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/garronej/react-envs/configs"
	"github.com/garronej/react-envs/pkg/snapshot"
)

// Command is the inspect command declaration.
var Command = &cobra.Command{
	Use:   "inspect",
	Short: "Print the metadata of a build's snapshot artifact",
	Run:   run,
	Long:  ``,
}

var (
	commandConfig = configs.NewInspectCommandConfig()
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

	rootLogger := logConfig.NewLogger("inspect")

	if err := commandConfig.Validate(); err != nil {
		rootLogger.Error("configuration is invalid", "reason", err)
		return 1
	}

	artifactPath := snapshot.PathIn(commandConfig.DistDir)
	artifact, readErr := snapshot.Read(artifactPath)
	if readErr != nil {
		rootLogger.Error("failed reading snapshot artifact", "path", artifactPath, "reason", readErr)
		return 1
	}

	if commandConfig.AsJSON {
		payload, err := json.MarshalIndent(map[string]interface{}{
			"version":       artifact.Version,
			"assetsUrlPath": artifact.AssetsURLPath,
			"variables":     variableNames(artifact),
		}, "", "  ")
		if err != nil {
			rootLogger.Error("failed serializing artifact metadata", "reason", err)
			return 1
		}
		fmt.Println(string(payload))
		return 0
	}

	fmt.Println("version:", artifact.Version)
	fmt.Println("assets url path:", artifact.AssetsURLPath)
	fmt.Println("variables:")
	for _, name := range variableNames(artifact) {
		fmt.Println("  -", name)
	}
	return 0
}

// variableNames returns the declared variable names, sorted, without values.
// Values may carry secrets resolved at build time so they are never printed.
func variableNames(artifact *snapshot.Artifact) []string {
	seen := map[string]struct{}{}
	for name := range artifact.BaseBuildTimeEnv {
		seen[name] = struct{}{}
	}
	for name := range artifact.Env {
		seen[name] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
