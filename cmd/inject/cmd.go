package inject

import (
	"os"

	"github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/opentracing/opentracing-go"
	"github.com/spf13/cobra"

	"github.com/garronej/react-envs/configs"
	"github.com/garronej/react-envs/pkg/envs"
	"github.com/garronej/react-envs/pkg/render"
	"github.com/garronej/react-envs/pkg/snapshot"
	"github.com/garronej/react-envs/pkg/tracing"
	"github.com/garronej/react-envs/pkg/utils"
)

// Command is the inject command declaration.
var Command = &cobra.Command{
	Use:   "inject",
	Short: "Re-template a built bundle's entry HTML with the current environment",
	Run:   run,
	Long: `Reads the snapshot artifact written at build time, overlays the
current environment on top of the environment recorded in the artifact
and regenerates the final entry HTML. The bundle itself is not rebuilt.`,
}

var (
	commandConfig = configs.NewInjectCommandConfig()
	logConfig     = configs.NewLoggingConfig()
	tracingConfig = configs.NewTracingConfig("react-envs-inject")
)

func initFlags() {
	Command.Flags().AddFlagSet(commandConfig.FlagSet())
	Command.Flags().AddFlagSet(logConfig.FlagSet())
	Command.Flags().AddFlagSet(tracingConfig.FlagSet())
}

func init() {
	initFlags()
}

func run(cobraCommand *cobra.Command, _ []string) {
	os.Exit(processCommand())
}

func processCommand() int {

	cleanup := utils.NewDefers()
	defer cleanup.CallAll()

	runID := uuid.Must(uuid.NewV4()).String()
	rootLogger := logConfig.NewLogger("inject").With("run-id", runID)

	var validationErr error
	for _, validatingConfig := range []configs.ValidatingConfig{commandConfig} {
		if err := validatingConfig.Validate(); err != nil {
			validationErr = multierror.Append(validationErr, err)
		}
	}
	if validationErr != nil {
		rootLogger.Error("configuration is invalid", "reason", validationErr)
		return 1
	}

	tracer, tracerCleanupFunc, tracerErr := tracing.GetTracer(rootLogger.Named("tracer"), tracingConfig)
	if tracerErr != nil {
		rootLogger.Error("failed constructing tracer", "reason", tracerErr)
		return 1
	}
	cleanup.Add(tracerCleanupFunc)

	spanInject := tracer.StartSpan("inject")
	spanInject.SetTag("run-id", runID)
	cleanup.Add(func() {
		spanInject.Finish()
	})

	spanReadArtifact := tracer.StartSpan("inject-read-artifact", opentracing.ChildOf(spanInject.Context()))
	artifactPath := snapshot.PathIn(commandConfig.DistDir)
	artifact, readErr := snapshot.Read(artifactPath)
	spanReadArtifact.Finish()
	if readErr != nil {
		rootLogger.Error("failed reading snapshot artifact", "path", artifactPath, "reason", readErr)
		spanInject.SetBaggageItem("error", readErr.Error())
		return 1
	}
	rootLogger.Info("snapshot artifact loaded", "path", artifactPath, "artifact-version", artifact.Version)

	localOverrides, overridesErr := commandConfig.MergedLocalOverrides()
	if overridesErr != nil {
		rootLogger.Error("failed merging deploy-time overrides", "reason", overridesErr)
		spanInject.SetBaggageItem("error", overridesErr.Error())
		return 1
	}

	spanResolve := tracer.StartSpan("inject-resolve-environment", opentracing.ChildOf(spanInject.Context()))
	resolution := envs.Resolve(artifact.BaseBuildTimeEnv, artifact.Env, localOverrides, envs.ProcessEnv())
	spanResolve.Finish()

	spanRender := tracer.StartSpan("inject-render", opentracing.ChildOf(spanResolve.Context()))
	_, final, renderErr := render.Render(artifact.HTMLPre, resolution.Merged)
	spanRender.Finish()
	if renderErr != nil {
		rootLogger.Error("failed rendering entry HTML", "reason", renderErr)
		spanInject.SetBaggageItem("error", renderErr.Error())
		return 1
	}

	target := commandConfig.OutputPath()
	if writeErr := os.WriteFile(target, []byte(final), 0644); writeErr != nil {
		rootLogger.Error("failed writing entry HTML", "path", target, "reason", writeErr)
		spanInject.SetBaggageItem("error", writeErr.Error())
		return 1
	}

	rootLogger.Info("entry HTML regenerated", "path", target, "variables", len(resolution.Merged))
	return 0
}
