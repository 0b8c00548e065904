// Package tracing wires the CLI commands to an opentracing tracer so that
// deploy pipelines can observe the re-templating pass alongside their
// other build steps.
package tracing

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/uber/jaeger-client-go"

	"github.com/garronej/react-envs/configs"
)

type logAdapter struct {
	log hclog.Logger
}

func (l logAdapter) Error(msg string) {
	l.log.Error(msg)
}

func (l logAdapter) Infof(msg string, args ...interface{}) {
	l.log.Info(fmt.Sprintf(msg, args...))
}

// GetTracer returns a configured Jaeger reporter or a null reporter if
// tracing is disabled.
func GetTracer(logger hclog.Logger, config *configs.TracingConfig) (opentracing.Tracer, func(), error) {
	if !config.Enable {
		reporter := jaeger.NewNullReporter()
		tracer, closer := jaeger.NewTracer(config.ApplicationName,
			jaeger.NewConstSampler(true),
			reporter,
		)
		return tracer, func() {
			reporter.Close()
			closer.Close()
		}, nil
	}

	transport, err := jaeger.NewUDPTransport(config.HostPort, 0)
	if err != nil {
		return nil, func() {}, errors.Wrap(err, "failed constructing jaeger UDP transport")
	}
	adapter := &logAdapter{log: logger}

	reporters := []jaeger.Reporter{}
	remoteReporterOptions := []jaeger.ReporterOption{}

	if config.LogEnable {
		reporters = append(reporters, jaeger.NewLoggingReporter(adapter))
		remoteReporterOptions = append(remoteReporterOptions, jaeger.ReporterOptions.Logger(adapter))
	}

	reporters = append(reporters, jaeger.NewRemoteReporter(transport, remoteReporterOptions...))

	reporter := jaeger.NewCompositeReporter(reporters...)
	tracer, closer := jaeger.NewTracer(config.ApplicationName,
		jaeger.NewConstSampler(true),
		reporter,
	)
	return tracer, func() {
		reporter.Close()
		closer.Close()
	}, nil
}
