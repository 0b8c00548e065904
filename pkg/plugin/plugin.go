// Package plugin is the build-tool integration surface. The host build
// tool drives one Plugin per build invocation: New runs once when the
// build configuration is resolved, TransformModule runs per compiled
// source file, and FinalizeHTML runs once per entry document.
package plugin

import (
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	"github.com/garronej/react-envs/pkg/envs"
	"github.com/garronej/react-envs/pkg/render"
	"github.com/garronej/react-envs/pkg/rewrite"
	"github.com/garronej/react-envs/pkg/snapshot"
	"github.com/garronej/react-envs/pkg/typings"
	"github.com/garronej/react-envs/pkg/version"
)

// UpdateTypesSignal is the process environment variable which, when set
// at configuration-resolved time, makes New refresh the type-declaration
// scaffolding and skip pipeline construction entirely.
const UpdateTypesSignal = "REACT_ENVS_UPDATE_TYPES"

// ErrTypesUpdated is returned by New when the typing-update signal is
// present. The declarations were written and no pipeline exists; the
// host process should exit cleanly.
var ErrTypesUpdated = errors.New("type declarations updated, no build pipeline constructed")

// ErrNotResolved reports a hook invoked on a plugin whose configuration
// was never resolved. This is an ordering bug in the host integration.
var ErrNotResolved = errors.New("build configuration not resolved")

// BuildConfig is the build-tool configuration handed to New.
type BuildConfig struct {
	// AppRootDir is the application root, where the environment files live.
	AppRootDir string
	// SourceDir is the project source directory; defaults to <AppRootDir>/src.
	SourceDir string
	// Mode is the invocation kind, ProductionBuild or DevServer.
	Mode Mode
	// BaseBuildTimeEnv holds the variables resolved by the build tool's
	// own configuration, the weakest precedence layer.
	BaseBuildTimeEnv map[string]string
}

// Option customizes plugin construction.
type Option func(*options)

type options struct {
	logger     hclog.Logger
	processEnv map[string]string
}

// WithLogger attaches a logger to the plugin.
func WithLogger(logger hclog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithProcessEnv overrides the process environment snapshot, used by the
// inject command and by tests.
func WithProcessEnv(env map[string]string) Option {
	return func(o *options) { o.processEnv = env }
}

// resolved is the read-only state shared by all hook invocations. It is
// built exactly once, in New, and never mutated afterwards, so concurrent
// per-file transforms need no locking.
type resolved struct {
	sourceDir  string
	mode       Mode
	resolution envs.Resolution
	fileEnv    map[string]string
	baseEnv    map[string]string
}

// Plugin is one build invocation's pipeline.
type Plugin struct {
	logger hclog.Logger
	state  *resolved
}

// New resolves the configuration and constructs the pipeline. This is
// the once-per-invocation configuration-resolved transition.
func New(cfg BuildConfig, opts ...Option) (*Plugin, error) {
	o := &options{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(o)
	}
	processEnv := o.processEnv
	if processEnv == nil {
		processEnv = envs.ProcessEnv()
	}

	if _, updateTypes := processEnv[UpdateTypesSignal]; updateTypes {
		sourceDir := cfg.SourceDir
		if sourceDir == "" {
			sourceDir = filepath.Join(cfg.AppRootDir, "src")
		}
		if err := typings.Update(sourceDir); err != nil {
			return nil, err
		}
		return nil, ErrTypesUpdated
	}

	if cfg.Mode == nil {
		return nil, errors.New("build mode is required")
	}

	fileEnv, fileEnvLocal, err := envs.LoadAppEnvFiles(cfg.AppRootDir)
	if err != nil {
		return nil, err
	}
	base := cfg.BaseBuildTimeEnv
	if base == nil {
		base = map[string]string{}
	}
	resolution := envs.Resolve(base, fileEnv, fileEnvLocal, processEnv)

	sourceDir := cfg.SourceDir
	if sourceDir == "" {
		sourceDir = filepath.Join(cfg.AppRootDir, "src")
	}

	o.logger.Debug("build configuration resolved",
		"accepted-variables", len(resolution.Accepted),
		"source-dir", sourceDir)

	return &Plugin{
		logger: o.logger,
		state: &resolved{
			sourceDir:  sourceDir,
			mode:       cfg.Mode,
			resolution: resolution,
			fileEnv:    fileEnv,
			baseEnv:    base,
		},
	}, nil
}

// Env returns a copy of the merged environment view.
func (p *Plugin) Env() map[string]string {
	if p == nil || p.state == nil {
		return map[string]string{}
	}
	env := map[string]string{}
	for k, v := range p.state.resolution.Merged {
		env[k] = v
	}
	return env
}

// TransformModule rewrites build-time environment accesses in one source
// file. Files outside the source directory, and non-script files, are
// returned unmodified. Safe for concurrent invocations across files.
func (p *Plugin) TransformModule(path string, src []byte) ([]byte, error) {
	if p == nil || p.state == nil {
		return nil, ErrNotResolved
	}
	if !rewrite.InScope(p.state.sourceDir, path) {
		return src, nil
	}
	return rewrite.Rewrite(src), nil
}

// FinalizeHTML templates the entry document against the merged
// environment, injects the runtime global script and, for production
// builds, persists the snapshot artifact beside the build output. The
// artifact captures the templated HTML from before injection.
func (p *Plugin) FinalizeHTML(rawHTML string) (string, error) {
	if p == nil || p.state == nil {
		return "", ErrNotResolved
	}

	pre, final, err := render.Render(rawHTML, p.state.resolution.Merged)
	if err != nil {
		return "", err
	}

	build, isProduction := p.state.mode.(ProductionBuild)
	if !isProduction {
		return final, nil
	}

	artifact := &snapshot.Artifact{
		Version:          version.Version,
		AssetsURLPath:    build.AssetsURLPath,
		HTMLPre:          pre,
		Env:              p.state.fileEnv,
		BaseBuildTimeEnv: p.state.baseEnv,
	}
	if err := snapshot.Write(build.DistDirPath, artifact); err != nil {
		return "", err
	}
	p.logger.Debug("snapshot artifact written", "path", snapshot.PathIn(build.DistDirPath))
	return final, nil
}
