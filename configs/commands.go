package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/subosito/gotenv"
)

// InjectCommandConfig is the inject command configuration.
type InjectCommandConfig struct {
	flagBase
	ValidatingConfig

	DistDir  string
	EnvFiles []string
	EnvVars  map[string]string
	Output   string
}

// NewInjectCommandConfig returns new command configuration.
func NewInjectCommandConfig() *InjectCommandConfig {
	return &InjectCommandConfig{}
}

// FlagSet returns an instance of the flag set for the configuration.
func (c *InjectCommandConfig) FlagSet() *pflag.FlagSet {
	if c.initFlagSet() {
		c.flagSet.StringVar(&c.DistDir, "dist-dir", "", "Build output directory containing the snapshot artifact")
		c.flagSet.StringArrayVar(&c.EnvFiles, "env-file", []string{}, "Full path to an environment file to overlay at deploy time, multiple OK")
		c.flagSet.StringToStringVar(&c.EnvVars, "env", map[string]string{}, "Additional environment variables to overlay at deploy time, multiple OK")
		c.flagSet.StringVar(&c.Output, "output", "", "Target HTML file; defaults to <dist-dir>/index.html")
	}
	return c.flagSet
}

// MergedLocalOverrides returns the merged deploy-time overrides declared
// by the configuration. The order of merging:
//   - parse each env file in order provided
//   - apply all individual --env values
//
// Duplicated values are always overridden.
func (c *InjectCommandConfig) MergedLocalOverrides() (map[string]string, error) {
	env := map[string]string{}
	for _, envFile := range c.EnvFiles {
		f, openErr := os.Open(envFile)
		if openErr != nil {
			return env, errors.Wrapf(openErr, "failed opening environment file '%s' for reading", envFile)
		}
		partialEnv, parseErr := gotenv.StrictParse(f)
		f.Close()
		if parseErr != nil {
			return env, errors.Wrapf(parseErr, "failed parsing environment file '%s'", envFile)
		}
		for k, v := range partialEnv {
			env[k] = v
		}
	}
	for k, v := range c.EnvVars {
		env[k] = v
	}
	return env, nil
}

// OutputPath returns the target HTML path.
func (c *InjectCommandConfig) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}
	return filepath.Join(c.DistDir, "index.html")
}

// Validate validates the correctness of the configuration.
func (c *InjectCommandConfig) Validate() error {
	if c.DistDir == "" {
		return fmt.Errorf("--dist-dir can't be empty")
	}
	for _, envFile := range c.EnvFiles {
		stat, statErr := os.Stat(envFile)
		if statErr != nil {
			return errors.Wrapf(statErr, "environment file '%s' stat error", envFile)
		}
		if !stat.Mode().IsRegular() {
			return fmt.Errorf("environment file '%s' is not a regular file", envFile)
		}
	}
	return nil
}

// InspectCommandConfig is the inspect command configuration.
type InspectCommandConfig struct {
	flagBase
	ValidatingConfig

	DistDir string
	AsJSON  bool
}

// NewInspectCommandConfig returns new command configuration.
func NewInspectCommandConfig() *InspectCommandConfig {
	return &InspectCommandConfig{}
}

// FlagSet returns an instance of the flag set for the configuration.
func (c *InspectCommandConfig) FlagSet() *pflag.FlagSet {
	if c.initFlagSet() {
		c.flagSet.StringVar(&c.DistDir, "dist-dir", "", "Build output directory containing the snapshot artifact")
		c.flagSet.BoolVar(&c.AsJSON, "json", false, "Print the artifact metadata as JSON")
	}
	return c.flagSet
}

// Validate validates the correctness of the configuration.
func (c *InspectCommandConfig) Validate() error {
	if c.DistDir == "" {
		return fmt.Errorf("--dist-dir can't be empty")
	}
	return nil
}

// UpdateTypesCommandConfig is the update-types command configuration.
type UpdateTypesCommandConfig struct {
	flagBase
	ValidatingConfig

	AppRootDir string
	SourceDir  string
}

// NewUpdateTypesCommandConfig returns new command configuration.
func NewUpdateTypesCommandConfig() *UpdateTypesCommandConfig {
	return &UpdateTypesCommandConfig{}
}

// FlagSet returns an instance of the flag set for the configuration.
func (c *UpdateTypesCommandConfig) FlagSet() *pflag.FlagSet {
	if c.initFlagSet() {
		c.flagSet.StringVar(&c.AppRootDir, "app-root", ".", "Application root directory")
		c.flagSet.StringVar(&c.SourceDir, "source-dir", "", "Project source directory; defaults to <app-root>/src")
	}
	return c.flagSet
}

// ResolvedSourceDir returns the source directory to maintain.
func (c *UpdateTypesCommandConfig) ResolvedSourceDir() string {
	if c.SourceDir != "" {
		return c.SourceDir
	}
	return filepath.Join(c.AppRootDir, "src")
}

// Validate validates the correctness of the configuration.
func (c *UpdateTypesCommandConfig) Validate() error {
	if c.AppRootDir == "" {
		return fmt.Errorf("--app-root can't be empty")
	}
	return nil
}
