package envs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/subosito/gotenv"
)

// Well-known environment file names looked up in the application root.
const (
	EnvFileName      = ".env"
	EnvLocalFileName = ".env.local"
)

// LoadEnvFile parses a single environment file in KEY=VALUE format.
// A file which does not exist yields an empty map and no error.
// A file which exists but does not parse is a configuration error.
func LoadEnvFile(path string) (map[string]string, error) {
	f, openErr := os.Open(path)
	if openErr != nil {
		if os.IsNotExist(openErr) {
			return map[string]string{}, nil
		}
		return nil, errors.Wrapf(openErr, "failed opening environment file '%s' for reading", path)
	}
	defer f.Close()
	parsed, parseErr := gotenv.StrictParse(f)
	if parseErr != nil {
		return nil, errors.Wrapf(parseErr, "failed parsing environment file '%s'", path)
	}
	env := map[string]string{}
	for k, v := range parsed {
		env[k] = v
	}
	return env, nil
}

// LoadAppEnvFiles loads the general and the local-override environment
// files from the application root directory.
func LoadAppEnvFiles(appRoot string) (fileEnv, fileEnvLocal map[string]string, err error) {
	fileEnv, err = LoadEnvFile(filepath.Join(appRoot, EnvFileName))
	if err != nil {
		return nil, nil, err
	}
	fileEnvLocal, err = LoadEnvFile(filepath.Join(appRoot, EnvLocalFileName))
	if err != nil {
		return nil, nil, err
	}
	return fileEnv, fileEnvLocal, nil
}

// ProcessEnv returns the current process environment as a map. Variables
// which are not set in the process simply do not appear in the result.
func ProcessEnv() map[string]string {
	env := map[string]string{}
	for _, entry := range os.Environ() {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		env[parts[0]] = parts[1]
	}
	return env
}
