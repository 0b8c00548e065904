// Package snapshot persists the build-time state needed to re-template an
// already built bundle with a different environment. The artifact is
// written beside the build output and consumed later by the inject
// command, which re-runs templating and injection against the recorded
// pre-injection HTML.
package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/garronej/react-envs/pkg/flock"
)

// FileName is the well-known artifact name inside the build output directory.
const FileName = "react-envs.json"

// lockFileName guards concurrent writes when several entry documents
// target the same output directory. Last writer still wins.
const lockFileName = FileName + ".lock"

// Artifact is the persisted build-time snapshot.
type Artifact struct {
	Version          string            `json:"version" mapstructure:"version"`
	AssetsURLPath    string            `json:"assetsUrlPath" mapstructure:"assetsUrlPath"`
	HTMLPre          string            `json:"htmlPre" mapstructure:"htmlPre"`
	Env              map[string]string `json:"env" mapstructure:"env"`
	BaseBuildTimeEnv map[string]string `json:"baseBuildTimeEnv" mapstructure:"baseBuildTimeEnv"`
}

// FromInterface unwraps an interface{} as *Artifact.
func FromInterface(input interface{}) (*Artifact, error) {
	artifact := &Artifact{}
	if err := mapstructure.Decode(input, artifact); err != nil {
		return nil, errors.Wrap(err, "failed decoding snapshot artifact")
	}
	return artifact, nil
}

// PathIn returns the artifact path inside the given output directory.
func PathIn(distDir string) string {
	return filepath.Join(distDir, FileName)
}

// Write persists the artifact inside the output directory, creating the
// directory if absent. Any failure is fatal for the build.
func Write(distDir string, artifact *Artifact) error {
	if err := os.MkdirAll(distDir, 0755); err != nil {
		return errors.Wrapf(err, "failed creating build output directory '%s'", distDir)
	}

	lock := flock.New(filepath.Join(distDir, lockFileName))
	if err := lock.Acquire(); err != nil {
		return errors.Wrap(err, "failed acquiring snapshot artifact lock")
	}
	defer lock.Release()

	payload, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed serializing snapshot artifact")
	}
	target := PathIn(distDir)
	if err := os.WriteFile(target, payload, 0644); err != nil {
		return errors.Wrapf(err, "failed writing snapshot artifact '%s'", target)
	}
	return nil
}

// Read loads an artifact from the given path.
func Read(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed opening snapshot artifact '%s'", path)
	}
	defer f.Close()
	raw := map[string]interface{}{}
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return nil, errors.Wrapf(err, "failed decoding snapshot artifact '%s'", path)
	}
	return FromInterface(raw)
}
