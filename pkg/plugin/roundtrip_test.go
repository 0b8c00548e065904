package plugin

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garronej/react-envs/pkg/envs"
	"github.com/garronej/react-envs/pkg/render"
	"github.com/garronej/react-envs/pkg/snapshot"
)

// Exercises the full lifecycle: a production build writes the artifact,
// then a later pass regenerates the HTML from the artifact alone.
func TestArtifactReTemplating(t *testing.T) {
	appRoot := writeAppRoot(t, "REACT_APP_API=https://build-time\n", "")
	distDir := filepath.Join(t.TempDir(), "dist")

	p, err := New(BuildConfig{
		AppRootDir:       appRoot,
		Mode:             ProductionBuild{DistDirPath: distDir, AssetsURLPath: "/"},
		BaseBuildTimeEnv: map[string]string{"BASE_URL": "/"},
	}, WithProcessEnv(map[string]string{}))
	require.NoError(t, err)

	buildFinal, err := p.FinalizeHTML(`<!DOCTYPE html><html><head><title>%REACT_APP_TITLE%</title></head><body></body></html>`)
	require.NoError(t, err)
	assert.Contains(t, buildFinal, `"REACT_APP_API":"https://build-time"`)

	artifact, err := snapshot.Read(snapshot.PathIn(distDir))
	require.NoError(t, err)

	// Same environment reproduces the build output byte for byte.
	sameResolution := envs.Resolve(artifact.BaseBuildTimeEnv, artifact.Env, map[string]string{}, map[string]string{})
	_, replayed, err := render.Render(artifact.HTMLPre, sameResolution.Merged)
	require.NoError(t, err)
	assert.Equal(t, buildFinal, replayed)

	// A deployment environment changes only what it declares.
	deployResolution := envs.Resolve(artifact.BaseBuildTimeEnv, artifact.Env, map[string]string{},
		map[string]string{"REACT_APP_API": "https://deploy-time", "PATH": "/usr/bin"})
	_, redeployed, err := render.Render(artifact.HTMLPre, deployResolution.Merged)
	require.NoError(t, err)
	assert.Contains(t, redeployed, `"REACT_APP_API":"https://deploy-time"`)
	assert.NotContains(t, redeployed, "PATH")
}
