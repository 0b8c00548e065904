package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjectMergedLocalOverridesOrder(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "one.env")
	second := filepath.Join(dir, "two.env")
	require.NoError(t, os.WriteFile(first, []byte("A=1\nB=1\nC=1\n"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("B=2\nC=2\n"), 0644))

	config := NewInjectCommandConfig()
	config.EnvFiles = []string{first, second}
	config.EnvVars = map[string]string{"C": "3"}

	merged, err := config.MergedLocalOverrides()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1", "B": "2", "C": "3"}, merged)
}

func TestInjectMergedLocalOverridesMissingFile(t *testing.T) {
	config := NewInjectCommandConfig()
	config.EnvFiles = []string{filepath.Join(t.TempDir(), "absent.env")}

	_, err := config.MergedLocalOverrides()
	require.Error(t, err)
}

func TestInjectValidate(t *testing.T) {
	config := NewInjectCommandConfig()
	assert.Error(t, config.Validate())

	config.DistDir = t.TempDir()
	assert.NoError(t, config.Validate())

	config.EnvFiles = []string{filepath.Join(config.DistDir, "nope.env")}
	assert.Error(t, config.Validate())
}

func TestInjectOutputPathDefault(t *testing.T) {
	config := NewInjectCommandConfig()
	config.DistDir = "/srv/dist"
	assert.Equal(t, filepath.Join("/srv/dist", "index.html"), config.OutputPath())

	config.Output = "/tmp/custom.html"
	assert.Equal(t, "/tmp/custom.html", config.OutputPath())
}

func TestUpdateTypesResolvedSourceDir(t *testing.T) {
	config := NewUpdateTypesCommandConfig()
	config.AppRootDir = "/srv/app"
	assert.Equal(t, filepath.Join("/srv/app", "src"), config.ResolvedSourceDir())

	config.SourceDir = "/srv/app/source"
	assert.Equal(t, "/srv/app/source", config.ResolvedSourceDir())
}
