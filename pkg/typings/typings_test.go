package typings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCreatesDeclarationFile(t *testing.T) {
	sourceDir := filepath.Join(t.TempDir(), "src")

	require.NoError(t, Update(sourceDir))

	content, err := os.ReadFile(filepath.Join(sourceDir, FileName))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"_ENV_": Record<string, string>`)
	assert.Contains(t, string(content), blockStart)
	assert.Contains(t, string(content), blockEnd)
}

func TestUpdatePreservesForeignDeclarations(t *testing.T) {
	sourceDir := t.TempDir()
	path := filepath.Join(sourceDir, FileName)
	foreign := "/// <reference types=\"react-scripts\" />\ndeclare module \"*.svg\";\n"
	require.NoError(t, os.WriteFile(path, []byte(foreign), 0644))

	require.NoError(t, Update(sourceDir))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), foreign))
	assert.Contains(t, string(content), blockStart)
}

func TestUpdateIsIdempotent(t *testing.T) {
	sourceDir := t.TempDir()
	path := filepath.Join(sourceDir, FileName)
	foreign := "declare module \"*.png\";\n"
	require.NoError(t, os.WriteFile(path, []byte(foreign), 0644))

	require.NoError(t, Update(sourceDir))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, Update(sourceDir))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Equal(t, 1, strings.Count(string(second), blockStart))
}

func TestUpdateContentIsEnvironmentIndependent(t *testing.T) {
	t.Setenv("REACT_APP_SOMETHING", "value")

	dirA := filepath.Join(t.TempDir(), "a")
	require.NoError(t, Update(dirA))
	a, err := os.ReadFile(filepath.Join(dirA, FileName))
	require.NoError(t, err)

	assert.NotContains(t, string(a), "REACT_APP_SOMETHING")
}
