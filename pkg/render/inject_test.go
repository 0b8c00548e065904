package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocument = `<!DOCTYPE html><html><head><meta charset="utf-8"><title>app</title></head><body><script src="/assets/index.js"></script></body></html>`

func TestInjectRuntimeGlobalAddsSingleScript(t *testing.T) {
	out, err := InjectRuntimeGlobal(testDocument, map[string]string{"API_URL": "https://a"})
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, `window._ENV_ = `))
	assert.Contains(t, out, `window._ENV_ = {"API_URL":"https://a"};`)
}

func TestInjectRuntimeGlobalRunsBeforeBundleScripts(t *testing.T) {
	out, err := InjectRuntimeGlobal(testDocument, map[string]string{"A": "1"})
	require.NoError(t, err)

	injectedAt := strings.Index(out, "window._ENV_")
	bundleAt := strings.Index(out, `src="/assets/index.js"`)
	require.NotEqual(t, -1, injectedAt)
	require.NotEqual(t, -1, bundleAt)
	assert.Less(t, injectedAt, bundleAt)

	// The injected script leads every existing head child.
	headAt := strings.Index(out, "<head>")
	metaAt := strings.Index(out, "<meta")
	assert.Less(t, headAt, injectedAt)
	assert.Less(t, injectedAt, metaAt)
}

func TestInjectRuntimeGlobalKeepsExistingNodes(t *testing.T) {
	out, err := InjectRuntimeGlobal(testDocument, map[string]string{"A": "1"})
	require.NoError(t, err)

	assert.Contains(t, out, `<meta charset="utf-8"`)
	assert.Contains(t, out, `<title>app</title>`)
	assert.Contains(t, out, `<script src="/assets/index.js"></script>`)
}

func TestInjectRuntimeGlobalEscapesScriptTerminators(t *testing.T) {
	out, err := InjectRuntimeGlobal(testDocument, map[string]string{
		"EVIL": `</script><script>alert(1)</script>`,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "window._ENV_"))
	assert.NotContains(t, out, `window._ENV_ = {"EVIL":"</script>`)
	assert.Contains(t, out, `</script>`)
}

func TestInjectRuntimeGlobalEmptyEnv(t *testing.T) {
	out, err := InjectRuntimeGlobal(testDocument, nil)
	require.NoError(t, err)
	assert.Contains(t, out, `window._ENV_ = {};`)
}

func TestInjectRuntimeGlobalIsDeterministic(t *testing.T) {
	env := map[string]string{"B": "2", "A": "1", "C": "3"}
	first, err := InjectRuntimeGlobal(testDocument, env)
	require.NoError(t, err)
	second, err := InjectRuntimeGlobal(testDocument, env)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	// Keys serialize in sorted order regardless of map iteration.
	assert.Contains(t, first, `{"A":"1","B":"2","C":"3"}`)
}

func TestRenderTemplatesBeforeInjecting(t *testing.T) {
	env := map[string]string{"REACT_APP_TITLE": "Hello"}
	doc := `<!DOCTYPE html><html><head><title>%REACT_APP_TITLE%</title></head><body></body></html>`

	pre, final, err := Render(doc, env)
	require.NoError(t, err)

	assert.Contains(t, pre, "<title>Hello</title>")
	assert.NotContains(t, pre, "window._ENV_")
	assert.Contains(t, final, "<title>Hello</title>")
	assert.Contains(t, final, `window._ENV_ = {"REACT_APP_TITLE":"Hello"};`)
}

func TestRenderRoundTripIsByteIdentical(t *testing.T) {
	env := map[string]string{"REACT_APP_API": "https://a", "BASE_URL": "/"}
	doc := `<!DOCTYPE html><html><head><title>%REACT_APP_API%</title></head><body><script src="/b.js"></script></body></html>`

	pre, final, err := Render(doc, env)
	require.NoError(t, err)

	// Re-rendering the persisted pre-injection HTML with the same env
	// must reproduce the original final output byte for byte.
	replayed, err := InjectRuntimeGlobal(Template(pre, env), env)
	require.NoError(t, err)
	assert.Equal(t, final, replayed)
}
