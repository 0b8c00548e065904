package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteReplacesEnvAccesses(t *testing.T) {
	src := []byte(`const apiUrl = process.env.REACT_APP_API_URL;
const title = process.env.REACT_APP_TITLE || "fallback";`)

	out := Rewrite(src)

	assert.Equal(t, `const apiUrl = window._ENV_.REACT_APP_API_URL;
const title = window._ENV_.REACT_APP_TITLE || "fallback";`, string(out))
}

func TestRewriteLeavesUnrelatedTextUntouched(t *testing.T) {
	src := []byte(`// talks about process.environment in prose
const env = { process: { env: 1 } };
fetch("/process.env/docs");`)

	assert.Equal(t, src, Rewrite(src))
}

func TestRewriteBareAccessWithoutPropertyIsKept(t *testing.T) {
	src := []byte(`if (typeof process.env !== "undefined") {}`)
	assert.Equal(t, src, Rewrite(src))
}

func TestInScope(t *testing.T) {
	tests := []struct {
		name      string
		sourceDir string
		path      string
		expected  bool
	}{
		{"script under source dir", "/app/src", "/app/src/components/App.tsx", true},
		{"script at source dir root", "/app/src", "/app/src/index.js", true},
		{"uppercase extension", "/app/src", "/app/src/Legacy.JSX", true},
		{"outside source dir", "/app/src", "/app/node_modules/lib/index.js", false},
		{"source dir itself", "/app/src", "/app/src", false},
		{"sibling with src prefix", "/app/src", "/app/srcache/index.js", false},
		{"non-script file", "/app/src", "/app/src/logo.svg", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, InScope(tc.sourceDir, tc.path))
		})
	}
}
