// Package rewrite replaces build-time environment accesses in bundled
// source code with references to the runtime global defined by the
// injected script, so the compiled bundle reads whatever environment the
// page was configured with instead of compile-time constants.
package rewrite

import (
	"path/filepath"
	"regexp"
	"strings"
)

// RuntimeGlobalName is the identifier the rewritten code resolves
// against. It is defined on window by the injected runtime script.
const RuntimeGlobalName = "window._ENV_"

// accessPattern matches `process.env.<identifier>` accesses.
var accessPattern = regexp.MustCompile(`process\.env\.([A-Za-z_$][A-Za-z0-9_$]*)`)

// scriptExtensions lists the file extensions eligible for rewriting.
var scriptExtensions = map[string]struct{}{
	".js":  {},
	".jsx": {},
	".ts":  {},
	".tsx": {},
	".mjs": {},
	".cjs": {},
}

// InScope reports whether a file is eligible for rewriting: it must live
// under the project source directory and carry a script extension.
func InScope(sourceDir, path string) bool {
	rel, err := filepath.Rel(sourceDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	_, ok := scriptExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Rewrite replaces every environment access with a reference to the
// runtime global. The rest of the source text is left byte-identical.
func Rewrite(src []byte) []byte {
	return accessPattern.ReplaceAll(src, []byte(RuntimeGlobalName+".$1"))
}
