// Package render turns the templated entry HTML of an application into
// its final, environment-carrying form. Rendering happens in two phases:
// directive substitution over the raw HTML text, then injection of the
// runtime global script into the parsed document. The same two phases run
// at build time and again at deploy time against the snapshot artifact.
package render

import "regexp"

// directivePattern matches %NAME% directives in the entry HTML.
var directivePattern = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_]*)%`)

// Template substitutes %NAME% directives with values from env. A
// directive whose name is not a key of env is left untouched, so the host
// build tool's own templating syntax and literal percent signs pass
// through unchanged. Pure: identical (html, env) inputs always yield
// identical output.
func Template(html string, env map[string]string) string {
	return directivePattern.ReplaceAllStringFunc(html, func(directive string) string {
		name := directive[1 : len(directive)-1]
		if value, ok := env[name]; ok {
			return value
		}
		return directive
	})
}
