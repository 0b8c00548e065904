// Package typings maintains the TypeScript declaration scaffolding for
// the runtime environment global. The declarations are static: they do
// not depend on any resolved environment, only on the shape of the
// injected global.
package typings

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// FileName is the declaration file maintained inside the source directory.
const FileName = "env.d.ts"

const (
	blockStart = "// --- react-envs managed block, do not edit ---"
	blockEnd   = "// --- end react-envs managed block ---"
)

const declarations = blockStart + `
declare interface Window {
    "_ENV_": Record<string, string>;
}
declare const _ENV_: Record<string, string>;
` + blockEnd + "\n"

// Update writes the declaration scaffolding into <sourceDir>/env.d.ts.
// A pre-existing file keeps every declaration outside the managed block;
// only the fenced block is created or replaced.
func Update(sourceDir string) error {
	path := filepath.Join(sourceDir, FileName)

	existing, readErr := os.ReadFile(path)
	if readErr != nil && !os.IsNotExist(readErr) {
		return errors.Wrapf(readErr, "failed reading declaration file '%s'", path)
	}

	content := merge(string(existing), declarations)
	if err := os.MkdirAll(sourceDir, 0755); err != nil {
		return errors.Wrapf(err, "failed creating source directory '%s'", sourceDir)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, "failed writing declaration file '%s'", path)
	}
	return nil
}

func merge(existing, block string) string {
	if existing == "" {
		return block
	}
	startAt := strings.Index(existing, blockStart)
	endAt := strings.Index(existing, blockEnd)
	if startAt == -1 || endAt == -1 || endAt < startAt {
		// No managed block yet, append one after the foreign declarations.
		if !strings.HasSuffix(existing, "\n") {
			existing += "\n"
		}
		return existing + "\n" + block
	}
	tail := existing[endAt+len(blockEnd):]
	tail = strings.TrimPrefix(tail, "\n")
	return existing[:startAt] + block + tail
}
