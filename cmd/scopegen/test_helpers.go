// test_helpers.go
package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// Shared fixtures
// -----------------------------------------------------------------------------

// treeSpecJSON returns a two-level tree spec that exercises all three
// strategies: builder-backed cfg, self-constructed logging module, and a
// factory-supplied session in the child, which also uses the root's cfg.
func treeSpecJSON() []byte {
	return []byte(`{
  "package": "wiring",
  "root": {
    "name": "AppComponent",
    "requirements": [
      { "id": "cfg", "kind": "dependency", "type": "*Config" },
      { "id": "logging", "kind": "module", "type": "LoggingModule", "var": "loggingModule" }
    ],
    "builder": [ { "requirement": "cfg", "member": "config" } ],
    "children": [
      {
        "name": "SessionComponent",
        "requirements": [
          { "id": "session", "kind": "dependency", "type": "*Session" }
        ],
        "factory": [ { "requirement": "session" } ],
        "uses": [ "cfg" ]
      }
    ]
  }
}`)
}

//
// -----------------------------------------------------------------------------
// Small helpers
// -----------------------------------------------------------------------------

// writeTempFile writes a file under dir/name and returns its full path.
func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// readFileString reads a file and returns its contents as string (fatal on error).
func readFileString(t *testing.T, p string) string {
	t.Helper()
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	return string(b)
}

//
// -----------------------------------------------------------------------------
// writeFileAtomic() seam helpers
// -----------------------------------------------------------------------------

// fakeTempFile is a controllable file-like object for writeFileAtomic tests.
// It lets tests force errors on Write and Close without touching real files.
type fakeTempFile struct {
	fileName string
	writeErr error
	closeErr error
}

func (f *fakeTempFile) Name() string { return f.fileName }

func (f *fakeTempFile) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return len(p), nil
}

func (f *fakeTempFile) Close() error { return f.closeErr }

// restoreWriteSeams re-installs the real file seams after a test overrode them.
func restoreWriteSeams(t *testing.T) {
	t.Helper()

	origCreate, origRemove, origChmod, origRename := createTempFile, removeFile, chmodFile, renameFile
	t.Cleanup(func() {
		createTempFile = origCreate
		removeFile = origRemove
		chmodFile = origChmod
		renameFile = origRename
	})
}
