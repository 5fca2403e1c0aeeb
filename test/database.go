package test

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

// TmpFile returns the path of a fresh SQLite database file in the test's
// temporary directory. The directory is removed when the test ends.
func TmpFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "spendwise-"+uuid.NewString()+".db")
}
