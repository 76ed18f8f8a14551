// Package integration provides shared helpers for end-to-end store tests.
package integration

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/exiletools/stashvault/internal/store"
	"github.com/exiletools/stashvault/pkg/types"
)

// newOpenVault opens a vault in an isolated temp directory. Each test gets
// its own store file.
func newOpenVault(t *testing.T) (*store.Vault, string) {
	t.Helper()
	dir := t.TempDir()
	v, err := store.Open(types.Config{DataDir: dir}, quietLogger())
	require.NoError(t, err, "Open")
	t.Cleanup(func() { v.Close() })
	return v, dir
}

// reopenVault closes nothing; it opens a second handle on the same data
// directory, for persistence checks across process lifetimes.
func reopenVault(t *testing.T, dir string) *store.Vault {
	t.Helper()
	v, err := store.Open(types.Config{DataDir: dir}, quietLogger())
	require.NoError(t, err, "reopen")
	t.Cleanup(func() { v.Close() })
	return v
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
