package filesystem

import (
	"os/user"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPathExists(t *testing.T) {
	dir := t.TempDir()
	require.True(t, PathExists(dir))
	require.False(t, PathExists(filepath.Join(dir, "missing")))
}

func TestExistOrCreate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, ExistOrCreate(dir))
	require.True(t, PathExists(dir))
	require.NoError(t, ExistOrCreate(dir))
}

func TestGetUserHomeDirectory(t *testing.T) {
	t.Setenv("HOME", "")
	usr, err := user.Current()
	require.NoError(t, err)
	require.Equal(t, usr.HomeDir, GetUserHomeDirectory())

	t.Setenv("HOME", "/home/factory")
	require.Equal(t, "/home/factory", GetUserHomeDirectory())
}

func TestGetCanonicalPath(t *testing.T) {
	t.Setenv("HOME", "/home/factory")
	t.Setenv("TXF_DIR", "/data")
	for _, tc := range []struct {
		path     string
		expected string
	}{
		{"", "."},
		{".", "."},
		{"txfactory", "txfactory"},
		{"txfactory/../test", "test"},
		{"txfactory/.././../test", "../test"},
		{"a/b/../c/d/..", "a/c"},
		{"~/txfactory/test/../config", "/home/factory/txfactory/config"},
		{"$TXF_DIR/extrinsics", "/data/extrinsics"},
		{"/txfactory/../test", "/test"},
	} {
		require.Equal(t, tc.expected, GetCanonicalPath(tc.path), tc.path)
	}
}

func TestLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", ".lock")
	fl, err := Lock(path)
	require.NoError(t, err)

	_, err = Lock(path)
	require.ErrorIs(t, err, ErrLocked)

	require.NoError(t, fl.Unlock())
	fl, err = Lock(path)
	require.NoError(t, err)
	require.NoError(t, fl.Unlock())
}
