package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spacemeshos/go-txfactory/codec"
	"github.com/spacemeshos/go-txfactory/config"
	"github.com/spacemeshos/go-txfactory/database"
	"github.com/spacemeshos/go-txfactory/extrinsic"
	"github.com/spacemeshos/go-txfactory/filesystem"
	"github.com/spacemeshos/go-txfactory/generator"
	"github.com/spacemeshos/go-txfactory/inherents"
	"github.com/spacemeshos/go-txfactory/log"
	"github.com/spacemeshos/go-txfactory/signing"
)

func execute(tb testing.TB, args ...string) (string, error) {
	tb.Helper()
	var out bytes.Buffer
	root := newRootCommand(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

func quiet(dir string) []string {
	return []string{"-d", dir, "--log-level", "error"}
}

func TestAccount(t *testing.T) {
	out, err := execute(t, "account", "--seed", "7")
	require.NoError(t, err)
	require.Equal(t, signing.DeriveAccountID(7).String()+"\n", out)
}

func TestInherents(t *testing.T) {
	out, err := execute(t, "inherents", "--block", "9", "--minimum-period", "500")
	require.NoError(t, err)

	data, err := inherents.Build(9, 500)
	require.NoError(t, err)
	require.Equal(t, hex.EncodeToString(codec.MustEncode(data))+"\n", out)
}

func TestGenerateAndVerify(t *testing.T) {
	dir := t.TempDir()
	args := append(quiet(dir), "--workers", "2", "--count", "6", "--txs-per-block", "4", "--step", "staking_bond")
	out, err := execute(t, append([]string{"generate"}, args...)...)
	require.NoError(t, err)
	require.Contains(t, out, "12 extrinsics in 4 blocks")
	require.Contains(t, out, "staking_bond")

	buf, err := os.ReadFile(filepath.Join(dir, "report.json"))
	require.NoError(t, err)
	var report generator.Report
	require.NoError(t, json.Unmarshal(buf, &report))
	require.EqualValues(t, 12, report.Extrinsics)
	require.NotEmpty(t, report.RunID)

	out, err = execute(t, append([]string{"verify"}, quiet(dir)...)...)
	require.NoError(t, err)
	require.Equal(t, "verified 12 extrinsics, 0 invalid\n", out)

	// signatures don't match another chain
	out, err = execute(t, append([]string{"verify", "--spec-version", "9"}, quiet(dir)...)...)
	require.Error(t, err)
	require.Contains(t, out, "verified 12 extrinsics, 12 invalid")
}

func TestVerifyDetectsTampering(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, append([]string{"generate", "--count", "3"}, quiet(dir)...)...)
	require.NoError(t, err)

	conf := config.DefaultConfig()
	conf.DataDirParent = dir
	db, err := database.NewLDBDatabase(conf.StorePath(), 0, 0, zaptest.NewLogger(t))
	require.NoError(t, err)
	store := database.NewStore(db)
	rec, err := store.Get(0, 1)
	require.NoError(t, err)
	rec.Raw[len(rec.Raw)-1] ^= 1
	require.NoError(t, store.Add(rec))
	require.NoError(t, store.Close())

	out, err := execute(t, append([]string{"verify"}, quiet(dir)...)...)
	require.Error(t, err)
	require.Contains(t, out, "verified 3 extrinsics, 1 invalid")
}

func TestGenerateFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "out.txt")
	_, err := execute(t, append([]string{
		"generate", "--output", "file", "--output-file", out, "--count", "5", "--mode", "master-to-1",
	}, quiet(dir)...)...)
	require.NoError(t, err)

	buf, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Fields(string(buf))
	require.Len(t, lines, 5)
	for i, line := range lines {
		raw, err := hex.DecodeString(line)
		require.NoError(t, err)
		var ue extrinsic.UncheckedExtrinsic
		require.NoError(t, codec.Decode(raw, &ue))
		require.EqualValues(t, i, ue.Signature.Extra.Nonce)
	}
}

func TestGenerateLocked(t *testing.T) {
	dir := t.TempDir()
	conf := config.DefaultConfig()
	conf.DataDirParent = dir
	fl, err := filesystem.Lock(conf.LockPath())
	require.NoError(t, err)
	defer fl.Unlock()

	_, err = execute(t, append([]string{"generate"}, quiet(dir)...)...)
	var fe *log.FatalError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, log.ErrLockDataDir(nil).Code, fe.Code)
}

func TestGenerateBadStep(t *testing.T) {
	_, err := execute(t, append([]string{"generate", "--step", "made_up_step"}, quiet(t.TempDir())...)...)
	require.ErrorContains(t, err, "unsupported step")
}
