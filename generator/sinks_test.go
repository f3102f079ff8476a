package generator

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-txfactory/database"
)

func TestFileSink(t *testing.T) {
	fs := afero.NewMemMapFs()
	sink, err := NewFileSink(fs, "/out/extrinsics.txt")
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Count = 7
	g := newTestGenerator(t, cfg, sink)
	_, err = g.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	buf, err := afero.ReadFile(fs, "/out/extrinsics.txt")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(buf), "\n"), "\n")
	require.Len(t, lines, 21)
	for _, line := range lines {
		raw, err := hex.DecodeString(line)
		require.NoError(t, err)
		decode(t, &database.Record{Raw: raw})
	}
}

func TestFileSinkTruncates(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "out.txt", []byte("stale\nlines\n"), 0o644))

	sink, err := NewFileSink(fs, "out.txt")
	require.NoError(t, err)
	require.NoError(t, sink.Write(context.Background(), []*database.Record{{Raw: []byte{1, 2}}, {Raw: []byte{0xff}}}))
	require.NoError(t, sink.Close())

	buf, err := afero.ReadFile(fs, "out.txt")
	require.NoError(t, err)
	require.Equal(t, "0102\nff\n", string(buf))
}

func TestFileSinkReadOnly(t *testing.T) {
	_, err := NewFileSink(afero.NewReadOnlyFs(afero.NewMemMapFs()), "out.txt")
	require.Error(t, err)
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	report := &Report{
		RunID:      "run",
		Started:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Duration:   time.Second,
		Workers:    2,
		Mode:       MasterToOne,
		Extrinsics: 4,
		Blocks:     2,
		Steps:      map[string]uint64{"nicks_set_name": 4},
	}
	require.NoError(t, WriteReport(path, report))
	// replaced as a whole
	require.NoError(t, WriteReport(path, report))

	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded Report
	require.NoError(t, json.Unmarshal(buf, &decoded))
	require.Equal(t, *report, decoded)

	require.Error(t, WriteReport(filepath.Join(t.TempDir(), "missing", "report.json"), report))
}
