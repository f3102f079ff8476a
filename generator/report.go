package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/natefinch/atomic"
)

// Report summarizes a run.
type Report struct {
	RunID      string            `json:"run_id"`
	Started    time.Time         `json:"started"`
	Duration   time.Duration     `json:"duration"`
	Workers    int               `json:"workers"`
	Mode       Mode              `json:"mode"`
	Extrinsics uint64            `json:"extrinsics"`
	Blocks     uint64            `json:"blocks"`
	Steps      map[string]uint64 `json:"steps"`
}

// WriteReport writes the report as json to path. The file is replaced
// atomically, readers never observe a partial report.
func WriteReport(path string, report *Report) error {
	buf, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(buf)); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
