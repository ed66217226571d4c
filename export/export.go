// Package export writes evaluation records out for external consumers:
// a CSV with one row per evaluated file, and a JSON run bundle in a
// per-run output directory.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/rs/xid"
)

// NamedRecord is one flat metric record tagged with the file identifier it
// was computed for.
type NamedRecord struct {
	File   string         `json:"file"`
	Record map[string]any `json:"metrics"`
}

// ToCSV writes records as CSV. Columns are "file" followed by the sorted
// union of metric keys across all records; a record missing a key gets a
// blank cell. Floats are rounded to precision decimals. With appendFile
// set, rows are appended to an existing file and the header is only
// written when the file does not exist yet.
func ToCSV(path string, records []NamedRecord, precision int, appendFile bool) error {
	keySet := map[string]bool{}
	for _, r := range records {
		for k := range r.Record {
			keySet[k] = true
		}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	writeHeader := true
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if appendFile {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
		if _, err := os.Stat(path); err == nil {
			writeHeader = false
		}
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(append([]string{"file"}, keys...)); err != nil {
			return err
		}
	}
	for _, r := range records {
		row := make([]string, 0, len(keys)+1)
		row = append(row, r.File)
		for _, k := range keys {
			v, ok := r.Record[k]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, formatValue(v, precision))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatValue(v any, precision int) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(round(x, precision), 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func round(v float64, precision int) float64 {
	p := math.Pow10(precision)
	return math.Round(v*p) / p
}

// RunBundle is the JSON artifact of one batch run.
type RunBundle struct {
	RunID       string         `json:"run_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Results     []NamedRecord  `json:"results"`
	Summary     map[string]any `json:"summary,omitempty"`
}

// NewRunDir creates a fresh output directory under root, named by a
// collision-free run id, and returns both.
func NewRunDir(root string) (runID, dir string, err error) {
	runID = "run_" + xid.New().String()
	dir = filepath.Join(root, runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}
	return runID, dir, nil
}

// WriteJSON writes v as indented JSON.
func WriteJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
