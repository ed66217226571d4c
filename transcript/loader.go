package transcript

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// CSVColumns names the columns a CSV transcript is read from. Timestamp
// columns are optional; leave them empty to skip timing.
type CSVColumns struct {
	Speaker string
	Text    string
	Start   string
	End     string
}

// DefaultCSVColumns matches the export format of most diarization tools.
var DefaultCSVColumns = CSVColumns{Speaker: "speaker", Text: "text", Start: "start_time", End: "end_time"}

// Load reads a transcript file, picking the parser from the file suffix
// (.json, .csv, .txt, .srt). The result is validated.
func Load(path string) (Transcript, error) {
	var (
		t   Transcript
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		t, err = LoadJSON(path)
	case ".csv":
		t, err = LoadCSV(path, DefaultCSVColumns)
	case ".txt":
		t, err = LoadText(path, "Speaker")
	case ".srt":
		t, err = LoadSRT(path)
	default:
		return nil, fmt.Errorf("unsupported transcript format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// LoadJSON reads a JSON array of utterance objects.
func LoadJSON(path string) (Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var t Transcript
	if err := json.NewDecoder(f).Decode(&t); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", path, err)
	}
	return t, nil
}

// LoadCSV reads a headered CSV file using the given column names.
func LoadCSV(path string, cols CSVColumns) (Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(rows) == 0 {
		return Transcript{}, nil
	}

	idx := map[string]int{}
	for i, name := range rows[0] {
		idx[name] = i
	}
	spk, ok := idx[cols.Speaker]
	if !ok {
		return nil, fmt.Errorf("%s: missing column %q", path, cols.Speaker)
	}
	txt, ok := idx[cols.Text]
	if !ok {
		return nil, fmt.Errorf("%s: missing column %q", path, cols.Text)
	}

	var t Transcript
	for _, row := range rows[1:] {
		u := Utterance{Speaker: row[spk], Text: row[txt]}
		if i, ok := idx[cols.Start]; ok && cols.Start != "" && row[i] != "" {
			v, err := strconv.ParseFloat(row[i], 64)
			if err != nil {
				return nil, fmt.Errorf("%s: bad %s %q: %w", path, cols.Start, row[i], err)
			}
			u.Start = &v
		}
		if i, ok := idx[cols.End]; ok && cols.End != "" && row[i] != "" {
			v, err := strconv.ParseFloat(row[i], 64)
			if err != nil {
				return nil, fmt.Errorf("%s: bad %s %q: %w", path, cols.End, row[i], err)
			}
			u.End = &v
		}
		t = append(t, u)
	}
	return t, nil
}

// LoadText reads one utterance per line, "Speaker: text". Lines without a
// colon get a synthetic per-line speaker built from defaultSpeaker.
func LoadText(path, defaultSpeaker string) (Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var t Transcript
	for n, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if i := strings.Index(line, ":"); i >= 0 {
			t = append(t, Utterance{
				Speaker: strings.TrimSpace(line[:i]),
				Text:    strings.TrimSpace(line[i+1:]),
			})
			continue
		}
		t = append(t, Utterance{Speaker: fmt.Sprintf("%s_%d", defaultSpeaker, n+1), Text: line})
	}
	return t, nil
}

// LoadSRT reads an SRT subtitle file. SRT has no speaker labels, so every
// utterance is attributed to "Speaker".
func LoadSRT(path string) (Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var t Transcript
	blocks := strings.Split(strings.ReplaceAll(strings.TrimSpace(string(data)), "\r\n", "\n"), "\n\n")
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 3 || !strings.Contains(lines[1], "-->") {
			continue
		}
		parts := strings.SplitN(lines[1], "-->", 2)
		start, err := parseSRTTime(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		end, err := parseSRTTime(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		t = append(t, Utterance{
			Speaker: "Speaker",
			Text:    strings.Join(lines[2:], " "),
			Start:   &start,
			End:     &end,
		})
	}
	return t, nil
}

// parseSRTTime parses "HH:MM:SS,mmm" into seconds.
func parseSRTTime(s string) (float64, error) {
	clock, ms, ok := strings.Cut(s, ",")
	if !ok {
		return 0, fmt.Errorf("bad srt timestamp %q", s)
	}
	fields := strings.Split(clock, ":")
	if len(fields) != 3 {
		return 0, fmt.Errorf("bad srt timestamp %q", s)
	}
	var hms [3]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return 0, fmt.Errorf("bad srt timestamp %q: %w", s, err)
		}
		hms[i] = v
	}
	frac, err := strconv.Atoi(ms)
	if err != nil {
		return 0, fmt.Errorf("bad srt timestamp %q: %w", s, err)
	}
	return float64(hms[0]*3600+hms[1]*60+hms[2]) + float64(frac)/1000.0, nil
}
