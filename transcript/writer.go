package transcript

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// WriteJSON writes the transcript as an indented JSON array.
func WriteJSON(path string, t Transcript) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

// WriteCSV writes the transcript with speaker/text columns, plus the
// timestamp columns when withTimes is set.
func WriteCSV(path string, t Transcript, withTimes bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"speaker", "text"}
	if withTimes {
		header = append(header, "start_time", "end_time")
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, u := range t {
		row := []string{u.Speaker, u.Text}
		if withTimes {
			row = append(row, fmtTime(u.Start), fmtTime(u.End))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteText writes "Speaker: text" lines, or bare text when withSpeaker is
// false.
func WriteText(path string, t Transcript, withSpeaker bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, u := range t {
		var err error
		if withSpeaker {
			_, err = fmt.Fprintf(f, "%s: %s\n", u.Speaker, u.Text)
		} else {
			_, err = fmt.Fprintln(f, u.Text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func fmtTime(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
