package audit

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Record describes a single row that was confirmed locked during a run.
type Record struct {
	SheetName string
	RowID     int64
	RowNumber int
	Date      string
}

var header = []string{"Sheet Name", "Row ID", "Row Number", "Weekly Reference Logged Date"}

// Write serializes the records as CSV with a fixed header row.
func Write(f io.Writer, records []Record) error {
	w := csv.NewWriter(f)

	w.Write(header)
	for _, record := range records {
		w.Write([]string{
			record.SheetName,
			strconv.FormatInt(record.RowID, 10),
			strconv.Itoa(record.RowNumber),
			record.Date,
		})
	}

	w.Flush()

	return w.Error()
}

// Save writes the audit log to 'file', replacing any previous log. Nothing
// is written when there are no records.
func Save(file string, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	tmp, err := os.CreateTemp(os.TempDir(), "weeklock")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := Write(tmp, records); err != nil {
		return fmt.Errorf("error creating audit log (%v)", err)
	}

	tmp.Close()

	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), file)
}
