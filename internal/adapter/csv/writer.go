package csv

import (
	enccsv "encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/iho/payproc/internal/domain"
)

var snapshotHeader = []string{"client", "available", "held", "total", "locked"}

// Writer serializes account snapshots to CSV.
type Writer struct {
	csv *enccsv.Writer
}

// NewWriter creates a snapshot writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: enccsv.NewWriter(w)}
}

// WriteSnapshots writes the header followed by one row per snapshot,
// in the order given.
func (w *Writer) WriteSnapshots(snapshots []domain.Snapshot) error {
	if err := w.csv.Write(snapshotHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, s := range snapshots {
		row := []string{
			s.Client.String(),
			s.Available.String(),
			s.Held.String(),
			s.Total.String(),
			strconv.FormatBool(s.Locked),
		}
		if err := w.csv.Write(row); err != nil {
			return fmt.Errorf("writing snapshot for client %s: %w", s.Client, err)
		}
	}

	w.csv.Flush()

	return w.csv.Error()
}
