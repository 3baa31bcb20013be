package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/MKhiriev/go-pass-vault/models"
)

// WriteCSV writes rows as CSV with a header. The last column is the
// occurrence count for exposed passwords and the score for weak ones.
func WriteCSV(w io.Writer, t models.ReportType, rows []Row) error {
	metric, value, err := metricColumn(t)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"title", "username", metric}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Title, r.Username, strconv.Itoa(value(r))}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func metricColumn(t models.ReportType) (string, func(Row) int, error) {
	switch t {
	case models.ExposedPasswordsReport:
		return "occurrences", func(r Row) int { return r.Occurrences }, nil
	case models.WeakPasswordsReport:
		return "score", func(r Row) int { return r.Score }, nil
	default:
		return "", nil, fmt.Errorf("%w: %d", ErrUnknownReportType, t)
	}
}
