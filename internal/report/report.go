package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/weak"
	"github.com/MKhiriev/go-pass-vault/models"
)

// ErrUnknownReportType is returned for a report type this build cannot
// present.
var ErrUnknownReportType = errors.New("unknown report type")

// NewExposedPasswordsReport builds a report listing the entries whose
// password was found in the breach corpus. Failed lookups are left out.
func NewExposedPasswordsReport(results []models.LeakResult, now time.Time) (models.Report, error) {
	exposed := make([]models.LeakResult, 0, len(results))
	for _, r := range results {
		if !r.Failed() && r.Occurrences > 0 {
			exposed = append(exposed, models.LeakResult{ID: r.ID, Occurrences: r.Occurrences})
		}
	}
	return newReport(models.ExposedPasswordsReport, exposed, now)
}

// NewWeakPasswordsReport builds a report listing the entries whose password
// scored as weak.
func NewWeakPasswordsReport(results []models.WeakResult, now time.Time) (models.Report, error) {
	weakOnes := make([]models.WeakResult, 0, len(results))
	for _, r := range results {
		if weak.IsWeak(r.Score) {
			weakOnes = append(weakOnes, r)
		}
	}
	return newReport(models.WeakPasswordsReport, weakOnes, now)
}

func newReport(t models.ReportType, payload any, now time.Time) (models.Report, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return models.Report{}, fmt.Errorf("marshal report payload: %w", err)
	}
	return models.Report{Type: t, CreationDate: now, Payload: string(b)}, nil
}

// Add stores r in tables, replacing any report of the same type, and
// returns r with its assigned ID.
func Add(tables *models.Tables, r models.Report) models.Report {
	var maxID int64
	for _, existing := range tables.Reports {
		maxID = max(maxID, existing.ID)
	}
	r.ID = maxID + 1

	tables.Reports = slices.DeleteFunc(tables.Reports, func(existing models.Report) bool {
		return existing.Type == r.Type
	})
	tables.Reports = append(tables.Reports, r)
	return r
}

// Last returns the report of type t, if any.
func Last(tables models.Tables, t models.ReportType) (models.Report, bool) {
	var (
		found models.Report
		ok    bool
	)
	for _, r := range tables.Reports {
		if r.Type == t && (!ok || r.CreationDate.After(found.CreationDate)) {
			found, ok = r, true
		}
	}
	return found, ok
}

// Row is one reported entry resolved against the vault tables.
type Row struct {
	ID          int64
	GroupName   string
	Title       string
	Username    string
	Occurrences int
	Score       int
}

// Rows resolves the entries of r. Entries deleted since the scan are
// skipped.
func Rows(tables models.Tables, r models.Report) ([]Row, error) {
	entries := make(map[int64]models.Entry, len(tables.Entries))
	for _, e := range tables.Entries {
		entries[e.ID] = e
	}
	groups := make(map[int64]string, len(tables.Groups))
	for _, g := range tables.Groups {
		groups[g.ID] = g.Name
	}

	var items []struct {
		ID          int64 `json:"id"`
		Occurrences int   `json:"occurrences"`
		Score       int   `json:"score"`
	}
	switch r.Type {
	case models.ExposedPasswordsReport, models.WeakPasswordsReport:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownReportType, r.Type)
	}
	if err := json.Unmarshal([]byte(r.Payload), &items); err != nil {
		return nil, fmt.Errorf("decode report payload: %w", err)
	}

	rows := make([]Row, 0, len(items))
	for _, it := range items {
		e, ok := entries[it.ID]
		if !ok {
			continue
		}
		rows = append(rows, Row{
			ID:          e.ID,
			GroupName:   groups[e.GroupID],
			Title:       e.Title,
			Username:    e.Username,
			Occurrences: it.Occurrences,
			Score:       it.Score,
		})
	}
	return rows, nil
}
