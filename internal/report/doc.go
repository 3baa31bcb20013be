// Package report turns scan results into the reports stored inside a vault
// and presents them as CSV or as terminal tables.
//
// A vault keeps at most one report per [models.ReportType]; adding a new
// report replaces the previous one of the same type. Payloads are JSON
// arrays of per-entry results and only list entries that need attention:
// exposed passwords with at least one occurrence, or weak passwords.
package report
