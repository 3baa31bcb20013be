package service

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/go-pass-vault/internal/leaks"
	"github.com/MKhiriev/go-pass-vault/internal/report"
	"github.com/MKhiriev/go-pass-vault/models"
)

func (s *vaultService) ScanLeaks(ctx context.Context, tables models.Tables) ([]models.LeakResult, models.Report, error) {
	data, err := s.scan(ctx, models.GetLeaks, tables)
	if err != nil {
		return nil, models.Report{}, err
	}

	var results []models.LeakResult
	if err := json.Unmarshal(data, &results); err != nil {
		s.logger.Err(err).Str("func", "vaultService.ScanLeaks").Msg("worker returned invalid results")
		return nil, models.Report{}, ErrOperationFailed
	}

	failed := 0
	for i := range results {
		results[i].Err = leaks.ResultError(results[i])
		if results[i].Failed() {
			failed++
		}
	}
	if failed > 0 {
		s.logger.Warn().Int("failed", failed).Int("total", len(results)).Str("func", "vaultService.ScanLeaks").Msg("some lookups failed")
	}

	r, err := report.NewExposedPasswordsReport(results, s.now())
	if err != nil {
		return nil, models.Report{}, ErrOperationFailed
	}
	return results, r, nil
}

func (s *vaultService) ScanWeakPasswords(ctx context.Context, tables models.Tables) ([]models.WeakResult, models.Report, error) {
	data, err := s.scan(ctx, models.GetWeakPasswords, tables)
	if err != nil {
		return nil, models.Report{}, err
	}

	var results []models.WeakResult
	if err := json.Unmarshal(data, &results); err != nil {
		s.logger.Err(err).Str("func", "vaultService.ScanWeakPasswords").Msg("worker returned invalid results")
		return nil, models.Report{}, ErrOperationFailed
	}

	r, err := report.NewWeakPasswordsReport(results, s.now())
	if err != nil {
		return nil, models.Report{}, ErrOperationFailed
	}
	return results, r, nil
}

func (s *vaultService) scan(ctx context.Context, op models.OperationKind, tables models.Tables) ([]byte, error) {
	database, err := json.Marshal(tables)
	if err != nil {
		return nil, ErrOperationFailed
	}

	reply, err := s.run(ctx, models.WorkerRequest{Type: op, Database: database})
	if err != nil {
		return nil, err
	}
	return []byte(reply.Data), nil
}
