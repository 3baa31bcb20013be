// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package leaks implements the breach range lookup. Only the first five hex
// characters of a password's SHA-1 hash are ever sent; the service answers
// with every known suffix sharing that prefix and the match happens locally.
package leaks

import (
	"bufio"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

// PrefixLength is the number of hash characters sent to the range service.
const PrefixLength = 5

const sha1HexLength = 40

type checker struct {
	client         *utils.HTTPClient
	requestTimeout time.Duration
	maxConcurrent  int
	logger         *logger.Logger
}

// NewChecker constructs a [Finder] that queries cfg.BaseURL. Every request
// is bounded by cfg.RequestTimeout independently of its siblings.
func NewChecker(cfg config.Leaks, log *logger.Logger) (Finder, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("invalid leaks base url: empty")
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("invalid leaks request timeout: %v", cfg.RequestTimeout)
	}

	return &checker{
		client:         utils.NewHTTPClientWithBase(baseURL, 0),
		requestTimeout: cfg.RequestTimeout,
		maxConcurrent:  cfg.MaxConcurrent,
		logger:         log,
	}, nil
}

// FindLeaks implements [Finder].
func (c *checker) FindLeaks(ctx context.Context, candidates []models.LeakCandidate) []models.LeakResult {
	results := make([]models.LeakResult, len(candidates))

	// Goroutines never return an error so one failure cannot cancel the rest.
	var g errgroup.Group
	if c.maxConcurrent > 0 {
		g.SetLimit(c.maxConcurrent)
	}

	for i, candidate := range candidates {
		g.Go(func() error {
			results[i] = c.lookup(ctx, candidate)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (c *checker) lookup(ctx context.Context, candidate models.LeakCandidate) models.LeakResult {
	result := models.LeakResult{ID: candidate.ID}

	count, err := c.occurrences(ctx, candidate.Hash)
	if err != nil {
		c.logger.Warn().Err(err).Int64("entry_id", candidate.ID).Str("func", "checker.lookup").Msg("range lookup failed")
		result.Err = err
		result.Error = err.Error()
		result.Kind = kindOf(err)
		return result
	}

	result.Occurrences = count
	return result
}

func (c *checker) occurrences(ctx context.Context, hash string) (int, error) {
	hash = strings.ToUpper(strings.TrimSpace(hash))
	if len(hash) != sha1HexLength {
		return 0, ErrInvalidHash
	}
	if _, err := hex.DecodeString(hash); err != nil {
		return 0, ErrInvalidHash
	}
	prefix, suffix := hash[:PrefixLength], hash[PrefixLength:]

	reqCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	resp, err := c.client.R().
		SetContext(reqCtx).
		SetHeader("Accept", "text/plain").
		Get("/" + prefix)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return 0, fmt.Errorf("%w after %v", ErrLookupTimeout, c.requestTimeout)
		}
		return 0, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode())
	}

	return matchSuffix(resp.String(), suffix), nil
}

// matchSuffix scans a range response body for suffix and returns its count,
// or 0 when the suffix is absent. Matching is case-insensitive and tolerates
// CRLF line endings and malformed lines.
func matchSuffix(body, suffix string) int {
	sc := bufio.NewScanner(strings.NewReader(body))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		s, n, ok := strings.Cut(line, ":")
		if !ok || !strings.EqualFold(s, suffix) {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return count
	}
	return 0
}
