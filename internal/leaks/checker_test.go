package leaks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

type rangeServer struct {
	*httptest.Server

	mu       sync.Mutex
	paths    []string
	queries  []string
	bodies   map[string]string
	hang     map[string]bool
	status   int
	released chan struct{}
}

// newRangeServer serves bodies keyed by prefix under /range/{prefix}.
// Prefixes in hang block until the client gives up.
func newRangeServer(t *testing.T, bodies map[string]string, hang ...string) *rangeServer {
	t.Helper()

	s := &rangeServer{
		bodies:   bodies,
		hang:     map[string]bool{},
		status:   http.StatusOK,
		released: make(chan struct{}),
	}
	for _, p := range hang {
		s.hang[p] = true
	}

	r := chi.NewRouter()
	r.Get("/range/{prefix}", func(w http.ResponseWriter, r *http.Request) {
		prefix := chi.URLParam(r, "prefix")

		s.mu.Lock()
		s.paths = append(s.paths, r.URL.Path)
		s.queries = append(s.queries, r.URL.RawQuery)
		status := s.status
		s.mu.Unlock()

		if s.hang[prefix] {
			select {
			case <-r.Context().Done():
			case <-s.released:
			}
			return
		}

		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		_, _ = utils.WriteText(w, s.bodies[prefix], http.StatusOK)
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(func() {
		close(s.released)
		s.Close()
	})
	return s
}

func newTestChecker(t *testing.T, baseURL string, timeout time.Duration) Finder {
	t.Helper()
	f, err := NewChecker(config.Leaks{
		BaseURL:        baseURL + "/range",
		RequestTimeout: timeout,
		MaxConcurrent:  4,
	}, logger.Nop())
	require.NoError(t, err)
	return f
}

func TestNewChecker_InvalidConfig(t *testing.T) {
	_, err := NewChecker(config.Leaks{RequestTimeout: time.Second}, logger.Nop())
	assert.Error(t, err)

	_, err = NewChecker(config.Leaks{BaseURL: "http://localhost/range"}, logger.Nop())
	assert.Error(t, err)
}

func TestFindLeaks_MatchesSuffix(t *testing.T) {
	hash := utils.SHA1Hex([]byte("password"))
	prefix, suffix := hash[:5], hash[5:]

	srv := newRangeServer(t, map[string]string{
		prefix: "0018A45C4D1DEF81644B54AB7F969B88D65:1\r\n" +
			strings.ToLower(suffix) + ":3861493\r\n" +
			"011053FD0102E94D6AE2F8B83D76FAF94F6:13\r\n",
	})
	f := newTestChecker(t, srv.URL, time.Second)

	results := f.FindLeaks(context.Background(), []models.LeakCandidate{{ID: 7, Hash: hash}})

	require.Len(t, results, 1)
	assert.Equal(t, int64(7), results[0].ID)
	assert.Equal(t, 3861493, results[0].Occurrences)
	assert.False(t, results[0].Failed())
}

func TestFindLeaks_NoLeak(t *testing.T) {
	hash := utils.SHA1Hex([]byte("a password nobody ever used 8c1f"))
	prefix := hash[:5]

	srv := newRangeServer(t, map[string]string{
		prefix: "0018A45C4D1DEF81644B54AB7F969B88D65:1\n011053FD0102E94D6AE2F8B83D76FAF94F6:13\n",
	})
	f := newTestChecker(t, srv.URL, time.Second)

	results := f.FindLeaks(context.Background(), []models.LeakCandidate{{ID: 1, Hash: hash}})

	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].Occurrences)
	assert.NoError(t, results[0].Err)
}

func TestFindLeaks_SendsOnlyPrefix(t *testing.T) {
	passwords := []string{"password", "hunter2", "correct horse battery staple"}

	srv := newRangeServer(t, map[string]string{})
	f := newTestChecker(t, srv.URL, time.Second)

	candidates := make([]models.LeakCandidate, len(passwords))
	for i, p := range passwords {
		candidates[i] = models.LeakCandidate{ID: int64(i), Hash: utils.SHA1Hex([]byte(p))}
	}
	f.FindLeaks(context.Background(), candidates)

	srv.mu.Lock()
	defer srv.mu.Unlock()
	require.Len(t, srv.paths, len(passwords))

	for _, path := range srv.paths {
		prefix := strings.TrimPrefix(path, "/range/")
		assert.Regexp(t, "^[0-9A-F]{5}$", prefix)
	}
	for i, p := range passwords {
		hash := candidates[i].Hash
		for _, path := range srv.paths {
			assert.NotContains(t, path, hash[5:])
			assert.NotContains(t, strings.ToLower(path), strings.ToLower(p))
		}
	}
	for _, q := range srv.queries {
		assert.Empty(t, q)
	}
}

func TestFindLeaks_OneTimeoutDoesNotAffectOthers(t *testing.T) {
	hashes := []string{
		utils.SHA1Hex([]byte("first")),
		utils.SHA1Hex([]byte("second")),
		utils.SHA1Hex([]byte("third")),
	}
	bodies := map[string]string{
		hashes[0][:5]: hashes[0][5:] + ":5\n",
		hashes[2][:5]: hashes[2][5:] + ":9\n",
	}
	srv := newRangeServer(t, bodies, hashes[1][:5])
	f := newTestChecker(t, srv.URL, 200*time.Millisecond)

	results := f.FindLeaks(context.Background(), []models.LeakCandidate{
		{ID: 1, Hash: hashes[0]},
		{ID: 2, Hash: hashes[1]},
		{ID: 3, Hash: hashes[2]},
	})

	require.Len(t, results, 3)
	assert.Equal(t, 5, results[0].Occurrences)
	assert.NoError(t, results[0].Err)

	assert.Equal(t, int64(2), results[1].ID)
	assert.ErrorIs(t, results[1].Err, ErrLookupTimeout)
	assert.Equal(t, models.LeakKindTimeout, results[1].Kind)
	assert.NotEmpty(t, results[1].Error)

	assert.Equal(t, 9, results[2].Occurrences)
	assert.NoError(t, results[2].Err)
}

func TestFindLeaks_PerEntryErrors(t *testing.T) {
	srv := newRangeServer(t, map[string]string{})
	srv.mu.Lock()
	srv.status = http.StatusServiceUnavailable
	srv.mu.Unlock()
	f := newTestChecker(t, srv.URL, time.Second)

	results := f.FindLeaks(context.Background(), []models.LeakCandidate{
		{ID: 1, Hash: "not-a-hash"},
		{ID: 2, Hash: utils.SHA1Hex([]byte("x"))},
	})

	require.Len(t, results, 2)
	assert.ErrorIs(t, results[0].Err, ErrInvalidHash)
	assert.Equal(t, models.LeakKindInvalidHash, results[0].Kind)
	assert.ErrorIs(t, results[1].Err, ErrUnexpectedStatus)
	assert.Equal(t, models.LeakKindStatus, results[1].Kind)
}

func TestFindLeaks_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	f := newTestChecker(t, url, time.Second)
	results := f.FindLeaks(context.Background(), []models.LeakCandidate{{ID: 1, Hash: utils.SHA1Hex([]byte("x"))}})

	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, ErrLookupFailed)
	assert.Equal(t, models.LeakKindNetwork, results[0].Kind)
}

// TestFindLeaks_HangingBatchFinishesInOneTimeout checks that a batch larger
// than any fixed worker count still completes within a single request
// timeout when every lookup hangs.
func TestFindLeaks_HangingBatchFinishesInOneTimeout(t *testing.T) {
	const timeout = 200 * time.Millisecond

	var (
		candidates []models.LeakCandidate
		prefixes   []string
	)
	for i := range 8 {
		hash := utils.SHA1Hex([]byte(fmt.Sprintf("hanging-%d", i)))
		candidates = append(candidates, models.LeakCandidate{ID: int64(i + 1), Hash: hash})
		prefixes = append(prefixes, hash[:PrefixLength])
	}
	srv := newRangeServer(t, map[string]string{}, prefixes...)

	f, err := NewChecker(config.Leaks{
		BaseURL:        srv.URL + "/range",
		RequestTimeout: timeout,
		MaxConcurrent:  config.DefaultLeaksMaxConcurrent,
	}, logger.Nop())
	require.NoError(t, err)

	start := time.Now()
	results := f.FindLeaks(context.Background(), candidates)
	elapsed := time.Since(start)

	require.Len(t, results, len(candidates))
	for _, r := range results {
		assert.ErrorIs(t, r.Err, ErrLookupTimeout)
	}
	assert.Less(t, elapsed, 3*timeout)
}

func TestResultError(t *testing.T) {
	tests := []struct {
		name     string
		result   models.LeakResult
		expected error
		message  string
	}{
		{name: "success", result: models.LeakResult{ID: 1, Occurrences: 3}},
		{
			name:     "timeout",
			result:   models.LeakResult{ID: 1, Error: "range lookup timed out after 30s", Kind: models.LeakKindTimeout},
			expected: ErrLookupTimeout,
			message:  "range lookup timed out after 30s",
		},
		{
			name:     "network",
			result:   models.LeakResult{ID: 1, Error: "range lookup failed: refused", Kind: models.LeakKindNetwork},
			expected: ErrLookupFailed,
			message:  "range lookup failed: refused",
		},
		{
			name:     "status",
			result:   models.LeakResult{ID: 1, Error: "unexpected range service status: 503", Kind: models.LeakKindStatus},
			expected: ErrUnexpectedStatus,
			message:  "unexpected range service status: 503",
		},
		{
			name:     "invalid hash without message",
			result:   models.LeakResult{ID: 1, Kind: models.LeakKindInvalidHash},
			expected: ErrInvalidHash,
			message:  ErrInvalidHash.Error(),
		},
		{
			name:     "unknown kind",
			result:   models.LeakResult{ID: 1, Error: "boom", Kind: "other"},
			expected: ErrLookupFailed,
			message:  "boom",
		},
		{
			name:     "message only",
			result:   models.LeakResult{ID: 1, Error: "boom"},
			expected: ErrLookupFailed,
			message:  "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ResultError(tt.result)
			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expected)
			assert.EqualError(t, err, tt.message)
		})
	}
}

// TestResultError_SurvivesJSON checks that a failure keeps its type after the
// result is encoded and decoded, as it is between the worker and the caller.
func TestResultError_SurvivesJSON(t *testing.T) {
	srv := newRangeServer(t, map[string]string{})
	srv.mu.Lock()
	srv.status = http.StatusBadGateway
	srv.mu.Unlock()
	f := newTestChecker(t, srv.URL, time.Second)

	results := f.FindLeaks(context.Background(), []models.LeakCandidate{{ID: 4, Hash: utils.SHA1Hex([]byte("x"))}})

	data, err := json.Marshal(results)
	require.NoError(t, err)

	var decoded []models.LeakResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Nil(t, decoded[0].Err)

	err = ResultError(decoded[0])
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.EqualError(t, err, results[0].Error)
}

func TestFindLeaks_Empty(t *testing.T) {
	f := newTestChecker(t, "http://localhost:1", time.Second)
	assert.Empty(t, f.FindLeaks(context.Background(), nil))
}

func TestMatchSuffix(t *testing.T) {
	body := "AAA:1\r\nbbb:22\r\nbroken line\r\nCCC:notanumber\r\n"

	assert.Equal(t, 1, matchSuffix(body, "aaa"))
	assert.Equal(t, 22, matchSuffix(body, "BBB"))
	assert.Equal(t, 0, matchSuffix(body, "DDD"))
	assert.Equal(t, 0, matchSuffix(body, "CCC"))
	assert.Equal(t, 0, matchSuffix("", "AAA"))
}
