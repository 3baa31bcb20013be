// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-pass-vault/internal/leaks"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
)

const sha1HexLength = 40

// defaultFixture is served when no fixture file is configured.
var defaultFixture = map[string]int{
	"password": 9545824,
	"123456":   37359195,
	"qwerty":   10556095,
	"hunter2":  42,
	"letmein":  685322,
	"iloveyou": 2330155,
	"abc123":   4638909,
	"football": 447353,
	"monkey":   1219848,
	"admin":    42085507,
	"welcome":  1054285,
	"p@ssw0rd": 177454,
	"trustno1": 195461,
	"sunshine": 439856,
	"princess": 478716,
	"dragon":   963479,
	"1q2w3e4r": 1478926,
	"baseball": 244389,
	"superman": 375563,
	"master":   457039,
}

// Ranges maps a five character hash prefix to its SUFFIX:COUNT lines.
type Ranges map[string][]string

// Body returns the range response for prefix.
func (r Ranges) Body(prefix string) string {
	lines := r[prefix]
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\r\n") + "\r\n"
}

func (r Ranges) add(hash string, count int) {
	prefix, suffix := hash[:leaks.PrefixLength], hash[leaks.PrefixLength:]
	r[prefix] = append(r[prefix], suffix+":"+strconv.Itoa(count))
}

func (r Ranges) sort() {
	for _, lines := range r {
		slices.Sort(lines)
	}
}

// DefaultRanges builds ranges from a built-in list of common passwords.
func DefaultRanges() Ranges {
	r := Ranges{}
	for pw, count := range defaultFixture {
		r.add(utils.SHA1Hex([]byte(pw)), count)
	}
	r.sort()
	return r
}

// LoadRanges reads a fixture of KEY:COUNT lines. KEY is either a 40
// character SHA-1 hex digest or a plaintext password, which is hashed.
// Blank lines and lines starting with # are skipped.
func LoadRanges(src io.Reader) (Ranges, error) {
	r := Ranges{}
	sc := bufio.NewScanner(src)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		i := strings.LastIndexByte(line, ':')
		if i <= 0 {
			return nil, fmt.Errorf("fixture line %d: missing count", n)
		}
		count, err := strconv.Atoi(strings.TrimSpace(line[i+1:]))
		if err != nil || count < 0 {
			return nil, fmt.Errorf("fixture line %d: invalid count %q", n, line[i+1:])
		}

		r.add(toHash(strings.TrimSpace(line[:i])), count)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	r.sort()
	return r, nil
}

// LoadRangesFile is [LoadRanges] over a file. An empty path yields
// [DefaultRanges].
func LoadRangesFile(path string) (Ranges, error) {
	if path == "" {
		return DefaultRanges(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()
	return LoadRanges(f)
}

func toHash(key string) string {
	upper := strings.ToUpper(key)
	if len(upper) == sha1HexLength && isHex(upper) {
		return upper
	}
	return utils.SHA1Hex([]byte(key))
}

func isHex(s string) bool {
	return strings.Trim(s, "0123456789ABCDEF") == ""
}
