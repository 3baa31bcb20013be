// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildTouchRecentVaultQuery(t *testing.T) {
	query, args, err := buildTouchRecentVaultQuery("/home/a/work.pvault", 42)
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "insert into recent_vaults")
	assert.Contains(t, q, "on conflict(path) do update")
	// sqlite placeholders
	assert.Contains(t, query, "?")
	assert.NotContains(t, query, "$1")
	assert.Equal(t, []any{"/home/a/work.pvault", int64(42)}, args)
}

func Test_buildTrimRecentVaultsQuery(t *testing.T) {
	query, args, err := buildTrimRecentVaultsQuery(10)
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.True(t, strings.HasPrefix(q, "delete from recent_vaults"))
	assert.Contains(t, q, "not in (select path from recent_vaults order by opened_at desc limit ?)")
	assert.Equal(t, []any{10}, args)
}

func Test_buildListRecentVaultsQuery(t *testing.T) {
	query, args, err := buildListRecentVaultsQuery(5)
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "select path, opened_at from recent_vaults")
	assert.Contains(t, q, "order by opened_at desc")
	assert.Contains(t, q, "limit 5")
	assert.Empty(t, args)
}

func Test_buildRemoveRecentVaultQuery(t *testing.T) {
	query, args, err := buildRemoveRecentVaultQuery("x.pvault")
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM recent_vaults WHERE path = ?", query)
	assert.Equal(t, []any{"x.pvault"}, args)
}
