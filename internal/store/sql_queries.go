package store

import (
	sq "github.com/Masterminds/squirrel"
)

const recentVaultsTable = "recent_vaults"

func buildTouchRecentVaultQuery(path string, openedAt int64) (string, []any, error) {
	return sq.Insert(recentVaultsTable).
		Columns("path", "opened_at").
		Values(path, openedAt).
		Suffix("ON CONFLICT(path) DO UPDATE SET opened_at = excluded.opened_at").
		ToSql()
}

// buildTrimRecentVaultsQuery deletes everything but the limit most recent
// rows.
func buildTrimRecentVaultsQuery(limit int) (string, []any, error) {
	return sq.Delete(recentVaultsTable).
		Where(sq.Expr(
			"path NOT IN (SELECT path FROM "+recentVaultsTable+" ORDER BY opened_at DESC LIMIT ?)",
			limit,
		)).
		ToSql()
}

func buildListRecentVaultsQuery(limit int) (string, []any, error) {
	return sq.Select("path", "opened_at").
		From(recentVaultsTable).
		OrderBy("opened_at DESC").
		Limit(uint64(limit)).
		ToSql()
}

func buildRemoveRecentVaultQuery(path string) (string, []any, error) {
	return sq.Delete(recentVaultsTable).
		Where(sq.Eq{"path": path}).
		ToSql()
}
