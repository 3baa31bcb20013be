package models

import "time"

// RecentVault is a vault file remembered by the workspace database.
type RecentVault struct {
	Path     string    `json:"path"`
	OpenedAt time.Time `json:"openedAt"`
}
