package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/models"
)

// Field names accepted by [VaultValidator.Validate].
const (
	// FieldID targets the row id.
	FieldID = "id"

	// FieldType targets the entry type.
	FieldType = "type"

	// FieldExpiration targets the card expiration month and year.
	FieldExpiration = "expiration"

	// FieldName targets the group name.
	FieldName = "name"

	// FieldReferences targets cross-table references of a whole vault:
	// entry groups and history entries.
	FieldReferences = "references"

	// FieldUniqueIDs targets id uniqueness within each table.
	FieldUniqueIDs = "unique_ids"
)

const maxExpirationYear = 9999

// VaultValidator validates entries, groups and whole vault tables.
type VaultValidator struct{}

func NewVaultValidator() Validator {
	return &VaultValidator{}
}

// Validate dispatches on the dynamic type of obj. Value and pointer forms of
// models.Entry, models.Group and models.Tables are accepted. Without fields
// every rule for the type is applied.
func (v *VaultValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Entry:
		return v.validateEntry(value, fields...)
	case *models.Entry:
		return v.validateEntry(*value, fields...)

	case models.Group:
		return v.validateGroup(value, fields...)
	case *models.Group:
		return v.validateGroup(*value, fields...)

	case models.Tables:
		return v.validateTables(ctx, value, fields...)
	case *models.Tables:
		return v.validateTables(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *VaultValidator) validateEntry(e models.Entry, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldType, FieldExpiration}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if e.ID <= 0 {
				return fmt.Errorf("%w: entry %d", ErrInvalidID, e.ID)
			}
		case FieldType:
			// An empty type is read as a password entry.
			if e.Type != "" && e.Type != models.PasswordEntry && e.Type != models.CardEntry {
				return fmt.Errorf("%w: %q", ErrInvalidEntryType, e.Type)
			}
		case FieldExpiration:
			if e.ExpirationMonth < 0 || e.ExpirationMonth > 12 ||
				e.ExpirationYear < 0 || e.ExpirationYear > maxExpirationYear {
				return fmt.Errorf("%w: entry %d", ErrInvalidExpiration, e.ID)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}
	return nil
}

func (v *VaultValidator) validateGroup(g models.Group, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldName}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if g.ID <= 0 {
				return fmt.Errorf("%w: group %d", ErrInvalidID, g.ID)
			}
		case FieldName:
			if g.Name == "" {
				return fmt.Errorf("%w: group %d", ErrEmptyGroupName, g.ID)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}
	return nil
}

// validateTables validates every row and then the tables as a whole.
// Rows are always checked with their default rules; fields only select the
// table-level rules.
func (v *VaultValidator) validateTables(ctx context.Context, t models.Tables, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUniqueIDs, FieldReferences}
	}

	for _, g := range t.Groups {
		if err := v.validateGroup(g); err != nil {
			return err
		}
	}
	for _, e := range t.Entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := v.validateEntry(e); err != nil {
			return err
		}
	}

	for _, f := range fields {
		switch f {
		case FieldUniqueIDs:
			if err := uniqueIDs(t); err != nil {
				return err
			}
		case FieldReferences:
			if err := references(t); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}
	return nil
}

func uniqueIDs(t models.Tables) error {
	check := func(table string, ids []int64) error {
		seen := make(map[int64]struct{}, len(ids))
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				return fmt.Errorf("%w: %s %d", ErrDuplicateID, table, id)
			}
			seen[id] = struct{}{}
		}
		return nil
	}

	entryIDs := make([]int64, len(t.Entries))
	for i, e := range t.Entries {
		entryIDs[i] = e.ID
	}
	groupIDs := make([]int64, len(t.Groups))
	for i, g := range t.Groups {
		groupIDs[i] = g.ID
	}
	reportIDs := make([]int64, len(t.Reports))
	for i, r := range t.Reports {
		reportIDs[i] = r.ID
	}

	if err := check("entry", entryIDs); err != nil {
		return err
	}
	if err := check("group", groupIDs); err != nil {
		return err
	}
	return check("report", reportIDs)
}

// references checks that entries point at existing groups (0 means no
// group) and that history rows point at existing entries.
func references(t models.Tables) error {
	groups := make(map[int64]struct{}, len(t.Groups))
	for _, g := range t.Groups {
		groups[g.ID] = struct{}{}
	}
	entries := make(map[int64]struct{}, len(t.Entries))
	for _, e := range t.Entries {
		entries[e.ID] = struct{}{}
		if e.GroupID == 0 {
			continue
		}
		if _, ok := groups[e.GroupID]; !ok {
			return fmt.Errorf("%w: entry %d, group %d", ErrUnknownGroup, e.ID, e.GroupID)
		}
	}
	for _, h := range t.History {
		if _, ok := entries[h.EntryID]; !ok {
			return fmt.Errorf("%w: history %d, entry %d", ErrUnknownHistoryItem, h.ID, h.EntryID)
		}
	}
	return nil
}
