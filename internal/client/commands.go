package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/app"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/report"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/models"
)

var (
	// ErrPasswordMismatch is returned when a new password is not confirmed.
	ErrPasswordMismatch = errors.New(app.MsgPasswordMismatch)

	// ErrVaultExists is returned by new when the target file already exists.
	ErrVaultExists = errors.New(app.MsgVaultExists)
)

const recentTimeLayout = "2006-01-02 15:04"

func requireArgs(args []string, n int) error {
	if len(args) < n {
		return ErrUsage
	}
	return nil
}

// readNewPassword asks for a password twice.
func (a *App) readNewPassword() ([]byte, error) {
	pw, err := a.prompt.ReadPassword("New password: ")
	if err != nil {
		return nil, err
	}
	if len(pw) == 0 {
		return nil, service.ErrEmptyPassword
	}
	confirm, err := a.prompt.ReadPassword("Repeat password: ")
	if err != nil {
		crypto.Wipe(pw)
		return nil, err
	}
	defer crypto.Wipe(confirm)

	if !bytes.Equal(pw, confirm) {
		crypto.Wipe(pw)
		return nil, ErrPasswordMismatch
	}
	return pw, nil
}

// openVault prompts for the password of path and opens it.
func (a *App) openVault(ctx context.Context, path string) (models.Tables, error) {
	pw, err := a.prompt.ReadPassword("Password: ")
	if err != nil {
		return models.Tables{}, err
	}
	defer crypto.Wipe(pw)

	return a.services.Vault.Open(ctx, path, pw)
}

// vault new <path>
func (a *App) newVault(ctx context.Context, args []string) error {
	if err := requireArgs(args, 1); err != nil {
		return err
	}

	path := service.WithExtension(args[0])
	for _, p := range []string{args[0], path} {
		exists, err := a.files.Exists(ctx, p)
		if err != nil {
			return err
		}
		if exists {
			return ErrVaultExists
		}
	}

	pw, err := a.readNewPassword()
	if err != nil {
		return err
	}
	defer crypto.Wipe(pw)

	tables := models.Tables{Groups: []models.Group{{ID: 1, Name: "Root"}}}
	path, err = a.services.Vault.Save(ctx, path, tables, pw)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created %s\n", path)
	return nil
}

// vault open <path>
func (a *App) open(ctx context.Context, args []string) error {
	if err := requireArgs(args, 1); err != nil {
		return err
	}
	path := args[0]

	tables, err := a.openVault(ctx, path)
	if err != nil {
		return err
	}

	groups := make(map[int64]string, len(tables.Groups))
	for _, g := range tables.Groups {
		groups[g.ID] = g.Name
	}

	fmt.Fprintf(a.out, "%s: %d entries, %d groups\n", path, len(tables.Entries), len(tables.Groups))
	for _, e := range tables.Entries {
		line := fmt.Sprintf("  %4d  %-10s %-24s %s", e.ID, groups[e.GroupID], e.Title, e.Username)
		if e.IsStarred {
			line += " *"
		}
		fmt.Fprintln(a.out, line)
	}

	for _, t := range []models.ReportType{models.ExposedPasswordsReport, models.WeakPasswordsReport} {
		if r, ok := report.Last(tables, t); ok {
			fmt.Fprintf(a.out, "Last %s scan: %s\n", reportName(t), r.CreationDate.Local().Format(recentTimeLayout))
		}
	}

	if exists, err := a.files.Exists(ctx, a.services.Vault.RecoveryFile(path)); err == nil && exists {
		fmt.Fprintf(a.out, "Unsaved changes were found. Run `vault recover %s` to restore them.\n", path)
	}
	return nil
}

// vault add <path> <title> [username]
func (a *App) addEntry(ctx context.Context, args []string) error {
	if err := requireArgs(args, 2); err != nil {
		return err
	}
	path := args[0]

	tables, err := a.openVault(ctx, path)
	if err != nil {
		return err
	}

	entryPw, err := a.prompt.ReadPassword("Entry password: ")
	if err != nil {
		return err
	}
	sealed, err := a.services.Vault.EncryptString(ctx, entryPw)
	crypto.Wipe(entryPw)
	if err != nil {
		return err
	}

	var nextID, groupID int64
	for _, e := range tables.Entries {
		nextID = max(nextID, e.ID)
	}
	if len(tables.Groups) > 0 {
		groupID = tables.Groups[0].ID
	}
	now := time.Now().UTC()

	entry := models.Entry{
		ID:                   nextID + 1,
		GroupID:              groupID,
		Type:                 models.PasswordEntry,
		Title:                args[1],
		Password:             sealed,
		CreationDate:         &now,
		LastModificationDate: &now,
	}
	if len(args) > 2 {
		entry.Username = args[2]
	}
	tables.Entries = append(tables.Entries, entry)

	// The snapshot survives a crash during the save below.
	if err := a.services.Vault.Snapshot(ctx, path, tables); err != nil {
		return err
	}
	if _, err := a.services.Vault.Save(ctx, path, tables, nil); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added entry %d to %s\n", entry.ID, path)
	return nil
}

// vault passwd <path>
func (a *App) changePassword(ctx context.Context, args []string) error {
	if err := requireArgs(args, 1); err != nil {
		return err
	}
	path := args[0]

	tables, err := a.openVault(ctx, path)
	if err != nil {
		return err
	}

	pw, err := a.readNewPassword()
	if err != nil {
		return err
	}
	defer crypto.Wipe(pw)

	if _, err := a.services.Vault.Save(ctx, path, tables, pw); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password changed.")
	return nil
}

// vault recover <path>
func (a *App) recoverVault(ctx context.Context, args []string) error {
	if err := requireArgs(args, 1); err != nil {
		return err
	}
	path := args[0]

	if _, err := a.openVault(ctx, path); err != nil {
		return err
	}
	tables, err := a.services.Vault.Recover(ctx, path)
	if err != nil {
		return err
	}
	if _, err := a.services.Vault.Save(ctx, path, tables, nil); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Recovered %d entries into %s\n", len(tables.Entries), path)
	return nil
}

// vault scan-leaks <path> [report.csv]
func (a *App) scanLeaks(ctx context.Context, args []string) error {
	return a.scan(ctx, args, models.ExposedPasswordsReport, func(tables models.Tables) (models.Report, error) {
		results, r, err := a.services.Vault.ScanLeaks(ctx, tables)
		if err != nil {
			return models.Report{}, err
		}
		failed := slices.IndexFunc(results, func(res models.LeakResult) bool { return res.Failed() })
		if failed >= 0 {
			fmt.Fprintln(a.out, "Some passwords could not be checked; the report may be incomplete.")
		}
		return r, nil
	})
}

// vault scan-weak <path> [report.csv]
func (a *App) scanWeak(ctx context.Context, args []string) error {
	return a.scan(ctx, args, models.WeakPasswordsReport, func(tables models.Tables) (models.Report, error) {
		_, r, err := a.services.Vault.ScanWeakPasswords(ctx, tables)
		return r, err
	})
}

// scan opens the vault, runs fn, stores the report in the vault and prints
// it. A CSV copy is written when a second argument is given.
func (a *App) scan(ctx context.Context, args []string, t models.ReportType, fn func(models.Tables) (models.Report, error)) error {
	if err := requireArgs(args, 1); err != nil {
		return err
	}
	path := args[0]

	tables, err := a.openVault(ctx, path)
	if err != nil {
		return err
	}

	r, err := fn(tables)
	if err != nil {
		return err
	}
	r = report.Add(&tables, r)
	if _, err := a.services.Vault.Save(ctx, path, tables, nil); err != nil {
		return err
	}

	rows, err := report.Rows(tables, r)
	if err != nil {
		return fmt.Errorf("resolve report rows: %w", err)
	}
	out, err := report.Render(t, rows)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, out)

	if len(args) > 1 {
		return writeCSV(args[1], t, rows)
	}
	return nil
}

func writeCSV(path string, t models.ReportType, rows []report.Row) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close csv file: %w", cerr)
		}
	}()
	return report.WriteCSV(f, t, rows)
}

// vault recent
func (a *App) recent(ctx context.Context, _ []string) error {
	vaults, err := a.services.Vault.Recent(ctx)
	if err != nil {
		return err
	}
	if len(vaults) == 0 {
		fmt.Fprintln(a.out, "No recent vaults.")
		return nil
	}
	for _, v := range vaults {
		fmt.Fprintf(a.out, "%s  %s\n", v.OpenedAt.Local().Format(recentTimeLayout), v.Path)
	}
	return nil
}

// vault version
func (a *App) version(_ context.Context, _ []string) error {
	fmt.Fprintf(a.out, "Build version: %s\n", a.buildInfo.BuildVersion())
	fmt.Fprintf(a.out, "Build date: %s\n", a.buildInfo.BuildDate())
	fmt.Fprintf(a.out, "Build commit: %s\n", a.buildInfo.BuildCommit())
	return nil
}

func reportName(t models.ReportType) string {
	if t == models.ExposedPasswordsReport {
		return "exposed passwords"
	}
	return "weak passwords"
}
