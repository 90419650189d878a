// Package sqlite implements the companies.Repo interface using
// modernc.org/sqlite. The schema is created automatically on open.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/genuka/app-shell/companies"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// Repo is a SQLite-backed company store.
type Repo struct {
	db *sql.DB
}

var _ companies.Repo = (*Repo)(nil)

// New opens (or creates) the database at the given path. Parent
// directories are created if needed.
func New(path string) (*Repo, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	r := &Repo{db: db}
	if err := r.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	log.Info().Str("path", path).Msg("Company store initialized")
	return r, nil
}

func (r *Repo) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS companies (
			id                 TEXT PRIMARY KEY,
			handle             TEXT NOT NULL,
			name               TEXT NOT NULL,
			description        TEXT,
			authorization_code TEXT,
			access_token       TEXT,
			logo_url           TEXT,
			phone              TEXT,
			created_at         DATETIME NOT NULL,
			updated_at         DATETIME NOT NULL
		);

		CREATE UNIQUE INDEX IF NOT EXISTS idx_companies_handle
			ON companies(handle);
	`
	_, err := r.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (r *Repo) Close() error {
	return r.db.Close()
}

// Upsert creates or updates a company record in a single transaction.
// A row matched by ID is updated in place; otherwise a row matched by
// Handle is updated (including its ID, which the platform may reassign);
// otherwise a new row is inserted.
func (r *Repo) Upsert(ctx context.Context, company *companies.Company) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning upsert transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	res, err := tx.ExecContext(ctx, `
		UPDATE companies
		SET handle = ?, name = ?, description = ?, authorization_code = ?,
		    access_token = ?, logo_url = ?, phone = ?, updated_at = ?
		WHERE id = ?`,
		company.Handle, company.Name, company.Description, company.AuthorizationCode,
		company.AccessToken, company.LogoURL, company.Phone, now, company.ID)
	if err != nil {
		return fmt.Errorf("updating company by id: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if affected == 0 {
		res, err = tx.ExecContext(ctx, `
			UPDATE companies
			SET id = ?, name = ?, description = ?, authorization_code = ?,
			    access_token = ?, logo_url = ?, phone = ?, updated_at = ?
			WHERE handle = ?`,
			company.ID, company.Name, company.Description, company.AuthorizationCode,
			company.AccessToken, company.LogoURL, company.Phone, now, company.Handle)
		if err != nil {
			return fmt.Errorf("updating company by handle: %w", err)
		}
		affected, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("reading affected rows: %w", err)
		}
	}

	if affected == 0 {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO companies
				(id, handle, name, description, authorization_code,
				 access_token, logo_url, phone, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			company.ID, company.Handle, company.Name, company.Description,
			company.AuthorizationCode, company.AccessToken, company.LogoURL,
			company.Phone, now, now)
		if err != nil {
			return fmt.Errorf("inserting company: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing upsert: %w", err)
	}
	return nil
}

// Get retrieves a company by its platform ID.
func (r *Repo) Get(ctx context.Context, id string) (*companies.Company, error) {
	return r.getWhere(ctx, "id = ?", id)
}

// GetByHandle retrieves a company by its handle.
func (r *Repo) GetByHandle(ctx context.Context, handle string) (*companies.Company, error) {
	return r.getWhere(ctx, "handle = ?", handle)
}

func (r *Repo) getWhere(ctx context.Context, where string, arg any) (*companies.Company, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, handle, name, description, authorization_code,
		       access_token, logo_url, phone, created_at, updated_at
		FROM companies WHERE `+where, arg)

	company, err := scanCompany(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, companies.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying company: %w", err)
	}
	return company, nil
}

// Delete removes a company by ID. Deleting an absent company is not an
// error.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM companies WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting company: %w", err)
	}
	return nil
}

// List returns companies ordered by creation time.
func (r *Repo) List(ctx context.Context, offset, limit int) ([]*companies.Company, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, handle, name, description, authorization_code,
		       access_token, logo_url, phone, created_at, updated_at
		FROM companies ORDER BY created_at, id LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	defer rows.Close()

	var result []*companies.Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning company: %w", err)
		}
		result = append(result, company)
	}
	return result, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCompany(row scanner) (*companies.Company, error) {
	var c companies.Company
	var description, authCode, accessToken, logoURL, phone sql.NullString
	err := row.Scan(&c.ID, &c.Handle, &c.Name, &description, &authCode,
		&accessToken, &logoURL, &phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Description = description.String
	c.AuthorizationCode = authCode.String
	c.AccessToken = accessToken.String
	c.LogoURL = logoURL.String
	c.Phone = phone.String
	return &c, nil
}
