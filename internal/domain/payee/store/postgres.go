// Package store provides the Postgres-backed collaborator stores consumed
// by the grouping pipeline: transfer mappings, payee aliases, accounts and
// the workspace payee list. Callers persist confirmed decisions here after
// review; the pipeline itself only reads.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ledgerline/payee-resolver/internal/domain/payee/grouper"
)

// DB is the subset of pgxpool.Pool the stores need. pgxmock satisfies it in
// tests.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// TransferMappings is the Postgres TransferMappingStore.
type TransferMappings struct {
	db DB
}

var _ grouper.TransferMappingStore = (*TransferMappings)(nil)

// NewTransferMappings creates a transfer-mapping store over db.
func NewTransferMappings(db DB) *TransferMappings {
	return &TransferMappings{db: db}
}

// FindByRawString returns the transfer mapping recorded for the exact raw
// statement string in a workspace, or nil when none exists.
func (s *TransferMappings) FindByRawString(ctx context.Context, raw string, workspaceID int64) (*grouper.TransferMapping, error) {
	query := `
		SELECT target_account_id
		FROM transfer_mappings
		WHERE workspace_id = $1 AND raw_string = $2
	`

	var targetAccountID int64
	err := s.db.QueryRow(ctx, query, workspaceID, raw).Scan(&targetAccountID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find transfer mapping: %w", err)
	}
	return &grouper.TransferMapping{TargetAccountID: targetAccountID}, nil
}

// Save records a confirmed transfer mapping. Re-confirming the same raw
// string updates the target account.
func (s *TransferMappings) Save(ctx context.Context, workspaceID int64, raw string, targetAccountID int64) error {
	query := `
		INSERT INTO transfer_mappings (workspace_id, raw_string, target_account_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (workspace_id, raw_string) DO UPDATE SET
			target_account_id = EXCLUDED.target_account_id,
			updated_at = now()
	`

	if _, err := s.db.Exec(ctx, query, workspaceID, raw, targetAccountID); err != nil {
		return fmt.Errorf("save transfer mapping: %w", err)
	}
	return nil
}

// Aliases is the Postgres AliasStore.
type Aliases struct {
	db DB
}

var _ grouper.AliasStore = (*Aliases)(nil)

// NewAliases creates an alias store over db.
func NewAliases(db DB) *Aliases {
	return &Aliases{db: db}
}

// FindByRawString returns the alias recorded for the exact raw statement
// string in a workspace, or nil when none exists.
func (s *Aliases) FindByRawString(ctx context.Context, raw string, workspaceID int64) (*grouper.PayeeAlias, error) {
	query := `
		SELECT payee_id, confidence
		FROM payee_aliases
		WHERE workspace_id = $1 AND raw_string = $2
	`

	var alias grouper.PayeeAlias
	err := s.db.QueryRow(ctx, query, workspaceID, raw).Scan(&alias.PayeeID, &alias.Confidence)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find payee alias: %w", err)
	}
	return &alias, nil
}

// Save records a confirmed alias. Re-confirming the same raw string updates
// the payee and confidence.
func (s *Aliases) Save(ctx context.Context, workspaceID int64, raw string, payeeID int64, confidence float64) error {
	query := `
		INSERT INTO payee_aliases (workspace_id, raw_string, payee_id, confidence)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (workspace_id, raw_string) DO UPDATE SET
			payee_id = EXCLUDED.payee_id,
			confidence = EXCLUDED.confidence,
			updated_at = now()
	`

	if _, err := s.db.Exec(ctx, query, workspaceID, raw, payeeID, confidence); err != nil {
		return fmt.Errorf("save payee alias: %w", err)
	}
	return nil
}

// Accounts resolves account display names.
type Accounts struct {
	db DB
}

var _ grouper.AccountLookup = (*Accounts)(nil)

// NewAccounts creates an account lookup over db.
func NewAccounts(db DB) *Accounts {
	return &Accounts{db: db}
}

// NameByID returns the account's display name.
func (s *Accounts) NameByID(ctx context.Context, accountID int64) (string, error) {
	query := `SELECT name FROM accounts WHERE id = $1`

	var name string
	if err := s.db.QueryRow(ctx, query, accountID).Scan(&name); err != nil {
		return "", fmt.Errorf("lookup account name: %w", err)
	}
	return name, nil
}

// Payees reads and writes the workspace payee table.
type Payees struct {
	db DB
}

// NewPayees creates a payee store over db.
func NewPayees(db DB) *Payees {
	return &Payees{db: db}
}

// ListByWorkspace returns all payees known in a workspace, ordered by name.
func (s *Payees) ListByWorkspace(ctx context.Context, workspaceID int64) ([]grouper.Payee, error) {
	query := `
		SELECT id, name
		FROM payees
		WHERE workspace_id = $1
		ORDER BY name
	`

	rows, err := s.db.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list payees: %w", err)
	}
	defer rows.Close()

	var payees []grouper.Payee
	for rows.Next() {
		var p grouper.Payee
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scan payee: %w", err)
		}
		payees = append(payees, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list payees: %w", err)
	}
	return payees, nil
}

// Create inserts a payee with the given canonical name and returns its id.
func (s *Payees) Create(ctx context.Context, workspaceID int64, name string) (int64, error) {
	query := `
		INSERT INTO payees (workspace_id, name)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	if err := s.db.QueryRow(ctx, query, workspaceID, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("create payee: %w", err)
	}
	return id, nil
}
