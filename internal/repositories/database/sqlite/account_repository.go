package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/abbis_ledger/internal/apperrors"
	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/abbis_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/abbis_ledger/internal/models"
	"github.com/SscSPs/abbis_ledger/internal/utils/mapping"
	"github.com/mattn/go-sqlite3"
)

const accountColumns = `account_id, code, name, account_type, parent_account_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

const accountTypeOrder = `CASE account_type WHEN 'ASSET' THEN 1 WHEN 'LIABILITY' THEN 2 WHEN 'EQUITY' THEN 3 WHEN 'REVENUE' THEN 4 WHEN 'EXPENSE' THEN 5 ELSE 6 END`

type SQLiteAccountRepository struct {
	BaseRepository
}

func newSQLiteAccountRepository(db *sql.DB) *SQLiteAccountRepository {
	return &SQLiteAccountRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.AccountRepositoryFacade = (*SQLiteAccountRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (models.Account, error) {
	var (
		m                    models.Account
		createdAt, updatedAt string
	)
	err := row.Scan(&m.AccountID, &m.Code, &m.Name, &m.AccountType, &m.ParentAccountID, &m.IsActive,
		&createdAt, &m.CreatedBy, &updatedAt, &m.LastUpdatedBy)
	if err != nil {
		return m, err
	}
	if m.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return m, err
	}
	m.LastUpdatedAt, err = parseTimestamp(updatedAt)
	return m, err
}

// SaveAccount inserts a new account.
func (r *SQLiteAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `INSERT INTO accounts (` + accountColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
	_, err := r.DB.ExecContext(ctx, query, m.AccountID, m.Code, m.Name, string(m.AccountType), m.ParentAccountID, m.IsActive,
		formatTimestamp(m.CreatedAt), m.CreatedBy, formatTimestamp(m.LastUpdatedAt), m.LastUpdatedBy)
	if err != nil {
		switch constraintCode(err) {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			if strings.Contains(err.Error(), "accounts.code") {
				return fmt.Errorf("%w: account with code %s already exists", apperrors.ErrDuplicate, m.Code)
			}
			return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, m.AccountID)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: parent account %s", apperrors.ErrNotFound, m.ParentAccountID.String)
		}
		return apperrors.NewAppError(500, "failed to save account "+m.AccountID, err)
	}
	return nil
}

func (r *SQLiteAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ?;`
	m, err := scanAccount(r.DB.QueryRowContext(ctx, query, accountID))
	if err != nil {
		return nil, notFoundOr(err, "account", accountID)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

func (r *SQLiteAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = ?;`
	m, err := scanAccount(r.DB.QueryRowContext(ctx, query, code))
	if err != nil {
		return nil, notFoundOr(err, "account code", code)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountsByIDs retrieves every account in accountIDs keyed by ID.
func (r *SQLiteAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	result := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return result, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(accountIDs)), ",")
	args := make([]any, len(accountIDs))
	for i, id := range accountIDs {
		args[i] = id
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id IN (` + placeholders + `);`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by ids", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		result[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return result, nil
}

// ListAccounts retrieves accounts in chart order.
func (r *SQLiteAccountRepository) ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY ` + accountTypeOrder + `, code;`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return mapping.ToDomainAccountSlice(accounts), nil
}

func (r *SQLiteAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = ?, parent_account_id = ?, last_updated_at = ?, last_updated_by = ?
		WHERE account_id = ?;
	`
	res, err := r.DB.ExecContext(ctx, query, m.Name, m.ParentAccountID, formatTimestamp(m.LastUpdatedAt), m.LastUpdatedBy, m.AccountID)
	if err != nil {
		if constraintCode(err) == sqlite3.ErrConstraintForeignKey {
			return fmt.Errorf("%w: parent account %s", apperrors.ErrNotFound, m.ParentAccountID.String)
		}
		return apperrors.NewAppError(500, "failed to update account "+m.AccountID, err)
	}
	return requireRow(res, "account", m.AccountID)
}

func (r *SQLiteAccountRepository) SetAccountActive(ctx context.Context, accountID string, active bool, userID string, now time.Time) error {
	query := `UPDATE accounts SET is_active = ?, last_updated_at = ?, last_updated_by = ? WHERE account_id = ?;`
	res, err := r.DB.ExecContext(ctx, query, active, formatTimestamp(now), userID, accountID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to change status of account "+accountID, err)
	}
	return requireRow(res, "account", accountID)
}

// requireRow reports ErrNotFound when an update touched nothing.
func requireRow(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewAppError(500, "failed to read affected rows", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, what, id)
	}
	return nil
}
