package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/contaec/contaledger/internal/domain"
	"github.com/contaec/contaledger/internal/usecase"
)

const pgErrUniqueViolation = "23505"

// JournalEntryRepository implements usecase.JournalEntryRepository.
type JournalEntryRepository struct {
	pool *pgxpool.Pool
}

// NewJournalEntryRepository creates a new JournalEntryRepository.
func NewJournalEntryRepository(pool *pgxpool.Pool) *JournalEntryRepository {
	return &JournalEntryRepository{pool: pool}
}

const entryColumns = `id, company_id, date, reference, description, created_by, created_at`

// Create inserts the header and all lines inside tx. The unique
// constraint on (company_id, reference) turns a concurrent double post
// into domain.ErrDuplicateEntry.
func (r *JournalEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	pgxTx := txFrom(tx)

	headerQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := pgxTx.Exec(ctx, headerQuery,
		entry.ID,
		entry.CompanyID,
		timeToPgTimestamptz(entry.Date),
		entry.Reference,
		entry.Description,
		entry.CreatedBy,
		timeToPgTimestamptz(entry.CreatedAt),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrDuplicateEntry
		}

		return err
	}

	lineQuery := `
		INSERT INTO journal_entry_lines (
			id, entry_id, account_id, account_code, debit, credit,
			description, document_type, auxiliary_code, auxiliary_name, position
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	for i, line := range entry.Lines {
		_, err := pgxTx.Exec(ctx, lineQuery,
			line.ID,
			entry.ID,
			line.AccountID,
			line.AccountCode,
			decimalToNumeric(line.Debit),
			decimalToNumeric(line.Credit),
			line.Description,
			line.DocumentType,
			line.AuxiliaryCode,
			line.AuxiliaryName,
			i,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves an entry with its lines.
func (r *JournalEntryRepository) GetByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE id = $1`
	return r.getEntry(ctx, query, id)
}

// GetByReference retrieves an entry by its idempotency key.
func (r *JournalEntryRepository) GetByReference(ctx context.Context, companyID, reference string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE company_id = $1 AND reference = $2`
	return r.getEntry(ctx, query, companyID, reference)
}

// GetByReferenceForUpdate locks the entry row inside tx so concurrent
// posters serialize on the reference.
func (r *JournalEntryRepository) GetByReferenceForUpdate(ctx context.Context, tx usecase.Transaction, companyID, reference string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE company_id = $1 AND reference = $2
		FOR UPDATE
	`

	entry, err := scanEntry(txFrom(tx).QueryRow(ctx, query, companyID, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	entry.Lines, err = r.getEntryLines(ctx, entry.ID)
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// SumDebitsAndCredits totals both sides of every line in the ledger.
func (r *JournalEntryRepository) SumDebitsAndCredits(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0) FROM journal_entry_lines`

	var debits, credits pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query).Scan(&debits, &credits); err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(debits), numericToDecimal(credits), nil
}

func (r *JournalEntryRepository) getEntry(ctx context.Context, query string, args ...any) (*domain.JournalEntry, error) {
	entry, err := scanEntry(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	entry.Lines, err = r.getEntryLines(ctx, entry.ID)
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (r *JournalEntryRepository) getEntryLines(ctx context.Context, entryID string) ([]*domain.JournalEntryLine, error) {
	query := `
		SELECT id, entry_id, account_id, account_code, debit, credit,
		       description, document_type, auxiliary_code, auxiliary_name
		FROM journal_entry_lines
		WHERE entry_id = $1
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*domain.JournalEntryLine
	for rows.Next() {
		var line domain.JournalEntryLine
		var debit, credit pgtype.Numeric
		err := rows.Scan(
			&line.ID,
			&line.EntryID,
			&line.AccountID,
			&line.AccountCode,
			&debit,
			&credit,
			&line.Description,
			&line.DocumentType,
			&line.AuxiliaryCode,
			&line.AuxiliaryName,
		)
		if err != nil {
			return nil, err
		}

		line.Debit = numericToDecimal(debit)
		line.Credit = numericToDecimal(credit)
		lines = append(lines, &line)
	}

	return lines, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := row.Scan(
		&e.ID,
		&e.CompanyID,
		&e.Date,
		&e.Reference,
		&e.Description,
		&e.CreatedBy,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &e, nil
}
