package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hitoshi/raffle/internal/database"
	"github.com/hitoshi/raffle/internal/model"
)

// raffleForeignKey はentries.raffle_idの外部キー制約名。
const raffleForeignKey = "entries_raffle_id_fkey"

// PostgresEntryRepo はPostgreSQLを使用したエントリリポジトリ。
type PostgresEntryRepo struct {
	db *sql.DB
}

// NewPostgresEntryRepo はPostgresEntryRepoを生成する。
func NewPostgresEntryRepo(db *sql.DB) *PostgresEntryRepo {
	return &PostgresEntryRepo{db: db}
}

// Create はエントリを1行INSERTする。抽選レコードは更新しない。
func (r *PostgresEntryRepo) Create(ctx context.Context, entry *model.Entry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO entries (id, raffle_id, user_id, ticket_number, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.RaffleID, entry.UserID, entry.TicketNumber, entry.CreatedAt,
	)
	if database.IsForeignKeyViolationOn(err, raffleForeignKey) {
		return ErrRaffleNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

// CreateSequential は抽選行をFOR UPDATEでロックし、抽選内の最大番号+1を採番してINSERTする。
// 同一抽選への並行リクエストはロックで直列化されるため番号は重複しない。
func (r *PostgresEntryRepo) CreateSequential(ctx context.Context, entry *model.Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var locked string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM raffles WHERE id = $1 FOR UPDATE`,
		entry.RaffleID,
	).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRaffleNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock raffle: %w", err)
	}

	var next int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(ticket_number) + 1, 0) FROM entries WHERE raffle_id = $1`,
		entry.RaffleID,
	).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to compute next ticket number: %w", err)
	}
	entry.TicketNumber = next

	_, err = tx.ExecContext(ctx,
		`INSERT INTO entries (id, raffle_id, user_id, ticket_number, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.RaffleID, entry.UserID, entry.TicketNumber, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListByRaffle は抽選のエントリを作成順に返す。
func (r *PostgresEntryRepo) ListByRaffle(ctx context.Context, raffleID string) ([]*model.Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, raffle_id, user_id, ticket_number, created_at
		 FROM entries WHERE raffle_id = $1
		 ORDER BY created_at, id`,
		raffleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []*model.Entry
	for rows.Next() {
		e := &model.Entry{}
		if err := rows.Scan(&e.ID, &e.RaffleID, &e.UserID, &e.TicketNumber, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return entries, nil
}

// compile-time interface check
var _ EntryRepository = (*PostgresEntryRepo)(nil)
