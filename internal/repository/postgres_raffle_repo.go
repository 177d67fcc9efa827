package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hitoshi/raffle/internal/model"
)

// PostgresRaffleRepo はPostgreSQLを使用した抽選リポジトリ。
type PostgresRaffleRepo struct {
	db *sql.DB
}

// NewPostgresRaffleRepo はPostgresRaffleRepoを生成する。
func NewPostgresRaffleRepo(db *sql.DB) *PostgresRaffleRepo {
	return &PostgresRaffleRepo{db: db}
}

// Create は抽選を作成する。
func (r *PostgresRaffleRepo) Create(ctx context.Context, raffle *model.Raffle) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO raffles (id, name, description, start_date, end_date, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		raffle.ID, raffle.Name, raffle.Description, raffle.StartDate, raffle.EndDate, raffle.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert raffle: %w", err)
	}
	return nil
}

// FindByID は指定IDの抽選をエントリID一覧付きで取得する。見つからない場合はnilを返す。
// エントリは抽選レコードに埋め込まず、entriesテーブルから都度集める。
func (r *PostgresRaffleRepo) FindByID(ctx context.Context, id string) (*model.Raffle, error) {
	raffle := &model.Raffle{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, start_date, end_date, created_at
		 FROM raffles WHERE id = $1`,
		id,
	).Scan(&raffle.ID, &raffle.Name, &raffle.Description, &raffle.StartDate, &raffle.EndDate, &raffle.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find raffle by ID: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM entries WHERE raffle_id = $1 ORDER BY created_at, id`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list raffle entry IDs: %w", err)
	}
	defer rows.Close()

	raffle.EntryIDs = []string{}
	for rows.Next() {
		var entryID string
		if err := rows.Scan(&entryID); err != nil {
			return nil, fmt.Errorf("failed to scan entry ID: %w", err)
		}
		raffle.EntryIDs = append(raffle.EntryIDs, entryID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entry IDs: %w", err)
	}

	return raffle, nil
}

// compile-time interface check
var _ RaffleRepository = (*PostgresRaffleRepo)(nil)
