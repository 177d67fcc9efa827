// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/hitoshi/raffle/internal/model"
)

// ErrDuplicateEmail は登録済みのメールアドレスでユーザーを作成しようとした場合に返る。
var ErrDuplicateEmail = errors.New("email already registered")

// ErrRaffleNotFound はエントリ作成時に参照先の抽選が存在しない場合に返る。
var ErrRaffleNotFound = errors.New("raffle not found")

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを取得する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。メールアドレス重複時はErrDuplicateEmailを返す。
	Create(ctx context.Context, user *model.User) error
}

// RaffleRepository は抽選データの永続化インターフェース。
// 更新・削除は提供しない。
type RaffleRepository interface {
	// Create は抽選を作成する。
	Create(ctx context.Context, raffle *model.Raffle) error

	// FindByID は指定IDの抽選をエントリID一覧付きで取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Raffle, error)
}

// EntryRepository は抽選エントリの永続化インターフェース。
// エントリは作成のみで、変更・削除は行わない。
type EntryRepository interface {
	// Create はエントリを1行INSERTする。抽選レコードは更新しない。
	// 参照先の抽選が存在しない場合はErrRaffleNotFoundを返す。
	Create(ctx context.Context, entry *model.Entry) error

	// CreateSequential は抽選行をロックした上で次の連番をentry.TicketNumberに設定してINSERTする。
	// 抽選が存在しない場合はErrRaffleNotFoundを返す。
	CreateSequential(ctx context.Context, entry *model.Entry) error

	// ListByRaffle は抽選のエントリを作成順に返す。
	ListByRaffle(ctx context.Context, raffleID string) ([]*model.Entry, error)
}

// RevokedTokenRepository はログアウト済みトークンの失効リスト。
type RevokedTokenRepository interface {
	// Revoke はトークンIDを失効リストに追加する。登録済みの場合は何もしない。
	Revoke(ctx context.Context, token *model.RevokedToken) error

	// IsRevoked はトークンIDが失効リストに含まれるかを返す。
	IsRevoked(ctx context.Context, tokenID string) (bool, error)

	// DeleteExpired はexpires_atが指定時刻より前のレコードを削除し、削除件数を返す。
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// TxBeginner はトランザクション開始用のインターフェース。
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}
