package model

import "time"

// Raffle は期間付きの抽選を表す。
// 作成後は更新されない。エントリはentriesテーブル側から参照される。
type Raffle struct {
	ID          string
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	EntryIDs    []string
	CreatedAt   time.Time
}

// IsActiveAt は指定時刻が抽選の受付期間 [StartDate, EndDate] に含まれるかを返す。
// 境界値は受付期間に含む。
func (r *Raffle) IsActiveAt(t time.Time) bool {
	return !t.Before(r.StartDate) && !t.After(r.EndDate)
}

// Entry は抽選への参加記録を表す。
// 作成後は変更・削除されない。
type Entry struct {
	ID           string
	RaffleID     string
	UserID       string
	TicketNumber int
	CreatedAt    time.Time
}

// TicketMode はチケット番号の採番方式を表す。
type TicketMode string

const (
	// TicketModeRandom は0〜99から一様乱数で番号を引く。同一抽選内での重複はあり得る。
	TicketModeRandom TicketMode = "random"
	// TicketModeSequential は抽選ごとに0から連番で採番する。番号は抽選内で一意になる。
	TicketModeSequential TicketMode = "sequential"
)

// 乱数採番時のチケット番号の範囲（両端を含む）。
const (
	MinTicketNumber = 0
	MaxTicketNumber = 99
)
