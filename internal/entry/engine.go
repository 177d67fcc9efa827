// Package entry は抽選への参加受付（Entry Admission Engine）を提供する。
//
// 受付の流れ:
//  1. 抽選を解決する（存在しなければNotFound）
//  2. 現在時刻が受付期間内か確認する（期間外はInactive）
//  3. チケット番号を採番する
//  4. エントリを1行INSERTする（失敗時はPersistenceError、部分的な反映はない）
//
// 抽選レコードは書き換えない。同じユーザーが2回呼べば2件のエントリになる。
package entry

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/raffle/internal/model"
	"github.com/hitoshi/raffle/internal/repository"
)

// 拒否理由（メトリクスのラベル）
const (
	RejectNotFound    = "not_found"
	RejectInactive    = "inactive"
	RejectPersistence = "persistence"
)

// RaffleFinder は抽選取得インターフェース。
type RaffleFinder interface {
	FindByID(ctx context.Context, id string) (*model.Raffle, error)
}

// EntryRecorder は受付結果をメトリクスに記録するインターフェース。
type EntryRecorder interface {
	RecordEntryAdmitted()
	RecordEntryRejected(reason string)
}

// Engine は抽選への参加を受け付ける。
type Engine struct {
	raffles RaffleFinder
	entries repository.EntryRepository
	mode    model.TicketMode
	metrics EntryRecorder
	now     func() time.Time
	draw    func() int
}

// NewEngine はEngineを生成する。modeが空の場合はrandomになる。metricsはnilでもよい。
func NewEngine(raffles RaffleFinder, entries repository.EntryRepository, mode model.TicketMode, metrics EntryRecorder) *Engine {
	if mode == "" {
		mode = model.TicketModeRandom
	}
	return &Engine{
		raffles: raffles,
		entries: entries,
		mode:    mode,
		metrics: metrics,
		now:     time.Now,
		draw:    drawTicket,
	}
}

// drawTicket は[MinTicketNumber, MaxTicketNumber]から一様に番号を引く。
func drawTicket() int {
	return model.MinTicketNumber + rand.IntN(model.MaxTicketNumber-model.MinTicketNumber+1)
}

// Admit は認証済みユーザーを抽選に参加させ、作成したエントリを返す。
func (e *Engine) Admit(ctx context.Context, raffleID string, identity *model.Identity) (*model.Entry, error) {
	if identity == nil || identity.ID == "" {
		return nil, model.NewUnauthorizedError()
	}

	if _, err := uuid.Parse(raffleID); err != nil {
		return nil, e.notFound(raffleID)
	}

	raffle, err := e.raffles.FindByID(ctx, raffleID)
	if err != nil {
		e.reject(RejectPersistence)
		return nil, model.NewPersistenceError(err)
	}
	if raffle == nil {
		return nil, e.notFound(raffleID)
	}

	now := e.now().UTC()
	if !raffle.IsActiveAt(now) {
		e.reject(RejectInactive)
		return nil, model.NewRaffleInactiveError()
	}

	entry := &model.Entry{
		ID:        uuid.NewString(),
		RaffleID:  raffle.ID,
		UserID:    identity.ID,
		CreatedAt: now,
	}

	if e.mode == model.TicketModeSequential {
		err = e.entries.CreateSequential(ctx, entry)
	} else {
		entry.TicketNumber = e.draw()
		err = e.entries.Create(ctx, entry)
	}
	if errors.Is(err, repository.ErrRaffleNotFound) {
		return nil, e.notFound(raffleID)
	}
	if err != nil {
		e.reject(RejectPersistence)
		return nil, model.NewPersistenceError(err)
	}

	if e.metrics != nil {
		e.metrics.RecordEntryAdmitted()
	}
	slog.Info("entry admitted",
		slog.String("raffle_id", entry.RaffleID),
		slog.String("user_id", entry.UserID),
		slog.String("entry_id", entry.ID),
		slog.Int("ticket_number", entry.TicketNumber),
	)

	return entry, nil
}

// notFound は未検出として記録し、IDを含まないエラーを返す。
func (e *Engine) notFound(raffleID string) error {
	e.reject(RejectNotFound)
	slog.Info("entry rejected: raffle not found", slog.String("raffle_id", raffleID))
	return model.NewRaffleNotFoundError()
}

func (e *Engine) reject(reason string) {
	if e.metrics != nil {
		e.metrics.RecordEntryRejected(reason)
	}
}
