// Package raffle は抽選の作成・取得（Raffle Registry）を提供する。
package raffle

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/hitoshi/raffle/internal/model"
	"github.com/hitoshi/raffle/internal/repository"
)

// maxNameLength はraffles.nameカラムの長さに合わせる。
const maxNameLength = 255

// MarkupDetector はプレーンテキスト入力にHTMLが含まれるかを判定するインターフェース。
type MarkupDetector interface {
	ContainsMarkup(input string) bool
}

// RaffleRecorder は抽選作成をメトリクスに記録するインターフェース。
type RaffleRecorder interface {
	RecordRaffleCreated()
}

// CreateInput は抽選作成の入力値。
type CreateInput struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
}

// Registry は抽選の作成と取得を行う。更新・削除は提供しない。
type Registry struct {
	repo      repository.RaffleRepository
	markup    MarkupDetector
	metrics   RaffleRecorder
	now       func() time.Time
}

// NewRegistry はRegistryを生成する。metricsはnilでもよい。
func NewRegistry(repo repository.RaffleRepository, markup MarkupDetector, metrics RaffleRecorder) *Registry {
	return &Registry{
		repo:      repo,
		markup:    markup,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Create は入力を検証して抽選を作成する。
// 名前と説明は受け取ったまま保存する。空白のみの値は空とみなす。
// 作成直後の抽選はエントリを持たない。
func (r *Registry) Create(ctx context.Context, in CreateInput) (*model.Raffle, error) {
	name := in.Name
	description := in.Description

	switch {
	case strings.TrimSpace(name) == "":
		return nil, model.NewValidationError("抽選名は必須です")
	case utf8.RuneCountInString(name) > maxNameLength:
		return nil, model.NewValidationError("抽選名が長すぎます")
	case strings.TrimSpace(description) == "":
		return nil, model.NewValidationError("説明は必須です")
	case in.StartDate.IsZero() || in.EndDate.IsZero():
		return nil, model.NewValidationError("開始日時と終了日時は必須です")
	case in.EndDate.Before(in.StartDate):
		return nil, model.NewValidationError("終了日時は開始日時以降にしてください")
	}

	raffle := &model.Raffle{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		StartDate:   in.StartDate.UTC(),
		EndDate:     in.EndDate.UTC(),
		EntryIDs:    []string{},
		CreatedAt:   r.now().UTC(),
	}

	if err := r.repo.Create(ctx, raffle); err != nil {
		return nil, model.NewPersistenceError(err)
	}

	if r.metrics != nil {
		r.metrics.RecordRaffleCreated()
	}
	slog.Info("raffle created",
		slog.String("raffle_id", raffle.ID),
		slog.Time("start_date", raffle.StartDate),
		slog.Time("end_date", raffle.EndDate),
	)
	r.warnMarkup(raffle.ID, "name", name)
	r.warnMarkup(raffle.ID, "description", description)

	return raffle, nil
}

// warnMarkup はHTMLを含む入力を記録する。値は書き換えず、レスポンスのJSONエンコードでエスケープされる。
func (r *Registry) warnMarkup(raffleID, field, value string) {
	if r.markup == nil || !r.markup.ContainsMarkup(value) {
		return
	}
	slog.Warn("raffle text contains markup",
		slog.String("raffle_id", raffleID),
		slog.String("field", field),
	)
}

// Get は指定IDの抽選を取得する。
// UUIDとして解釈できないIDは存在しない抽選として扱う。
func (r *Registry) Get(ctx context.Context, id string) (*model.Raffle, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, notFound(id)
	}

	raffle, err := r.repo.FindByID(ctx, id)
	if err != nil {
		return nil, model.NewPersistenceError(err)
	}
	if raffle == nil {
		return nil, notFound(id)
	}
	if raffle.EntryIDs == nil {
		raffle.EntryIDs = []string{}
	}
	return raffle, nil
}

func notFound(id string) error {
	slog.Info("raffle not found", slog.String("raffle_id", id))
	return model.NewRaffleNotFoundError()
}
