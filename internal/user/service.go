// Package user はユーザー管理のドメインロジックを提供する。
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/hitoshi/raffle/internal/auth"
	"github.com/hitoshi/raffle/internal/model"
	"github.com/hitoshi/raffle/internal/repository"
)

// minPasswordLength はパスワードの最小文字数。
const minPasswordLength = 8

// maxEmailLength はusers.emailカラムの長さに合わせる。
const maxEmailLength = 320

// PasswordHasher はパスワードのハッシュ化インターフェース。
type PasswordHasher interface {
	Hash(password []byte) (string, error)
}

// Service はユーザー管理のサービス層。
// ユーザー登録のビジネスロジックを提供する。登録はCLI（adduser）からのみ呼ばれる。
type Service struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	now      func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(userRepo repository.UserRepository, hasher PasswordHasher) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
		now:      time.Now,
	}
}

// Register はユーザーを登録する。
// メールアドレスは正規化して保存し、パスワードはハッシュのみ永続化する。
func (s *Service) Register(ctx context.Context, email, name, password string) (*model.User, error) {
	email = auth.NormalizeEmail(email)
	name = strings.TrimSpace(name)

	switch {
	case email == "" || !strings.Contains(email, "@"):
		return nil, model.NewValidationError("メールアドレスの形式が正しくありません")
	case len(email) > maxEmailLength:
		return nil, model.NewValidationError("メールアドレスが長すぎます")
	case name == "":
		return nil, model.NewValidationError("名前は必須です")
	case utf8.RuneCountInString(password) < minPasswordLength:
		return nil, model.NewValidationError(fmt.Sprintf("パスワードは%d文字以上必要です", minPasswordLength))
	}

	hash, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return nil, fmt.Errorf("パスワードのハッシュ化に失敗しました: %w", err)
	}

	now := s.now().UTC()
	u := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, model.NewValidationError("このメールアドレスは登録済みです")
		}
		return nil, fmt.Errorf("ユーザーの作成に失敗しました: %w", err)
	}

	slog.Info("ユーザーを登録しました",
		slog.String("user_id", u.ID),
	)

	return u, nil
}
