// Package auth はパスワード認証、セッショントークンの発行・検証を提供する。
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hitoshi/raffle/internal/model"
)

// UserFinder は認証に必要なユーザー検索インターフェース。
// repository.UserRepositoryの部分集合として定義する。
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// PasswordComparer はハッシュ化済みパスワードとの照合インターフェース。
type PasswordComparer interface {
	Hash(password []byte) (string, error)
	Compare(hash string, password []byte) error
}

// Verifier は識別子（メールアドレス）とパスワードを検証し、認証済みIdentityを返す。
// 読み取り専用で副作用を持たない。
type Verifier struct {
	users     UserFinder
	hasher    PasswordComparer
	dummyHash string
}

// NewVerifier はVerifierを生成する。
// ユーザー不在時にも照合処理を行うためのダミーハッシュをここで1回だけ計算する。
func NewVerifier(users UserFinder, hasher PasswordComparer) (*Verifier, error) {
	dummy, err := hasher.Hash([]byte("raffle-dummy-password"))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}
	return &Verifier{
		users:     users,
		hasher:    hasher,
		dummyHash: dummy,
	}, nil
}

// Verify は識別子とパスワードを検証する。
// ユーザー不在とパスワード不一致はどちらも同じInvalidCredentialsエラーを返し、
// 所要時間もbcrypt照合1回分で揃える。ストア障害はそのままラップして返す。
func (v *Verifier) Verify(ctx context.Context, identifier, secret string) (*model.Identity, error) {
	email := NormalizeEmail(identifier)
	if email == "" || secret == "" {
		return nil, model.NewInvalidCredentialsError()
	}

	user, err := v.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user == nil {
		_ = v.hasher.Compare(v.dummyHash, []byte(secret))
		slog.Info("login failed", slog.String("reason", "invalid_credentials"))
		return nil, model.NewInvalidCredentialsError()
	}

	if err := v.hasher.Compare(user.PasswordHash, []byte(secret)); err != nil {
		slog.Info("login failed", slog.String("reason", "invalid_credentials"))
		return nil, model.NewInvalidCredentialsError()
	}

	return model.IdentityOf(user), nil
}

// NormalizeEmail はメールアドレスを比較用に正規化する（前後空白除去・小文字化）。
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
