package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/raffle/internal/model"
)

// RevocationStore はログアウト済みトークンの失効リストのインターフェース。
// repository.RevokedTokenRepositoryの部分集合として定義する。
type RevocationStore interface {
	Revoke(ctx context.Context, token *model.RevokedToken) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// LoginRecorder はログイン結果をメトリクスに記録するインターフェース。
type LoginRecorder interface {
	RecordLogin(success bool)
}

// Session はログイン成功時に返すセッション情報。
type Session struct {
	Token     string
	ExpiresAt time.Time
	Identity  *model.Identity
}

// Service はログイン・トークン検証・ログアウトのビジネスロジックを提供する。
// トークン自体の検証は純粋関数で、失効リストは別の協調オブジェクトとして参照する。
type Service struct {
	verifier *Verifier
	issuer   *TokenIssuer
	revoked  RevocationStore
	metrics  LoginRecorder
	now      func() time.Time
}

// NewService はServiceを生成する。revokedとmetricsはnilでもよい。
func NewService(verifier *Verifier, issuer *TokenIssuer, revoked RevocationStore, metrics LoginRecorder) *Service {
	return &Service{
		verifier: verifier,
		issuer:   issuer,
		revoked:  revoked,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Login は認証情報を検証し、セッショントークンを発行する。
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	identity, err := s.verifier.Verify(ctx, username, password)
	if err != nil {
		s.recordLogin(false)
		return nil, err
	}

	issued, err := s.issuer.Issue(identity)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	s.recordLogin(true)
	slog.Info("user logged in", slog.String("user_id", identity.ID))

	return &Session{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
		Identity:  identity,
	}, nil
}

// Authenticate はトークンを検証し、認証済みIdentityを返す。
// 失効リストに含まれるトークンも期限切れと同じSessionInvalidエラーになる。
func (s *Service) Authenticate(ctx context.Context, token string) (*model.Identity, error) {
	validated, err := s.issuer.Validate(token)
	if err != nil {
		return nil, err
	}

	if s.revoked != nil {
		revoked, err := s.revoked.IsRevoked(ctx, validated.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check token revocation: %w", err)
		}
		if revoked {
			return nil, model.NewSessionInvalidError()
		}
	}

	return validated.Identity, nil
}

// Logout はトークンを失効リストに追加する。
// 無効なトークンや失効リスト未設定の場合は何もしない。
func (s *Service) Logout(ctx context.Context, token string) error {
	if s.revoked == nil {
		return nil
	}

	validated, err := s.issuer.Validate(token)
	if err != nil {
		return nil
	}

	if err := s.revoked.Revoke(ctx, &model.RevokedToken{
		ID:        validated.ID,
		UserID:    validated.Identity.ID,
		ExpiresAt: validated.ExpiresAt,
		RevokedAt: s.now(),
	}); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	slog.Info("user logged out", slog.String("user_id", validated.Identity.ID))
	return nil
}

func (s *Service) recordLogin(success bool) {
	if s.metrics != nil {
		s.metrics.RecordLogin(success)
	}
}
