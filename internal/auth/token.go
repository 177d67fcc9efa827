package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hitoshi/raffle/internal/model"
)

// SessionLifetime はセッショントークンの有効期間。設定では変更できない。
const SessionLifetime = 30 * 24 * time.Hour

// tokenIssuer はトークンのissクレーム。
const tokenIssuer = "raffle"

// minSecretLength はHS256署名鍵の最小長（バイト）。
const minSecretLength = 32

// SessionClaims はセッショントークンのクレーム。
// 登録済みクレーム（sub, exp, iat, jti, iss）に加えて表示名とメールアドレスを持つ。
type SessionClaims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
}

// IssuedToken は発行済みトークンとそのメタデータ。
type IssuedToken struct {
	Token     string
	ID        string
	ExpiresAt time.Time
}

// ValidatedToken は検証済みトークンから取り出した内容。
type ValidatedToken struct {
	Identity  *model.Identity
	ID        string
	ExpiresAt time.Time
}

// TokenIssuer は認証済みIdentityを署名付きトークンに変換し、検証する。
// データベースにはアクセスしない純粋な変換。
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

// NewTokenIssuer はHS256で署名するTokenIssuerを生成する。
func NewTokenIssuer(secret string) (*TokenIssuer, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("session secret must be at least %d bytes", minSecretLength)
	}
	return &TokenIssuer{secret: []byte(secret), now: time.Now}, nil
}

// Issue はIdentityから30日有効なトークンを発行する。
func (p *TokenIssuer) Issue(identity *model.Identity) (*IssuedToken, error) {
	if identity == nil || identity.ID == "" {
		return nil, errors.New("identity is required")
	}

	now := p.now().UTC()
	expiresAt := now.Add(SessionLifetime)
	jti := uuid.NewString()

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   identity.ID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Name:  identity.Name,
		Email: identity.Email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &IssuedToken{
		Token:     signed,
		ID:        jti,
		ExpiresAt: expiresAt,
	}, nil
}

// Validate はトークンの署名・期限・発行者を検証する。
// 失敗理由にかかわらず常にSessionInvalidエラーを返す。
func (p *TokenIssuer) Validate(token string) (*ValidatedToken, error) {
	if token == "" {
		return nil, model.NewSessionInvalidError()
	}

	var claims SessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil || !parsed.Valid {
		return nil, model.NewSessionInvalidError()
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, model.NewSessionInvalidError()
	}

	return &ValidatedToken{
		Identity: &model.Identity{
			ID:    claims.Subject,
			Name:  claims.Name,
			Email: claims.Email,
		},
		ID:        claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
