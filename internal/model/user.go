// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// Emailはログイン時の識別子として一意に扱う。
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity は認証済みのユーザー情報を表す。
// セッショントークンに含まれる内容と一致する。
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// IdentityOf はUserから認証済みIdentityを生成する。
func IdentityOf(u *User) *Identity {
	if u == nil {
		return nil
	}
	return &Identity{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// RevokedToken はログアウトにより失効させたセッショントークンを表す。
// IDはトークンのjtiクレーム。ExpiresAtを過ぎたレコードは削除してよい。
type RevokedToken struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	RevokedAt time.Time
}
