// Package security はアプリケーションのセキュリティ機能を提供する。
//
// Hasher はbcryptによるパスワードの一方向ハッシュ化と照合を行う。
// MarkupDetector は利用者が入力したテキストにHTMLが含まれるかを判定する。
package security

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher はbcryptでパスワードをハッシュ化・照合する。
// 平文パスワードをログ出力や永続化してはならない。
type Hasher struct {
	Cost int
}

// NewHasher は指定コストのHasherを返す。
// 0以下はbcrypt.DefaultCost、範囲外はMinCost〜MaxCostに丸める。
func NewHasher(cost int) *Hasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Hasher{Cost: cost}
}

// Hash はパスワードのbcryptハッシュを返す。
func (h *Hasher) Hash(password []byte) (string, error) {
	b, err := bcrypt.GenerateFromPassword(password, h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare は保存済みハッシュとパスワードを定数時間で照合する。
// 一致すればnil、不一致またはハッシュ不正の場合はエラーを返す。
func (h *Hasher) Compare(hash string, password []byte) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), password)
}
