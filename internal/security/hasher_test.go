package security

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestNewHasher_ClampsCost(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"zero uses default", 0, bcrypt.DefaultCost},
		{"negative uses default", -1, bcrypt.DefaultCost},
		{"below min", 1, bcrypt.MinCost},
		{"above max", 99, bcrypt.MaxCost},
		{"in range", 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewHasher(tt.in).Cost; got != tt.want {
				t.Errorf("NewHasher(%d).Cost = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestHasher_HashAndCompare(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash([]byte("correct horse"))
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if hash == "correct horse" {
		t.Fatal("hash must not equal plaintext")
	}

	if err := h.Compare(hash, []byte("correct horse")); err != nil {
		t.Errorf("Compare with correct password = %v, want nil", err)
	}
	if err := h.Compare(hash, []byte("wrong")); err == nil {
		t.Error("Compare with wrong password should fail")
	}
	if err := h.Compare("not-a-hash", []byte("correct horse")); err == nil {
		t.Error("Compare with malformed hash should fail")
	}
}
