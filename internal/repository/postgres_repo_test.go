package repository

import (
	"testing"
)

// PostgresUserRepoはUserRepositoryインターフェースを満たすことを検証
func TestPostgresUserRepo_ImplementsInterface(t *testing.T) {
	var _ UserRepository = (*PostgresUserRepo)(nil)
}

// PostgresRaffleRepoはRaffleRepositoryインターフェースを満たすことを検証
func TestPostgresRaffleRepo_ImplementsInterface(t *testing.T) {
	var _ RaffleRepository = (*PostgresRaffleRepo)(nil)
}

// PostgresEntryRepoはEntryRepositoryインターフェースを満たすことを検証
func TestPostgresEntryRepo_ImplementsInterface(t *testing.T) {
	var _ EntryRepository = (*PostgresEntryRepo)(nil)
}

// PostgresRevokedTokenRepoはRevokedTokenRepositoryインターフェースを満たすことを検証
func TestPostgresRevokedTokenRepo_ImplementsInterface(t *testing.T) {
	var _ RevokedTokenRepository = (*PostgresRevokedTokenRepo)(nil)
}

func TestNewPostgresRepos_Initialize(t *testing.T) {
	if NewPostgresUserRepo(nil) == nil {
		t.Fatal("expected non-nil user repo")
	}
	if NewPostgresRaffleRepo(nil) == nil {
		t.Fatal("expected non-nil raffle repo")
	}
	if NewPostgresEntryRepo(nil) == nil {
		t.Fatal("expected non-nil entry repo")
	}
	if NewPostgresRevokedTokenRepo(nil) == nil {
		t.Fatal("expected non-nil revoked token repo")
	}
}
