package roles

import (
	"errors"
	"testing"

	"github.com/rekabarchive/memorial-service/internal/storage"
	"github.com/rekabarchive/memorial-service/internal/types"
)

type fakeStorage struct {
	storage.Storage
	role  types.Role
	err   error
	calls int
}

func (f *fakeStorage) GetUserRole(userID string) (types.Role, error) {
	f.calls++
	return f.role, f.err
}

func TestResolve_AdminRole(t *testing.T) {
	fake := &fakeStorage{role: types.RoleAdmin}
	resolver := NewResolver(fake)

	if got := resolver.Resolve("user-1"); got != types.RoleAdmin {
		t.Errorf("Expected admin role, got %q", got)
	}
	if !resolver.IsAdmin("user-1") {
		t.Error("Expected IsAdmin to be true for admin role")
	}
}

func TestResolve_NoRowDefaultsToBaseline(t *testing.T) {
	fake := &fakeStorage{err: storage.ErrNoRow}
	resolver := NewResolver(fake)

	if got := resolver.Resolve("user-1"); got != types.RoleUser {
		t.Errorf("Expected baseline role on missing row, got %q", got)
	}
}

func TestResolve_LookupFailureDefaultsToBaseline(t *testing.T) {
	fake := &fakeStorage{err: errors.New("connection refused")}
	resolver := NewResolver(fake)

	if got := resolver.Resolve("user-1"); got != types.RoleUser {
		t.Errorf("Expected baseline role on lookup failure, got %q", got)
	}
}

func TestResolve_AuthErrorDefaultsToBaseline(t *testing.T) {
	fake := &fakeStorage{err: storage.ErrAuthRequired}
	resolver := NewResolver(fake)

	if got := resolver.Resolve("user-1"); got != types.RoleUser {
		t.Errorf("Expected baseline role on auth error, got %q", got)
	}
	if resolver.IsAdmin("user-1") {
		t.Error("Expected IsAdmin to be false when lookup fails")
	}
}

func TestResolve_EmptyIdentitySkipsLookup(t *testing.T) {
	fake := &fakeStorage{role: types.RoleAdmin}
	resolver := NewResolver(fake)

	if got := resolver.Resolve(""); got != "" {
		t.Errorf("Expected no role for empty identity, got %q", got)
	}
	if fake.calls != 0 {
		t.Errorf("Expected no storage lookup for empty identity, got %d calls", fake.calls)
	}
}
