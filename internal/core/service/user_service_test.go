package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/useraccounts/user-service/internal/core/domain"
)

func seedUsers(repo *stubUserRepo, n int) []domain.SafeUser {
	created := make([]domain.SafeUser, 0, n)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		user, _ := repo.Create(context.Background(), domain.NewUser{
			FullName:     fmt.Sprintf("User %03d", i),
			Email:        fmt.Sprintf("user%03d@x.com", i),
			PasswordHash: "$2a$04$stub",
			Role:         domain.RoleUser,
			IsActive:     true,
			CreatedAt:    at,
			UpdatedAt:    at,
		})
		created = append(created, *user)
	}
	return created
}

func TestUserService_GetByID(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, zerolog.Nop())
	seeded := seedUsers(repo, 1)

	user, err := svc.GetByID(context.Background(), seeded[0].ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if user.ID != seeded[0].ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.GetByID(context.Background(), "000000000000000000000000"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

// stubCache records cache traffic for the read-through assertions.
type stubCache struct {
	entries      map[string]*domain.SafeUser
	hits, misses int
	invalidated  []string
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]*domain.SafeUser)}
}

func (c *stubCache) Get(_ context.Context, id string) (*domain.SafeUser, bool) {
	if u, ok := c.entries[id]; ok {
		c.hits++
		return u, true
	}
	c.misses++
	return nil, false
}

func (c *stubCache) Set(_ context.Context, user *domain.SafeUser) {
	c.entries[user.ID] = user
}

func (c *stubCache) Invalidate(_ context.Context, id string) {
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
}

func TestUserService_GetByID_ReadsThroughCache(t *testing.T) {
	repo := newStubUserRepo()
	cache := newStubCache()
	svc := NewUserService(repo, cache, zerolog.Nop())
	seeded := seedUsers(repo, 1)

	if _, err := svc.GetByID(context.Background(), seeded[0].ID); err != nil {
		t.Fatalf("first read failed: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), seeded[0].ID); err != nil {
		t.Fatalf("second read failed: %v", err)
	}

	if cache.misses != 1 || cache.hits != 1 {
		t.Fatalf("expected 1 miss then 1 hit, got misses=%d hits=%d", cache.misses, cache.hits)
	}
}

func TestUserService_List_Pagination(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, zerolog.Nop())
	seedUsers(repo, 45)

	page, err := svc.List(context.Background(), domain.ListParams{Page: 1, Limit: 20, Sort: domain.SortCreatedAtDesc})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(page.Items) != 20 || page.Total != 45 || page.Pages != 3 {
		t.Fatalf("unexpected page: len=%d total=%d pages=%d", len(page.Items), page.Total, page.Pages)
	}

	// Newest first under the default sort.
	if page.Items[0].FullName != "User 044" {
		t.Fatalf("expected newest user first, got %s", page.Items[0].FullName)
	}

	last, err := svc.List(context.Background(), domain.ListParams{Page: 3, Limit: 20, Sort: domain.SortCreatedAtDesc})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(last.Items) != 5 {
		t.Fatalf("expected 5 items on the last page, got %d", len(last.Items))
	}

	beyond, err := svc.List(context.Background(), domain.ListParams{Page: 10, Limit: 20, Sort: domain.SortCreatedAtDesc})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(beyond.Items) != 0 || beyond.Total != 45 || beyond.Pages != 3 {
		t.Fatalf("out-of-range page should be empty with intact totals, got %+v", beyond)
	}
}

func TestUserService_List_SortByName(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, zerolog.Nop())
	seedUsers(repo, 3)

	page, err := svc.List(context.Background(), domain.ListParams{Page: 1, Limit: 20, Sort: domain.SortFullNameAsc})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if page.Items[0].FullName != "User 000" || page.Items[2].FullName != "User 002" {
		t.Fatalf("unexpected order: %s .. %s", page.Items[0].FullName, page.Items[2].FullName)
	}
}

func TestUserService_UpdatePartial(t *testing.T) {
	repo := newStubUserRepo()
	cache := newStubCache()
	svc := NewUserService(repo, cache, zerolog.Nop())
	seeded := seedUsers(repo, 1)

	name := "Grace Hopper"
	updated, err := svc.UpdatePartial(context.Background(), seeded[0].ID, domain.UserPatch{FullName: &name})
	if err != nil {
		t.Fatalf("UpdatePartial returned error: %v", err)
	}
	if updated.FullName != "Grace Hopper" {
		t.Fatalf("name not updated: %s", updated.FullName)
	}
	if updated.Email != seeded[0].Email {
		t.Fatalf("email must not change on partial update")
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != seeded[0].ID {
		t.Fatalf("expected cache invalidation for %s, got %v", seeded[0].ID, cache.invalidated)
	}

	if _, err := svc.UpdatePartial(context.Background(), "000000000000000000000000", domain.UserPatch{FullName: &name}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_BlockUnblock(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, zerolog.Nop())
	seeded := seedUsers(repo, 1)

	blocked, err := svc.Block(context.Background(), seeded[0].ID)
	if err != nil {
		t.Fatalf("Block returned error: %v", err)
	}
	if blocked.IsActive {
		t.Fatalf("expected blocked user to be inactive")
	}
	// The full record comes back, not a partial projection.
	if blocked.Email != seeded[0].Email || blocked.FullName != seeded[0].FullName {
		t.Fatalf("expected full record, got %+v", blocked)
	}

	unblocked, err := svc.Unblock(context.Background(), seeded[0].ID)
	if err != nil {
		t.Fatalf("Unblock returned error: %v", err)
	}
	if !unblocked.IsActive {
		t.Fatalf("expected unblocked user to be active")
	}

	if _, err := svc.Block(context.Background(), "000000000000000000000000"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Delete_Twice(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, zerolog.Nop())
	seeded := seedUsers(repo, 1)

	if err := svc.Delete(context.Background(), seeded[0].ID); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), seeded[0].ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}

func TestUserService_Delete_Nonexistent(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, zerolog.Nop())

	if err := svc.Delete(context.Background(), "000000000000000000000000"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
