package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/SyncBAND/besteats/internal/domain/model"
	"github.com/SyncBAND/besteats/internal/repo/postgres"
	"github.com/SyncBAND/besteats/internal/services/auth"
)

type fakeTxRunner struct{}

func (fakeTxRunner) WithinTx(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
	return fn(ctx, nil)
}

type fakeUserStore struct {
	nextID int64
	users  map[string]model.User
}

func (f *fakeUserStore) Create(_ context.Context, _ pgx.Tx, username, role string) (model.User, error) {
	if f.users == nil {
		f.users = map[string]model.User{}
	}
	if _, taken := f.users[username]; taken {
		return model.User{}, postgres.ErrUsernameTaken
	}
	f.nextID++
	user := model.User{ID: f.nextID, Username: username, Role: role}
	f.users[username] = user
	return user, nil
}

type fakeQuotaStore struct {
	seeded map[int64]int
}

func (f *fakeQuotaStore) CreateForUser(_ context.Context, _ pgx.Tx, userID int64, capacity int) error {
	if f.seeded == nil {
		f.seeded = map[int64]int{}
	}
	f.seeded[userID] = capacity
	return nil
}

type fixedCapacity int

func (c fixedCapacity) DailyVoteCapacity(context.Context) (int, error) {
	return int(c), nil
}

func newTestService(t *testing.T, userStore *fakeUserStore, quotaStore *fakeQuotaStore) *Service {
	t.Helper()
	return NewService(Dependencies{
		Users:    userStore,
		Quotas:   quotaStore,
		Capacity: fixedCapacity(10),
		Tx:       fakeTxRunner{},
		JWT:      auth.NewJWTManager("test-secret", time.Minute),
	})
}

func TestRegisterSeedsQuotaAndIssuesToken(t *testing.T) {
	userStore := &fakeUserStore{}
	quotaStore := &fakeQuotaStore{}
	svc := newTestService(t, userStore, quotaStore)

	result, err := svc.Register(context.Background(), "thandi")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.User.ID == 0 || result.User.Username != "thandi" {
		t.Fatalf("unexpected user: %+v", result.User)
	}
	if result.User.Role != auth.RoleUser {
		t.Fatalf("expected role %q, got %q", auth.RoleUser, result.User.Role)
	}
	if quotaStore.seeded[result.User.ID] != 10 {
		t.Fatalf("expected quota seeded at 10, got %d", quotaStore.seeded[result.User.ID])
	}
	if result.AccessToken == "" || !result.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected a live access token, got %+v", result)
	}
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	userStore := &fakeUserStore{}
	svc := newTestService(t, userStore, &fakeQuotaStore{})

	if _, err := svc.Register(context.Background(), "thandi"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "thandi"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected username taken, got %v", err)
	}
}

func TestRegisterValidatesUsername(t *testing.T) {
	svc := newTestService(t, &fakeUserStore{}, &fakeQuotaStore{})

	for _, username := range []string{"", "ab", "  "} {
		if _, err := svc.Register(context.Background(), username); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected validation error for %q, got %v", username, err)
		}
	}
}
