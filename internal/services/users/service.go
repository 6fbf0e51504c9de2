package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/SyncBAND/besteats/internal/domain/model"
	"github.com/SyncBAND/besteats/internal/repo/postgres"
	"github.com/SyncBAND/besteats/internal/services/auth"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrUsernameTaken = errors.New("username already taken")
)

const (
	minUsernameLength = 3
	maxUsernameLength = 64
)

type UserStore interface {
	Create(ctx context.Context, tx pgx.Tx, username, role string) (model.User, error)
}

type QuotaStore interface {
	CreateForUser(ctx context.Context, tx pgx.Tx, userID int64, capacity int) error
}

type CapacityProvider interface {
	DailyVoteCapacity(ctx context.Context) (int, error)
}

type TxRunner interface {
	WithinTx(ctx context.Context, fn func(context.Context, pgx.Tx) error) error
}

type Dependencies struct {
	Users    UserStore
	Quotas   QuotaStore
	Capacity CapacityProvider
	Tx       TxRunner
	JWT      *auth.JWTManager
}

// Service provisions accounts. Creating a user and seeding the day's quota
// happen in one transaction so no account ever exists without a balance.
type Service struct {
	deps Dependencies
}

func NewService(deps Dependencies) *Service {
	return &Service{deps: deps}
}

type RegisterResult struct {
	User        model.User
	AccessToken string
	ExpiresAt   time.Time
}

func (s *Service) Register(ctx context.Context, username string) (RegisterResult, error) {
	username = strings.TrimSpace(username)
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return RegisterResult{}, ErrValidation
	}

	capacity, err := s.deps.Capacity.DailyVoteCapacity(ctx)
	if err != nil {
		return RegisterResult{}, fmt.Errorf("resolve vote capacity: %w", err)
	}

	var user model.User
	err = s.deps.Tx.WithinTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		created, createErr := s.deps.Users.Create(txCtx, tx, username, auth.RoleUser)
		if createErr != nil {
			return createErr
		}
		if seedErr := s.deps.Quotas.CreateForUser(txCtx, tx, created.ID, capacity); seedErr != nil {
			return seedErr
		}
		user = created
		return nil
	})
	if err != nil {
		if errors.Is(err, postgres.ErrUsernameTaken) {
			return RegisterResult{}, ErrUsernameTaken
		}
		return RegisterResult{}, fmt.Errorf("register user: %w", err)
	}

	token, expiresAt, err := s.deps.JWT.GenerateAccessToken(user.ID, uuid.NewString(), user.Role)
	if err != nil {
		return RegisterResult{}, fmt.Errorf("issue access token: %w", err)
	}

	return RegisterResult{User: user, AccessToken: token, ExpiresAt: expiresAt}, nil
}
