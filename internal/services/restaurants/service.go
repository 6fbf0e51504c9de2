package restaurants

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SyncBAND/besteats/internal/domain/model"
	"github.com/SyncBAND/besteats/internal/repo/postgres"
	"github.com/SyncBAND/besteats/internal/services/auth"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrForbidden     = errors.New("forbidden")
	ErrDuplicateName = errors.New("restaurant name already exists")
	ErrNotFound      = errors.New("restaurant not found")
)

const maxNameLength = 128

type Store interface {
	Create(ctx context.Context, name string, creatorID int64) (model.Restaurant, error)
	GetByID(ctx context.Context, id int64) (model.Restaurant, error)
	List(ctx context.Context) ([]model.Restaurant, error)
	UpdateName(ctx context.Context, id int64, name string) (model.Restaurant, error)
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, actor auth.Identity, name string) (model.Restaurant, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLength {
		return model.Restaurant{}, ErrValidation
	}

	restaurant, err := s.store.Create(ctx, name, actor.UserID)
	if err != nil {
		if errors.Is(err, postgres.ErrDuplicateRestaurantName) {
			return model.Restaurant{}, ErrDuplicateName
		}
		return model.Restaurant{}, fmt.Errorf("create restaurant: %w", err)
	}

	return restaurant, nil
}

func (s *Service) Get(ctx context.Context, id int64) (model.Restaurant, error) {
	if id <= 0 {
		return model.Restaurant{}, ErrValidation
	}

	restaurant, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrRestaurantNotFound) {
			return model.Restaurant{}, ErrNotFound
		}
		return model.Restaurant{}, fmt.Errorf("get restaurant: %w", err)
	}

	return restaurant, nil
}

func (s *Service) List(ctx context.Context) ([]model.Restaurant, error) {
	restaurants, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return restaurants, nil
}

// Rename changes a restaurant's name. Only the creator or an admin may
// change it.
func (s *Service) Rename(ctx context.Context, actor auth.Identity, id int64, name string) (model.Restaurant, error) {
	name = strings.TrimSpace(name)
	if id <= 0 || name == "" || len(name) > maxNameLength {
		return model.Restaurant{}, ErrValidation
	}

	if err := s.authorizeMutation(ctx, actor, id); err != nil {
		return model.Restaurant{}, err
	}

	restaurant, err := s.store.UpdateName(ctx, id, name)
	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrRestaurantNotFound):
			return model.Restaurant{}, ErrNotFound
		case errors.Is(err, postgres.ErrDuplicateRestaurantName):
			return model.Restaurant{}, ErrDuplicateName
		default:
			return model.Restaurant{}, fmt.Errorf("rename restaurant: %w", err)
		}
	}

	return restaurant, nil
}

// Delete removes a restaurant and, via cascade, its vote rows. Same
// creator-or-admin rule as Rename.
func (s *Service) Delete(ctx context.Context, actor auth.Identity, id int64) error {
	if id <= 0 {
		return ErrValidation
	}

	if err := s.authorizeMutation(ctx, actor, id); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, postgres.ErrRestaurantNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete restaurant: %w", err)
	}

	return nil
}

func (s *Service) authorizeMutation(ctx context.Context, actor auth.Identity, id int64) error {
	if actor.Role == auth.RoleAdmin {
		return nil
	}

	restaurant, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrRestaurantNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load restaurant for authorization: %w", err)
	}

	if restaurant.CreatorID == nil || *restaurant.CreatorID != actor.UserID {
		return ErrForbidden
	}

	return nil
}
