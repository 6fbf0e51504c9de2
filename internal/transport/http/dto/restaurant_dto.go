package dto

import (
	"time"

	"github.com/SyncBAND/besteats/internal/domain/model"
)

type CreateRestaurantRequest struct {
	Name string `json:"name"`
}

type UpdateRestaurantRequest struct {
	Name string `json:"name"`
}

type RestaurantResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatorID *int64    `json:"creator_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewRestaurantResponse(r model.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:        r.ID,
		Name:      r.Name,
		CreatorID: r.CreatorID,
		CreatedAt: r.CreatedAt,
	}
}

type RestaurantListResponse struct {
	Restaurants []RestaurantResponse `json:"restaurants"`
}

func NewRestaurantListResponse(restaurants []model.Restaurant) RestaurantListResponse {
	out := RestaurantListResponse{Restaurants: make([]RestaurantResponse, 0, len(restaurants))}
	for _, r := range restaurants {
		out.Restaurants = append(out.Restaurants, NewRestaurantResponse(r))
	}
	return out
}
