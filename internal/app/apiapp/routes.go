package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/SyncBAND/besteats/internal/config"
	authsvc "github.com/SyncBAND/besteats/internal/services/auth"
	rankingsvc "github.com/SyncBAND/besteats/internal/services/ranking"
	restaurantssvc "github.com/SyncBAND/besteats/internal/services/restaurants"
	settingssvc "github.com/SyncBAND/besteats/internal/services/settings"
	userssvc "github.com/SyncBAND/besteats/internal/services/users"
	votingsvc "github.com/SyncBAND/besteats/internal/services/voting"
	"github.com/SyncBAND/besteats/internal/transport/http/handlers"
)

type Dependencies struct {
	JWTManager        *authsvc.JWTManager
	UserService       *userssvc.Service
	RestaurantService *restaurantssvc.Service
	VotingService     *votingsvc.Service
	RankingService    *rankingsvc.Service
	SettingsService   *settingssvc.Service
	Logger            *zap.Logger
	Config            config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.UserService)
	restaurantHandler := handlers.NewRestaurantHandler(deps.RestaurantService)
	voteHandler := handlers.NewVoteHandler(deps.VotingService)
	mostVotedHandler := handlers.NewMostVotedHandler(deps.RankingService)
	settingsHandler := handlers.NewSettingsHandler(deps.SettingsService)

	authMW := AuthMiddleware(deps.JWTManager, deps.Logger)
	adminMW := RequireRole(authsvc.RoleAdmin)

	r.Get("/healthz", healthHandler.Handle)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
	})

	r.Route("/restaurants", func(r chi.Router) {
		r.Get("/", restaurantHandler.List)
		r.Get("/most-voted", mostVotedHandler.Handle)
		r.Get("/{restaurantID}", restaurantHandler.Get)

		r.With(authMW).Post("/", restaurantHandler.Create)
		r.With(authMW).Put("/{restaurantID}", restaurantHandler.Update)
		r.With(authMW).Delete("/{restaurantID}", restaurantHandler.Delete)
		r.With(authMW).Post("/{restaurantID}/vote", voteHandler.Vote)
		r.With(authMW).Post("/{restaurantID}/unvote", voteHandler.Unvote)
	})

	r.With(authMW).Get("/quota", voteHandler.Quota)

	r.Route("/admin", func(r chi.Router) {
		r.With(authMW, adminMW).Get("/settings/voting", settingsHandler.Get)
		r.With(authMW, adminMW).Put("/settings/voting", settingsHandler.Update)
	})
}
