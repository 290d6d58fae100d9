package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/tablebook/api"
	"github.com/Domenick1991/tablebook/config"
	"github.com/Domenick1991/tablebook/internal/auth"
	"github.com/Domenick1991/tablebook/internal/broadcast"
	"github.com/Domenick1991/tablebook/internal/repository"
	"github.com/Domenick1991/tablebook/internal/service/reservation"
	"github.com/Domenick1991/tablebook/internal/service/sessions"
	"github.com/Domenick1991/tablebook/internal/service/users"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies carries everything the HTTP surface needs. main builds it
// once; tests build it from fakes.
type Dependencies struct {
	Engine      reservation.ReservationUseCase
	Queries     sessions.SessionQueryUseCase
	Auth        users.AuthUseCase
	Tokens      *auth.Manager
	TimeSlots   repository.TimeSlotRepository
	Restaurants repository.RestaurantRepository
	Hub         *broadcast.Hub
	Logger      *zap.Logger
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, deps Dependencies) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(cfg, deps),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func NewRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(api.CORS(cfg.HTTP.CORSOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "viewers": deps.Hub.Count()})
	})

	broadcast.NewWSHandler(deps.Hub, deps.Logger).Register(router)

	public := router.Group("/api")
	authed := router.Group("/api", api.Authenticate(deps.Tokens))
	admin := router.Group("/api", api.RequireAdmin(deps.Tokens))

	api.NewAuthHandler(deps.Auth).Register(public, authed)
	api.NewSessionHandler(deps.Engine, deps.Queries).Register(public, admin)
	api.NewBookingHandler(deps.Engine, deps.Queries).Register(public, admin)
	api.NewReferenceHandler(deps.TimeSlots, deps.Restaurants).Register(public, admin)

	return router
}
