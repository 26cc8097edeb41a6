package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shinyyama/collecta-backend/internal/config"
	"github.com/shinyyama/collecta-backend/internal/handler"
	appmw "github.com/shinyyama/collecta-backend/internal/middleware"
	"github.com/shinyyama/collecta-backend/internal/repository"
	"github.com/shinyyama/collecta-backend/internal/service"
	"github.com/shinyyama/collecta-backend/internal/storage"
	"gorm.io/gorm"
)

type Server struct {
	e        *echo.Echo
	itemRepo repository.ItemRepository
	locRepo  repository.LocationRepository
	userRepo repository.UserRepository
	sha      string
	build    string
}

func New(db *gorm.DB, cfg *config.Config, uploader storage.Uploader, sha, buildTime string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	itemRepo := repository.NewItemRepository(db)
	itemSvc := service.NewItemService(itemRepo)
	itemHandler := handler.NewItemHandler(itemSvc, cfg.AssetBaseURL)

	locRepo := repository.NewLocationRepository(db)
	locSvc := service.NewLocationService(locRepo, itemRepo)
	locHandler := handler.NewLocationHandler(locSvc, uploader)

	userRepo := repository.NewUserRepository(db)
	userSvc := service.NewUserService(userRepo, cfg.JWTSecret)
	userHandler := handler.NewUserHandler(userSvc)

	authMw := appmw.NewAuthMiddleware(cfg.JWTSecret)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    sha,
			"build_time": buildTime,
		})
	})

	api := e.Group("/api")
	api.GET("/items", itemHandler.List)
	api.GET("/locations", locHandler.Search)
	api.GET("/locations/:id", locHandler.Get)
	api.POST("/locations", locHandler.Create, authMw.RequireAuth)
	api.PUT("/locations/:id", locHandler.UpdateImage, authMw.RequireAuth)
	api.POST("/users", userHandler.Register)
	api.POST("/login", userHandler.Login)
	api.GET("/users", userHandler.List)

	return &Server{
		e:        e,
		itemRepo: itemRepo,
		locRepo:  locRepo,
		userRepo: userRepo,
		sha:      sha,
		build:    buildTime,
	}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// SetDB wires a late-arriving connection into the repositories, so the
// server can begin listening before the database is reachable.
func (s *Server) SetDB(db *gorm.DB) {
	if s.itemRepo != nil {
		s.itemRepo.SetDB(db)
	}
	if s.locRepo != nil {
		s.locRepo.SetDB(db)
	}
	if s.userRepo != nil {
		s.userRepo.SetDB(db)
	}
}
