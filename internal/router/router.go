package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework for routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/exam-seat-allocation/internal/config"
	"github.com/iliyamo/exam-seat-allocation/internal/handler"
	"github.com/iliyamo/exam-seat-allocation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check
// used by load balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes.
// Unauthenticated operations live under /v1/auth, the protected /v1/me
// endpoint uses the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// /refresh rotates the refresh token; /refresh-access does not.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts either a bearer token or a refresh token in the
	// body, so it lives outside the JWT middleware.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "VIEWER"))
	auth.GET("/me", a.Me)
}

// RegisterAPI wires the hall, roster and plan endpoints.
//
// Writes (hall CRUD, roster upload, plan generation) require the ADMIN
// role and sit behind a tight rate limit because plan generation runs a
// backtracking search.  Reads accept both roles and go through the
// Redis response cache; plan reads use a user-scoped cache key so one
// user's latest plan is never served to another.
func RegisterAPI(e *echo.Echo, cfg config.Config, rdb *redis.Client,
	hh *handler.HallHandler, rh *handler.RosterHandler, ph *handler.PlanHandler) {

	rlCfg := config.LoadRateLimitConfig()
	cacheCfg := config.LoadCacheConfig()
	planCacheCfg := cacheCfg
	planCacheCfg.KeyStrategy = "user_route_query"

	admin := e.Group("/v1")
	admin.Use(middleware.JWTAuth(cfg.JWTSecret))
	admin.Use(middleware.RequireRole("ADMIN"))
	admin.Use(middleware.NewTokenBucket(rlCfg, rdb))

	admin.POST("/halls", hh.Create)
	admin.PUT("/halls/:id", hh.Update)
	admin.DELETE("/halls/:id", hh.Delete)
	admin.POST("/roster", rh.Upload)
	admin.POST("/plans/hall/:id", ph.GenerateSingle)
	admin.POST("/plans/multi", ph.GenerateMulti)

	read := e.Group("/v1")
	read.Use(middleware.JWTAuth(cfg.JWTSecret))
	read.Use(middleware.RequireRole("ADMIN", "VIEWER"))
	read.Use(middleware.NewTokenBucket(rlCfg, rdb))

	read.GET("/halls", hh.List, middleware.NewRedisCache(cacheCfg, rdb))
	read.GET("/halls/:id", hh.Get, middleware.NewRedisCache(cacheCfg, rdb))
	read.GET("/roster", rh.List, middleware.NewRedisCache(cacheCfg, rdb))
	read.GET("/palette", ph.Palette, middleware.NewRedisCache(cacheCfg, rdb))
	read.GET("/plans/latest", ph.Latest, middleware.NewRedisCache(planCacheCfg, rdb))
	read.GET("/plans/:id", ph.Get, middleware.NewRedisCache(planCacheCfg, rdb))
	read.GET("/plans/:id/export.csv", ph.ExportCSV)
}
