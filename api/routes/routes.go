package routes

import (
	"time"

	"agroapi/api/handler"
	"agroapi/api/middleware"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	Propriedades   *handler.PropriedadeHandler
	Talhoes        *handler.TalhaoHandler
	Imagens        *handler.ImagemHandler
	Auditoria      *handler.AuditoriaHandler
	AuthMiddleware middleware.AuthMiddleware
	AuthRate       *middleware.RateLimiter
	LoginRate      *middleware.RateLimiter
}

func NewRouter(
	e *echo.Echo,
	auth *handler.AuthHandler,
	propriedades *handler.PropriedadeHandler,
	talhoes *handler.TalhaoHandler,
	imagens *handler.ImagemHandler,
	auditoria *handler.AuditoriaHandler,
	authMiddleware middleware.AuthMiddleware,
) *Router {
	return &Router{
		Echo:           e,
		Auth:           auth,
		Propriedades:   propriedades,
		Talhoes:        talhoes,
		Imagens:        imagens,
		Auditoria:      auditoria,
		AuthMiddleware: authMiddleware,
		AuthRate:       middleware.NewRateLimiter(rate.Limit(5), 10, 5*time.Minute),
		LoginRate:      middleware.NewRateLimiter(rate.Limit(2), 4, 10*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo

	e.POST("/auth/register", r.Auth.Register, r.AuthRate.Middleware())
	e.POST("/auth/login", r.Auth.Login, r.LoginRate.Middleware())
	e.POST("/auth/forgot-password", r.Auth.ForgotPassword, r.LoginRate.Middleware())
	e.POST("/auth/reset-password", r.Auth.ResetPassword, r.AuthRate.Middleware())
	e.POST("/auth/refresh", r.Auth.Refresh, r.AuthRate.Middleware())
	e.POST("/auth/logout", r.Auth.Logout)
	e.GET("/auth/me", r.Auth.Me, r.AuthMiddleware.RequireAuth)

	propriedades := e.Group("/propriedades", r.AuthMiddleware.RequireAuth)
	propriedades.POST("", r.Propriedades.Create)
	propriedades.GET("", r.Propriedades.List)
	propriedades.GET("/:id", r.Propriedades.Get)
	propriedades.PUT("/:id", r.Propriedades.Update)
	propriedades.DELETE("/:id", r.Propriedades.Delete)

	talhoes := e.Group("/talhoes", r.AuthMiddleware.RequireAuth)
	talhoes.POST("", r.Talhoes.Create)
	talhoes.GET("", r.Talhoes.List)
	talhoes.GET("/:id", r.Talhoes.Get)
	talhoes.PUT("/:id", r.Talhoes.Update)
	talhoes.DELETE("/:id", r.Talhoes.Delete)

	e.GET("/imagens", r.Imagens.List, r.AuthMiddleware.RequireAuth)

	e.GET("/auditoria", r.Auditoria.List,
		r.AuthMiddleware.RequireAuth,
		middleware.RequireRole("admin", "gestor"))
}
