package main

import (
	"net/http"
	"os"
	"time"

	"agroapi/api/handler"
	apiMiddleware "agroapi/api/middleware"
	"agroapi/api/routes"
	"agroapi/config"
	"agroapi/internal/repository"
	"agroapi/internal/service"
	"agroapi/internal/storage"
	"agroapi/internal/supabase"
	"agroapi/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	validate := validator.New()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	db := config.ConnectionDb(cfg.DatabaseURL)
	if err := config.Migrate(db); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}

	usuarioRepo := repository.NewUsuarioRepository(db)
	propriedadeRepo := repository.NewPropriedadeRepository(db)
	talhaoRepo := repository.NewTalhaoRepository(db)
	auditoriaRepo := repository.NewAuditoriaRepository(db)

	emailSender := service.NewResendEmailSender(cfg.ResendAPIKey, cfg.EmailFrom, cfg.AppBaseURL)

	var backend service.IdentityBackend
	switch cfg.AuthBackend {
	case "supabase":
		if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
			logger.Fatal("SUPABASE_URL and SUPABASE_ANON_KEY are required for the supabase backend")
		}
		if cfg.SupabaseJWTSecret == "" {
			logger.Fatal("SUPABASE_JWT_SECRET is required for the supabase backend")
		}
		client := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.SupabaseServiceRoleKey, logger)
		backend = service.NewSupabaseBackend(client, []byte(cfg.SupabaseJWTSecret), cfg.SupabaseResetRedirect)
	case "local":
		if cfg.JWTAccessSecret == "" || cfg.JWTRefreshSecret == "" {
			logger.Fatal("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required for the local backend")
		}
		tokens := utils.TokenManager{
			AccessSecret:    []byte(cfg.JWTAccessSecret),
			RefreshSecret:   []byte(cfg.JWTRefreshSecret),
			Issuer:          cfg.JWTIssuer,
			AccessTokenTTL:  cfg.JWTAccessTTL,
			RefreshTokenTTL: cfg.JWTRefreshTTL,
		}
		backend = service.NewLocalBackend(
			usuarioRepo,
			service.BcryptPasswordHasher{},
			tokens,
			emailSender,
			service.RealClock{},
			cfg.ResetTokenTTL,
		)
	default:
		logger.WithField("backend", cfg.AuthBackend).Fatal("unknown AUTH_BACKEND")
	}

	reconciler := service.NewReconciler(usuarioRepo)
	authService := service.NewAuthService(usuarioRepo, backend, reconciler, auditoriaRepo)
	propriedadeService := service.NewPropriedadeService(propriedadeRepo)
	talhaoService := service.NewTalhaoService(talhaoRepo, propriedadeRepo)

	bucket := storage.NewGCSBucket(cfg.GCSBucket, cfg.GCSAccessToken, logger)
	imagemService := service.NewImagemService(bucket)

	authHandler := handler.NewAuthHandler(authService, validate)
	authHandler.CookieDomain = cfg.CookieDomain
	authHandler.SecureCookies = cfg.SecureCookies

	propriedadeHandler := handler.NewPropriedadeHandler(propriedadeService, validate)
	talhaoHandler := handler.NewTalhaoHandler(talhaoService, validate)
	imagemHandler := handler.NewImagemHandler(imagemService)
	auditoriaHandler := handler.NewAuditoriaHandler(authService)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{Backend: backend, Users: usuarioRepo}
	router := routes.NewRouter(app, authHandler, propriedadeHandler, talhaoHandler, imagemHandler, auditoriaHandler, authMiddleware)
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithFields(logrus.Fields{"addr": cfg.HTTPAddr, "auth_backend": backend.Provider()}).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
