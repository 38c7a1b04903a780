package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adrifdez/club-manager/config"
	"github.com/adrifdez/club-manager/db"
	"github.com/adrifdez/club-manager/handlers"
	"github.com/adrifdez/club-manager/live"
	"github.com/adrifdez/club-manager/middleware"
	"github.com/adrifdez/club-manager/repositories"
	api "github.com/adrifdez/club-manager/routes"
	"github.com/adrifdez/club-manager/services"
	"github.com/adrifdez/club-manager/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Subida de fotos opcional: sin claves de R2 el servicio arranca con
	// el uploader a nil y la operación devuelve foto no disponible.
	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("R2 uploader initialized", slog.String("bucket", cfg.R2BucketName))
	} else {
		logger.Warn("R2 not configured, player photo upload disabled")
	}

	// Hub de websockets para las salas de partido.
	wsHub := live.NewHub()
	go wsHub.Run()
	logger.Info("websocket hub started")

	// Repositorios
	usuarioRepo := repositories.NewPostgresUsuarioRepository(dbConn)
	jugadorRepo := repositories.NewPostgresJugadorRepository(dbConn)
	entrenamientoRepo := repositories.NewPostgresEntrenamientoRepository(dbConn)
	partidoRepo := repositories.NewPostgresPartidoRepository(dbConn)
	asistenciaEntRepo := repositories.NewPostgresAsistenciaEntrenamientoRepository(dbConn)
	asistenciaParRepo := repositories.NewPostgresAsistenciaPartidoRepository(dbConn)
	posicionRepo := repositories.NewPostgresPosicionRepository(dbConn)
	motivoRepo := repositories.NewPostgresMotivoAusenciaRepository(dbConn)
	estadisticasRepo := repositories.NewPostgresEstadisticasRepository(dbConn)
	logger.Info("repositories initialized")

	// Servicios
	fanout := services.NewRosterFanout(jugadorRepo, entrenamientoRepo, partidoRepo, asistenciaEntRepo, asistenciaParRepo, logger)
	authService := services.NewAuthService(dbConn, usuarioRepo, jugadorRepo, fanout)
	jugadorService := services.NewJugadorService(jugadorRepo, usuarioRepo, posicionRepo, uploader)
	entrenamientoService := services.NewEntrenamientoService(entrenamientoRepo, fanout)
	partidoService := services.NewPartidoService(partidoRepo, fanout, wsHub)
	asistenciaService := services.NewAsistenciaService(asistenciaEntRepo, asistenciaParRepo, entrenamientoRepo, partidoRepo, motivoRepo)
	estadisticasService := services.NewEstadisticasService(dbConn, partidoRepo, estadisticasRepo, wsHub)
	catalogoService := services.NewCatalogoService(posicionRepo, motivoRepo)
	logger.Info("services initialized")

	// Handlers HTTP
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	jugadorHandler := handlers.NewJugadorHandler(jugadorService)
	entrenamientoHandler := handlers.NewEntrenamientoHandler(entrenamientoService, asistenciaService)
	partidoHandler := handlers.NewPartidoHandler(partidoService, estadisticasService, asistenciaService)
	asistenciaEntrenamiento := handlers.NewAsistenciaEntrenamientoHandler(asistenciaService, jugadorService)
	asistenciaPartido := handlers.NewAsistenciaPartidoHandler(asistenciaService, jugadorService)
	catalogoHandler := handlers.NewCatalogoHandler(catalogoService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, partidoService)
	logger.Info("HTTP handlers initialized")

	authenticator := middleware.NewAuthenticator(cfg.JWTSecretKey)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		authenticator,
		cfg.CORSOrigins,
		authHandler,
		jugadorHandler,
		entrenamientoHandler,
		partidoHandler,
		asistenciaEntrenamiento,
		asistenciaPartido,
		catalogoHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
