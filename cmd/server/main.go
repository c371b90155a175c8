package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "notes-system/docs"
	"notes-system/internal/config"
	"notes-system/internal/domain/note"
	"notes-system/internal/domain/user"
	api "notes-system/internal/http"
	"notes-system/internal/logging"
	"notes-system/internal/metrics"
	"notes-system/internal/platform/database"
	jwtpkg "notes-system/internal/platform/jwt"
	"notes-system/internal/repository/postgres"
	"notes-system/internal/worker"
)

// @title           Notes API
// @version         1.0
// @description     User and note management with JWT auth
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg := config.Load()

	logger, err := logging.Setup(cfg.LogDir)
	if err != nil {
		log.Fatalf("logging setup error: %v", err)
	}
	api.SetLogger(logger)

	metrics.Register()

	db, err := database.NewPostgres(cfg.DB_DSN)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	userRepo := postgres.NewUserRepo(db)
	noteRepo := postgres.NewNoteRepo(db)

	userSvc := user.NewService(userRepo, noteRepo)
	noteSvc := note.NewService(noteRepo)

	jwtMgr := jwtpkg.NewManager(cfg.JWTSecret)

	auditCh := make(chan worker.UserEvent, 100)
	auditWorker := worker.NewAuditWorker(auditCh, logger)

	router := api.NewRouter(userSvc, noteSvc, jwtMgr, cfg.JWTTTL, auditCh, db)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go auditWorker.Run(ctx)

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	<-stop
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown error: %v", err)
	}

	logger.Info("server stopped")
}
