package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/user-auth-service/internal/config"
	"github.com/iliyamo/user-auth-service/internal/database"
	"github.com/iliyamo/user-auth-service/internal/handler"
	"github.com/iliyamo/user-auth-service/internal/queue"
	"github.com/iliyamo/user-auth-service/internal/repository"
	"github.com/iliyamo/user-auth-service/internal/router"
	"github.com/iliyamo/user-auth-service/internal/service"
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// Redis is optional: a nil client disables the revocation cache and
	// every lookup goes to MySQL.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, revocation cache disabled")
	}

	users := repository.NewUserRepo(db)
	revocations := repository.NewRevocationRepo(db)
	revoked := repository.NewCachedRevocationStore(revocations, rdb)

	authSvc := service.NewAuthService(cfg, users, revoked)
	profileSvc := service.NewProfileService(cfg, users)

	// Background workers: the audit-log consumer and the revocation GC.
	// The request path depends on neither.
	go queue.StartAuthEventConsumer()
	go pruneRevocations(revocations)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(authSvc), handler.NewProfileHandler(profileSvc), authSvc)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// pruneRevocations periodically deletes revocation rows whose tokens have
// expired on their own. Pruned tokens are rejected by signature
// verification regardless, so this only bounds table growth.
func pruneRevocations(repo *repository.RevocationRepo) {
	for range time.Tick(time.Hour) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		n, err := repo.DeleteExpired(ctx)
		cancel()
		if err != nil {
			log.Printf("revocation gc failed: %v", err)
			continue
		}
		if n > 0 {
			log.Printf("revocation gc removed %d expired rows", n)
		}
	}
}
