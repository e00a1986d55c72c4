package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-seat-allocation/internal/config"
	"github.com/iliyamo/exam-seat-allocation/internal/database"
	"github.com/iliyamo/exam-seat-allocation/internal/handler"
	"github.com/iliyamo/exam-seat-allocation/internal/queue"
	"github.com/iliyamo/exam-seat-allocation/internal/repository"
	"github.com/iliyamo/exam-seat-allocation/internal/router"
)

func main() {
	// .env is optional; real deployments set variables in the environment.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// nil client disables caching and rate limiting instead of failing startup
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	halls := repository.NewHallRepo(db)
	students := repository.NewStudentRepo(db)
	plans := repository.NewPlanRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	hallH := handler.NewHallHandler(halls)
	rosterH := handler.NewRosterHandler(students)
	planH := handler.NewPlanHandler(cfg, halls, students, plans)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterAPI(e, cfg, rdb, hallH, rosterH, planH)

	// Background consumer writes plan.generated events to logs/plans.log.
	// It runs its own reconnect loop and never takes the server down.
	go func() {
		if err := queue.StartPlanConsumer(); err != nil {
			log.Printf("plan consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
