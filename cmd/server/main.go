package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"stock_frame/internal/app/di"
	"stock_frame/internal/app/router"
	challengehandler "stock_frame/internal/feature/challenge/transport/handler"
	challengeusecase "stock_frame/internal/feature/challenge/usecase"
	symboladapters "stock_frame/internal/feature/symbollist/adapters"
	symbolhandler "stock_frame/internal/feature/symbollist/transport/handler"
	symbolusecase "stock_frame/internal/feature/symbollist/usecase"
	"stock_frame/internal/platform/cache"
	infradb "stock_frame/internal/platform/db"
	platformhandler "stock_frame/internal/platform/http/handler"
	infraredis "stock_frame/internal/platform/redis"
	"stock_frame/internal/shared/ratelimiter"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}
	ctx := context.Background()

	// db
	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv())
	if err != nil {
		log.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, infraredis.LoadConfig()); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository (each cache entry lives until the next market close)
	resultRepo := di.NewResultRepository(rdb, db, cache.TimeUntilNextClose)

	// Usecase
	checkUC := challengeusecase.NewCheckUsecase(resultRepo, nil)
	prepareUC := challengeusecase.NewPrepareUsecase(di.NewMarket(), resultRepo, ratelimiter.NewRateLimiter(8, time.Minute))
	symbolUC := symbolusecase.NewSymbolUsecase(symboladapters.NewSymbolRepository(db))

	// Handler
	resultH := challengehandler.NewResultHandler(checkUC, prepareUC)
	symbolH := symbolhandler.NewSymbolHandler(symbolUC)

	pingers := map[string]platformhandler.Pinger{"db": sqlDB.PingContext}
	if rdb != nil {
		pingers["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	r := router.NewRouter(resultH, symbolH, pingers)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
