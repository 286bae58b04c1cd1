package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"stock_frame/internal/app/cli"
	"stock_frame/internal/app/di"
	"stock_frame/internal/feature/challenge/usecase"
	symboladapters "stock_frame/internal/feature/symbollist/adapters"
	symbolusecase "stock_frame/internal/feature/symbollist/usecase"
	infradb "stock_frame/internal/platform/db"
	infraredis "stock_frame/internal/platform/redis"
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var rdb *redisv9.Client
	defer func() {
		if rdb != nil {
			_ = rdb.Close()
		}
	}()

	var db *gorm.DB
	openDB := func() (*gorm.DB, error) {
		if db != nil {
			return db, nil
		}
		tmp, err := infradb.OpenDB(infradb.LoadConfigFromEnv())
		if err != nil {
			return nil, err
		}
		db = tmp
		return db, nil
	}

	deps := cli.Deps{
		Results: func() (usecase.ResultRepository, error) {
			db, err := openDB()
			if err != nil {
				return nil, err
			}
			if tmp, err := infraredis.NewRedisClient(ctx, infraredis.LoadConfig()); err == nil {
				rdb = tmp
			} else if !errors.Is(err, infraredis.ErrNotConfigured) {
				log.Println("[WARN] Redis unavailable. Running without cache.")
			}
			return di.NewResultRepository(rdb, db, nil), nil
		},
		Symbols: func() (symbolusecase.SymbolRepository, error) {
			db, err := openDB()
			if err != nil {
				return nil, err
			}
			return symboladapters.NewSymbolRepository(db), nil
		},
	}

	if err := cli.NewRootCmd(deps).ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
