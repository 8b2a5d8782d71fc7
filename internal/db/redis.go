package db

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisPool öffnet den gemeinsamen Redis-Client für Cache, Änderungs-Feed und Asynq und prüft ihn per PING.
// Der Aufrufer schließt den Client.
func RedisPool(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		ClientName:   "fitout-meister",
		PoolSize:     20,
		MaxIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		log.Error().Err(err).Str("addr", addr).Int("db", db).Msg("Redis nicht erreichbar")
		return nil, fmt.Errorf("Verbindung zu Redis nicht möglich: %w", err)
	}

	return rdb, nil
}
