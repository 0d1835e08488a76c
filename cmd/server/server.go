package main

import (
	"context"
	"net/http"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"github.com/vrabec/ludo/server"
	"github.com/vrabec/ludo/store"
)

type Config struct {
	Port      string        `env:"PORT" envDefault:"8080"`
	RedisAddr string        `env:"REDIS_ADDR"`
	GameTTL   time.Duration `env:"GAME_TTL" envDefault:"30m"`
	LogLevel  string        `env:"LOG_LEVEL" envDefault:"info"`
}

type Server struct {
	router     *way.Router
	GameServer *server.GameServer
}

func main() {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse env: %v", err)
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warnf("unknown LOG_LEVEL %q, using info", cfg.LogLevel)
	}

	st := newStore(cfg)
	Server := Server{
		GameServer: server.NewGameServer(st),
	}
	Server.routes()

	log.Printf("listening on :%s", cfg.Port)
	log.Fatalln(http.ListenAndServe(":"+cfg.Port, Server.router))
}

// newStore picks Redis when an address is configured, the in-process store
// otherwise.
func newStore(cfg Config) store.Store {
	if cfg.RedisAddr == "" {
		log.Printf("REDIS_ADDR empty, using in-memory store")
		return store.NewMemory(cfg.GameTTL)
	}
	rs := store.NewRedis(cfg.RedisAddr, cfg.GameTTL)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rs.Ping(ctx); err != nil {
		log.Fatalf("redis %s: %v", cfg.RedisAddr, err)
	}
	log.Printf("using redis at %s", cfg.RedisAddr)
	return rs
}
