package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "staywise/internal/adapters/http_server"
	"staywise/internal/adapters/observability"
	redisad "staywise/internal/adapters/redis"
	"staywise/internal/app"
	"staywise/internal/shared"
	mysqlrepo "staywise/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	auth := app.NewAuthService(repo, cfg.SessionSecret, cfg.SessionTTL)
	catalog := app.NewCatalogService(repo, cache, cfg.CacheTTL)
	accumulator := app.NewAccumulator(repo)
	bookings := app.NewBookingService(repo, repo, repo, accumulator)
	recommender := app.NewRecommender(app.NewEngine(repo, repo), cache, cfg.CacheTTL)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Auth:     auth,
		Catalog:  catalog,
		Bookings: bookings,
		Recs:     recommender,
		LoginRPS: cfg.LoginRPS,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
