// Command skillswap-web serves the SkillSwap web app. Pages talk to the
// SkillSwap API on behalf of the signed-in user.
//
// @title        SkillSwap Web
// @version      1.0
// @description  Page endpoints of the SkillSwap web app.
// @BasePath     /
package main

import (
	"context"
	"crypto/rand"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	_ "github.com/skillswap/skillswap-web/docs"
	"github.com/skillswap/skillswap-web/internal/api"
	"github.com/skillswap/skillswap-web/internal/api/middleware"
	"github.com/skillswap/skillswap-web/internal/config"
	"github.com/skillswap/skillswap-web/internal/core/service"
	"github.com/skillswap/skillswap-web/internal/infrastructure/apiclient"
	"github.com/skillswap/skillswap-web/internal/infrastructure/db/redis"
	"github.com/skillswap/skillswap-web/internal/infrastructure/oauth"
	"github.com/skillswap/skillswap-web/internal/infrastructure/queue"
	"github.com/skillswap/skillswap-web/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "skillswap-web",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	nav := middleware.Navigator{}
	client, err := apiclient.New(apiclient.Options{
		BaseURL:   cfg.API.URL,
		Timeout:   cfg.API.Timeout,
		RateLimit: cfg.API.RateLimit,
		RateBurst: cfg.API.RateBurst,
		Navigator: nav,
		Logger:    log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("api client")
	}
	catalog := client.Catalog()
	state := service.NewAuthState(catalog.Auth, catalog.Users, nav, log)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	receipts := queue.NewDispatcher(0, catalog.Messages, log)
	receipts.Start(workerCtx)

	var (
		rdb    *goredis.Client
		nonces oauth.NonceStore = oauth.NewMemoryNonceStore()
	)
	redisCfg := redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB}
	if redisCfg.Enabled() {
		rdb, err = redis.Connect(ctx, redisCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("redis")
		}
		defer rdb.Close()
		nonces = redis.NewNonceStore(rdb)
		log.Info().Str("addr", redisCfg.Addr).Msg("oauth state kept in redis")
	}

	secret := cfg.OAuth.StateSecret
	if secret == "" {
		secret = rand.Text()
		log.Warn().Msg("STATE_SECRET not set, using a random secret; sign-in links will not survive a restart")
	}

	providers, err := oauth.Setup(ctx, oauth.Config{
		BaseURL:            cfg.PublicURL(),
		GoogleClientID:     cfg.OAuth.GoogleClientID,
		GoogleClientSecret: cfg.OAuth.GoogleClientSecret,
		GitHubClientID:     cfg.OAuth.GitHubClientID,
		GitHubClientSecret: cfg.OAuth.GitHubClientSecret,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("oauth providers")
	}
	if len(providers.Names()) == 0 {
		log.Warn().Msg("no sign-in provider configured")
	}

	e := api.NewRouter(api.Deps{
		API:       catalog,
		APIURL:    client.BaseURL(),
		State:     state,
		Navigator: nav,
		Providers: providers.IdentityProviders(),
		States:    oauth.NewStateIssuer(secret, nonces),
		Receipts:  receipts,
		Redis:     rdb,
		Log:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("api", client.BaseURL()).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	stopWorkers()
	receipts.Wait()
}
