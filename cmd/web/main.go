package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tagbrowser "github.com/4oBuko/tag-browser/internal"
	"github.com/4oBuko/tag-browser/internal/browser"
	"github.com/4oBuko/tag-browser/internal/cache"
	"github.com/4oBuko/tag-browser/internal/config"
	"github.com/4oBuko/tag-browser/internal/logger"
	"github.com/4oBuko/tag-browser/pkg/tagsapi"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.Log, "tag-browser")
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	tagsAPI := tagsapi.NewTagsAPIClient(cfg.TagsAPIURL, cfg.UpstreamTimeout)
	pageCache := cache.New(cfg.CacheTTL, cfg.CacheMaxEntries)
	sessions := browser.NewStore(tagsAPI, pageCache, browser.Options{DebounceDelay: cfg.DebounceDelay}, cfg.SessionTTL, log)
	server := tagbrowser.NewServer(sessions, tagbrowser.Options{
		Address:        cfg.Address,
		RenderWait:     cfg.RenderWait,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}, log)

	go func() {
		log.WithField("address", cfg.Address).WithField("tagsApi", cfg.TagsAPIURL).Info("tag browser listening")
		if err := server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exited")
}
