package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/4oBuko/tag-browser/internal/catalog"
	"github.com/4oBuko/tag-browser/internal/config"
	"github.com/4oBuko/tag-browser/internal/logger"
	"github.com/4oBuko/tag-browser/internal/repositories"
	"github.com/4oBuko/tag-browser/internal/services"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.Log, "tag-catalog")
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := initDBConnection(cfg.MySQLDSN, log)
	defer db.Close()
	tagRepo := repositories.NewMySQLTagRepository(db)
	tagService := services.NewDefaultTagService(tagRepo)
	server := catalog.NewServer(cfg.APIAddress, tagService, log)

	go func() {
		log.WithField("address", cfg.APIAddress).Info("tag catalog listening")
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

func initDBConnection(dsn string, log logrus.FieldLogger) *sql.DB {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	db.SetConnMaxLifetime(time.Minute * 3)
	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(10)
	return db
}
