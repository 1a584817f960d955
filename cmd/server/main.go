package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mswiatek/web_shop/internal/config"
	"github.com/mswiatek/web_shop/internal/es"
	"github.com/mswiatek/web_shop/internal/handlers"
	"github.com/mswiatek/web_shop/internal/imagestore"
	"github.com/mswiatek/web_shop/internal/logging"
	"github.com/mswiatek/web_shop/internal/middleware/auth"
	loggingmw "github.com/mswiatek/web_shop/internal/middleware/logging"
	"github.com/mswiatek/web_shop/internal/mykafka"
	"github.com/mswiatek/web_shop/internal/repo"
	httpserver "github.com/mswiatek/web_shop/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	slog.SetDefault(logger)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatal(err)
	}

	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		prod, err = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
		if err != nil {
			log.Fatal(err)
		}
	}

	var searchHandler *handlers.SearchHandler
	var productHandler *handlers.ProductHandler

	r := repo.New(db)
	images := imagestore.New(configuration.MEDIA_DIR)
	productHandler = &handlers.ProductHandler{Repo: r, Producer: prod, Images: images, ESIndex: "product"}

	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatal(err)
		}
		productHandler.ES = esClient
		searchHandler = &handlers.SearchHandler{ES: esClient, Index: "product"}
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		Auth:            &auth.Verifier{JWTSecret: []byte(configuration.JWT_SECRET)},
		ProductHandler:  productHandler,
		CategoryHandler: &handlers.CategoryHandler{Repo: r, Producer: prod},
		OrderHandler:    &handlers.OrderHandler{Repo: r, Producer: prod},
		OpinionHandler:  &handlers.OpinionHandler{Repo: r, Producer: prod},
		SearchHandler:   searchHandler,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":8080",
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if prod != nil {
		if err := prod.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
