package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/book_library/internal/config"
	"github.com/Skotchmaster/book_library/internal/es"
	"github.com/Skotchmaster/book_library/internal/httpserver"
	"github.com/Skotchmaster/book_library/internal/logging"
	"github.com/Skotchmaster/book_library/internal/metrics"
	authmw "github.com/Skotchmaster/book_library/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/book_library/internal/middleware/logging"
	"github.com/Skotchmaster/book_library/internal/mykafka"
	"github.com/Skotchmaster/book_library/internal/repo"
	"github.com/Skotchmaster/book_library/internal/service"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	config.MustNonEmpty(configuration.JWT_SECRET, "JWT_SECRET")
	config.MustNonEmpty(configuration.REFRESH_SECRET, "REFRESH_SECRET")

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init failed: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	refreshSecret := []byte(configuration.REFRESH_SECRET)

	var producer *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	} else {
		log.Println("KAFKA_ADDRESS not set, event publishing disabled")
	}

	var searchHandler *httpserver.SearchHTTP
	var indexer service.BookIndexer
	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init failed: %v", err)
		}
		searchHandler = &httpserver.SearchHTTP{ES: esClient, Index: "books"}
		indexer = &es.BookIndex{ES: esClient, Index: "books"}
	} else {
		log.Println("ES_URL not set, fuzzy search disabled")
	}

	r := repo.New(db)

	// service.EventPublisher is an interface; an untyped nil pointer
	// must not end up inside it.
	var pub service.EventPublisher
	if producer != nil {
		pub = producer
	}

	authSvc := &service.AuthService{Repo: r, JWTSecret: jwtSecret, RefreshSecret: refreshSecret, Producer: pub}
	adminSvc := &service.AdminService{Repo: r, Producer: pub, Index: indexer}
	bookSvc := &service.BookService{Repo: r}
	favSvc := &service.FavoriteService{Repo: r, Producer: pub}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler:     &httpserver.AuthHTTP{Svc: authSvc},
		BookHandler:     &httpserver.BookHTTP{Svc: bookSvc},
		FavoriteHandler: &httpserver.FavoriteHTTP{Svc: favSvc},
		AdminHandler:    &httpserver.AdminHTTP{Svc: adminSvc},
		SearchHandler:   searchHandler,
		AuthMW:          &authmw.Middleware{JWTSecret: jwtSecret, Admin: adminSvc},
		Metrics:         metrics.NewCollector(),
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
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

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
