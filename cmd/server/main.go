package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dehaka844/chatbot-pedidos/internal/config"
	httpctl "github.com/Dehaka844/chatbot-pedidos/internal/controllers/http"
	"github.com/Dehaka844/chatbot-pedidos/internal/infra"
	"github.com/Dehaka844/chatbot-pedidos/internal/infra/rabbitmq"
	redisstore "github.com/Dehaka844/chatbot-pedidos/internal/infra/redis"
	dbinfra "github.com/Dehaka844/chatbot-pedidos/internal/infra/sqlite"
	sqliterepo "github.com/Dehaka844/chatbot-pedidos/internal/repository/sqlite"
	"github.com/Dehaka844/chatbot-pedidos/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := dbinfra.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer dbinfra.Close(db)

	if err := dbinfra.Init(db); err != nil {
		log.Fatalf("db: init: %v", err)
	}

	model, err := infra.NewChatModel(infra.ChatModelConfig{
		APIKey:      cfg.OpenAIKey,
		Model:       cfg.OpenAIModel,
		BaseURL:     cfg.OpenAIBaseURL,
		Temperature: cfg.LLMTemperature,
		Timeout:     cfg.LLMTimeout,
	})
	if err != nil {
		log.Fatalf("llm: %v", err)
	}

	var publisher rabbitmq.PublisherInterface = rabbitmq.LogPublisher{}
	if cfg.RabbitMQURL != "" {
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			log.Fatalf("failed to init publisher: %v", err)
		}
	}
	defer publisher.Close()

	menuRepo := sqliterepo.NewMenuRepository(db)
	orderRepo := sqliterepo.NewOrderRepository(db)

	orderService := services.NewOrderService(orderRepo, publisher)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			DB:           0,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
		defer redisClient.Close()
		orderService.SetIdempotencyStore(redisstore.NewStore(redisClient, 24*time.Hour))
	}

	handler := httpctl.NewHandler(
		services.NewChatService(menuRepo, model),
		orderService,
		services.NewMenuService(menuRepo),
	)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), httpctl.RequestIDMiddleware(), httpctl.CORSMiddleware())
	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Starting chat order service on port %s (model %s)", cfg.Port, cfg.OpenAIModel)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Println("Shutting down server...")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Printf("server run: %v", err)
	}
}
