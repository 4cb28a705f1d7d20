package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shegacafe/cafe-app/broker"
	"github.com/shegacafe/cafe-app/config"
	"github.com/shegacafe/cafe-app/database"
	"github.com/shegacafe/cafe-app/kds"
	"github.com/shegacafe/cafe-app/router"
	"github.com/shegacafe/cafe-app/services"
	"github.com/shegacafe/cafe-app/utils"
)

func main() {
	cfg := config.Load()
	utils.InitLogger(cfg.LogLevel)
	utils.ConfigureJWT(cfg.JWTSecret, cfg.JWTTTL)

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	if cfg.SeedData {
		if err := database.Seed(db); err != nil {
			utils.ErrorLogger.Fatalf("Failed to seed database: %v", err)
		}
	}

	hub := kds.NewHub()
	defer hub.Close()

	sinks := services.MultiNotifier{services.LogNotifier{}, hub}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPub := broker.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaPub.Close()
		sinks = append(sinks, kafkaPub)
		utils.InfoLogger.WithField("topic", cfg.KafkaTopic).Info("publishing order events to kafka")
	}
	if cfg.RabbitURL != "" {
		rabbitPub, err := broker.DialRabbit(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			utils.ErrorLogger.WithError(err).Error("rabbitmq unavailable, order events will not be published there")
		} else {
			defer rabbitPub.Close()
			sinks = append(sinks, rabbitPub)
			utils.InfoLogger.WithField("exchange", cfg.RabbitExchange).Info("publishing order events to rabbitmq")
		}
	}

	orders := services.NewOrderService(db, sinks)
	defer orders.Wait()

	r := router.SetupRouter(router.App{
		DB:      db,
		Orders:  orders,
		Menu:    services.NewMenuService(db),
		Users:   services.NewUserService(db),
		Reports: services.NewReportService(db),
		Hub:     hub,
	}, router.Options{
		CORSOrigin:     cfg.CORSOrigin,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.InfoLogger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.WithError(err).Error("server shutdown")
	}
}
