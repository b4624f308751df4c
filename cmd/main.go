package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/romeo-folie/Todo-api/config"
	"github.com/romeo-folie/Todo-api/db"
	authhandler "github.com/romeo-folie/Todo-api/internal/auth/handler"
	authrepo "github.com/romeo-folie/Todo-api/internal/auth/repository/mongodb"
	authservice "github.com/romeo-folie/Todo-api/internal/auth/service"
	todohandler "github.com/romeo-folie/Todo-api/internal/todo/handler"
	todorepo "github.com/romeo-folie/Todo-api/internal/todo/repository/mongodb"
	todoservice "github.com/romeo-folie/Todo-api/internal/todo/service"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()
	client, err := db.NewMongoClient(ctx, cfg.MongoURI)
	if err != nil {
		logrus.WithError(err).Fatal("mongo connection failed")
	}
	database := client.Database(cfg.DBName)

	userRepo := authrepo.NewMongoUserRepository(database)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logrus.WithError(err).Fatal("index bootstrap failed")
	}
	todoRepo := todorepo.NewMongoTodoRepository(database)

	tokenService := authservice.NewTokenService(cfg.JWTSecret)
	userService := authservice.NewUserService(userRepo, tokenService)
	todoService := todoservice.NewTodoService(todoRepo)

	app := fiber.New()
	authhandler.RegisterRoutes(app, authhandler.NewAuthHandler(userService, tokenService))
	todohandler.RegisterRoutes(app, todohandler.NewTodoHandler(todoService))

	go func() {
		logrus.WithField("port", cfg.Port).Info("server starting")
		if err := app.Listen(":" + cfg.Port); err != nil {
			logrus.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		logrus.WithError(err).Error("server shutdown failed")
	}

	disconnectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Disconnect(disconnectCtx); err != nil {
		logrus.WithError(err).Error("mongo disconnect failed")
	}
}
