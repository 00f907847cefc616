package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"user-hub-backend/internal/config"
	"user-hub-backend/internal/logger"
	"user-hub-backend/internal/upload"
	"user-hub-backend/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("DB CONNECTION ERROR", "error", err)
	}
	defer client.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		logger.Fatal("DB CONNECTION ERROR", "error", err)
	}
	logger.Info("database connected successfully")

	saver, err := upload.NewSaver(upload.Config{Dir: cfg.UploadDir})
	if err != nil {
		logger.Fatal("failed to prepare upload directory", "error", err)
	}

	userRepo := user.NewMongoRepository(client.Database(cfg.Database))
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService, saver)

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger(logger))

	// make uploaded files public
	app.Static(upload.PathPrefix, cfg.UploadDir)

	userHandler.RegisterRoutes(app)

	logger.Info("server is up and listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", "error", err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
}

func requestLogger(l *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		l.Info("request", "method", c.Method(), "url", c.OriginalURL(), "duration", time.Since(start))
		return err
	}
}
