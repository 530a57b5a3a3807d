// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"rythmons/cmd"
	"rythmons/internal/data/repository"
	"rythmons/internal/oauth"
	"rythmons/internal/wire"
	"rythmons/pkg/database"
	"rythmons/pkg/mailer"
	"rythmons/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("env", config.App.Env),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Redis backs single-use OAuth state
	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})
	defer redisClient.Close()

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Sweep long-expired sessions in the background
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := repos.Session.DeleteExpired(ctx); err != nil {
				logger.Warn("Session cleanup failed", zap.Error(err))
			}
			cancel()
		}
	}()

	mail := mailer.New(config.Mail, logger)

	google := oauth.NewGoogleProvider(oauth.Config{
		ClientID:     config.OAuth.GoogleClientID,
		ClientSecret: config.OAuth.GoogleClientSecret,
		RedirectURI:  config.App.BaseURL + "/api/auth/google/callback",
	}, &http.Client{Timeout: 10 * time.Second})

	states := oauth.NewRedisStateStore(redisClient)

	// Wire all dependencies
	app := wire.Wiring(repos, config, mail, google, states, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
