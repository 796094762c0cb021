package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/tastebook/tastebook/kafka"
	"github.com/tastebook/tastebook/pkg/logger"
)

const popularityKey = "recipe:popularity"

func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "tastebook-notifier")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	groupID := getEnv("KAFKA_GROUP_ID", "tastebook-notifier")

	consumer, err := kafka.NewConsumer(brokers, groupID, []string{kafka.TopicRecipeActivity})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
	}
	defer consumer.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})
	defer redisClient.Close()

	// Favorite toggles move recipes up and down a sorted-set leaderboard;
	// deletes drop the entry.
	consumer.RegisterHandler(kafka.EventTypeFavoriteAdded, func(ctx context.Context, event kafka.RecipeActivityEvent) error {
		return redisClient.ZIncrBy(ctx, popularityKey, 1, recipeMember(event.RecipeID)).Err()
	})
	consumer.RegisterHandler(kafka.EventTypeFavoriteRemoved, func(ctx context.Context, event kafka.RecipeActivityEvent) error {
		return redisClient.ZIncrBy(ctx, popularityKey, -1, recipeMember(event.RecipeID)).Err()
	})
	consumer.RegisterHandler(kafka.EventTypeRecipeDeleted, func(ctx context.Context, event kafka.RecipeActivityEvent) error {
		return redisClient.ZRem(ctx, popularityKey, recipeMember(event.RecipeID)).Err()
	})
	consumer.RegisterHandler(kafka.EventTypeRecipeCreated, logActivity)
	consumer.RegisterHandler(kafka.EventTypeRecipeUpdated, logActivity)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start Kafka consumer")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down notifier...")
}

func logActivity(ctx context.Context, event kafka.RecipeActivityEvent) error {
	logger.Logger.Info().
		Str("event_type", event.EventType).
		Uint("recipe_id", event.RecipeID).
		Str("recipe_name", event.RecipeName).
		Uint("author_id", event.AuthorID).
		Msg("Recipe activity")
	return nil
}

func recipeMember(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
