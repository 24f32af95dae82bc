package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ify-osakwe/hygea/analytics-service/internal/tracker"
	"github.com/ify-osakwe/hygea/shared/events"
	redisClient "github.com/ify-osakwe/hygea/shared/redis"
)

func main() {
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	redis, err := redisClient.NewClient(redisAddr, "", 0)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	eventTracker := tracker.NewEventTracker(redis.Client)

	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	consumer := events.NewConsumer(events.ConsumerConfig{
		Brokers: brokers,
		GroupID: "analytics-service-group",
		Topic:   events.PatientEventsTopic,
		Handler: eventTracker.HandlePatientEvent,
	})
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down...")
		cancel()
	}()

	log.Printf("Analytics service consuming %s", events.PatientEventsTopic)
	if err := consumer.Start(ctx); err != nil && err != context.Canceled {
		log.Fatalf("Consumer stopped: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
