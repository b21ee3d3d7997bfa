package main

import (
	"log"
	"net/http"
	"os"
	"time"

	viomi "github.com/homectl/viomi"
	"github.com/homectl/viomi/internal/server"
)

func main() {
	httpAddr := envOrDefault("VIOMI_HTTP_ADDR", ":8080")
	broker := envOrDefault("VIOMI_MQTT_BROKER", "tcp://localhost:1883")
	topic := envOrDefault("VIOMI_MQTT_TOPIC", "viomi/vacuum")

	transport, err := viomi.NewMQTTTransport(viomi.MQTTConfig{
		BrokerURL:   broker,
		Username:    os.Getenv("VIOMI_MQTT_USERNAME"),
		Password:    os.Getenv("VIOMI_MQTT_PASSWORD"),
		TopicPrefix: topic,
		Timeout:     2 * time.Second,
		Retries:     3,
	})
	if err != nil {
		log.Fatalf("mqtt connect: %v", err)
	}
	session := viomi.NewSession(transport, viomi.Config{})
	defer session.Close()

	registry := server.MetricsRegistry(viomi.NewMetricsCollector(session))

	mux := http.NewServeMux()
	mux.HandleFunc("/health", server.HealthHandler)
	mux.Handle("/metrics", server.MetricsHandler(registry))

	log.Printf("serving metrics on %s (device %s via %s)", httpAddr, topic, broker)
	if err := server.NewHTTPServer(httpAddr, mux).ListenAndServe(); err != nil {
		log.Fatalf("http serve: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
