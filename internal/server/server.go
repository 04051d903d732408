package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

type Server struct {
	port        int
	store       RoomStore
	roomManager *RoomManager
	rateLimiter *RateLimiter

	done chan struct{}
}

// NewServer wires the store, room manager and HTTP stack from the
// environment and returns both the custom server (for shutdown hooks)
// and the configured http.Server.
func NewServer() (*Server, *http.Server) {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	store, err := storeFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize room store: %v", err)
	}

	rps := envInt("RATE_LIMIT_RPS", 20)

	s := &Server{
		port:        port,
		store:       store,
		roomManager: NewRoomManager(store),
		rateLimiter: NewRateLimiter(rps, time.Second),
		done:        make(chan struct{}),
	}

	// Start background tasks
	go s.cleanupTask()

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s, httpServer
}

// storeFromEnv selects the room store driver. Memory is the default so
// the server runs with zero configuration; redis and postgres cover
// deployments where room state must outlive the process.
func storeFromEnv() (RoomStore, error) {
	switch driver := os.Getenv("STORE_DRIVER"); driver {
	case "", "memory":
		log.Println("Using in-memory room store")
		return NewMemoryStore(), nil

	case "redis":
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		ttl := time.Duration(envInt("ROOM_TTL_HOURS", 24)) * time.Hour
		log.Printf("Using redis room store at %s (ttl %s)", addr, ttl)
		return NewRedisStore(addr, os.Getenv("REDIS_PASSWORD"), envInt("REDIS_DB", 0), ttl)

	case "postgres":
		url := os.Getenv("DATABASE_URL")
		if url == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
		log.Println("Using postgres room store")
		return NewPostgresStore(context.Background(), url)

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", driver)
	}
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// cleanupTask runs hourly: finished rooms older than 24 hours are
// deleted (when the store supports it) and stale rate-limiter entries
// are dropped. 24 hours gives players time to review the outcome.
func (s *Server) cleanupTask() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
		}

		s.rateLimiter.Cleanup()

		cleaner, ok := s.store.(CleanupStore)
		if !ok {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		deleted, err := cleaner.Cleanup(ctx, 24*time.Hour)
		cancel()

		if err != nil {
			log.Printf("Cleanup task failed: %v", err)
			continue
		}
		if deleted > 0 {
			log.Printf("Cleanup task: deleted %d finished rooms", deleted)
		}
	}
}

// Shutdown stops background tasks and releases the store.
func (s *Server) Shutdown(ctx context.Context) error {
	close(s.done)

	if err := s.store.Close(); err != nil {
		return fmt.Errorf("failed to close room store: %w", err)
	}

	log.Println("Room store closed")
	return nil
}
