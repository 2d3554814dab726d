package config

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// Config holds everything the client gateway needs at startup. The
// platform backend and the socket server are remote collaborators; all
// other fields select the local state backend.
type Config struct {
	ListenAddr string

	BackendURL string
	SocketURL  string

	// PublicBaseURL is the base of the guest-facing table links
	// embedded in QR codes (https://<host>/t/<shortCode>).
	PublicBaseURL string

	// QRImageURL is the external QR rendering service, parameterized
	// with size and data. Treated as opaque.
	QRImageURL string

	// StoreBackend is one of "file", "redis", "postgres".
	StoreBackend string
	StatePath    string
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		ListenAddr:    getEnv("LISTEN_ADDR", ":8090"),
		BackendURL:    getEnv("BACKEND_URL", "http://localhost:8000/api"),
		SocketURL:     getEnv("SOCKET_URL", "ws://localhost:8000/api/socket.io"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8090"),
		QRImageURL:    getEnv("QR_IMAGE_URL", "https://api.qrserver.com/v1/create-qr-code/"),
		StoreBackend:  getEnv("STORE_BACKEND", "file"),
		StatePath:     getEnv("STATE_PATH", "./state/tableside.json"),
	}
}

func MustInitPostgres() *sql.DB {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")

	connStr := "host=" + dbHost + " port=" + dbPort + " user=" + dbUser +
		" password=" + dbPassword + " dbname=" + dbName + " sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: getEnv("REDIS_HOST", "localhost") + ":" + getEnv("REDIS_PORT", "6379"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
