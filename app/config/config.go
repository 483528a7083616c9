package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
)

type Config struct {
	DB             *sql.DB
	Port           string
	FrontendURL    string
	ExportPassword string
	StorageRoot    string
	KIVLocksRow    bool
}

var AppConfig *Config

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB() {
	var psqlInfo string

	if url := os.Getenv("DATABASE_URL"); url != "" {
		psqlInfo = url
		log.Println("Using DATABASE_URL connection string")
	} else {
		host := getenv("DB_HOST", "localhost")
		port := getenv("DB_PORT", "5432")
		user := getenv("DB_USER", "postgres")
		password := getenv("DB_PASSWORD", "")
		dbname := getenv("DB_NAME", "swanson_portal")

		psqlInfo = fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable connect_timeout=60",
			host, port, user, dbname)
		if password != "" {
			psqlInfo += " password=" + password
		}
		log.Printf("Attempting to connect to database at %s:%s", host, port)
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Printf("Database connection failed: %v", err)
		log.Println("Set DATABASE_URL or DB_HOST/DB_PORT/DB_USER/DB_PASSWORD/DB_NAME and retry")
		log.Fatal("Cannot establish database connection")
	}

	AppConfig = &Config{
		DB:             db,
		Port:           getenv("PORT", "3000"),
		FrontendURL:    os.Getenv("FRONTEND_URL"),
		ExportPassword: getenv("EXPORT_PASSWORD", "2256"),
		StorageRoot:    getenv("STORAGE_ROOT", "./storage"),
		KIVLocksRow:    getenv("KIV_LOCKS_ROW", "false") == "true",
	}
	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

// CORSOrigins returns the comma-joined origin allowlist for the cors middleware.
func CORSOrigins() string {
	origins := "http://127.0.0.1:5500,http://localhost:5500,http://localhost:3000," +
		"https://swanson-india-portal.vercel.app"
	if AppConfig != nil && AppConfig.FrontendURL != "" {
		origins += "," + AppConfig.FrontendURL
	}
	return origins
}
