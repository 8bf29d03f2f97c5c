package config

import "os"

// Config carries everything the service needs at startup. It is loaded
// once in main and passed explicitly to constructors; nothing reads the
// environment after Load returns.
type Config struct {
	MySQLUser     string
	MySQLPassword string
	MySQLHost     string
	MySQLPort     string
	MySQLDatabase string

	RedisAddr   string
	RabbitMQURL string

	AuthSecret   string
	FileStoreDir string
	Port         string
}

func Load() Config {
	return Config{
		MySQLUser:     getenv("MYSQL_USER", "root"),
		MySQLPassword: os.Getenv("MYSQL_PASSWORD"),
		MySQLHost:     getenv("MYSQL_HOST", "127.0.0.1"),
		MySQLPort:     getenv("MYSQL_PORT", "3306"),
		MySQLDatabase: getenv("MYSQL_DATABASE", "store"),
		RedisAddr:     getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RabbitMQURL:   os.Getenv("RABBITMQ_URL"),
		AuthSecret:    getenv("AUTH_SECRET", "dev-secret"),
		FileStoreDir:  getenv("FILE_STORE_DIR", "./data/files"),
		Port:          getenv("PORT", "8080"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
