package config

import "os"

// Config carries the deployment settings: where to listen, which database
// to open and the secrets for cookie encryption and API tokens.
type Config struct {
	Addr      string
	DBDriver  string
	DBDSN     string
	CookieKey string
	JWTSecret string
}

func Load() Config {
	return Config{
		Addr:      getenv("RESTAURANT_ADDR", ":8080"),
		DBDriver:  getenv("RESTAURANT_DB_DRIVER", "sqlite"),
		DBDSN:     getenv("RESTAURANT_DB", "restaurant.db"),
		CookieKey: os.Getenv("RESTAURANT_COOKIE_KEY"),
		JWTSecret: getenv("RESTAURANT_JWT_SECRET", "dev"),
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
