package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppPort          string
	DBDSN            string
	JWTSecret        string
	JWTExpiresMin    int
	RedisAddr        string
	RedisPassword    string
	FirebaseCredFile string
	AllowOrigins     string
}

func Load() Config {
	// 86400 minutes = 60 days; mobile clients should not need to re-login often.
	expires, _ := strconv.Atoi(get("JWT_EXPIRES_MIN", "86400"))
	return Config{
		AppPort:          get("APP_PORT", "8080"),
		DBDSN:            must("DB_DSN"),
		JWTSecret:        must("JWT_SECRET"),
		JWTExpiresMin:    expires,
		RedisAddr:        get("REDIS_ADDR", ""),
		RedisPassword:    get("REDIS_PASSWORD", ""),
		FirebaseCredFile: get("FIREBASE_CREDENTIALS", ""),
		AllowOrigins:     get("ALLOW_ORIGINS", "*"),
	}
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
