package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port               string
	DBPath             string
	LogFile            string
	PodcastWSURL       string
	PodcastWaitTimeout time.Duration
	GeminiAPIKey       string
	GeminiModel        string
}

func Load() Config {
	return Config{
		Port:               getenv("PORT", "8080"),
		DBPath:             getenv("DB_PATH", "data/notecast.db"),
		LogFile:            getenv("LOG_FILE", ""),
		PodcastWSURL:       getenv("PODCAST_WS_URL", ""),
		PodcastWaitTimeout: getseconds("PODCAST_WAIT_TIMEOUT", 30),
		GeminiAPIKey:       getenv("GEMINI_API_KEY", ""),
		GeminiModel:        getenv("GEMINI_MODEL", "gemini-2.0-flash"),
	}
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getseconds(k string, d int) time.Duration {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(d) * time.Second
}
