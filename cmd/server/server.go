package main

import (
	"context"
	"log"

	"github.com/notecastlabs/notecast-backend/internal/config"
	h "github.com/notecastlabs/notecast-backend/internal/http"
	"github.com/notecastlabs/notecast-backend/internal/repo/sqlite"

	"github.com/joho/godotenv"
	"github.com/natefinch/lumberjack"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.LogFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     14, // days
		})
	}

	repo, err := sqlite.Open(context.Background(), cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer repo.Close()

	r := h.NewRouter(cfg, repo)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
