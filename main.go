package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"alcofree-bot/internal/bot"
	"alcofree-bot/internal/config"
	"alcofree-bot/internal/engine"
	"alcofree-bot/internal/metrics"
	"alcofree-bot/internal/scheduler"
	"alcofree-bot/internal/storage"
	"alcofree-bot/internal/utils"
)

func main() {
	_ = godotenv.Load() // BOT_TOKEN etc.

	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := config.Load()
	if cfg.BotToken == "" {
		log.Fatal("BOT_TOKEN is not set")
	}

	utils.Must(os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755))
	db, err := storage.New(cfg.DatabasePath)
	utils.Must(err)

	eng := engine.New(db)

	b, err := bot.New(cfg.BotToken, eng)
	utils.Must(err)

	_, err = scheduler.Start(db, b)
	utils.Must(err)

	metrics.Init()
	metrics.Serve(cfg.HTTPAddr)

	log.Println("бот запущен")
	b.Run()
}
