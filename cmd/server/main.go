package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/dkurilov/notehub/internal/server"
	"github.com/dkurilov/notehub/internal/server/config"
)

func main() {

	// Missing .env is fine: configuration also comes from flags and the
	// environment itself.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
