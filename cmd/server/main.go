package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	"github.com/marketbay/catalog-server/app"
	"github.com/marketbay/catalog-server/config"
	"github.com/marketbay/catalog-server/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, stop := sigctx.NotifyContext()
	defer stop()

	_ = godotenv.Load()
	cfg := config.Load()

	catalogServer := app.New(cfg)
	catalogServer.Run(stop)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	catalogServer.Close(ctx)
}
