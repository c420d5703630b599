package main

import (
	"context"
	"log"
	"os"

	corecmd "github.com/m3rciful/paperbot/core/cmd"
	"github.com/m3rciful/paperbot/internal/app"
)

func main() {
	err := corecmd.Run(corecmd.Options[*app.Config]{
		LoadConfig: app.LoadConfig,
		Bootstrap: func(ctx context.Context, cfg *app.Config) (corecmd.TelegramApp, error) {
			return app.Bootstrap(ctx, cfg)
		},
	})
	if err != nil {
		log.Printf("paperbot: %v", err)
		os.Exit(1)
	}
}
