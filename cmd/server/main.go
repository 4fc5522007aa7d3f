package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/diary/internal/buildinfo"
	"github.com/dmitrijs2005/diary/internal/server"
	"github.com/dmitrijs2005/diary/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg, os.Stdout)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
