package main

import (
	"context"

	"github.com/dmitrijs2005/jobtrack/internal/cli"
	"github.com/dmitrijs2005/jobtrack/internal/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app := cli.NewApp(ctx, cfg)
	app.Run(ctx)
}
