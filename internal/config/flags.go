package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/jobtrack/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   path of the local database file
//	-k string   notification access key (enables notifications)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database file")
	fs.StringVar(&cfg.NotifyAccessKey, "k", cfg.NotifyAccessKey, "notification access key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if cfg.NotifyAccessKey != "" {
		cfg.NotifyEnabled = true
	}
}
