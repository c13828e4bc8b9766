package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/tasktracker/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// Only -d, -f, -dsn and -l are looked at; everything else in os.Args is
// left to other layers.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-f", "-dsn", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StoreDriver, "d", cfg.StoreDriver, "backing store driver (memory, sqlite, postgres, redis, s3)")
	fs.StringVar(&cfg.SQLitePath, "f", cfg.SQLitePath, "sqlite database file")
	fs.StringVar(&cfg.PostgresDSN, "dsn", cfg.PostgresDSN, "postgres DSN")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
