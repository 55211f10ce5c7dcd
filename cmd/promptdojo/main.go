package main

import (
	"flag"
	"fmt"
	"os"

	"promptdojo/internal/app"
)

func main() {
	cfg, err := app.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "promptdojo:", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.PacksDir, "packs", cfg.PacksDir, "directory of content packs")
	flag.StringVar(&cfg.UserID, "user", cfg.UserID, "user id to track progress for")
	flag.StringVar(&cfg.JournalPath, "journal", cfg.JournalPath, "path for the JSONL session journal")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "verbose logging")
	flag.BoolVar(&cfg.ASCIIOnly, "ascii", cfg.ASCIIOnly, "avoid unicode glyphs")
	flag.Parse()

	svc, err := app.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "promptdojo:", err)
		os.Exit(1)
	}
	defer svc.Close()

	if err := svc.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "promptdojo:", err)
		os.Exit(1)
	}
}
