// Package main is the entry point for the taskdeckd development backend.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"taskdeck/internal/config"
	"taskdeck/internal/server"
)

func main() {
	godotenv.Load()

	var (
		addr    = flag.String("addr", ":3000", "listen address")
		dataDir = flag.String("data", "", "storage directory (default: config dir /data)")
	)
	flag.Parse()

	dir := *dataDir
	if dir == "" {
		dir = filepath.Join(config.DefaultConfigDir(), "data")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		log.Fatalf("failed to create data directory: %v", err)
	}

	secret := os.Getenv("TASKDECK_JWT_SECRET")
	if secret == "" {
		log.Fatal("TASKDECK_JWT_SECRET is required")
	}

	st, err := server.OpenStore(dir)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	srv := server.New(st, []byte(secret))
	if err := srv.Router().Run(*addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
