package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/shinyyama/collecta-backend/internal/config"
	"github.com/shinyyama/collecta-backend/internal/db"
	"github.com/shinyyama/collecta-backend/internal/model"
	"github.com/shinyyama/collecta-backend/internal/server"
	"github.com/shinyyama/collecta-backend/internal/storage"
)

// set via -ldflags at build time
var (
	gitSHA    = "dev"
	buildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	var uploader storage.Uploader
	if cfg.StorageBucket != "" {
		uploader, err = storage.NewGCSUploader(context.Background(), cfg.StorageBucket, cfg.StorageCredentialsFile)
		if err != nil {
			log.Fatalf("storage init error: %v", err)
		}
		defer uploader.Close()
	} else {
		log.Printf("STORAGE_BUCKET not set; image uploads disabled")
	}

	srv := server.New(nil, cfg, uploader, gitSHA, buildTime)

	addr := ":" + cfg.Port

	errCh := make(chan error, 1)

	go func() {
		log.Printf("starting server on %s", addr)
		errCh <- srv.Start(addr)
	}()

	go func() {
		conn, err := db.Connect(cfg)
		if err != nil {
			log.Printf("db connect error: %v", err)
			return
		}
		srv.SetDB(conn)
		if err := conn.AutoMigrate(
			&model.Item{},
			&model.Location{},
			&model.LocationItem{},
			&model.User{},
		); err != nil {
			log.Printf("auto migrate error: %v", err)
		}
	}()

	if err := <-errCh; err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
