package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shinyyama/collecta-backend/internal/config"
	"github.com/shinyyama/collecta-backend/internal/db"
)

type seedItem struct {
	Title string
	Image string
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() (err error) {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("sql db: %w", err)
	}
	defer sqlDB.Close()

	items := buildSeedItems()

	canSeed, err := shouldSeed(ctx, sqlDB)
	if err != nil {
		return err
	}
	if !canSeed {
		log.Printf("items already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("clear items: %w", err)
	}

	for _, it := range items {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO items (title, image, created_at, updated_at) VALUES (?, ?, NOW(), NOW())`,
			it.Title, it.Image,
		); err != nil {
			return fmt.Errorf("insert item %q: %w", it.Title, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	log.Printf("seeded %d items", len(items))
	return nil
}

func shouldSeed(ctx context.Context, sqlDB *sql.DB) (bool, error) {
	if os.Getenv("FORCE_SEED") == "true" {
		return true, nil
	}
	var count int64
	if err := sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
		return false, fmt.Errorf("count items: %w", err)
	}
	return count == 0, nil
}

func buildSeedItems() []seedItem {
	return []seedItem{
		{Title: "Lâmpadas", Image: "lampadas.svg"},
		{Title: "Pilhas e Baterias", Image: "baterias.svg"},
		{Title: "Papéis e Papelão", Image: "papeis-papelao.svg"},
		{Title: "Resíduos Eletrônicos", Image: "eletronicos.svg"},
		{Title: "Resíduos Orgânicos", Image: "organicos.svg"},
		{Title: "Óleo de Cozinha", Image: "oleo.svg"},
	}
}
