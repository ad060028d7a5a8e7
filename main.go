package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/PrasadGhadge2211/PharmaApp/internal/api"
	"github.com/PrasadGhadge2211/PharmaApp/internal/config"
	"github.com/PrasadGhadge2211/PharmaApp/internal/database"
	"github.com/PrasadGhadge2211/PharmaApp/internal/migrations"
	"github.com/PrasadGhadge2211/PharmaApp/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	db := database.Connect(cfg.DatabaseDSN)
	defer db.Close()

	migrations.Run(db)

	st := store.New(db, store.InvoicePolicy(cfg.InvoicePolicy))
	handler := api.New(st, cfg)

	log.Printf("PharmaApp POS server starting on :%s", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
