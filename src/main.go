package main

import (
	"context"
	"log"
	"net/http"

	"salesboard-server/src/api"
	"salesboard-server/src/config"
	"salesboard-server/src/seed"
	"salesboard-server/src/store"
	"salesboard-server/src/store/postgres"
	"salesboard-server/src/store/sqlite"
)

func main() {
	cfg := config.Load()

	// Open the transaction store
	var (
		st  store.Store
		err error
	)
	switch cfg.StoreBackend {
	case "sqlite":
		st, err = sqlite.New(cfg.SQLitePath)
	default:
		st, err = postgres.New(context.Background(), cfg.DatabaseURL)
	}
	if err != nil {
		log.Fatalf("Store connection failed: %v", err)
	}
	defer st.Close()

	store.InitCache()

	seedClient := seed.NewClient(cfg.SeedURL, cfg.SeedTimeout)

	// Router
	router := api.NewRouter(st, seedClient)

	log.Println("API server running on port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
