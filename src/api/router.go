package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"salesboard-server/src/handlers"
	"salesboard-server/src/middleware"
	"salesboard-server/src/seed"
	"salesboard-server/src/store"
)

func NewRouter(st store.Store, seedClient *seed.Client) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.LoggingMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Get("/initialize", handlers.Initialize(st, seedClient))
	r.Get("/transactions", handlers.ListTransactions(st))
	r.Get("/statistics", handlers.Statistics(st))
	r.Get("/bar-chart", handlers.BarChart(st))
	r.Get("/pie-chart", handlers.PieChart(st))
	r.Get("/combined", handlers.Combined(st))

	return r
}
