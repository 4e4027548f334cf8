package handlers

import (
	"log"
	"net/http"

	"salesboard-server/src/seed"
	"salesboard-server/src/store"
)

// Initialize fetches the upstream dataset and replaces the stored collection
// with it, then drops every cached month aggregate.
func Initialize(st store.Store, client *seed.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		txs, err := client.FetchTransactions(r.Context())
		if err != nil {
			log.Printf("ERROR: Failed to fetch seed data: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to fetch seed data", err)
			return
		}

		count, err := st.ReplaceAll(r.Context(), txs)
		if err != nil {
			log.Printf("ERROR: Failed to reseed store: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to reseed store", err)
			return
		}
		store.ClearAllMonthCaches()

		log.Printf("INFO: Store initialized with %d transactions", count)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "database initialized",
			"count":   count,
		})
	}
}
