package handlers

import (
	"log"
	"net/http"
	"strings"

	"salesboard-server/src/models"
	"salesboard-server/src/store"
	"salesboard-server/src/util"
)

const (
	defaultPage    = 1
	defaultPerPage = 10

	// Ceiling for the list offset. Anything past it is beyond any real
	// dataset, and it keeps (page-1)*perPage from overflowing into a value
	// the backends would treat differently.
	maxListOffset = 1 << 30
)

func ListTransactions(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rng, month, ok := monthWindow(w, r)
		if !ok {
			return
		}

		q := r.URL.Query()
		search := strings.TrimSpace(q.Get("search"))
		page := util.QueryInt(q, "page", defaultPage)
		perPage := util.QueryInt(q, "perPage", defaultPerPage)

		// Guard the multiply itself: an overflowed offset could go negative
		// or wrap back into range.
		offset := maxListOffset
		if page-1 <= maxListOffset/perPage {
			offset = (page - 1) * perPage
		}

		f := store.ListFilter{
			Start:  rng.Start,
			End:    rng.End,
			Search: search,
			Offset: offset,
			Limit:  perPage,
		}
		if search != "" {
			if price, ok := util.NumericValue(search); ok {
				f.Price = &price
			}
		}

		txs, err := st.ListTransactions(r.Context(), f)
		if err != nil {
			log.Printf("ERROR: Failed to list transactions for month %s: %v", month, err)
			writeError(w, http.StatusInternalServerError, "failed to list transactions", err)
			return
		}
		total, err := st.CountTransactions(r.Context(), f)
		if err != nil {
			log.Printf("ERROR: Failed to count transactions for month %s: %v", month, err)
			writeError(w, http.StatusInternalServerError, "failed to count transactions", err)
			return
		}

		if txs == nil {
			txs = []models.Transaction{}
		}
		writeJSON(w, http.StatusOK, models.TransactionPage{Transactions: txs, Total: total})
	}
}
