package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"salesboard-server/src/analytics"
	"salesboard-server/src/models"
	"salesboard-server/src/months"
	"salesboard-server/src/store"
)

// monthWindow validates the month query parameter and resolves its date
// range, writing the error response itself when validation fails.
func monthWindow(w http.ResponseWriter, r *http.Request) (months.Range, string, bool) {
	month := strings.TrimSpace(r.URL.Query().Get("month"))
	if month == "" {
		writeError(w, http.StatusBadRequest, "month is required", nil)
		return months.Range{}, "", false
	}
	rng, err := months.Resolve(month)
	if err != nil {
		log.Printf("ERROR: Invalid month param %q: %v", month, err)
		writeError(w, http.StatusBadRequest, "invalid month", err)
		return months.Range{}, "", false
	}
	return rng, strings.ToLower(month), true
}

func Statistics(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rng, month, ok := monthWindow(w, r)
		if !ok {
			return
		}
		stats, err := monthStatistics(r.Context(), st, rng, month)
		if err != nil {
			log.Printf("ERROR: Failed to compute statistics for month %s: %v", month, err)
			writeError(w, http.StatusInternalServerError, "failed to compute statistics", err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func BarChart(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rng, month, ok := monthWindow(w, r)
		if !ok {
			return
		}
		rows, err := monthBarChart(r.Context(), st, rng, month)
		if err != nil {
			log.Printf("ERROR: Failed to build bar chart for month %s: %v", month, err)
			writeError(w, http.StatusInternalServerError, "failed to build bar chart", err)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func PieChart(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rng, month, ok := monthWindow(w, r)
		if !ok {
			return
		}
		rows, err := monthPieChart(r.Context(), st, rng, month)
		if err != nil {
			log.Printf("ERROR: Failed to build pie chart for month %s: %v", month, err)
			writeError(w, http.StatusInternalServerError, "failed to build pie chart", err)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

// Combined builds all three aggregates concurrently. Each goroutine writes
// its own field of the report; Wait orders those writes before the encode.
func Combined(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rng, month, ok := monthWindow(w, r)
		if !ok {
			return
		}

		var report models.CombinedReport
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			stats, err := monthStatistics(ctx, st, rng, month)
			if err != nil {
				return err
			}
			report.Statistics = stats
			return nil
		})
		g.Go(func() error {
			rows, err := monthBarChart(ctx, st, rng, month)
			if err != nil {
				return err
			}
			report.BarChart = rows
			return nil
		})
		g.Go(func() error {
			rows, err := monthPieChart(ctx, st, rng, month)
			if err != nil {
				return err
			}
			report.PieChart = rows
			return nil
		})
		if err := g.Wait(); err != nil {
			log.Printf("ERROR: Failed to build combined report for month %s: %v", month, err)
			writeError(w, http.StatusInternalServerError, "failed to build combined report", err)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

func monthStatistics(ctx context.Context, st store.Store, rng months.Range, month string) (models.Statistics, error) {
	// The key carries the reseed epoch, captured before the store read. A
	// reseed that lands mid-read bumps the epoch, so the Set below can only
	// repopulate a key no later read will look up.
	cacheKey := fmt.Sprintf("statistics:%s:%d", month, store.CacheEpoch())
	if cached, found := store.GetMonthCache(cacheKey); found {
		if stats, ok := cached.(models.Statistics); ok {
			return stats, nil
		}
	}

	txs, err := st.TransactionsInRange(ctx, rng.Start, rng.End)
	if err != nil {
		return models.Statistics{}, err
	}
	stats := analytics.ComputeStatistics(txs)
	store.SetMonthCache(cacheKey, stats)
	return stats, nil
}

func monthBarChart(ctx context.Context, st store.Store, rng months.Range, month string) ([]models.BucketCount, error) {
	cacheKey := fmt.Sprintf("bar-chart:%s:%d", month, store.CacheEpoch())
	if cached, found := store.GetMonthCache(cacheKey); found {
		if rows, ok := cached.([]models.BucketCount); ok {
			return rows, nil
		}
	}

	txs, err := st.TransactionsInRange(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	rows := analytics.BuildBarChart(txs)
	store.SetMonthCache(cacheKey, rows)
	return rows, nil
}

func monthPieChart(ctx context.Context, st store.Store, rng months.Range, month string) ([]models.CategoryCount, error) {
	cacheKey := fmt.Sprintf("pie-chart:%s:%d", month, store.CacheEpoch())
	if cached, found := store.GetMonthCache(cacheKey); found {
		if rows, ok := cached.([]models.CategoryCount); ok {
			return rows, nil
		}
	}

	txs, err := st.TransactionsInRange(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	rows := analytics.BuildPieChart(txs)
	store.SetMonthCache(cacheKey, rows)
	return rows, nil
}
