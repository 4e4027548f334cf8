package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"salesboard-server/src/models"
	"salesboard-server/src/store"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.db")
	s, err := New(path)
	if err != nil {
		t.Fatalf("expected store, got %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func date(month time.Month, day int) time.Time {
	return time.Date(2022, month, day, 12, 0, 0, 0, time.UTC)
}

func fixture() []models.Transaction {
	return []models.Transaction{
		{ID: 1, Title: "Walnut Desk", Price: 120.5, Description: "solid walnut writing desk", Category: "furniture", Sold: true, DateOfSale: date(time.January, 5)},
		{ID: 2, Title: "Desk Lamp", Price: 45, Description: "adjustable brass lamp", Category: "lighting", Sold: false, DateOfSale: date(time.January, 18)},
		{ID: 3, Title: "Bookshelf", Price: 45, Description: "five shelf oak bookcase", Category: "furniture", Sold: true, DateOfSale: date(time.January, 30)},
		{ID: 4, Title: "Floor Lamp", Price: 89.99, Description: "arc floor lamp", Category: "lighting", Sold: true, DateOfSale: time.Date(2022, time.February, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func janFilter() store.ListFilter {
	return store.ListFilter{
		Start: time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2022, time.February, 1, 0, 0, 0, 0, time.UTC),
		Limit: 10,
	}
}

func TestReplaceAllAndRange(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	count, err := s.ReplaceAll(ctx, fixture())
	if err != nil {
		t.Fatalf("expected reseed, got %v", err)
	}
	if count != 4 {
		t.Fatalf("expected 4 inserted, got %d", count)
	}

	jan := janFilter()

	// The February 1st midnight record sits outside January's half-open window.
	txs, err := s.TransactionsInRange(ctx, jan.Start, jan.End)
	if err != nil {
		t.Fatalf("expected range query, got %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("expected 3 January records, got %d", len(txs))
	}
	for i, want := range []int64{1, 2, 3} {
		if txs[i].ID != want {
			t.Fatalf("record %d: expected id %d, got %d", i, want, txs[i].ID)
		}
	}

	got := txs[0]
	if got.Title != "Walnut Desk" || got.Price != 120.5 || !got.Sold || got.Category != "furniture" {
		t.Fatalf("fields did not survive storage: %+v", got)
	}
	if !got.DateOfSale.Equal(date(time.January, 5)) {
		t.Fatalf("expected date %v, got %v", date(time.January, 5), got.DateOfSale)
	}

	feb := store.ListFilter{Start: jan.End, End: time.Date(2022, time.March, 1, 0, 0, 0, 0, time.UTC), Limit: 10}
	txs, err = s.ListTransactions(ctx, feb)
	if err != nil {
		t.Fatalf("expected list, got %v", err)
	}
	if len(txs) != 1 || txs[0].ID != 4 {
		t.Fatalf("expected only the February record, got %+v", txs)
	}
}

func TestPagination(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.ReplaceAll(ctx, fixture()); err != nil {
		t.Fatalf("expected reseed, got %v", err)
	}

	f := janFilter()
	f.Offset, f.Limit = 1, 1
	txs, err := s.ListTransactions(ctx, f)
	if err != nil {
		t.Fatalf("expected list, got %v", err)
	}
	if len(txs) != 1 || txs[0].ID != 2 {
		t.Fatalf("expected second January record, got %+v", txs)
	}

	total, err := s.CountTransactions(ctx, f)
	if err != nil {
		t.Fatalf("expected count, got %v", err)
	}
	if total != 3 {
		t.Fatalf("expected pagination-independent total 3, got %d", total)
	}
}

func TestSearchFilters(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.ReplaceAll(ctx, fixture()); err != nil {
		t.Fatalf("expected reseed, got %v", err)
	}

	cases := []struct {
		search string
		price  *float64
		want   []int64
	}{
		{search: "LAMP", want: []int64{2}},
		{search: "oak", want: []int64{3}},
		{search: "45", price: f64(45), want: []int64{2, 3}},
		// Non-numeric terms matching no text still match the whole window
		// through the trivially true price arm.
		{search: "zzz", want: []int64{1, 2, 3}},
	}
	for i, c := range cases {
		f := janFilter()
		f.Search, f.Price = c.search, c.price
		txs, err := s.ListTransactions(ctx, f)
		if err != nil {
			t.Fatalf("case %d: expected list, got %v", i, err)
		}
		if len(txs) != len(c.want) {
			t.Fatalf("case %d: expected %d records, got %d", i, len(c.want), len(txs))
		}
		for j := range c.want {
			if txs[j].ID != c.want[j] {
				t.Fatalf("case %d: expected ids %v, got id %d at %d", i, c.want, txs[j].ID, j)
			}
		}
	}
}

func TestDatesNormalizeToUTC(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	// 2am February 1st in IST is still January in UTC.
	ist := time.FixedZone("IST", 5*3600+1800)
	tx := models.Transaction{ID: 9, Title: "Rug", Price: 30, Description: "wool rug", Category: "decor", DateOfSale: time.Date(2022, time.February, 1, 2, 0, 0, 0, ist)}
	if _, err := s.ReplaceAll(ctx, []models.Transaction{tx}); err != nil {
		t.Fatalf("expected reseed, got %v", err)
	}

	jan := janFilter()
	txs, err := s.TransactionsInRange(ctx, jan.Start, jan.End)
	if err != nil {
		t.Fatalf("expected range query, got %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("expected offset date to land in January, got %d records", len(txs))
	}
	want := time.Date(2022, time.January, 31, 20, 30, 0, 0, time.UTC)
	if !txs[0].DateOfSale.Equal(want) {
		t.Fatalf("expected %v, got %v", want, txs[0].DateOfSale)
	}
}

func TestReseedReplaces(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.ReplaceAll(ctx, fixture()); err != nil {
		t.Fatalf("expected reseed, got %v", err)
	}
	count, err := s.ReplaceAll(ctx, fixture()[:1])
	if err != nil {
		t.Fatalf("expected reseed, got %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 inserted, got %d", count)
	}

	total, err := s.CountTransactions(ctx, janFilter())
	if err != nil {
		t.Fatalf("expected count, got %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 record after reseed, got %d", total)
	}
}

func TestReplaceAllRollsBackOnFailure(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.ReplaceAll(ctx, fixture()); err != nil {
		t.Fatalf("expected reseed, got %v", err)
	}

	// The duplicate id fails the batch after the delete and first insert
	// have already run.
	dup := []models.Transaction{
		{ID: 7, Title: "Mirror", Price: 60, Description: "round wall mirror", Category: "decor", Sold: true, DateOfSale: date(time.January, 8)},
		{ID: 7, Title: "Mirror", Price: 60, Description: "round wall mirror", Category: "decor", Sold: true, DateOfSale: date(time.January, 9)},
	}
	if _, err := s.ReplaceAll(ctx, dup); err == nil {
		t.Fatal("expected duplicate id to fail the reseed")
	}

	jan := janFilter()
	total, err := s.CountTransactions(ctx, jan)
	if err != nil {
		t.Fatalf("expected count, got %v", err)
	}
	if total != 3 {
		t.Fatalf("expected original 3 January records after rollback, got %d", total)
	}
	txs, err := s.TransactionsInRange(ctx, jan.Start, jan.End)
	if err != nil {
		t.Fatalf("expected range query, got %v", err)
	}
	if txs[0].Title != "Walnut Desk" {
		t.Fatalf("expected original records intact, got %+v", txs[0])
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	s, path := newTestStore(t)
	ctx := context.Background()

	if _, err := s.ReplaceAll(ctx, fixture()); err != nil {
		t.Fatalf("expected reseed, got %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("expected close, got %v", err)
	}

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("expected reopen, got %v", err)
	}
	defer reopened.Close()

	total, err := reopened.CountTransactions(ctx, janFilter())
	if err != nil {
		t.Fatalf("expected count, got %v", err)
	}
	if total != 3 {
		t.Fatalf("expected 3 January records after reopen, got %d", total)
	}
}

func f64(v float64) *float64 { return &v }
