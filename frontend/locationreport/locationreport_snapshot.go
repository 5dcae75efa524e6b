package locationreport

import (
	"context"
	"sort"
	"sync"
	"time"

	"stockboard/infrastructure/erp"
	"stockboard/listview"
)

// Snapshot caches the aggregated location rows so every pagination click
// does not hammer the backend. Refreshes race freely; the generation token
// makes sure only the newest fetch lands.
type Snapshot struct {
	client *erp.Client
	ttl    time.Duration
	gen    listview.Generation

	mu        sync.RWMutex
	rows      []listview.Row
	fetchedAt time.Time
}

func NewSnapshot(client *erp.Client, ttl time.Duration) *Snapshot {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Snapshot{client: client, ttl: ttl}
}

// Rows returns the cached aggregate, refreshing first when stale.
func (s *Snapshot) Rows(ctx context.Context, rc erp.RequestContext) ([]listview.Row, time.Time, error) {
	s.mu.RLock()
	rows, fetchedAt := s.rows, s.fetchedAt
	s.mu.RUnlock()

	if rows != nil && time.Since(fetchedAt) < s.ttl {
		return rows, fetchedAt, nil
	}
	if err := s.Refresh(ctx, rc); err != nil {
		// A stale snapshot beats an error page when we have one.
		if rows != nil {
			return rows, fetchedAt, nil
		}
		return nil, time.Time{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows, s.fetchedAt, nil
}

// Refresh refetches and regroups the quants. If a newer refresh started
// while this one was in flight, its result is discarded.
func (s *Snapshot) Refresh(ctx context.Context, rc erp.RequestContext) error {
	token := s.gen.Begin()

	records, err := s.client.SearchRead(ctx, rc, erpModel, erp.Query{
		Fields: quantFields,
		Limit:  5000,
		Order:  "location_id asc",
	})
	if err != nil {
		return err
	}
	s.storeIfCurrent(token, aggregateByLocation(records))
	return nil
}

// storeIfCurrent writes rows only while token still belongs to the newest
// refresh. The generation check and the write share one critical section;
// checking before taking the lock would let an older refresh overwrite rows
// a newer one stored in between.
func (s *Snapshot) storeIfCurrent(token uint64, rows []listview.Row) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.gen.Commit(token) {
		return false
	}
	s.rows = rows
	s.fetchedAt = time.Now()
	return true
}

// aggregateByLocation groups raw quants into one row per location.
func aggregateByLocation(records []listview.RawRecord) []listview.Row {
	quants := listview.Normalize(records, []listview.FieldSpec{
		{Name: "location", Source: "location_id", Kind: listview.KindRelation},
		{Name: "product", Source: "product_id", Kind: listview.KindRelation},
		{Name: "quantity", Kind: listview.KindNumber},
		{Name: "reservedQty", Source: "reserved_quantity", Kind: listview.KindNumber},
	})

	type bucket struct {
		id       int64
		name     string
		products map[int64]bool
		total    float64
		reserved float64
	}
	buckets := make(map[int64]*bucket)
	for _, q := range quants {
		locID, _ := q["locationId"].(int64)
		b, ok := buckets[locID]
		if !ok {
			b = &bucket{id: locID, name: q.String("location"), products: make(map[int64]bool)}
			buckets[locID] = b
		}
		if productID, ok := q["productId"].(int64); ok && productID != 0 {
			b.products[productID] = true
		}
		if qty, ok := q["quantity"].(float64); ok {
			b.total += qty
		}
		if qty, ok := q["reservedQty"].(float64); ok {
			b.reserved += qty
		}
	}

	rows := make([]listview.Row, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, listview.Row{
			"id":           b.id,
			"location":     b.name,
			"products":     float64(len(b.products)),
			"totalQty":     b.total,
			"reservedQty":  b.reserved,
			"availableQty": b.total - b.reserved,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].String("location") < rows[j].String("location") })
	return rows
}
