package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Dehaka844/chatbot-pedidos/internal/domain"
	"github.com/Dehaka844/chatbot-pedidos/internal/infra/rabbitmq"
	dbinfra "github.com/Dehaka844/chatbot-pedidos/internal/infra/sqlite"
	sqliterepo "github.com/Dehaka844/chatbot-pedidos/internal/repository/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memoryIdempotencyStore has the same SETNX semantics as the redis store.
type memoryIdempotencyStore struct {
	mu      sync.Mutex
	pending map[string]bool
	ids     map[string]uint64
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{pending: map[string]bool{}, ids: map[string]uint64{}}
}

func (s *memoryIdempotencyStore) Claim(_ context.Context, key string) (uint64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.ids[key]; ok {
		return id, false, nil
	}
	if s.pending[key] {
		return NoOrderID, false, nil
	}
	s.pending[key] = true
	return NoOrderID, true, nil
}

func (s *memoryIdempotencyStore) Complete(_ context.Context, key string, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, key)
	s.ids[key] = id
	return nil
}

func (s *memoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, key)
	return nil
}

func openOrderDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := dbinfra.Open(filepath.Join(t.TempDir(), "pedidos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbinfra.Close(db) })
	return db
}

func countOrders(t *testing.T, db *gorm.DB) (orders, items int64) {
	t.Helper()
	require.NoError(t, db.Model(&domain.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&domain.OrderItem{}).Count(&items).Error)
	return orders, items
}

type placeResult struct {
	id  uint64
	err error
}

func placeConcurrently(svcs []*OrderService, n int, key string, req domain.OrderRequest) []placeResult {
	results := make([]placeResult, n)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			id, err := svcs[i%len(svcs)].PlaceOrder(context.Background(), key, req)
			results[i] = placeResult{id: id, err: err}
		}(i)
	}
	close(start)
	wg.Wait()
	return results
}

func TestOrderService_PlaceOrder_ConcurrentRetriesInsertOnce(t *testing.T) {
	db := openOrderDB(t)
	svc := NewOrderService(sqliterepo.NewOrderRepository(db), rabbitmq.LogPublisher{})
	svc.SetIdempotencyStore(newMemoryIdempotencyStore())
	req := CreateMockOrderRequest(TestAddress, margaritaItem(2))

	results := placeConcurrently([]*OrderService{svc}, 8, TestIdempotencyKey, req)

	first := results[0].id
	assert.NotEqual(t, NoOrderID, first)
	for _, r := range results {
		assert.NoError(t, r.err)
		assert.Equal(t, first, r.id)
	}
	orders, items := countOrders(t, db)
	assert.Equal(t, int64(1), orders)
	assert.Equal(t, int64(1), items)

	id, err := svc.PlaceOrder(context.Background(), TestIdempotencyKey, req)
	assert.NoError(t, err)
	assert.Equal(t, first, id)
	orders, _ = countOrders(t, db)
	assert.Equal(t, int64(1), orders)
}

func TestOrderService_PlaceOrder_ConcurrentRetriesAcrossInstances(t *testing.T) {
	db := openOrderDB(t)
	store := newMemoryIdempotencyStore()
	svcs := make([]*OrderService, 2)
	for i := range svcs {
		svcs[i] = NewOrderService(sqliterepo.NewOrderRepository(db), rabbitmq.LogPublisher{})
		svcs[i].SetIdempotencyStore(store)
	}
	req := CreateMockOrderRequest(TestAddress, margaritaItem(1))

	results := placeConcurrently(svcs, 8, TestIdempotencyKey, req)

	var stored uint64
	for _, r := range results {
		if r.err != nil {
			assert.ErrorIs(t, r.err, ErrOrderInProgress)
			assert.Equal(t, NoOrderID, r.id)
			continue
		}
		if stored == NoOrderID {
			stored = r.id
		}
		assert.Equal(t, stored, r.id)
	}
	assert.NotEqual(t, NoOrderID, stored)
	orders, _ := countOrders(t, db)
	assert.Equal(t, int64(1), orders)
}
