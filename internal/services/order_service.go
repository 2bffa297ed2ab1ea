package services

import (
	"context"
	"errors"
	"log"

	"github.com/Dehaka844/chatbot-pedidos/internal/domain"
	rabbit "github.com/Dehaka844/chatbot-pedidos/internal/infra/rabbitmq"
	redisstore "github.com/Dehaka844/chatbot-pedidos/internal/infra/redis"
	"github.com/Dehaka844/chatbot-pedidos/internal/repository"

	"golang.org/x/sync/singleflight"
)

// NoOrderID is returned in place of an id whenever an order could not be stored.
const NoOrderID uint64 = 0

const OrderCreatedPattern = "order.created"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrEmptyOrder    = errors.New("order has no items")

	ErrOrderInProgress = errors.New("an order with this idempotency key is still being processed")
)

type OrderService struct {
	repo        repository.OrderRepository
	publisher   rabbit.PublisherInterface
	idempotency redisstore.IdempotencyStore
	inflight    singleflight.Group
}

func NewOrderService(r repository.OrderRepository, pub rabbit.PublisherInterface) *OrderService {
	return &OrderService{
		repo:      r,
		publisher: pub,
	}
}

func (u *OrderService) SetIdempotencyStore(store redisstore.IdempotencyStore) {
	u.idempotency = store
}

// SaveOrder persists the order and its items in one transaction. On any
// failure nothing is stored and NoOrderID is returned with the error.
func (u *OrderService) SaveOrder(ctx context.Context, req domain.OrderRequest) (uint64, error) {
	if len(req.Items) == 0 {
		return NoOrderID, ErrEmptyOrder
	}

	order := req.ToOrder()
	if err := u.repo.Save(ctx, order); err != nil {
		log.Printf("Error saving order: %v", err)
		return NoOrderID, err
	}

	go u.publishOrderCreatedEvent(context.Background(), order)

	return order.ID, nil
}

// PlaceOrder is SaveOrder guarded by an optional idempotency key: a repeated
// key returns the id of the first order instead of inserting again. Calls
// sharing a key in this process are collapsed; across processes the key is
// claimed in the store before anything is written.
func (u *OrderService) PlaceOrder(ctx context.Context, key string, req domain.OrderRequest) (uint64, error) {
	if key == "" || u.idempotency == nil {
		return u.SaveOrder(ctx, req)
	}

	v, err, shared := u.inflight.Do(key, func() (interface{}, error) {
		return u.placeOnce(ctx, key, req)
	})
	if shared {
		log.Printf("Idempotency key %q shared an in-flight order", key)
	}
	if err != nil {
		return NoOrderID, err
	}
	return v.(uint64), nil
}

func (u *OrderService) placeOnce(ctx context.Context, key string, req domain.OrderRequest) (uint64, error) {
	id, claimed, err := u.idempotency.Claim(ctx, key)
	if err != nil {
		log.Printf("Idempotency claim failed for key %q, saving without it: %v", key, err)
		return u.SaveOrder(ctx, req)
	}
	if !claimed {
		if id == NoOrderID {
			return NoOrderID, ErrOrderInProgress
		}
		log.Printf("Replaying order %d for idempotency key %q", id, key)
		return id, nil
	}

	id, err = u.SaveOrder(ctx, req)
	if err != nil {
		if rerr := u.idempotency.Release(ctx, key); rerr != nil {
			log.Printf("Failed to release idempotency key %q: %v", key, rerr)
		}
		return NoOrderID, err
	}

	if err := u.idempotency.Complete(ctx, key, id); err != nil {
		log.Printf("Failed to record order %d for idempotency key %q: %v", id, key, err)
	}
	return id, nil
}

func (u *OrderService) publishOrderCreatedEvent(ctx context.Context, order *domain.Order) {
	evt := domain.NewOrderCreatedEvent(order)

	if err := u.publisher.Publish(ctx, OrderCreatedPattern, evt); err != nil {
		log.Printf("Failed to publish event for order %d: %v", order.ID, err)
		return
	}
	log.Printf("Published %s for order %d", OrderCreatedPattern, order.ID)
}

func (u *OrderService) GetOrderById(ctx context.Context, id uint64) (*domain.Order, error) {
	o, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}
