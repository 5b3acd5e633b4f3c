package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/shashiranjanraj/kalaghar/app/models"
	"github.com/shashiranjanraj/kalaghar/app/repositories"
	"github.com/shashiranjanraj/kalaghar/pkg/apperr"
	"github.com/shashiranjanraj/kalaghar/pkg/cache"
	"github.com/shashiranjanraj/kalaghar/pkg/logger"
	"github.com/shashiranjanraj/kalaghar/pkg/metrics"
	"github.com/shashiranjanraj/kalaghar/pkg/validate"
)

// IdempotencyTTL is how long a replayable order response is kept.
const IdempotencyTTL = 24 * time.Hour

type OrderInput struct {
	ArtworkID    string `json:"artworkId"    validate:"required,max=64"`
	ArtworkTitle string `json:"artworkTitle" validate:"nullable,max=255"`
	BuyerName    string `json:"buyerName"    validate:"nullable,max=255"`
	Amount       int64  `json:"amount"       validate:"min=0,max=1000000000000"`
}

type OrderService struct {
	orders repositories.OrderRepository
	cache  cache.Store
}

func NewOrderService(orders repositories.OrderRepository, c cache.Store) *OrderService {
	return &OrderService{orders: orders, cache: c}
}

// Create records a completed checkout. The amount is taken as given and the
// same artwork may be bought any number of times. A non-empty idempotency
// key replays the first order created under it; replayed reports whether
// that happened.
func (s *OrderService) Create(ctx context.Context, c Caller, key string, in OrderInput) (o *models.Order, replayed bool, err error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, false, apperr.Invalid(errs)
	}

	cacheKey := ""
	if key = strings.TrimSpace(key); key != "" {
		cacheKey = "idempotency:orders:" + c.ID + ":" + key
		var prev models.Order
		hit, err := s.cache.Get(ctx, cacheKey, &prev)
		if err != nil {
			logger.WithCtx(ctx).Warn("idempotency lookup failed", "error", err)
		}
		if hit {
			return &prev, true, nil
		}
	}

	o = &models.Order{
		ArtworkID:    strings.TrimSpace(in.ArtworkID),
		ArtworkTitle: strings.TrimSpace(in.ArtworkTitle),
		BuyerName:    strings.TrimSpace(in.BuyerName),
		Amount:       in.Amount,
		Reference:    newReference(),
	}
	if o.BuyerName == "" {
		o.BuyerName = c.Name
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, false, storeErr(err, "Order")
	}

	if cacheKey != "" {
		if err := s.cache.Set(ctx, cacheKey, o, IdempotencyTTL); err != nil {
			logger.WithCtx(ctx).Warn("idempotency store failed", "error", err)
		}
	}

	metrics.OrdersCreated.Inc()
	metrics.OrderAmount.Add(float64(o.Amount))
	logger.WithCtx(ctx).Info("order created", "order_id", o.ID, "reference", o.Reference, "amount", o.Amount)
	return o, false, nil
}

// List returns every order, newest first.
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	out, err := s.orders.All(ctx)
	if err != nil {
		return nil, storeErr(err, "Orders")
	}
	return out, nil
}

// newReference returns a receipt id such as ART-482913.
func newReference() string {
	return fmt.Sprintf("ART-%06d", 100000+rand.Intn(900000))
}
