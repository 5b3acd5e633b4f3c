package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/kalaghar/app/services"
	"github.com/shashiranjanraj/kalaghar/pkg/bind"
	"github.com/shashiranjanraj/kalaghar/pkg/response"
)

const (
	idempotencyHeader = "Idempotency-Key"
	replayedHeader    = "Idempotent-Replayed"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(s *services.OrderService) *OrderController {
	return &OrderController{service: s}
}

func (c *OrderController) Store(w http.ResponseWriter, r *http.Request) {
	var in services.OrderInput
	if err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, r, err)
		return
	}

	o, replayed, err := c.service.Create(r.Context(), caller(r), r.Header.Get(idempotencyHeader), in)
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	if replayed {
		w.Header().Set(replayedHeader, "true")
	}
	response.Created(w, o)
}

func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	orders, err := c.service.List(r.Context())
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Success(w, orders)
}
