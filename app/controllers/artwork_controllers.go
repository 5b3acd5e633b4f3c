package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/kalaghar/app/services"
	"github.com/shashiranjanraj/kalaghar/pkg/apperr"
	"github.com/shashiranjanraj/kalaghar/pkg/bind"
	"github.com/shashiranjanraj/kalaghar/pkg/response"
)

type ArtworkController struct {
	service        *services.ArtworkService
	maxUploadBytes int64
}

func NewArtworkController(s *services.ArtworkService, maxUploadBytes int64) *ArtworkController {
	return &ArtworkController{service: s, maxUploadBytes: maxUploadBytes}
}

func (c *ArtworkController) Index(w http.ResponseWriter, r *http.Request) {
	list, err := c.service.List(r.Context())
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Success(w, list)
}

func (c *ArtworkController) Show(w http.ResponseWriter, r *http.Request) {
	a, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Success(w, a)
}

func (c *ArtworkController) Store(w http.ResponseWriter, r *http.Request) {
	var in services.ArtworkInput
	if err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, r, err)
		return
	}

	a, err := c.service.Create(r.Context(), caller(r), in)
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Created(w, a)
}

// Quote prices checkout for one stored artwork.
func (c *ArtworkController) Quote(w http.ResponseWriter, r *http.Request) {
	q, err := c.service.Quote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Success(w, q)
}

// CheckoutQuote prices checkout for ?price=N.
func (c *ArtworkController) CheckoutQuote(w http.ResponseWriter, r *http.Request) {
	price, err := strconv.ParseInt(r.URL.Query().Get("price"), 10, 64)
	if err != nil {
		response.Fail(w, r, apperr.Invalid(map[string]string{"price": "The price must be a whole number of rupees."}))
		return
	}
	q, err := services.QuotePrice(price)
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Success(w, q)
}

// UploadImage accepts a multipart form with an "image" file.
func (c *ArtworkController) UploadImage(w http.ResponseWriter, r *http.Request) {
	// room for multipart headers on top of the file itself
	r.Body = http.MaxBytesReader(w, r.Body, c.maxUploadBytes+64<<10)

	file, header, err := r.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Error(w, http.StatusRequestEntityTooLarge, "Image too large")
			return
		}
		response.Fail(w, r, apperr.Invalid(map[string]string{"image": "The image field is required."}))
		return
	}
	defer file.Close()

	if header.Size > c.maxUploadBytes {
		response.Error(w, http.StatusRequestEntityTooLarge, "Image too large")
		return
	}

	up, err := c.service.UploadImage(r.Context(), header.Filename, file)
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Created(w, up)
}
