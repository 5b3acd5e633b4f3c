package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/kalaghar/app/models"
	"github.com/shashiranjanraj/kalaghar/app/services"
	"github.com/shashiranjanraj/kalaghar/pkg/bind"
	"github.com/shashiranjanraj/kalaghar/pkg/response"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(s *services.UserService) *UserController {
	return &UserController{service: s}
}

func (c *UserController) Index(w http.ResponseWriter, r *http.Request) {
	users, err := c.service.List(r.Context())
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Success(w, users)
}

func (c *UserController) Show(w http.ResponseWriter, r *http.Request) {
	u, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Success(w, u)
}

func (c *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var in services.ProfileInput
	if err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, r, err)
		return
	}
	c.respond(w, r)(c.service.UpdateProfile(r.Context(), chi.URLParam(r, "id"), in))
}

func (c *UserController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var in services.PasswordInput
	if err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, r, err)
		return
	}
	if err := c.service.ChangePassword(r.Context(), chi.URLParam(r, "id"), in); err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Message(w, "Password updated")
}

func (c *UserController) UpdatePayout(w http.ResponseWriter, r *http.Request) {
	var in models.Payout
	if err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, r, err)
		return
	}
	c.respond(w, r)(c.service.UpdatePayout(r.Context(), chi.URLParam(r, "id"), in))
}

func (c *UserController) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var in services.SettingsInput
	if err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, r, err)
		return
	}
	c.respond(w, r)(c.service.UpdateSettings(r.Context(), chi.URLParam(r, "id"), in))
}

func (c *UserController) ChangeRole(w http.ResponseWriter, r *http.Request) {
	var in services.RoleInput
	if err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, r, err)
		return
	}
	c.respond(w, r)(c.service.ChangeRole(r.Context(), chi.URLParam(r, "id"), in))
}

func (c *UserController) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var in services.StatusInput
	if err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, r, err)
		return
	}
	c.respond(w, r)(c.service.ChangeStatus(r.Context(), chi.URLParam(r, "id"), in))
}

func (c *UserController) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Message(w, "User deleted")
}

// respond writes the updated user or the error.
func (c *UserController) respond(w http.ResponseWriter, r *http.Request) func(*models.User, error) {
	return func(u *models.User, err error) {
		if err != nil {
			response.Fail(w, r, err)
			return
		}
		response.Success(w, u)
	}
}
