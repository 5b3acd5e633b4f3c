package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/kalaghar/app/services"
	"github.com/shashiranjanraj/kalaghar/pkg/bind"
	"github.com/shashiranjanraj/kalaghar/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(s *services.AuthService) *AuthController {
	return &AuthController{service: s}
}

func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var in services.SignupInput
	if err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, r, err)
		return
	}

	sess, err := c.service.Signup(r.Context(), in)
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Created(w, sess)
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, r, err)
		return
	}

	sess, err := c.service.Login(r.Context(), in)
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Success(w, sess)
}

func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	u, err := c.service.Me(r.Context(), caller(r))
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Success(w, u)
}
