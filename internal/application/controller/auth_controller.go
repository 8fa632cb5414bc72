package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"weather-api/internal/domain/model"
	"weather-api/internal/domain/usecase/auth"
)

type AuthController struct {
	api     *echo.Group
	useCase auth.UseCase
}

func NewAuthController(api *echo.Group, useCase auth.UseCase) *AuthController {
	return &AuthController{api: api, useCase: useCase}
}

// InitAuthRoutes initializes authentication routes
func (controller *AuthController) InitAuthRoutes() {
	controller.api.POST("/auth/register", controller.Register)
	controller.api.POST("/auth/login", controller.Login)
	controller.api.POST("/auth/logout", controller.Logout)
}

func (controller *AuthController) Register(c echo.Context) error {
	var dto model.RegisterDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	user, err := controller.useCase.Register(dto)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, user)
}

func (controller *AuthController) Login(c echo.Context) error {
	var dto model.LoginDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	response, err := controller.useCase.Login(c.Request().Context(), dto)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrTooManyAttempts):
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": err.Error()})
		case errors.Is(err, auth.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}
	return c.JSON(http.StatusOK, response)
}

func (controller *AuthController) Logout(c echo.Context) error {
	token := strings.TrimPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
	token = strings.TrimSpace(token)
	if token == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
	}

	if err := controller.useCase.Logout(c.Request().Context(), token); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
