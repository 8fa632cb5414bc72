package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"weather-api/internal/application/middleware"
	"weather-api/internal/domain/entity"
	"weather-api/internal/domain/model"
	"weather-api/internal/domain/usecase/user"
	"weather-api/pkg/util/numberutils"
)

type UserController struct {
	api     *echo.Group
	useCase user.UseCase
}

func NewUserController(api *echo.Group, useCase user.UseCase) *UserController {
	return &UserController{api: api, useCase: useCase}
}

// InitUserRoutes initializes user routes. The group is expected to carry the
// authentication middleware; administration routes add the role guard.
func (controller *UserController) InitUserRoutes() {
	adminOnly := middleware.RequireRole(entity.RoleAdmin)

	controller.api.GET("/users/me", controller.Me)
	controller.api.GET("/users", controller.FindAll, adminOnly)
	controller.api.GET("/users/:id", controller.FindByID, adminOnly)
	controller.api.PATCH("/users/:id/role", controller.UpdateRole, adminOnly)
	controller.api.PATCH("/users/:id/active", controller.SetActive, adminOnly)
}

func (controller *UserController) Me(c echo.Context) error {
	session := middleware.SessionFromContext(c)
	if session == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing session"})
	}

	found, err := controller.useCase.FindByID(session.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, found)
}

func (controller *UserController) FindAll(c echo.Context) error {
	var page int = numberutils.ToIntWithDefault(c.QueryParam("page"), 0)
	var size int = numberutils.ToIntWithDefault(c.QueryParam("size"), 10)
	var usernamePrefix string = c.QueryParam("usernamePrefix")

	users, err := controller.useCase.FindAll(page, size, usernamePrefix)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, users)
}

func (controller *UserController) FindByID(c echo.Context) error {
	found, err := controller.useCase.FindByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, found)
}

func (controller *UserController) UpdateRole(c echo.Context) error {
	var dto model.UpdateRoleDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	updated, err := controller.useCase.UpdateRole(c.Param("id"), dto.Role)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidRole):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, user.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}
	return c.JSON(http.StatusOK, updated)
}

func (controller *UserController) SetActive(c echo.Context) error {
	var dto model.SetActiveDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if dto.Active == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "active is required"})
	}

	updated, err := controller.useCase.SetActive(c.Param("id"), *dto.Active)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, updated)
}
