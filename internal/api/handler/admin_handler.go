package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/house-hunt/rental-api/internal/api/metrics"
	"github.com/house-hunt/rental-api/internal/core/domain"
	"github.com/house-hunt/rental-api/internal/core/ports"
)

// AdminHandler handles the moderation surface. Routes are mounted behind the
// admin role gate.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type userDetailResponse struct {
	User            *domain.User `json:"user"`
	PropertiesCount *int64       `json:"properties_count,omitempty"`
}

type listUsersResponse struct {
	Data       []*domain.User     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// ListUsers handles GET /admin/users.
//
// @Summary      List accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role    query  string  false  "tenant | owner"
// @Param        search  query  string  false  "Name or email substring"
// @Param        page    query  int     false  "Page"
// @Param        limit   query  int     false  "Page size"
// @Success      200  {object}  listUsersResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page, err := h.service.ListUsers(c.Request().Context(),
		c.QueryParam("role"), c.QueryParam("search"), c.QueryParam("page"), c.QueryParam("limit"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listUsersResponse{
		Data: page.Items,
		Pagination: paginationResponse{
			Total:      page.Total,
			Page:       page.Page,
			Limit:      page.Limit,
			TotalPages: page.TotalPages,
		},
	})
}

// GetUser handles GET /admin/users/:id.
//
// @Summary      Get one account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  userDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	detail, err := h.service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	resp := userDetailResponse{User: detail.User}
	if detail.User.Role == domain.RoleOwner {
		resp.PropertiesCount = &detail.PropertiesCount
	}
	return c.JSON(http.StatusOK, resp)
}

// ToggleBlock handles PUT /admin/users/:id/block.
//
// @Summary      Block or unblock an account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id}/block [put]
func (h *AdminHandler) ToggleBlock(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	user, err := h.service.ToggleBlock(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	action := "unblock"
	if user.IsBlocked {
		action = "block"
	}
	metrics.ModerationActionsTotal.WithLabelValues(action).Inc()
	return c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /admin/users/:id.
//
// @Summary      Soft-delete an account and its listings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204  "deleted"
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteUser(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	metrics.ModerationActionsTotal.WithLabelValues("delete_user").Inc()
	return c.NoContent(http.StatusNoContent)
}

// ListProperties handles GET /admin/properties, the moderation view. It
// includes unpublished listings and those of blocked owners.
//
// @Summary      List all listings (moderation view)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status     query  string  false  "published | unpublished"
// @Param        occupancy  query  string  false  "available | occupied"
// @Param        search     query  string  false  "Title or city substring"
// @Param        page       query  int     false  "Page"
// @Param        limit      query  int     false  "Page size"
// @Success      200  {object}  listPropertiesResponse
// @Router       /admin/properties [get]
func (h *AdminHandler) ListProperties(c echo.Context) error {
	page, err := h.service.ListProperties(c.Request().Context(), ports.ListPropertiesAdminInput{
		Status:    c.QueryParam("status"),
		Occupancy: c.QueryParam("occupancy"),
		Search:    c.QueryParam("search"),
		Page:      c.QueryParam("page"),
		Limit:     c.QueryParam("limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(page))
}

// DeleteProperty handles DELETE /admin/properties/:id.
//
// @Summary      Soft-delete any listing
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Property id"
// @Success      204  "deleted"
// @Failure      404  {object}  errorResponse
// @Router       /admin/properties/{id} [delete]
func (h *AdminHandler) DeleteProperty(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteProperty(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	metrics.ModerationActionsTotal.WithLabelValues("delete_property").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Stats handles GET /admin/stats.
//
// @Summary      Dashboard statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardStats
// @Router       /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
