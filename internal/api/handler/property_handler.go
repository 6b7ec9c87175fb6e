package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/house-hunt/rental-api/internal/api/metrics"
	"github.com/house-hunt/rental-api/internal/core/ports"
)

// PropertyHandler handles HTTP requests for listing operations.
type PropertyHandler struct {
	service ports.PropertyService
}

func NewPropertyHandler(service ports.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// Search handles GET /properties.
//
// @Summary      Search published properties
// @Tags         properties
// @Produce      json
// @Param        q         query  string  false  "Full-text search on title and description"
// @Param        city      query  string  false  "City (case-insensitive)"
// @Param        minPrice  query  number  false  "Minimum price (inclusive)"
// @Param        maxPrice  query  number  false  "Maximum price (inclusive)"
// @Param        minSize   query  number  false  "Minimum size (inclusive)"
// @Param        maxSize   query  number  false  "Maximum size (inclusive)"
// @Param        bedrooms  query  string  false  "Comma-separated bedroom counts, e.g. 2,3"
// @Param        parking   query  bool    false  "Require parking"
// @Param        balcony   query  bool    false  "Require balcony"
// @Param        amenities query  string  false  "Comma-separated amenities, all required"
// @Param        lat       query  number  false  "Latitude for radius search"
// @Param        lng       query  number  false  "Longitude for radius search"
// @Param        radius    query  number  false  "Radius in meters"
// @Param        sort      query  string  false  "newest | price_asc | price_desc"
// @Param        page      query  int     false  "Page (default 1)"
// @Param        limit     query  int     false  "Page size (default 10, max 100)"
// @Success      200  {object}  listPropertiesResponse
// @Router       /properties [get]
func (h *PropertyHandler) Search(c echo.Context) error {
	started := time.Now()

	page, err := h.service.Search(c.Request().Context(), ports.SearchPropertiesInput{
		Query:     c.QueryParam("q"),
		City:      c.QueryParam("city"),
		MinPrice:  c.QueryParam("minPrice"),
		MaxPrice:  c.QueryParam("maxPrice"),
		MinSize:   c.QueryParam("minSize"),
		MaxSize:   c.QueryParam("maxSize"),
		Bedrooms:  c.QueryParam("bedrooms"),
		Parking:   c.QueryParam("parking"),
		Balcony:   c.QueryParam("balcony"),
		Amenities: c.QueryParam("amenities"),
		Lat:       c.QueryParam("lat"),
		Lng:       c.QueryParam("lng"),
		Radius:    c.QueryParam("radius"),
		Sort:      c.QueryParam("sort"),
		Page:      c.QueryParam("page"),
		Limit:     c.QueryParam("limit"),
	})
	if err != nil {
		return err
	}

	metrics.SearchesTotal.WithLabelValues(sortLabel(c.QueryParam("sort"))).Inc()
	metrics.SearchDuration.Observe(time.Since(started).Seconds())

	return c.JSON(http.StatusOK, toListResponse(page))
}

func sortLabel(sort string) string {
	switch sort {
	case "price_asc", "price_desc":
		return sort
	default:
		return "newest"
	}
}

// Get handles GET /properties/:id.
//
// @Summary      Get a published property by id
// @Tags         properties
// @Produce      json
// @Param        id   path      string  true  "Property id"
// @Success      200  {object}  propertyResponse
// @Failure      404  {object}  errorResponse
// @Router       /properties/{id} [get]
func (h *PropertyHandler) Get(c echo.Context) error {
	p, err := h.service.GetPublic(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPropertyResponse(p))
}

// ListByOwner handles GET /owners/:ownerId/properties.
//
// @Summary      List an owner's published properties
// @Tags         properties
// @Produce      json
// @Param        ownerId  path   string  true   "Owner id"
// @Param        page     query  int     false  "Page"
// @Param        limit    query  int     false  "Page size"
// @Success      200  {object}  listPropertiesResponse
// @Failure      404  {object}  errorResponse
// @Router       /owners/{ownerId}/properties [get]
func (h *PropertyHandler) ListByOwner(c echo.Context) error {
	page, err := h.service.ListByOwner(c.Request().Context(), c.Param("ownerId"), c.QueryParam("page"), c.QueryParam("limit"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(page))
}

// ListMine handles GET /properties/mine, the owner's own listings,
// published or not.
//
// @Summary      List my properties
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "Page"
// @Param        limit  query  int  false  "Page size"
// @Success      200  {object}  listPropertiesResponse
// @Router       /properties/mine [get]
func (h *PropertyHandler) ListMine(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	page, err := h.service.ListMine(c.Request().Context(), actor, c.QueryParam("page"), c.QueryParam("limit"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(page))
}

// Create handles POST /properties.
//
// @Summary      Create a property listing
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPropertyRequest  true  "Listing details"
// @Success      201   {object}  propertyResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /properties [post]
func (h *PropertyHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createPropertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.service.Create(c.Request().Context(), actor, toCreateInput(req))
	if err != nil {
		return err
	}

	metrics.PropertiesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toPropertyResponse(p))
}

// Update handles PUT /properties/:id.
//
// @Summary      Update a property listing
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Property id"
// @Param        body  body      updatePropertyRequest  true  "Fields to change"
// @Success      200   {object}  propertyResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /properties/{id} [put]
func (h *PropertyHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), toUpdateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPropertyResponse(p))
}

// Delete handles DELETE /properties/:id.
//
// @Summary      Soft-delete a property listing
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Property id"
// @Success      204  "deleted"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /properties/{id} [delete]
func (h *PropertyHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// TogglePublish handles POST /properties/:id/publish.
//
// @Summary      Toggle a listing's published flag
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Property id"
// @Success      200  {object}  propertyResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /properties/{id}/publish [post]
func (h *PropertyHandler) TogglePublish(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	p, err := h.service.TogglePublish(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPropertyResponse(p))
}

// SetOccupancy handles PUT /properties/:id/occupancy.
//
// @Summary      Set a listing's occupancy status
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Property id"
// @Param        body  body      occupancyRequest  true  "available or occupied"
// @Success      200   {object}  propertyResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /properties/{id}/occupancy [put]
func (h *PropertyHandler) SetOccupancy(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req occupancyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.service.SetOccupancy(c.Request().Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPropertyResponse(p))
}
