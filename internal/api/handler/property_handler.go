package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/propfinder/marketplace-api/internal/core/ports"
)

// PropertyHandler handles HTTP requests for property listing operations.
type PropertyHandler struct {
	service ports.PropertyService
}

func NewPropertyHandler(service ports.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// Create handles POST /v1/properties.
//
// @Summary      Create a new property listing
// @Description  Runs the verification gate before creating; blocked accounts receive 403 with the gate reason.
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPropertyRequest  true  "Listing details"
// @Success      201   {object}  createPropertyResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/properties [post]
func (h *PropertyHandler) Create(c echo.Context) error {
	var req createPropertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	result, err := h.service.CreateProperty(c.Request().Context(), ports.CreatePropertyInput{
		OwnerID:     userID,
		OwnerRole:   role,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		Location:    req.Location,
		District:    req.District,
		Images:      req.Images,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		AreaSqm:     req.AreaSqm,
		Amenities:   req.Amenities,
		ListingType: req.ListingType,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createPropertyResponse{
		ID:           result.ID,
		Status:       result.Status,
		CreatedAt:    result.CreatedAt,
		Verification: toDecisionResponse(result.Decision),
		Links:        links(result.ID),
	})
}

// Get handles GET /v1/properties/:id.
//
// @Summary      Get a property listing by id
// @Tags         properties
// @Produce      json
// @Param        id  path      string  true  "Property id"
// @Success      200 {object}  propertyResponse
// @Failure      404 {object}  errorResponse
// @Router       /v1/properties/{id} [get]
func (h *PropertyHandler) Get(c echo.Context) error {
	property, err := h.service.GetProperty(c.Request().Context(), ports.GetPropertyInput{
		PropertyID: c.Param("id"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPropertyResponse(property))
}

// List handles GET /v1/properties, the public marketplace search.
//
// @Summary      List property listings
// @Tags         properties
// @Produce      json
// @Param        district      query  string  false  "Filter by district"
// @Param        listing_type  query  string  false  "rent, sale, or lease"
// @Param        status        query  string  false  "available, sold, or rented"
// @Param        min_price     query  number  false  "Minimum price"
// @Param        max_price     query  number  false  "Maximum price"
// @Param        search        query  string  false  "Partial match on title or location"
// @Param        page          query  int     false  "Page (1-based)"
// @Param        limit         query  int     false  "Page size (max 100)"
// @Success      200  {object}  listPropertiesResponse
// @Router       /v1/properties [get]
func (h *PropertyHandler) List(c echo.Context) error {
	result, err := h.service.ListProperties(c.Request().Context(), listInputFromQuery(c, ""))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListPropertiesResponse(result))
}

// ListMine handles GET /v1/my/properties, the owner's dashboard listing.
//
// @Summary      List the caller's property listings
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listPropertiesResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/my/properties [get]
func (h *PropertyHandler) ListMine(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	result, err := h.service.ListProperties(c.Request().Context(), listInputFromQuery(c, userID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListPropertiesResponse(result))
}

// UpdateStatus handles PATCH /v1/properties/:id/status.
//
// @Summary      Update the market status of a listing
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                       true  "Property id"
// @Param        body  body      updatePropertyStatusRequest  true  "New status"
// @Success      204   "updated"
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/properties/{id}/status [patch]
func (h *PropertyHandler) UpdateStatus(c echo.Context) error {
	var req updatePropertyStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.UpdateStatus(c.Request().Context(), ports.UpdatePropertyStatusInput{
		PropertyID: c.Param("id"),
		Status:     req.Status,
		CallerID:   userID,
		CallerRole: role,
	}); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/properties/:id.
//
// @Summary      Delete a listing
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Property id"
// @Success      204 "deleted"
// @Failure      403 {object}  errorResponse
// @Failure      404 {object}  errorResponse
// @Router       /v1/properties/{id} [delete]
func (h *PropertyHandler) Delete(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProperty(c.Request().Context(), ports.DeletePropertyInput{
		PropertyID: c.Param("id"),
		CallerID:   userID,
		CallerRole: role,
	}); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// listInputFromQuery collects the shared list query parameters. ownerID is
// non-empty only for owner-scoped views.
func listInputFromQuery(c echo.Context, ownerID string) ports.ListPropertiesInput {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	minPrice, _ := strconv.ParseFloat(c.QueryParam("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(c.QueryParam("max_price"), 64)

	return ports.ListPropertiesInput{
		OwnerID:     ownerID,
		District:    c.QueryParam("district"),
		ListingType: c.QueryParam("listing_type"),
		Status:      c.QueryParam("status"),
		MinPrice:    minPrice,
		MaxPrice:    maxPrice,
		Search:      c.QueryParam("search"),
		Page:        page,
		Limit:       limit,
	}
}
