package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/collecta-backend/internal/model"
	"github.com/shinyyama/collecta-backend/internal/service"
	"github.com/shinyyama/collecta-backend/internal/storage"
)

type LocationHandler struct {
	svc      service.LocationService
	uploader storage.Uploader
}

func NewLocationHandler(svc service.LocationService, uploader storage.Uploader) *LocationHandler {
	return &LocationHandler{svc: svc, uploader: uploader}
}

type LocationResponse struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Whatsapp  string  `json:"whatsapp"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	UF        string  `json:"uf"`
	Image     *string `json:"image"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

type CreateLocationRequest struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Whatsapp  string   `json:"whatsapp"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	City      string   `json:"city"`
	UF        string   `json:"uf"`
	Items     []uint64 `json:"items"`
}

type locationItemTitle struct {
	Title string `json:"title"`
}

type LocationDetailResponse struct {
	Location LocationResponse    `json:"location"`
	Items    []locationItemTitle `json:"items"`
}

func (h *LocationHandler) Search(c echo.Context) error {
	itemIDs, err := parseItemIDs(c.QueryParam("items"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	locs, err := h.svc.Search(c.Request().Context(), c.QueryParam("city"), c.QueryParam("uf"), itemIDs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to search locations"))
	}
	resp := make([]LocationResponse, 0, len(locs))
	for i := range locs {
		resp = append(resp, toLocationResponse(&locs[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *LocationHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	loc, titles, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, MessageResponse{Message: "Location not found."})
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch location"))
	}
	items := make([]locationItemTitle, 0, len(titles))
	for _, t := range titles {
		items = append(items, locationItemTitle{Title: t})
	}
	return c.JSON(http.StatusOK, LocationDetailResponse{
		Location: toLocationResponse(loc),
		Items:    items,
	})
}

func (h *LocationHandler) Create(c echo.Context) error {
	var req CreateLocationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	loc, err := h.svc.Create(c.Request().Context(), service.CreateLocationInput{
		Name:      req.Name,
		Email:     req.Email,
		Whatsapp:  req.Whatsapp,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		City:      req.City,
		UF:        req.UF,
		Items:     req.Items,
	})
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, ValidationErrorResponse{
				Message: "validation failed",
				Errors:  verr.Fields,
			})
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to create location"))
	}
	return c.JSON(http.StatusCreated, toLocationResponse(loc))
}

func (h *LocationHandler) UpdateImage(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	if h.uploader == nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "uploads are not configured"))
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "image file is required"))
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "could not read image"))
	}
	defer src.Close()

	filename, err := h.uploader.Upload(c.Request().Context(), fh.Filename, fh.Header.Get("Content-Type"), src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to store image"))
	}

	loc, err := h.svc.SetImage(c.Request().Context(), id, filename)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, MessageResponse{Message: "Location not found!"})
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to update location"))
	}
	return c.JSON(http.StatusOK, toLocationResponse(loc))
}

// parseItemIDs parses the items query filter, e.g. "1, 2,3". A blank
// string means no item filter at all, never a filter matching nothing.
func parseItemIDs(raw string) ([]uint64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid item id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func toLocationResponse(loc *model.Location) LocationResponse {
	return LocationResponse{
		ID:        loc.ID,
		Name:      loc.Name,
		Email:     loc.Email,
		Whatsapp:  loc.Whatsapp,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		City:      loc.City,
		UF:        loc.UF,
		Image:     loc.Image,
		CreatedAt: loc.CreatedAt.Format(time.RFC3339),
		UpdatedAt: loc.UpdatedAt.Format(time.RFC3339),
	}
}
