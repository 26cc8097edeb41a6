package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/collecta-backend/internal/model"
	"github.com/shinyyama/collecta-backend/internal/service"
)

type ItemHandler struct {
	svc          service.ItemService
	assetBaseURL string
}

func NewItemHandler(svc service.ItemService, assetBaseURL string) *ItemHandler {
	return &ItemHandler{svc: svc, assetBaseURL: strings.TrimRight(assetBaseURL, "/")}
}

type ItemResponse struct {
	ID       uint64 `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

func (h *ItemHandler) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch items"))
	}
	resp := make([]ItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, h.toItemResponse(&items[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ItemHandler) toItemResponse(item *model.Item) ItemResponse {
	return ItemResponse{
		ID:       item.ID,
		Title:    item.Title,
		ImageURL: h.assetBaseURL + "/" + item.Image,
	}
}
