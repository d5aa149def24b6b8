package handler

import (
	"log/slog"
	"net/http"

	"supplylink/internal/delivery/http/middleware"
	"supplylink/internal/delivery/http/response"
	"supplylink/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DealerHandlerParams holds dependencies for DealerHandler, injected by Fx.
type DealerHandlerParams struct {
	fx.In

	DealerUC usecase.DealerUsecase
	Logger   *slog.Logger
}

// DealerHandler holds dependencies for dealer profile handlers
type DealerHandler struct {
	dealerUC usecase.DealerUsecase
	logger   *slog.Logger
}

// NewDealerHandler is the constructor for DealerHandler
func NewDealerHandler(params DealerHandlerParams) *DealerHandler {
	return &DealerHandler{
		dealerUC: params.DealerUC,
		logger:   params.Logger,
	}
}

// UpdateLocationRequest represents the request body for updating the dealer's location
type UpdateLocationRequest struct {
	Latitude     float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude    float64 `json:"longitude" validate:"min=-180,max=180"`
	LocationName string  `json:"locationName"`
}

// UpdateLocation handles PUT /dealer/location
func (h *DealerHandler) UpdateLocation(c echo.Context) error {
	dealerID, ok := middleware.GetSubjectID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid subject in token")
	}

	var req UpdateLocationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid location input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	dealer, err := h.dealerUC.UpdateDealerLocation(c.Request().Context(), dealerID, usecase.UpdateDealerLocationInput{
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		LocationName: req.LocationName,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, dealer, "Dealer location updated successfully")
}

// Deactivate handles POST /dealer/deactivate
func (h *DealerHandler) Deactivate(c echo.Context) error {
	dealerID, ok := middleware.GetSubjectID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid subject in token")
	}

	if err := h.dealerUC.DeactivateDealer(c.Request().Context(), dealerID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Dealer deactivated"}, "Dealer deactivated successfully")
}
