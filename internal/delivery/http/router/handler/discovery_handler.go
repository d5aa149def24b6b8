package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"supplylink/internal/delivery/http/middleware"
	"supplylink/internal/delivery/http/response"
	"supplylink/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DiscoveryHandlerParams holds dependencies for DiscoveryHandler, injected by Fx.
type DiscoveryHandlerParams struct {
	fx.In

	DiscoveryUC usecase.DiscoveryUsecase
	Logger      *slog.Logger
}

// DiscoveryHandler holds dependencies for dealer discovery handlers
type DiscoveryHandler struct {
	discoveryUC usecase.DiscoveryUsecase
	logger      *slog.Logger
}

// NewDiscoveryHandler is the constructor for DiscoveryHandler
func NewDiscoveryHandler(params DiscoveryHandlerParams) *DiscoveryHandler {
	return &DiscoveryHandler{
		discoveryUC: params.DiscoveryUC,
		logger:      params.Logger,
	}
}

// ContactInfo is the contact part of a dealer card.
type ContactInfo struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// DealerCard is one discovery result as shown to the shopkeeper.
type DealerCard struct {
	DealerID     uuid.UUID   `json:"dealerId"`
	Name         string      `json:"name"`
	CompanyName  string      `json:"companyName"`
	LocationName string      `json:"locationName"`
	Contact      ContactInfo `json:"contact"`
	DistanceKm   float64     `json:"distanceKm"`
}

// FindNearbyDealers handles GET /shopkeeper/dealers/nearby
func (h *DiscoveryHandler) FindNearbyDealers(c echo.Context) error {
	shopkeeperID, ok := middleware.GetSubjectID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid subject in token")
	}

	var input usecase.FindNearbyInput

	if raw := c.QueryParam("radiusKm"); raw != "" {
		radiusKm, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return response.BadRequest(c, "INVALID_ARGUMENT", "radiusKm must be a number")
		}
		input.RadiusKm = &radiusKm
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_ARGUMENT", "limit must be an integer")
		}
		input.Limit = limit
	}

	matches, err := h.discoveryUC.FindNearbyDealers(c.Request().Context(), shopkeeperID, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	cards := make([]DealerCard, 0, len(matches))
	for _, match := range matches {
		cards = append(cards, DealerCard{
			DealerID:     match.Dealer.ID,
			Name:         match.Dealer.Name,
			CompanyName:  match.Dealer.CompanyName,
			LocationName: match.Dealer.LocationName,
			Contact: ContactInfo{
				Email: match.Dealer.Email,
				Phone: match.Dealer.Phone,
			},
			DistanceKm: match.DistanceKm,
		})
	}

	return response.Success(c, http.StatusOK, cards, "Nearby dealers retrieved successfully")
}
