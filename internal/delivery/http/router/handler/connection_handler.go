package handler

import (
	"log/slog"
	"net/http"
	"time"

	"supplylink/internal/delivery/http/middleware"
	"supplylink/internal/delivery/http/response"
	"supplylink/internal/domain/entity"
	"supplylink/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ConnectionHandlerParams holds dependencies for ConnectionHandler, injected by Fx.
type ConnectionHandlerParams struct {
	fx.In

	ConnectionUC usecase.ConnectionUsecase
	Logger       *slog.Logger
}

// ConnectionHandler holds dependencies for connection-related handlers
type ConnectionHandler struct {
	connectionUC usecase.ConnectionUsecase
	logger       *slog.Logger
}

// NewConnectionHandler is the constructor for ConnectionHandler
func NewConnectionHandler(params ConnectionHandlerParams) *ConnectionHandler {
	return &ConnectionHandler{
		connectionUC: params.ConnectionUC,
		logger:       params.Logger,
	}
}

// RequestConnectionRequest represents the request body for requesting a connection
type RequestConnectionRequest struct {
	DealerID uuid.UUID `json:"dealerId" validate:"required"`
}

// ConnectionView is a connection as returned to either party.
type ConnectionView struct {
	ConnectionID uuid.UUID `json:"connectionId"`
	ShopkeeperID uuid.UUID `json:"shopkeeperId"`
	DealerID     uuid.UUID `json:"dealerId"`
	State        string    `json:"state"`
	RequestedAt  time.Time `json:"requestedAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toConnectionView(connection *entity.Connection) ConnectionView {
	return ConnectionView{
		ConnectionID: connection.ID,
		ShopkeeperID: connection.ShopkeeperID,
		DealerID:     connection.DealerID,
		State:        connection.State.String(),
		RequestedAt:  connection.CreatedAt,
		UpdatedAt:    connection.UpdatedAt,
	}
}

// RequestConnection handles POST /shopkeeper/connections
func (h *ConnectionHandler) RequestConnection(c echo.Context) error {
	shopkeeperID, ok := middleware.GetSubjectID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid subject in token")
	}

	var req RequestConnectionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid connection request input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	connection, err := h.connectionUC.RequestConnection(c.Request().Context(), shopkeeperID, req.DealerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toConnectionView(connection), "Connection requested successfully")
}

// GetConnectionStatus handles GET /shopkeeper/connection
func (h *ConnectionHandler) GetConnectionStatus(c echo.Context) error {
	shopkeeperID, ok := middleware.GetSubjectID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid subject in token")
	}

	connection, err := h.connectionUC.GetConnectionStatus(c.Request().Context(), shopkeeperID)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if connection == nil {
		return response.NotFound(c, "CONNECTION_NOT_FOUND", "No live connection for this shopkeeper")
	}

	return response.Success(c, http.StatusOK, toConnectionView(connection), "Connection status retrieved successfully")
}

// RevokeConnection handles POST /shopkeeper/connections/:connectionId/revoke
// and POST /dealer/connections/:connectionId/revoke; either party may revoke.
func (h *ConnectionHandler) RevokeConnection(c echo.Context) error {
	callerID, ok := middleware.GetSubjectID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid subject in token")
	}

	connectionID, err := uuid.Parse(c.Param("connectionId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid connection ID")
	}

	connection, err := h.connectionUC.RevokeConnection(c.Request().Context(), callerID, connectionID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toConnectionView(connection), "Connection revoked successfully")
}

// ListDealerConnections handles GET /dealer/connections
func (h *ConnectionHandler) ListDealerConnections(c echo.Context) error {
	dealerID, ok := middleware.GetSubjectID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid subject in token")
	}

	connections, err := h.connectionUC.ListDealerConnections(c.Request().Context(), dealerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	views := make([]ConnectionView, 0, len(connections))
	for _, connection := range connections {
		views = append(views, toConnectionView(connection))
	}

	return response.Success(c, http.StatusOK, views, "Dealer connections retrieved successfully")
}

// AcceptConnection handles POST /dealer/connections/:connectionId/accept
func (h *ConnectionHandler) AcceptConnection(c echo.Context) error {
	dealerID, ok := middleware.GetSubjectID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid subject in token")
	}

	connectionID, err := uuid.Parse(c.Param("connectionId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid connection ID")
	}

	connection, err := h.connectionUC.AcceptConnection(c.Request().Context(), dealerID, connectionID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toConnectionView(connection), "Connection accepted successfully")
}

// RejectConnection handles POST /dealer/connections/:connectionId/reject
func (h *ConnectionHandler) RejectConnection(c echo.Context) error {
	dealerID, ok := middleware.GetSubjectID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid subject in token")
	}

	connectionID, err := uuid.Parse(c.Param("connectionId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid connection ID")
	}

	connection, err := h.connectionUC.RejectConnection(c.Request().Context(), dealerID, connectionID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toConnectionView(connection), "Connection rejected successfully")
}
