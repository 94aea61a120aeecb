package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/pointbank/internal/domain/errors"
	"github.com/polkiloo/pointbank/internal/domain/model"
	"github.com/polkiloo/pointbank/internal/server/http/dto"
)

// PointHandler manages balance-related endpoints.
type PointHandler struct {
	facade PointFacade
}

// NewPointHandler constructs PointHandler.
func NewPointHandler(facade PointFacade) *PointHandler {
	return &PointHandler{facade: facade}
}

// Balance handles GET /api/points/:userID.
func (h *PointHandler) Balance(c *gin.Context) {
	userID, ok := UserIDParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	point, err := h.facade.Balance(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toPointResponse(point))
}

// History handles GET /api/points/:userID/history.
func (h *PointHandler) History(c *gin.Context) {
	userID, ok := UserIDParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	records, err := h.facade.History(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := make([]dto.HistoryResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, dto.HistoryResponse{
			ID:        r.ID,
			UserID:    r.UserID,
			Amount:    r.Amount,
			Kind:      string(r.Kind),
			CreatedAt: r.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// Charge handles POST /api/points/:userID/charge.
func (h *PointHandler) Charge(c *gin.Context) {
	h.mutate(c, h.facade.Charge)
}

// Use handles POST /api/points/:userID/use.
func (h *PointHandler) Use(c *gin.Context) {
	h.mutate(c, h.facade.Use)
}

func (h *PointHandler) mutate(c *gin.Context, op func(ctx context.Context, userID, amount int64) (*model.UserPoint, error)) {
	userID, ok := UserIDParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	updated, err := op(c.Request.Context(), userID, req.Amount)
	if err != nil {
		writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPointResponse(updated))
}

func toPointResponse(p *model.UserPoint) dto.PointResponse {
	return dto.PointResponse{UserID: p.UserID, Point: p.Point, UpdatedAt: p.UpdatedAt}
}

func writeMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidChargeAmount),
		errors.Is(err, domainErrors.ErrInvalidUseAmount),
		errors.Is(err, domainErrors.ErrBalanceCeilingExceeded):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrInsufficientBalance):
		c.JSON(http.StatusPaymentRequired, dto.ErrorResponse{Error: err.Error()})
	default:
		c.Status(http.StatusInternalServerError)
	}
}
