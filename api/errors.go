package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"auction/bidding"
	"auction/listing"
)

type ErrorResponse struct {
	Message string           `json:"message"`
	Reason  string           `json:"reason,omitempty"`
	Minimum *decimal.Decimal `json:"minimum,omitempty"`
}

// MapErrorToHTTP 將領域錯誤對應到 HTTP 狀態碼與回應內容
func MapErrorToHTTP(err error) (int, ErrorResponse) {
	var invalid *bidding.InvalidBidError
	switch {
	case errors.As(err, &invalid):
		return http.StatusUnprocessableEntity, ErrorResponse{
			Message: "invalid bid",
			Reason:  string(invalid.Reason),
			Minimum: &invalid.Minimum,
		}
	case errors.Is(err, bidding.ErrUserNotFound):
		return http.StatusNotFound, ErrorResponse{Message: "user not found"}
	case errors.Is(err, bidding.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Message: "product not found"}
	case errors.Is(err, bidding.ErrUnauthenticated), errors.Is(err, errNoIdentity):
		return http.StatusUnauthorized, ErrorResponse{Message: "authentication required"}
	case errors.Is(err, listing.ErrForbidden):
		return http.StatusForbidden, ErrorResponse{Message: "permission denied"}
	case errors.Is(err, listing.ErrInvalidListing):
		return http.StatusBadRequest, ErrorResponse{Message: "invalid listing"}
	case errors.Is(err, bidding.ErrConflict):
		return http.StatusConflict, ErrorResponse{Message: "product was updated by another request, please retry"}
	default:
		return http.StatusInternalServerError, ErrorResponse{Message: "internal server error"}
	}
}

// respondError 回應錯誤，非預期的錯誤會記錄完整內容
func (impl *ServerImpl) respondError(c *gin.Context, op string, err error) {
	status, body := MapErrorToHTTP(err)
	if status == http.StatusInternalServerError {
		impl.logger.Error("Request failed", slog.String("op", op), slog.Any("error", err))
	} else {
		impl.logger.Debug("Request rejected", slog.String("op", op), slog.Int("status", status), slog.Any("error", err))
	}
	c.AbortWithStatusJSON(status, body)
}

func respondBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request payload: " + err.Error()})
}
