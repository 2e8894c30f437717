// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/offer-tracker/backend/internal/domain/error"
	"github.com/offer-tracker/backend/internal/domain/valueobject"
	"github.com/offer-tracker/backend/internal/integration/entrypoint/dto"
)

// parseIDParam parses a UUID path parameter, responding 400 on failure.
func parseIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + name + " format",
		})
		return uuid.Nil, false
	}
	return id, true
}

// personIDQuery parses the optional person_id query filter. The second
// return value is false when the parameter is present but malformed.
func personIDQuery(ctx *gin.Context) (*uuid.UUID, bool) {
	raw := ctx.Query("person_id")
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid person_id format",
		})
		return nil, false
	}
	return &id, true
}

// todayQuery parses the optional date query override (YYYY-MM-DD). A zero
// Date means no override and the current date is used downstream.
func todayQuery(ctx *gin.Context) (valueobject.Date, bool) {
	raw := ctx.Query("date")
	if raw == "" {
		return valueobject.Date{}, true
	}
	date, err := valueobject.ParseDate(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format, expected YYYY-MM-DD",
		})
		return valueobject.Date{}, false
	}
	return date, true
}

// respondError maps domain errors to HTTP responses: not-found codes become
// 404, other domain errors 400, anything else 500.
func respondError(ctx *gin.Context, err error) {
	var offerErr *domainerror.OfferError
	if errors.As(err, &offerErr) {
		status := http.StatusBadRequest
		if offerErr.Code == domainerror.ErrCodeOfferNotFound {
			status = http.StatusNotFound
		}
		ctx.JSON(status, dto.ErrorResponse{Error: offerErr.Message, Code: string(offerErr.Code)})
		return
	}

	var personErr *domainerror.PersonError
	if errors.As(err, &personErr) {
		status := http.StatusBadRequest
		if personErr.Code == domainerror.ErrCodePersonNotFound {
			status = http.StatusNotFound
		}
		ctx.JSON(status, dto.ErrorResponse{Error: personErr.Message, Code: string(personErr.Code)})
		return
	}

	var transactionErr *domainerror.TransactionError
	if errors.As(err, &transactionErr) {
		status := http.StatusBadRequest
		if transactionErr.Code == domainerror.ErrCodeTransactionNotFound {
			status = http.StatusNotFound
		}
		ctx.JSON(status, dto.ErrorResponse{Error: transactionErr.Message, Code: string(transactionErr.Code)})
		return
	}

	var recommendationErr *domainerror.RecommendationError
	if errors.As(err, &recommendationErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: recommendationErr.Message, Code: string(recommendationErr.Code)})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
}
