package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/offer-tracker/backend/internal/application/usecase/progress"
	"github.com/offer-tracker/backend/internal/application/usecase/transaction"
	domainerror "github.com/offer-tracker/backend/internal/domain/error"
	"github.com/offer-tracker/backend/internal/domain/valueobject"
	"github.com/offer-tracker/backend/internal/integration/entrypoint/dto"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// TransactionController handles ledger endpoints.
type TransactionController struct {
	listUseCase               *transaction.ListTransactionsUseCase
	createUseCase             *transaction.CreateTransactionUseCase
	updateUseCase             *transaction.UpdateTransactionUseCase
	deleteUseCase             *transaction.DeleteTransactionUseCase
	merchantsUseCase          *transaction.ListMerchantsUseCase
	merchantCategoriesUseCase *transaction.GetMerchantCategoriesUseCase
	matchingOffersUseCase     *progress.GetMatchingOffersUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	merchantsUseCase *transaction.ListMerchantsUseCase,
	merchantCategoriesUseCase *transaction.GetMerchantCategoriesUseCase,
	matchingOffersUseCase *progress.GetMatchingOffersUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:               listUseCase,
		createUseCase:             createUseCase,
		updateUseCase:             updateUseCase,
		deleteUseCase:             deleteUseCase,
		merchantsUseCase:          merchantsUseCase,
		merchantCategoriesUseCase: merchantCategoriesUseCase,
		matchingOffersUseCase:     matchingOffersUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	personID, ok := personIDQuery(ctx)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	offset, err := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsInput{
		PersonID: personID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Transactions, output.Total))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingTransactionFields),
		})
		return
	}

	date, err := valueobject.ParseDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidTransactionDate),
		})
		return
	}
	personID, ok := parseOptionalUUID(ctx, req.PersonID)
	if !ok {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		PersonID:    personID,
		Date:        date,
		Amount:      req.Amount,
		Merchant:    req.Merchant,
		Categories:  req.Categories,
		Description: req.Description,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Update handles PUT /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingTransactionFields),
		})
		return
	}

	input := transaction.UpdateTransactionInput{TransactionID: id}
	if req.Date != nil {
		date, err := valueobject.ParseDate(*req.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid date format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidTransactionDate),
			})
			return
		}
		input.Date = &date
	}
	input.Amount = req.Amount
	input.Merchant = req.Merchant
	input.Categories = req.Categories
	input.Description = req.Description

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{TransactionID: id}); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// MatchingOffers handles GET /transactions/:id/matching-offers requests.
func (c *TransactionController) MatchingOffers(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.matchingOffersUseCase.Execute(ctx.Request.Context(), progress.GetMatchingOffersInput{TransactionID: id})
	if err != nil {
		respondError(ctx, err)
		return
	}

	offers := make([]dto.OfferResponse, len(output.Offers))
	for i, o := range output.Offers {
		offers[i] = dto.ToOfferResponse(o)
	}
	ctx.JSON(http.StatusOK, dto.MatchingOffersResponse{
		Transaction: dto.ToTransactionResponse(output.Transaction),
		Offers:      offers,
	})
}

// Merchants handles GET /merchants requests.
func (c *TransactionController) Merchants(ctx *gin.Context) {
	personID, ok := personIDQuery(ctx)
	if !ok {
		return
	}

	output, err := c.merchantsUseCase.Execute(ctx.Request.Context(), transaction.ListMerchantsInput{PersonID: personID})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MerchantListResponse{Merchants: output.Merchants})
}

// MerchantCategories handles GET /merchants/:name/categories requests.
func (c *TransactionController) MerchantCategories(ctx *gin.Context) {
	name := ctx.Param("name")
	if name == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Merchant name is required",
		})
		return
	}

	output, err := c.merchantCategoriesUseCase.Execute(ctx.Request.Context(), transaction.GetMerchantCategoriesInput{Merchant: name})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MerchantCategoriesResponse{Categories: output.Categories})
}
