package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/offer-tracker/backend/internal/application/usecase/offer"
	"github.com/offer-tracker/backend/internal/application/usecase/progress"
	"github.com/offer-tracker/backend/internal/domain/entity"
	domainerror "github.com/offer-tracker/backend/internal/domain/error"
	"github.com/offer-tracker/backend/internal/domain/valueobject"
	"github.com/offer-tracker/backend/internal/integration/entrypoint/dto"
)

// OfferController handles offer endpoints.
type OfferController struct {
	listUseCase     *offer.ListOffersUseCase
	createUseCase   *offer.CreateOfferUseCase
	getUseCase      *offer.GetOfferUseCase
	updateUseCase   *offer.UpdateOfferUseCase
	deleteUseCase   *offer.DeleteOfferUseCase
	copyUseCase     *offer.CopyOfferUseCase
	progressUseCase *progress.GetOfferProgressUseCase
}

// NewOfferController creates a new offer controller instance.
func NewOfferController(
	listUseCase *offer.ListOffersUseCase,
	createUseCase *offer.CreateOfferUseCase,
	getUseCase *offer.GetOfferUseCase,
	updateUseCase *offer.UpdateOfferUseCase,
	deleteUseCase *offer.DeleteOfferUseCase,
	copyUseCase *offer.CopyOfferUseCase,
	progressUseCase *progress.GetOfferProgressUseCase,
) *OfferController {
	return &OfferController{
		listUseCase:     listUseCase,
		createUseCase:   createUseCase,
		getUseCase:      getUseCase,
		updateUseCase:   updateUseCase,
		deleteUseCase:   deleteUseCase,
		copyUseCase:     copyUseCase,
		progressUseCase: progressUseCase,
	}
}

// List handles GET /offers requests.
func (c *OfferController) List(ctx *gin.Context) {
	personID, ok := personIDQuery(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), offer.ListOffersInput{PersonID: personID})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToOfferListResponse(output.Offers))
}

// Create handles POST /offers requests.
func (c *OfferController) Create(ctx *gin.Context) {
	var req dto.CreateOfferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingOfferFields),
		})
		return
	}

	startDate, endDate, ok := parseOfferDates(ctx, req.StartDate, req.EndDate)
	if !ok {
		return
	}
	personID, ok := parseOptionalUUID(ctx, req.PersonID)
	if !ok {
		return
	}

	input := offer.CreateOfferInput{
		PersonID:          personID,
		Name:              req.Name,
		Type:              entity.OfferType(req.Type),
		StartDate:         startDate,
		EndDate:           endDate,
		SpendingTarget:    req.SpendingTarget,
		TransactionTarget: req.TransactionTarget,
		MinTransaction:    req.MinTransaction,
		Categories:        req.Categories,
		Reward:            req.Reward,
		BonusReward:       req.BonusReward,
		Tiers:             dto.ToTiers(req.Tiers),
		PercentBack:       req.PercentBack,
		MaxBack:           req.MaxBack,
		MinSpendThreshold: req.MinSpendThreshold,
		Description:       req.Description,
		MonthlyTracking:   req.MonthlyTracking,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToOfferResponse(output.Offer))
}

// Get handles GET /offers/:id requests.
func (c *OfferController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), offer.GetOfferInput{OfferID: id})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToOfferResponse(output.Offer))
}

// Update handles PUT /offers/:id requests.
func (c *OfferController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateOfferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingOfferFields),
		})
		return
	}

	input := offer.UpdateOfferInput{OfferID: id}
	input.Name = req.Name
	if req.Type != nil {
		t := entity.OfferType(*req.Type)
		input.Type = &t
	}
	if req.StartDate != nil {
		date, err := valueobject.ParseDate(*req.StartDate)
		if err != nil {
			respondInvalidOfferDate(ctx)
			return
		}
		input.StartDate = &date
	}
	if req.EndDate != nil {
		date, err := valueobject.ParseDate(*req.EndDate)
		if err != nil {
			respondInvalidOfferDate(ctx)
			return
		}
		input.EndDate = &date
	}
	if req.SpendingTarget != nil {
		input.SpendingTarget = &req.SpendingTarget
	}
	if req.TransactionTarget != nil {
		input.TransactionTarget = &req.TransactionTarget
	}
	if req.MinTransaction != nil {
		input.MinTransaction = &req.MinTransaction
	}
	input.Categories = req.Categories
	input.Reward = req.Reward
	if req.BonusReward != nil {
		input.BonusReward = &req.BonusReward
	}
	if req.Tiers != nil {
		tiers := dto.ToTiers(*req.Tiers)
		input.Tiers = &tiers
	}
	if req.PercentBack != nil {
		input.PercentBack = &req.PercentBack
	}
	if req.MaxBack != nil {
		input.MaxBack = &req.MaxBack
	}
	if req.MinSpendThreshold != nil {
		input.MinSpendThreshold = &req.MinSpendThreshold
	}
	input.Description = req.Description
	input.MonthlyTracking = req.MonthlyTracking

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToOfferResponse(output.Offer))
}

// Delete handles DELETE /offers/:id requests.
func (c *OfferController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), offer.DeleteOfferInput{OfferID: id}); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// Copy handles POST /offers/:id/copy requests.
func (c *OfferController) Copy(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CopyOfferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}
	personID, ok := parseOptionalUUID(ctx, req.PersonID)
	if !ok {
		return
	}

	output, err := c.copyUseCase.Execute(ctx.Request.Context(), offer.CopyOfferInput{
		OfferID:  id,
		PersonID: personID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToOfferResponse(output.Offer))
}

// Progress handles GET /offers/:id/progress requests.
func (c *OfferController) Progress(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	today, ok := todayQuery(ctx)
	if !ok {
		return
	}

	output, err := c.progressUseCase.Execute(ctx.Request.Context(), progress.GetOfferProgressInput{
		OfferID: id,
		Today:   today,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OfferProgressResponse{
		Offer:    dto.ToOfferResponse(output.Offer),
		Progress: dto.ToProgressResponse(output.Progress),
	})
}

func parseOfferDates(ctx *gin.Context, start, end string) (valueobject.Date, valueobject.Date, bool) {
	startDate, err := valueobject.ParseDate(start)
	if err != nil {
		respondInvalidOfferDate(ctx)
		return valueobject.Date{}, valueobject.Date{}, false
	}
	endDate, err := valueobject.ParseDate(end)
	if err != nil {
		respondInvalidOfferDate(ctx)
		return valueobject.Date{}, valueobject.Date{}, false
	}
	return startDate, endDate, true
}

func respondInvalidOfferDate(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid date format, expected YYYY-MM-DD",
		Code:  string(domainerror.ErrCodeInvalidOfferDates),
	})
}

func parseOptionalUUID(ctx *gin.Context, raw *string) (*uuid.UUID, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid person_id format",
		})
		return nil, false
	}
	return &id, true
}
