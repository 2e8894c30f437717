package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/offer-tracker/backend/internal/application/usecase/person"
	"github.com/offer-tracker/backend/internal/integration/entrypoint/dto"
)

// PersonController handles card-holder endpoints.
type PersonController struct {
	listUseCase   *person.ListPeopleUseCase
	createUseCase *person.CreatePersonUseCase
	updateUseCase *person.UpdatePersonUseCase
	deleteUseCase *person.DeletePersonUseCase
}

// NewPersonController creates a new person controller instance.
func NewPersonController(
	listUseCase *person.ListPeopleUseCase,
	createUseCase *person.CreatePersonUseCase,
	updateUseCase *person.UpdatePersonUseCase,
	deleteUseCase *person.DeletePersonUseCase,
) *PersonController {
	return &PersonController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /people requests.
func (c *PersonController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToPersonListResponse(output.People))
}

// Create handles POST /people requests.
func (c *PersonController) Create(ctx *gin.Context) {
	var req dto.CreatePersonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), person.CreatePersonInput{Name: req.Name})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToPersonResponse(output.Person))
}

// Update handles PUT /people/:id requests.
func (c *PersonController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdatePersonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), person.UpdatePersonInput{
		PersonID: id,
		Name:     req.Name,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToPersonResponse(output.Person))
}

// Delete handles DELETE /people/:id requests.
func (c *PersonController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), person.DeletePersonInput{PersonID: id}); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
