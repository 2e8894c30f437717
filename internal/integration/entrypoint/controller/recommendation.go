package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/offer-tracker/backend/internal/application/usecase/recommendation"
	"github.com/offer-tracker/backend/internal/integration/entrypoint/dto"
)

// RecommendationController handles the spending-recommendation endpoint.
type RecommendationController struct {
	recommendationsUseCase *recommendation.GetRecommendationsUseCase
}

// NewRecommendationController creates a new recommendation controller instance.
func NewRecommendationController(recommendationsUseCase *recommendation.GetRecommendationsUseCase) *RecommendationController {
	return &RecommendationController{recommendationsUseCase: recommendationsUseCase}
}

// Get handles GET /recommendations requests. The full engine runs on every
// call; nothing is cached between requests.
func (c *RecommendationController) Get(ctx *gin.Context) {
	personID, ok := personIDQuery(ctx)
	if !ok {
		return
	}
	today, ok := todayQuery(ctx)
	if !ok {
		return
	}

	output, err := c.recommendationsUseCase.Execute(ctx.Request.Context(), recommendation.GetRecommendationsInput{
		PersonID: personID,
		Today:    today,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToRecommendationsResponse(output))
}
