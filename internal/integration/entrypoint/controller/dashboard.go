package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/offer-tracker/backend/internal/application/usecase/progress"
	"github.com/offer-tracker/backend/internal/integration/entrypoint/dto"
)

// DashboardController handles the prioritized offer overview endpoint.
type DashboardController struct {
	dashboardUseCase *progress.GetDashboardUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(dashboardUseCase *progress.GetDashboardUseCase) *DashboardController {
	return &DashboardController{dashboardUseCase: dashboardUseCase}
}

// Get handles GET /dashboard requests.
func (c *DashboardController) Get(ctx *gin.Context) {
	personID, ok := personIDQuery(ctx)
	if !ok {
		return
	}
	today, ok := todayQuery(ctx)
	if !ok {
		return
	}

	output, err := c.dashboardUseCase.Execute(ctx.Request.Context(), progress.GetDashboardInput{
		PersonID: personID,
		Today:    today,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(output.Offers))
}
