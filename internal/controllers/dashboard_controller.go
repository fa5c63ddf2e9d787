package controllers

import (
	"net/http"

	"github.com/studentnest/studentnest-backend/internal/services"
	"github.com/studentnest/studentnest-backend/internal/utils"
)

type DashboardController struct {
	dashboardSvc *services.DashboardService
	authSvc      *services.AuthService
}

func NewDashboardController(dashboardSvc *services.DashboardService, authSvc *services.AuthService) *DashboardController {
	return &DashboardController{dashboardSvc: dashboardSvc, authSvc: authSvc}
}

// Get returns the landlord overview: aggregate stats, the status
// distribution, per-property engagement, upcoming viewings and recent
// notifications in one payload.
func (c *DashboardController) Get(w http.ResponseWriter, r *http.Request) {
	caller, err := resolveCaller(r, c.authSvc)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	data, err := c.dashboardSvc.LandlordSummary(r.Context(), caller.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, data)
}
