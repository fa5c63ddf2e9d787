package controllers

import (
	"context"
	"net/http"

	"github.com/studentnest/studentnest-backend/internal/dtos"
	"github.com/studentnest/studentnest-backend/internal/utils"
)

// DBPinger is the slice of the pgx pool the health check needs.
type DBPinger interface {
	Ping(ctx context.Context) error
}

type HealthCheckController struct {
	db DBPinger
}

func NewHealthCheckController(db DBPinger) *HealthCheckController {
	return &HealthCheckController{db: db}
}

// CheckHealth reports ok only when the database pool answers a ping.
func (c *HealthCheckController) CheckHealth(w http.ResponseWriter, r *http.Request) {
	if err := c.db.Ping(r.Context()); err != nil {
		utils.Logger.WithError(err).Error("DB unreachable")
		utils.RespondErrorWithCode(w, http.StatusServiceUnavailable, utils.ErrCodeInternal, "Database unreachable", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthCheckResponse{Status: "ok"})
}
