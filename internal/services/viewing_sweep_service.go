package services

import (
	"context"
	"time"

	"github.com/studentnest/studentnest-backend/internal/repositories"
	"github.com/studentnest/studentnest-backend/internal/utils"
)

// ViewingSweepService produces the COMPLETED viewing state: confirmed
// viewings whose scheduled instant has passed are completed on a
// schedule. Requested viewings that were never confirmed are left alone.
type ViewingSweepService struct {
	viewingRepo repositories.ViewingRepository
}

func NewViewingSweepService(viewingRepo repositories.ViewingRepository) *ViewingSweepService {
	return &ViewingSweepService{viewingRepo: viewingRepo}
}

func (s *ViewingSweepService) RunCompletionSweep(ctx context.Context) error {
	n, err := s.viewingRepo.CompletePastConfirmed(ctx, time.Now())
	if err != nil {
		return err
	}
	if n > 0 {
		utils.Logger.Infof("Completed %d past confirmed viewings", n)
	}
	return nil
}
