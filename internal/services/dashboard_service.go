package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/studentnest/studentnest-backend/internal/dtos"
	"github.com/studentnest/studentnest-backend/internal/models"
	"github.com/studentnest/studentnest-backend/internal/repositories"
)

const (
	upcomingViewingsLimit      = 10
	dashboardNotificationLimit = 5
)

// DashboardService composes the landlord summary from independent read
// queries. The result is a reasonable snapshot, not a transactional one.
type DashboardService struct {
	propRepo         repositories.PropertyRepository
	inquiryRepo      repositories.InquiryRepository
	viewingRepo      repositories.ViewingRepository
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
}

func NewDashboardService(
	propRepo repositories.PropertyRepository,
	inquiryRepo repositories.InquiryRepository,
	viewingRepo repositories.ViewingRepository,
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
) *DashboardService {
	return &DashboardService{
		propRepo:         propRepo,
		inquiryRepo:      inquiryRepo,
		viewingRepo:      viewingRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

func (s *DashboardService) LandlordSummary(ctx context.Context, landlordID uuid.UUID) (*dtos.DashboardData, error) {
	if _, err := requireRole(ctx, s.userRepo, landlordID, models.RoleLandlord); err != nil {
		return nil, err
	}

	now := time.Now()

	statusCounts, err := s.propRepo.CountByLandlordGroupedByStatus(ctx, landlordID)
	if err != nil {
		return nil, err
	}

	// fixed bucket order, zero-filled
	distribution := make([]dtos.PropertyStatusCount, 0, len(models.AllPropertyStatuses))
	total := 0
	for _, st := range models.AllPropertyStatuses {
		n := statusCounts[st]
		total += n
		distribution = append(distribution, dtos.PropertyStatusCount{Status: st, Count: n})
	}

	totalInquiries, err := s.inquiryRepo.CountByLandlord(ctx, landlordID)
	if err != nil {
		return nil, err
	}
	pendingInquiries, err := s.inquiryRepo.CountPendingByLandlord(ctx, landlordID)
	if err != nil {
		return nil, err
	}
	totalViewings, err := s.viewingRepo.CountByLandlord(ctx, landlordID)
	if err != nil {
		return nil, err
	}
	upcomingCount, err := s.viewingRepo.CountUpcomingByLandlord(ctx, landlordID, now)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.viewingRepo.ListUpcomingByLandlord(ctx, landlordID, now, upcomingViewingsLimit)
	if err != nil {
		return nil, err
	}
	notifications, err := s.notificationRepo.ListForUser(ctx, landlordID, dashboardNotificationLimit)
	if err != nil {
		return nil, err
	}

	properties, err := s.propRepo.ListByLandlord(ctx, landlordID)
	if err != nil {
		return nil, err
	}
	summaries := make([]dtos.PropertyEngagementSummary, 0, len(properties))
	for _, p := range properties {
		pending, err := s.inquiryRepo.CountPendingByProperty(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		viewings, err := s.viewingRepo.CountByProperty(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, dtos.PropertyEngagementSummary{
			ID:               p.ID,
			Title:            p.Title,
			Location:         p.Location,
			ImageURL:         p.ImageURL,
			Status:           p.Status,
			PendingInquiries: pending,
			TotalViewings:    viewings,
		})
	}

	rented := statusCounts[models.PropertyStatusRented]
	occupancy := 0
	if total > 0 {
		occupancy = int(math.Round(float64(rented) / float64(total) * 100))
	}

	return &dtos.DashboardData{
		Stats: dtos.DashboardStats{
			TotalProperties:    total,
			ActiveProperties:   statusCounts[models.PropertyStatusActive],
			RentedProperties:   rented,
			DraftProperties:    statusCounts[models.PropertyStatusDraft],
			ArchivedProperties: statusCounts[models.PropertyStatusArchived],
			TotalInquiries:     totalInquiries,
			PendingInquiries:   pendingInquiries,
			TotalViewings:      totalViewings,
			UpcomingViewings:   upcomingCount,
			OccupancyRate:      occupancy,
		},
		PropertyDistribution: distribution,
		Properties:           summaries,
		UpcomingViewings:     upcoming,
		Notifications:        notifications,
	}, nil
}
