package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/studentnest/studentnest-backend/internal/dtos"
	"github.com/studentnest/studentnest-backend/internal/models"
	"github.com/studentnest/studentnest-backend/internal/repositories"
	"github.com/studentnest/studentnest-backend/internal/utils"
)

/*
Legal status transitions. Anything not listed is rejected with
illegal_status_transition; in particular nothing ever reverts to
PENDING/REQUESTED, and COMPLETED is produced only from CONFIRMED
(by the completion sweep).
*/
var legalInquiryTransitions = map[models.InquiryStatusType][]models.InquiryStatusType{
	models.InquiryStatusPending: {models.InquiryStatusResponded, models.InquiryStatusDeclined},
	// a response may be re-edited
	models.InquiryStatusResponded: {models.InquiryStatusResponded},
}

var legalViewingTransitions = map[models.ViewingStatusType][]models.ViewingStatusType{
	models.ViewingStatusRequested: {models.ViewingStatusConfirmed, models.ViewingStatusDeclined},
	models.ViewingStatusConfirmed: {models.ViewingStatusCompleted},
}

func inquiryTransitionAllowed(from, to models.InquiryStatusType) bool {
	for _, s := range legalInquiryTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func viewingTransitionAllowed(from, to models.ViewingStatusType) bool {
	for _, s := range legalViewingTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// EngagementService owns the inquiry and viewing request/response state
// machines between student and landlord, including the notification
// side effects.
type EngagementService struct {
	inquiryRepo      repositories.InquiryRepository
	viewingRepo      repositories.ViewingRepository
	propRepo         repositories.PropertyRepository
	userRepo         repositories.UserRepository
	notificationsSvc *NotificationService
}

func NewEngagementService(
	inquiryRepo repositories.InquiryRepository,
	viewingRepo repositories.ViewingRepository,
	propRepo repositories.PropertyRepository,
	userRepo repositories.UserRepository,
	notificationsSvc *NotificationService,
) *EngagementService {
	return &EngagementService{
		inquiryRepo:      inquiryRepo,
		viewingRepo:      viewingRepo,
		propRepo:         propRepo,
		userRepo:         userRepo,
		notificationsSvc: notificationsSvc,
	}
}

// SendInquiry creates a PENDING inquiry and notifies the property's
// landlord.
func (s *EngagementService) SendInquiry(ctx context.Context, studentID uuid.UUID, req dtos.SendInquiryRequest) (*models.Inquiry, error) {
	student, err := requireRole(ctx, s.userRepo, studentID, models.RoleStudent)
	if err != nil {
		return nil, err
	}
	if req.Message == "" {
		return nil, utils.ErrMessageRequired
	}

	prop, err := s.propRepo.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, utils.ErrNotFound
	}

	inq := &models.Inquiry{
		ID:         uuid.New(),
		PropertyID: prop.ID,
		StudentID:  studentID,
		Message:    req.Message,
		Status:     models.InquiryStatusPending,
	}
	if err := s.inquiryRepo.Create(ctx, inq); err != nil {
		return nil, err
	}

	s.notify(ctx, prop.LandlordID, &prop.ID,
		fmt.Sprintf("New inquiry from %s about %q", student.FullName, prop.Title))

	return inq, nil
}

// RespondToInquiry sets status=RESPONDED and stores the response text.
// Repeated calls overwrite the prior response; status stays RESPONDED.
func (s *EngagementService) RespondToInquiry(ctx context.Context, landlordID, inquiryID uuid.UUID, responseText string) error {
	if responseText == "" {
		return utils.ErrMessageRequired
	}

	inq, err := s.ownedInquiry(ctx, landlordID, inquiryID)
	if err != nil {
		return err
	}

	err = s.inquiryRepo.UpdateWithRetry(ctx, inquiryID, func(i *models.Inquiry) error {
		if !inquiryTransitionAllowed(i.Status, models.InquiryStatusResponded) {
			return utils.ErrIllegalTransition
		}
		i.Status = models.InquiryStatusResponded
		i.Response = &responseText
		return nil
	})
	if err != nil {
		if isNotFound(err) {
			return utils.ErrNotFound
		}
		return err
	}

	s.notify(ctx, inq.StudentID, &inq.PropertyID, "A landlord responded to your inquiry")
	return nil
}

// UpdateInquiryStatus is the management surface's direct status set,
// guarded by the legal-transition table.
func (s *EngagementService) UpdateInquiryStatus(ctx context.Context, landlordID, inquiryID uuid.UUID, status models.InquiryStatusType) error {
	if !models.ValidInquiryStatus(status) {
		return utils.ErrInvalidStatus
	}

	if _, err := s.ownedInquiry(ctx, landlordID, inquiryID); err != nil {
		return err
	}

	err := s.inquiryRepo.UpdateWithRetry(ctx, inquiryID, func(i *models.Inquiry) error {
		if !inquiryTransitionAllowed(i.Status, status) {
			return utils.ErrIllegalTransition
		}
		i.Status = status
		return nil
	})
	if err != nil && isNotFound(err) {
		return utils.ErrNotFound
	}
	return err
}

// ScheduleViewing creates a REQUESTED viewing for a present-or-future
// instant and notifies the landlord.
func (s *EngagementService) ScheduleViewing(ctx context.Context, studentID uuid.UUID, req dtos.ScheduleViewingRequest) (*models.Viewing, error) {
	student, err := requireRole(ctx, s.userRepo, studentID, models.RoleStudent)
	if err != nil {
		return nil, err
	}
	if req.ScheduledAt.Before(time.Now()) {
		return nil, utils.ErrScheduledAtPast
	}

	prop, err := s.propRepo.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, utils.ErrNotFound
	}

	v := &models.Viewing{
		ID:          uuid.New(),
		PropertyID:  prop.ID,
		StudentID:   studentID,
		ScheduledAt: req.ScheduledAt,
		Notes:       req.Notes,
		Status:      models.ViewingStatusRequested,
	}
	if err := s.viewingRepo.Create(ctx, v); err != nil {
		return nil, err
	}

	s.notify(ctx, prop.LandlordID, &prop.ID,
		fmt.Sprintf("%s requested a viewing of %q", student.FullName, prop.Title))

	return v, nil
}

// UpdateViewingStatus confirms/declines a requested viewing (or completes
// a confirmed one), guarded by the legal-transition table. Confirmation
// and decline notify the student.
func (s *EngagementService) UpdateViewingStatus(ctx context.Context, landlordID, viewingID uuid.UUID, status models.ViewingStatusType) error {
	if !models.ValidViewingStatus(status) {
		return utils.ErrInvalidStatus
	}

	v, err := s.viewingRepo.GetByID(ctx, viewingID)
	if err != nil {
		return err
	}
	if v == nil {
		return utils.ErrNotFound
	}
	prop, err := s.ownedProperty(ctx, landlordID, v.PropertyID)
	if err != nil {
		return err
	}

	err = s.viewingRepo.UpdateWithRetry(ctx, viewingID, func(vw *models.Viewing) error {
		if !viewingTransitionAllowed(vw.Status, status) {
			return utils.ErrIllegalTransition
		}
		vw.Status = status
		return nil
	})
	if err != nil {
		if isNotFound(err) {
			return utils.ErrNotFound
		}
		return err
	}

	switch status {
	case models.ViewingStatusConfirmed:
		s.notify(ctx, v.StudentID, &prop.ID,
			fmt.Sprintf("Your viewing of %q was confirmed", prop.Title))
	case models.ViewingStatusDeclined:
		s.notify(ctx, v.StudentID, &prop.ID,
			fmt.Sprintf("Your viewing of %q was declined", prop.Title))
	}
	return nil
}

// GetForLandlord joins a property with its full inquiry/viewing history,
// inquiries newest first, viewings in visit order.
func (s *EngagementService) GetForLandlord(ctx context.Context, landlordID, propertyID uuid.UUID) (*dtos.PropertyEngagementDTO, error) {
	prop, err := s.ownedProperty(ctx, landlordID, propertyID)
	if err != nil {
		return nil, err
	}

	inquiries, err := s.inquiryRepo.ListByPropertyWithStudent(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	viewings, err := s.viewingRepo.ListByPropertyWithStudent(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	return &dtos.PropertyEngagementDTO{
		Property:  prop,
		Inquiries: inquiries,
		Viewings:  viewings,
	}, nil
}

// GetForStudent returns every property the student inquired about, each
// carrying only that student's own inquiries.
func (s *EngagementService) GetForStudent(ctx context.Context, studentID uuid.UUID) ([]*dtos.StudentPropertyThreadDTO, error) {
	props, err := s.propRepo.ListByInquiringStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	out := make([]*dtos.StudentPropertyThreadDTO, 0, len(props))
	for _, p := range props {
		inquiries, err := s.inquiryRepo.ListByPropertyAndStudent(ctx, p.ID, studentID)
		if err != nil {
			return nil, err
		}
		out = append(out, &dtos.StudentPropertyThreadDTO{
			Property:  p,
			Inquiries: inquiries,
		})
	}
	return out, nil
}

// ownedInquiry resolves an inquiry and checks the caller owns its
// property. Missing and not-owned are indistinguishable.
func (s *EngagementService) ownedInquiry(ctx context.Context, landlordID, inquiryID uuid.UUID) (*models.Inquiry, error) {
	inq, err := s.inquiryRepo.GetByID(ctx, inquiryID)
	if err != nil {
		return nil, err
	}
	if inq == nil {
		return nil, utils.ErrNotFound
	}
	if _, err := s.ownedProperty(ctx, landlordID, inq.PropertyID); err != nil {
		return nil, err
	}
	return inq, nil
}

func (s *EngagementService) ownedProperty(ctx context.Context, landlordID, propertyID uuid.UUID) (*models.Property, error) {
	prop, err := s.propRepo.GetByIDForLandlord(ctx, propertyID, landlordID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, utils.ErrNotFound
	}
	return prop, nil
}

// notify is best-effort: a failed notification write is logged and never
// fails the triggering operation.
func (s *EngagementService) notify(ctx context.Context, userID uuid.UUID, propertyID *uuid.UUID, message string) {
	if _, err := s.notificationsSvc.Create(ctx, userID, message, propertyID); err != nil {
		utils.Logger.WithError(err).Warn("Failed to create notification")
	}
}
