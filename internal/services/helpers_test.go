package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/studentnest/studentnest-backend/internal/cache"
	"github.com/studentnest/studentnest-backend/internal/models"
)

/* ------------------------------------------------------------------
   In-memory repository fakes
------------------------------------------------------------------- */

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByExternalID(_ context.Context, externalID string) (*models.User, error) {
	for _, u := range r.users {
		if u.ExternalID == externalID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id uuid.UUID, role models.RoleType) error {
	u, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) addUser(role models.RoleType, name string) *models.User {
	u := &models.User{
		ID:         uuid.New(),
		ExternalID: "ext-" + uuid.NewString(),
		FullName:   name,
		Email:      name + "@example.com",
		Role:       role,
		CreatedAt:  time.Now(),
	}
	r.users[u.ID] = u
	return u
}

type fakePropertyRepo struct {
	props map[uuid.UUID]*models.Property
	order []uuid.UUID // insertion order; listings return newest first

	// inquiryLookup joins the inquiry fake into the DISTINCT query the
	// real repository runs for ListByInquiringStudent.
	inquiryLookup func() []*models.Inquiry
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{props: map[uuid.UUID]*models.Property{}}
}

func (r *fakePropertyRepo) Upsert(_ context.Context, p *models.Property) (bool, error) {
	existing, ok := r.props[p.ID]
	if ok {
		if existing.LandlordID != p.LandlordID {
			return false, nil
		}
		cp := *p
		cp.LandlordID = existing.LandlordID
		cp.CreatedAt = existing.CreatedAt
		cp.RowVersion = existing.RowVersion + 1
		cp.UpdatedAt = time.Now()
		r.props[p.ID] = &cp
		return true, nil
	}
	cp := *p
	cp.RowVersion = 1
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.props[p.ID] = &cp
	r.order = append(r.order, p.ID)
	return true, nil
}

func (r *fakePropertyRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Property, error) {
	p, ok := r.props[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePropertyRepo) GetByIDForLandlord(_ context.Context, id, landlordID uuid.UUID) (*models.Property, error) {
	p, ok := r.props[id]
	if !ok || p.LandlordID != landlordID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePropertyRepo) newestFirst(keep func(*models.Property) bool) []*models.Property {
	var out []*models.Property
	for i := len(r.order) - 1; i >= 0; i-- {
		p, ok := r.props[r.order[i]]
		if !ok || !keep(p) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out
}

func (r *fakePropertyRepo) ListByLandlord(_ context.Context, landlordID uuid.UUID) ([]*models.Property, error) {
	return r.newestFirst(func(p *models.Property) bool { return p.LandlordID == landlordID }), nil
}

func (r *fakePropertyRepo) ListByStatus(_ context.Context, status models.PropertyStatusType) ([]*models.Property, error) {
	return r.newestFirst(func(p *models.Property) bool { return p.Status == status }), nil
}

func (r *fakePropertyRepo) ListAll(_ context.Context) ([]*models.Property, error) {
	return r.newestFirst(func(*models.Property) bool { return true }), nil
}

func (r *fakePropertyRepo) ListByInquiringStudent(_ context.Context, studentID uuid.UUID) ([]*models.Property, error) {
	if r.inquiryLookup == nil {
		return nil, nil
	}
	seen := map[uuid.UUID]bool{}
	for _, inq := range r.inquiryLookup() {
		if inq.StudentID == studentID {
			seen[inq.PropertyID] = true
		}
	}
	return r.newestFirst(func(p *models.Property) bool { return seen[p.ID] }), nil
}

func (r *fakePropertyRepo) DeleteOwned(_ context.Context, id, landlordID uuid.UUID) error {
	p, ok := r.props[id]
	if !ok || p.LandlordID != landlordID {
		return pgx.ErrNoRows
	}
	delete(r.props, id)
	return nil
}

func (r *fakePropertyRepo) CountByLandlordGroupedByStatus(_ context.Context, landlordID uuid.UUID) (map[models.PropertyStatusType]int, error) {
	out := map[models.PropertyStatusType]int{}
	for _, p := range r.props {
		if p.LandlordID == landlordID {
			out[p.Status]++
		}
	}
	return out, nil
}

type fakeInquiryRepo struct {
	inquiries map[uuid.UUID]*models.Inquiry
	order     []uuid.UUID
	students  *fakeUserRepo
	props     *fakePropertyRepo
}

func newFakeInquiryRepo(users *fakeUserRepo, props *fakePropertyRepo) *fakeInquiryRepo {
	r := &fakeInquiryRepo{
		inquiries: map[uuid.UUID]*models.Inquiry{},
		students:  users,
		props:     props,
	}
	props.inquiryLookup = r.all
	return r
}

func (r *fakeInquiryRepo) all() []*models.Inquiry {
	out := make([]*models.Inquiry, 0, len(r.inquiries))
	for _, i := range r.inquiries {
		out = append(out, i)
	}
	return out
}

func (r *fakeInquiryRepo) Create(_ context.Context, i *models.Inquiry) error {
	cp := *i
	cp.RowVersion = 1
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.inquiries[i.ID] = &cp
	r.order = append(r.order, i.ID)
	return nil
}

func (r *fakeInquiryRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Inquiry, error) {
	i, ok := r.inquiries[id]
	if !ok {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}

func (r *fakeInquiryRepo) ListByPropertyWithStudent(_ context.Context, propertyID uuid.UUID) ([]*models.InquiryWithStudent, error) {
	var out []*models.InquiryWithStudent
	for idx := len(r.order) - 1; idx >= 0; idx-- {
		i, ok := r.inquiries[r.order[idx]]
		if !ok || i.PropertyID != propertyID {
			continue
		}
		student := r.students.users[i.StudentID]
		out = append(out, &models.InquiryWithStudent{
			Inquiry: *i,
			Student: models.StudentSummary{ID: student.ID, FullName: student.FullName, Email: student.Email},
		})
	}
	return out, nil
}

func (r *fakeInquiryRepo) ListByPropertyAndStudent(_ context.Context, propertyID, studentID uuid.UUID) ([]*models.Inquiry, error) {
	var out []*models.Inquiry
	for idx := len(r.order) - 1; idx >= 0; idx-- {
		i, ok := r.inquiries[r.order[idx]]
		if !ok || i.PropertyID != propertyID || i.StudentID != studentID {
			continue
		}
		cp := *i
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeInquiryRepo) UpdateIfVersion(_ context.Context, i *models.Inquiry, expected int64) (pgconn.CommandTag, error) {
	existing, ok := r.inquiries[i.ID]
	if !ok || existing.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	cp := *i
	cp.RowVersion = expected + 1
	cp.UpdatedAt = time.Now()
	r.inquiries[i.ID] = &cp
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (r *fakeInquiryRepo) UpdateWithRetry(_ context.Context, id uuid.UUID, mutate func(*models.Inquiry) error) error {
	i, ok := r.inquiries[id]
	if !ok {
		return pgx.ErrNoRows
	}
	cp := *i
	if err := mutate(&cp); err != nil {
		return err
	}
	cp.RowVersion++
	cp.UpdatedAt = time.Now()
	r.inquiries[id] = &cp
	return nil
}

func (r *fakeInquiryRepo) CountByLandlord(_ context.Context, landlordID uuid.UUID) (int, error) {
	n := 0
	for _, i := range r.inquiries {
		if p, ok := r.props.props[i.PropertyID]; ok && p.LandlordID == landlordID {
			n++
		}
	}
	return n, nil
}

func (r *fakeInquiryRepo) CountPendingByLandlord(_ context.Context, landlordID uuid.UUID) (int, error) {
	n := 0
	for _, i := range r.inquiries {
		if i.Status != models.InquiryStatusPending {
			continue
		}
		if p, ok := r.props.props[i.PropertyID]; ok && p.LandlordID == landlordID {
			n++
		}
	}
	return n, nil
}

func (r *fakeInquiryRepo) CountPendingByProperty(_ context.Context, propertyID uuid.UUID) (int, error) {
	n := 0
	for _, i := range r.inquiries {
		if i.PropertyID == propertyID && i.Status == models.InquiryStatusPending {
			n++
		}
	}
	return n, nil
}

type fakeViewingRepo struct {
	viewings map[uuid.UUID]*models.Viewing
	order    []uuid.UUID
	students *fakeUserRepo
	props    *fakePropertyRepo
}

func newFakeViewingRepo(users *fakeUserRepo, props *fakePropertyRepo) *fakeViewingRepo {
	return &fakeViewingRepo{
		viewings: map[uuid.UUID]*models.Viewing{},
		students: users,
		props:    props,
	}
}

func (r *fakeViewingRepo) Create(_ context.Context, v *models.Viewing) error {
	cp := *v
	cp.RowVersion = 1
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.viewings[v.ID] = &cp
	r.order = append(r.order, v.ID)
	return nil
}

func (r *fakeViewingRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Viewing, error) {
	v, ok := r.viewings[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *fakeViewingRepo) ListByPropertyWithStudent(_ context.Context, propertyID uuid.UUID) ([]*models.ViewingWithStudent, error) {
	var out []*models.ViewingWithStudent
	for _, id := range r.order {
		v, ok := r.viewings[id]
		if !ok || v.PropertyID != propertyID {
			continue
		}
		student := r.students.users[v.StudentID]
		out = append(out, &models.ViewingWithStudent{
			Viewing: *v,
			Student: models.StudentSummary{ID: student.ID, FullName: student.FullName, Email: student.Email},
		})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].ScheduledAt.Before(out[b].ScheduledAt) })
	return out, nil
}

func (r *fakeViewingRepo) UpdateIfVersion(_ context.Context, v *models.Viewing, expected int64) (pgconn.CommandTag, error) {
	existing, ok := r.viewings[v.ID]
	if !ok || existing.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	cp := *v
	cp.RowVersion = expected + 1
	cp.UpdatedAt = time.Now()
	r.viewings[v.ID] = &cp
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (r *fakeViewingRepo) UpdateWithRetry(_ context.Context, id uuid.UUID, mutate func(*models.Viewing) error) error {
	v, ok := r.viewings[id]
	if !ok {
		return pgx.ErrNoRows
	}
	cp := *v
	if err := mutate(&cp); err != nil {
		return err
	}
	cp.RowVersion++
	cp.UpdatedAt = time.Now()
	r.viewings[id] = &cp
	return nil
}

func (r *fakeViewingRepo) CountByLandlord(_ context.Context, landlordID uuid.UUID) (int, error) {
	n := 0
	for _, v := range r.viewings {
		if p, ok := r.props.props[v.PropertyID]; ok && p.LandlordID == landlordID {
			n++
		}
	}
	return n, nil
}

// upcoming means a REQUESTED or CONFIRMED viewing at now or later,
// matching the repository's status IN ('REQUESTED','CONFIRMED') filter.
func upcomingViewing(v *models.Viewing, now time.Time) bool {
	if v.Status != models.ViewingStatusRequested && v.Status != models.ViewingStatusConfirmed {
		return false
	}
	return !v.ScheduledAt.Before(now)
}

func (r *fakeViewingRepo) CountUpcomingByLandlord(_ context.Context, landlordID uuid.UUID, now time.Time) (int, error) {
	n := 0
	for _, v := range r.viewings {
		if !upcomingViewing(v, now) {
			continue
		}
		if p, ok := r.props.props[v.PropertyID]; ok && p.LandlordID == landlordID {
			n++
		}
	}
	return n, nil
}

func (r *fakeViewingRepo) ListUpcomingByLandlord(_ context.Context, landlordID uuid.UUID, now time.Time, limit int) ([]*models.UpcomingViewing, error) {
	var out []*models.UpcomingViewing
	for _, id := range r.order {
		v, ok := r.viewings[id]
		if !ok || !upcomingViewing(v, now) {
			continue
		}
		p, ok := r.props.props[v.PropertyID]
		if !ok || p.LandlordID != landlordID {
			continue
		}
		student := r.students.users[v.StudentID]
		out = append(out, &models.UpcomingViewing{
			Viewing:          *v,
			PropertyTitle:    p.Title,
			PropertyImageURL: p.ImageURL,
			StudentName:      student.FullName,
		})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].ScheduledAt.Before(out[b].ScheduledAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeViewingRepo) CountByProperty(_ context.Context, propertyID uuid.UUID) (int, error) {
	n := 0
	for _, v := range r.viewings {
		if v.PropertyID == propertyID {
			n++
		}
	}
	return n, nil
}

func (r *fakeViewingRepo) CompletePastConfirmed(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, v := range r.viewings {
		if v.Status == models.ViewingStatusConfirmed && v.ScheduledAt.Before(now) {
			v.Status = models.ViewingStatusCompleted
			v.RowVersion++
			n++
		}
	}
	return n, nil
}

type savedKey struct {
	student  uuid.UUID
	property uuid.UUID
}

type fakeSavedRepo struct {
	saved map[savedKey]*models.SavedProperty
	order []savedKey
	props *fakePropertyRepo
}

func newFakeSavedRepo(props *fakePropertyRepo) *fakeSavedRepo {
	return &fakeSavedRepo{saved: map[savedKey]*models.SavedProperty{}, props: props}
}

func (r *fakeSavedRepo) Find(_ context.Context, studentID, propertyID uuid.UUID) (*models.SavedProperty, error) {
	sp, ok := r.saved[savedKey{studentID, propertyID}]
	if !ok {
		return nil, nil
	}
	cp := *sp
	return &cp, nil
}

func (r *fakeSavedRepo) Insert(_ context.Context, sp *models.SavedProperty) (bool, error) {
	k := savedKey{sp.StudentID, sp.PropertyID}
	if _, ok := r.saved[k]; ok {
		return false, nil
	}
	cp := *sp
	cp.CreatedAt = time.Now()
	r.saved[k] = &cp
	r.order = append(r.order, k)
	return true, nil
}

func (r *fakeSavedRepo) Delete(_ context.Context, studentID, propertyID uuid.UUID) error {
	delete(r.saved, savedKey{studentID, propertyID})
	return nil
}

func (r *fakeSavedRepo) ListSaved(_ context.Context, studentID uuid.UUID) ([]*models.SavedListing, error) {
	var out []*models.SavedListing
	for idx := len(r.order) - 1; idx >= 0; idx-- {
		k := r.order[idx]
		sp, ok := r.saved[k]
		if !ok || k.student != studentID {
			continue
		}
		p, ok := r.props.props[k.property]
		if !ok {
			continue
		}
		out = append(out, &models.SavedListing{Property: *p, SavedAt: sp.CreatedAt})
	}
	return out, nil
}

type fakeNotificationRepo struct {
	notifications map[uuid.UUID]*models.Notification
	order         []uuid.UUID
	props         *fakePropertyRepo
}

func newFakeNotificationRepo(props *fakePropertyRepo) *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: map[uuid.UUID]*models.Notification{}, props: props}
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	cp := *n
	cp.CreatedAt = time.Now()
	r.notifications[n.ID] = &cp
	r.order = append(r.order, n.ID)
	return nil
}

func (r *fakeNotificationRepo) ListForUser(_ context.Context, userID uuid.UUID, limit int) ([]*models.NotificationWithProperty, error) {
	var out []*models.NotificationWithProperty
	for idx := len(r.order) - 1; idx >= 0 && len(out) < limit; idx-- {
		n, ok := r.notifications[r.order[idx]]
		if !ok || n.UserID != userID {
			continue
		}
		nw := &models.NotificationWithProperty{Notification: *n}
		if n.PropertyID != nil {
			if p, ok := r.props.props[*n.PropertyID]; ok {
				title := p.Title
				nw.PropertyTitle = &title
			}
		}
		out = append(out, nw)
	}
	return out, nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, userID uuid.UUID) (int, error) {
	n := 0
	for _, nt := range r.notifications {
		if nt.UserID == userID && !nt.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id uuid.UUID) error {
	nt, ok := r.notifications[id]
	if !ok {
		return pgx.ErrNoRows
	}
	nt.IsRead = true
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID uuid.UUID) error {
	for _, nt := range r.notifications {
		if nt.UserID == userID {
			nt.IsRead = true
		}
	}
	return nil
}

/* ------------------------------------------------------------------
   Cache fake
------------------------------------------------------------------- */

type fakeCache struct {
	entries map[string][]byte
	gets    int
	sets    int
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	c.gets++
	v, ok := c.entries[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.sets++
	c.entries[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.deletes++
	delete(c.entries, key)
	return nil
}

/* ------------------------------------------------------------------
   Suite wiring
------------------------------------------------------------------- */

type fixture struct {
	users         *fakeUserRepo
	props         *fakePropertyRepo
	inquiries     *fakeInquiryRepo
	viewings      *fakeViewingRepo
	saved         *fakeSavedRepo
	notifications *fakeNotificationRepo
	cache         *fakeCache

	authSvc         *AuthService
	listingSvc      *ListingService
	notificationSvc *NotificationService
	engagementSvc   *EngagementService
	savedSvc        *SavedPropertyService
	dashboardSvc    *DashboardService
	sweepSvc        *ViewingSweepService
}

func newFixture() *fixture {
	f := &fixture{}
	f.users = newFakeUserRepo()
	f.props = newFakePropertyRepo()
	f.inquiries = newFakeInquiryRepo(f.users, f.props)
	f.viewings = newFakeViewingRepo(f.users, f.props)
	f.saved = newFakeSavedRepo(f.props)
	f.notifications = newFakeNotificationRepo(f.props)
	f.cache = newFakeCache()

	f.authSvc = NewAuthService(f.users)
	f.listingSvc = NewListingService(f.props, f.users, true)
	f.notificationSvc = NewNotificationService(f.notifications, f.cache)
	f.engagementSvc = NewEngagementService(f.inquiries, f.viewings, f.props, f.users, f.notificationSvc)
	f.savedSvc = NewSavedPropertyService(f.saved, f.props, f.users)
	f.dashboardSvc = NewDashboardService(f.props, f.inquiries, f.viewings, f.notifications, f.users)
	f.sweepSvc = NewViewingSweepService(f.viewings)
	return f
}
