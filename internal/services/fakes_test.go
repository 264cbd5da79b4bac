package services_test

import (
	"fmt"

	"cloudedumatch_backend/internal/models"
	"cloudedumatch_backend/internal/repositories"
	"cloudedumatch_backend/internal/services/dto"
)

// The fakes embed the repository interfaces so only the methods a test
// exercises need real bodies; anything else panics loudly.

type sentNotification struct {
	UserID  string
	Type    string
	Payload map[string]interface{}
}

type fakeNotifier struct {
	sent []sentNotification
}

func (f *fakeNotifier) Notify(userID, notifType string, payload map[string]interface{}) {
	f.sent = append(f.sent, sentNotification{UserID: userID, Type: notifType, Payload: payload})
}

func (f *fakeNotifier) NotifyMany(userIDs []string, notifType string, payload map[string]interface{}) {
	for _, id := range userIDs {
		f.Notify(id, notifType, payload)
	}
}

func (f *fakeNotifier) List(string, bool, int, int) ([]*dto.NotificationResponse, error) {
	return nil, nil
}
func (f *fakeNotifier) MarkRead(string, string) error  { return nil }
func (f *fakeNotifier) MarkAllRead(string) error       { return nil }
func (f *fakeNotifier) UnreadCount(string) (int64, error) { return 0, nil }

func (f *fakeNotifier) sentTo(userID string) []sentNotification {
	var out []sentNotification
	for _, n := range f.sent {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

type fakeUserRepo struct {
	repositories.UserRepository
	users  map[string]*models.User
	grants []*models.AdminRole
	seq    int
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	f := &fakeUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(user *models.User) error {
	if user.ID == "" {
		f.seq++
		user.ID = fmt.Sprintf("user-%d", f.seq)
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByUsername(username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateFields(userID string, fields map[string]interface{}) error {
	u, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	if v, ok := fields["role"]; ok {
		u.Role = v.(models.UserRole)
	}
	if v, ok := fields["onboarding_status"]; ok {
		u.OnboardingStatus = v.(models.RequestStatus)
	}
	if v, ok := fields["is_superuser"]; ok {
		u.IsSuperuser = v.(bool)
	}
	if v, ok := fields["school_id"]; ok {
		u.SchoolID = v.(string)
	}
	return nil
}

func (f *fakeUserRepo) CreateGrant(grant *models.AdminRole) error {
	if grant.ID == "" {
		f.seq++
		grant.ID = fmt.Sprintf("grant-%d", f.seq)
	}
	f.grants = append(f.grants, grant)
	if u, ok := f.users[grant.UserID]; ok {
		u.AdminRoles = append(u.AdminRoles, *grant)
	}
	return nil
}

func (f *fakeUserRepo) FindGrant(userID string, code models.RoleCode, organizationID string) (*models.AdminRole, error) {
	for _, g := range f.grants {
		if g.UserID != userID || g.RoleCode != code {
			continue
		}
		if organizationID != "" && g.OrganizationID != organizationID {
			continue
		}
		return g, nil
	}
	return nil, repositories.ErrGrantNotFound
}

func (f *fakeUserRepo) FindByID(id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByIDWithGrants(id string) (*models.User, error) {
	return f.FindByID(id)
}

func (f *fakeUserRepo) FindByIDs(ids []string) ([]models.User, error) {
	out := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) List(filter repositories.UserFilter) ([]models.User, int64, error) {
	var out []models.User
	for _, u := range f.users {
		if filter.SchoolID != "" && u.SchoolID != filter.SchoolID {
			continue
		}
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

type fakeVerificationRepo struct {
	repositories.VerificationRepository
	requests map[string]*models.VerificationRequest
	seq      int
}

func newFakeVerificationRepo() *fakeVerificationRepo {
	return &fakeVerificationRepo{requests: map[string]*models.VerificationRequest{}}
}

func (f *fakeVerificationRepo) Create(req *models.VerificationRequest) error {
	if req.ID == "" {
		f.seq++
		req.ID = fmt.Sprintf("ver-%d", f.seq)
	}
	f.requests[req.ID] = req
	return nil
}

func (f *fakeVerificationRepo) FindByID(id string) (*models.VerificationRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, repositories.ErrVerificationNotFound
	}
	return req, nil
}

func (f *fakeVerificationRepo) Update(req *models.VerificationRequest) error {
	f.requests[req.ID] = req
	return nil
}

func (f *fakeVerificationRepo) List(filter repositories.VerificationFilter) ([]models.VerificationRequest, error) {
	var out []models.VerificationRequest
	for _, req := range f.requests {
		if filter.ApplicantID != "" && req.ApplicantID != filter.ApplicantID {
			continue
		}
		if filter.Type != "" && req.Type != filter.Type {
			continue
		}
		if filter.TargetSchoolID != "" && req.TargetSchoolID != filter.TargetSchoolID {
			continue
		}
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		out = append(out, *req)
	}
	return out, nil
}

type fakePoolRepo struct {
	repositories.TeacherPoolRepository
	entries []*models.TeacherPoolEntry
	seq     int
}

func (f *fakePoolRepo) add(entry *models.TeacherPoolEntry) *models.TeacherPoolEntry {
	if entry.ID == "" {
		f.seq++
		entry.ID = fmt.Sprintf("pool-%d", f.seq)
	}
	f.entries = append(f.entries, entry)
	return entry
}

func (f *fakePoolRepo) FindByUserAndSchool(userID, schoolID string) (*models.TeacherPoolEntry, error) {
	for _, e := range f.entries {
		if e.UserID == userID && e.SchoolID == schoolID {
			return e, nil
		}
	}
	return nil, repositories.ErrPoolEntryNotFound
}

func (f *fakePoolRepo) Create(entry *models.TeacherPoolEntry) error {
	f.add(entry)
	return nil
}

func (f *fakePoolRepo) Update(entry *models.TeacherPoolEntry) error {
	for i, e := range f.entries {
		if e.ID == entry.ID {
			f.entries[i] = entry
			return nil
		}
	}
	return repositories.ErrPoolEntryNotFound
}

func (f *fakePoolRepo) ListInPool() ([]models.TeacherPoolEntry, error) {
	var out []models.TeacherPoolEntry
	for _, e := range f.entries {
		if e.InPool {
			out = append(out, *e)
		}
	}
	return out, nil
}

type fakeMatchRepo struct {
	repositories.MatchRepository
	requests map[string]*models.MatchRequest
	offers   map[string]*models.MatchOffer
	seq      int
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{
		requests: map[string]*models.MatchRequest{},
		offers:   map[string]*models.MatchOffer{},
	}
}

func (f *fakeMatchRepo) CreateRequest(req *models.MatchRequest) error {
	if req.ID == "" {
		f.seq++
		req.ID = fmt.Sprintf("req-%d", f.seq)
	}
	f.requests[req.ID] = req
	return nil
}

func (f *fakeMatchRepo) FindRequestByID(id string) (*models.MatchRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, repositories.ErrMatchRequestNotFound
	}
	return req, nil
}

func (f *fakeMatchRepo) UpdateRequest(req *models.MatchRequest) error {
	f.requests[req.ID] = req
	return nil
}

func (f *fakeMatchRepo) ListRequestsByStudent(studentID string) ([]models.MatchRequest, error) {
	var out []models.MatchRequest
	for _, req := range f.requests {
		if req.StudentID == studentID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) CreateOffer(offer *models.MatchOffer) error {
	if offer.ID == "" {
		f.seq++
		offer.ID = fmt.Sprintf("offer-%d", f.seq)
	}
	f.offers[offer.ID] = offer
	return nil
}

func (f *fakeMatchRepo) FindOfferByID(id string) (*models.MatchOffer, error) {
	offer, ok := f.offers[id]
	if !ok {
		return nil, repositories.ErrMatchOfferNotFound
	}
	return offer, nil
}

func (f *fakeMatchRepo) FindOfferByRequestAndTeacher(requestID, teacherID string) (*models.MatchOffer, error) {
	for _, offer := range f.offers {
		if offer.RequestID == requestID && offer.TeacherID == teacherID {
			return offer, nil
		}
	}
	return nil, repositories.ErrMatchOfferNotFound
}

func (f *fakeMatchRepo) ListOffersByRequest(requestID string) ([]models.MatchOffer, error) {
	var out []models.MatchOffer
	for _, offer := range f.offers {
		if offer.RequestID == requestID {
			out = append(out, *offer)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) ListPendingOffersByTeacher(teacherID string, limit int) ([]models.MatchOffer, error) {
	var out []models.MatchOffer
	for _, offer := range f.offers {
		if offer.TeacherID == teacherID && offer.Status == models.OfferStatusPending {
			out = append(out, *offer)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) UpdateOffer(offer *models.MatchOffer) error {
	f.offers[offer.ID] = offer
	return nil
}

type fakeConversationRepo struct {
	repositories.ConversationRepository
	conversations map[string]*models.Conversation
	participants  map[string][]string
	messages      []*models.Message
	seq           int
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		conversations: map[string]*models.Conversation{},
		participants:  map[string][]string{},
	}
}

func (f *fakeConversationRepo) Create(conv *models.Conversation) error {
	if conv.ID == "" {
		f.seq++
		conv.ID = fmt.Sprintf("conv-%d", f.seq)
	}
	f.conversations[conv.ID] = conv
	return nil
}

func (f *fakeConversationRepo) FindPairwise(userID, peerUserID string) (*models.Conversation, error) {
	for id, conv := range f.conversations {
		members := f.participants[id]
		if containsString(members, userID) && containsString(members, peerUserID) {
			return conv, nil
		}
	}
	return nil, repositories.ErrConversationNotFound
}

func (f *fakeConversationRepo) AddParticipant(p *models.ConversationParticipant) error {
	f.participants[p.ConversationID] = append(f.participants[p.ConversationID], p.UserID)
	return nil
}

func (f *fakeConversationRepo) CreateMessage(msg *models.Message) error {
	f.messages = append(f.messages, msg)
	return nil
}

func containsString(set []string, want string) bool {
	for _, s := range set {
		if s == want {
			return true
		}
	}
	return false
}

type fakeOrgRepo struct {
	repositories.OrganizationRepository
	orgs []*models.Organization
	seq  int
}

func (f *fakeOrgRepo) Create(org *models.Organization) error {
	if org.ID == "" {
		f.seq++
		org.ID = fmt.Sprintf("org-%d", f.seq)
	}
	f.orgs = append(f.orgs, org)
	return nil
}

func (f *fakeOrgRepo) FindByID(id string) (*models.Organization, error) {
	for _, org := range f.orgs {
		if org.ID == id {
			return org, nil
		}
	}
	return nil, repositories.ErrOrganizationNotFound
}

func (f *fakeOrgRepo) FindByTypeAndSchoolID(orgType models.OrgType, schoolID string) (*models.Organization, error) {
	for _, org := range f.orgs {
		if org.Type == orgType && org.SchoolID == schoolID {
			return org, nil
		}
	}
	return nil, repositories.ErrOrganizationNotFound
}

func (f *fakeOrgRepo) FindByTypeAndAidSchoolID(orgType models.OrgType, aidSchoolID string) (*models.Organization, error) {
	for _, org := range f.orgs {
		if org.Type == orgType && org.AidSchoolID == aidSchoolID {
			return org, nil
		}
	}
	return nil, repositories.ErrOrganizationNotFound
}

func (f *fakeOrgRepo) FindByTypeAndDisplayName(orgType models.OrgType, displayName string) (*models.Organization, error) {
	for _, org := range f.orgs {
		if org.Type == orgType && org.DisplayName == displayName {
			return org, nil
		}
	}
	return nil, repositories.ErrOrganizationNotFound
}

func (f *fakeOrgRepo) FindUniversitiesBySchoolIDs(schoolIDs []string) ([]models.Organization, error) {
	want := map[string]struct{}{}
	for _, id := range schoolIDs {
		want[id] = struct{}{}
	}
	var out []models.Organization
	for _, org := range f.orgs {
		if org.Type != models.OrgTypeUniversity {
			continue
		}
		if _, ok := want[org.SchoolID]; ok {
			out = append(out, *org)
		}
	}
	return out, nil
}

type fakeAnnouncementRepo struct {
	repositories.AnnouncementRepository
	items map[string]*models.Announcement
	seq   int
}

func newFakeAnnouncementRepo() *fakeAnnouncementRepo {
	return &fakeAnnouncementRepo{items: map[string]*models.Announcement{}}
}

func (f *fakeAnnouncementRepo) Create(a *models.Announcement) error {
	if a.ID == "" {
		f.seq++
		a.ID = fmt.Sprintf("ann-%d", f.seq)
	}
	f.items[a.ID] = a
	return nil
}

func (f *fakeAnnouncementRepo) FindByID(id string) (*models.Announcement, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, repositories.ErrAnnouncementNotFound
	}
	return a, nil
}

func (f *fakeAnnouncementRepo) Update(a *models.Announcement) error {
	f.items[a.ID] = a
	return nil
}

func (f *fakeAnnouncementRepo) Delete(id string) error {
	delete(f.items, id)
	return nil
}
