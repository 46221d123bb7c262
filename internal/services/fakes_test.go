package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"nepshift_backend/internal/models"
	"nepshift_backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// testDB returns a *gorm.DB whose Transaction machinery works without a
// database. Queries never reach it: every test below talks to the in-memory
// fakes, which ignore the db handle the services pass through.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{ConnPool: stubConnPool{}})
	if err != nil {
		t.Fatalf("open stub db: %v", err)
	}
	return db
}

type stubConnPool struct{}

func (stubConnPool) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, nil
}
func (stubConnPool) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}
func (stubConnPool) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}
func (stubConnPool) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}
func (stubConnPool) BeginTx(ctx context.Context, opts *sql.TxOptions) (gorm.ConnPool, error) {
	return &stubTx{}, nil
}

type stubTx struct{ stubConnPool }

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

// --- fake repositories ---

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) add(user *models.User) *models.User {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(db *gorm.DB, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrEmailTaken
		}
	}
	r.add(user)
	return nil
}

func (r *fakeUserRepo) FindByID(db *gorm.DB, id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Update(db *gorm.DB, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

type fakeVerificationRepo struct {
	profiles map[string]*models.VerificationProfile // keyed by user id
}

func newFakeVerificationRepo() *fakeVerificationRepo {
	return &fakeVerificationRepo{profiles: make(map[string]*models.VerificationProfile)}
}

func (r *fakeVerificationRepo) Create(db *gorm.DB, profile *models.VerificationProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *fakeVerificationRepo) FindByUserID(db *gorm.DB, userID string) (*models.VerificationProfile, error) {
	if p, ok := r.profiles[userID]; ok {
		return p, nil
	}
	return nil, repositories.ErrVerificationNotFound
}

func (r *fakeVerificationRepo) UpdateStatus(db *gorm.DB, profileID string, status models.VerificationStatus, rejectionReason *string) error {
	for _, p := range r.profiles {
		if p.ID == profileID {
			p.Status = status
			p.RejectionReason = rejectionReason
			return nil
		}
	}
	return repositories.ErrVerificationNotFound
}

func (r *fakeVerificationRepo) UpsertDocument(db *gorm.DB, doc *models.VerificationDocument) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	for _, p := range r.profiles {
		if p.ID != doc.ProfileID {
			continue
		}
		for i := range p.Documents {
			if p.Documents[i].Kind == doc.Kind {
				p.Documents[i] = *doc
				return nil
			}
		}
		p.Documents = append(p.Documents, *doc)
		return nil
	}
	return repositories.ErrVerificationNotFound
}

func (r *fakeVerificationRepo) ListByStatus(db *gorm.DB, status models.VerificationStatus, limit, offset int) ([]models.VerificationProfile, int64, error) {
	var matched []models.VerificationProfile
	for _, p := range r.profiles {
		if p.Status == status {
			matched = append(matched, *p)
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

type fakeShiftRepo struct {
	shifts map[string]*models.Shift
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: make(map[string]*models.Shift)}
}

func (r *fakeShiftRepo) add(shift *models.Shift) *models.Shift {
	if shift.ID == "" {
		shift.ID = uuid.NewString()
	}
	r.shifts[shift.ID] = shift
	return shift
}

func (r *fakeShiftRepo) Create(db *gorm.DB, shift *models.Shift) error {
	r.add(shift)
	return nil
}

func (r *fakeShiftRepo) FindByID(db *gorm.DB, id string) (*models.Shift, error) {
	if s, ok := r.shifts[id]; ok {
		return s, nil
	}
	return nil, repositories.ErrShiftNotFound
}

func (r *fakeShiftRepo) FindByIDForUpdate(db *gorm.DB, id string) (*models.Shift, error) {
	return r.FindByID(db, id)
}

func (r *fakeShiftRepo) UpdateStatus(db *gorm.DB, shiftID string, status models.ShiftStatus) error {
	s, ok := r.shifts[shiftID]
	if !ok {
		return repositories.ErrShiftNotFound
	}
	s.Status = status
	return nil
}

func (r *fakeShiftRepo) ListByHirer(db *gorm.DB, hirerID string) ([]models.Shift, error) {
	var out []models.Shift
	for _, s := range r.shifts {
		if s.HirerID == hirerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeShiftRepo) Search(db *gorm.DB, criteria repositories.ShiftSearchCriteria) ([]models.Shift, int64, error) {
	var out []models.Shift
	for _, s := range r.shifts {
		if s.Status != models.ShiftStatusOpen {
			continue
		}
		if criteria.City != "" && s.City != criteria.City {
			continue
		}
		if criteria.Category != "" && s.Category != criteria.Category {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

type fakeApplicationRepo struct {
	apps map[string]*models.ShiftApplication
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[string]*models.ShiftApplication)}
}

func (r *fakeApplicationRepo) add(app *models.ShiftApplication) *models.ShiftApplication {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	r.apps[app.ID] = app
	return app
}

// Create mimics the partial unique index: a second non-rejected application
// for the same (shift, worker) pair is refused.
func (r *fakeApplicationRepo) Create(db *gorm.DB, app *models.ShiftApplication) error {
	for _, existing := range r.apps {
		if existing.ShiftID == app.ShiftID &&
			existing.WorkerID == app.WorkerID &&
			existing.Status != models.ApplicationStatusRejected {
			return repositories.ErrDuplicateApplication
		}
	}
	r.add(app)
	return nil
}

func (r *fakeApplicationRepo) FindByID(db *gorm.DB, id string) (*models.ShiftApplication, error) {
	if a, ok := r.apps[id]; ok {
		return a, nil
	}
	return nil, repositories.ErrApplicationNotFound
}

func (r *fakeApplicationRepo) UpdateStatus(db *gorm.DB, appID string, status models.ApplicationStatus) error {
	a, ok := r.apps[appID]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	a.Status = status
	return nil
}

func (r *fakeApplicationRepo) RejectSiblings(db *gorm.DB, shiftID, acceptedAppID string) error {
	for _, a := range r.apps {
		if a.ShiftID == shiftID && a.ID != acceptedAppID && a.Status == models.ApplicationStatusPending {
			a.Status = models.ApplicationStatusRejected
		}
	}
	return nil
}

func (r *fakeApplicationRepo) ListByShift(db *gorm.DB, shiftID string) ([]models.ShiftApplication, error) {
	var out []models.ShiftApplication
	for _, a := range r.apps {
		if a.ShiftID == shiftID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListByWorker(db *gorm.DB, workerID string) ([]models.ShiftApplication, error) {
	var out []models.ShiftApplication
	for _, a := range r.apps {
		if a.WorkerID == workerID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) FindAcceptedByShift(db *gorm.DB, shiftID string) (*models.ShiftApplication, error) {
	for _, a := range r.apps {
		if a.ShiftID == shiftID && a.Status == models.ApplicationStatusAccepted {
			return a, nil
		}
	}
	return nil, repositories.ErrApplicationNotFound
}

type fakeProfileRepo struct {
	workers map[string]*models.WorkerProfile
	hirers  map[string]*models.HirerProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		workers: make(map[string]*models.WorkerProfile),
		hirers:  make(map[string]*models.HirerProfile),
	}
}

func (r *fakeProfileRepo) CreateWorkerProfile(db *gorm.DB, profile *models.WorkerProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	r.workers[profile.UserID] = profile
	return nil
}

func (r *fakeProfileRepo) FindWorkerByUserID(db *gorm.DB, userID string) (*models.WorkerProfile, error) {
	if p, ok := r.workers[userID]; ok {
		return p, nil
	}
	return nil, repositories.ErrProfileNotFound
}

func (r *fakeProfileRepo) UpdateWorkerProfile(db *gorm.DB, profile *models.WorkerProfile) error {
	r.workers[profile.UserID] = profile
	return nil
}

func (r *fakeProfileRepo) IncrementJobsCompleted(db *gorm.DB, userID string) error {
	p, ok := r.workers[userID]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	p.TotalJobsCompleted++
	return nil
}

func (r *fakeProfileRepo) UpdateWorkerRating(db *gorm.DB, userID string, average float64, count int) error {
	p, ok := r.workers[userID]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	p.AverageRating = average
	p.ReviewCount = count
	return nil
}

func (r *fakeProfileRepo) CreateHirerProfile(db *gorm.DB, profile *models.HirerProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	r.hirers[profile.UserID] = profile
	return nil
}

func (r *fakeProfileRepo) FindHirerByUserID(db *gorm.DB, userID string) (*models.HirerProfile, error) {
	if p, ok := r.hirers[userID]; ok {
		return p, nil
	}
	return nil, repositories.ErrProfileNotFound
}

func (r *fakeProfileRepo) UpdateHirerProfile(db *gorm.DB, profile *models.HirerProfile) error {
	r.hirers[profile.UserID] = profile
	return nil
}

func (r *fakeProfileRepo) UpdateHirerRating(db *gorm.DB, userID string, average float64, count int) error {
	p, ok := r.hirers[userID]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	p.AverageRating = average
	p.ReviewCount = count
	return nil
}

func (r *fakeProfileRepo) SearchWorkers(db *gorm.DB, criteria repositories.WorkerSearchCriteria) ([]models.WorkerProfile, int64, error) {
	var out []models.WorkerProfile
	for _, p := range r.workers {
		if criteria.City != "" && p.City != criteria.City {
			continue
		}
		if criteria.SkillCategory != "" && p.SkillCategory != criteria.SkillCategory {
			continue
		}
		if criteria.MaxHourlyRate != nil && p.HourlyRate > *criteria.MaxHourlyRate {
			continue
		}
		if criteria.OnlyAvailable && !p.IsAvailable {
			continue
		}
		if criteria.OnlyVisible && !p.IsSearchVisible() {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

type fakeReviewRepo struct {
	reviews map[string]*models.Review // keyed by shiftID + "/" + authorID
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*models.Review)}
}

func (r *fakeReviewRepo) Create(db *gorm.DB, review *models.Review) error {
	key := review.ShiftID + "/" + review.AuthorID
	if _, ok := r.reviews[key]; ok {
		return repositories.ErrDuplicateReview
	}
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	r.reviews[key] = review
	return nil
}

func (r *fakeReviewRepo) ExistsByShiftAndAuthor(db *gorm.DB, shiftID, authorID string) (bool, error) {
	_, ok := r.reviews[shiftID+"/"+authorID]
	return ok, nil
}

func (r *fakeReviewRepo) ListBySubject(db *gorm.DB, subjectID string) ([]models.Review, error) {
	var out []models.Review
	for _, rev := range r.reviews {
		if rev.SubjectID == subjectID {
			out = append(out, *rev)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) AverageForSubject(db *gorm.DB, subjectID string) (float64, int, error) {
	var sum, count int
	for _, rev := range r.reviews {
		if rev.SubjectID == subjectID {
			sum += rev.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

type fakeChatRepo struct {
	messages map[string]*models.ChatMessage // keyed by roomKey + "/" + clientMsgID
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{messages: make(map[string]*models.ChatMessage)}
}

func (r *fakeChatRepo) Create(db *gorm.DB, msg *models.ChatMessage) error {
	key := msg.RoomKey + "/" + msg.ClientMsgID
	if _, ok := r.messages[key]; ok {
		return repositories.ErrDuplicateMessage
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.SentAt.IsZero() {
		msg.SentAt = time.Now()
	}
	r.messages[key] = msg
	return nil
}

func (r *fakeChatRepo) FindByRoomAndClientID(db *gorm.DB, roomKey, clientMsgID string) (*models.ChatMessage, error) {
	if m, ok := r.messages[roomKey+"/"+clientMsgID]; ok {
		return m, nil
	}
	return nil, repositories.ErrDuplicateMessage
}

func (r *fakeChatRepo) ListByRoom(db *gorm.DB, roomKey string, limit int) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	for _, m := range r.messages {
		if m.RoomKey == roomKey {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SentAt.Before(out[j].SentAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeChatRepo) ListRoomsForUser(db *gorm.DB, userID string) ([]string, error) {
	seen := make(map[string]bool)
	var rooms []string
	for _, m := range r.messages {
		if (m.SenderID == userID || m.RecipientID == userID) && !seen[m.RoomKey] {
			seen[m.RoomKey] = true
			rooms = append(rooms, m.RoomKey)
		}
	}
	return rooms, nil
}

type fakeUploadRepo struct {
	uploads map[string]*models.Upload
}

func newFakeUploadRepo() *fakeUploadRepo {
	return &fakeUploadRepo{uploads: make(map[string]*models.Upload)}
}

func (r *fakeUploadRepo) Create(db *gorm.DB, upload *models.Upload) error {
	if upload.ID == "" {
		upload.ID = uuid.NewString()
	}
	r.uploads[upload.ID] = upload
	return nil
}

func (r *fakeUploadRepo) FindByID(db *gorm.DB, id string) (*models.Upload, error) {
	if u, ok := r.uploads[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUploadRepo) FindByPath(db *gorm.DB, path string) (*models.Upload, error) {
	for _, u := range r.uploads {
		if u.Path == path || u.ThumbnailPath == path {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUploadRepo) ListByUser(db *gorm.DB, userID string) ([]models.Upload, error) {
	var out []models.Upload
	for _, u := range r.uploads {
		if u.UserID == userID {
			out = append(out, *u)
		}
	}
	return out, nil
}

// fakeNotifier records sent notifications. Safe for the async sends the
// services fire from goroutines.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (n *fakeNotifier) record(kind string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, kind)
	return nil
}

func (n *fakeNotifier) SendVerificationApproved(to, name string) error {
	return n.record("verification_approved")
}

func (n *fakeNotifier) SendVerificationRejected(to, name, reason string) error {
	return n.record("verification_rejected")
}

func (n *fakeNotifier) SendApplicationAccepted(to, shiftTitle string) error {
	return n.record("application_accepted")
}

func (n *fakeNotifier) SendApplicationRejected(to, shiftTitle string) error {
	return n.record("application_rejected")
}
