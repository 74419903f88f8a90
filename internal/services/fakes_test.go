package services

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"academy_backend/internal/models"
	"academy_backend/internal/paymentprovider"
	"academy_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// In-memory реализации репозиториев. db всегда nil и игнорируется.

type fakeTxManager struct{}

func (fakeTxManager) WithinTransaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return fn(db)
}

// rollbackTxManager восстанавливает платежи при ошибке, как откат транзакции в Postgres
type rollbackTxManager struct {
	payments *fakePaymentRepo
}

func (m rollbackTxManager) WithinTransaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	snapshot := m.payments.snapshot()
	if err := fn(db); err != nil {
		m.payments.restore(snapshot)
		return err
	}
	return nil
}

// ---------------- Users ----------------

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func cloneUser(u *models.User) *models.User {
	cp := *u
	cp.Subscriptions = slices.Clone(u.Subscriptions)
	cp.Courses = slices.Clone(u.Courses)
	return &cp
}

func (r *fakeUserRepo) Create(db *gorm.DB, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.Email = models.NormalizeEmail(user.Email)
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = models.UserRoleUser
	}
	if user.Subscriptions == nil {
		user.Subscriptions = pq.StringArray{}
	}
	if user.Courses == nil {
		user.Courses = pq.StringArray{}
	}
	user.CreatedAt = time.Now().UTC()
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *fakeUserRepo) FindByID(db *gorm.DB, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *fakeUserRepo) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email = models.NormalizeEmail(email)
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindAll(db *gorm.DB) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *cloneUser(u))
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateRole(db *gorm.DB, userID string, role models.UserRole) error {
	return r.mutate(userID, func(u *models.User) { u.Role = role })
}

func (r *fakeUserRepo) AddSubscription(db *gorm.DB, userID, programID string) error {
	return r.mutate(userID, func(u *models.User) {
		if !u.HasSubscription(programID) {
			u.Subscriptions = append(u.Subscriptions, programID)
		}
	})
}

func (r *fakeUserRepo) SetSubscriptions(db *gorm.DB, userID string, programIDs []string) error {
	return r.mutate(userID, func(u *models.User) { u.Subscriptions = models.UniqueIDs(programIDs) })
}

func (r *fakeUserRepo) AddCourse(db *gorm.DB, userID, courseID string) error {
	return r.mutate(userID, func(u *models.User) {
		if !u.HasCourse(courseID) {
			u.Courses = append(u.Courses, courseID)
		}
	})
}

func (r *fakeUserRepo) RemoveCourse(db *gorm.DB, userID, courseID string) error {
	return r.mutate(userID, func(u *models.User) {
		u.Courses = slices.DeleteFunc(u.Courses, func(id string) bool { return id == courseID })
	})
}

func (r *fakeUserRepo) SetCourses(db *gorm.DB, userID string, courseIDs []string) error {
	return r.mutate(userID, func(u *models.User) { u.Courses = models.UniqueIDs(courseIDs) })
}

func (r *fakeUserRepo) CountAll(db *gorm.DB) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) CountWithSubscriptions(db *gorm.DB) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if len(u.Subscriptions) > 0 {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) mutate(userID string, fn func(u *models.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	fn(u)
	return nil
}

// ---------------- Programs ----------------

type fakeProgramRepo struct {
	mu       sync.Mutex
	programs map[string]*models.Program
}

func newFakeProgramRepo(programs ...*models.Program) *fakeProgramRepo {
	r := &fakeProgramRepo{programs: map[string]*models.Program{}}
	for _, p := range programs {
		_ = r.Create(nil, p)
	}
	return r
}

func (r *fakeProgramRepo) Create(db *gorm.DB, program *models.Program) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if program.ID == "" {
		program.ID = uuid.NewString()
	}
	cp := *program
	r.programs[program.ID] = &cp
	return nil
}

func (r *fakeProgramRepo) FindByID(db *gorm.DB, id string) (*models.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.programs[id]
	if !ok {
		return nil, repositories.ErrProgramNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProgramRepo) FindByIDs(db *gorm.DB, ids []string) ([]models.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Program
	for _, id := range ids {
		if p, ok := r.programs[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProgramRepo) FindActive(db *gorm.DB) ([]models.Program, error) {
	all, _ := r.FindAll(db)
	out := slices.DeleteFunc(all, func(p models.Program) bool { return !p.IsActive })
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out, nil
}

func (r *fakeProgramRepo) FindAll(db *gorm.DB) ([]models.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Program, 0, len(r.programs))
	for _, p := range r.programs {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProgramRepo) Update(db *gorm.DB, program *models.Program) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.programs[program.ID]; !ok {
		return repositories.ErrProgramNotFound
	}
	cp := *program
	r.programs[program.ID] = &cp
	return nil
}

func (r *fakeProgramRepo) SetStripePriceID(db *gorm.DB, id, priceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.programs[id]
	if !ok {
		return repositories.ErrProgramNotFound
	}
	p.StripePriceID = &priceID
	return nil
}

func (r *fakeProgramRepo) Delete(db *gorm.DB, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.programs[id]; !ok {
		return repositories.ErrProgramNotFound
	}
	delete(r.programs, id)
	return nil
}

func (r *fakeProgramRepo) UpsertByName(db *gorm.DB, program *models.Program) error {
	r.mu.Lock()
	for _, p := range r.programs {
		if p.Name == program.Name {
			program.ID = p.ID
			break
		}
	}
	r.mu.Unlock()
	return r.Create(db, program)
}

// ---------------- Courses & lessons ----------------

type fakeCourseRepo struct {
	mu      sync.Mutex
	courses map[string]*models.Course
}

func newFakeCourseRepo(courses ...*models.Course) *fakeCourseRepo {
	r := &fakeCourseRepo{courses: map[string]*models.Course{}}
	for _, c := range courses {
		_ = r.Create(nil, c)
	}
	return r
}

func (r *fakeCourseRepo) Create(db *gorm.DB, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	cp := *course
	r.courses[course.ID] = &cp
	return nil
}

func (r *fakeCourseRepo) FindByID(db *gorm.DB, id string) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok {
		return nil, repositories.ErrCourseNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCourseRepo) FindByIDs(db *gorm.DB, ids []string) ([]models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Course
	for _, id := range ids {
		if c, ok := r.courses[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) FindActive(db *gorm.DB, programID string) ([]models.Course, error) {
	all, _ := r.FindAll(db)
	return slices.DeleteFunc(all, func(c models.Course) bool {
		return !c.IsActive || (programID != "" && c.ProgramID != programID)
	}), nil
}

func (r *fakeCourseRepo) FindAll(db *gorm.DB) ([]models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Course, 0, len(r.courses))
	for _, c := range r.courses {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *fakeCourseRepo) Update(db *gorm.DB, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.courses[course.ID]; !ok {
		return repositories.ErrCourseNotFound
	}
	cp := *course
	r.courses[course.ID] = &cp
	return nil
}

func (r *fakeCourseRepo) Delete(db *gorm.DB, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.courses[id]; !ok {
		return repositories.ErrCourseNotFound
	}
	delete(r.courses, id)
	return nil
}

type fakeLessonRepo struct {
	mu      sync.Mutex
	lessons map[string]*models.Lesson
}

func newFakeLessonRepo() *fakeLessonRepo {
	return &fakeLessonRepo{lessons: map[string]*models.Lesson{}}
}

func (r *fakeLessonRepo) Create(db *gorm.DB, lesson *models.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if lesson.ID == "" {
		lesson.ID = uuid.NewString()
	}
	cp := *lesson
	r.lessons[lesson.ID] = &cp
	return nil
}

func (r *fakeLessonRepo) FindByID(db *gorm.DB, id string) (*models.Lesson, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lessons[id]
	if !ok {
		return nil, repositories.ErrLessonNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLessonRepo) FindByCourse(db *gorm.DB, courseID string) ([]models.Lesson, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Lesson
	for _, l := range r.lessons {
		if l.CourseID == courseID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *fakeLessonRepo) CountByCourse(db *gorm.DB, courseID string) (int64, error) {
	lessons, _ := r.FindByCourse(db, courseID)
	return int64(len(lessons)), nil
}

func (r *fakeLessonRepo) CountByCourses(db *gorm.DB, courseIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(courseIDs))
	for _, id := range courseIDs {
		n, _ := r.CountByCourse(db, id)
		if n > 0 {
			out[id] = n
		}
	}
	return out, nil
}

func (r *fakeLessonRepo) Update(db *gorm.DB, lesson *models.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lessons[lesson.ID]; !ok {
		return repositories.ErrLessonNotFound
	}
	cp := *lesson
	r.lessons[lesson.ID] = &cp
	return nil
}

func (r *fakeLessonRepo) Reorder(db *gorm.DB, items []repositories.LessonOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		if l, ok := r.lessons[item.ID]; ok {
			l.Order = item.Order
		}
	}
	return nil
}

func (r *fakeLessonRepo) Delete(db *gorm.DB, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lessons[id]; !ok {
		return repositories.ErrLessonNotFound
	}
	delete(r.lessons, id)
	return nil
}

// ---------------- Shop ----------------

type fakeShopRepo struct {
	mu       sync.Mutex
	products map[string]*models.ShopProduct
}

func newFakeShopRepo(products ...*models.ShopProduct) *fakeShopRepo {
	r := &fakeShopRepo{products: map[string]*models.ShopProduct{}}
	for _, p := range products {
		_ = r.Create(nil, p)
	}
	return r
}

func (r *fakeShopRepo) Create(db *gorm.DB, product *models.ShopProduct) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *fakeShopRepo) FindByID(db *gorm.DB, id string) (*models.ShopProduct, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repositories.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeShopRepo) FindAvailable(db *gorm.DB, category string) ([]models.ShopProduct, error) {
	all, _ := r.FindAll(db)
	return slices.DeleteFunc(all, func(p models.ShopProduct) bool {
		return !p.IsAvailable || (category != "" && !strings.EqualFold(p.Category, category))
	}), nil
}

func (r *fakeShopRepo) FindAll(db *gorm.DB) ([]models.ShopProduct, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.ShopProduct, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeShopRepo) Update(db *gorm.DB, product *models.ShopProduct) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return repositories.ErrProductNotFound
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *fakeShopRepo) MarkSold(db *gorm.DB, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return repositories.ErrProductNotFound
	}
	p.IsAvailable = false
	return nil
}

func (r *fakeShopRepo) Delete(db *gorm.DB, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return repositories.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

// ---------------- Payments ----------------

type fakePaymentRepo struct {
	mu   sync.Mutex
	txns map[string]*models.PaymentTransaction
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{txns: map[string]*models.PaymentTransaction{}}
}

func (r *fakePaymentRepo) snapshot() map[string]models.PaymentTransaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]models.PaymentTransaction, len(r.txns))
	for k, t := range r.txns {
		out[k] = *t
	}
	return out
}

func (r *fakePaymentRepo) restore(snapshot map[string]models.PaymentTransaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txns = make(map[string]*models.PaymentTransaction, len(snapshot))
	for k, t := range snapshot {
		cp := t
		r.txns[k] = &cp
	}
}

func (r *fakePaymentRepo) Create(db *gorm.DB, txn *models.PaymentTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	if txn.PaymentStatus == "" {
		txn.PaymentStatus = models.PaymentStatusPending
	}
	txn.CreatedAt = time.Now().UTC()
	cp := *txn
	r.txns[txn.SessionID] = &cp
	return nil
}

func (r *fakePaymentRepo) FindBySessionID(db *gorm.DB, sessionID string) (*models.PaymentTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.txns[sessionID]
	if !ok {
		return nil, repositories.ErrTransactionNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakePaymentRepo) FindByUser(db *gorm.DB, userID string) ([]models.PaymentTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.PaymentTransaction
	for _, t := range r.txns {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakePaymentRepo) FindPending(db *gorm.DB, from, to time.Time, limit int) ([]models.PaymentTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.PaymentTransaction
	for _, t := range r.txns {
		if t.PaymentStatus == models.PaymentStatusPending && !t.CreatedAt.Before(from) && t.CreatedAt.Before(to) {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// MarkPaid - атомарный pending -> paid, как условный UPDATE в Postgres
func (r *fakePaymentRepo) MarkPaid(db *gorm.DB, sessionID string, paidAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.txns[sessionID]
	if !ok || t.PaymentStatus != models.PaymentStatusPending {
		return false, nil
	}
	t.PaymentStatus = models.PaymentStatusPaid
	t.PaidAt = &paidAt
	return true, nil
}

// ---------------- Analytics ----------------

type fakeAnalyticsRepo struct {
	mu     sync.Mutex
	events []models.AnalyticsEvent
}

func (r *fakeAnalyticsRepo) Create(db *gorm.DB, event *models.AnalyticsEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	r.events = append(r.events, *event)
	return nil
}

func (r *fakeAnalyticsRepo) CountByTypeSince(db *gorm.DB, eventType string, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, e := range r.events {
		if e.EventType == eventType && !e.Timestamp.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *fakeAnalyticsRepo) FindRecent(db *gorm.DB, limit int) ([]models.AnalyticsEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := slices.Clone(r.events)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ---------------- Modules ----------------

type fakeModuleRepo struct {
	mu      sync.Mutex
	modules map[string]*models.Module
	videos  map[string]*models.Video
}

func newFakeModuleRepo() *fakeModuleRepo {
	return &fakeModuleRepo{modules: map[string]*models.Module{}, videos: map[string]*models.Video{}}
}

func (r *fakeModuleRepo) Create(db *gorm.DB, module *models.Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if module.ID == "" {
		module.ID = uuid.NewString()
	}
	cp := *module
	r.modules[module.ID] = &cp
	return nil
}

func (r *fakeModuleRepo) FindByID(db *gorm.DB, id string) (*models.Module, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.modules[id]
	if !ok {
		return nil, repositories.ErrModuleNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeModuleRepo) FindAll(db *gorm.DB, courseID string) ([]models.Module, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Module
	for _, m := range r.modules {
		if courseID == "" || m.CourseID == courseID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *fakeModuleRepo) Update(db *gorm.DB, module *models.Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.modules[module.ID]; !ok {
		return repositories.ErrModuleNotFound
	}
	cp := *module
	r.modules[module.ID] = &cp
	return nil
}

func (r *fakeModuleRepo) Delete(db *gorm.DB, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.modules[id]; !ok {
		return repositories.ErrModuleNotFound
	}
	delete(r.modules, id)
	for vid, v := range r.videos {
		if v.ModuleID == id {
			delete(r.videos, vid)
		}
	}
	return nil
}

func (r *fakeModuleRepo) CreateVideo(db *gorm.DB, video *models.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if video.ID == "" {
		video.ID = uuid.NewString()
	}
	cp := *video
	r.videos[video.ID] = &cp
	return nil
}

func (r *fakeModuleRepo) FindVideoByID(db *gorm.DB, id string) (*models.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[id]
	if !ok {
		return nil, repositories.ErrVideoNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *fakeModuleRepo) FindVideosByModule(db *gorm.DB, moduleID string) ([]models.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Video
	for _, v := range r.videos {
		if v.ModuleID == moduleID {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *fakeModuleRepo) UpdateVideo(db *gorm.DB, video *models.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.videos[video.ID]; !ok {
		return repositories.ErrVideoNotFound
	}
	cp := *video
	r.videos[video.ID] = &cp
	return nil
}

func (r *fakeModuleRepo) DeleteVideo(db *gorm.DB, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.videos[id]; !ok {
		return repositories.ErrVideoNotFound
	}
	delete(r.videos, id)
	return nil
}

// ---------------- Provider ----------------

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) CreateCheckoutSession(ctx context.Context, req *paymentprovider.CheckoutRequest) (*paymentprovider.CheckoutSession, error) {
	args := m.Called(ctx, req)
	session, _ := args.Get(0).(*paymentprovider.CheckoutSession)
	return session, args.Error(1)
}

func (m *mockProvider) GetCheckoutSession(ctx context.Context, sessionID string) (*paymentprovider.SessionStatus, error) {
	args := m.Called(ctx, sessionID)
	status, _ := args.Get(0).(*paymentprovider.SessionStatus)
	return status, args.Error(1)
}

func (m *mockProvider) ParseWebhook(payload []byte, signature string) (*paymentprovider.WebhookEvent, error) {
	args := m.Called(payload, signature)
	event, _ := args.Get(0).(*paymentprovider.WebhookEvent)
	return event, args.Error(1)
}

func (m *mockProvider) CreateRecurringPrice(ctx context.Context, name, description string, amountMinor int64, currency string) (string, string, error) {
	args := m.Called(ctx, name, description, amountMinor, currency)
	return args.String(0), args.String(1), args.Error(2)
}

var (
	_ repositories.UserRepository      = (*fakeUserRepo)(nil)
	_ repositories.ProgramRepository   = (*fakeProgramRepo)(nil)
	_ repositories.CourseRepository    = (*fakeCourseRepo)(nil)
	_ repositories.LessonRepository    = (*fakeLessonRepo)(nil)
	_ repositories.ShopRepository      = (*fakeShopRepo)(nil)
	_ repositories.PaymentRepository   = (*fakePaymentRepo)(nil)
	_ repositories.TxManager           = fakeTxManager{}
	_ repositories.TxManager           = rollbackTxManager{}
	_ repositories.AnalyticsRepository = (*fakeAnalyticsRepo)(nil)
	_ repositories.ModuleRepository    = (*fakeModuleRepo)(nil)
	_ paymentprovider.Provider         = (*mockProvider)(nil)
)
