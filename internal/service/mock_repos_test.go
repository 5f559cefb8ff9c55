package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/hy-hyun/prototype/internal/model"
	"github.com/hy-hyun/prototype/internal/repository"
	apperrors "github.com/hy-hyun/prototype/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = "user-" + user.StudentID
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByStudentID(_ context.Context, studentID string) (*model.User, error) {
	for _, u := range m.users {
		if u.StudentID == studentID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) DeductPoints(_ context.Context, id string, points int) error {
	u, ok := m.users[id]
	if !ok || u.Points < points {
		return gorm.ErrRecordNotFound
	}
	u.Points -= points
	return nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.Course
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) List(_ context.Context, filter repository.CourseFilter) ([]model.Course, int64, error) {
	var result []model.Course
	for _, c := range m.courses {
		if filter.Query != "" && !strings.Contains(c.Title, filter.Query) &&
			!strings.Contains(c.CourseID, filter.Query) && !strings.Contains(c.Instructor, filter.Query) {
			continue
		}
		if filter.Department != "" && c.Department != filter.Department {
			continue
		}
		if filter.Category != "" && c.Category != filter.Category {
			continue
		}
		if filter.Credits > 0 && c.Credits != filter.Credits {
			continue
		}
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CourseID != result[j].CourseID {
			return result[i].CourseID < result[j].CourseID
		}
		return result[i].ClassID < result[j].ClassID
	})
	return result, int64(len(result)), nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetByKey(_ context.Context, courseID, classID string) (*model.Course, error) {
	for _, c := range m.courses {
		if c.CourseID == courseID && c.ClassID == classID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetByIDs(_ context.Context, ids []string) ([]model.Course, error) {
	var result []model.Course
	for _, id := range ids {
		if c, ok := m.courses[id]; ok {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.ID == "" {
		course.ID = fmt.Sprintf("course-%s-%s", course.CourseID, course.ClassID)
	}
	m.courses[course.ID] = course
	return nil
}

func (m *mockCourseRepo) IncrementEnrolled(_ context.Context, id string, version int64) error {
	c, ok := m.courses[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if c.Version != version || c.IsFull() {
		return apperrors.ErrOptimisticLock
	}
	c.Enrolled++
	c.Version++
	return nil
}

func (m *mockCourseRepo) DecrementEnrolled(_ context.Context, id string) error {
	c, ok := m.courses[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if c.Enrolled > 0 {
		c.Enrolled--
		c.Version++
	}
	return nil
}

// ── Mock CartRepository ──

type mockCartRepo struct {
	nextID  uint64
	items   []*model.CartItem
	courses *mockCourseRepo // 模拟 Preload("Course.Meetings")
}

func newMockCartRepo(courses *mockCourseRepo) *mockCartRepo {
	return &mockCartRepo{nextID: 1, courses: courses}
}

func (m *mockCartRepo) withCourse(item *model.CartItem) *model.CartItem {
	cp := *item
	if c, ok := m.courses.courses[item.CourseRef]; ok {
		cc := *c
		cp.Course = &cc
	}
	return &cp
}

func (m *mockCartRepo) Add(_ context.Context, item *model.CartItem) error {
	item.ID = m.nextID
	m.nextID++
	cp := *item
	m.items = append(m.items, &cp)
	return nil
}

func (m *mockCartRepo) Remove(_ context.Context, userID, courseRef string) error {
	for i, it := range m.items {
		if it.UserID == userID && it.CourseRef == courseRef {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockCartRepo) Get(_ context.Context, userID, courseRef string) (*model.CartItem, error) {
	for _, it := range m.items {
		if it.UserID == userID && it.CourseRef == courseRef {
			return m.withCourse(it), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCartRepo) ListByUser(_ context.Context, userID string) ([]model.CartItem, error) {
	var result []model.CartItem
	for _, it := range m.items {
		if it.UserID == userID {
			result = append(result, *m.withCourse(it))
		}
	}
	return result, nil
}

func (m *mockCartRepo) UpdateBid(_ context.Context, userID, courseRef string, bidPoints int) error {
	for _, it := range m.items {
		if it.UserID == userID && it.CourseRef == courseRef {
			it.BidPoints = bidPoints
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock ApplicationRepository ──

type mockApplicationRepo struct {
	apps    map[string]*model.Application
	order   []string
	courses *mockCourseRepo
}

func newMockApplicationRepo(courses *mockCourseRepo) *mockApplicationRepo {
	return &mockApplicationRepo{apps: make(map[string]*model.Application), courses: courses}
}

func (m *mockApplicationRepo) withCourse(app *model.Application) *model.Application {
	cp := *app
	if c, ok := m.courses.courses[app.CourseRef]; ok {
		cc := *c
		cp.Course = &cc
	}
	return &cp
}

func (m *mockApplicationRepo) Create(_ context.Context, app *model.Application) error {
	if app.ID == "" {
		app.ID = fmt.Sprintf("app-%d", len(m.order)+1)
	}
	cp := *app
	m.apps[app.ID] = &cp
	m.order = append(m.order, app.ID)
	return nil
}

func (m *mockApplicationRepo) GetByID(_ context.Context, id string) (*model.Application, error) {
	if a, ok := m.apps[id]; ok {
		return m.withCourse(a), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApplicationRepo) GetByUserAndCourse(_ context.Context, userID, courseRef string) (*model.Application, error) {
	for _, a := range m.apps {
		if a.UserID == userID && a.CourseRef == courseRef {
			return m.withCourse(a), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApplicationRepo) ListActiveByUser(_ context.Context, userID string) ([]model.Application, error) {
	var result []model.Application
	for _, id := range m.order {
		a := m.apps[id]
		if a.UserID == userID && a.Active() {
			result = append(result, *m.withCourse(a))
		}
	}
	return result, nil
}

func (m *mockApplicationRepo) ListPendingByCourse(_ context.Context, courseRef string) ([]model.Application, error) {
	var result []model.Application
	for _, id := range m.order {
		a := m.apps[id]
		if a.CourseRef == courseRef && a.Status == model.AppStatusPending {
			result = append(result, *a)
		}
	}
	// 出价降序，同价保持申请顺序
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].BidPoints > result[j].BidPoints
	})
	return result, nil
}

func (m *mockApplicationRepo) UpdateStatus(_ context.Context, id, status string) error {
	a, ok := m.apps[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Status = status
	return nil
}

func (m *mockApplicationRepo) SumActiveCredits(_ context.Context, userID string) (int, error) {
	total := 0
	for _, a := range m.apps {
		if a.UserID == userID && a.Active() {
			if c, ok := m.courses.courses[a.CourseRef]; ok {
				total += c.Credits
			}
		}
	}
	return total, nil
}

// ── 测试装配 ──

func newTestRepos() (*repository.Repository, *mockCourseRepo, *mockUserRepo) {
	courses := newMockCourseRepo()
	users := newMockUserRepo()
	return &repository.Repository{
		User:        users,
		Course:      courses,
		Cart:        newMockCartRepo(courses),
		Application: newMockApplicationRepo(courses),
	}, courses, users
}
