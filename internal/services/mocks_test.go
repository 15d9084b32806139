package services

import (
	"context"
	"fmt"
	"io"

	"github.com/SAP-F-2025/student-admin-service/internal/models"
	"github.com/SAP-F-2025/student-admin-service/internal/repositories"
)

// ===== IN-MEMORY REPOSITORY MOCKS =====

type mockUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*models.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicateKey
		}
	}
	m.nextID++
	user.ID = m.nextID
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrRecordNotFound
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	clone := *u
	return &clone, nil
}

type mockStudentRepo struct {
	students map[uint]*models.Student
	nextID   uint
	getCalls int
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[uint]*models.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *models.Student) error {
	m.nextID++
	student.ID = m.nextID
	clone := *student
	m.students[student.ID] = &clone
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id uint) (*models.Student, error) {
	m.getCalls++
	s, ok := m.students[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	clone := *s
	return &clone, nil
}

func (m *mockStudentRepo) GetByCertificateID(_ context.Context, certificateID string) (*models.Student, error) {
	for _, s := range m.students {
		if s.CertificateID == certificateID {
			clone := *s
			return &clone, nil
		}
	}
	return nil, repositories.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context, filter repositories.StudentFilter) ([]models.Student, error) {
	var out []models.Student
	for _, s := range m.students {
		if filter.CourseEnrolled != "" && s.CourseEnrolled != filter.CourseEnrolled {
			continue
		}
		if filter.CompletionStatus != "" && s.CompletionStatus != filter.CompletionStatus {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockStudentRepo) Update(_ context.Context, student *models.Student) error {
	if _, ok := m.students[student.ID]; !ok {
		return repositories.ErrRecordNotFound
	}
	clone := *student
	m.students[student.ID] = &clone
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.students[id]; !ok {
		return repositories.ErrRecordNotFound
	}
	delete(m.students, id)
	return nil
}

type mockTutorRepo struct {
	tutors map[uint]*models.Tutor
	nextID uint
}

func newMockTutorRepo() *mockTutorRepo {
	return &mockTutorRepo{tutors: make(map[uint]*models.Tutor)}
}

func (m *mockTutorRepo) Create(_ context.Context, tutor *models.Tutor) error {
	m.nextID++
	tutor.ID = m.nextID
	clone := *tutor
	m.tutors[tutor.ID] = &clone
	return nil
}

func (m *mockTutorRepo) GetByID(_ context.Context, id uint) (*models.Tutor, error) {
	tu, ok := m.tutors[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	clone := *tu
	return &clone, nil
}

func (m *mockTutorRepo) List(_ context.Context, _, _ int) ([]models.Tutor, error) {
	var out []models.Tutor
	for _, tu := range m.tutors {
		out = append(out, *tu)
	}
	return out, nil
}

func (m *mockTutorRepo) Update(_ context.Context, tutor *models.Tutor) error {
	if _, ok := m.tutors[tutor.ID]; !ok {
		return repositories.ErrRecordNotFound
	}
	clone := *tutor
	m.tutors[tutor.ID] = &clone
	return nil
}

func (m *mockTutorRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.tutors[id]; !ok {
		return repositories.ErrRecordNotFound
	}
	delete(m.tutors, id)
	return nil
}

type mockDashboardRepo struct {
	total     int64
	completed int64
	byCourse  map[string]int64
	courses   []models.CourseCount
	monthly   []models.MonthlyEnrollment
}

func (m *mockDashboardRepo) CountStudents(_ context.Context) (int64, error) {
	return m.total, nil
}

func (m *mockDashboardRepo) CountByStatus(_ context.Context, status models.CompletionStatus) (int64, error) {
	if status == models.StatusCompleted {
		return m.completed, nil
	}
	return m.total - m.completed, nil
}

func (m *mockDashboardRepo) CountByCourse(_ context.Context, course string) (int64, error) {
	return m.byCourse[course], nil
}

func (m *mockDashboardRepo) CourseCounts(_ context.Context) ([]models.CourseCount, error) {
	return m.courses, nil
}

func (m *mockDashboardRepo) EnrollmentsByMonth(_ context.Context, _ int) ([]models.MonthlyEnrollment, error) {
	return m.monthly, nil
}

type mockRepository struct {
	user      *mockUserRepo
	student   *mockStudentRepo
	tutor     *mockTutorRepo
	dashboard *mockDashboardRepo
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		user:      newMockUserRepo(),
		student:   newMockStudentRepo(),
		tutor:     newMockTutorRepo(),
		dashboard: &mockDashboardRepo{byCourse: make(map[string]int64)},
	}
}

func (m *mockRepository) User() repositories.UserRepository           { return m.user }
func (m *mockRepository) Student() repositories.StudentRepository     { return m.student }
func (m *mockRepository) Tutor() repositories.TutorRepository         { return m.tutor }
func (m *mockRepository) Dashboard() repositories.DashboardRepository { return m.dashboard }
func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}
func (m *mockRepository) Ping(_ context.Context) error { return nil }
func (m *mockRepository) Close() error                 { return nil }

// ===== FILE STORE MOCK =====

type mockFileStore struct {
	saved map[string]string
	fail  bool
}

func newMockFileStore() *mockFileStore {
	return &mockFileStore{saved: make(map[string]string)}
}

func (m *mockFileStore) Save(_ context.Context, key string, r io.Reader) (string, error) {
	if m.fail {
		return "", fmt.Errorf("disk full")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.saved[key] = string(data)
	return "http://files.test/files/" + key, nil
}

func (m *mockFileStore) Delete(_ context.Context, key string) error {
	delete(m.saved, key)
	return nil
}
