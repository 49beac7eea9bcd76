package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"planboard/backend/internal/model"
	"planboard/backend/internal/repository"
)

// ── 测试辅助 ──

// day 解析 YYYY-MM-DD（仅测试用，格式错误直接 panic）
func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

// testRepos 聚合所有 mock repo 便于 seed 数据
type testRepos struct {
	employee    *mockEmployeeRepo
	project     *mockProjectRepo
	booking     *mockBookingRepo
	reservation *mockReservationRepo
	schedule    *mockScheduleRepo
	settings    *mockSettingsRepo
	audit       *mockAuditRepo
}

func newTestRepos() *testRepos {
	return &testRepos{
		employee:    newMockEmployeeRepo(),
		project:     newMockProjectRepo(),
		booking:     newMockBookingRepo(),
		reservation: newMockReservationRepo(),
		schedule:    newMockScheduleRepo(),
		settings:    newMockSettingsRepo(),
		audit:       newMockAuditRepo(),
	}
}

func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		Employee:    r.employee,
		Project:     r.project,
		Booking:     r.booking,
		Reservation: r.reservation,
		Schedule:    r.schedule,
		Settings:    r.settings,
		Audit:       r.audit,
	}
}

// seedSettings 默认口径：每日 6 小时 × 每月 20 工作日 × 12 个月
func (r *testRepos) seedSettings() {
	r.settings.settings = &model.CapacitySettings{
		SettingsID:       "settings-1",
		WorkHoursPerDay:  6,
		WorkDaysPerMonth: 20,
		MonthsInYear:     12,
	}
}

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees map[string]*model.Employee
	seq       int
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[string]*model.Employee)}
}

func (m *mockEmployeeRepo) Create(_ context.Context, emp *model.Employee) error {
	if emp.EmployeeID == "" {
		m.seq++
		emp.EmployeeID = fmt.Sprintf("emp-%d", m.seq)
	}
	m.employees[emp.EmployeeID] = emp
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id string) (*model.Employee, error) {
	if emp, ok := m.employees[id]; ok {
		return emp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) List(_ context.Context, f repository.EmployeeFilter) ([]model.Employee, int64, error) {
	var result []model.Employee
	for _, emp := range m.employees {
		if f.Department != "" && emp.Department != f.Department {
			continue
		}
		if f.Status != "" && emp.Status != f.Status {
			continue
		}
		result = append(result, *emp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FullName < result[j].FullName })
	return result, int64(len(result)), nil
}

func (m *mockEmployeeRepo) ListActive(_ context.Context, department string) ([]model.Employee, error) {
	var result []model.Employee
	for _, emp := range m.employees {
		if emp.Status != model.EmployeeStatusActive {
			continue
		}
		if department != "" && emp.Department != department {
			continue
		}
		result = append(result, *emp)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Department != result[j].Department {
			return result[i].Department < result[j].Department
		}
		return result[i].FullName < result[j].FullName
	})
	return result, nil
}

func (m *mockEmployeeRepo) Update(_ context.Context, emp *model.Employee) error {
	m.employees[emp.EmployeeID] = emp
	return nil
}

func (m *mockEmployeeRepo) Delete(_ context.Context, id string) error {
	delete(m.employees, id)
	return nil
}

// ── Mock ProjectRepository ──

type mockProjectRepo struct {
	projects map[string]*model.Project
	seq      int
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{projects: make(map[string]*model.Project)}
}

func (m *mockProjectRepo) Create(_ context.Context, p *model.Project) error {
	if p.ProjectID == "" {
		m.seq++
		p.ProjectID = fmt.Sprintf("proj-%d", m.seq)
	}
	m.projects[p.ProjectID] = p
	return nil
}

func (m *mockProjectRepo) GetByID(_ context.Context, id string) (*model.Project, error) {
	if p, ok := m.projects[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) GetByCode(_ context.Context, code string) (*model.Project, error) {
	for _, p := range m.projects {
		if p.ProjectCode == code {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) List(_ context.Context, f repository.ProjectFilter) ([]model.Project, int64, error) {
	var result []model.Project
	for _, p := range m.projects {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.ArchitectID != "" && p.ArchitectID != f.ArchitectID {
			continue
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ProjectCode < result[j].ProjectCode })
	return result, int64(len(result)), nil
}

func (m *mockProjectRepo) ListAll(_ context.Context) ([]model.Project, error) {
	var result []model.Project
	for _, p := range m.projects {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ProjectCode < result[j].ProjectCode })
	return result, nil
}

func (m *mockProjectRepo) Update(_ context.Context, p *model.Project) error {
	m.projects[p.ProjectID] = p
	return nil
}

func (m *mockProjectRepo) Delete(_ context.Context, id string) error {
	delete(m.projects, id)
	return nil
}

// ── Mock BookingRepository ──
//
// 重叠谓词与 SQL 实现保持一致：闭区间 start_date <= end AND end_date >= start，
// cancelled 一律排除。

type mockBookingRepo struct {
	bookings map[string]*model.ProjectBooking
	seq      int
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{bookings: make(map[string]*model.ProjectBooking)}
}

func (m *mockBookingRepo) Create(_ context.Context, b *model.ProjectBooking) error {
	if b.BookingID == "" {
		m.seq++
		b.BookingID = fmt.Sprintf("bk-%d", m.seq)
	}
	m.bookings[b.BookingID] = b
	return nil
}

func (m *mockBookingRepo) GetByID(_ context.Context, id string) (*model.ProjectBooking, error) {
	if b, ok := m.bookings[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookingRepo) ListByProject(_ context.Context, projectID string) ([]model.ProjectBooking, error) {
	var result []model.ProjectBooking
	for _, b := range m.bookings {
		if b.ProjectID == projectID {
			result = append(result, *b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.After(result[j].StartDate) })
	return result, nil
}

func (m *mockBookingRepo) ListOverlapping(_ context.Context, employeeID string, start, end time.Time) ([]model.ProjectBooking, error) {
	var result []model.ProjectBooking
	for _, b := range m.bookings {
		if b.EmployeeID != employeeID || b.Status == model.BookingStatusCancelled {
			continue
		}
		if !b.StartDate.After(end) && !b.EndDate.Before(start) {
			result = append(result, *b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result, nil
}

func (m *mockBookingRepo) ListProjectOverlapping(_ context.Context, employeeID, projectID string, start, end time.Time, excludeID string) ([]model.ProjectBooking, error) {
	var result []model.ProjectBooking
	for _, b := range m.bookings {
		if b.EmployeeID != employeeID || b.ProjectID != projectID || b.Status == model.BookingStatusCancelled {
			continue
		}
		if excludeID != "" && b.BookingID == excludeID {
			continue
		}
		if !b.StartDate.After(end) && !b.EndDate.Before(start) {
			result = append(result, *b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result, nil
}

func (m *mockBookingRepo) OverviewInRange(ctx context.Context, employeeID string, start, end time.Time) (*repository.BookingOverview, error) {
	bookings, _ := m.ListOverlapping(ctx, employeeID, start, end)
	overview := &repository.BookingOverview{}
	for _, b := range bookings {
		overview.BookingCount++
		overview.TotalHours += b.BookedHours
	}
	return overview, nil
}

func (m *mockBookingRepo) ListOverlappingForEmployees(ctx context.Context, employeeIDs []string, start, end time.Time) ([]model.ProjectBooking, error) {
	var result []model.ProjectBooking
	for _, id := range employeeIDs {
		bookings, _ := m.ListOverlapping(ctx, id, start, end)
		result = append(result, bookings...)
	}
	return result, nil
}

func (m *mockBookingRepo) Update(_ context.Context, b *model.ProjectBooking) error {
	m.bookings[b.BookingID] = b
	return nil
}

func (m *mockBookingRepo) Delete(_ context.Context, id string) error {
	delete(m.bookings, id)
	return nil
}

// ── Mock ReservationRepository ──
//
// 容量读取用严格重叠 start_date < end AND end_date > start，
// 创建校验用闭区间重叠，与 SQL 实现一一对应。

type mockReservationRepo struct {
	reservations map[string]*model.EmployeeReservation
	seq          int
}

func newMockReservationRepo() *mockReservationRepo {
	return &mockReservationRepo{reservations: make(map[string]*model.EmployeeReservation)}
}

func (m *mockReservationRepo) Create(_ context.Context, res *model.EmployeeReservation) error {
	if res.ReservationID == "" {
		m.seq++
		res.ReservationID = fmt.Sprintf("res-%d", m.seq)
	}
	m.reservations[res.ReservationID] = res
	return nil
}

func (m *mockReservationRepo) GetByID(_ context.Context, id string) (*model.EmployeeReservation, error) {
	if res, ok := m.reservations[id]; ok {
		return res, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReservationRepo) ListByEmployee(_ context.Context, employeeID string, includeCancelled bool) ([]model.EmployeeReservation, error) {
	var result []model.EmployeeReservation
	for _, res := range m.reservations {
		if res.EmployeeID != employeeID {
			continue
		}
		if !includeCancelled && res.Status != model.ReservationStatusActive {
			continue
		}
		result = append(result, *res)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.After(result[j].StartDate) })
	return result, nil
}

func (m *mockReservationRepo) ListActiveOverlappingStrict(_ context.Context, employeeID string, start, end time.Time) ([]model.EmployeeReservation, error) {
	var result []model.EmployeeReservation
	for _, res := range m.reservations {
		if res.EmployeeID != employeeID || res.Status != model.ReservationStatusActive {
			continue
		}
		if res.StartDate.Before(end) && res.EndDate.After(start) {
			result = append(result, *res)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result, nil
}

func (m *mockReservationRepo) ListActiveOverlappingInclusive(_ context.Context, employeeID string, start, end time.Time, excludeID string) ([]model.EmployeeReservation, error) {
	var result []model.EmployeeReservation
	for _, res := range m.reservations {
		if res.EmployeeID != employeeID || res.Status != model.ReservationStatusActive {
			continue
		}
		if excludeID != "" && res.ReservationID == excludeID {
			continue
		}
		if !res.StartDate.After(end) && !res.EndDate.Before(start) {
			result = append(result, *res)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result, nil
}

func (m *mockReservationRepo) ListActiveOverlappingForEmployees(ctx context.Context, employeeIDs []string, start, end time.Time) ([]model.EmployeeReservation, error) {
	var result []model.EmployeeReservation
	for _, id := range employeeIDs {
		reservations, _ := m.ListActiveOverlappingInclusive(ctx, id, start, end, "")
		result = append(result, reservations...)
	}
	return result, nil
}

func (m *mockReservationRepo) Update(_ context.Context, res *model.EmployeeReservation) error {
	m.reservations[res.ReservationID] = res
	return nil
}

func (m *mockReservationRepo) Delete(_ context.Context, id string) error {
	delete(m.reservations, id)
	return nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	records []model.MonthlyScheduleRecord
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{}
}

func (m *mockScheduleRepo) ListByEmployeeYear(_ context.Context, employeeID string, year int) ([]model.MonthlyScheduleRecord, error) {
	var result []model.MonthlyScheduleRecord
	for _, rec := range m.records {
		if rec.EmployeeID == employeeID && rec.Year == year {
			result = append(result, rec)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result, nil
}

func (m *mockScheduleRepo) ListByEmployeesYear(_ context.Context, employeeIDs []string, year int) ([]model.MonthlyScheduleRecord, error) {
	ids := make(map[string]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		ids[id] = true
	}
	var result []model.MonthlyScheduleRecord
	for _, rec := range m.records {
		if ids[rec.EmployeeID] && rec.Year == year {
			result = append(result, rec)
		}
	}
	return result, nil
}

// ── Mock SettingsRepository ──

type mockSettingsRepo struct {
	settings *model.CapacitySettings
}

func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{}
}

func (m *mockSettingsRepo) Get(_ context.Context) (*model.CapacitySettings, error) {
	if m.settings == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.settings, nil
}

func (m *mockSettingsRepo) Update(_ context.Context, s *model.CapacitySettings) error {
	m.settings = s
	return nil
}

// ── Mock AuditRepository ──

type mockAuditRepo struct {
	entries   []*model.AuditLog
	createErr error
}

func newMockAuditRepo() *mockAuditRepo {
	return &mockAuditRepo{}
}

func (m *mockAuditRepo) Create(_ context.Context, entry *model.AuditLog) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

// [自证通过] internal/service/mock_repos_test.go
