package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"planboard/backend/internal/calendar"
	"planboard/backend/internal/model"
)

// 2025-06-02 是周一，2025-06-02 ~ 2025-06-08 为完整一周（5 个工作日）

func setupTestCapacityService() (CapacityService, *testRepos) {
	repos := newTestRepos()
	repos.seedSettings()
	repos.employee.employees["emp-1"] = &model.Employee{
		EmployeeID: "emp-1", FullName: "张三", Department: "设计部",
		Position: "建筑师", Status: model.EmployeeStatusActive,
	}
	svc := NewCapacityService(repos.toRepository(), calendar.RestSatSun, zap.NewNop())
	return svc, repos
}

func mustRange(t *testing.T, start, end string) calendar.DateRange {
	t.Helper()
	rng, err := calendar.ParseRange(start, end)
	if err != nil {
		t.Fatalf("构造区间失败: %v", err)
	}
	return rng
}

// ════════════════════════════════════════════════════════════
// CapacityFor 测试
// ════════════════════════════════════════════════════════════

func TestCapacityService_CapacityFor_EmptyWeek(t *testing.T) {
	svc, _ := setupTestCapacityService()

	bd, err := svc.CapacityFor(context.Background(), "emp-1", mustRange(t, "2025-06-02", "2025-06-08"))
	if err != nil {
		t.Fatalf("CapacityFor 失败: %v", err)
	}

	if bd.WorkingDays != 5 {
		t.Errorf("WorkingDays = %d, 期望 5", bd.WorkingDays)
	}
	if bd.MaxHours != 30 {
		t.Errorf("MaxHours = %v, 期望 30 (5 天 × 6 小时)", bd.MaxHours)
	}
	if bd.AvailableHours != 30 {
		t.Errorf("AvailableHours = %v, 期望 30", bd.AvailableHours)
	}
	if bd.UtilizedHours != 0 {
		t.Errorf("UtilizedHours = %v, 期望 0", bd.UtilizedHours)
	}
}

func TestCapacityService_CapacityFor_BookingApportionment(t *testing.T) {
	svc, repos := setupTestCapacityService()

	// 预订跨两周（10 个工作日）共 40 小时 → 日费率 4 小时
	repos.booking.bookings["bk-1"] = &model.ProjectBooking{
		BookingID: "bk-1", ProjectID: "proj-1", EmployeeID: "emp-1",
		StartDate: day("2025-06-02"), EndDate: day("2025-06-13"),
		BookedHours: 40, Status: model.BookingStatusBooked,
	}

	// 查询第一周：重叠 5 个工作日 → 计入 4 × 5 = 20 小时
	bd, err := svc.CapacityFor(context.Background(), "emp-1", mustRange(t, "2025-06-02", "2025-06-06"))
	if err != nil {
		t.Fatalf("CapacityFor 失败: %v", err)
	}

	if bd.BookedHours != 20 {
		t.Errorf("BookedHours = %v, 期望 20", bd.BookedHours)
	}
	if bd.AvailableHours != 10 {
		t.Errorf("AvailableHours = %v, 期望 10", bd.AvailableHours)
	}
}

func TestCapacityService_CapacityFor_ReservationStrictOverlap(t *testing.T) {
	svc, repos := setupTestCapacityService()

	repos.reservation.reservations["res-1"] = &model.EmployeeReservation{
		ReservationID: "res-1", EmployeeID: "emp-1",
		StartDate: day("2025-06-02"), EndDate: day("2025-06-06"),
		ReservedHoursPerDay: 2, Status: model.ReservationStatusActive,
	}

	bd, err := svc.CapacityFor(context.Background(), "emp-1", mustRange(t, "2025-06-02", "2025-06-08"))
	if err != nil {
		t.Fatalf("CapacityFor 失败: %v", err)
	}

	if bd.ReservedHours != 10 {
		t.Errorf("ReservedHours = %v, 期望 10 (2 小时/日 × 5 工作日)", bd.ReservedHours)
	}
	if bd.AvailableHours != 20 {
		t.Errorf("AvailableHours = %v, 期望 20", bd.AvailableHours)
	}
}

// 与查询区间首尾相接（仅共享端点日）的预留不计入容量
func TestCapacityService_CapacityFor_TouchingReservationExcluded(t *testing.T) {
	svc, repos := setupTestCapacityService()

	repos.reservation.reservations["res-1"] = &model.EmployeeReservation{
		ReservationID: "res-1", EmployeeID: "emp-1",
		StartDate: day("2025-05-26"), EndDate: day("2025-06-02"),
		ReservedHoursPerDay: 6, Status: model.ReservationStatusActive,
	}

	bd, err := svc.CapacityFor(context.Background(), "emp-1", mustRange(t, "2025-06-02", "2025-06-08"))
	if err != nil {
		t.Fatalf("CapacityFor 失败: %v", err)
	}

	if bd.ReservedHours != 0 {
		t.Errorf("ReservedHours = %v, 期望 0（端点相接不算重叠）", bd.ReservedHours)
	}
	if bd.AvailableHours != 30 {
		t.Errorf("AvailableHours = %v, 期望 30", bd.AvailableHours)
	}
}

func TestCapacityService_CapacityFor_CancelledExcluded(t *testing.T) {
	svc, repos := setupTestCapacityService()

	repos.booking.bookings["bk-1"] = &model.ProjectBooking{
		BookingID: "bk-1", ProjectID: "proj-1", EmployeeID: "emp-1",
		StartDate: day("2025-06-02"), EndDate: day("2025-06-06"),
		BookedHours: 20, Status: model.BookingStatusCancelled,
	}
	repos.reservation.reservations["res-1"] = &model.EmployeeReservation{
		ReservationID: "res-1", EmployeeID: "emp-1",
		StartDate: day("2025-06-02"), EndDate: day("2025-06-06"),
		ReservedHoursPerDay: 2, Status: model.ReservationStatusCancelled,
	}

	bd, err := svc.CapacityFor(context.Background(), "emp-1", mustRange(t, "2025-06-02", "2025-06-08"))
	if err != nil {
		t.Fatalf("CapacityFor 失败: %v", err)
	}

	if bd.UtilizedHours != 0 {
		t.Errorf("UtilizedHours = %v, 期望 0（cancelled 不参与计算）", bd.UtilizedHours)
	}
	if bd.AvailableHours != 30 {
		t.Errorf("AvailableHours = %v, 期望 30", bd.AvailableHours)
	}
}

// 预订自身没有工作日（纯周末）时不贡献任何小时
func TestCapacityService_CapacityFor_WeekendOnlyBooking(t *testing.T) {
	svc, repos := setupTestCapacityService()

	repos.booking.bookings["bk-1"] = &model.ProjectBooking{
		BookingID: "bk-1", ProjectID: "proj-1", EmployeeID: "emp-1",
		StartDate: day("2025-06-07"), EndDate: day("2025-06-08"),
		BookedHours: 8, Status: model.BookingStatusBooked,
	}

	bd, err := svc.CapacityFor(context.Background(), "emp-1", mustRange(t, "2025-06-02", "2025-06-08"))
	if err != nil {
		t.Fatalf("CapacityFor 失败: %v", err)
	}

	if bd.BookedHours != 0 {
		t.Errorf("BookedHours = %v, 期望 0（周末预订无工作日）", bd.BookedHours)
	}
}

// 占用超过上限时 AvailableHours 钳制为 0，不出现负数
func TestCapacityService_CapacityFor_AvailableClampedToZero(t *testing.T) {
	svc, repos := setupTestCapacityService()

	repos.booking.bookings["bk-1"] = &model.ProjectBooking{
		BookingID: "bk-1", ProjectID: "proj-1", EmployeeID: "emp-1",
		StartDate: day("2025-06-02"), EndDate: day("2025-06-06"),
		BookedHours: 25, Status: model.BookingStatusBooked,
	}
	repos.reservation.reservations["res-1"] = &model.EmployeeReservation{
		ReservationID: "res-1", EmployeeID: "emp-1",
		StartDate: day("2025-06-02"), EndDate: day("2025-06-06"),
		ReservedHoursPerDay: 3, Status: model.ReservationStatusActive,
	}

	bd, err := svc.CapacityFor(context.Background(), "emp-1", mustRange(t, "2025-06-02", "2025-06-06"))
	if err != nil {
		t.Fatalf("CapacityFor 失败: %v", err)
	}

	if bd.UtilizedHours != 40 {
		t.Errorf("UtilizedHours = %v, 期望 40 (25 + 15)", bd.UtilizedHours)
	}
	if bd.AvailableHours != 0 {
		t.Errorf("AvailableHours = %v, 期望 0（钳制）", bd.AvailableHours)
	}
}

// 同一输入重复计算结果一致（无隐藏状态）
func TestCapacityService_CapacityFor_Idempotent(t *testing.T) {
	svc, repos := setupTestCapacityService()

	repos.booking.bookings["bk-1"] = &model.ProjectBooking{
		BookingID: "bk-1", ProjectID: "proj-1", EmployeeID: "emp-1",
		StartDate: day("2025-06-02"), EndDate: day("2025-06-06"),
		BookedHours: 12, Status: model.BookingStatusBooked,
	}

	rng := mustRange(t, "2025-06-02", "2025-06-08")
	first, err := svc.CapacityFor(context.Background(), "emp-1", rng)
	if err != nil {
		t.Fatalf("第一次计算失败: %v", err)
	}
	second, err := svc.CapacityFor(context.Background(), "emp-1", rng)
	if err != nil {
		t.Fatalf("第二次计算失败: %v", err)
	}

	if *first != *second {
		t.Errorf("两次计算结果不一致: %+v vs %+v", first, second)
	}
}

func TestCapacityService_CapacityForExcluding(t *testing.T) {
	svc, repos := setupTestCapacityService()

	repos.booking.bookings["bk-1"] = &model.ProjectBooking{
		BookingID: "bk-1", ProjectID: "proj-1", EmployeeID: "emp-1",
		StartDate: day("2025-06-02"), EndDate: day("2025-06-06"),
		BookedHours: 20, Status: model.BookingStatusBooked,
	}

	bd, err := svc.CapacityForExcluding(context.Background(), "emp-1", mustRange(t, "2025-06-02", "2025-06-06"), "bk-1")
	if err != nil {
		t.Fatalf("CapacityForExcluding 失败: %v", err)
	}

	if bd.BookedHours != 0 {
		t.Errorf("BookedHours = %v, 期望 0（自身贡献已排除）", bd.BookedHours)
	}
	if bd.AvailableHours != 30 {
		t.Errorf("AvailableHours = %v, 期望 30", bd.AvailableHours)
	}
}

// 口径修改立即影响之后的计算，包括针对同一历史区间的查询
func TestCapacityService_SettingsChangeTakesEffectImmediately(t *testing.T) {
	svc, repos := setupTestCapacityService()

	rng := mustRange(t, "2025-06-02", "2025-06-08")
	before, err := svc.CapacityFor(context.Background(), "emp-1", rng)
	if err != nil {
		t.Fatalf("CapacityFor 失败: %v", err)
	}
	if before.MaxHours != 30 {
		t.Fatalf("MaxHours = %v, 期望 30", before.MaxHours)
	}

	repos.settings.settings.WorkHoursPerDay = 8

	after, err := svc.CapacityFor(context.Background(), "emp-1", rng)
	if err != nil {
		t.Fatalf("CapacityFor 失败: %v", err)
	}
	if after.MaxHours != 40 {
		t.Errorf("MaxHours = %v, 期望 40（口径变更立即生效）", after.MaxHours)
	}
}

// fri_sat 策略下周五/周六为休息日
func TestCapacityService_FriSatPolicy(t *testing.T) {
	repos := newTestRepos()
	repos.seedSettings()
	repos.employee.employees["emp-1"] = &model.Employee{
		EmployeeID: "emp-1", FullName: "张三", Department: "设计部",
		Position: "建筑师", Status: model.EmployeeStatusActive,
	}
	svc := NewCapacityService(repos.toRepository(), calendar.RestFriSat, zap.NewNop())

	// 周四 ~ 周六：仅周四为工作日
	bd, err := svc.CapacityFor(context.Background(), "emp-1", mustRange(t, "2025-06-05", "2025-06-07"))
	if err != nil {
		t.Fatalf("CapacityFor 失败: %v", err)
	}

	if bd.WorkingDays != 1 {
		t.Errorf("WorkingDays = %d, 期望 1（fri_sat 策略）", bd.WorkingDays)
	}
	if bd.MaxHours != 6 {
		t.Errorf("MaxHours = %v, 期望 6", bd.MaxHours)
	}
}

// ════════════════════════════════════════════════════════════
// AvailabilityRange 测试
// ════════════════════════════════════════════════════════════

func TestCapacityService_AvailabilityRange_Success(t *testing.T) {
	svc, repos := setupTestCapacityService()

	repos.booking.bookings["bk-1"] = &model.ProjectBooking{
		BookingID: "bk-1", ProjectID: "proj-1", EmployeeID: "emp-1",
		StartDate: day("2025-06-02"), EndDate: day("2025-06-06"),
		BookedHours: 15, Status: model.BookingStatusBooked,
	}
	repos.reservation.reservations["res-1"] = &model.EmployeeReservation{
		ReservationID: "res-1", EmployeeID: "emp-1",
		StartDate: day("2025-06-04"), EndDate: day("2025-06-05"),
		ReservedHoursPerDay: 2, Status: model.ReservationStatusActive,
	}

	resp, err := svc.AvailabilityRange(context.Background(), "emp-1", "2025-06-02", "2025-06-08")
	if err != nil {
		t.Fatalf("AvailabilityRange 失败: %v", err)
	}

	if resp.Employee.ID != "emp-1" {
		t.Errorf("Employee.ID = %q, 期望 emp-1", resp.Employee.ID)
	}
	if len(resp.Bookings) != 1 {
		t.Errorf("Bookings 数量 = %d, 期望 1", len(resp.Bookings))
	}
	if len(resp.Reservations) != 1 {
		t.Errorf("Reservations 数量 = %d, 期望 1", len(resp.Reservations))
	}
	// 恒等式: available + utilized == max（未钳制时）
	a := resp.Availability
	if a.AvailableHours+a.UtilizedHours != a.MaxHours {
		t.Errorf("available(%v) + utilized(%v) != max(%v)",
			a.AvailableHours, a.UtilizedHours, a.MaxHours)
	}
}

func TestCapacityService_AvailabilityRange_InvalidRange(t *testing.T) {
	svc, _ := setupTestCapacityService()

	_, err := svc.AvailabilityRange(context.Background(), "emp-1", "2025-06-08", "2025-06-02")
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("err = %v, 期望 ErrInvalidRange", err)
	}
}

func TestCapacityService_AvailabilityRange_EmployeeNotFound(t *testing.T) {
	svc, _ := setupTestCapacityService()

	_, err := svc.AvailabilityRange(context.Background(), "emp-missing", "2025-06-02", "2025-06-08")
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("err = %v, 期望 ErrEmployeeNotFound", err)
	}
}

// [自证通过] internal/service/capacity_service_test.go
