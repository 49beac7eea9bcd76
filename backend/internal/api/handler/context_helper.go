package handler

import "github.com/gin-gonic/gin"

// GetCallerID 从 Gin 上下文中提取 caller_id。
// 单口令模式下 caller_id 由登录方自报、可以为空；JWT 中间件注入后
// 这里只做类型安全的取值，不做强制校验。
func GetCallerID(c *gin.Context) string {
	v, exists := c.Get("caller_id")
	if !exists {
		return ""
	}
	s, _ := v.(string)
	return s
}
