package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"dormdesk/backend/pkg/response"
)

// MustGetAccountID 从 Gin 上下文中安全提取 account_id。
// 如果 JWT 中间件未正确注入 account_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetAccountID(c *gin.Context) (string, bool) {
	v, exists := c.Get("account_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetTokenMeta 从 Gin 上下文中安全提取 token_jti 与 token_exp（登出用）。
func MustGetTokenMeta(c *gin.Context) (jti string, exp time.Time, ok bool) {
	v, exists := c.Get("token_jti")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", time.Time{}, false
	}
	jti, jok := v.(string)
	if !jok || jti == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", time.Time{}, false
	}

	e, exists := c.Get("token_exp")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", time.Time{}, false
	}
	exp, eok := e.(time.Time)
	if !eok {
		response.Unauthorized(c, 10002, "未认证")
		return "", time.Time{}, false
	}

	return jti, exp, true
}
