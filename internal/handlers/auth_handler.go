package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/freeboard/internal/auth"
	"github.com/freeboard/internal/models"
	"github.com/freeboard/internal/services"
	"github.com/freeboard/pkg/utils"
)

// AuthHandler 封装了注册、登录、登出相关的 HTTP 处理逻辑
type AuthHandler struct {
	service       services.UserService
	authenticator *auth.Authenticator
}

// NewAuthHandler 创建一个新的 AuthHandler 实例
func NewAuthHandler(service services.UserService, authenticator *auth.Authenticator) *AuthHandler {
	return &AuthHandler{service: service, authenticator: authenticator}
}

// LoginResponse 登录成功后返回的 Token 和用户信息
type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	User      models.UserDto `json:"user"`
}

// Register godoc
// @Summary 注册新用户
// @Description 账号不存在时创建普通用户，账号已存在返回 409
// @Tags auth
// @Accept  json
// @Produce  json
// @Param user body models.UserForm true "账号和密码"
// @Success 201 {object} utils.SuccessResponse "注册成功"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 409 {object} utils.APIErrorResponse "账号已存在"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var form models.UserForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}

	created, err := h.service.Register(c.Request.Context(), form)
	if err != nil {
		respondServiceError(c, err, "注册失败")
		return
	}
	if !created {
		utils.RespondConflictError(c, "账号已存在")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, nil, "注册成功")
}

// Login godoc
// @Summary 用户登录
// @Description 验证账号密码，创建会话并返回 JWT
// @Tags auth
// @Accept  json
// @Produce  json
// @Param credentials body models.UserForm true "登录凭证"
// @Success 200 {object} utils.SuccessResponse{data=LoginResponse} "登录成功，返回 Token 和用户信息"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "账号或密码错误"
// @Failure 429 {object} utils.APIErrorResponse "请求过于频繁"
// @Failure 500 {object} utils.APIErrorResponse "无法生成Token"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var form models.UserForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}

	sess := h.authenticator.NewSession(uuid.NewString())
	identity, err := h.service.Login(c.Request.Context(), form, sess)
	if err != nil {
		respondServiceError(c, err, "登录失败")
		return
	}

	token, expiresAt, err := h.authenticator.IssueToken(sess, *identity)
	if err != nil {
		// 会话已经绑定，签发失败时清理掉
		_ = sess.Clear(c.Request.Context())
		respondServiceError(c, err, "无法生成Token")
		return
	}

	utils.RespondSuccess(c, http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      models.UserDto{AccountID: identity.AccountID, Role: identity.Role},
	}, "登录成功")
}

// Logout godoc
// @Summary 用户登出
// @Description 清除当前会话中的用户，未登录或重复登出同样返回成功
// @Tags auth
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} utils.SuccessResponse "成功登出"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), auth.CurrentSession(c)); err != nil {
		respondServiceError(c, err, "登出失败")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "成功登出")
}

// Me godoc
// @Summary 当前登录用户
// @Tags auth
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} utils.SuccessResponse{data=models.UserDto} "当前用户"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "用户未找到"
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	accountID, ok := auth.CurrentAccountID(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), accountID)
	if err != nil {
		respondServiceError(c, err, "获取用户失败")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, user, "")
}
