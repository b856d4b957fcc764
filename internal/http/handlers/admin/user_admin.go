package admin

import (
	"strings"

	"github.com/kasuwa-shop/internal/authz"
	handlershared "github.com/kasuwa-shop/internal/http/handlers/shared"
	"github.com/kasuwa-shop/internal/http/response"
	"github.com/kasuwa-shop/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

// UpdateUserStaffRequest 员工标记请求
type UpdateUserStaffRequest struct {
	IsStaff *bool `json:"is_staff" binding:"required"`
}

// UpdateUserStatusRequest 用户状态请求
type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active disabled"`
}

// SetUserRolesRequest 员工角色覆盖请求
type SetUserRolesRequest struct {
	Roles []string `json:"roles"`
}

// ListUsers 用户列表
func (h *Handler) ListUsers(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	filter := repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Status:   strings.TrimSpace(c.Query("status")),
	}
	if raw := strings.TrimSpace(c.Query("is_staff")); raw != "" {
		isStaff, err := cast.ToBoolE(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		filter.IsStaff = &isStaff
	}
	users, total, err := h.UserAdminService.ListUsers(filter)
	if err != nil {
		respondWithMappedError(c, err, userErrorRules, "error.query_failed")
		return
	}
	response.SuccessWithPage(c, users, response.BuildPagination(page, pageSize, total))
}

// GetUser 用户详情（附带角色）
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	user, err := h.UserAdminService.GetUser(id)
	if err != nil {
		respondWithMappedError(c, err, userErrorRules, "error.query_failed")
		return
	}
	roles, err := h.AuthzService.GetUserRoles(user.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.query_failed", err)
		return
	}
	response.Success(c, gin.H{
		"user":  user,
		"roles": roles,
	})
}

// UpdateUserStaff 设置员工标记
func (h *Handler) UpdateUserStaff(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	var req UpdateUserStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	user, err := h.UserAdminService.SetStaff(id, *req.IsStaff)
	if err != nil {
		respondWithMappedError(c, err, userErrorRules, "error.save_failed")
		return
	}
	response.Success(c, user)
}

// UpdateUserStatus 启用或禁用用户
func (h *Handler) UpdateUserStatus(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	staffID, ok := getStaffID(c)
	if !ok {
		return
	}
	var req UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if id == staffID {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	user, err := h.UserAdminService.SetStatus(id, req.Status)
	if err != nil {
		respondWithMappedError(c, err, userErrorRules, "error.save_failed")
		return
	}
	requestLog(c).Infow("admin_user_status_updated", "user_id", user.ID, "status", user.Status, "staff_id", staffID)
	response.Success(c, user)
}

// GetUserRoles 查询员工角色
func (h *Handler) GetUserRoles(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	if _, err := h.UserAdminService.GetUser(id); err != nil {
		respondWithMappedError(c, err, userErrorRules, "error.query_failed")
		return
	}
	roles, err := h.AuthzService.GetUserRoles(id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.query_failed", err)
		return
	}
	response.Success(c, gin.H{"user_id": id, "roles": roles})
}

// SetUserRoles 覆盖设置员工角色
func (h *Handler) SetUserRoles(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	var req SetUserRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if _, err := h.UserAdminService.GetUser(id); err != nil {
		respondWithMappedError(c, err, userErrorRules, "error.query_failed")
		return
	}
	if err := h.AuthzService.SetUserRoles(id, req.Roles); err != nil {
		respondWithMappedError(c, err, userErrorRules, "error.save_failed")
		return
	}
	roles, err := h.AuthzService.GetUserRoles(id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.query_failed", err)
		return
	}
	requestLog(c).Infow("admin_user_roles_updated", "user_id", id, "roles", roles)
	response.Success(c, gin.H{"user_id": id, "roles": roles})
}

// ListRoles 可分配角色列表
func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.query_failed", err)
		return
	}
	response.Success(c, roles)
}

// GetRolePolicies 角色策略
func (h *Handler) GetRolePolicies(c *gin.Context) {
	role := strings.TrimSpace(c.Param("role"))
	exists, err := h.AuthzService.HasRole(role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.role_invalid", nil)
		return
	}
	if !exists {
		respondError(c, response.CodeNotFound, "error.role_invalid", nil)
		return
	}
	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondError(c, response.CodeInternal, "error.query_failed", err)
		return
	}
	response.Success(c, gin.H{"role": authz.DisplayRole(role), "policies": policies})
}
