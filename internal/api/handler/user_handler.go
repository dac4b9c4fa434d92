package handler

import (
	"github.com/gin-gonic/gin"

	"pcs-crm/internal/api/middleware"
	"pcs-crm/internal/dto"
	"pcs-crm/internal/service"
	"pcs-crm/pkg/utils"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// List 用户列表
// @Summary 用户列表
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param keyword query string false "姓名/邮箱/工号"
// @Param role query string false "角色"
// @Success 200 {object} utils.PageResponse{data=[]dto.UserResponse}
// @Router /api/v1/users [get]
func (h *UserHandler) List(c *gin.Context) {
	var query dto.UserListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BindError(c, err)
		return
	}

	users, total, err := h.userService.List(&query)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.PageSuccess(c, users, total, query.GetPage(), query.GetPageSize())
}

// ListEmployees 所有员工（用于分配成员下拉）
// @Summary 员工列表
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]dto.UserResponse}
// @Router /api/v1/users/employees [get]
func (h *UserHandler) ListEmployees(c *gin.Context) {
	users, err := h.userService.ListEmployees()
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, users)
}

// GetProfile 当前用户档案
// @Summary 个人档案
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=dto.UserResponse}
// @Router /api/v1/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.userService.GetProfile(middleware.CurrentUserID(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, profile)
}

// UpdateAvatar 更新头像
// @Summary 更新头像
// @Tags 用户
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.UpdateAvatarRequest true "头像URL"
// @Success 200 {object} utils.Response{data=dto.UserResponse}
// @Router /api/v1/profile/avatar [put]
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	var req dto.UpdateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	profile, err := h.userService.UpdateAvatar(middleware.CurrentUserID(c), req.Avatar)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, profile)
}

// AddSkill 添加技能
// @Summary 添加技能
// @Tags 用户
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.SkillRequest true "技能"
// @Success 200 {object} utils.Response{data=dto.UserResponse}
// @Router /api/v1/profile/skills [post]
func (h *UserHandler) AddSkill(c *gin.Context) {
	var req dto.SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	profile, err := h.userService.AddSkill(middleware.CurrentUserID(c), req.Skill)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, profile)
}

// RemoveSkill 删除技能
// @Summary 删除技能
// @Tags 用户
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.SkillRequest true "技能"
// @Success 200 {object} utils.Response{data=dto.UserResponse}
// @Router /api/v1/profile/skills [delete]
func (h *UserHandler) RemoveSkill(c *gin.Context) {
	var req dto.SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	profile, err := h.userService.RemoveSkill(middleware.CurrentUserID(c), req.Skill)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, profile)
}
