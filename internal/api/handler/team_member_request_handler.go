package handler

import (
	"github.com/gin-gonic/gin"

	"pcs-crm/internal/api/middleware"
	"pcs-crm/internal/dto"
	"pcs-crm/internal/service"
	"pcs-crm/pkg/utils"
)

type TeamMemberRequestHandler struct {
	requestService service.TeamMemberRequestService
}

func NewTeamMemberRequestHandler(requestService service.TeamMemberRequestService) *TeamMemberRequestHandler {
	return &TeamMemberRequestHandler{
		requestService: requestService,
	}
}

// Create 提交成员申请
// @Summary 提交成员申请
// @Tags 成员申请
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.TeamMemberRequestCreate true "申请内容"
// @Success 200 {object} utils.Response{data=model.TeamMemberRequest}
// @Router /api/v1/team-member-request [post]
func (h *TeamMemberRequestHandler) Create(c *gin.Context) {
	var req dto.TeamMemberRequestCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	request, err := h.requestService.Create(middleware.CurrentUserID(c), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, request)
}

// List 申请列表
// @Summary 申请列表
// @Tags 成员申请
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param status query string false "Pending/Approved/Rejected"
// @Success 200 {object} utils.PageResponse{data=[]model.TeamMemberRequest}
// @Router /api/v1/team-member-requests [get]
func (h *TeamMemberRequestHandler) List(c *gin.Context) {
	var query dto.TeamMemberRequestListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BindError(c, err)
		return
	}

	requests, total, err := h.requestService.List(&query)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.PageSuccess(c, requests, total, query.GetPage(), query.GetPageSize())
}

// GetByID 申请详情
// @Summary 申请详情
// @Tags 成员申请
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "申请ID"
// @Success 200 {object} utils.Response{data=model.TeamMemberRequest}
// @Router /api/v1/team-member-request/{id} [get]
func (h *TeamMemberRequestHandler) GetByID(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.BindError(c, err)
		return
	}

	request, err := h.requestService.GetByID(param.ID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, request)
}

// UpdateStatus 审批
// @Summary 审批成员申请
// @Description 仅待审批的申请可处理，通过且关联项目时自动把成员加入项目
// @Tags 成员申请
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "申请ID"
// @Param request body dto.TeamMemberRequestReview true "审批结果"
// @Success 200 {object} utils.Response{data=model.TeamMemberRequest}
// @Router /api/v1/team-member-request/{id}/status [put]
func (h *TeamMemberRequestHandler) UpdateStatus(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.BindError(c, err)
		return
	}

	var req dto.TeamMemberRequestReview
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	request, err := h.requestService.UpdateStatus(param.ID, middleware.CurrentUserID(c), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, request)
}
