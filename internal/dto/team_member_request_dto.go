package dto

// TeamMemberRequestCreate 创建成员申请
type TeamMemberRequestCreate struct {
	ProjectID       *int64  `json:"project_id" binding:"omitempty,min=1"`
	ProjectTitle    string  `json:"project_title" binding:"required,max=200"`
	MemberType      string  `json:"member_type" binding:"required,max=100"`
	Reason          string  `json:"reason" binding:"required"`
	SelectedMembers []int64 `json:"selected_members" binding:"required,min=1,dive,min=1"`
}

// TeamMemberRequestListQuery 申请列表查询
type TeamMemberRequestListQuery struct {
	PageQuery
	Status string `form:"status" binding:"omitempty,request_status"`
}

// TeamMemberRequestReview 审批
type TeamMemberRequestReview struct {
	Status  string  `json:"status" binding:"required,oneof=Approved Rejected"`
	Comment *string `json:"comment" binding:"omitempty,max=500"`
}
