package constants

import "github.com/samber/lo"

// RequestStatus 团队成员申请状态，只允许 Pending -> Approved / Rejected
const (
	RequestStatusPending  = "Pending"
	RequestStatusApproved = "Approved"
	RequestStatusRejected = "Rejected"
)

var RequestStatuses = []string{
	RequestStatusPending,
	RequestStatusApproved,
	RequestStatusRejected,
}

func IsRequestStatus(s string) bool {
	return lo.Contains(RequestStatuses, s)
}
