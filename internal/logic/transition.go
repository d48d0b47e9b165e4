package logic

import (
	"github.com/blues/bts/internal/model"
)

// legalTransitions 任务分配状态的合法流转表。
// cancelled 由任务取消触达，所有非终态都可以进入；
// completed 和 cancelled 是终态，没有出边。
var legalTransitions = map[model.AssignmentStatus][]model.AssignmentStatus{
	model.AssignmentStatusAccepted: {
		model.AssignmentStatusSubmitted,
		model.AssignmentStatusCancelled,
	},
	model.AssignmentStatusSubmitted: {
		model.AssignmentStatusInReview,
		model.AssignmentStatusRejected,
		model.AssignmentStatusCancelled,
	},
	model.AssignmentStatusInReview: {
		model.AssignmentStatusCompleted,
		model.AssignmentStatusRejected,
		model.AssignmentStatusCancelled,
	},
	model.AssignmentStatusRejected: {
		model.AssignmentStatusSubmitted,
		model.AssignmentStatusCancelled,
	},
}

// CanTransition 状态流转是否在合法流转表内
func CanTransition(from, to model.AssignmentStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// checkTransition 校验状态流转，非法流转返回 InvalidTransitionError，
// 不修改任何已持久化状态
func checkTransition(from, to model.AssignmentStatus) error {
	if !CanTransition(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}
