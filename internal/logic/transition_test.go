package logic

import (
	"testing"

	"github.com/blues/bts/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allStatuses := []model.AssignmentStatus{
		model.AssignmentStatusAccepted,
		model.AssignmentStatusSubmitted,
		model.AssignmentStatusInReview,
		model.AssignmentStatusCompleted,
		model.AssignmentStatusRejected,
		model.AssignmentStatusCancelled,
	}

	legal := map[model.AssignmentStatus]map[model.AssignmentStatus]bool{
		model.AssignmentStatusAccepted: {
			model.AssignmentStatusSubmitted: true,
			model.AssignmentStatusCancelled: true,
		},
		model.AssignmentStatusSubmitted: {
			model.AssignmentStatusInReview:  true,
			model.AssignmentStatusRejected:  true,
			model.AssignmentStatusCancelled: true,
		},
		model.AssignmentStatusInReview: {
			model.AssignmentStatusCompleted: true,
			model.AssignmentStatusRejected:  true,
			model.AssignmentStatusCancelled: true,
		},
		model.AssignmentStatusRejected: {
			model.AssignmentStatusSubmitted: true,
			model.AssignmentStatusCancelled: true,
		},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := legal[from][to]
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatusesHaveNoOutgoingTransitions(t *testing.T) {
	targets := []model.AssignmentStatus{
		model.AssignmentStatusAccepted,
		model.AssignmentStatusSubmitted,
		model.AssignmentStatusInReview,
		model.AssignmentStatusCompleted,
		model.AssignmentStatusRejected,
		model.AssignmentStatusCancelled,
	}
	for _, terminal := range []model.AssignmentStatus{
		model.AssignmentStatusCompleted,
		model.AssignmentStatusCancelled,
	} {
		for _, to := range targets {
			assert.False(t, CanTransition(terminal, to), "%s -> %s", terminal, to)
		}
	}
}

func TestInvalidTransitionErrorMessage(t *testing.T) {
	err := &InvalidTransitionError{
		From: model.AssignmentStatusAccepted,
		To:   model.AssignmentStatusCompleted,
	}
	assert.Equal(t, "非法的状态流转: accepted -> completed", err.Error())
}
