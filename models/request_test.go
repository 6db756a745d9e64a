package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusLabelsAreTotal(t *testing.T) {
	want := map[TaskStatus]string{
		StatusPending:    "Pending",
		StatusInProgress: "In Progress",
		StatusCompleted:  "Completed",
		StatusCancelled:  "Cancelled",
	}
	assert.Len(t, AllStatuses, len(want))
	for _, s := range AllStatuses {
		assert.True(t, s.Valid())
		assert.Equal(t, want[s], s.Label())
	}
}

func TestTaskTypeLabelsAreTotal(t *testing.T) {
	want := map[TaskType]string{
		TaskTarpaulinDesign:    "Tarpaulin Design",
		TaskVideoEditing:       "Video Editing",
		TaskPosterLayout:       "Poster Layout",
		TaskSocialMediaContent: "Social Media Content",
		TaskOther:              "Other",
	}
	assert.Len(t, AllTaskTypes, len(want))
	for _, tt := range AllTaskTypes {
		assert.True(t, tt.Valid())
		assert.Equal(t, want[tt], tt.Label())
	}
}

func TestUnknownValuesAreInvalid(t *testing.T) {
	assert.False(t, TaskStatus("archived").Valid())
	assert.False(t, TaskType("animation").Valid())
	assert.False(t, Urgency("whenever").Valid())
}

func TestUrgencyLabels(t *testing.T) {
	assert.Equal(t, "Urgent", UrgencyUrgent.Label())
	assert.Equal(t, "Can Wait", UrgencyCanWait.Label())
}

func TestGenerateTaskCode(t *testing.T) {
	at := time.Date(2025, time.September, 1, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "MMR/20250901/000042", GenerateTaskCode(42, at))
}

func TestTaskCodesFitColumn(t *testing.T) {
	// task_code is varchar(30); strict-mode MySQL rejects anything
	// longer, so every generated form has to stay within it.
	at := time.Date(2262, time.April, 11, 23, 47, 16, 854775807, time.UTC)
	assert.LessOrEqual(t, len(ProvisionalTaskCode(at)), 30)
	assert.LessOrEqual(t, len(GenerateTaskCode(4294967295, at)), 30)
}
