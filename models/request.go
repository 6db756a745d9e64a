package models

import (
	"fmt"
	"time"
)

// TaskStatus is the lifecycle state of a request. New requests always
// start at StatusPending; transitions happen only through the admin
// status endpoint.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

// TaskType is the kind of multimedia work being requested.
type TaskType string

const (
	TaskTarpaulinDesign    TaskType = "tarpaulin_design"
	TaskVideoEditing       TaskType = "video_editing"
	TaskPosterLayout       TaskType = "poster_layout"
	TaskSocialMediaContent TaskType = "social_media_content"
	TaskOther              TaskType = "other"
)

// Urgency is collected on the submission form and folded into the
// request notes, matching how the intake form stores it.
type Urgency string

const (
	UrgencyUrgent  Urgency = "urgent"
	UrgencyCanWait Urgency = "can_wait"
)

// AllStatuses lists every TaskStatus in display order.
var AllStatuses = []TaskStatus{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

// AllTaskTypes lists every TaskType in display order.
var AllTaskTypes = []TaskType{TaskTarpaulinDesign, TaskVideoEditing, TaskPosterLayout, TaskSocialMediaContent, TaskOther}

// Label returns the human-readable status name. The zero-value fallback
// is the raw string so an unknown value is still visible in output.
func (s TaskStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

// Valid reports whether s is one of the four known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Label returns the human-readable task type name.
func (t TaskType) Label() string {
	switch t {
	case TaskTarpaulinDesign:
		return "Tarpaulin Design"
	case TaskVideoEditing:
		return "Video Editing"
	case TaskPosterLayout:
		return "Poster Layout"
	case TaskSocialMediaContent:
		return "Social Media Content"
	case TaskOther:
		return "Other"
	}
	return string(t)
}

// Valid reports whether t is one of the known task types.
func (t TaskType) Valid() bool {
	switch t {
	case TaskTarpaulinDesign, TaskVideoEditing, TaskPosterLayout, TaskSocialMediaContent, TaskOther:
		return true
	}
	return false
}

// Label returns the urgency text folded into the notes field.
func (u Urgency) Label() string {
	if u == UrgencyUrgent {
		return "Urgent"
	}
	return "Can Wait"
}

// Valid reports whether u is a known urgency value.
func (u Urgency) Valid() bool {
	return u == UrgencyUrgent || u == UrgencyCanWait
}

// Request is a multimedia production request. Every read path joins the
// owning Employee; a request whose employee cannot be resolved is a
// data-integrity problem, not a valid state.
type Request struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	TaskCode             string     `gorm:"type:varchar(30);uniqueIndex;not null" json:"task_code"`
	EmployeeID           uint       `gorm:"not null;index" json:"employee_id"`
	Employee             Employee   `gorm:"foreignKey:EmployeeID" json:"employee"`
	TaskType             TaskType   `gorm:"type:varchar(30);not null" json:"task_type"`
	TaskDescription      string     `gorm:"type:text;not null" json:"task_description"`
	DateRequested        time.Time  `gorm:"not null" json:"date_requested"`
	TargetCompletionDate time.Time  `gorm:"not null" json:"target_completion_date"`
	Status               TaskStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Notes                *string    `gorm:"type:text" json:"notes,omitempty"`
	FacebookPostImageURL *string    `gorm:"type:varchar(500)" json:"facebook_post_image_url,omitempty"`
	CreatedAt            time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"not null" json:"updated_at"`
}

// GenerateTaskCode builds the human-readable task code from the row ID,
// e.g. MMR/20250901/000042.
func GenerateTaskCode(id uint, at time.Time) string {
	return fmt.Sprintf("MMR/%s/%06d", at.Format("20060102"), id)
}

// ProvisionalTaskCode is the unique stand-in written while the row ID
// is still unknown. Both it and the final code must fit the varchar(30)
// task_code column: MySQL runs in strict mode and rejects overlength
// inserts that sqlite lets through.
func ProvisionalTaskCode(at time.Time) string {
	return fmt.Sprintf("MMR/P/%d", at.UnixNano())
}
