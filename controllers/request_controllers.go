package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"regexp"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bugemco/multimedia-request-hub/models"
	"github.com/bugemco/multimedia-request-hub/services"
	"github.com/bugemco/multimedia-request-hub/utils"
)

var employeeCodePattern = regexp.MustCompile(`^\d{4}-\d{3}$`)

type RequestController struct {
	DB      *gorm.DB
	Storage *services.StorageService
	Mailer  *services.MailerService
}

func NewRequestController(db *gorm.DB, storage *services.StorageService, mailer *services.MailerService) *RequestController {
	return &RequestController{DB: db, Storage: storage, Mailer: mailer}
}

type submissionForm struct {
	EmployeeCode         string `form:"employee_id"`
	FullName             string `form:"full_name"`
	Branch               string `form:"branch"`
	Email                string `form:"email"`
	TaskType             string `form:"task_type"`
	TaskDescription      string `form:"task_description"`
	TargetCompletionDate string `form:"target_completion_date"`
	Urgency              string `form:"urgency"`
	Notes                string `form:"notes"`
}

// validate returns per-field messages for everything wrong with the
// submission. hasImage covers the conditional attachment rule.
func (f *submissionForm) validate(hasImage bool) map[string]string {
	fields := make(map[string]string)

	if f.EmployeeCode == "" {
		fields["employee_id"] = "Employee ID is required"
	} else if !employeeCodePattern.MatchString(f.EmployeeCode) {
		fields["employee_id"] = "Employee ID must be in format YYYY-NNN (e.g., 2025-322)"
	}

	// Length limits are in characters, so count runes: a name full of
	// accented letters is longer in bytes than in characters.
	if n := utf8.RuneCountInString(f.FullName); n < 2 || n > 100 {
		fields["full_name"] = "Full name must be 2-100 characters"
	}
	if n := utf8.RuneCountInString(f.Branch); n < 2 || n > 100 {
		fields["branch"] = "Branch is required (2-100 characters)"
	}

	if f.Email == "" {
		fields["email"] = "Email is required"
	} else if _, err := mail.ParseAddress(f.Email); err != nil {
		fields["email"] = "Invalid email"
	}

	taskType := models.TaskType(f.TaskType)
	if !taskType.Valid() {
		fields["task_type"] = "Unknown task type"
	}
	if n := utf8.RuneCountInString(f.TaskDescription); n < 10 || n > 1000 {
		fields["task_description"] = "Description must be 10-1000 characters"
	}
	if utf8.RuneCountInString(f.Notes) > 500 {
		fields["notes"] = "Notes must be at most 500 characters"
	}

	if !models.Urgency(f.Urgency).Valid() {
		fields["urgency"] = "Urgency must be urgent or can_wait"
	}

	if f.TargetCompletionDate == "" {
		fields["target_completion_date"] = "Target completion date is required"
	} else if deadline, err := time.ParseInLocation("2006-01-02", f.TargetCompletionDate, time.Local); err != nil {
		fields["target_completion_date"] = "Target completion date must be YYYY-MM-DD"
	} else {
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
		if deadline.Before(today) {
			fields["target_completion_date"] = "Target completion date cannot be in the past"
		}
	}

	if taskType == models.TaskSocialMediaContent && !hasImage {
		fields["facebook_post_image"] = "Facebook post image is required."
	}

	return fields
}

// CreateRequest handles the public submission form: validate, resolve
// the employee (find-or-create by code), store the attachment when the
// task type calls for one, then create the request.
func (rc *RequestController) CreateRequest(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("error processing form"))
		return
	}

	var form submissionForm
	if err := c.ShouldBind(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	imageFile, _ := c.FormFile("facebook_post_image")
	if fields := form.validate(imageFile != nil); len(fields) > 0 {
		utils.RespondValidationError(c, fields)
		return
	}

	employee, err := findOrCreateEmployee(rc.DB, employeeInput{
		EmployeeCode: form.EmployeeCode,
		FullName:     form.FullName,
		Branch:       form.Branch,
		Email:        form.Email,
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var imageURL *string
	if models.TaskType(form.TaskType) == models.TaskSocialMediaContent && imageFile != nil {
		url, err := rc.Storage.SaveFacebookPostImage(imageFile, employee.EmployeeCode)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		imageURL = &url
	}

	// The intake form folds urgency into the notes field.
	notes := fmt.Sprintf("Urgency: %s", models.Urgency(form.Urgency).Label())
	if form.Notes != "" {
		notes = notes + "\n" + form.Notes
	}

	now := time.Now()
	deadline, _ := time.ParseInLocation("2006-01-02", form.TargetCompletionDate, time.Local)

	request := models.Request{
		EmployeeID:           employee.ID,
		TaskType:             models.TaskType(form.TaskType),
		TaskDescription:      form.TaskDescription,
		DateRequested:        now,
		TargetCompletionDate: deadline,
		Status:               models.StatusPending,
		Notes:                &notes,
		FacebookPostImageURL: imageURL,
	}

	err = rc.DB.Transaction(func(tx *gorm.DB) error {
		// Task code derives from the row ID, so create first.
		request.TaskCode = models.ProvisionalTaskCode(now)
		if err := tx.Create(&request).Error; err != nil {
			return err
		}
		request.TaskCode = models.GenerateTaskCode(request.ID, now)
		return tx.Model(&request).Update("task_code", request.TaskCode).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	request.Employee = employee
	utils.InfoLogger.Printf("Request submitted: %s by %s", request.TaskCode, employee.EmployeeCode)
	utils.RespondJSON(c, http.StatusCreated, "Request submitted", request)
}

// GetAllRequests returns the filtered request list plus status counts.
// Filtering happens in memory over the full joined snapshot.
func (rc *RequestController) GetAllRequests(c *gin.Context) {
	period := services.Period(c.DefaultQuery("period", string(services.PeriodAll)))
	if !period.Valid() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid period"))
		return
	}
	status := c.DefaultQuery("status", services.StatusAll)
	if status != services.StatusAll && !models.TaskStatus(status).Valid() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid status"))
		return
	}
	query := c.Query("q")

	var requests []models.Request
	if err := rc.DB.Preload("Employee").Order("date_requested desc").Find(&requests).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	filtered := services.FilterRequests(requests, period, status, query, time.Now())
	utils.RespondJSON(c, http.StatusOK, "All requests", gin.H{
		"requests": filtered,
		"stats":    services.CountByStatus(filtered),
	})
}

// UpdateRequestStatus commits the new status, then notifies the
// requester. The notification runs after the commit and its failure
// never affects the stored status or the response.
func (rc *RequestController) UpdateRequestStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("request_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid request id"))
		return
	}

	type reqBody struct {
		Status string `json:"status" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	newStatus := models.TaskStatus(body.Status)
	if !newStatus.Valid() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid status"))
		return
	}

	var request models.Request
	if err := rc.DB.Preload("Employee").First(&request, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	request.Status = newStatus
	if err := rc.DB.Model(&request).Update("status", newStatus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	rc.notifyStatusChange(request)

	utils.InfoLogger.Printf("Request %s status updated to %s", request.TaskCode, newStatus)
	utils.RespondJSON(c, http.StatusOK, "Status updated", request)
}

// notifyStatusChange is the post-commit hook for a status update. It
// runs in its own goroutine with its own error channel (the log);
// nothing here can unwind the update that triggered it.
func (rc *RequestController) notifyStatusChange(request models.Request) {
	email := ""
	if request.Employee.Email != nil {
		email = *request.Employee.Email
	}
	payload := services.StatusUpdateEmail{
		TaskCode:      request.TaskCode,
		EmployeeEmail: email,
		EmployeeName:  request.Employee.FullName,
		Status:        request.Status,
		TaskType:      request.TaskType,
		Description:   request.TaskDescription,
		Deadline:      request.TargetCompletionDate,
	}

	go func() {
		if err := rc.Mailer.SendStatusUpdate(payload); err != nil {
			utils.ErrorLogger.Printf("Failed to send status notification for %s: %v", payload.TaskCode, err)
		}
	}()
}

// DeleteRequest permanently removes a request.
func (rc *RequestController) DeleteRequest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("request_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid request id"))
		return
	}

	result := rc.DB.Delete(&models.Request{}, id)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("request not found"))
		return
	}

	utils.InfoLogger.Printf("Request %d deleted", id)
	utils.RespondJSON(c, http.StatusOK, "Request deleted", gin.H{"request_id": id})
}
