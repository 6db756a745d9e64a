package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bugemco/multimedia-request-hub/models"
	"github.com/bugemco/multimedia-request-hub/utils"
)

type EmployeeController struct {
	DB *gorm.DB
}

func NewEmployeeController(db *gorm.DB) *EmployeeController {
	return &EmployeeController{DB: db}
}

// GetAllEmployees lists every employee ordered by name.
func (ec *EmployeeController) GetAllEmployees(c *gin.Context) {
	var employees []models.Employee
	if err := ec.DB.Order("full_name asc").Find(&employees).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All employees", employees)
}

type employeeInput struct {
	EmployeeCode string
	FullName     string
	Branch       string
	Email        string
}

// findOrCreateEmployee looks an employee up by code and creates one on
// a miss. The read and the write are not atomic; the unique index on
// employee_code is what stops two racing submissions from both
// inserting, the loser surfaces the store error.
func findOrCreateEmployee(db *gorm.DB, input employeeInput) (models.Employee, error) {
	var employee models.Employee
	err := db.Where("employee_code = ?", input.EmployeeCode).First(&employee).Error
	if err == nil {
		return employee, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Employee{}, err
	}

	employee = models.Employee{
		EmployeeCode: input.EmployeeCode,
		FullName:     input.FullName,
		Branch:       input.Branch,
	}
	if input.Email != "" {
		email := input.Email
		employee.Email = &email
	}
	if err := db.Create(&employee).Error; err != nil {
		return models.Employee{}, err
	}

	utils.InfoLogger.Printf("New employee created: %s (%s)", employee.FullName, employee.EmployeeCode)
	return employee, nil
}
