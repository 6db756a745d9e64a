package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bugemco/multimedia-request-hub/models"
	"github.com/bugemco/multimedia-request-hub/services"
	"github.com/bugemco/multimedia-request-hub/utils"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportReport streams the period-bounded xlsx report. The export
// always enforces the period window; there is no all-time export.
// An empty window refuses with a warning instead of an empty file.
func (rpc *ReportController) ExportReport(c *gin.Context) {
	period := services.Period(c.Query("period"))
	switch period {
	case services.PeriodWeekly, services.PeriodMonthly, services.PeriodYearly:
	default:
		utils.RespondError(c, http.StatusBadRequest, errors.New("period must be weekly, monthly or yearly"))
		return
	}

	var requests []models.Request
	if err := rpc.DB.Preload("Employee").Order("date_requested desc").Find(&requests).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	now := time.Now()
	filtered := services.FilterRequests(requests, period, services.StatusAll, "", now)
	if len(filtered) == 0 {
		utils.RespondError(c, http.StatusUnprocessableEntity, errors.New("No requests available to export."))
		return
	}

	workbook, err := services.BuildReportWorkbook(filtered)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	fileName := services.ReportFileName(now)
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))

	if err := workbook.Write(c.Writer); err != nil {
		utils.ErrorLogger.Printf("Failed to stream report %s: %v", fileName, err)
		return
	}
	utils.InfoLogger.Printf("Report exported: %s (%d rows)", fileName, len(filtered))
}
