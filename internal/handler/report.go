package handler

import (
	"fmt"
	"net/http"
	"time"

	"bizledger/internal/ledger"
	"bizledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ReportHandler serves the read-only aggregation endpoints.
type ReportHandler struct {
	Svc                 *ledger.Service
	ReminderHorizonDays int
}

func NewReportHandler(svc *ledger.Service, reminderHorizonDays int) *ReportHandler {
	if reminderHorizonDays <= 0 {
		reminderHorizonDays = 14
	}
	return &ReportHandler{Svc: svc, ReminderHorizonDays: reminderHorizonDays}
}

func (h *ReportHandler) Payroll(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	report := h.Svc.BuildPayrollReport(user.ID)
	util.Success(c, util.Response{"report": report})
}

func (h *ReportHandler) Dashboard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	summary := h.Svc.BuildDashboard(user.ID, time.Now(), h.ReminderHorizonDays)
	util.Success(c, util.Response{"summary": summary})
}

// PayrollXLSX streams the payroll report as a spreadsheet.
func (h *ReportHandler) PayrollXLSX(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	report := h.Svc.BuildPayrollReport(user.ID)

	f := excelize.NewFile()
	sheetName := "Payroll"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create sheet failed")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Employee", "Month", "Year", "Total Paid", "Monthly Salary", "Bonus"}
	for i, head := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, head)
	}

	for idx, row := range report.Rows {
		n := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", n), row.EmployeeName)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", n), row.Month)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", n), row.Year)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", n), row.TotalPaid.StringFixed(2))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", n), row.MonthlySalary.StringFixed(2))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", n), row.Bonus.StringFixed(2))
	}

	f.SetColWidth(sheetName, "A", "A", 25)
	f.SetColWidth(sheetName, "B", "C", 8)
	f.SetColWidth(sheetName, "D", "F", 15)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"payroll_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
