package ledger

import (
	"sort"
	"time"

	"bizledger/internal/models"

	"github.com/shopspring/decimal"
)

// PayrollReportRow is one employee-month aggregate. Bonus is whatever
// was paid above the employee's monthly salary, floored at zero.
type PayrollReportRow struct {
	EmployeeID    string          `json:"employeeId"`
	EmployeeName  string          `json:"employeeName"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	MonthlySalary decimal.Decimal `json:"monthlySalary"`
	Bonus         decimal.Decimal `json:"bonus"`
}

// EmployeeTotal is the all-time payroll total for one employee.
type EmployeeTotal struct {
	EmployeeID   string          `json:"employeeId"`
	EmployeeName string          `json:"employeeName"`
	TotalPaid    decimal.Decimal `json:"totalPaid"`
}

// PayrollReport groups payroll payments by employee and by month.
type PayrollReport struct {
	Rows       []PayrollReportRow `json:"rows"`
	ByEmployee []EmployeeTotal    `json:"byEmployee"`
}

// BuildPayrollReport folds the stored payroll payments. A query error
// yields an empty report rather than a failure.
func (s *Service) BuildPayrollReport(userID string) PayrollReport {
	report := PayrollReport{
		Rows:       []PayrollReportRow{},
		ByEmployee: []EmployeeTotal{},
	}

	var pays []models.PayrollPayment
	if err := s.db.Where("user_id = ?", userID).Find(&pays).Error; err != nil {
		return report
	}
	var employees []models.Employee
	if err := s.db.Where("user_id = ?", userID).Find(&employees).Error; err != nil {
		return report
	}

	empByID := make(map[string]*models.Employee, len(employees))
	for i := range employees {
		empByID[employees[i].ID] = &employees[i]
	}

	type monthKey struct {
		employeeID  string
		month, year int
	}
	rowMap := make(map[monthKey]*PayrollReportRow)
	totalMap := make(map[string]*EmployeeTotal)

	for i := range pays {
		p := &pays[i]
		name := "(removed)"
		salary := decimal.Zero
		if emp, ok := empByID[p.EmployeeID]; ok {
			name = emp.Name
			salary = emp.MonthlySalary
		}

		key := monthKey{employeeID: p.EmployeeID, month: p.Month, year: p.Year}
		row, ok := rowMap[key]
		if !ok {
			row = &PayrollReportRow{
				EmployeeID:    p.EmployeeID,
				EmployeeName:  name,
				Month:         p.Month,
				Year:          p.Year,
				MonthlySalary: salary,
			}
			rowMap[key] = row
		}
		row.TotalPaid = row.TotalPaid.Add(p.TotalAmount)

		total, ok := totalMap[p.EmployeeID]
		if !ok {
			total = &EmployeeTotal{EmployeeID: p.EmployeeID, EmployeeName: name}
			totalMap[p.EmployeeID] = total
		}
		total.TotalPaid = total.TotalPaid.Add(p.TotalAmount)
	}

	for _, row := range rowMap {
		row.Bonus = row.TotalPaid.Sub(row.MonthlySalary)
		if row.Bonus.IsNegative() {
			row.Bonus = decimal.Zero
		}
		report.Rows = append(report.Rows, *row)
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		a, b := report.Rows[i], report.Rows[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if a.Month != b.Month {
			return a.Month > b.Month
		}
		return a.EmployeeName < b.EmployeeName
	})

	for _, total := range totalMap {
		report.ByEmployee = append(report.ByEmployee, *total)
	}
	sort.Slice(report.ByEmployee, func(i, j int) bool {
		return report.ByEmployee[i].EmployeeName < report.ByEmployee[j].EmployeeName
	})

	return report
}

// DashboardSummary is the read-side overview for the landing page.
type DashboardSummary struct {
	TotalBalance     decimal.Decimal   `json:"totalBalance"`
	Accounts         []models.Account  `json:"accounts"`
	MonthIncome      decimal.Decimal   `json:"monthIncome"`
	MonthExpense     decimal.Decimal   `json:"monthExpense"`
	PendingReminders []models.Reminder `json:"pendingReminders"`
}

// BuildDashboard sums account balances, the current month's income and
// expense, and the pending reminders due within horizonDays. Like the
// payroll report, query errors degrade to empty sections.
func (s *Service) BuildDashboard(userID string, now time.Time, horizonDays int) DashboardSummary {
	summary := DashboardSummary{
		Accounts:         []models.Account{},
		PendingReminders: []models.Reminder{},
	}

	if accounts, err := s.ListAccounts(userID); err == nil {
		summary.Accounts = accounts
		for _, acc := range accounts {
			summary.TotalBalance = summary.TotalBalance.Add(acc.Balance)
		}
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	var incomes []models.Income
	if err := s.db.Where("user_id = ? AND date >= ? AND date < ?", userID, monthStart, monthEnd).
		Find(&incomes).Error; err == nil {
		for _, inc := range incomes {
			summary.MonthIncome = summary.MonthIncome.Add(inc.AmountWithCommission)
		}
	}

	var expenses []models.Expense
	if err := s.db.Where("user_id = ? AND date >= ? AND date < ?", userID, monthStart, monthEnd).
		Find(&expenses).Error; err == nil {
		for _, exp := range expenses {
			summary.MonthExpense = summary.MonthExpense.Add(exp.Amount)
		}
	}

	horizon := now.AddDate(0, 0, horizonDays)
	var rems []models.Reminder
	if err := s.db.Where("user_id = ? AND status = ? AND due_date <= ?",
		userID, models.ReminderPending, horizon).
		Order("due_date ASC").Find(&rems).Error; err == nil {
		summary.PendingReminders = rems
	}

	return summary
}
