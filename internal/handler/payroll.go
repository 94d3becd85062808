package handler

import (
	"net/http"

	"bizledger/internal/ledger"
	"bizledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PayrollHandler serves the payroll payment endpoints.
type PayrollHandler struct {
	Svc *ledger.Service
}

func NewPayrollHandler(svc *ledger.Service) *PayrollHandler {
	return &PayrollHandler{Svc: svc}
}

type payrollReq struct {
	EmployeeID  string          `json:"employeeId" binding:"required"`
	AccountID   string          `json:"accountId" binding:"required"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Month       int             `json:"month" binding:"required"`
	Year        int             `json:"year" binding:"required"`
	Date        string          `json:"date" binding:"required"`
	Description string          `json:"description" binding:"max=255"`
}

func (r *payrollReq) toInput(c *gin.Context) (ledger.PayrollPaymentInput, bool) {
	date, err := util.ParseDate(r.Date)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid date, expected YYYY-MM-DD")
		return ledger.PayrollPaymentInput{}, false
	}
	return ledger.PayrollPaymentInput{
		EmployeeID:  r.EmployeeID,
		AccountID:   r.AccountID,
		TotalAmount: r.TotalAmount,
		Month:       r.Month,
		Year:        r.Year,
		Date:        date,
		Description: r.Description,
	}, true
}

func (h *PayrollHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req payrollReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	pay, err := h.Svc.CreatePayrollPayment(user.ID, in)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"payrollPayment": pay})
}

func (h *PayrollHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req payrollReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	pay, err := h.Svc.UpdatePayrollPayment(user.ID, c.Param("id"), in)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"payrollPayment": pay})
}

func (h *PayrollHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.Svc.DeletePayrollPayment(user.ID, c.Param("id")); err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "payroll payment deleted"})
}

func (h *PayrollHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	pays, err := h.Svc.ListPayrollPayments(user.ID)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"payrollPayments": pays})
}
