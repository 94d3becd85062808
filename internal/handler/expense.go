package handler

import (
	"net/http"

	"bizledger/internal/ledger"
	"bizledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ExpenseHandler serves the expense endpoints.
type ExpenseHandler struct {
	Svc *ledger.Service
}

func NewExpenseHandler(svc *ledger.Service) *ExpenseHandler {
	return &ExpenseHandler{Svc: svc}
}

type expenseReq struct {
	AccountID   string          `json:"accountId" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category" binding:"max=64"`
	Description string          `json:"description" binding:"max=255"`
	Date        string          `json:"date" binding:"required"`
}

func (r *expenseReq) toInput(c *gin.Context) (ledger.ExpenseInput, bool) {
	date, err := util.ParseDate(r.Date)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid date, expected YYYY-MM-DD")
		return ledger.ExpenseInput{}, false
	}
	return ledger.ExpenseInput{
		AccountID:   r.AccountID,
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description,
		Date:        date,
	}, true
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req expenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	exp, err := h.Svc.CreateExpense(user.ID, in)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"expense": exp})
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req expenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	exp, err := h.Svc.UpdateExpense(user.ID, c.Param("id"), in)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"expense": exp})
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteExpense(user.ID, c.Param("id")); err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "expense deleted"})
}

func (h *ExpenseHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	exp, err := h.Svc.GetExpense(user.ID, c.Param("id"))
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"expense": exp})
}

func (h *ExpenseHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	expenses, err := h.Svc.ListExpenses(user.ID)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"expenses": expenses})
}
