package handler

import (
	"net/http"

	"bizledger/internal/ledger"
	"bizledger/internal/models"
	"bizledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// IncomeHandler serves the income endpoints.
type IncomeHandler struct {
	Svc *ledger.Service
}

func NewIncomeHandler(svc *ledger.Service) *IncomeHandler {
	return &IncomeHandler{Svc: svc}
}

type incomeReq struct {
	AccountID             string               `json:"accountId" binding:"required"`
	ClientID              string               `json:"clientId"`
	AmountPaid            decimal.Decimal      `json:"amountPaid"`
	TotalContractedAmount decimal.Decimal      `json:"totalContractedAmount"`
	Services              []models.ServiceLine `json:"services"`
	RenewalDate           string               `json:"renewalDate"`
	Date                  string               `json:"date" binding:"required"`
	Description           string               `json:"description" binding:"max=255"`
}

func (r *incomeReq) toInput(c *gin.Context) (ledger.IncomeInput, bool) {
	date, err := util.ParseDate(r.Date)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid date, expected YYYY-MM-DD")
		return ledger.IncomeInput{}, false
	}
	in := ledger.IncomeInput{
		AccountID:             r.AccountID,
		ClientID:              r.ClientID,
		AmountPaid:            r.AmountPaid,
		TotalContractedAmount: r.TotalContractedAmount,
		Services:              r.Services,
		Date:                  date,
		Description:           r.Description,
	}
	if r.RenewalDate != "" {
		renewal, err := util.ParseDate(r.RenewalDate)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid renewal date, expected YYYY-MM-DD")
			return ledger.IncomeInput{}, false
		}
		in.RenewalDate = &renewal
	}
	return in, true
}

func (h *IncomeHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req incomeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	inc, err := h.Svc.CreateIncome(user.ID, in)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"income": inc})
}

func (h *IncomeHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req incomeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	inc, err := h.Svc.UpdateIncome(user.ID, c.Param("id"), in)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"income": inc})
}

func (h *IncomeHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteIncome(user.ID, c.Param("id")); err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "income deleted"})
}

func (h *IncomeHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	inc, err := h.Svc.GetIncome(user.ID, c.Param("id"))
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"income": inc})
}

func (h *IncomeHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	incomes, err := h.Svc.ListIncomes(user.ID)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"incomes": incomes})
}
