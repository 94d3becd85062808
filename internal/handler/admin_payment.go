package handler

import (
	"net/http"

	"bizledger/internal/ledger"
	"bizledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AdminPaymentHandler serves the recurring administrative payment
// endpoints.
type AdminPaymentHandler struct {
	Svc *ledger.Service
}

func NewAdminPaymentHandler(svc *ledger.Service) *AdminPaymentHandler {
	return &AdminPaymentHandler{Svc: svc}
}

type adminPaymentReq struct {
	Name        string          `json:"name" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"dueDate"`
	Description string          `json:"description" binding:"max=255"`
}

func (r *adminPaymentReq) toInput(c *gin.Context) (ledger.AdminPaymentInput, bool) {
	in := ledger.AdminPaymentInput{
		Name:        r.Name,
		Amount:      r.Amount,
		Description: r.Description,
	}
	if r.DueDate != "" {
		due, err := util.ParseDate(r.DueDate)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid due date, expected YYYY-MM-DD")
			return ledger.AdminPaymentInput{}, false
		}
		in.DueDate = &due
	}
	return in, true
}

func (h *AdminPaymentHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req adminPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	pay, err := h.Svc.CreateAdminPayment(user.ID, in)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"adminPayment": pay})
}

func (h *AdminPaymentHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req adminPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	pay, err := h.Svc.UpdateAdminPayment(user.ID, c.Param("id"), in)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"adminPayment": pay})
}

func (h *AdminPaymentHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteAdminPayment(user.ID, c.Param("id")); err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "admin payment deleted"})
}

func (h *AdminPaymentHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	pays, err := h.Svc.ListAdminPayments(user.ID)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"adminPayments": pays})
}
