package handler

import (
	"net/http"

	"bizledger/internal/ledger"
	"bizledger/internal/util"

	"github.com/gin-gonic/gin"
)

// AccountHandler serves the payment account endpoints.
type AccountHandler struct {
	Svc *ledger.Service
}

func NewAccountHandler(svc *ledger.Service) *AccountHandler {
	return &AccountHandler{Svc: svc}
}

func (h *AccountHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var in ledger.AccountInput
	if err := c.ShouldBindJSON(&in); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	acc, err := h.Svc.CreateAccount(user.ID, in)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"account": acc})
}

func (h *AccountHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var in ledger.AccountInput
	if err := c.ShouldBindJSON(&in); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	acc, err := h.Svc.UpdateAccount(user.ID, c.Param("id"), in)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"account": acc})
}

func (h *AccountHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteAccount(user.ID, c.Param("id")); err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "account deleted"})
}

func (h *AccountHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	acc, err := h.Svc.GetAccount(user.ID, c.Param("id"))
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"account": acc})
}

func (h *AccountHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	accounts, err := h.Svc.ListAccounts(user.ID)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"accounts": accounts})
}
