package handler

import (
	"errors"
	"net/http"

	"bizledger/internal/ledger"
	"bizledger/internal/models"
	"bizledger/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUser pulls the authenticated user placed by the auth
// middleware. Missing user means the route was wired without it.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return nil, false
	}
	return user, true
}

// writeLedgerError maps service errors onto the response envelope:
// validation -> 400 with a message list, referential -> 404, anything
// else -> 500.
func writeLedgerError(c *gin.Context, err error) {
	var verr *ledger.ValidationError
	if errors.As(err, &verr) {
		util.Errors(c, http.StatusBadRequest, util.CodeInvalidParam, verr.Messages)
		return
	}
	switch {
	case errors.Is(err, ledger.ErrAccountNotFound),
		errors.Is(err, ledger.ErrEmployeeNotFound),
		errors.Is(err, ledger.ErrClientNotFound),
		errors.Is(err, ledger.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, err.Error())
	case errors.Is(err, ledger.ErrPayrollExpense),
		errors.Is(err, ledger.ErrAccountInUse):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "operation failed, please retry")
	}
}
