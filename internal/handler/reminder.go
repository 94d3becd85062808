package handler

import (
	"bizledger/internal/ledger"
	"bizledger/internal/util"

	"github.com/gin-gonic/gin"
)

// ReminderHandler serves the derived reminder endpoints. Reminders are
// never created here: they only appear as a side effect of saving an
// income or admin payment.
type ReminderHandler struct {
	Svc *ledger.Service
}

func NewReminderHandler(svc *ledger.Service) *ReminderHandler {
	return &ReminderHandler{Svc: svc}
}

func (h *ReminderHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	rems, err := h.Svc.ListReminders(user.ID)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"reminders": rems})
}

func (h *ReminderHandler) Resolve(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	rem, err := h.Svc.ResolveReminder(user.ID, c.Param("id"))
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"reminder": rem})
}

func (h *ReminderHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteReminder(user.ID, c.Param("id")); err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "reminder deleted"})
}
