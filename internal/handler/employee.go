package handler

import (
	"net/http"

	"bizledger/internal/ledger"
	"bizledger/internal/util"

	"github.com/gin-gonic/gin"
)

// EmployeeHandler serves the employee endpoints.
type EmployeeHandler struct {
	Svc *ledger.Service
}

func NewEmployeeHandler(svc *ledger.Service) *EmployeeHandler {
	return &EmployeeHandler{Svc: svc}
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var in ledger.EmployeeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	emp, err := h.Svc.CreateEmployee(user.ID, in)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"employee": emp})
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var in ledger.EmployeeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	emp, err := h.Svc.UpdateEmployee(user.ID, c.Param("id"), in)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"employee": emp})
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteEmployee(user.ID, c.Param("id")); err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "employee deleted"})
}

func (h *EmployeeHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	employees, err := h.Svc.ListEmployees(user.ID)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"employees": employees})
}
