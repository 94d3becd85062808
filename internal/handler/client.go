package handler

import (
	"net/http"

	"bizledger/internal/ledger"
	"bizledger/internal/util"

	"github.com/gin-gonic/gin"
)

// ClientHandler serves the client endpoints.
type ClientHandler struct {
	Svc *ledger.Service
}

func NewClientHandler(svc *ledger.Service) *ClientHandler {
	return &ClientHandler{Svc: svc}
}

func (h *ClientHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var in ledger.ClientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	cl, err := h.Svc.CreateClient(user.ID, in)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"client": cl})
}

func (h *ClientHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var in ledger.ClientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	cl, err := h.Svc.UpdateClient(user.ID, c.Param("id"), in)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"client": cl})
}

func (h *ClientHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteClient(user.ID, c.Param("id")); err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "client deleted"})
}

func (h *ClientHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	clients, err := h.Svc.ListClients(user.ID)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"clients": clients})
}
