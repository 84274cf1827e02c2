package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/money"

	"github.com/gin-gonic/gin"
)

// Shown in place of the form when the record cannot be loaded. Never a 5xx:
// the ticket page must keep working without the cost section.
const formWarning = `<div class="alert alert-warning">Custo do atendimento indisponível no momento.</div>`

// Form fragment for the ticket-edit page
func (h *Handler) GetCostForm(ctx *gin.Context) {
	idStr := ctx.Param("id")
	ticketID, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		ctx.Data(http.StatusBadRequest, "text/html; charset=utf-8", []byte(formWarning))
		return
	}

	rec, err := h.Adapter.ShowForm(uint(ticketID))
	if err != nil {
		ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(formWarning))
		return
	}

	ctx.HTML(http.StatusOK, "cost_form.html", formData(rec))
}

// Hook: ticket created in the host
func (h *Handler) TicketCreated(ctx *gin.Context) {
	ticketID, err := hookTicketID(ctx)
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	h.Adapter.ItemAdded(ticketID, costSubmission(ctx))
	h.hookOK(ctx)
}

// Hook: ticket updated in the host
func (h *Handler) TicketUpdated(ctx *gin.Context) {
	ticketID, err := hookTicketID(ctx)
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	status := ctx.PostForm("status")
	h.Adapter.ItemUpdated(ticketID, status, costSubmission(ctx))
	h.hookOK(ctx)
}

// Hook: before a ticket update, diagnostics only
func (h *Handler) TicketPreUpdate(ctx *gin.Context) {
	ticketID, err := hookTicketID(ctx)
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	h.Adapter.PreItemUpdate(ticketID, costSubmission(ctx))
	h.hookOK(ctx)
}

func hookTicketID(ctx *gin.Context) (uint, error) {
	raw := ctx.PostForm("tickets_id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid tickets_id %q", raw)
	}
	return uint(id), nil
}

// costSubmission copies only the cost fields actually present in the POST,
// so the adapter can tell an omitted field from an empty one.
func costSubmission(ctx *gin.Context) dto.CostSubmission {
	keys := []string{
		dto.FieldPrice,
		dto.FieldDescription,
		dto.FieldCurrency,
		dto.FieldExpenseType,
		dto.FieldExpenseDate,
		dto.FieldCostCenter,
		dto.FieldReferenceCode,
		dto.FieldPurchaseOrder,
		dto.FieldProject,
	}

	sub := dto.CostSubmission{}
	for _, key := range keys {
		if v, ok := ctx.GetPostForm(key); ok {
			sub[key] = v
		}
	}
	return sub
}

// formData maps a record (or nil for a new ticket) onto the template values.
// Free text is escaped by html/template on render.
func formData(rec *ds.CostRecord) gin.H {
	data := gin.H{
		"price":         "0,00",
		"description":   "",
		"currency":      ds.CurrencyBRL,
		"expenseType":   "",
		"expenseDate":   time.Now().Format("2006-01-02"),
		"costCenter":    "",
		"referenceCode": "",
		"purchaseOrder": "",
		"project":       "",
	}
	if rec == nil {
		return data
	}

	data["price"] = money.Format(rec.Price)
	data["description"] = rec.Description
	data["expenseType"] = rec.ExpenseType
	data["costCenter"] = rec.CostCenter
	data["referenceCode"] = rec.ReferenceCode
	data["purchaseOrder"] = rec.PurchaseOrder
	data["project"] = rec.Project
	if rec.Currency != "" {
		data["currency"] = rec.Currency
	}
	if rec.ExpenseDate != nil {
		data["expenseDate"] = rec.ExpenseDate.Format("2006-01-02")
	}
	return data
}
