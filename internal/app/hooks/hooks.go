package hooks

import (
	"strings"
	"time"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/money"
	"backend/internal/app/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PriceMarker is the literal that makes the resolved-note append idempotent:
// a note that already contains it is never touched again.
const PriceMarker = "Valor do Atendimento:"

// CostStore is the persistence surface the adapter writes cost records
// through.
type CostStore interface {
	FetchByTicket(ticketID uint) (*ds.CostRecord, error)
	Upsert(ticketID uint, f repository.CostFields) error
}

// SolutionStore reads and rewrites the host's resolution notes.
type SolutionStore interface {
	LatestSolution(ticketID uint) (*ds.TicketSolution, error)
	UpdateSolutionContent(id uint, content string) error
}

// Adapter translates ticket lifecycle events from the host into store
// operations. Every callback is best-effort: persistence failures are logged
// and swallowed so the host's own ticket-save flow is never aborted.
type Adapter struct {
	costs     CostStore
	solutions SolutionStore
	log       *logrus.Logger
}

func New(costs CostStore, solutions SolutionStore, log *logrus.Logger) *Adapter {
	return &Adapter{
		costs:     costs,
		solutions: solutions,
		log:       log,
	}
}

func (a *Adapter) eventLog(event string, ticketID uint) *logrus.Entry {
	return a.log.WithFields(logrus.Fields{
		"event":      event,
		"event_id":   uuid.NewString(),
		"tickets_id": ticketID,
	})
}

// ShowForm returns the stored cost record for the ticket, or nil when the
// ticket is new (id 0) or has no record yet. The caller renders defaults for
// nil and an inline warning for an error (missing schema, connection loss).
func (a *Adapter) ShowForm(ticketID uint) (*ds.CostRecord, error) {
	if ticketID == 0 {
		return nil, nil
	}

	rec, err := a.costs.FetchByTicket(ticketID)
	if err != nil {
		a.eventLog("show_form", ticketID).WithError(err).Error("failed to fetch cost record")
		return nil, err
	}
	return rec, nil
}

// ItemAdded handles the item-created hook: parse the submitted fields and
// write the first cost record for the ticket.
func (a *Adapter) ItemAdded(ticketID uint, sub dto.CostSubmission) {
	log := a.eventLog("item_add", ticketID)

	if ticketID == 0 {
		log.Debug("ticket has no id yet, skipping")
		return
	}

	fields := a.parseFields(log, sub)
	if err := a.costs.Upsert(ticketID, fields); err != nil {
		log.WithError(err).Error("failed to persist cost record")
		return
	}
	log.WithField("price", fields.Price.String()).Info("cost record saved")
}

// ItemUpdated handles the item-updated hook. The upsert only runs when the
// submission actually carries the cost form; an unrelated edit (a status-only
// change, say) must leave the existing record untouched. The resolved-note
// append runs on the status alone.
func (a *Adapter) ItemUpdated(ticketID uint, status string, sub dto.CostSubmission) {
	log := a.eventLog("item_update", ticketID)

	if ticketID == 0 {
		log.Debug("ticket has no id yet, skipping")
		return
	}

	if sub.HasCostFields() {
		fields := a.parseFields(log, sub)
		if err := a.costs.Upsert(ticketID, fields); err != nil {
			log.WithError(err).Error("failed to persist cost record")
		} else {
			log.WithField("price", fields.Price.String()).Info("cost record saved")
		}
	} else {
		log.Debug("no cost fields in submission, skipping")
	}

	if status == ds.TicketStatusResolved {
		a.appendPriceLine(log, ticketID)
	}
}

// PreItemUpdate handles the pre-item-update hook: diagnostics only, no state
// is mutated here.
func (a *Adapter) PreItemUpdate(ticketID uint, sub dto.CostSubmission) {
	log := a.eventLog("pre_item_update", ticketID)

	if !sub.HasCostFields() {
		log.Debug("no cost fields in submission, skipping")
		return
	}

	if sub.Has(dto.FieldPrice) {
		raw := sub.Get(dto.FieldPrice)
		parsed := money.Parse(raw)
		log.WithField("price", parsed.String()).Debug("price detected")
		if money.SuspectZero(raw, parsed) {
			log.WithField("raw", raw).Warn("price parsed to zero, likely format error")
		}
	}
	if sub.Has(dto.FieldDescription) {
		log.WithField("description", sub.Get(dto.FieldDescription)).Debug("description detected")
	}
}

// appendPriceLine appends "Valor do Atendimento: R$ <price>" to the ticket's
// latest resolution note. Skipped when there is no record, the price is not
// positive, the ticket has no note, or the marker is already present.
func (a *Adapter) appendPriceLine(log *logrus.Entry, ticketID uint) {
	rec, err := a.costs.FetchByTicket(ticketID)
	if err != nil {
		log.WithError(err).Error("failed to fetch cost record for resolved note")
		return
	}
	if rec == nil || !rec.Price.IsPositive() {
		return
	}

	sol, err := a.solutions.LatestSolution(ticketID)
	if err != nil {
		log.WithError(err).Error("failed to fetch latest solution")
		return
	}
	if sol == nil || strings.Contains(sol.Content, PriceMarker) {
		return
	}

	content := sol.Content + "\n\n" + PriceMarker + " R$ " + money.Format(rec.Price)
	if err := a.solutions.UpdateSolutionContent(sol.ID, content); err != nil {
		log.WithError(err).Error("failed to append price line to solution")
		return
	}
	log.WithField("solution_id", sol.ID).Info("price line appended to resolved note")
}

// parseFields converts a raw submission into typed store fields. Parsing
// never fails: a bad price degrades to zero (with a diagnostic), a bad or
// missing expense date degrades to today.
func (a *Adapter) parseFields(log *logrus.Entry, sub dto.CostSubmission) repository.CostFields {
	raw := sub.Get(dto.FieldPrice)
	price := money.Parse(raw)
	if money.SuspectZero(raw, price) {
		log.WithField("raw", raw).Warn("price parsed to zero, likely format error")
	}

	currency := sub.Get(dto.FieldCurrency)
	if currency == "" {
		currency = ds.CurrencyBRL
	}

	expenseDate := time.Now()
	if d, err := time.Parse("2006-01-02", sub.Get(dto.FieldExpenseDate)); err == nil {
		expenseDate = d
	}

	return repository.CostFields{
		Price:         price,
		Description:   sub.Get(dto.FieldDescription),
		Currency:      currency,
		ExpenseType:   sub.Get(dto.FieldExpenseType),
		ExpenseDate:   &expenseDate,
		CostCenter:    sub.Get(dto.FieldCostCenter),
		ReferenceCode: sub.Get(dto.FieldReferenceCode),
		PurchaseOrder: sub.Get(dto.FieldPurchaseOrder),
		Project:       sub.Get(dto.FieldProject),
	}
}
