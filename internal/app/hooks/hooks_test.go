package hooks

import (
	"errors"
	"io"
	"testing"
	"time"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCostStore struct {
	records   map[uint]*ds.CostRecord
	upserts   int
	upsertErr error
	fetchErr  error
}

func newFakeCostStore() *fakeCostStore {
	return &fakeCostStore{records: map[uint]*ds.CostRecord{}}
}

func (f *fakeCostStore) FetchByTicket(ticketID uint) (*ds.CostRecord, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.records[ticketID], nil
}

func (f *fakeCostStore) Upsert(ticketID uint, fields repository.CostFields) error {
	f.upserts++
	if f.upsertErr != nil {
		return f.upsertErr
	}

	now := time.Now()
	rec, ok := f.records[ticketID]
	if !ok {
		rec = &ds.CostRecord{TicketID: ticketID, CreatedAt: &now}
		f.records[ticketID] = rec
	}
	rec.Price = fields.Price
	rec.Description = fields.Description
	rec.Currency = fields.Currency
	rec.ExpenseType = fields.ExpenseType
	rec.ExpenseDate = fields.ExpenseDate
	rec.CostCenter = fields.CostCenter
	rec.ReferenceCode = fields.ReferenceCode
	rec.PurchaseOrder = fields.PurchaseOrder
	rec.Project = fields.Project
	rec.ModifiedAt = &now
	return nil
}

type fakeSolutionStore struct {
	solutions map[uint]*ds.TicketSolution
	updates   int
}

func newFakeSolutionStore() *fakeSolutionStore {
	return &fakeSolutionStore{solutions: map[uint]*ds.TicketSolution{}}
}

func (f *fakeSolutionStore) LatestSolution(ticketID uint) (*ds.TicketSolution, error) {
	return f.solutions[ticketID], nil
}

func (f *fakeSolutionStore) UpdateSolutionContent(id uint, content string) error {
	f.updates++
	for _, sol := range f.solutions {
		if sol.ID == id {
			sol.Content = content
			return nil
		}
	}
	return errors.New("solution not found")
}

func testAdapter(costs *fakeCostStore, solutions *fakeSolutionStore) *Adapter {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(costs, solutions, log)
}

func TestItemAddedPersistsParsedPrice(t *testing.T) {
	costs := newFakeCostStore()
	a := testAdapter(costs, newFakeSolutionStore())

	a.ItemAdded(7, dto.CostSubmission{
		dto.FieldPrice:       "1.234,56",
		dto.FieldDescription: "spare parts",
		dto.FieldExpenseType: ds.ExpenseMaterials,
	})

	rec := costs.records[7]
	require.NotNil(t, rec)
	assert.True(t, rec.Price.Equal(decimal.RequireFromString("1234.56")))
	assert.Equal(t, "spare parts", rec.Description)
	assert.Equal(t, ds.CurrencyBRL, rec.Currency, "missing currency defaults to BRL")
	assert.Equal(t, ds.ExpenseMaterials, rec.ExpenseType)
}

func TestItemAddedSkipsTicketWithoutID(t *testing.T) {
	costs := newFakeCostStore()
	a := testAdapter(costs, newFakeSolutionStore())

	a.ItemAdded(0, dto.CostSubmission{dto.FieldPrice: "10,00"})

	assert.Zero(t, costs.upserts)
}

func TestItemUpdatedSkipsWithoutCostFields(t *testing.T) {
	costs := newFakeCostStore()
	a := testAdapter(costs, newFakeSolutionStore())

	a.ItemAdded(7, dto.CostSubmission{dto.FieldPrice: "50,00", dto.FieldDescription: "meal"})
	require.Equal(t, 1, costs.upserts)

	// Status-only edit: no cost keys at all. The record must not be clobbered
	// with defaults.
	a.ItemUpdated(7, "", dto.CostSubmission{})

	assert.Equal(t, 1, costs.upserts)
	rec := costs.records[7]
	require.NotNil(t, rec)
	assert.True(t, rec.Price.Equal(decimal.RequireFromString("50")))
	assert.Equal(t, "meal", rec.Description)
}

func TestItemUpdatedUpsertsWhenFieldsPresent(t *testing.T) {
	costs := newFakeCostStore()
	a := testAdapter(costs, newFakeSolutionStore())

	a.ItemUpdated(9, "", dto.CostSubmission{dto.FieldPrice: "99,90"})

	require.Equal(t, 1, costs.upserts)
	assert.True(t, costs.records[9].Price.Equal(decimal.RequireFromString("99.9")))
}

func TestItemUpdatedSwallowsStoreErrors(t *testing.T) {
	costs := newFakeCostStore()
	costs.upsertErr = errors.New("connection lost")
	a := testAdapter(costs, newFakeSolutionStore())

	// Must not panic or propagate; the host's save flow goes on.
	a.ItemUpdated(9, "", dto.CostSubmission{dto.FieldPrice: "99,90"})
}

func TestPreItemUpdateNeverMutates(t *testing.T) {
	costs := newFakeCostStore()
	a := testAdapter(costs, newFakeSolutionStore())

	a.PreItemUpdate(7, dto.CostSubmission{dto.FieldPrice: "abc", dto.FieldDescription: "x"})
	a.PreItemUpdate(7, dto.CostSubmission{})

	assert.Zero(t, costs.upserts)
	assert.Empty(t, costs.records)
}

func TestResolvedAppendsPriceLineOnce(t *testing.T) {
	costs := newFakeCostStore()
	solutions := newFakeSolutionStore()
	solutions.solutions[7] = &ds.TicketSolution{ID: 3, TicketID: 7, Content: "rebooted the server"}
	a := testAdapter(costs, solutions)

	a.ItemUpdated(7, ds.TicketStatusResolved, dto.CostSubmission{dto.FieldPrice: "1.234,56"})

	require.Equal(t, 1, solutions.updates)
	assert.Equal(t, "rebooted the server\n\nValor do Atendimento: R$ 1.234,56", solutions.solutions[7].Content)

	// Second resolved transition: marker already present, append is a no-op.
	a.ItemUpdated(7, ds.TicketStatusResolved, dto.CostSubmission{dto.FieldPrice: "1.234,56"})

	assert.Equal(t, 1, solutions.updates)
	assert.Equal(t, "rebooted the server\n\nValor do Atendimento: R$ 1.234,56", solutions.solutions[7].Content)
}

func TestResolvedAppendSkipsZeroPrice(t *testing.T) {
	costs := newFakeCostStore()
	solutions := newFakeSolutionStore()
	solutions.solutions[7] = &ds.TicketSolution{ID: 3, TicketID: 7, Content: "done"}
	a := testAdapter(costs, solutions)

	a.ItemUpdated(7, ds.TicketStatusResolved, dto.CostSubmission{dto.FieldPrice: "0,00"})

	assert.Zero(t, solutions.updates)
	assert.Equal(t, "done", solutions.solutions[7].Content)
}

func TestResolvedAppendSkipsWithoutRecordOrSolution(t *testing.T) {
	costs := newFakeCostStore()
	solutions := newFakeSolutionStore()
	a := testAdapter(costs, solutions)

	// No cost record at all.
	a.ItemUpdated(7, ds.TicketStatusResolved, dto.CostSubmission{})
	assert.Zero(t, solutions.updates)

	// Record exists but the ticket has no resolution note.
	a.ItemUpdated(8, ds.TicketStatusResolved, dto.CostSubmission{dto.FieldPrice: "10,00"})
	assert.Zero(t, solutions.updates)
}

func TestShowForm(t *testing.T) {
	costs := newFakeCostStore()
	a := testAdapter(costs, newFakeSolutionStore())

	rec, err := a.ShowForm(0)
	require.NoError(t, err)
	assert.Nil(t, rec, "new ticket has no record")

	rec, err = a.ShowForm(7)
	require.NoError(t, err)
	assert.Nil(t, rec, "no stored row")

	a.ItemAdded(7, dto.CostSubmission{dto.FieldPrice: "12,00"})
	rec, err = a.ShowForm(7)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.Price.Equal(decimal.RequireFromString("12")))

	costs.fetchErr = errors.New("connection lost")
	_, err = a.ShowForm(7)
	assert.Error(t, err, "fetch failure surfaces so the form shows a warning")
}
