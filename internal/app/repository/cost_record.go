package repository

import (
	"errors"
	"time"

	"backend/internal/app/ds"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CostFields carries the mutable columns of a cost record through the write
// path. Timestamps are set here, never by callers.
type CostFields struct {
	Price         decimal.Decimal
	Description   string
	Currency      string
	ExpenseType   string
	ExpenseDate   *time.Time
	CostCenter    string
	ReferenceCode string
	PurchaseOrder string
	Project       string
}

// FetchByTicket returns the cost record for the ticket, or (nil, nil) when no
// record exists. The unique index keeps this to at most one row; should the
// table ever hold more, the first by id wins.
func (r *Repository) FetchByTicket(ticketID uint) (*ds.CostRecord, error) {
	var rec ds.CostRecord
	err := r.db.Where("tickets_id = ?", ticketID).Order("id").First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Upsert inserts a cost record for the ticket or updates the existing one in
// place. A single INSERT ... ON CONFLICT statement keeps the existence check
// and the write atomic, so two concurrent submissions for the same ticket
// cannot produce two rows. The insert path sets date_creation and date_mod,
// the conflict path touches date_mod only.
func (r *Repository) Upsert(ticketID uint, f CostFields) error {
	now := time.Now()

	rec := ds.CostRecord{
		TicketID:      ticketID,
		Price:         f.Price,
		Description:   f.Description,
		Currency:      f.Currency,
		ExpenseType:   f.ExpenseType,
		ExpenseDate:   f.ExpenseDate,
		CostCenter:    f.CostCenter,
		ReferenceCode: f.ReferenceCode,
		PurchaseOrder: f.PurchaseOrder,
		Project:       f.Project,
		CreatedAt:     &now,
		ModifiedAt:    &now,
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tickets_id"}},
		DoUpdates: clause.Assignments(r.updateAssignments(f, now)),
	}).Create(&rec).Error

	// Last line of defense: if the driver ever reports the unique index
	// instead of taking the conflict path, the record exists now and a plain
	// update must succeed.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		r.log.WithField("tickets_id", ticketID).Warn("upsert hit duplicate key, retrying as update")
		return r.updateExisting(ticketID, f, now)
	}
	return err
}

func (r *Repository) updateExisting(ticketID uint, f CostFields, now time.Time) error {
	return r.db.Model(&ds.CostRecord{}).
		Where("tickets_id = ?", ticketID).
		Updates(r.updateAssignments(f, now)).Error
}

func (r *Repository) updateAssignments(f CostFields, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"preco_atendimento": f.Price,
		"descricao_despesa": f.Description,
		"moeda":             f.Currency,
		"tipo_despesa":      f.ExpenseType,
		"data_despesa":      f.ExpenseDate,
		"centro_custo":      f.CostCenter,
		"rc":                f.ReferenceCode,
		"oc":                f.PurchaseOrder,
		"projeto":           f.Project,
		"date_mod":          now,
	}
}
