package repository

import (
	"errors"

	"backend/internal/app/ds"

	"gorm.io/gorm"
)

// LatestSolution returns the most recent resolution note for the ticket, or
// (nil, nil) when the ticket has none.
func (r *Repository) LatestSolution(ticketID uint) (*ds.TicketSolution, error) {
	var sol ds.TicketSolution
	err := r.db.Where("tickets_id = ?", ticketID).Order("id DESC").First(&sol).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sol, nil
}

// UpdateSolutionContent rewrites the content of a single resolution note.
func (r *Repository) UpdateSolutionContent(id uint, content string) error {
	return r.db.Model(&ds.TicketSolution{}).Where("id = ?", id).Update("content", content).Error
}
