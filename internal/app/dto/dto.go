package dto

// ============ Common ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ============ Cost form fields ============

// Field keys the host forwards from the ticket form. All optional.
const (
	FieldPrice         = "price_text"
	FieldDescription   = "description"
	FieldCurrency      = "currency"
	FieldExpenseType   = "expense_type"
	FieldExpenseDate   = "expense_date"
	FieldCostCenter    = "cost_center"
	FieldReferenceCode = "reference_code"
	FieldPurchaseOrder = "purchase_order"
	FieldProject       = "project"
)

// CostSubmission holds only the cost fields that were actually present in the
// host's POST. Key presence matters: a ticket update that carries none of the
// cost fields (a status-only edit, say) must not touch an existing record.
type CostSubmission map[string]string

func (s CostSubmission) Get(key string) string {
	return s[key]
}

func (s CostSubmission) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// HasCostFields reports whether the submission carries the cost form at all.
// Price and description are the two fields every variant of the form submits,
// so their absence means the form was not on the page.
func (s CostSubmission) HasCostFields() bool {
	return s.Has(FieldPrice) || s.Has(FieldDescription)
}
