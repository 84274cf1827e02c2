package ds

import (
	"time"

	"github.com/shopspring/decimal"
)

// 1. Cost record table - one row per ticket, keyed by the external ticket id
type CostRecord struct {
	ID            uint            `gorm:"primaryKey"`
	TicketID      uint            `gorm:"column:tickets_id;not null;default:0;uniqueIndex"`
	Price         decimal.Decimal `gorm:"column:preco_atendimento;type:decimal(20,4);not null;default:0"` // stored with 4 decimals, displayed with 2
	Description   string          `gorm:"column:descricao_despesa;type:varchar(255)"`
	Currency      string          `gorm:"column:moeda;type:varchar(10);default:'BRL'"` // BRL, USD, EUR
	ExpenseType   string          `gorm:"column:tipo_despesa;type:varchar(50)"`
	ExpenseDate   *time.Time      `gorm:"column:data_despesa;type:date"`
	CostCenter    string          `gorm:"column:centro_custo;type:varchar(50)"`
	ReferenceCode string          `gorm:"column:rc;type:varchar(50)"`
	PurchaseOrder string          `gorm:"column:oc;type:varchar(50)"`
	Project       string          `gorm:"column:projeto;type:varchar(100)"`
	CreatedAt     *time.Time      `gorm:"column:date_creation;autoCreateTime:false"`
	ModifiedAt    *time.Time      `gorm:"column:date_mod"`
}

func (CostRecord) TableName() string {
	return "glpi_plugin_custoticket_prices"
}

// Wire values for the select fields. The empty string is the blank "-----"
// option on every select except currency, which defaults to BRL.
const (
	CurrencyBRL = "BRL"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"

	ExpenseMaterials = "materiais"
	ExpenseCarRental = "aluguel"
	ExpenseMeal      = "refeicao"
	ExpenseParking   = "estacionamento"

	CostCenterServices = "servicos"
	CostCenterWorks    = "obras"
	CostCenterProjects = "projetos"

	ProjectEDP     = "edp"
	ProjectEmbraer = "embraer"
	ProjectSede    = "sede"
	ProjectDCTA    = "dcta"
)
