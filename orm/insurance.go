package orm

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

type InsuranceProduct struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	Nombre        string  `gorm:"column:nombre;not null" json:"nombre"`
	Tipo          string  `gorm:"column:tipo;not null" json:"tipo"`
	Descripcion   string  `gorm:"column:descripcion" json:"descripcion"`
	CoberturaBase float64 `gorm:"column:cobertura_base;not null" json:"cobertura_base"`
}

func (InsuranceProduct) TableName() string { return "productos_seguros" }

type Policy struct {
	ID               uint             `gorm:"primaryKey"`
	NumeroPoliza     string           `gorm:"column:numero_poliza;uniqueIndex;not null"`
	ClienteID        uint             `gorm:"column:cliente_id;not null"`
	Cliente          Customer         `gorm:"foreignKey:ClienteID"`
	ProductoID       uint             `gorm:"column:producto_id;not null"`
	Producto         InsuranceProduct `gorm:"foreignKey:ProductoID"`
	FechaInicio      string           `gorm:"column:fecha_inicio;not null"`
	FechaVencimiento string           `gorm:"column:fecha_vencimiento;not null"`
	PrimaMensual     float64          `gorm:"column:prima_mensual;not null"`
	MontoCobertura   float64          `gorm:"column:monto_cobertura;not null"`
	Estado           string           `gorm:"column:estado;not null"`
}

func (Policy) TableName() string { return "polizas" }

// PolicyView is a policy joined with its holder and product. Queries fill
// only the columns they select, the rest stay out of the JSON.
type PolicyView struct {
	ID               uint    `json:"id"`
	NumeroPoliza     string  `json:"numero_poliza"`
	Cliente          string  `json:"cliente,omitempty"`
	EmailCliente     string  `json:"email_cliente,omitempty"`
	Producto         string  `json:"producto"`
	Tipo             string  `json:"tipo"`
	Descripcion      string  `json:"descripcion,omitempty"`
	FechaInicio      string  `json:"fecha_inicio,omitempty"`
	FechaVencimiento string  `json:"fecha_vencimiento,omitempty"`
	PrimaMensual     float64 `json:"prima_mensual"`
	MontoCobertura   float64 `json:"monto_cobertura"`
	Estado           string  `json:"estado"`
}

func policyQuery(db *gorm.DB, columns ...string) *gorm.DB {
	return db.Table("polizas p").
		Select(strings.Join(columns, ", ")).
		Joins("JOIN clientes c ON p.cliente_id = c.id").
		Joins("JOIN productos_seguros ps ON p.producto_id = ps.id")
}

var (
	policyBase  = []string{"p.id", "p.numero_poliza"}
	policyTail  = []string{"p.prima_mensual", "p.monto_cobertura", "p.estado"}
	policyDates = []string{"p.fecha_inicio", "p.fecha_vencimiento"}
	productCols = []string{"ps.nombre AS producto", "ps.tipo"}
)

func columns(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func ListPolicies(db *gorm.DB) ([]PolicyView, error) {
	policies := []PolicyView{}
	err := policyQuery(db, columns(policyBase, []string{"c.nombre AS cliente"}, productCols, policyDates, policyTail)...).
		Order("p.numero_poliza").Scan(&policies).Error
	return policies, err
}

// GetPolicy returns the full policy detail, or nil when it does not exist
func GetPolicy(db *gorm.DB, id int) (*PolicyView, error) {
	policies := []PolicyView{}
	err := policyQuery(db, columns(policyBase,
		[]string{"c.nombre AS cliente", "c.email AS email_cliente"}, productCols,
		[]string{"ps.descripcion"}, policyDates, policyTail)...).
		Where("p.id = ?", id).Limit(1).Scan(&policies).Error
	if err != nil || len(policies) == 0 {
		return nil, err
	}
	return &policies[0], nil
}

// PoliciesByCustomer lists a customer's policies, newest first
func PoliciesByCustomer(db *gorm.DB, customerID int) ([]PolicyView, error) {
	policies := []PolicyView{}
	err := policyQuery(db, columns(policyBase, productCols, policyDates, policyTail)...).
		Where("p.cliente_id = ?", customerID).
		Order("p.fecha_inicio DESC").Scan(&policies).Error
	return policies, err
}

func PoliciesByType(db *gorm.DB, kind string) ([]PolicyView, error) {
	policies := []PolicyView{}
	err := policyQuery(db, columns(policyBase, []string{"c.nombre AS cliente"}, productCols, policyTail)...).
		Where("LOWER(ps.tipo) LIKE ?", likePattern(kind)).
		Order("p.prima_mensual").Scan(&policies).Error
	return policies, err
}

func ListInsuranceProducts(db *gorm.DB) ([]InsuranceProduct, error) {
	products := []InsuranceProduct{}
	err := db.Order("tipo").Order("nombre").Find(&products).Error
	return products, err
}

// GetInsuranceProduct returns nil without error when the product does not exist
func GetInsuranceProduct(db *gorm.DB, id int) (*InsuranceProduct, error) {
	var product InsuranceProduct
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// InsuranceSummary describes the contents of the insurance database
type InsuranceSummary struct {
	TotalProducts  int64     `json:"total_productos"`
	TotalPolicies  int64     `json:"total_polizas"`
	PoliciesByType []CountBy `json:"polizas_por_tipo"`
	TotalCustomers int64     `json:"total_clientes"`
}

func SummarizeInsurance(db *gorm.DB) (*InsuranceSummary, error) {
	var s InsuranceSummary
	if err := db.Model(&InsuranceProduct{}).Count(&s.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&Policy{}).Count(&s.TotalPolicies).Error; err != nil {
		return nil, err
	}
	if err := db.Table("polizas p").Select("ps.tipo AS name, COUNT(*) AS count").
		Joins("JOIN productos_seguros ps ON p.producto_id = ps.id").
		Group("ps.tipo").Order("ps.tipo").Scan(&s.PoliciesByType).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&Customer{}).Count(&s.TotalCustomers).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
