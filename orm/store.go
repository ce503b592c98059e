package orm

import (
	"errors"

	"gorm.io/gorm"
)

type Product struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Nombre    string  `gorm:"column:nombre;not null" json:"nombre"`
	Precio    float64 `gorm:"column:precio;not null" json:"precio"`
	Categoria string  `gorm:"column:categoria" json:"categoria"`
	Stock     int     `gorm:"column:stock;default:0" json:"stock"`
}

func (Product) TableName() string { return "productos" }

// Customer backs the clientes table of both databases. The insurance
// database also records a birth date.
type Customer struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Nombre          string `gorm:"column:nombre;not null" json:"nombre"`
	Email           string `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Telefono        string `gorm:"column:telefono" json:"telefono,omitempty"`
	Ciudad          string `gorm:"column:ciudad" json:"ciudad"`
	FechaNacimiento string `gorm:"column:fecha_nacimiento" json:"fecha_nacimiento,omitempty"`
}

func (Customer) TableName() string { return "clientes" }

// CountBy is one row of a grouped count
type CountBy struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Summary describes the contents of the store database
type Summary struct {
	TotalProducts      int64     `json:"total_productos"`
	ProductsByCategory []CountBy `json:"productos_por_categoria"`
	TotalCustomers     int64     `json:"total_clientes"`
	CustomersByCity    []CountBy `json:"clientes_por_ciudad"`
}

func ListProducts(db *gorm.DB) ([]Product, error) {
	products := []Product{}
	err := db.Order("nombre").Find(&products).Error
	return products, err
}

// GetProduct returns nil without error when the product does not exist
func GetProduct(db *gorm.DB, id int) (*Product, error) {
	var product Product
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func ProductsByCategory(db *gorm.DB, category string) ([]Product, error) {
	products := []Product{}
	err := db.Where("LOWER(categoria) LIKE ?", likePattern(category)).Order("precio").Find(&products).Error
	return products, err
}

func ProductsByName(db *gorm.DB, term string) ([]Product, error) {
	products := []Product{}
	err := db.Where("LOWER(nombre) LIKE ?", likePattern(term)).Order("nombre").Find(&products).Error
	return products, err
}

func ProductsByPrice(db *gorm.DB, min, max float64) ([]Product, error) {
	products := []Product{}
	err := db.Where("precio BETWEEN ? AND ?", min, max).Order("precio").Find(&products).Error
	return products, err
}

func ProductsInStock(db *gorm.DB) ([]Product, error) {
	products := []Product{}
	err := db.Where("stock > 0").Order("stock DESC").Find(&products).Error
	return products, err
}

func ListCustomers(db *gorm.DB) ([]Customer, error) {
	customers := []Customer{}
	err := db.Order("nombre").Find(&customers).Error
	return customers, err
}

// GetCustomer returns nil without error when the customer does not exist
func GetCustomer(db *gorm.DB, id int) (*Customer, error) {
	var customer Customer
	if err := db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func CustomersByCity(db *gorm.DB, city string) ([]Customer, error) {
	customers := []Customer{}
	err := db.Where("LOWER(ciudad) LIKE ?", likePattern(city)).Order("nombre").Find(&customers).Error
	return customers, err
}

// StoreSummary counts products per category and customers per city
func StoreSummary(db *gorm.DB) (*Summary, error) {
	var s Summary
	if err := db.Model(&Product{}).Count(&s.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&Product{}).Select("categoria AS name, COUNT(*) AS count").
		Group("categoria").Order("categoria").Scan(&s.ProductsByCategory).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&Customer{}).Count(&s.TotalCustomers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&Customer{}).Select("ciudad AS name, COUNT(*) AS count").
		Group("ciudad").Order("ciudad").Scan(&s.CustomersByCity).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
