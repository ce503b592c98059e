package orm

import (
	"fmt"
	"slices"
	"time"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

var storeProducts = []Product{
	{Nombre: "Laptop Dell XPS 15", Precio: 1299.99, Categoria: "Electrónica", Stock: 8},
	{Nombre: "Mouse Logitech MX Master", Precio: 99.99, Categoria: "Electrónica", Stock: 25},
	{Nombre: "Teclado Mecánico Corsair", Precio: 149.99, Categoria: "Electrónica", Stock: 15},
	{Nombre: "Monitor Samsung 27\"", Precio: 349.99, Categoria: "Electrónica", Stock: 12},
	{Nombre: "Webcam Logitech C920", Precio: 79.99, Categoria: "Electrónica", Stock: 20},
	{Nombre: "Silla Ergonómica Herman Miller", Precio: 899.99, Categoria: "Muebles", Stock: 5},
	{Nombre: "Escritorio Ajustable", Precio: 599.99, Categoria: "Muebles", Stock: 7},
	{Nombre: "Lámpara de Escritorio LED", Precio: 49.99, Categoria: "Iluminación", Stock: 30},
	{Nombre: "Audífonos Sony WH-1000XM4", Precio: 349.99, Categoria: "Electrónica", Stock: 18},
	{Nombre: "Mochila para Laptop", Precio: 79.99, Categoria: "Accesorios", Stock: 40},
}

var workshopCustomers = []Customer{
	{Nombre: "Juan Pérez", Email: "juan.perez@email.com", Telefono: "+57-300-1234567", Ciudad: "Bogotá", FechaNacimiento: "1985-03-15"},
	{Nombre: "María García", Email: "maria.garcia@email.com", Telefono: "+57-310-2345678", Ciudad: "Medellín", FechaNacimiento: "1990-07-22"},
	{Nombre: "Carlos López", Email: "carlos.lopez@email.com", Telefono: "+57-320-3456789", Ciudad: "Cali", FechaNacimiento: "1978-11-30"},
	{Nombre: "Ana Martínez", Email: "ana.martinez@email.com", Telefono: "+57-315-4567890", Ciudad: "Barranquilla", FechaNacimiento: "1995-05-18"},
	{Nombre: "Luis Rodríguez", Email: "luis.rodriguez@email.com", Telefono: "+57-305-5678901", Ciudad: "Cartagena", FechaNacimiento: "1982-09-25"},
	{Nombre: "Laura Fernández", Email: "laura.fernandez@email.com", Telefono: "+57-312-6789012", Ciudad: "Bogotá", FechaNacimiento: "1988-12-10"},
}

var insuranceProducts = []InsuranceProduct{
	{Nombre: "Seguro de Vida Básico", Tipo: "Vida", Descripcion: "Cobertura en caso de fallecimiento", CoberturaBase: 100000},
	{Nombre: "Seguro de Vida Premium", Tipo: "Vida", Descripcion: "Cobertura ampliada con beneficios adicionales", CoberturaBase: 250000},
	{Nombre: "Seguro de Auto Básico", Tipo: "Auto", Descripcion: "Cobertura por daños a terceros", CoberturaBase: 50000},
	{Nombre: "Seguro de Auto Completo", Tipo: "Auto", Descripcion: "Cobertura total incluyendo robo y daños propios", CoberturaBase: 100000},
	{Nombre: "Seguro de Hogar", Tipo: "Hogar", Descripcion: "Protección para tu vivienda y contenido", CoberturaBase: 150000},
	{Nombre: "Seguro de Salud Individual", Tipo: "Salud", Descripcion: "Cobertura médica individual", CoberturaBase: 80000},
	{Nombre: "Seguro de Salud Familiar", Tipo: "Salud", Descripcion: "Cobertura médica para toda la familia", CoberturaBase: 200000},
	{Nombre: "Seguro de Accidentes Personales", Tipo: "Accidentes", Descripcion: "Cobertura por accidentes personales", CoberturaBase: 75000},
}

// seedPolicy references customers and products by their position in the
// seed slices. Dates are day offsets from the seeding time.
type seedPolicy struct {
	number          string
	customer        int
	product         int
	startedDaysAgo  int
	expiresInDays   int
	premium, amount float64
}

var insurancePolicies = []seedPolicy{
	{"POL-2024-1001", 0, 0, 180, 185, 150, 100000},
	{"POL-2024-1002", 0, 2, 90, 275, 200, 50000},
	{"POL-2024-1003", 1, 3, 120, 245, 350, 100000},
	{"POL-2024-1004", 2, 1, 200, 165, 200, 150000},
	{"POL-2024-1005", 3, 5, 60, 305, 180, 80000},
	{"POL-2024-1006", 4, 0, 150, 215, 120, 80000},
	{"POL-2024-1007", 5, 4, 100, 265, 220, 150000},
}

// SeedStore inserts the sample products and customers into empty tables
func SeedStore(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := seedIfEmpty(tx, &Product{}, slices.Clone(storeProducts)); err != nil {
			return err
		}
		customers := slices.Clone(workshopCustomers)
		for i := range customers {
			customers[i].FechaNacimiento = ""
		}
		return seedIfEmpty(tx, &Customer{}, customers)
	})
}

// SeedInsurance inserts the sample insurance products, customers and
// policies into empty tables. Policy dates are relative to now.
func SeedInsurance(db *gorm.DB, now time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		products := slices.Clone(insuranceProducts)
		if err := seedIfEmpty(tx, &InsuranceProduct{}, products); err != nil {
			return err
		}
		customers := slices.Clone(workshopCustomers)
		if err := seedIfEmpty(tx, &Customer{}, customers); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&Policy{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		// Rows may predate this call, so resolve ids by natural keys.
		customerIDs, err := idsBy(tx, &Customer{}, "email", emails(workshopCustomers))
		if err != nil {
			return err
		}
		productIDs, err := idsBy(tx, &InsuranceProduct{}, "nombre", productNames(insuranceProducts))
		if err != nil {
			return err
		}

		policies := make([]Policy, 0, len(insurancePolicies))
		for _, p := range insurancePolicies {
			policies = append(policies, Policy{
				NumeroPoliza:     p.number,
				ClienteID:        customerIDs[workshopCustomers[p.customer].Email],
				ProductoID:       productIDs[insuranceProducts[p.product].Nombre],
				FechaInicio:      now.AddDate(0, 0, -p.startedDaysAgo).Format(dateLayout),
				FechaVencimiento: now.AddDate(0, 0, p.expiresInDays).Format(dateLayout),
				PrimaMensual:     p.premium,
				MontoCobertura:   p.amount,
				Estado:           "Activa",
			})
		}
		if err := tx.Omit("Cliente", "Producto").Create(&policies).Error; err != nil {
			return fmt.Errorf("failed to seed polizas: %w", err)
		}
		return nil
	})
}

func seedIfEmpty[T any](tx *gorm.DB, model interface{}, rows []T) error {
	var count int64
	if err := tx.Model(model).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to seed %T: %w", model, err)
	}
	return nil
}

type keyedID struct {
	ID         uint
	NaturalKey string
}

func idsBy(tx *gorm.DB, model interface{}, column string, keys []string) (map[string]uint, error) {
	var rows []keyedID
	err := tx.Model(model).Select("id, "+column+" AS natural_key").Where(column+" IN ?", keys).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	ids := make(map[string]uint, len(rows))
	for _, r := range rows {
		ids[r.NaturalKey] = r.ID
	}
	for _, k := range keys {
		if _, ok := ids[k]; !ok {
			return nil, fmt.Errorf("seed row %q not found", k)
		}
	}
	return ids, nil
}

func emails(customers []Customer) []string {
	out := make([]string, len(customers))
	for i, c := range customers {
		out[i] = c.Email
	}
	return out
}

func productNames(products []InsuranceProduct) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Nombre
	}
	return out
}
