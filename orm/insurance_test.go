package orm_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/va6996/mcpworkshop/orm"
	"github.com/va6996/mcpworkshop/orm/testutils"
)

func TestInsuranceQueries(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	db := testutils.SeededDB(t, "insurance", now)

	t.Run("ListPolicies", func(t *testing.T) {
		policies, err := orm.ListPolicies(db)
		require.NoError(t, err)
		require.Len(t, policies, 7)

		first := policies[0]
		assert.Equal(t, "POL-2024-1001", first.NumeroPoliza)
		assert.Equal(t, "Juan Pérez", first.Cliente)
		assert.Equal(t, "Seguro de Vida Básico", first.Producto)
		assert.Equal(t, "Vida", first.Tipo)
		assert.Equal(t, "2024-12-03", first.FechaInicio)
		assert.Equal(t, "2025-12-03", first.FechaVencimiento)
		assert.Equal(t, "Activa", first.Estado)
		assert.Empty(t, first.EmailCliente)
	})

	t.Run("GetPolicy", func(t *testing.T) {
		policy, err := orm.GetPolicy(db, 3)
		require.NoError(t, err)
		require.NotNil(t, policy)
		assert.Equal(t, "POL-2024-1003", policy.NumeroPoliza)
		assert.Equal(t, "María García", policy.Cliente)
		assert.Equal(t, "maria.garcia@email.com", policy.EmailCliente)
		assert.Equal(t, "Seguro de Auto Completo", policy.Producto)
		assert.Equal(t, "Cobertura total incluyendo robo y daños propios", policy.Descripcion)
		assert.InDelta(t, 350.0, policy.PrimaMensual, 1e-9)

		missing, err := orm.GetPolicy(db, 99)
		assert.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("PoliciesByCustomer", func(t *testing.T) {
		policies, err := orm.PoliciesByCustomer(db, 1)
		require.NoError(t, err)
		require.Len(t, policies, 2)
		assert.Equal(t, "POL-2024-1002", policies[0].NumeroPoliza)
		assert.Equal(t, "POL-2024-1001", policies[1].NumeroPoliza)
		assert.Empty(t, policies[0].Cliente)

		none, err := orm.PoliciesByCustomer(db, 99)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("PoliciesByType", func(t *testing.T) {
		policies, err := orm.PoliciesByType(db, "auto")
		require.NoError(t, err)
		require.Len(t, policies, 2)
		assert.Equal(t, "POL-2024-1002", policies[0].NumeroPoliza)
		assert.Equal(t, "POL-2024-1003", policies[1].NumeroPoliza)
		assert.Empty(t, policies[0].FechaInicio)
		assert.Equal(t, "Juan Pérez", policies[0].Cliente)
	})

	t.Run("InsuranceProducts", func(t *testing.T) {
		products, err := orm.ListInsuranceProducts(db)
		require.NoError(t, err)
		require.Len(t, products, 8)
		assert.Equal(t, "Seguro de Accidentes Personales", products[0].Nombre)
		assert.Equal(t, "Seguro de Auto Básico", products[1].Nombre)
		assert.Equal(t, "Seguro de Vida Premium", products[7].Nombre)

		product, err := orm.GetInsuranceProduct(db, 5)
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "Hogar", product.Tipo)

		missing, err := orm.GetInsuranceProduct(db, 50)
		assert.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("PolicyHolders", func(t *testing.T) {
		customer, err := orm.GetCustomer(db, 3)
		require.NoError(t, err)
		require.NotNil(t, customer)
		assert.Equal(t, "1978-11-30", customer.FechaNacimiento)
	})

	t.Run("SeedIsIdempotent", func(t *testing.T) {
		require.NoError(t, orm.SeedInsurance(db, now))
		policies, err := orm.ListPolicies(db)
		require.NoError(t, err)
		assert.Len(t, policies, 7)
	})

	t.Run("UniquePolicyNumber", func(t *testing.T) {
		err := db.Omit("Cliente", "Producto").Create(&orm.Policy{
			NumeroPoliza: "POL-2024-1001", ClienteID: 1, ProductoID: 1,
			FechaInicio: "2025-01-01", FechaVencimiento: "2026-01-01",
			PrimaMensual: 10, MontoCobertura: 10, Estado: "Activa",
		}).Error
		assert.Error(t, err)
	})

	t.Run("ForeignKeys", func(t *testing.T) {
		err := db.Omit("Cliente", "Producto").Create(&orm.Policy{
			NumeroPoliza: "POL-2025-0001", ClienteID: 404, ProductoID: 1,
			FechaInicio: "2025-01-01", FechaVencimiento: "2026-01-01",
			PrimaMensual: 10, MontoCobertura: 10, Estado: "Activa",
		}).Error
		assert.Error(t, err)
	})
}

func TestSummarizeInsurance(t *testing.T) {
	db := testutils.SeededDB(t, "insurance", time.Now())

	summary, err := orm.SummarizeInsurance(db)
	require.NoError(t, err)
	assert.Equal(t, int64(8), summary.TotalProducts)
	assert.Equal(t, int64(7), summary.TotalPolicies)
	assert.Equal(t, int64(6), summary.TotalCustomers)
	assert.Equal(t, []orm.CountBy{
		{Name: "Auto", Count: 2},
		{Name: "Hogar", Count: 1},
		{Name: "Salud", Count: 1},
		{Name: "Vida", Count: 3},
	}, summary.PoliciesByType)
}
