package orm_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/va6996/mcpworkshop/orm"
	"github.com/va6996/mcpworkshop/orm/testutils"
)

func TestStoreQueries(t *testing.T) {
	db := testutils.SeededDB(t, "store", time.Now())

	t.Run("ListProducts", func(t *testing.T) {
		products, err := orm.ListProducts(db)
		require.NoError(t, err)
		require.Len(t, products, 10)
		assert.Equal(t, "Audífonos Sony WH-1000XM4", products[0].Nombre)
		assert.Equal(t, "Webcam Logitech C920", products[9].Nombre)
	})

	t.Run("GetProduct", func(t *testing.T) {
		product, err := orm.GetProduct(db, 1)
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "Laptop Dell XPS 15", product.Nombre)
		assert.Equal(t, 8, product.Stock)

		missing, err := orm.GetProduct(db, 999)
		assert.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("ProductsByCategory", func(t *testing.T) {
		products, err := orm.ProductsByCategory(db, "MUEBLES")
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Escritorio Ajustable", products[0].Nombre)
		assert.Equal(t, "Silla Ergonómica Herman Miller", products[1].Nombre)

		products, err = orm.ProductsByCategory(db, "electr")
		require.NoError(t, err)
		assert.Len(t, products, 6)
		assert.InDelta(t, 79.99, products[0].Precio, 1e-9)
	})

	t.Run("ProductsByName", func(t *testing.T) {
		products, err := orm.ProductsByName(db, "laptop")
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Laptop Dell XPS 15", products[0].Nombre)
		assert.Equal(t, "Mochila para Laptop", products[1].Nombre)
	})

	t.Run("ProductsByPrice", func(t *testing.T) {
		products, err := orm.ProductsByPrice(db, 50, 100)
		require.NoError(t, err)
		require.Len(t, products, 3)
		assert.InDelta(t, 79.99, products[0].Precio, 1e-9)
		assert.Equal(t, "Mouse Logitech MX Master", products[2].Nombre)

		products, err = orm.ProductsByPrice(db, 5000, 6000)
		require.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("ProductsInStock", func(t *testing.T) {
		products, err := orm.ProductsInStock(db)
		require.NoError(t, err)
		require.Len(t, products, 10)
		assert.Equal(t, "Mochila para Laptop", products[0].Nombre)
		assert.Equal(t, 5, products[9].Stock)
	})

	t.Run("Customers", func(t *testing.T) {
		customers, err := orm.ListCustomers(db)
		require.NoError(t, err)
		require.Len(t, customers, 6)
		assert.Equal(t, "Ana Martínez", customers[0].Nombre)
		assert.Empty(t, customers[0].FechaNacimiento)

		customer, err := orm.GetCustomer(db, 2)
		require.NoError(t, err)
		require.NotNil(t, customer)
		assert.Equal(t, "maria.garcia@email.com", customer.Email)

		missing, err := orm.GetCustomer(db, 42)
		assert.NoError(t, err)
		assert.Nil(t, missing)

		bogota, err := orm.CustomersByCity(db, "bogot")
		require.NoError(t, err)
		require.Len(t, bogota, 2)
		assert.Equal(t, "Juan Pérez", bogota[0].Nombre)
		assert.Equal(t, "Laura Fernández", bogota[1].Nombre)
	})

	t.Run("UniqueEmail", func(t *testing.T) {
		err := db.Create(&orm.Customer{Nombre: "Otro Juan", Email: "juan.perez@email.com", Ciudad: "Cali"}).Error
		assert.Error(t, err)
	})
}

func TestStoreSummary(t *testing.T) {
	db := testutils.SeededDB(t, "store", time.Now())

	summary, err := orm.StoreSummary(db)
	require.NoError(t, err)
	assert.Equal(t, int64(10), summary.TotalProducts)
	assert.Equal(t, int64(6), summary.TotalCustomers)
	assert.Equal(t, []orm.CountBy{
		{Name: "Accesorios", Count: 1},
		{Name: "Electrónica", Count: 6},
		{Name: "Iluminación", Count: 1},
		{Name: "Muebles", Count: 2},
	}, summary.ProductsByCategory)
	require.Len(t, summary.CustomersByCity, 5)
	assert.Equal(t, orm.CountBy{Name: "Bogotá", Count: 2}, summary.CustomersByCity[1])
}

func TestSeedAndReset(t *testing.T) {
	db := testutils.SetupTestDB(t, "store")

	has, err := orm.HasData(db, "store")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, orm.SeedStore(db))
	require.NoError(t, orm.SeedStore(db))

	products, err := orm.ListProducts(db)
	require.NoError(t, err)
	assert.Len(t, products, 10)

	has, err = orm.HasData(db, "store")
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, orm.Reset(db, "store"))
	has, err = orm.HasData(db, "store")
	require.NoError(t, err)
	assert.False(t, has)

	assert.Error(t, orm.Migrate(db, "warehouse"))
	assert.Error(t, orm.Reset(db, "warehouse"))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := orm.Open("mysql", "whatever")
	assert.EqualError(t, err, "unsupported database driver: mysql")
}

func TestSearch_UnicodeCase(t *testing.T) {
	db := testutils.SetupTestDB(t, "store")
	require.NoError(t, db.Create(&[]orm.Product{
		{Nombre: "Mapa", Precio: 20, Categoria: "ÁFRICA"},
		{Nombre: "Atlas", Precio: 10, Categoria: "áfrica del sur"},
		{Nombre: "Brújula", Precio: 5, Categoria: "Óptica"},
	}).Error)
	require.NoError(t, db.Exec("INSERT INTO productos (nombre, precio, categoria) VALUES (?, ?, NULL)", "Sin categoría", 1.0).Error)
	require.NoError(t, db.Create(&orm.Customer{Nombre: "Lucía", Email: "lucia@email.com", Ciudad: "MEDELLÍN"}).Error)

	t.Run("Category", func(t *testing.T) {
		products, err := orm.ProductsByCategory(db, "África")
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Atlas", products[0].Nombre)
		assert.Equal(t, "Mapa", products[1].Nombre)
	})

	t.Run("Name", func(t *testing.T) {
		products, err := orm.ProductsByName(db, "BRÚJULA")
		require.NoError(t, err)
		require.Len(t, products, 1)
	})

	t.Run("City", func(t *testing.T) {
		customers, err := orm.CustomersByCity(db, "medellín")
		require.NoError(t, err)
		require.Len(t, customers, 1)
		assert.Equal(t, "Lucía", customers[0].Nombre)
	})

	t.Run("NullCategory", func(t *testing.T) {
		products, err := orm.ProductsByCategory(db, "")
		require.NoError(t, err)
		assert.Len(t, products, 3)
	})
}
