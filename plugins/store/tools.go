package store

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/va6996/mcpworkshop/orm"
	"github.com/va6996/mcpworkshop/tools"
	"gorm.io/gorm"
)

type ProductIDInput struct {
	ProductID int `json:"producto_id"`
}

type CategoryInput struct {
	Category string `json:"categoria"`
}

type NameInput struct {
	Term string `json:"termino"`
}

type PriceRangeInput struct {
	Min float64 `json:"precio_min"`
	Max float64 `json:"precio_max"`
}

type CustomerIDInput struct {
	CustomerID int `json:"cliente_id"`
}

type CityInput struct {
	City string `json:"ciudad"`
}

type empty struct{}

func noInput() *empty { return &empty{} }

// --- Product Tools ---

type ProductTools struct {
	db *gorm.DB
}

func NewProductTools(registry *tools.Registry, db *gorm.DB) *ProductTools {
	t := &ProductTools{db: db}
	if registry == nil {
		return t
	}

	registry.Register(mcp.NewTool("obtener_todos_productos",
		mcp.WithDescription("Obtiene la lista completa de productos de la tienda ordenados por nombre"),
		mcp.WithReadOnlyHintAnnotation(true),
	), tools.Executor(noInput, func(ctx context.Context, _ *empty) ([]orm.Product, error) {
		return t.All(ctx)
	}))

	registry.Register(mcp.NewTool("buscar_producto_por_id",
		mcp.WithDescription("Busca un producto específico por su ID"),
		mcp.WithNumber("producto_id", mcp.Required(), mcp.Description("ID del producto a buscar")),
		mcp.WithReadOnlyHintAnnotation(true),
	), tools.Executor(func() *ProductIDInput { return &ProductIDInput{} },
		func(ctx context.Context, in *ProductIDInput) (*orm.Product, error) {
			return t.ByID(ctx, in.ProductID)
		}))

	registry.Register(mcp.NewTool("buscar_productos_por_categoria",
		mcp.WithDescription("Busca productos por categoría, ordenados por precio"),
		mcp.WithString("categoria", mcp.Required(), mcp.Description("Categoría a buscar (ej: Electrónica, Muebles)")),
		mcp.WithReadOnlyHintAnnotation(true),
	), tools.Executor(func() *CategoryInput { return &CategoryInput{} },
		func(ctx context.Context, in *CategoryInput) ([]orm.Product, error) {
			return orm.ProductsByCategory(t.db.WithContext(ctx), in.Category)
		}))

	registry.Register(mcp.NewTool("buscar_productos_por_nombre",
		mcp.WithDescription("Busca productos cuyo nombre contenga el término indicado"),
		mcp.WithString("termino", mcp.Required(), mcp.Description("Término de búsqueda")),
		mcp.WithReadOnlyHintAnnotation(true),
	), tools.Executor(func() *NameInput { return &NameInput{} },
		func(ctx context.Context, in *NameInput) ([]orm.Product, error) {
			return orm.ProductsByName(t.db.WithContext(ctx), in.Term)
		}))

	registry.Register(mcp.NewTool("buscar_productos_por_precio",
		mcp.WithDescription("Busca productos dentro de un rango de precios"),
		mcp.WithNumber("precio_min", mcp.Required(), mcp.Description("Precio mínimo")),
		mcp.WithNumber("precio_max", mcp.Required(), mcp.Description("Precio máximo")),
		mcp.WithReadOnlyHintAnnotation(true),
	), tools.Executor(func() *PriceRangeInput { return &PriceRangeInput{} },
		func(ctx context.Context, in *PriceRangeInput) ([]orm.Product, error) {
			return t.ByPrice(ctx, in.Min, in.Max)
		}))

	registry.Register(mcp.NewTool("productos_en_stock",
		mcp.WithDescription("Obtiene los productos con stock disponible, de mayor a menor stock"),
		mcp.WithReadOnlyHintAnnotation(true),
	), tools.Executor(noInput, func(ctx context.Context, _ *empty) ([]orm.Product, error) {
		return orm.ProductsInStock(t.db.WithContext(ctx))
	}))

	return t
}

func (t *ProductTools) All(ctx context.Context) ([]orm.Product, error) {
	return orm.ListProducts(t.db.WithContext(ctx))
}

func (t *ProductTools) ByID(ctx context.Context, id int) (*orm.Product, error) {
	return orm.GetProduct(t.db.WithContext(ctx), id)
}

func (t *ProductTools) ByPrice(ctx context.Context, min, max float64) ([]orm.Product, error) {
	return orm.ProductsByPrice(t.db.WithContext(ctx), min, max)
}

// --- Customer Tools ---

// CustomerTools serves the clientes table. The insurance server registers
// the same tools over its own database.
type CustomerTools struct {
	db *gorm.DB
}

// NewCustomerTools registers the customer tools. noun names the customers in
// the tool descriptions.
func NewCustomerTools(registry *tools.Registry, db *gorm.DB, noun string) *CustomerTools {
	t := &CustomerTools{db: db}
	if registry == nil {
		return t
	}

	registry.Register(mcp.NewTool("obtener_todos_clientes",
		mcp.WithDescription("Obtiene la lista completa de "+noun+" ordenados por nombre"),
		mcp.WithReadOnlyHintAnnotation(true),
	), tools.Executor(noInput, func(ctx context.Context, _ *empty) ([]orm.Customer, error) {
		return orm.ListCustomers(t.db.WithContext(ctx))
	}))

	registry.Register(mcp.NewTool("buscar_cliente_por_id",
		mcp.WithDescription("Busca un cliente específico por su ID"),
		mcp.WithNumber("cliente_id", mcp.Required(), mcp.Description("ID del cliente a buscar")),
		mcp.WithReadOnlyHintAnnotation(true),
	), tools.Executor(func() *CustomerIDInput { return &CustomerIDInput{} },
		func(ctx context.Context, in *CustomerIDInput) (*orm.Customer, error) {
			return t.ByID(ctx, in.CustomerID)
		}))

	registry.Register(mcp.NewTool("buscar_clientes_por_ciudad",
		mcp.WithDescription("Busca "+noun+" por ciudad"),
		mcp.WithString("ciudad", mcp.Required(), mcp.Description("Ciudad a buscar")),
		mcp.WithReadOnlyHintAnnotation(true),
	), tools.Executor(func() *CityInput { return &CityInput{} },
		func(ctx context.Context, in *CityInput) ([]orm.Customer, error) {
			return orm.CustomersByCity(t.db.WithContext(ctx), in.City)
		}))

	return t
}

func (t *CustomerTools) ByID(ctx context.Context, id int) (*orm.Customer, error) {
	return orm.GetCustomer(t.db.WithContext(ctx), id)
}
