package insurance

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/va6996/mcpworkshop/orm"
	"github.com/va6996/mcpworkshop/tools"
	"gorm.io/gorm"
)

type PolicyIDInput struct {
	PolicyID int `json:"poliza_id"`
}

type CustomerIDInput struct {
	CustomerID int `json:"cliente_id"`
}

type TypeInput struct {
	Type string `json:"tipo"`
}

type ProductIDInput struct {
	ProductID int `json:"producto_id"`
}

type empty struct{}

// --- Policy Tools ---

type PolicyTools struct {
	db *gorm.DB
}

func NewPolicyTools(registry *tools.Registry, db *gorm.DB) *PolicyTools {
	t := &PolicyTools{db: db}
	if registry == nil {
		return t
	}

	registry.Register(mcp.NewTool("obtener_todas_polizas",
		mcp.WithDescription("Obtiene la lista completa de pólizas con su cliente y producto"),
		mcp.WithReadOnlyHintAnnotation(true),
	), tools.Executor(func() *empty { return &empty{} },
		func(ctx context.Context, _ *empty) ([]orm.PolicyView, error) {
			return orm.ListPolicies(t.db.WithContext(ctx))
		}))

	registry.Register(mcp.NewTool("buscar_poliza_por_id",
		mcp.WithDescription("Busca una póliza por su ID e incluye el email del cliente y la descripción del producto"),
		mcp.WithNumber("poliza_id", mcp.Required(), mcp.Description("ID de la póliza")),
		mcp.WithReadOnlyHintAnnotation(true),
	), tools.Executor(func() *PolicyIDInput { return &PolicyIDInput{} },
		func(ctx context.Context, in *PolicyIDInput) (*orm.PolicyView, error) {
			return t.ByID(ctx, in.PolicyID)
		}))

	registry.Register(mcp.NewTool("buscar_polizas_por_cliente",
		mcp.WithDescription("Obtiene las pólizas de un cliente, de la más reciente a la más antigua"),
		mcp.WithNumber("cliente_id", mcp.Required(), mcp.Description("ID del cliente")),
		mcp.WithReadOnlyHintAnnotation(true),
	), tools.Executor(func() *CustomerIDInput { return &CustomerIDInput{} },
		func(ctx context.Context, in *CustomerIDInput) ([]orm.PolicyView, error) {
			return orm.PoliciesByCustomer(t.db.WithContext(ctx), in.CustomerID)
		}))

	registry.Register(mcp.NewTool("buscar_polizas_por_tipo",
		mcp.WithDescription("Busca pólizas por tipo de seguro (Vida, Auto, Hogar, Salud, Accidentes)"),
		mcp.WithString("tipo", mcp.Required(), mcp.Description("Tipo de seguro")),
		mcp.WithReadOnlyHintAnnotation(true),
	), tools.Executor(func() *TypeInput { return &TypeInput{} },
		func(ctx context.Context, in *TypeInput) ([]orm.PolicyView, error) {
			return orm.PoliciesByType(t.db.WithContext(ctx), in.Type)
		}))

	return t
}

func (t *PolicyTools) ByID(ctx context.Context, id int) (*orm.PolicyView, error) {
	return orm.GetPolicy(t.db.WithContext(ctx), id)
}

// --- Product Tools ---

type ProductTools struct {
	db *gorm.DB
}

func NewProductTools(registry *tools.Registry, db *gorm.DB) *ProductTools {
	t := &ProductTools{db: db}
	if registry == nil {
		return t
	}

	registry.Register(mcp.NewTool("obtener_productos_seguros",
		mcp.WithDescription("Obtiene todos los productos de seguros disponibles"),
		mcp.WithReadOnlyHintAnnotation(true),
	), tools.Executor(func() *empty { return &empty{} },
		func(ctx context.Context, _ *empty) ([]orm.InsuranceProduct, error) {
			return orm.ListInsuranceProducts(t.db.WithContext(ctx))
		}))

	registry.Register(mcp.NewTool("buscar_producto_seguro",
		mcp.WithDescription("Busca un producto de seguro específico por su ID"),
		mcp.WithNumber("producto_id", mcp.Required(), mcp.Description("ID del producto de seguro")),
		mcp.WithReadOnlyHintAnnotation(true),
	), tools.Executor(func() *ProductIDInput { return &ProductIDInput{} },
		func(ctx context.Context, in *ProductIDInput) (*orm.InsuranceProduct, error) {
			return orm.GetInsuranceProduct(t.db.WithContext(ctx), in.ProductID)
		}))

	return t
}
