package prompts

import (
	"bytes"
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/va6996/mcpworkshop/tools"
)

// Focuses maps revisar_codigo's enfoque to the review brief
var Focuses = map[string]string{
	"general":        "calidad general del código, buenas prácticas y posibles mejoras",
	"seguridad":      "vulnerabilidades de seguridad y mejores prácticas de seguridad",
	"rendimiento":    "optimizaciones de rendimiento y eficiencia del código",
	"mantenibilidad": "legibilidad, mantenibilidad y documentación del código",
}

// Levels maps explicar_codigo's nivel to the audience description
var Levels = map[string]string{
	"principiante": "alguien que está aprendiendo programación",
	"intermedio":   "un desarrollador con experiencia básica",
	"avanzado":     "un desarrollador experimentado",
}

// PromptTemplate renders one named template into a single user message
type PromptTemplate struct {
	Name        string
	Description string
	defaults    map[string]string
	prepare     func(args map[string]string)
}

func newPromptTemplate(registry *tools.Registry, p *PromptTemplate, args ...mcp.PromptOption) *PromptTemplate {
	if registry == nil {
		return p
	}
	opts := append([]mcp.PromptOption{mcp.WithPromptDescription(p.Description)}, args...)
	registry.RegisterPrompt(mcp.NewPrompt(p.Name, opts...),
		func(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error) {
			text, err := p.Render(args)
			if err != nil {
				return nil, err
			}
			return mcp.NewGetPromptResult(p.Description, []mcp.PromptMessage{
				mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
			}), nil
		})
	return p
}

// Render fills the template. Missing optional arguments take their defaults.
func (p *PromptTemplate) Render(args map[string]string) (string, error) {
	data := make(map[string]string, len(p.defaults)+len(args))
	for k, v := range p.defaults {
		data[k] = v
	}
	for k, v := range args {
		if v != "" {
			data[k] = v
		}
	}
	if p.prepare != nil {
		p.prepare(data)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, p.Name+".tmpl", data); err != nil {
		return "", fmt.Errorf("failed to render prompt %s: %w", p.Name, err)
	}
	return buf.String(), nil
}

func NewReviewPrompt(registry *tools.Registry) *PromptTemplate {
	return newPromptTemplate(registry, &PromptTemplate{
		Name:        "revisar_codigo",
		Description: "Genera un prompt para revisar código",
		defaults:    map[string]string{"enfoque": "general"},
		prepare: func(args map[string]string) {
			focus, ok := Focuses[args["enfoque"]]
			if !ok {
				focus = Focuses["general"]
			}
			args["enfoque"] = focus
		},
	},
		mcp.WithArgument("lenguaje", mcp.RequiredArgument(), mcp.ArgumentDescription("Lenguaje de programación (python, go, javascript, etc.)")),
		mcp.WithArgument("codigo", mcp.RequiredArgument(), mcp.ArgumentDescription("Código a revisar")),
		mcp.WithArgument("enfoque", mcp.ArgumentDescription("Aspecto en el que enfocarse (general, seguridad, rendimiento, mantenibilidad)")),
	)
}

func NewTestsPrompt(registry *tools.Registry) *PromptTemplate {
	return newPromptTemplate(registry, &PromptTemplate{
		Name:        "generar_tests",
		Description: "Genera un prompt para crear tests unitarios",
		defaults:    map[string]string{"lenguaje": "python"},
	},
		mcp.WithArgument("funcion_nombre", mcp.RequiredArgument(), mcp.ArgumentDescription("Nombre de la función a testear")),
		mcp.WithArgument("funcion_codigo", mcp.RequiredArgument(), mcp.ArgumentDescription("Código de la función")),
		mcp.WithArgument("lenguaje", mcp.ArgumentDescription("Lenguaje de programación")),
	)
}

func NewAPIDocsPrompt(registry *tools.Registry) *PromptTemplate {
	return newPromptTemplate(registry, &PromptTemplate{
		Name:        "documentar_api",
		Description: "Genera documentación para un endpoint de API",
	},
		mcp.WithArgument("endpoint", mcp.RequiredArgument(), mcp.ArgumentDescription("Ruta del endpoint (ej: /api/users)")),
		mcp.WithArgument("metodo", mcp.RequiredArgument(), mcp.ArgumentDescription("Método HTTP (GET, POST, etc.)")),
		mcp.WithArgument("descripcion", mcp.RequiredArgument(), mcp.ArgumentDescription("Descripción breve del endpoint")),
	)
}

func NewExplainPrompt(registry *tools.Registry) *PromptTemplate {
	return newPromptTemplate(registry, &PromptTemplate{
		Name:        "explicar_codigo",
		Description: "Genera un prompt para explicar código",
		defaults:    map[string]string{"nivel": "intermedio"},
		prepare: func(args map[string]string) {
			audience, ok := Levels[args["nivel"]]
			if !ok {
				audience = Levels["intermedio"]
			}
			args["audiencia"] = audience
		},
	},
		mcp.WithArgument("codigo", mcp.RequiredArgument(), mcp.ArgumentDescription("Código a explicar")),
		mcp.WithArgument("nivel", mcp.ArgumentDescription("Nivel del destinatario (principiante, intermedio, avanzado)")),
	)
}

func NewRefactorPrompt(registry *tools.Registry) *PromptTemplate {
	return newPromptTemplate(registry, &PromptTemplate{
		Name:        "refactorizar_codigo",
		Description: "Genera un prompt para refactorizar código",
		defaults:    map[string]string{"objetivo": "legibilidad"},
	},
		mcp.WithArgument("codigo", mcp.RequiredArgument(), mcp.ArgumentDescription("Código a refactorizar")),
		mcp.WithArgument("objetivo", mcp.ArgumentDescription("Objetivo del refactoring (legibilidad, rendimiento, modularidad)")),
	)
}
