package text

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/va6996/mcpworkshop/tools"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	sentenceEnd = regexp.MustCompile(`[.!?]+`)
	punctuation = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	word        = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

// Operations accepted by transformar_texto
var Operations = []string{"mayusculas", "minusculas", "titulo", "invertir"}

// --- Analyze Tool ---

type AnalyzeInput struct {
	Text string `json:"texto"`
}

type Stats struct {
	Words           int `json:"palabras"`
	Characters      int `json:"caracteres"`
	CharactersNoSpc int `json:"caracteres_sin_espacios"`
	Sentences       int `json:"oraciones"`
	Paragraphs      int `json:"parrafos"`
}

type AnalyzeTool struct{}

func NewAnalyzeTool(registry *tools.Registry) *AnalyzeTool {
	t := &AnalyzeTool{}
	if registry == nil {
		return t
	}

	registry.Register(mcp.NewTool("analizar_texto",
		mcp.WithDescription("Analiza un texto y retorna estadísticas completas: palabras, caracteres, oraciones y párrafos"),
		mcp.WithString("texto", mcp.Required(), mcp.Description("Texto a analizar")),
		mcp.WithReadOnlyHintAnnotation(true),
	), tools.Executor(func() *AnalyzeInput { return &AnalyzeInput{} },
		func(ctx context.Context, in *AnalyzeInput) (*Stats, error) {
			return t.Execute(in), nil
		}))
	return t
}

func (t *AnalyzeTool) Execute(in *AnalyzeInput) *Stats {
	paragraphs := 0
	for _, p := range strings.Split(in.Text, "\n\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs++
		}
	}
	return &Stats{
		Words:           len(strings.Fields(in.Text)),
		Characters:      utf8.RuneCountInString(in.Text),
		CharactersNoSpc: utf8.RuneCountInString(strings.ReplaceAll(in.Text, " ", "")),
		Sentences:       max(len(sentenceEnd.FindAllString(in.Text, -1)), 1),
		Paragraphs:      max(paragraphs, 1),
	}
}

// --- Transform Tool ---

type TransformInput struct {
	Text      string `json:"texto"`
	Operation string `json:"operacion"`
}

type TransformTool struct{}

func NewTransformTool(registry *tools.Registry) *TransformTool {
	t := &TransformTool{}
	if registry == nil {
		return t
	}

	registry.Register(mcp.NewTool("transformar_texto",
		mcp.WithDescription("Transforma texto según la operación especificada"),
		mcp.WithString("texto", mcp.Required(), mcp.Description("Texto a transformar")),
		mcp.WithString("operacion", mcp.Required(), mcp.Enum(Operations...),
			mcp.Description("Tipo de transformación (mayusculas, minusculas, titulo, invertir)")),
		mcp.WithReadOnlyHintAnnotation(true),
	), tools.Executor(func() *TransformInput { return &TransformInput{} },
		func(ctx context.Context, in *TransformInput) (string, error) {
			return t.Execute(in)
		}))
	return t
}

func (t *TransformTool) Execute(in *TransformInput) (string, error) {
	switch in.Operation {
	case "mayusculas":
		return cases.Upper(language.Spanish).String(in.Text), nil
	case "minusculas":
		return cases.Lower(language.Spanish).String(in.Text), nil
	case "titulo":
		return cases.Title(language.Spanish).String(in.Text), nil
	case "invertir":
		runes := []rune(in.Text)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return string(runes), nil
	}
	return "", fmt.Errorf("Operación debe ser una de: %s", strings.Join(Operations, ", "))
}

// --- Search Tool ---

type SearchInput struct {
	Text          string `json:"texto"`
	Pattern       string `json:"patron"`
	CaseSensitive bool   `json:"case_sensitive"`
}

type SearchResult struct {
	Found     bool  `json:"encontrado"`
	Total     int   `json:"total_coincidencias"`
	Positions []int `json:"posiciones"`
}

type SearchTool struct{}

func NewSearchTool(registry *tools.Registry) *SearchTool {
	t := &SearchTool{}
	if registry == nil {
		return t
	}

	registry.Register(mcp.NewTool("buscar_en_texto",
		mcp.WithDescription("Busca un patrón en el texto y retorna las posiciones de cada coincidencia"),
		mcp.WithString("texto", mcp.Required(), mcp.Description("Texto donde buscar")),
		mcp.WithString("patron", mcp.Required(), mcp.Description("Patrón a buscar")),
		mcp.WithBoolean("case_sensitive", mcp.DefaultBool(false),
			mcp.Description("Si la búsqueda distingue mayúsculas/minúsculas")),
		mcp.WithReadOnlyHintAnnotation(true),
	), tools.Executor(func() *SearchInput { return &SearchInput{} },
		func(ctx context.Context, in *SearchInput) (*SearchResult, error) {
			return t.Execute(in), nil
		}))
	return t
}

// Execute finds every occurrence of the pattern, overlapping ones included.
// Positions are code point offsets.
func (t *SearchTool) Execute(in *SearchInput) *SearchResult {
	haystack, needle := in.Text, in.Pattern
	if !in.CaseSensitive {
		haystack, needle = strings.ToLower(haystack), strings.ToLower(needle)
	}
	h, n := []rune(haystack), []rune(needle)

	positions := make([]int, 0)
	for i := 0; i+len(n) <= len(h); i++ {
		if string(h[i:i+len(n)]) == needle {
			positions = append(positions, i)
		}
	}
	return &SearchResult{
		Found:     len(positions) > 0,
		Total:     len(positions),
		Positions: positions,
	}
}

// --- Clean Tool ---

type CleanInput struct {
	Text              string `json:"texto"`
	RemoveExtraSpaces bool   `json:"remover_espacios_extra"`
	RemovePunctuation bool   `json:"remover_puntuacion"`
}

type CleanTool struct{}

func NewCleanTool(registry *tools.Registry) *CleanTool {
	t := &CleanTool{}
	if registry == nil {
		return t
	}

	registry.Register(mcp.NewTool("limpiar_texto",
		mcp.WithDescription("Limpia un texto removiendo espacios extra y, opcionalmente, signos de puntuación"),
		mcp.WithString("texto", mcp.Required(), mcp.Description("Texto a limpiar")),
		mcp.WithBoolean("remover_espacios_extra", mcp.DefaultBool(true), mcp.Description("Eliminar espacios múltiples")),
		mcp.WithBoolean("remover_puntuacion", mcp.DefaultBool(false), mcp.Description("Eliminar signos de puntuación")),
		mcp.WithReadOnlyHintAnnotation(true),
	), tools.Executor(func() *CleanInput { return &CleanInput{RemoveExtraSpaces: true} },
		func(ctx context.Context, in *CleanInput) (string, error) {
			return t.Execute(in), nil
		}))
	return t
}

func (t *CleanTool) Execute(in *CleanInput) string {
	out := strings.TrimSpace(in.Text)
	if in.RemoveExtraSpaces {
		out = strings.Join(strings.Fields(out), " ")
	}
	if in.RemovePunctuation {
		out = punctuation.ReplaceAllString(out, "")
	}
	return out
}

// --- Unique Words Tool ---

type UniqueWordsInput struct {
	Text      string `json:"texto"`
	MinLength int    `json:"min_longitud"`
}

type UniqueWordsTool struct{}

func NewUniqueWordsTool(registry *tools.Registry) *UniqueWordsTool {
	t := &UniqueWordsTool{}
	if registry == nil {
		return t
	}

	registry.Register(mcp.NewTool("extraer_palabras_unicas",
		mcp.WithDescription("Extrae las palabras únicas del texto, ordenadas alfabéticamente"),
		mcp.WithString("texto", mcp.Required(), mcp.Description("Texto del cual extraer palabras")),
		mcp.WithNumber("min_longitud", mcp.DefaultNumber(1), mcp.Description("Longitud mínima de palabras a incluir")),
		mcp.WithReadOnlyHintAnnotation(true),
	), tools.Executor(func() *UniqueWordsInput { return &UniqueWordsInput{MinLength: 1} },
		func(ctx context.Context, in *UniqueWordsInput) ([]string, error) {
			return t.Execute(in), nil
		}))
	return t
}

func (t *UniqueWordsTool) Execute(in *UniqueWordsInput) []string {
	seen := make(map[string]struct{})
	for _, w := range word.FindAllString(strings.ToLower(in.Text), -1) {
		if utf8.RuneCountInString(w) >= in.MinLength {
			seen[w] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for w := range seen {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
