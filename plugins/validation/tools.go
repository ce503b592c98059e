package validation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/va6996/mcpworkshop/tools"
)

// ErrEmptyRange is returned when a value falls inside a range whose bounds are equal
var ErrEmptyRange = errors.New("El rango no tiene amplitud: minimo y maximo son iguales")

var (
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	urlPattern    = regexp.MustCompile(`^(https?://)?(www\.)?([a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}(/.*)?$`)
	domainPattern = regexp.MustCompile(`([a-zA-Z0-9-]+\.[a-zA-Z]{2,})`)
	phoneNoise    = regexp.MustCompile(`[\s\-\(\)]`)

	upper   = regexp.MustCompile(`[A-Z]`)
	lower   = regexp.MustCompile(`[a-z]`)
	digit   = regexp.MustCompile(`\d`)
	special = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// PhonePatterns maps supported country codes to their number format
var PhonePatterns = map[string]*regexp.Regexp{
	"CO": regexp.MustCompile(`^(\+57)?[0-9]{10}$`),
	"US": regexp.MustCompile(`^(\+1)?[0-9]{10}$`),
	"ES": regexp.MustCompile(`^(\+34)?[0-9]{9}$`),
	"MX": regexp.MustCompile(`^(\+52)?[0-9]{10}$`),
}

// --- Email Tool ---

type EmailInput struct {
	Email string `json:"email"`
}

type EmailResult struct {
	Valid  bool   `json:"valido"`
	User   string `json:"usuario,omitempty"`
	Domain string `json:"dominio,omitempty"`
	Length int    `json:"longitud,omitempty"`
	Error  string `json:"error,omitempty"`
}

type EmailTool struct{}

func NewEmailTool(registry *tools.Registry) *EmailTool {
	t := &EmailTool{}
	if registry == nil {
		return t
	}

	registry.Register(mcp.NewTool("validar_email",
		mcp.WithDescription("Valida un email y retorna información sobre su estructura"),
		mcp.WithString("email", mcp.Required(), mcp.Description("Dirección de email a validar")),
		mcp.WithReadOnlyHintAnnotation(true),
	), tools.Executor(func() *EmailInput { return &EmailInput{} },
		func(ctx context.Context, in *EmailInput) (*EmailResult, error) {
			return t.Execute(in), nil
		}))
	return t
}

func (t *EmailTool) Execute(in *EmailInput) *EmailResult {
	if !emailPattern.MatchString(in.Email) {
		return &EmailResult{Error: "Formato de email inválido"}
	}
	user, domain, _ := strings.Cut(in.Email, "@")
	return &EmailResult{
		Valid:  true,
		User:   user,
		Domain: domain,
		Length: utf8.RuneCountInString(in.Email),
	}
}

// --- Password Tool ---

type PasswordInput struct {
	Password string `json:"password"`
}

type PasswordResult struct {
	Valid    bool     `json:"valida"`
	Errors   []string `json:"errores"`
	Strength string   `json:"fortaleza"`
	Length   int      `json:"longitud"`
}

type PasswordTool struct{}

func NewPasswordTool(registry *tools.Registry) *PasswordTool {
	t := &PasswordTool{}
	if registry == nil {
		return t
	}

	registry.Register(mcp.NewTool("validar_password",
		mcp.WithDescription("Valida la fortaleza de una contraseña: mínimo 8 caracteres, mayúscula, minúscula, número y carácter especial"),
		mcp.WithString("password", mcp.Required(), mcp.Description("Contraseña a validar")),
		mcp.WithReadOnlyHintAnnotation(true),
	), tools.Executor(func() *PasswordInput { return &PasswordInput{} },
		func(ctx context.Context, in *PasswordInput) (*PasswordResult, error) {
			return t.Execute(in), nil
		}))
	return t
}

func (t *PasswordTool) Execute(in *PasswordInput) *PasswordResult {
	length := utf8.RuneCountInString(in.Password)
	errs := make([]string, 0)
	if length < 8 {
		errs = append(errs, "Debe tener al menos 8 caracteres")
	}
	if !upper.MatchString(in.Password) {
		errs = append(errs, "Debe tener al menos una mayúscula")
	}
	if !lower.MatchString(in.Password) {
		errs = append(errs, "Debe tener al menos una minúscula")
	}
	if !digit.MatchString(in.Password) {
		errs = append(errs, "Debe tener al menos un número")
	}
	if !special.MatchString(in.Password) {
		errs = append(errs, "Debe tener al menos un carácter especial")
	}

	strength := "débil"
	switch {
	case len(errs) == 0:
		strength = "fuerte"
	case len(errs) <= 2:
		strength = "media"
	}

	return &PasswordResult{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Strength: strength,
		Length:   length,
	}
}

// --- URL Tool ---

type URLInput struct {
	URL string `json:"url"`
}

type URLResult struct {
	Valid       bool   `json:"valida"`
	HasProtocol *bool  `json:"tiene_protocolo,omitempty"`
	HasWWW      *bool  `json:"tiene_www,omitempty"`
	Domain      string `json:"dominio,omitempty"`
	Error       string `json:"error,omitempty"`
}

type URLTool struct{}

func NewURLTool(registry *tools.Registry) *URLTool {
	t := &URLTool{}
	if registry == nil {
		return t
	}

	registry.Register(mcp.NewTool("validar_url",
		mcp.WithDescription("Valida una URL y extrae sus componentes"),
		mcp.WithString("url", mcp.Required(), mcp.Description("URL a validar")),
		mcp.WithReadOnlyHintAnnotation(true),
	), tools.Executor(func() *URLInput { return &URLInput{} },
		func(ctx context.Context, in *URLInput) (*URLResult, error) {
			return t.Execute(in), nil
		}))
	return t
}

func (t *URLTool) Execute(in *URLInput) *URLResult {
	if !urlPattern.MatchString(in.URL) {
		return &URLResult{Error: "Formato de URL inválido"}
	}
	domain := "desconocido"
	if m := domainPattern.FindStringSubmatch(in.URL); m != nil {
		domain = m[1]
	}
	return &URLResult{
		Valid:       true,
		HasProtocol: boolPtr(strings.HasPrefix(in.URL, "http://") || strings.HasPrefix(in.URL, "https://")),
		HasWWW:      boolPtr(strings.Contains(in.URL, "www.")),
		Domain:      domain,
	}
}

// --- Phone Tool ---

type PhoneInput struct {
	Phone   string `json:"telefono"`
	Country string `json:"pais"`
}

type PhoneResult struct {
	Valid          bool   `json:"valido"`
	Country        string `json:"pais,omitempty"`
	HasCountryCode *bool  `json:"tiene_codigo_pais,omitempty"`
	Clean          string `json:"telefono_limpio,omitempty"`
	Error          string `json:"error,omitempty"`
}

type PhoneTool struct{}

func NewPhoneTool(registry *tools.Registry) *PhoneTool {
	t := &PhoneTool{}
	if registry == nil {
		return t
	}

	registry.Register(mcp.NewTool("validar_telefono",
		mcp.WithDescription("Valida un número de teléfono para un país (CO, US, ES, MX)"),
		mcp.WithString("telefono", mcp.Required(), mcp.Description("Número de teléfono a validar")),
		mcp.WithString("pais", mcp.DefaultString("CO"), mcp.Description("Código de país (CO, US, ES, MX)")),
		mcp.WithReadOnlyHintAnnotation(true),
	), tools.Executor(func() *PhoneInput { return &PhoneInput{Country: "CO"} },
		func(ctx context.Context, in *PhoneInput) (*PhoneResult, error) {
			return t.Execute(in), nil
		}))
	return t
}

func (t *PhoneTool) Execute(in *PhoneInput) *PhoneResult {
	clean := phoneNoise.ReplaceAllString(in.Phone, "")
	pattern, ok := PhonePatterns[in.Country]
	if !ok {
		return &PhoneResult{Error: fmt.Sprintf("País %s no soportado", in.Country)}
	}
	if !pattern.MatchString(clean) {
		return &PhoneResult{Error: fmt.Sprintf("Formato inválido para país %s", in.Country)}
	}
	return &PhoneResult{
		Valid:          true,
		Country:        in.Country,
		HasCountryCode: boolPtr(strings.HasPrefix(clean, "+")),
		Clean:          clean,
	}
}

// --- Range Tool ---

type RangeInput struct {
	Value     float64
	Min       float64
	Max       float64
	Inclusive bool
}

type RangeResult struct {
	Valid   bool     `json:"valido"`
	Percent *float64 `json:"porcentaje_en_rango,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type RangeTool struct{}

func NewRangeTool(registry *tools.Registry) *RangeTool {
	t := &RangeTool{}
	if registry == nil {
		return t
	}

	registry.Register(mcp.NewTool("validar_rango_numerico",
		mcp.WithDescription("Valida que un número esté dentro de un rango y calcula su posición porcentual"),
		mcp.WithNumber("valor", mcp.Required(), mcp.Description("Número a validar")),
		mcp.WithNumber("minimo", mcp.Required(), mcp.Description("Valor mínimo del rango")),
		mcp.WithNumber("maximo", mcp.Required(), mcp.Description("Valor máximo del rango")),
		mcp.WithBoolean("inclusive", mcp.DefaultBool(true), mcp.Description("Si los extremos están incluidos")),
		mcp.WithReadOnlyHintAnnotation(true),
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		in := &RangeInput{Inclusive: true}
		var err error
		if in.Value, err = tools.Float(args, "valor"); err != nil {
			return nil, err
		}
		if in.Min, err = tools.Float(args, "minimo"); err != nil {
			return nil, err
		}
		if in.Max, err = tools.Float(args, "maximo"); err != nil {
			return nil, err
		}
		if raw, ok := args["inclusive"]; ok {
			inclusive, isBool := raw.(bool)
			if !isBool {
				return nil, fmt.Errorf("argument inclusive must be a boolean")
			}
			in.Inclusive = inclusive
		}
		return t.Execute(in)
	})
	return t
}

func (t *RangeTool) Execute(in *RangeInput) (*RangeResult, error) {
	valid := in.Min < in.Value && in.Value < in.Max
	if in.Inclusive {
		valid = in.Min <= in.Value && in.Value <= in.Max
	}

	if !valid {
		side := "arriba"
		if in.Value < in.Min {
			side = "abajo"
		}
		return &RangeResult{Error: "Valor fuera del rango por " + side}, nil
	}

	if in.Max == in.Min {
		return nil, ErrEmptyRange
	}
	percent := math.Round((in.Value-in.Min)/(in.Max-in.Min)*100*100) / 100
	return &RangeResult{Valid: true, Percent: &percent}, nil
}
