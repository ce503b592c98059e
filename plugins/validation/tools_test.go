package validation

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/va6996/mcpworkshop/tools"
)

func TestEmail(t *testing.T) {
	tool := &EmailTool{}

	res := tool.Execute(&EmailInput{Email: "juan.perez@email.com"})
	assert.True(t, res.Valid)
	assert.Equal(t, "juan.perez", res.User)
	assert.Equal(t, "email.com", res.Domain)
	assert.Equal(t, 20, res.Length)

	res = tool.Execute(&EmailInput{Email: "no-es-un-email"})
	assert.False(t, res.Valid)
	assert.Equal(t, "Formato de email inválido", res.Error)

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"valido":false,"error":"Formato de email inválido"}`, string(raw))
}

func TestPassword(t *testing.T) {
	tool := &PasswordTool{}

	t.Run("Strong", func(t *testing.T) {
		res := tool.Execute(&PasswordInput{Password: "Segura#2024"})
		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
		assert.Equal(t, "fuerte", res.Strength)
		assert.Equal(t, 11, res.Length)
	})

	t.Run("Medium", func(t *testing.T) {
		res := tool.Execute(&PasswordInput{Password: "segura2024"})
		assert.False(t, res.Valid)
		assert.Equal(t, []string{"Debe tener al menos una mayúscula", "Debe tener al menos un carácter especial"}, res.Errors)
		assert.Equal(t, "media", res.Strength)
	})

	t.Run("Weak", func(t *testing.T) {
		res := tool.Execute(&PasswordInput{Password: "abc"})
		assert.Len(t, res.Errors, 4)
		assert.Equal(t, "Debe tener al menos 8 caracteres", res.Errors[0])
		assert.Equal(t, "débil", res.Strength)
	})
}

func TestURL(t *testing.T) {
	tool := &URLTool{}

	res := tool.Execute(&URLInput{URL: "https://www.example.com/docs"})
	require.True(t, res.Valid)
	assert.True(t, *res.HasProtocol)
	assert.True(t, *res.HasWWW)
	assert.Equal(t, "www.example", res.Domain)

	res = tool.Execute(&URLInput{URL: "example.org"})
	require.True(t, res.Valid)
	assert.False(t, *res.HasProtocol)
	assert.False(t, *res.HasWWW)
	assert.Equal(t, "example.org", res.Domain)

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"valida":true,"tiene_protocolo":false,"tiene_www":false,"dominio":"example.org"}`, string(raw))

	res = tool.Execute(&URLInput{URL: "no es url"})
	assert.False(t, res.Valid)
	assert.Equal(t, "Formato de URL inválido", res.Error)
}

func TestPhone(t *testing.T) {
	tool := &PhoneTool{}

	res := tool.Execute(&PhoneInput{Phone: "+57 (300) 123-4567", Country: "CO"})
	require.True(t, res.Valid)
	assert.Equal(t, "+573001234567", res.Clean)
	assert.True(t, *res.HasCountryCode)

	res = tool.Execute(&PhoneInput{Phone: "612 345 678", Country: "ES"})
	require.True(t, res.Valid)
	assert.False(t, *res.HasCountryCode)

	res = tool.Execute(&PhoneInput{Phone: "12345", Country: "US"})
	assert.Equal(t, "Formato inválido para país US", res.Error)

	res = tool.Execute(&PhoneInput{Phone: "3001234567", Country: "AR"})
	assert.Equal(t, "País AR no soportado", res.Error)
}

func TestRange(t *testing.T) {
	tool := &RangeTool{}
	execute := func(in *RangeInput) *RangeResult {
		res, err := tool.Execute(in)
		require.NoError(t, err)
		return res
	}

	res := execute(&RangeInput{Value: 25, Min: 0, Max: 200, Inclusive: true})
	require.True(t, res.Valid)
	assert.InDelta(t, 12.5, *res.Percent, 1e-9)

	res = execute(&RangeInput{Value: 1, Min: 0, Max: 3, Inclusive: true})
	assert.InDelta(t, 33.33, *res.Percent, 1e-9)

	res = execute(&RangeInput{Value: -1, Min: 0, Max: 10, Inclusive: true})
	assert.Equal(t, "Valor fuera del rango por abajo", res.Error)

	res = execute(&RangeInput{Value: 11, Min: 0, Max: 10, Inclusive: true})
	assert.Equal(t, "Valor fuera del rango por arriba", res.Error)

	t.Run("ExclusiveBounds", func(t *testing.T) {
		// Only values strictly below the minimum are reported as abajo
		assert.Equal(t, "Valor fuera del rango por arriba", execute(&RangeInput{Value: 0, Min: 0, Max: 10}).Error)
		assert.Equal(t, "Valor fuera del rango por arriba", execute(&RangeInput{Value: 10, Min: 0, Max: 10}).Error)
		assert.Equal(t, "Valor fuera del rango por abajo", execute(&RangeInput{Value: -0.5, Min: 0, Max: 10}).Error)
	})

	t.Run("DegenerateRange", func(t *testing.T) {
		_, err := tool.Execute(&RangeInput{Value: 5, Min: 5, Max: 5, Inclusive: true})
		assert.ErrorIs(t, err, ErrEmptyRange)

		res := execute(&RangeInput{Value: 5, Min: 5, Max: 5})
		assert.False(t, res.Valid)
		assert.Equal(t, "Valor fuera del rango por arriba", res.Error)
	})
}

func TestRegisteredTools(t *testing.T) {
	registry := tools.NewRegistry()
	NewClient(registry)
	ctx := context.Background()

	assert.Len(t, registry.GetTools(), 5)

	out, err := registry.ExecuteTool(ctx, "validar_telefono", map[string]interface{}{"telefono": "300 123 4567"})
	require.NoError(t, err)
	assert.Equal(t, "CO", out.(*PhoneResult).Country)

	out, err = registry.ExecuteTool(ctx, "validar_rango_numerico", map[string]interface{}{
		"valor": 10.0, "minimo": 0.0, "maximo": 10.0, "inclusive": false,
	})
	require.NoError(t, err)
	assert.False(t, out.(*RangeResult).Valid)

	out, err = registry.ExecuteTool(ctx, "validar_rango_numerico", map[string]interface{}{
		"valor": 1.0, "minimo": 1.0, "maximo": 5.0, "inclusive": false,
	})
	require.NoError(t, err)
	assert.Equal(t, "Valor fuera del rango por arriba", out.(*RangeResult).Error)

	_, err = registry.ExecuteTool(ctx, "validar_rango_numerico", map[string]interface{}{
		"valor": 3.0, "minimo": 3.0, "maximo": 3.0,
	})
	assert.ErrorIs(t, err, ErrEmptyRange)

	_, err = registry.ExecuteTool(ctx, "validar_rango_numerico", map[string]interface{}{"valor": 1.0})
	assert.EqualError(t, err, "missing required argument: minimo")
}
