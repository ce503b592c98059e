package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/va6996/mcpworkshop/mcpclient"
)

func newClientCmd(c *cli) *cobra.Command {
	var url string
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Discover and call the tools of the math server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClient(cmd.Context(), cmd.OutOrStdout(), url)
		},
	}
	cmd.Flags().StringVar(&url, "url", "http://localhost:8001/mcp", "streamable HTTP endpoint of the math server")
	return cmd
}

func runClient(ctx context.Context, out io.Writer, url string) error {
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "Cliente MCP - Descubrimiento de Herramientas")
	fmt.Fprint(out, rule+"\n\n")
	fmt.Fprintln(out, "Conectando al servidor de matemáticas...")

	client, err := mcpclient.Connect(ctx, mcpclient.ServerConfig{Name: "math", Transport: mcpclient.TransportHTTP, URL: url})
	if err != nil {
		fmt.Fprintf(out, "\n❌ Error al conectar: %v\n", err)
		fmt.Fprintf(out, "Verifica que el servidor esté corriendo en %s\n", url)
		return err
	}
	defer client.Close()

	tools, err := client.ListTools(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\n✅ Conectado exitosamente")
	fmt.Fprintf(out, "📋 Herramientas disponibles: %d\n\n", len(tools))
	available := map[string]bool{}
	for i, tool := range tools {
		available[tool.Name] = true
		fmt.Fprintf(out, "%d. %s\n", i+1, tool.Name)
		fmt.Fprintf(out, "   Descripción: %s\n\n", tool.Description)
	}

	fmt.Fprintln(out, "\n"+rule)
	fmt.Fprintln(out, "Invocación de Herramientas")
	fmt.Fprint(out, rule+"\n\n")
	for _, call := range []struct {
		name string
		a, b float64
	}{{"add", 10, 25}, {"multiply", 7, 8}} {
		if !available[call.name] {
			continue
		}
		fmt.Fprintf(out, "Invocando herramienta '%s' con a=%v, b=%v...\n", call.name, call.a, call.b)
		res, err := client.CallTool(ctx, call.name, map[string]interface{}{"a": call.a, "b": call.b})
		if err != nil {
			fmt.Fprintf(out, "❌ Error: %v\n\n", err)
			continue
		}
		fmt.Fprintf(out, "✅ Resultado: %s\n\n", pretty(res))
	}

	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "Cliente finalizado")
	fmt.Fprintln(out, rule)
	return nil
}

// pretty indents JSON tool output and leaves anything else alone
func pretty(s string) string {
	if !gjson.Valid(s) {
		return s
	}
	return strings.TrimSpace(gjson.Get(s, "@pretty").String())
}
