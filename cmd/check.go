package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/va6996/mcpworkshop/agents"
	"github.com/va6996/mcpworkshop/bootstrap"
	"github.com/va6996/mcpworkshop/config"
	"github.com/va6996/mcpworkshop/mcpclient"
)

type checkResult struct {
	name string
	ok   bool
}

func newCheckCmd(c *cli) *cobra.Command {
	var url, api, profile string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the MCP server, the agent and the REST API end to end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if profile == "" {
				profile = c.cfg.Agent.Profile
			}
			if url == "" {
				url = c.cfg.Agent.MCPURL
			}
			return runCheck(cmd.Context(), cmd.OutOrStdout(), c.cfg, profile, url, api)
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "MCP endpoint (defaults to MCP_SERVER_URL)")
	cmd.Flags().StringVar(&api, "api", "http://localhost:8000", "base URL of the REST API")
	cmd.Flags().StringVar(&profile, "profile", "", "agent profile (defaults to AGENT_PROFILE)")
	return cmd
}

func runCheck(ctx context.Context, out io.Writer, cfg *config.Config, profile, url, api string) error {
	fmt.Fprintln(out, "\n"+rule)
	fmt.Fprintln(out, "SUITE DE TESTING - Proyecto Final MCP Workshop")
	fmt.Fprintln(out, rule)

	results := []checkResult{
		{name: "Servidor MCP"},
		{name: "Agente Init"},
		{name: "Agente Queries"},
		{name: "API REST"},
	}

	results[0].ok = checkMCPServer(ctx, out, url)
	if !results[0].ok {
		fmt.Fprintln(out, "\n⚠️  Tests restantes requieren que el servidor MCP esté corriendo")
		return summarize(out, results)
	}

	agent, ok := checkAgentInit(ctx, out, cfg, profile, url)
	results[1].ok = ok
	if ok {
		results[2].ok = checkAgentQueries(ctx, out, agent, firstN(agent.Profile.DemoQuestions, 2))
	}

	question := "¿Qué pólizas de vida están activas?"
	if agent != nil && agent.Profile.Name != "insurance" && len(agent.Profile.DemoQuestions) > 0 {
		question = agent.Profile.DemoQuestions[0]
	}
	results[3].ok = checkAPI(ctx, out, api, question)

	return summarize(out, results)
}

func header(out io.Writer, title string) {
	fmt.Fprintln(out, "\n"+rule)
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, rule)
}

func checkMCPServer(ctx context.Context, out io.Writer, url string) bool {
	header(out, "Test 1: Servidor MCP")

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	client, err := mcpclient.Connect(ctx, mcpclient.ServerConfig{Name: "check", Transport: mcpclient.TransportHTTP, URL: url})
	if err != nil {
		fmt.Fprintf(out, "❌ Error al conectar con servidor MCP: %v\n", err)
		fmt.Fprintln(out, "   Ejecuta: workshop serve insurance")
		return false
	}
	defer client.Close()

	tools, err := client.ListTools(ctx)
	if err != nil {
		fmt.Fprintf(out, "❌ Error al listar herramientas: %v\n", err)
		return false
	}
	fmt.Fprintln(out, "✅ Servidor MCP disponible")
	fmt.Fprintf(out, "   Herramientas encontradas: %d\n", len(tools))
	return true
}

func checkAgentInit(ctx context.Context, out io.Writer, cfg *config.Config, profile, url string) (*agents.Agent, bool) {
	header(out, "Test 2: Inicialización del Agente")

	app, err := bootstrap.SetupProfile(ctx, cfg, profile, url)
	if err != nil {
		fmt.Fprintf(out, "❌ Error al inicializar agente: %v\n", err)
		return nil, false
	}
	if err := app.Agent.Initialize(ctx); err != nil {
		fmt.Fprintf(out, "❌ Error al inicializar agente: %v\n", err)
		return app.Agent, false
	}
	fmt.Fprintln(out, "✅ Agente inicializado correctamente")
	fmt.Fprintf(out, "   Herramientas cargadas: %d\n", app.Agent.ToolCount())
	return app.Agent, true
}

func checkAgentQueries(ctx context.Context, out io.Writer, agent chatter, queries []string) bool {
	header(out, "Test 3: Consultas al Agente")

	ok := true
	for i, q := range queries {
		fmt.Fprintf(out, "\nConsulta %d: %s\n", i+1, q)
		res, err := agent.Chat(ctx, q, "test")
		switch {
		case err != nil:
			fmt.Fprintf(out, "❌ Error: %v\n", err)
			ok = false
		case res.Response == "" || res.Response == agents.NoResponse:
			fmt.Fprintln(out, "❌ Sin respuesta")
			ok = false
		default:
			fmt.Fprintf(out, "✅ Respuesta recibida (%d caracteres)\n", len([]rune(res.Response)))
		}
	}
	return ok
}

func checkAPI(ctx context.Context, out io.Writer, baseURL, question string) bool {
	header(out, "Test 4: API REST")
	client := &http.Client{Timeout: 60 * time.Second}

	fmt.Fprintln(out, "\nProbando GET /health...")
	if _, err := getJSON(ctx, client, baseURL+"/health"); err != nil {
		fmt.Fprintf(out, "❌ Health endpoint falló: %v\n", err)
		return false
	}
	fmt.Fprintln(out, "✅ Health endpoint funciona")

	fmt.Fprintln(out, "\nProbando POST /chat...")
	body, _ := json.Marshal(map[string]string{"message": question, "thread_id": "test_api"})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(out, "❌ Error: %v\n", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	chat, err := doJSON(client, req)
	if err != nil {
		fmt.Fprintf(out, "❌ Chat endpoint falló: %v\n", err)
		return false
	}
	fmt.Fprintln(out, "✅ Chat endpoint funciona")
	fmt.Fprintf(out, "   Respuesta: %s...\n", truncate(gjson.GetBytes(chat, "response").String(), 100))

	fmt.Fprintln(out, "\nProbando GET /history/test_api...")
	history, err := getJSON(ctx, client, baseURL+"/history/test_api")
	if err != nil {
		fmt.Fprintf(out, "❌ History endpoint falló: %v\n", err)
		return false
	}
	fmt.Fprintln(out, "✅ History endpoint funciona")
	fmt.Fprintf(out, "   Mensajes en historial: %d\n", gjson.GetBytes(history, "messages.#").Int())
	return true
}

func getJSON(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return doJSON(client, req)
}

func doJSON(client *http.Client, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		if detail := gjson.GetBytes(body, "detail"); detail.Exists() {
			return nil, fmt.Errorf("status %d: %s", resp.StatusCode, detail.String())
		}
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return body, nil
}

// summarize prints the results and fails when any check did
func summarize(out io.Writer, results []checkResult) error {
	header(out, "RESUMEN DE RESULTADOS")
	fmt.Fprintln(out)

	passed := 0
	for _, r := range results {
		if r.ok {
			passed++
			fmt.Fprintln(out, color.GreenString("✅ %s", r.name))
		} else {
			fmt.Fprintln(out, color.RedString("❌ %s", r.name))
		}
	}

	fmt.Fprintln(out, "\n"+rule)
	fmt.Fprintf(out, "Total: %d/%d tests pasaron\n", passed, len(results))
	if passed == len(results) {
		fmt.Fprintln(out, "🎉 ¡Todos los tests pasaron exitosamente!")
	} else {
		fmt.Fprintln(out, "⚠️  Algunos tests fallaron - revisa los mensajes arriba")
	}
	fmt.Fprint(out, rule+"\n\n")

	if passed != len(results) {
		return fmt.Errorf("%d of %d checks failed", len(results)-passed, len(results))
	}
	return nil
}

func firstN(items []string, n int) []string {
	if len(items) < n {
		return items
	}
	return items[:n]
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
