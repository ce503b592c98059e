package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/va6996/mcpworkshop/agents"
	"github.com/va6996/mcpworkshop/bootstrap"
)

func newChatCmd(c *cli) *cobra.Command {
	var url, thread string
	cmd := &cobra.Command{
		Use:   "chat <math|store|insurance>",
		Short: "Chat with an agent in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := bootstrap.SetupProfile(ctx, c.cfg, args[0], mcpURLFor(args[0], url))
			if err != nil {
				return err
			}
			if err := app.Agent.Initialize(ctx); err != nil {
				return err
			}

			program := tea.NewProgram(newChatModel(ctx, app.Agent, app.Agent.Profile.Title, thread), tea.WithAltScreen())
			_, err = program.Run()
			return err
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "MCP endpoint (defaults to the profile's server)")
	cmd.Flags().StringVar(&thread, "thread", "terminal", "conversation thread")
	return cmd
}

type answerMsg struct {
	result *agents.ChatResult
	err    error
}

func askCmd(ctx context.Context, agent chatter, question, thread string) tea.Cmd {
	return func() tea.Msg {
		res, err := agent.Chat(ctx, question, thread)
		return answerMsg{result: res, err: err}
	}
}

type chatEntry struct {
	user    bool
	content string
	tools   []string
	failed  bool
}

type chatModel struct {
	ctx    context.Context
	agent  chatter
	title  string
	thread string

	viewport  viewport.Model
	textinput textinput.Model

	entries []chatEntry
	running bool
}

func newChatModel(ctx context.Context, agent chatter, title, thread string) chatModel {
	m := chatModel{ctx: ctx, agent: agent, title: title, thread: thread}

	vp := viewport.New(0, 0)
	vp.KeyMap.Up.SetKeys("up")
	vp.KeyMap.Down.SetKeys("down")
	vp.KeyMap.PageUp.SetEnabled(false)
	vp.KeyMap.PageDown.SetEnabled(false)
	vp.KeyMap.HalfPageUp.SetEnabled(false)
	vp.KeyMap.HalfPageDown.SetEnabled(false)
	m.viewport = vp

	ti := textinput.New()
	ti.Prompt = "❯ "
	ti.Placeholder = "escribe tu pregunta"
	ti.Focus()
	ti.CharLimit = 1024
	m.textinput = ti
	return m
}

func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case answerMsg:
		m.running = false
		if msg.err != nil {
			m.entries = append(m.entries, chatEntry{content: msg.err.Error(), failed: true})
		} else {
			entry := chatEntry{content: msg.result.Response}
			for _, call := range msg.result.ToolsUsed {
				entry.tools = append(entry.tools, call.Name)
			}
			m.entries = append(m.entries, entry)
		}
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoBottom()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEnter {
			question := strings.TrimSpace(m.textinput.Value())
			if question == "" || m.running {
				return m, nil
			}
			m.entries = append(m.entries, chatEntry{user: true, content: question})
			m.running = true
			m.textinput.Reset()
			m.viewport.SetContent(m.renderContent())
			m.viewport.GotoBottom()
			return m, askCmd(m.ctx, m.agent, question, m.thread)
		}
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 4
		m.viewport.SetContent(m.renderContent())
		if m.viewport.PastBottom() {
			m.viewport.GotoBottom()
		}
		m.textinput.Width = msg.Width - 3
		return m, nil
	}
	var cmd1, cmd2 tea.Cmd
	m.viewport, cmd1 = m.viewport.Update(msg)
	m.textinput, cmd2 = m.textinput.Update(msg)
	return m, tea.Batch(cmd1, cmd2)
}

func (m chatModel) View() string {
	var s string
	s += m.viewport.View()
	s += "\n\n" + m.textinput.View()
	s += "\n\n" + color.New(color.Faint).Sprint(m.renderFooter())
	return s
}

func (m chatModel) renderContent() string {
	var s string
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	for i, entry := range m.entries {
		if i > 0 {
			s += "\n\n"
		}
		switch {
		case entry.user:
			s += color.New(color.Faint).Sprint("› " + entry.content)
		case entry.failed:
			s += color.New(color.FgRed).Sprint("Error: " + entry.content)
		default:
			for _, name := range entry.tools {
				s += color.New(color.FgYellow).Sprint("●") + color.New(color.Bold).Sprintf(" %s", name) + "\n"
			}
			s += renderMarkdown(entry.content, width)
		}
	}
	return s
}

func (m chatModel) renderFooter() string {
	meta := fmt.Sprintf("%s, hilo: %s", m.title, m.thread)
	if m.running {
		return "pensando... (" + meta + ")"
	}
	return "ctrl+c para salir. (" + meta + ")"
}
