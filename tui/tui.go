// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Hosts the page router, toast overlay and shared styles for the contacts app
package tui

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/harperreed/rolodex/models"
	"github.com/harperreed/rolodex/service"
	"github.com/harperreed/rolodex/toast"
)

// Route paths.
const (
	PathHome     = "/"
	PathNew      = "/new"
	pathEditBase = "/edit/"
)

// EditPath returns the edit route for a contact.
func EditPath(id string) string {
	return pathEditBase + id
}

// Services is everything the pages need from the API.
type Services interface {
	service.ContactsService
	service.CategoriesService
}

// NavigateMsg asks the app to mount the page for Path.
type NavigateMsg struct {
	Path string
}

// Navigator moves between pages.
type Navigator interface {
	NavigateTo(path string) tea.Cmd
}

type router struct{}

// NavigateTo returns a command that switches to path.
func (router) NavigateTo(path string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path} }
}

// page is a mounted screen. Pages own their state machines and must drop
// results that arrive after Unmount.
type page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	Unmount()
}

var pageIDs atomic.Uint64

// pageContext is the per-mount context shared by the form pages.
type pageContext struct {
	id     uint64
	ctx    context.Context
	cancel context.CancelFunc
}

func newPageContext() pageContext {
	ctx, cancel := context.WithCancel(context.Background())
	return pageContext{id: pageIDs.Add(1), ctx: ctx, cancel: cancel}
}

// Model is the main bubbletea model
type Model struct {
	svc    Services
	nav    Navigator
	toasts *toast.Queue
	logger *zap.Logger
	order  models.SortOrder

	path string
	page page

	width  int
	height int
}

// Option configures the Model.
type Option func(*Model)

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

// WithToastLifetime sets how long toasts stay on screen.
func WithToastLifetime(d time.Duration) Option {
	return func(m *Model) { m.toasts = toast.NewQueue(d) }
}

// WithInitialOrder sets the sort order the home page starts with.
func WithInitialOrder(order models.SortOrder) Option {
	return func(m *Model) { m.order = order }
}

// WithStartPath mounts path instead of the home page.
func WithStartPath(path string) Option {
	return func(m *Model) { m.path = path }
}

// NewModel creates a new TUI model
func NewModel(svc Services, opts ...Option) Model {
	m := Model{
		svc:    svc,
		nav:    router{},
		toasts: toast.NewQueue(toast.DefaultDuration),
		logger: zap.NewNop(),
		order:  models.SortAsc,
		path:   PathHome,
		width:  80,
		height: 24,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.page = m.pageFor(m.path)
	return m
}

// Toasts exposes the notification queue.
func (m Model) Toasts() *toast.Queue { return m.toasts }

// Path returns the mounted route.
func (m Model) Path() string { return m.path }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.page.Init(), toast.Tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.page.Unmount()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case toast.TickMsg:
		// Active prunes expired entries.
		m.toasts.Active()
		return m, toast.Tick()
	case NavigateMsg:
		return m.navigate(msg.Path)
	}

	return m, m.page.Update(msg)
}

func (m Model) navigate(path string) (tea.Model, tea.Cmd) {
	m.logger.Debug("navigate", zap.String("from", m.path), zap.String("to", path))
	m.page.Unmount()
	m.path = path
	m.page = m.pageFor(path)
	return m, m.page.Init()
}

func (m Model) pageFor(path string) page {
	switch {
	case path == PathNew:
		return newNewContactPage(m.svc, m.toasts, m.nav, m.logger)
	case strings.HasPrefix(path, pathEditBase) && len(path) > len(pathEditBase):
		return newEditContactPage(strings.TrimPrefix(path, pathEditBase), m.svc, m.toasts, m.nav, m.logger)
	default:
		if path != PathHome {
			m.logger.Debug("unknown route", zap.String("path", path))
		}
		return newHomePage(m.svc, m.toasts, m.nav, m.logger, m.order)
	}
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("rolodex"))
	s.WriteString("\n\n")
	s.WriteString(m.page.View())
	if t := renderToasts(m.toasts.Active(), m.width); t != "" {
		s.WriteString("\n")
		s.WriteString(t)
	}
	return s.String()
}

// Styles
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("99")).
			Padding(0, 1)
)
