// ABOUTME: New contact page
// ABOUTME: Submits the contact form as a create and clears it on success
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/harperreed/rolodex/contactform"
	"github.com/harperreed/rolodex/models"
	"github.com/harperreed/rolodex/toast"
)

// New contact notifications.
const (
	MsgCreateSuccess = "Contact created successfully!"
	MsgCreateFailure = "An error occurred while creating the contact!"
)

type newContactPage struct {
	pageContext
	svc       Services
	notifier  toast.Notifier
	nav       Navigator
	logger    *zap.Logger
	form      *contactform.Form
	unmounted bool
}

func newNewContactPage(svc Services, notifier toast.Notifier, nav Navigator, logger *zap.Logger) *newContactPage {
	return &newContactPage{
		pageContext: newPageContext(),
		svc:         svc,
		notifier:    notifier,
		nav:         nav,
		logger:      logger,
		form:        contactform.New("Create contact", models.ContactFormData{}),
	}
}

func (p *newContactPage) Init() tea.Cmd {
	return tea.Batch(p.form.Focus(), loadCategories(p.ctx, p.svc, p.id))
}

func (p *newContactPage) Unmount() {
	p.unmounted = true
	p.cancel()
}

func (p *newContactPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case categoriesLoadedMsg:
		if msg.pageID != p.id || p.unmounted {
			return nil
		}
		if msg.err != nil {
			p.logger.Warn("failed to load categories", zap.Error(msg.err))
		}
		p.form.SetCategories(msg.categories)
		return nil

	case contactform.SubmitMsg:
		if p.form.Submitting() {
			return nil
		}
		p.form.SetSubmitting(true)
		ctx, svc, pageID, payload := p.ctx, p.svc, p.id, msg.Data.Payload()
		return func() tea.Msg {
			c, err := svc.CreateContact(ctx, payload)
			return contactSavedMsg{pageID: pageID, contact: c, err: err}
		}

	case contactSavedMsg:
		if msg.pageID != p.id || p.unmounted {
			return nil
		}
		p.form.SetSubmitting(false)
		if msg.err != nil {
			p.logger.Warn("failed to create contact", zap.Error(msg.err))
			p.notifier.Notify(toast.Message{Type: toast.Danger, Text: MsgCreateFailure})
			return nil
		}
		p.form.Clear()
		p.notifier.Notify(toast.Message{Type: toast.Success, Text: MsgCreateSuccess})
		return nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return p.nav.NavigateTo(PathHome)
		}
	}

	return p.form.Update(msg)
}

func (p *newContactPage) View() string {
	var s strings.Builder
	s.WriteString(mutedStyle.Render("← Back (esc)"))
	s.WriteString("\n")
	s.WriteString(titleStyle.Render("New contact"))
	s.WriteString("\n")
	s.WriteString(p.form.View())
	s.WriteString(helpStyle.Render("tab: next field • ←/→: category • enter: create • esc: back"))
	return s.String()
}
