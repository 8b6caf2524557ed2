// ABOUTME: Edit contact page
// ABOUTME: Loads a contact by id, seeds the form with it and submits updates
package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/harperreed/rolodex/contactform"
	"github.com/harperreed/rolodex/models"
	"github.com/harperreed/rolodex/toast"
)

// Edit page notifications.
const (
	MsgContactNotFound = "Contact not found!"
	MsgUpdateSuccess   = "Contact updated successfully!"
	MsgUpdateFailure   = "An error occurred while updating the contact!"
)

type contactLoadedMsg struct {
	pageID  uint64
	contact *models.Contact
	err     error
}

type contactSavedMsg struct {
	pageID  uint64
	contact *models.Contact
	err     error
}

type categoriesLoadedMsg struct {
	pageID     uint64
	categories []models.Category
	err        error
}

type editContactPage struct {
	pageContext
	contactID string
	svc       Services
	notifier  toast.Notifier
	nav       Navigator
	logger    *zap.Logger

	contactName string
	form        *contactform.Form
	categories  []models.Category
	catsLoaded  bool
	unmounted   bool
}

func newEditContactPage(id string, svc Services, notifier toast.Notifier, nav Navigator, logger *zap.Logger) *editContactPage {
	return &editContactPage{
		pageContext: newPageContext(),
		contactID:   id,
		svc:         svc,
		notifier:    notifier,
		nav:         nav,
		logger:      logger,
	}
}

func (p *editContactPage) Init() tea.Cmd {
	ctx, svc, pageID, id := p.ctx, p.svc, p.id, p.contactID
	loadContact := func() tea.Msg {
		c, err := svc.GetContactByID(ctx, id)
		return contactLoadedMsg{pageID: pageID, contact: c, err: err}
	}
	return tea.Batch(loadContact, loadCategories(ctx, svc, pageID))
}

func (p *editContactPage) Unmount() {
	p.unmounted = true
	p.cancel()
}

func (p *editContactPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case contactLoadedMsg:
		if msg.pageID != p.id || p.unmounted {
			return nil
		}
		if msg.err != nil || msg.contact == nil {
			p.logger.Warn("failed to load contact", zap.String("id", p.contactID), zap.Error(msg.err))
			p.notifier.Notify(toast.Message{Type: toast.Danger, Text: MsgContactNotFound})
			return p.nav.NavigateTo(PathHome)
		}
		p.contactName = msg.contact.Name
		p.form = contactform.New("Save changes", msg.contact.FormData())
		if p.catsLoaded {
			p.form.SetCategories(p.categories)
		}
		return p.form.Focus()

	case categoriesLoadedMsg:
		if msg.pageID != p.id || p.unmounted {
			return nil
		}
		p.catsLoaded = true
		if msg.err != nil {
			p.logger.Warn("failed to load categories", zap.Error(msg.err))
		}
		p.categories = msg.categories
		if p.form != nil {
			p.form.SetCategories(p.categories)
		}
		return nil

	case contactform.SubmitMsg:
		if p.form == nil || p.form.Submitting() {
			return nil
		}
		p.form.SetSubmitting(true)
		ctx, svc, pageID, id, payload := p.ctx, p.svc, p.id, p.contactID, msg.Data.Payload()
		return func() tea.Msg {
			c, err := svc.UpdateContact(ctx, id, payload)
			return contactSavedMsg{pageID: pageID, contact: c, err: err}
		}

	case contactSavedMsg:
		if msg.pageID != p.id || p.unmounted {
			return nil
		}
		p.form.SetSubmitting(false)
		if msg.err != nil {
			p.logger.Warn("failed to update contact", zap.String("id", p.contactID), zap.Error(msg.err))
			p.notifier.Notify(toast.Message{Type: toast.Danger, Text: MsgUpdateFailure})
			return nil
		}
		if msg.contact != nil {
			p.contactName = msg.contact.Name
		}
		p.notifier.Notify(toast.Message{Type: toast.Success, Text: MsgUpdateSuccess})
		return nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return p.nav.NavigateTo(PathHome)
		}
	}

	if p.form != nil {
		return p.form.Update(msg)
	}
	return nil
}

func (p *editContactPage) View() string {
	var s strings.Builder
	if p.form == nil {
		s.WriteString(titleStyle.Render("Loading..."))
		s.WriteString("\n")
		s.WriteString(helpStyle.Render("esc: back"))
		return s.String()
	}

	s.WriteString(mutedStyle.Render("← Back (esc)"))
	s.WriteString("\n")
	s.WriteString(titleStyle.Render("Edit " + p.contactName))
	s.WriteString("\n")
	s.WriteString(p.form.View())
	s.WriteString(helpStyle.Render("tab: next field • ←/→: category • enter: save • esc: back"))
	return s.String()
}

func loadCategories(ctx context.Context, svc Services, pageID uint64) tea.Cmd {
	return func() tea.Msg {
		cats, err := svc.ListCategories(ctx)
		return categoriesLoadedMsg{pageID: pageID, categories: cats, err: err}
	}
}
