// ABOUTME: State machine behind the contact list page
// ABOUTME: Tracks load status, search, sort order and the delete confirmation flow
package contactlist

import (
	"context"
	"errors"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/harperreed/rolodex/models"
	"github.com/harperreed/rolodex/toast"
)

// Status is the load status of the collection.
type Status int

const (
	StatusLoading Status = iota
	StatusLoaded
	StatusErrored
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusErrored:
		return "errored"
	}
	return "unknown"
}

// DeleteState is the delete confirmation sub-state.
type DeleteState int

const (
	DeleteIdle DeleteState = iota
	DeleteConfirming
	Deleting
)

func (s DeleteState) String() string {
	switch s {
	case DeleteIdle:
		return "idle"
	case DeleteConfirming:
		return "confirming"
	case Deleting:
		return "deleting"
	}
	return "unknown"
}

// Display is the body the page should render. Exactly one applies at a time;
// Loading() is reported separately as an overlay.
type Display int

const (
	// DisplayPending is shown before the first load resolves.
	DisplayPending Display = iota
	DisplayError
	DisplayEmpty
	DisplayNoMatches
	DisplayContacts
)

// Notification texts.
const (
	MsgDeleteSuccess = "Contact deleted successfully!"
	MsgDeleteFailure = "An error occurred while deleting the contact!"
)

var (
	ErrNotInCollection = errors.New("contact is not in the list")
	ErrDeletePending   = errors.New("another delete is pending")
)

// Service is the slice of the contacts API the list needs.
type Service interface {
	ListContacts(ctx context.Context, order models.SortOrder) ([]models.Contact, error)
	DeleteContact(ctx context.Context, id string) error
}

// LoadedMsg carries the result of a list request.
type LoadedMsg struct {
	ListID     uint64
	Generation uint64
	Order      models.SortOrder
	Contacts   []models.Contact
	Err        error
}

// DeletedMsg carries the result of a delete request.
type DeletedMsg struct {
	ListID  uint64
	Contact models.Contact
	Err     error
}

var listIDs atomic.Uint64

// List is the contact list state machine. It is driven from the bubbletea
// Update goroutine and is not safe for concurrent use.
type List struct {
	id       uint64
	svc      Service
	notifier toast.Notifier
	logger   *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	contacts   []models.Contact
	filtered   []models.Contact
	order      models.SortOrder
	searchTerm string
	status     Status
	loadErr    error
	loadedOnce bool
	generation uint64
	unmounted  bool

	pending     *models.Contact
	deleteState DeleteState
}

// Option configures a List.
type Option func(*List)

// WithOrder sets the initial sort order.
func WithOrder(order models.SortOrder) Option {
	return func(l *List) { l.order = order }
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(l *List) { l.logger = logger }
}

// New creates a list in the Loading state with an empty collection.
// Call Load to issue the first request.
func New(svc Service, notifier toast.Notifier, opts ...Option) *List {
	ctx, cancel := context.WithCancel(context.Background())
	l := &List{
		id:       listIDs.Add(1),
		svc:      svc,
		notifier: notifier,
		logger:   zap.NewNop(),
		ctx:      ctx,
		cancel:   cancel,
		order:    models.SortAsc,
		status:   StatusLoading,
		contacts: []models.Contact{},
		filtered: []models.Contact{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ID identifies this instance in result messages.
func (l *List) ID() uint64 { return l.id }

// Load requests the collection in the current sort order. The previous
// collection stays visible until the result arrives.
func (l *List) Load() tea.Cmd {
	if l.unmounted {
		return nil
	}
	l.generation++
	l.status = StatusLoading

	ctx, svc, id, gen, order := l.ctx, l.svc, l.id, l.generation, l.order
	l.logger.Debug("loading contacts", zap.String("order", string(order)), zap.Uint64("generation", gen))

	return func() tea.Msg {
		contacts, err := svc.ListContacts(ctx, order)
		return LoadedMsg{ListID: id, Generation: gen, Order: order, Contacts: contacts, Err: err}
	}
}

// Retry reloads with the current sort order.
func (l *List) Retry() tea.Cmd {
	return l.Load()
}

// ToggleSortOrder flips the order and reloads.
func (l *List) ToggleSortOrder() tea.Cmd {
	if l.unmounted {
		return nil
	}
	l.order = l.order.Toggle()
	return l.Load()
}

// SetSearchTerm updates the local filter. It never touches the network.
func (l *List) SetSearchTerm(term string) {
	if term == l.searchTerm {
		return
	}
	l.searchTerm = term
	l.refilter()
}

// RequestDelete starts the confirmation flow for a contact in the collection.
func (l *List) RequestDelete(contact models.Contact) error {
	if l.deleteState != DeleteIdle {
		return ErrDeletePending
	}
	idx := l.indexOf(contact.ID)
	if idx < 0 {
		return ErrNotInCollection
	}
	target := l.contacts[idx]
	l.pending = &target
	l.deleteState = DeleteConfirming
	return nil
}

// CancelDelete abandons the confirmation. It does nothing when no delete is
// being confirmed, including while one is in flight.
func (l *List) CancelDelete() {
	if l.deleteState != DeleteConfirming {
		return
	}
	l.pending = nil
	l.deleteState = DeleteIdle
}

// ConfirmDelete issues the delete for the pending contact. It returns nil
// unless a confirmation is open, so repeated calls cannot double-submit.
func (l *List) ConfirmDelete() tea.Cmd {
	if l.unmounted || l.deleteState != DeleteConfirming || l.pending == nil {
		return nil
	}
	l.deleteState = Deleting

	ctx, svc, id, target := l.ctx, l.svc, l.id, *l.pending
	l.logger.Debug("deleting contact", zap.String("id", target.ID))

	return func() tea.Msg {
		err := svc.DeleteContact(ctx, target.ID)
		return DeletedMsg{ListID: id, Contact: target, Err: err}
	}
}

// Update applies results addressed to this list. It reports whether the
// message belonged to the list; stale and post-unmount results are consumed
// without changing state.
func (l *List) Update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.ListID != l.id {
			return false
		}
		l.applyLoaded(msg)
		return true
	case DeletedMsg:
		if msg.ListID != l.id {
			return false
		}
		l.applyDeleted(msg)
		return true
	}
	return false
}

func (l *List) applyLoaded(msg LoadedMsg) {
	if l.unmounted || msg.Generation != l.generation {
		l.logger.Debug("discarding stale load", zap.Uint64("generation", msg.Generation), zap.Uint64("current", l.generation))
		return
	}

	l.loadedOnce = true
	if msg.Err != nil {
		l.logger.Warn("failed to load contacts", zap.Error(msg.Err))
		l.status = StatusErrored
		l.loadErr = msg.Err
		return
	}

	l.status = StatusLoaded
	l.loadErr = nil
	l.contacts = msg.Contacts
	if l.contacts == nil {
		l.contacts = []models.Contact{}
	}
	l.refilter()
}

func (l *List) applyDeleted(msg DeletedMsg) {
	if l.unmounted || l.deleteState != Deleting {
		return
	}

	if msg.Err != nil {
		l.logger.Warn("failed to delete contact", zap.String("id", msg.Contact.ID), zap.Error(msg.Err))
		l.deleteState = DeleteConfirming
		l.notify(toast.Danger, MsgDeleteFailure)
		return
	}

	kept := make([]models.Contact, 0, len(l.contacts))
	for _, c := range l.contacts {
		if c.ID != msg.Contact.ID {
			kept = append(kept, c)
		}
	}
	l.contacts = kept
	l.refilter()

	l.pending = nil
	l.deleteState = DeleteIdle
	l.notify(toast.Success, MsgDeleteSuccess)
}

// Unmount disposes the list. Results that arrive afterwards are dropped.
func (l *List) Unmount() {
	if l.unmounted {
		return
	}
	l.unmounted = true
	l.cancel()
}

func (l *List) notify(typ toast.Type, text string) {
	if l.notifier != nil {
		l.notifier.Notify(toast.Message{Type: typ, Text: text})
	}
}

func (l *List) refilter() {
	l.filtered = Filter(l.contacts, l.searchTerm)
}

func (l *List) indexOf(id string) int {
	for i, c := range l.contacts {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Contacts returns the loaded collection.
func (l *List) Contacts() []models.Contact { return l.contacts }

// Filtered returns the collection narrowed by the search term.
func (l *List) Filtered() []models.Contact { return l.filtered }

// SearchTerm returns the active filter.
func (l *List) SearchTerm() string { return l.searchTerm }

func (l *List) Order() models.SortOrder { return l.order }

func (l *List) Status() Status { return l.status }

// Loading reports whether a request is in flight.
func (l *List) Loading() bool { return l.status == StatusLoading }

// Err is the last load failure, cleared by the next successful load.
func (l *List) Err() error { return l.loadErr }

func (l *List) DeleteState() DeleteState { return l.deleteState }

// PendingDelete returns a copy of the contact awaiting confirmation, if any.
func (l *List) PendingDelete() *models.Contact {
	if l.pending == nil {
		return nil
	}
	c := *l.pending
	return &c
}

// Display picks the body to render.
func (l *List) Display() Display {
	switch {
	case l.loadErr != nil:
		return DisplayError
	case len(l.contacts) == 0 && !l.loadedOnce:
		return DisplayPending
	case len(l.contacts) == 0:
		return DisplayEmpty
	case len(l.filtered) == 0:
		return DisplayNoMatches
	default:
		return DisplayContacts
	}
}
