// ABOUTME: Tests for the contact list state machine
// ABOUTME: Covers loading, search, sorting, delete confirmation and unmount behaviour
package contactlist

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/rolodex/models"
	"github.com/harperreed/rolodex/toast"
)

type fakeService struct {
	mu          sync.Mutex
	contacts    []models.Contact
	listErr     error
	deleteErr   error
	listCalls   []models.SortOrder
	deleteCalls []string
}

func (f *fakeService) ListContacts(_ context.Context, order models.SortOrder) ([]models.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, order)
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Contact, len(f.contacts))
	copy(out, f.contacts)
	return out, nil
}

func (f *fakeService) DeleteContact(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls = append(f.deleteCalls, id)
	return f.deleteErr
}

type recordingNotifier struct {
	messages []toast.Message
}

func (r *recordingNotifier) Notify(msg toast.Message) {
	r.messages = append(r.messages, msg)
}

func sampleContacts() []models.Contact {
	return []models.Contact{
		{ID: "1", Name: "Ana"},
		{ID: "2", Name: "Beto"},
	}
}

// run executes a command and feeds its message back into the list.
func run(t *testing.T, l *List, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	assert.True(t, l.Update(msg), "message should belong to the list")
	return msg
}

func loadedList(t *testing.T, svc *fakeService, n toast.Notifier) *List {
	t.Helper()
	l := New(svc, n)
	run(t, l, l.Load())
	require.Equal(t, StatusLoaded, l.Status())
	return l
}

func TestNewListStartsLoadingAndEmpty(t *testing.T) {
	l := New(&fakeService{}, nil)

	assert.Equal(t, StatusLoading, l.Status())
	assert.True(t, l.Loading())
	assert.Empty(t, l.Contacts())
	assert.Equal(t, models.SortAsc, l.Order())
	assert.Equal(t, DeleteIdle, l.DeleteState())
	assert.Equal(t, DisplayPending, l.Display())
}

func TestLoadSuccess(t *testing.T) {
	svc := &fakeService{contacts: sampleContacts()}
	l := loadedList(t, svc, nil)

	assert.Equal(t, sampleContacts(), l.Contacts())
	assert.Equal(t, sampleContacts(), l.Filtered())
	assert.NoError(t, l.Err())
	assert.Equal(t, DisplayContacts, l.Display())
	assert.Equal(t, []models.SortOrder{models.SortAsc}, svc.listCalls)
}

func TestLoadingKeepsPreviousSnapshot(t *testing.T) {
	svc := &fakeService{contacts: sampleContacts()}
	l := loadedList(t, svc, nil)

	cmd := l.Load()
	require.NotNil(t, cmd)
	assert.Equal(t, StatusLoading, l.Status())
	assert.Equal(t, sampleContacts(), l.Contacts(), "collection must not be cleared while reloading")
	assert.Equal(t, DisplayContacts, l.Display())
}

func TestLoadFailureFirstMount(t *testing.T) {
	svc := &fakeService{listErr: errors.New("network down")}
	l := New(svc, nil)
	run(t, l, l.Load())

	assert.Equal(t, StatusErrored, l.Status())
	assert.Error(t, l.Err())
	assert.Empty(t, l.Contacts())
	assert.Equal(t, DisplayError, l.Display())
}

func TestLoadFailureKeepsSnapshotAndRetryUsesSameOrder(t *testing.T) {
	svc := &fakeService{contacts: sampleContacts()}
	l := New(svc, nil, WithOrder(models.SortDesc))
	run(t, l, l.Load())

	svc.listErr = errors.New("boom")
	run(t, l, l.Load())

	assert.Equal(t, StatusErrored, l.Status())
	assert.Equal(t, sampleContacts(), l.Contacts())
	assert.Equal(t, DisplayError, l.Display())

	svc.listErr = nil
	retry := l.Retry()
	assert.Equal(t, StatusLoading, l.Status())
	assert.Equal(t, DisplayError, l.Display(), "error body stays until the retry succeeds")
	run(t, l, retry)

	assert.Equal(t, []models.SortOrder{models.SortDesc, models.SortDesc, models.SortDesc}, svc.listCalls)
	assert.Equal(t, StatusLoaded, l.Status())
	assert.NoError(t, l.Err())
	assert.Equal(t, DisplayContacts, l.Display())
}

func TestToggleSortOrderIssuesOneDescRequest(t *testing.T) {
	svc := &fakeService{contacts: sampleContacts()}
	l := loadedList(t, svc, nil)
	svc.listCalls = nil

	cmd := l.ToggleSortOrder()
	assert.Equal(t, models.SortDesc, l.Order())
	run(t, l, cmd)

	assert.Equal(t, []models.SortOrder{models.SortDesc}, svc.listCalls)
}

func TestRapidToggleOnlyLatestResultApplies(t *testing.T) {
	svc := &fakeService{contacts: sampleContacts()}
	l := loadedList(t, svc, nil)

	first := l.ToggleSortOrder()
	second := l.ToggleSortOrder()
	assert.Equal(t, models.SortAsc, l.Order())

	newer := second()
	svc.contacts = []models.Contact{{ID: "9", Name: "Zoe"}}
	older := first()

	assert.True(t, l.Update(newer))
	assert.True(t, l.Update(older), "stale results are consumed")

	assert.Equal(t, sampleContacts(), l.Contacts())
	assert.Equal(t, StatusLoaded, l.Status())
}

func TestStaleResultDoesNotEndLoading(t *testing.T) {
	svc := &fakeService{contacts: sampleContacts()}
	l := New(svc, nil)

	stale := l.Load()
	fresh := l.Load()

	l.Update(stale())
	assert.Equal(t, StatusLoading, l.Status())
	assert.Empty(t, l.Contacts())

	l.Update(fresh())
	assert.Equal(t, StatusLoaded, l.Status())
}

func TestSearchTermFiltersLocally(t *testing.T) {
	svc := &fakeService{contacts: sampleContacts()}
	l := loadedList(t, svc, nil)
	calls := len(svc.listCalls)

	l.SetSearchTerm("an")
	assert.Equal(t, []models.Contact{{ID: "1", Name: "Ana"}}, l.Filtered())
	assert.Equal(t, "an", l.SearchTerm())
	assert.Len(t, svc.listCalls, calls, "search must not hit the network")

	l.SetSearchTerm("xyz")
	assert.Empty(t, l.Filtered())
	assert.Equal(t, DisplayNoMatches, l.Display())

	l.SetSearchTerm("")
	assert.Equal(t, sampleContacts(), l.Filtered())
}

func TestSearchAppliesToReloadedCollection(t *testing.T) {
	svc := &fakeService{contacts: sampleContacts()}
	l := loadedList(t, svc, nil)
	l.SetSearchTerm("be")

	svc.contacts = append(svc.contacts, models.Contact{ID: "3", Name: "Bernardo"})
	run(t, l, l.Load())

	names := []string{}
	for _, c := range l.Filtered() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Beto", "Bernardo"}, names)
}

func TestEmptyCollectionIsNotAnError(t *testing.T) {
	l := loadedList(t, &fakeService{}, nil)
	assert.Equal(t, DisplayEmpty, l.Display())
	assert.NoError(t, l.Err())
}

func TestRequestDeleteRequiresMembership(t *testing.T) {
	l := loadedList(t, &fakeService{contacts: sampleContacts()}, nil)

	err := l.RequestDelete(models.Contact{ID: "404", Name: "Ghost"})
	assert.ErrorIs(t, err, ErrNotInCollection)
	assert.Equal(t, DeleteIdle, l.DeleteState())
	assert.Nil(t, l.PendingDelete())
}

func TestRequestDeleteWhilePending(t *testing.T) {
	l := loadedList(t, &fakeService{contacts: sampleContacts()}, nil)

	require.NoError(t, l.RequestDelete(sampleContacts()[0]))
	err := l.RequestDelete(sampleContacts()[1])
	assert.ErrorIs(t, err, ErrDeletePending)
	assert.Equal(t, "1", l.PendingDelete().ID)
}

func TestCancelDelete(t *testing.T) {
	l := loadedList(t, &fakeService{contacts: sampleContacts()}, nil)

	l.CancelDelete()
	assert.Equal(t, DeleteIdle, l.DeleteState(), "cancel in idle is a no-op")
	assert.Nil(t, l.PendingDelete())

	require.NoError(t, l.RequestDelete(sampleContacts()[1]))
	assert.Equal(t, DeleteConfirming, l.DeleteState())

	l.CancelDelete()
	assert.Equal(t, DeleteIdle, l.DeleteState())
	assert.Nil(t, l.PendingDelete())

	l.CancelDelete()
	assert.Equal(t, DeleteIdle, l.DeleteState())
}

func TestConfirmDeleteSuccess(t *testing.T) {
	svc := &fakeService{contacts: sampleContacts()}
	notifier := &recordingNotifier{}
	l := loadedList(t, svc, notifier)

	target := sampleContacts()[0]
	require.NoError(t, l.RequestDelete(target))
	assert.Equal(t, DeleteConfirming, l.DeleteState())
	assert.Equal(t, target, *l.PendingDelete())

	cmd := l.ConfirmDelete()
	assert.Equal(t, Deleting, l.DeleteState())
	run(t, l, cmd)

	assert.Equal(t, []string{"1"}, svc.deleteCalls)
	assert.Equal(t, []models.Contact{{ID: "2", Name: "Beto"}}, l.Contacts())
	assert.Equal(t, DeleteIdle, l.DeleteState())
	assert.Nil(t, l.PendingDelete())
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, toast.Success, notifier.messages[0].Type)
	assert.Equal(t, MsgDeleteSuccess, notifier.messages[0].Text)
}

func TestConfirmDeleteFailureKeepsTarget(t *testing.T) {
	svc := &fakeService{contacts: sampleContacts(), deleteErr: errors.New("500")}
	notifier := &recordingNotifier{}
	l := loadedList(t, svc, notifier)

	target := sampleContacts()[0]
	require.NoError(t, l.RequestDelete(target))
	run(t, l, l.ConfirmDelete())

	assert.Equal(t, DeleteConfirming, l.DeleteState())
	assert.Equal(t, target, *l.PendingDelete())
	assert.Equal(t, sampleContacts(), l.Contacts())
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, toast.Danger, notifier.messages[0].Type)
	assert.Equal(t, MsgDeleteFailure, notifier.messages[0].Text)

	svc.deleteErr = nil
	run(t, l, l.ConfirmDelete())
	assert.Equal(t, DeleteIdle, l.DeleteState())
	assert.Len(t, l.Contacts(), 1)
}

func TestConfirmDeleteIsGuardedWhileInFlight(t *testing.T) {
	svc := &fakeService{contacts: sampleContacts()}
	l := loadedList(t, svc, nil)

	require.NoError(t, l.RequestDelete(sampleContacts()[1]))
	first := l.ConfirmDelete()
	second := l.ConfirmDelete()

	assert.NotNil(t, first)
	assert.Nil(t, second)

	l.CancelDelete()
	assert.Equal(t, Deleting, l.DeleteState(), "an in-flight delete cannot be cancelled")

	run(t, l, first)
	assert.Equal(t, []string{"2"}, svc.deleteCalls)
}

func TestConfirmDeleteWithoutRequestIsNoop(t *testing.T) {
	svc := &fakeService{contacts: sampleContacts()}
	l := loadedList(t, svc, nil)

	assert.Nil(t, l.ConfirmDelete())
	assert.Empty(t, svc.deleteCalls)
}

func TestDeleteRemovesOnlyMatchingIDAndKeepsFilter(t *testing.T) {
	svc := &fakeService{contacts: []models.Contact{
		{ID: "1", Name: "Ana"},
		{ID: "2", Name: "Anabela"},
		{ID: "3", Name: "Beto"},
	}}
	l := loadedList(t, svc, nil)
	l.SetSearchTerm("ana")

	require.NoError(t, l.RequestDelete(models.Contact{ID: "2"}))
	run(t, l, l.ConfirmDelete())

	assert.Equal(t, []models.Contact{{ID: "1", Name: "Ana"}}, l.Filtered())
	assert.Len(t, l.Contacts(), 2)
}

func TestUnmountDiscardsInFlightLoad(t *testing.T) {
	svc := &fakeService{contacts: sampleContacts()}
	l := New(svc, nil)

	cmd := l.Load()
	l.Unmount()
	msg := cmd()

	assert.True(t, l.Update(msg))
	assert.Equal(t, StatusLoading, l.Status())
	assert.Empty(t, l.Contacts())
	assert.Equal(t, DisplayPending, l.Display())

	assert.Nil(t, l.Load(), "an unmounted list issues no requests")
	assert.Nil(t, l.ToggleSortOrder())
}

func TestUnmountDiscardsInFlightDelete(t *testing.T) {
	svc := &fakeService{contacts: sampleContacts()}
	notifier := &recordingNotifier{}
	l := loadedList(t, svc, notifier)

	require.NoError(t, l.RequestDelete(sampleContacts()[0]))
	cmd := l.ConfirmDelete()
	l.Unmount()
	l.Update(cmd())

	assert.Len(t, l.Contacts(), 2)
	assert.Empty(t, notifier.messages)
}

func TestUnmountCancelsContext(t *testing.T) {
	l := New(&fakeService{}, nil)
	l.Unmount()
	l.Unmount()
	assert.ErrorIs(t, l.ctx.Err(), context.Canceled)
}

func TestMessagesForOtherListsAreIgnored(t *testing.T) {
	svc := &fakeService{contacts: sampleContacts()}
	a := New(svc, nil)
	b := New(svc, nil)
	assert.NotEqual(t, a.ID(), b.ID())

	msg := a.Load()()
	assert.False(t, b.Update(msg))
	assert.Equal(t, StatusLoading, b.Status())
	assert.False(t, b.Update(tea.KeyMsg{}))
}

func TestStatusStrings(t *testing.T) {
	assert.Equal(t, "loading", StatusLoading.String())
	assert.Equal(t, "loaded", StatusLoaded.String())
	assert.Equal(t, "errored", StatusErrored.String())
	assert.Equal(t, "confirming", DeleteConfirming.String())
	assert.Equal(t, "deleting", Deleting.String())
	assert.Equal(t, "idle", DeleteIdle.String())
}

func TestLoadedNilContactsBecomesEmpty(t *testing.T) {
	l := New(&fakeService{}, nil)
	cmd := l.Load()
	msg := cmd().(LoadedMsg)
	msg.Contacts = nil
	l.Update(msg)

	assert.NotNil(t, l.Contacts())
	if diff := cmp.Diff([]models.Contact{}, l.Filtered()); diff != "" {
		t.Errorf("filtered mismatch (-want +got):\n%s", diff)
	}
}
