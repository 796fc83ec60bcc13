package menu

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/affanabid/Hiro/internal/domain"
	"github.com/affanabid/Hiro/internal/form"
	"github.com/affanabid/Hiro/internal/remote/mock"
)

func sampleJob() domain.JobRecord {
	return domain.JobRecord{
		ID:             3,
		Title:          "QA Engineer",
		Description:    "Test.",
		Status:         domain.StatusActive,
		JobType:        domain.JobTypeRemote,
		JobTime:        domain.JobTimeFullTime,
		RequiredSkills: "SQL, Python",
		Domain:         "Quality",
	}
}

// Ensure notifySpy satisfies the notifier the menu expects.
var _ form.Notifier = (*notifySpy)(nil)

type notifySpy struct{ calls int }

func (n *notifySpy) NotifyChanged(ctx context.Context) { n.calls++ }

func TestSelect_RequiresOpenMenu(t *testing.T) {
	m := New(sampleJob(), mock.NewMockCollection(), &notifySpy{}, PrompterFunc(func(string) bool { return true }), zap.NewNop())
	if _, err := m.Select(context.Background(), ActionDelete); !errors.Is(err, domain.ErrMenuClosed) {
		t.Errorf("expected ErrMenuClosed, got %v", err)
	}
}

func TestSelect_EditReturnsPrefilledController(t *testing.T) {
	coll := mock.NewMockCollection()
	m := New(sampleJob(), coll, &notifySpy{}, PrompterFunc(func(string) bool { return true }), zap.NewNop())
	m.Open()

	ctrl, err := m.Select(context.Background(), ActionEdit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctrl == nil {
		t.Fatal("expected an edit controller")
	}
	if m.State() != StateClosed {
		t.Error("expected the menu to close on selection")
	}
	got := ctrl.Model()
	if got.Title != "QA Engineer" {
		t.Errorf("expected prefilled title, got %q", got.Title)
	}
	if !reflect.DeepEqual(got.RequiredSkills, []string{"SQL", "Python"}) {
		t.Errorf("expected split skills, got %v", got.RequiredSkills)
	}
}

func TestSelect_DeleteDeclined(t *testing.T) {
	coll := mock.NewMockCollection()
	coll.Seed(sampleJob())
	notifier := &notifySpy{}
	var prompt string
	m := New(sampleJob(), coll, notifier, PrompterFunc(func(p string) bool {
		prompt = p
		return false
	}), zap.NewNop())
	m.Open()

	if _, err := m.Select(context.Background(), ActionDelete); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(coll.DeleteCalls) != 0 {
		t.Errorf("expected no delete requests, got %v", coll.DeleteCalls)
	}
	if notifier.calls != 0 {
		t.Error("expected no change notification")
	}
	if m.State() != StateClosed {
		t.Error("expected the menu to close")
	}
	if !strings.Contains(prompt, `"QA Engineer"`) {
		t.Errorf("expected the record title in the prompt, got %q", prompt)
	}
}

func TestSelect_DeleteConfirmed(t *testing.T) {
	coll := mock.NewMockCollection()
	coll.Seed(sampleJob())
	notifier := &notifySpy{}
	m := New(sampleJob(), coll, notifier, PrompterFunc(func(string) bool { return true }), zap.NewNop())
	m.Open()

	if _, err := m.Select(context.Background(), ActionDelete); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(coll.DeleteCalls, []int64{3}) {
		t.Errorf("expected one delete of ID 3, got %v", coll.DeleteCalls)
	}
	if notifier.calls != 1 {
		t.Errorf("expected exactly 1 change notification, got %d", notifier.calls)
	}
	if coll.Len() != 0 {
		t.Errorf("expected the record to be gone, still have %d", coll.Len())
	}
}

func TestSelect_DeleteFailureIsSwallowed(t *testing.T) {
	coll := mock.NewMockCollection()
	coll.DeleteFunc = func(ctx context.Context, id int64) error {
		return &domain.TransportError{Op: "delete", Status: 500}
	}
	notifier := &notifySpy{}
	m := New(sampleJob(), coll, notifier, PrompterFunc(func(string) bool { return true }), zap.NewNop())
	m.Open()

	if _, err := m.Select(context.Background(), ActionDelete); err != nil {
		t.Fatalf("expected the failure to be swallowed, got %v", err)
	}
	if notifier.calls != 0 {
		t.Error("expected no change notification for a failed delete")
	}
	if m.State() != StateClosed {
		t.Error("expected the menu to close regardless")
	}
}

func TestSelect_UnknownAction(t *testing.T) {
	m := New(sampleJob(), mock.NewMockCollection(), &notifySpy{}, PrompterFunc(func(string) bool { return true }), zap.NewNop())
	m.Open()
	if _, err := m.Select(context.Background(), Action("archive")); err == nil {
		t.Error("expected an error for an unknown action")
	}
}
