package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/Yeabkal66/BOTH-BACKEND/internal/domain"
	"github.com/Yeabkal66/BOTH-BACKEND/internal/repository/sessionStore"
)

const testBaseURL = "https://photos.example"

type creationFixture struct {
	engine   *Creation
	sessions *sessionStore.SessionStore
	events   *fakeEventRepo
	photos   *fakePhotoRepo
	storage  *fakeStorage
	files    *fakeFiles
}

func newCreationFixture() *creationFixture {
	f := &creationFixture{
		sessions: sessionStore.NewSessionStore(),
		events:   newFakeEventRepo(),
		photos:   &fakePhotoRepo{},
		storage:  &fakeStorage{},
		files:    &fakeFiles{},
	}
	f.engine = NewCreation(f.sessions, f.events, f.photos, f.storage, f.files,
		testBaseURL, testLogger())
	return f
}

// advanceTo walks a chat through valid inputs up to (and including entering)
// the given step.
func (f *creationFixture) advanceTo(t *testing.T, chatID int64, step domain.Step) {
	t.Helper()
	ctx := context.Background()

	f.engine.Start(ctx, chatID)
	inputs := []struct {
		step domain.Step
		text string
	}{
		{domain.StepDescription, "welcome to our party"},
		{domain.StepBackgroundImage, "a lovely evening"},
		{domain.StepServiceType, ""},
		{domain.StepUploadLimit, "both"},
		{domain.StepPreloadedPhotos, "5"},
	}
	for _, in := range inputs {
		if f.session(chatID).Step == step {
			return
		}
		if in.text == "" {
			f.engine.HandleImage(ctx, chatID, "bg-file")
		} else {
			f.engine.HandleText(ctx, chatID, in.text)
		}
		if got := f.session(chatID).Step; got != in.step {
			t.Fatalf("advanceTo: expected step %v after input, got %v", in.step, got)
		}
	}
}

func (f *creationFixture) session(chatID int64) *domain.SessionState {
	return f.sessions.Get(context.Background(), chatID)
}

func TestCreation_FullFlow(t *testing.T) {
	f := newCreationFixture()
	ctx := context.Background()
	const chatID int64 = 42

	f.engine.Start(ctx, chatID)
	state := f.session(chatID)
	if state == nil || state.Step != domain.StepWelcomeText {
		t.Fatalf("expected session in welcome_text step, got %+v", state)
	}
	eventID := state.Draft.EventID
	if eventID == "" {
		t.Fatal("draft not seeded with an event id")
	}
	if state.Draft.CreatedBy != chatID {
		t.Errorf("draft createdBy = %d, want %d", state.Draft.CreatedBy, chatID)
	}

	f.engine.HandleText(ctx, chatID, "Welcome to our wedding!")
	f.engine.HandleText(ctx, chatID, "Saturday at the lake house")
	f.engine.HandleImage(ctx, chatID, "bg-file")
	f.engine.HandleText(ctx, chatID, "uploadpics")
	f.engine.HandleText(ctx, chatID, "10")
	f.engine.HandleImage(ctx, chatID, "photo-1")
	f.engine.HandleImage(ctx, chatID, "photo-2")

	reply := f.engine.Complete(ctx, chatID)
	if !strings.Contains(reply, testBaseURL+"/event/"+eventID) {
		t.Errorf("completion reply %q does not contain event url", reply)
	}

	event, err := f.events.FindByID(ctx, eventID)
	if err != nil {
		t.Fatalf("event not persisted: %v", err)
	}
	if event.WelcomeText != "Welcome to our wedding!" {
		t.Errorf("welcomeText = %q", event.WelcomeText)
	}
	if event.Description != "Saturday at the lake house" {
		t.Errorf("description = %q", event.Description)
	}
	if event.BackgroundImage == nil {
		t.Error("backgroundImage not set")
	}
	if event.ServiceType != domain.ServiceUploadPics {
		t.Errorf("serviceType = %q", event.ServiceType)
	}
	if event.UploadLimit != 10 {
		t.Errorf("uploadLimit = %d", event.UploadLimit)
	}
	if event.Status != domain.StatusActive {
		t.Errorf("status = %q", event.Status)
	}

	photos := f.photos.all()
	if len(photos) != 2 {
		t.Fatalf("len(photos) = %d, want 2", len(photos))
	}
	for _, p := range photos {
		if p.UploadType != domain.UploadPreloaded {
			t.Errorf("photo uploadType = %q, want preloaded", p.UploadType)
		}
		if p.EventID != eventID {
			t.Errorf("photo eventID = %q, want %q", p.EventID, eventID)
		}
	}

	if f.session(chatID) != nil {
		t.Error("session should be discarded after finalization")
	}
}

func TestCreation_EmptyPreloadScenario(t *testing.T) {
	f := newCreationFixture()
	ctx := context.Background()
	const chatID int64 = 7

	f.engine.Start(ctx, chatID)
	eventID := f.session(chatID).Draft.EventID

	f.engine.HandleText(ctx, chatID, "Hi")
	f.engine.HandleText(ctx, chatID, "Party")
	f.engine.HandleImage(ctx, chatID, "bg")
	f.engine.HandleText(ctx, chatID, "both")
	f.engine.HandleText(ctx, chatID, "1")
	reply := f.engine.Complete(ctx, chatID)

	if !strings.Contains(reply, eventID) {
		t.Errorf("reply %q does not embed event id %q", reply, eventID)
	}
	event, err := f.events.FindByID(ctx, eventID)
	if err != nil {
		t.Fatalf("event not persisted: %v", err)
	}
	if event.WelcomeText != "Hi" || event.Description != "Party" {
		t.Errorf("unexpected event fields: %+v", event)
	}
	if event.ServiceType != domain.ServiceBoth || event.UploadLimit != 1 {
		t.Errorf("unexpected event settings: %+v", event)
	}
	if got := len(f.photos.all()); got != 0 {
		t.Errorf("len(photos) = %d, want 0", got)
	}
}

func TestCreation_TextBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		step    domain.Step
		input   string
		advance bool
	}{
		{"welcome at limit", domain.StepWelcomeText, strings.Repeat("a", 100), true},
		{"welcome over limit", domain.StepWelcomeText, strings.Repeat("a", 101), false},
		{"welcome empty", domain.StepWelcomeText, "", false},
		{"description at limit", domain.StepDescription, strings.Repeat("b", 200), true},
		{"description over limit", domain.StepDescription, strings.Repeat("b", 201), false},
		{"service type valid", domain.StepServiceType, "viewalbum", true},
		{"service type uppercase", domain.StepServiceType, "BOTH", true},
		{"service type unknown", domain.StepServiceType, "albumonly", false},
		{"upload limit lower bound", domain.StepUploadLimit, "1", true},
		{"upload limit upper bound", domain.StepUploadLimit, "20", true},
		{"upload limit zero", domain.StepUploadLimit, "0", false},
		{"upload limit too high", domain.StepUploadLimit, "21", false},
		{"upload limit not a number", domain.StepUploadLimit, "many", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCreationFixture()
			ctx := context.Background()
			const chatID int64 = 1

			f.advanceTo(t, chatID, tt.step)
			before := *f.session(chatID)

			f.engine.HandleText(ctx, chatID, tt.input)

			after := f.session(chatID)
			if tt.advance {
				if after.Step == before.Step {
					t.Errorf("step did not advance from %v on valid input %q", before.Step, tt.input)
				}
			} else {
				if after.Step != before.Step {
					t.Errorf("step advanced from %v to %v on invalid input %q",
						before.Step, after.Step, tt.input)
				}
				if after.Draft != before.Draft {
					t.Errorf("draft changed on invalid input: before %+v after %+v",
						before.Draft, after.Draft)
				}
			}
		})
	}
}

func TestCreation_CompleteIsNoOpOutsideFinalStep(t *testing.T) {
	steps := []domain.Step{
		domain.StepWelcomeText,
		domain.StepDescription,
		domain.StepBackgroundImage,
		domain.StepServiceType,
		domain.StepUploadLimit,
	}
	for _, step := range steps {
		t.Run(step.String(), func(t *testing.T) {
			f := newCreationFixture()
			ctx := context.Background()
			const chatID int64 = 1

			f.advanceTo(t, chatID, step)
			f.engine.Complete(ctx, chatID)

			if f.events.count() != 0 {
				t.Error("completion outside preloaded_photos must not persist an event")
			}
			if got := f.session(chatID); got == nil || got.Step != step {
				t.Errorf("session changed by no-op completion: %+v", got)
			}
		})
	}
}

func TestCreation_CompleteWithoutSession(t *testing.T) {
	f := newCreationFixture()
	f.engine.Complete(context.Background(), 99)
	if f.events.count() != 0 {
		t.Error("completion without a session must not persist an event")
	}
}

func TestCreation_StorageFailureHoldsStep(t *testing.T) {
	f := newCreationFixture()
	ctx := context.Background()
	const chatID int64 = 1

	f.advanceTo(t, chatID, domain.StepBackgroundImage)

	f.storage.err = errBoom
	f.engine.HandleImage(ctx, chatID, "bg")
	if got := f.session(chatID).Step; got != domain.StepBackgroundImage {
		t.Fatalf("step = %v after storage failure, want background_image", got)
	}
	if f.session(chatID).Draft.BackgroundImage != nil {
		t.Error("draft must not hold a reference after a failed transfer")
	}

	// Resending retries the whole ingestion.
	f.storage.err = nil
	f.engine.HandleImage(ctx, chatID, "bg")
	if got := f.session(chatID).Step; got != domain.StepServiceType {
		t.Errorf("step = %v after retry, want service_type", got)
	}
}

func TestCreation_FetchFailureHoldsStep(t *testing.T) {
	f := newCreationFixture()
	ctx := context.Background()
	const chatID int64 = 1

	f.advanceTo(t, chatID, domain.StepPreloadedPhotos)

	f.files.err = errBoom
	f.engine.HandleImage(ctx, chatID, "photo-1")
	state := f.session(chatID)
	if state.Step != domain.StepPreloadedPhotos {
		t.Errorf("step = %v after fetch failure", state.Step)
	}
	if len(state.PreloadedPhotos) != 0 {
		t.Errorf("collected %d photos after fetch failure, want 0", len(state.PreloadedPhotos))
	}
}

func TestCreation_ImageInTextStepHoldsState(t *testing.T) {
	f := newCreationFixture()
	ctx := context.Background()
	const chatID int64 = 1

	f.advanceTo(t, chatID, domain.StepDescription)
	f.engine.HandleImage(ctx, chatID, "surprise")

	if got := f.session(chatID).Step; got != domain.StepDescription {
		t.Errorf("step = %v, want description", got)
	}
	if f.storage.uploads != 0 {
		t.Error("unexpected storage upload for image sent in a text step")
	}
}

func TestCreation_InsertFailureDiscardsSession(t *testing.T) {
	f := newCreationFixture()
	ctx := context.Background()
	const chatID int64 = 1

	f.advanceTo(t, chatID, domain.StepPreloadedPhotos)
	f.events.insertErr = errBoom

	f.engine.Complete(ctx, chatID)

	if f.session(chatID) != nil {
		t.Error("session must be discarded even when finalization fails")
	}
	if got := len(f.photos.all()); got != 0 {
		t.Errorf("persisted %d photos despite event insert failure", got)
	}
}

func TestCreation_RestartReplacesSession(t *testing.T) {
	f := newCreationFixture()
	ctx := context.Background()
	const chatID int64 = 1

	f.engine.Start(ctx, chatID)
	first := f.session(chatID).Draft.EventID
	f.engine.HandleText(ctx, chatID, "halfway through")

	f.engine.Start(ctx, chatID)
	state := f.session(chatID)
	if state.Step != domain.StepWelcomeText {
		t.Errorf("step = %v after restart, want welcome_text", state.Step)
	}
	if state.Draft.EventID == first {
		t.Error("restart must seed a fresh event id")
	}
	if state.Draft.WelcomeText != "" {
		t.Error("restart must discard the prior draft")
	}
}

func TestCreation_DisableFlow(t *testing.T) {
	f := newCreationFixture()
	ctx := context.Background()
	const chatID int64 = 1

	event := domain.Event{
		EventID:     "party123",
		ServiceType: domain.ServiceBoth,
		Status:      domain.StatusActive,
		UploadLimit: 5,
	}
	if err := f.events.Insert(ctx, event); err != nil {
		t.Fatal(err)
	}

	f.engine.StartDisable(ctx, chatID)
	if got := f.session(chatID).Step; got != domain.StepDisableEventID {
		t.Fatalf("step = %v, want disable_event_id", got)
	}

	// Unknown id re-prompts and keeps the session.
	f.engine.HandleText(ctx, chatID, "nosuchevent")
	if got := f.session(chatID); got == nil || got.Step != domain.StepDisableEventID {
		t.Fatalf("session changed on unknown event id: %+v", got)
	}

	f.engine.HandleText(ctx, chatID, "party123")
	if f.session(chatID) != nil {
		t.Error("session should end after a successful disable")
	}
	got, err := f.events.FindByID(ctx, "party123")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.StatusDisabled {
		t.Errorf("status = %q, want disabled", got.Status)
	}
}

func TestCreation_TextWithoutSession(t *testing.T) {
	f := newCreationFixture()
	reply := f.engine.HandleText(context.Background(), 5, "hello")
	if !strings.Contains(reply, "/start") {
		t.Errorf("reply %q should hint at /start", reply)
	}
}

func TestCreation_SessionsIndependentAcrossChats(t *testing.T) {
	f := newCreationFixture()
	ctx := context.Background()

	f.engine.Start(ctx, 1)
	f.engine.Start(ctx, 2)
	f.engine.HandleText(ctx, 1, "chat one welcome")

	if got := f.session(2).Step; got != domain.StepWelcomeText {
		t.Errorf("chat 2 step = %v, want welcome_text", got)
	}
	if got := f.session(1).Step; got != domain.StepDescription {
		t.Errorf("chat 1 step = %v, want description", got)
	}
}
