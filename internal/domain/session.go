package domain

// Step is the current position of a chat inside the guided event-creation
// conversation. The zero value means no conversation is in progress.
type Step int

const (
	StepNone Step = iota
	StepWelcomeText
	StepDescription
	StepBackgroundImage
	StepServiceType
	StepUploadLimit
	StepPreloadedPhotos
	// StepDisableEventID is a separate single-step flow entered by the
	// disable command, never reached from the creation chain.
	StepDisableEventID
)

func (s Step) String() string {
	switch s {
	case StepNone:
		return "none"
	case StepWelcomeText:
		return "welcome_text"
	case StepDescription:
		return "description"
	case StepBackgroundImage:
		return "background_image"
	case StepServiceType:
		return "service_type"
	case StepUploadLimit:
		return "upload_limit"
	case StepPreloadedPhotos:
		return "preloaded_photos"
	case StepDisableEventID:
		return "disable_event_id"
	}
	return "unknown"
}

// SessionState holds one chat's in-flight conversation: the current step and
// the event draft built up so far. It lives only in the session store and is
// discarded on completion or cancellation.
type SessionState struct {
	CorrelationID   string
	Step            Step
	Draft           Event
	PreloadedPhotos []ImageRef
}
