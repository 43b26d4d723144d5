package domain

import "time"

const (
	WelcomeTextMaxLen = 100
	DescriptionMaxLen = 200

	UploadLimitMin     = 1
	UploadLimitMax     = 20
	UploadLimitDefault = 5
)

type ServiceType string

const (
	ServiceBoth       ServiceType = "both"
	ServiceViewAlbum  ServiceType = "viewalbum"
	ServiceUploadPics ServiceType = "uploadpics"
)

func ParseServiceType(token string) (ServiceType, bool) {
	switch ServiceType(token) {
	case ServiceBoth, ServiceViewAlbum, ServiceUploadPics:
		return ServiceType(token), true
	}
	return "", false
}

type EventStatus string

const (
	StatusActive   EventStatus = "active"
	StatusDisabled EventStatus = "disabled"
)

// ImageRef is a stable handle to an uploaded image: the storage-side id
// plus the public retrieval URL.
type ImageRef struct {
	StorageID string `bson:"storageId" json:"storage_id"`
	URL       string `bson:"url" json:"url"`
}

type Event struct {
	EventID         string      `bson:"eventId" json:"event_id"`
	WelcomeText     string      `bson:"welcomeText" json:"welcome_text"`
	Description     string      `bson:"description" json:"description"`
	BackgroundImage *ImageRef   `bson:"backgroundImage,omitempty" json:"background_image,omitempty"`
	ServiceType     ServiceType `bson:"serviceType" json:"service_type"`
	UploadLimit     int         `bson:"uploadLimit" json:"upload_limit"`
	CreatedBy       int64       `bson:"createdBy" json:"-"`
	Status          EventStatus `bson:"status" json:"status"`
	CreatedAt       time.Time   `bson:"createdAt" json:"created_at"`
}

// UploadEnabled reports whether the event currently accepts guest uploads.
func (e Event) UploadEnabled() bool {
	return e.Status == StatusActive && e.ServiceType != ServiceViewAlbum
}

type UploadType string

const (
	UploadPreloaded UploadType = "preloaded"
	UploadGuest     UploadType = "guest"
)

type Photo struct {
	EventID    string     `bson:"eventId" json:"event_id"`
	Image      ImageRef   `bson:"image" json:"image"`
	UploadType UploadType `bson:"uploadType" json:"upload_type"`
	UploaderIP string     `bson:"uploaderIp,omitempty" json:"-"`
	UserAgent  string     `bson:"userAgent,omitempty" json:"-"`
	Approved   bool       `bson:"approved" json:"approved"`
	UploadedAt time.Time  `bson:"uploadedAt" json:"uploaded_at"`
}
