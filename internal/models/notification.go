package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationKind identifies what triggered a notification.
type NotificationKind string

const (
	// NotificationSupportAlert is sent to a user's friends after a bad week.
	NotificationSupportAlert NotificationKind = "support_alert"
	// NotificationSelfCheckIn is the copy kept for the user who had the bad week.
	NotificationSelfCheckIn NotificationKind = "self_check_in"
)

// Notification is stored in MongoDB, one document per recipient.
type Notification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecipientID string             `bson:"recipient_id" json:"recipient_id"`
	SubjectID   string             `bson:"subject_id" json:"subject_id"`
	SubjectName string             `bson:"subject_name,omitempty" json:"subject_name,omitempty"`
	Kind        NotificationKind   `bson:"kind" json:"kind"`
	Message     string             `bson:"message" json:"message"`
	Read        bool               `bson:"read" json:"read"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
