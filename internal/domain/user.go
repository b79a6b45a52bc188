package domain

import "time"

// User is the identity mirror maintained by the auth collaborator. Check-in
// reads it to tell an unknown user apart from an unregistered one.
type User struct {
	ID          string
	DisplayName string
	Email       string
	CreatedAt   time.Time
}
