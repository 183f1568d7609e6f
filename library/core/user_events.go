package core

import "time"

const (
	UserRegisteredEventType     = "UserRegistered"
	UserProfileUpdatedEventType = "UserProfileUpdated"
	UserRoleChangedEventType    = "UserRoleChanged"
)

// UserRegistered represents a new account. Email is stored normalized.
type UserRegistered struct {
	UserID       UserIDString
	Email        string
	PasswordHash string
	Role         RoleString
	Profile
	OccurredAt OccurredAtTS
}

// BuildUserRegistered creates a new UserRegistered event.
func BuildUserRegistered(
	userID UserIDString,
	email string,
	passwordHash string,
	role RoleString,
	profile Profile,
	occurredAt time.Time,
) UserRegistered {

	return UserRegistered{
		UserID:       userID,
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         role,
		Profile:      profile,
		OccurredAt:   ToOccurredAt(occurredAt),
	}
}

func (e UserRegistered) EventType() string {
	return UserRegisteredEventType
}

func (e UserRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e UserRegistered) IsErrorEvent() bool {
	return false
}

// UserProfileUpdated replaces the profile of a user.
type UserProfileUpdated struct {
	UserID UserIDString
	Profile
	OccurredAt OccurredAtTS
}

// BuildUserProfileUpdated creates a new UserProfileUpdated event.
func BuildUserProfileUpdated(userID UserIDString, profile Profile, occurredAt time.Time) UserProfileUpdated {
	return UserProfileUpdated{
		UserID:     userID,
		Profile:    profile,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e UserProfileUpdated) EventType() string {
	return UserProfileUpdatedEventType
}

func (e UserProfileUpdated) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e UserProfileUpdated) IsErrorEvent() bool {
	return false
}

// UserRoleChanged represents an administrator assigning a new role.
type UserRoleChanged struct {
	UserID     UserIDString
	Role       RoleString
	ChangedBy  UserIDString
	OccurredAt OccurredAtTS
}

// BuildUserRoleChanged creates a new UserRoleChanged event.
func BuildUserRoleChanged(userID UserIDString, role RoleString, changedBy UserIDString, occurredAt time.Time) UserRoleChanged {
	return UserRoleChanged{
		UserID:     userID,
		Role:       role,
		ChangedBy:  changedBy,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e UserRoleChanged) EventType() string {
	return UserRoleChangedEventType
}

func (e UserRoleChanged) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e UserRoleChanged) IsErrorEvent() bool {
	return false
}
