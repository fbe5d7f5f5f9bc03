package models

import "errors"

var (
	ErrIneligibleRole             = errors.New("only students can register for events")
	ErrAlreadyRegistered          = errors.New("already registered for this event")
	ErrEventFull                  = errors.New("event is full")
	ErrEventNotFound              = errors.New("event not found")
	ErrCapacityBelowParticipants  = errors.New("max participants below current participants")
	ErrRegistrationNotFound       = errors.New("registration not found")
	ErrUserNotFound               = errors.New("user not found")
	ErrBackendUnavailable         = errors.New("backend unavailable")
	ErrNotificationDispatchFailed = errors.New("notification dispatch failed")
)
