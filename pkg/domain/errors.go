package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrTemplateNotFound is returned by strict template lookups.
// Simulation never fails with it: unknown ids fall back to the default template.
var ErrTemplateNotFound = errors.New("template not found")

// ErrPlaybackComplete is returned when advancing past the final step of a trace.
var ErrPlaybackComplete = errors.New("playback complete")

// ErrNoPendingQuiz is returned when an answer is submitted but no quiz was asked.
var ErrNoPendingQuiz = errors.New("no pending quiz")
