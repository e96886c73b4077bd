// Package playback replays a generated trace step by step: it tracks the cursor and the
// observable stack and state, decides quiz interjections through a QuizPolicy, and paces
// cancellable run-to-end loops.
package playback
