// Package game runs server-side playback sessions.
//
// A session persists only its parameters, cursor, pending quiz and scoreboard. Every call
// regenerates the trace and resumes a playback controller at the stored cursor, so any
// replica sharing the session store can serve any session.
package game
