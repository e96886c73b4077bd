package domain

import (
	"fmt"
	"strings"
)

// Mode selects the step granularity used for labelling a trace.
type Mode string

const (
	// ModeMicro processes one character at a time.
	ModeMicro Mode = "micro"
	// ModeBatch groups maximal runs of identical characters. A run of length k still
	// produces k steps; only the labels change.
	ModeBatch Mode = "batch"
)

// ParseMode converts user input into a Mode. The empty string means ModeMicro.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ModeMicro):
		return ModeMicro, nil
	case string(ModeBatch):
		return ModeBatch, nil
	}
	return "", fmt.Errorf("invalid mode %q (expected micro or batch)", s)
}
