package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrace_Accessors(t *testing.T) {
	trace := Trace{
		{Index: 1, Symbol: "a", State: StateQ0},
		{Index: 2, Symbol: EndOfInput, State: StateAccept},
	}

	step, ok := trace.At(0)
	assert.True(t, ok)
	assert.Equal(t, "a", step.Symbol)

	_, ok = trace.At(2)
	assert.False(t, ok)
	_, ok = trace.At(-1)
	assert.False(t, ok)

	last, ok := trace.Last()
	assert.True(t, ok)
	assert.True(t, last.IsEndOfInput())
	assert.Equal(t, VerdictAccept, trace.Verdict())
	assert.Empty(t, trace.Failure())
}

func TestTrace_FailureVerdict(t *testing.T) {
	trace := Trace{{Index: 1, Symbol: "b", State: StateReject, Error: ErrorStackUnderflow}}
	assert.Equal(t, VerdictReject, trace.Verdict())
	assert.Equal(t, ErrorStackUnderflow, trace.Failure())
	assert.True(t, trace[0].Failed())

	var empty Trace
	assert.Equal(t, VerdictReject, empty.Verdict())
	assert.Empty(t, empty.Failure())
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeMicro, false},
		{"micro", ModeMicro, false},
		{"BATCH", ModeBatch, false},
		{"turbo", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestState_Terminal(t *testing.T) {
	assert.True(t, StateAccept.Terminal())
	assert.True(t, StateReject.Terminal())
	assert.False(t, StateQ2.Terminal())
	assert.True(t, StateQ3.Valid())
	assert.False(t, State("q9").Valid())
}

func TestOutcome_Helpers(t *testing.T) {
	assert.Equal(t, Outcome{Next: StateReject, Reject: true}, Rejected())
	assert.Equal(t, Outcome{Next: StateAccept, Accept: true}, Decide(true))
	assert.Equal(t, Outcome{Next: StateReject}, Decide(false))

	rule := RuleFunc(func(symbol string, stack Stack, state State) Outcome {
		return Outcome{Next: state}
	})
	assert.Equal(t, StateQ1, rule.Evaluate("a", nil, StateQ1).Next)
}
