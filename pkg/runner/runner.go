package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/aretw0/pdaboat/internal/logging"
	"github.com/aretw0/pdaboat/pkg/domain"
	"github.com/aretw0/pdaboat/pkg/playback"
	"github.com/aretw0/pdaboat/pkg/quiz"
)

// Runner plays results in a terminal.
type Runner struct {
	Reader      *bufio.Reader
	Writer      io.Writer
	Bank        *quiz.Bank
	Policy      playback.QuizPolicy
	Pace        time.Duration // Negative means the mode's default pace
	Profile     termenv.Profile
	Interactive bool // Quizzes are only asked when true
	Logger      *slog.Logger
	Rand        *rand.Rand
}

// Option configures a Runner.
type Option func(*Runner)

// WithReader sets the source of quiz answers and predictions.
func WithReader(r io.Reader) Option {
	return func(run *Runner) {
		run.Reader = bufio.NewReader(r)
	}
}

// WithWriter sets the output.
func WithWriter(w io.Writer) Option {
	return func(r *Runner) {
		r.Writer = w
	}
}

// WithQuizBank replaces the embedded question bank.
func WithQuizBank(b *quiz.Bank) Option {
	return func(r *Runner) {
		r.Bank = b
	}
}

// WithQuizPolicy replaces the default quiz trigger.
func WithQuizPolicy(p playback.QuizPolicy) Option {
	return func(r *Runner) {
		r.Policy = p
	}
}

// WithPace sets the delay between steps. Zero plays without delay.
func WithPace(d time.Duration) Option {
	return func(r *Runner) {
		r.Pace = d
	}
}

// WithColorProfile forces a colour profile (termenv.Ascii disables colours).
func WithColorProfile(p termenv.Profile) Option {
	return func(r *Runner) {
		r.Profile = p
	}
}

// WithInteractive enables quizzes.
func WithInteractive(interactive bool) Option {
	return func(r *Runner) {
		r.Interactive = interactive
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithRand makes question selection reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(r *Runner) {
		r.Rand = rng
	}
}

// NewRunner creates a runner writing to stdout with the terminal's colour profile.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Writer:  os.Stdout,
		Pace:    -1,
		Profile: termenv.ColorProfile(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Reader == nil {
		r.Reader = bufio.NewReader(os.Stdin)
	}
	if r.Bank == nil {
		r.Bank = quiz.Default()
	}
	if r.Policy == nil {
		r.Policy = playback.DefaultQuizPolicy()
	}
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	return r
}

// Play applies every step of res, books the run on score and returns the verdict.
// Cancelling ctx stops playback between two steps.
func (r *Runner) Play(ctx context.Context, res *domain.Result, prediction domain.Prediction, score *domain.Score) (domain.Verdict, error) {
	pace := r.Pace
	if pace < 0 {
		pace = playback.DefaultPace(res.Mode)
	}

	r.header(res)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var quizErr error

	hooks := playback.Hooks{
		OnStep: func(_ context.Context, ev playback.Event) {
			r.printStep(ev)
		},
	}
	if r.Interactive {
		// Cleared for the rest of this run once the reader is exhausted.
		answering := true
		hooks.OnQuiz = func(ctx context.Context, ev playback.Event) {
			if !answering {
				return
			}
			open, err := r.ask(ctx, ev, score)
			if err != nil {
				quizErr = err
				cancel()
				return
			}
			answering = open
		}
	}

	ctrl := playback.New(res.Trace, res.TemplateID,
		playback.WithQuizPolicy(r.Policy),
		playback.WithLogger(r.Logger),
		playback.WithHooks(hooks),
	)
	err := ctrl.RunToEnd(runCtx, pace)
	if quizErr != nil {
		return "", quizErr
	}
	if err != nil {
		return "", err
	}

	verdict, _ := ctrl.Verdict()
	r.footer(res, verdict, prediction)
	if score != nil {
		score.Record(verdict, prediction)
		r.PrintScore(*score)
	}
	return verdict, nil
}

// PromptPrediction asks whether the input will be accepted.
// An empty answer or the end of input means no prediction.
func (r *Runner) PromptPrediction(ctx context.Context) (domain.Prediction, error) {
	for {
		fmt.Fprint(r.Writer, "Will the boat make it? [a]ccept / [r]eject / enter to skip: ")
		line, err := r.readLine(ctx)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.Writer)
			return domain.PredictionNone, nil
		}
		if err != nil {
			return "", err
		}
		switch strings.ToLower(line) {
		case "a":
			return domain.PredictionAccept, nil
		case "r":
			return domain.PredictionReject, nil
		}
		p, err := domain.ParsePrediction(line)
		if err == nil {
			return p, nil
		}
		fmt.Fprintf(r.Writer, "Error: %v. Please try again.\n", err)
	}
}

// ask interjects a question after the step in ev. It reports false once the reader is
// exhausted, and skips silently when the bank has nothing for the template.
func (r *Runner) ask(ctx context.Context, ev playback.Event, score *domain.Score) (bool, error) {
	q, ok := r.Bank.Progressive(ev.TemplateID, ev.Index+1, ev.Total, r.Rand)
	if !ok {
		r.Logger.Debug("No quiz available", "template", ev.TemplateID)
		return true, nil
	}

	fmt.Fprintln(r.Writer)
	fmt.Fprintf(r.Writer, "%s %s\n", r.paint("Quiz ("+string(q.Difficulty)+"):", "#c084fc", true), q.Question)
	for i, opt := range q.Options {
		fmt.Fprintf(r.Writer, "  %d) %s\n", i+1, opt)
	}

	for {
		fmt.Fprint(r.Writer, "> ")
		line, err := r.readLine(ctx)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.Writer)
			return false, nil
		}
		if err != nil {
			return false, err
		}

		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(q.Options) {
			fmt.Fprintf(r.Writer, "Error: pick a number between 1 and %d. Please try again.\n", len(q.Options))
			continue
		}

		correct, _, err := r.Bank.Check(q.ID, n-1)
		if err != nil {
			return false, err
		}
		if correct {
			fmt.Fprintln(r.Writer, r.paint("Correct!", "#4ade80", true), q.Explanation)
		} else {
			fmt.Fprintf(r.Writer, "%s The answer was %d) %s. %s\n",
				r.paint("Not quite.", "#f87171", true), q.Answer+1, q.Options[q.Answer], q.Explanation)
		}
		if score != nil {
			score.RecordQuiz(correct)
		}
		fmt.Fprintln(r.Writer)
		return true, nil
	}
}

func (r *Runner) header(res *domain.Result) {
	input := res.Input
	if input == "" {
		input = "ε"
	}
	fmt.Fprintf(r.Writer, "%s %s  input=%q  mode=%s\n",
		r.paint("Template", "#818cf8", true), res.TemplateID, input, res.Mode)
	if res.Fallback {
		fmt.Fprintln(r.Writer, r.paint("(unknown template requested, using the default)", "#fbbf24", false))
	}
	fmt.Fprintln(r.Writer)
}

func (r *Runner) printStep(ev playback.Event) {
	step := ev.Step
	color := "#e5e7eb"
	switch {
	case step.Failed():
		color = "#f87171"
	case step.IsEndOfInput() && step.State == domain.StateAccept:
		color = "#4ade80"
	}

	fmt.Fprintf(r.Writer, "[%d/%d] %s  stack=%s  state=%s\n",
		step.Index, ev.Total, r.paint(step.Operation, color, true), step.StackAfter, step.State)
	fmt.Fprintf(r.Writer, "      %s\n", r.paint(step.Explanation, "#9ca3af", false))
}

func (r *Runner) footer(res *domain.Result, verdict domain.Verdict, prediction domain.Prediction) {
	fmt.Fprintln(r.Writer)
	if verdict == domain.VerdictAccept {
		fmt.Fprintln(r.Writer, r.paint("ACCEPTED: the boat reached the shore.", "#4ade80", true))
	} else {
		msg := "REJECTED: the boat sank."
		if failure := res.Trace.Failure(); failure != "" {
			msg = fmt.Sprintf("REJECTED: the boat sank (%s).", strings.ToLower(failure))
		}
		fmt.Fprintln(r.Writer, r.paint(msg, "#f87171", true))
	}

	if prediction != domain.PredictionNone {
		if string(prediction) == string(verdict) {
			fmt.Fprintf(r.Writer, "You predicted %s. Well spotted!\n", prediction)
		} else {
			fmt.Fprintf(r.Writer, "You predicted %s. Better luck next time.\n", prediction)
		}
	}
}

// PrintScore writes a one-line scoreboard.
func (r *Runner) PrintScore(s domain.Score) {
	line := fmt.Sprintf("Played %d | Accepted %d (%d%%) | Predictions %d/%d (%d%%) | Streak %d",
		s.Played, s.Accepted, s.AcceptanceRate(), s.CorrectPredictions, s.Played, s.PredictionRate(), s.Streak)
	if s.QuizAnswered > 0 {
		line += fmt.Sprintf(" | Quiz %d/%d", s.QuizCorrect, s.QuizAnswered)
	}
	fmt.Fprintln(r.Writer, r.paint(line, "#a78bfa", false))
}

func (r *Runner) paint(s, hex string, bold bool) string {
	out := r.Profile.String(s).Foreground(r.Profile.Color(hex))
	if bold {
		out = out.Bold()
	}
	return out.String()
}

func (r *Runner) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := r.Reader.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	clean, serr := SanitizeInput(strings.TrimSpace(line))
	if serr != nil {
		return "", serr
	}
	return clean, nil
}
