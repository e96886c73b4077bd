package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/aretw0/pdaboat"
	"github.com/aretw0/pdaboat/internal/cli"
	"github.com/aretw0/pdaboat/internal/presentation/tui"
	"github.com/aretw0/pdaboat/pkg/domain"
	"github.com/aretw0/pdaboat/pkg/playback"
	"github.com/aretw0/pdaboat/pkg/runner"
)

var runCmd = &cobra.Command{
	Use:   "run [template] [input]",
	Short: "Play a run step by step in the terminal",
	Long: `Plays the trace of input under template with the configured pace, asking quizzes along the
way when stdin is a terminal. Without an input argument, inputs are read from stdin one per
line and the scoreboard carries over between runs.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setup(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		templateID := app.Registry.DefaultID()
		if len(args) > 0 {
			templateID = args[0]
		}
		mode := app.Mode()
		if cmd.Flags().Changed("mode") {
			raw, _ := cmd.Flags().GetString("mode")
			if mode, err = domain.ParseMode(raw); err != nil {
				return err
			}
		}
		predictFlag, _ := cmd.Flags().GetString("predict")
		prediction, err := domain.ParsePrediction(predictFlag)
		if err != nil {
			return err
		}

		interactive := cli.IsInteractive(os.Stdin)
		noQuiz, _ := cmd.Flags().GetBool("no-quiz")
		policy := app.Policy
		if noQuiz {
			policy = playback.Never
		}

		stdin := bufio.NewReader(os.Stdin)
		profile := termenv.ColorProfile()
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			profile = termenv.Ascii
		}
		opts := []runner.Option{
			runner.WithWriter(cmd.OutOrStdout()),
			runner.WithReader(stdin),
			runner.WithInteractive(interactive && !noQuiz),
			runner.WithQuizPolicy(policy),
			runner.WithColorProfile(profile),
			runner.WithLogger(app.Logger),
		}
		if cmd.Flags().Changed("pace") {
			pace, _ := cmd.Flags().GetDuration("pace")
			opts = append(opts, runner.WithPace(pace))
		} else {
			opts = append(opts, runner.WithPace(app.Config.PaceFor(mode)))
		}
		r := runner.NewRunner(opts...)
		sim := app.NewSimulator()

		var score domain.Score
		play := func(input string) error {
			clean, err := runner.SanitizeInput(input)
			if err != nil {
				return err
			}
			res := sim.Simulate(ctx, templateID, clean, mode)
			_, err = r.Play(ctx, res, prediction, &score)
			return err
		}

		if len(args) == 2 {
			return play(args[1])
		}

		if interactive {
			tui.PrintBanner(cmd.OutOrStdout(), profile, strings.TrimSpace(pdaboat.Version))
			if tpl, ok := sim.Template(templateID); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\nTry: %s\n\n", tpl.Name, tpl.Description, strings.Join(tpl.Examples, ", "))
			}
		}
		for {
			if interactive {
				fmt.Fprint(cmd.OutOrStdout(), "Input (empty line to quit): ")
			}
			line, readErr := stdin.ReadString('\n')
			input := strings.TrimRight(line, "\r\n")
			if input == "" {
				return nil
			}
			if interactive && !cmd.Flags().Changed("predict") {
				if prediction, err = r.PromptPrediction(ctx); err != nil {
					return err
				}
			}
			if err := play(input); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			if readErr != nil {
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("mode", "m", "", "Processing mode: micro or batch (default from config)")
	runCmd.Flags().String("predict", "", "Predict the verdict before the run: accept or reject")
	runCmd.Flags().Duration("pace", 0, "Delay between steps (default from config)")
	runCmd.Flags().Bool("no-quiz", false, "Never interrupt playback with quizzes")
	runCmd.Flags().Bool("no-color", false, "Disable colours")
}
