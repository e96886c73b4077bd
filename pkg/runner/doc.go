/*
Package runner plays simulation results in a terminal.

It is the bridge between a generated trace and a human: steps are applied through a
playback controller at a steady pace, quizzes are asked on an interactive reader, and the
final verdict is compared with the player's prediction before the scoreboard is printed.

# Key Components

  - Runner: paces playback, prints coloured steps and asks quizzes.
  - SanitizeInput: the input policy shared by every delivery surface (CLI, HTTP, MCP).

# Usage

	r := runner.NewRunner(
		runner.WithWriter(os.Stdout),
		runner.WithReader(os.Stdin),
		runner.WithInteractive(true),
	)

	var score domain.Score
	res := sim.Simulate(ctx, "anbn", "aabb", domain.ModeMicro)
	if _, err := r.Play(ctx, res, domain.PredictionAccept, &score); err != nil {
		log.Fatal(err)
	}
*/
package runner
