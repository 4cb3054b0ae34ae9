package cmd

import (
	"fmt"
	"os"

	"github.com/brooksandrew/catan-spectator/internal/game"
	"github.com/brooksandrew/catan-spectator/internal/gamelog"
	"github.com/brooksandrew/catan-spectator/internal/session"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay [game_name]",
	Short: "Replay a recorded game and print its journal",
	Long: `Reads a game's record.jsonl, re-applies every action through the same
validator the live session used, and prints the resulting journal. A
record that no longer replays cleanly is reported with the failing
step.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		workspace := session.NewWorkspace(gamesDir())
		recordPath, err := workspace.Load(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		journal := gamelog.NewJournal()
		var bar *progressbar.ProgressBar
		g, err := session.Replay(recordPath, journal, func(step, total int) {
			if bar == nil {
				bar = progressbar.Default(int64(total), "Replaying")
			}
			bar.Add(1)
		})
		if err != nil {
			fmt.Printf("Replay failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Println()
		fmt.Print(journal.Render())

		if g.Phase() != game.PhaseGameOver {
			fmt.Printf("\nGame in progress: turn %d, %s to act.\n", g.Turn(), g.CurrentPlayer().Color)
			for _, p := range g.Players() {
				fmt.Printf("  %s: %d points\n", p.Color, g.VictoryPoints(p.Seat))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
}
