package cmd

import (
	"fmt"
	"os"

	"github.com/brooksandrew/catan-spectator/internal/board"
	"github.com/brooksandrew/catan-spectator/internal/session"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [game_name]",
	Short: "Start the interactive logging shell for a live game",
	Long: `Starts the interactive shell an operator uses to log a live game.
Every command is one table action:
	> start
	> build settlement 23
	> green roll 3 4
Actions are validated before they commit; 'undo' retracts mistakes.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		gameName := args[0]
		workspace := session.NewWorkspace(gamesDir())
		recordPath, err := workspace.Create(gameName)
		if err != nil {
			fmt.Printf("Error preparing game folder: %v\n", err)
			os.Exit(1)
		}

		cfg := session.Config{
			DataDirs:    dataDirs(),
			RecordPath:  recordPath,
			JournalPath: workspace.JournalPath(gameName),
		}
		cfg.Variant, _ = cmd.Flags().GetString("variant")
		cfg.SkipPregame, _ = cmd.Flags().GetBool("skip_pregame")
		cfg.Seed, _ = cmd.Flags().GetInt64("seed")

		roster, _ := cmd.Flags().GetStringSlice("players")
		cfg.Players, err = session.ParseRoster(roster)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		cfg.Board, err = boardConfig(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		app, err := session.NewSession(cfg)
		if err != nil {
			fmt.Printf("Failed to bootstrap game session: %v\n", err)
			os.Exit(1)
		}
		defer app.Close()

		if err := RunTUI(app, gameName); err != nil {
			fmt.Printf("Fatal TUI Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// boardConfig assembles the board builder config from the watch flags.
func boardConfig(cmd *cobra.Command) (board.Config, error) {
	var cfg board.Config
	var err error

	terrain, _ := cmd.Flags().GetString("terrain")
	if cfg.Terrain, err = board.ParseOpt(terrain); err != nil {
		return cfg, err
	}
	numbers, _ := cmd.Flags().GetString("numbers")
	if cfg.Numbers, err = board.ParseOpt(numbers); err != nil {
		return cfg, err
	}
	ports, _ := cmd.Flags().GetString("ports")
	if cfg.Ports, err = board.ParseOpt(ports); err != nil {
		return cfg, err
	}

	cfg.PresetFile, _ = cmd.Flags().GetString("preset")
	cfg.Seed, _ = cmd.Flags().GetInt64("board_seed")
	return cfg, nil
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().String("terrain", string(board.OptDebug), "terrain setup: random, preset, empty, or debug")
	watchCmd.Flags().String("numbers", string(board.OptDebug), "number setup: random, preset, empty, or debug")
	watchCmd.Flags().String("ports", string(board.OptDebug), "port setup: random, preset, empty, or debug")
	watchCmd.Flags().String("preset", "", "board file name for preset aspects")
	watchCmd.Flags().Int64("board_seed", 0, "seed for random board aspects")
	watchCmd.Flags().String("variant", "", "house-rule variant file name")
	watchCmd.Flags().Bool("skip_pregame", false, "start at the first turn, skipping initial placement")
	watchCmd.Flags().Int64("seed", 0, "seed for the dev card shuffle")
	watchCmd.Flags().StringSlice("players", nil, "roster as color:name pairs in seat order, e.g. green:amy,blue:bob (default: the debug four)")
}
