package cmd

import (
	"fmt"
	"os"

	"github.com/brooksandrew/catan-spectator/internal/session"

	"github.com/spf13/cobra"
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create [game_name]",
	Short: "Create a new saved game folder",
	Long: `Bootstraps a fresh game folder under the games directory, holding the
append-only record.jsonl the game is replayed from and the journal.txt
the finished log is rendered into.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		workspace := session.NewWorkspace(gamesDir())
		recordPath, err := workspace.Create(args[0])
		if err != nil {
			fmt.Printf("Error creating game: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Successfully created game!\n")
		fmt.Printf("Record will be stored at: %s\n", recordPath)
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
}
