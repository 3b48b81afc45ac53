package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/affectengine/affectengine/internal/affect"
	"github.com/affectengine/affectengine/internal/config"
	"github.com/affectengine/affectengine/internal/persistence"
)

var rootCmd = &cobra.Command{
	Use:   "affectctl",
	Short: "Inspect and mutate an agent's affective state",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(readCmd, stimulateCmd, resetCmd, presetCmd, peekCmd)
}

// openManager loads configuration and builds a manager pointed at the
// configured state file, the same store affectd writes to.
func openManager() (*affect.Manager, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	store := persistence.NewFileStore(cfg.StatePath, affect.DefaultPersonality())
	manager := affect.NewManager(store, cfg.AffectConfig(), nil)
	return manager, cfg, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
