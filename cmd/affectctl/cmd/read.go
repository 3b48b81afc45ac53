package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/affectengine/affectengine/internal/affect"
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Print the current affective state snapshot, decayed to now",
	RunE: func(c *cobra.Command, args []string) error {
		manager, _, err := openManager()
		if err != nil {
			return err
		}
		state := manager.Read()
		decayed := manager.ApplyDecay(state, time.Now().UTC())
		return printJSON(affect.BuildSnapshot(decayed))
	},
}
