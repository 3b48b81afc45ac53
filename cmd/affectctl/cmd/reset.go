package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/affectengine/affectengine/internal/affect"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset dimensions, emotions, rumination and stimuli to defaults",
	RunE: func(c *cobra.Command, args []string) error {
		manager, _, err := openManager()
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		state := manager.Read()
		reset := manager.Reset(state)
		saved, err := manager.Save(reset, now)
		if err != nil {
			return err
		}
		return printJSON(affect.BuildSnapshot(saved))
	},
}
