package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/affectengine/affectengine/internal/affect"
)

var presetCmd = &cobra.Command{
	Use:   "preset <id>",
	Short: "Apply a catalogued personality preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		manager, _, err := openManager()
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		state := manager.Read()
		applied, err := manager.ApplyPreset(state, args[0])
		if err != nil {
			return err
		}
		saved, err := manager.Save(applied, now)
		if err != nil {
			return err
		}
		return printJSON(affect.BuildSnapshot(saved))
	},
}
