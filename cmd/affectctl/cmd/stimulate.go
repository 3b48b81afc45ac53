package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/affectengine/affectengine/internal/affect"
)

var stimulateCmd = &cobra.Command{
	Use:   "stimulate <label> <intensity> [reason]",
	Short: "Apply a stimulus and persist the result",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(c *cobra.Command, args []string) error {
		label := args[0]
		intensity, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid intensity %q: %w", args[1], err)
		}
		reason := ""
		if len(args) == 3 {
			reason = args[2]
		}

		manager, _, err := openManager()
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		state := manager.Read()
		decayed := manager.ApplyDecay(state, now)
		stimulated := manager.ApplyStimulus(decayed, label, intensity, reason, 1.0, now)
		advanced := manager.AdvanceRumination(stimulated, now)

		saved, err := manager.Save(advanced, now)
		if err != nil {
			return err
		}
		return printJSON(affect.BuildSnapshot(saved))
	},
}
