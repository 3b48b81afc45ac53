package cmd

import (
	"github.com/spf13/cobra"

	"github.com/affectengine/affectengine/internal/persistence"
)

var peekCmd = &cobra.Command{
	Use:   "peek <agentsRoot> <id>",
	Short: "List sibling agents' latest stimulus under agentsRoot",
	Args:  cobra.ExactArgs(2),
	RunE: func(c *cobra.Command, args []string) error {
		results, err := persistence.Peek(args[0], args[1], persistence.DefaultPeekLimit)
		if err != nil {
			return err
		}
		return printJSON(results)
	},
}
