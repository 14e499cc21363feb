package cmd

import (
	"github.com/spf13/cobra"

	"boscoin.io/announcer/lib/transaction/operation"
)

var (
	topicCmd       *cobra.Command
	topicAddCmd    *cobra.Command
	topicRemoveCmd *cobra.Command

	flagTopicName        string
	flagTopicDescription string
	flagTopicColor       string
)

func init() {
	topicCmd = &cobra.Command{
		Use:   "topic",
		Short: "Manage topics",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}

	topicAddCmd = &cobra.Command{
		Use:   "add <identifier>",
		Short: "Register a topic",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			submitOperation(c, operation.NewAddTopic(args[0], flagTopicName, flagTopicDescription, flagTopicColor))
		},
	}
	topicAddCmd.Flags().StringVar(&flagTopicName, "name", "", "display name")
	topicAddCmd.Flags().StringVar(&flagTopicDescription, "description", "", "description")
	topicAddCmd.Flags().StringVar(&flagTopicColor, "color", "", "display color, eg. '#ff0000'")
	addClientFlags(topicAddCmd, true)

	topicRemoveCmd = &cobra.Command{
		Use:   "remove <identifier>",
		Short: "Remove a topic no announcement refers to",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			submitOperation(c, operation.NewRemoveTopic(args[0]))
		},
	}
	addClientFlags(topicRemoveCmd, true)

	topicCmd.AddCommand(topicAddCmd, topicRemoveCmd)
	rootCmd.AddCommand(topicCmd)
}
