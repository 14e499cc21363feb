package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/announcer/cmd/announcer/common"
	"boscoin.io/announcer/lib/transaction/operation"
)

var (
	announceCmd           *cobra.Command
	announcementCmd       *cobra.Command
	announcementDeleteCmd *cobra.Command

	flagTopic string
)

func init() {
	announceCmd = &cobra.Command{
		Use:   "announce <title> <content>",
		Short: "Publish an announcement",
		Args:  cobra.ExactArgs(2),
		Run: func(c *cobra.Command, args []string) {
			submitOperation(c, operation.NewAnnouncement(args[0], args[1], flagTopic))
		},
	}
	announceCmd.Flags().StringVar(&flagTopic, "topic", "", "identifier of the topic")
	addClientFlags(announceCmd, true)

	announcementCmd = &cobra.Command{
		Use:   "announcement",
		Short: "Manage announcements",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}

	announcementDeleteCmd = &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an announcement",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<id>", err)
			}

			submitOperation(c, operation.NewDeleteAnnouncement(id))
		},
	}
	addClientFlags(announcementDeleteCmd, true)

	announcementCmd.AddCommand(announcementDeleteCmd)
	rootCmd.AddCommand(announceCmd, announcementCmd)
}
