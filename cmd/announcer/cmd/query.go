package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/announcer/cmd/announcer/common"
	"boscoin.io/announcer/lib/client"
	"boscoin.io/announcer/lib/common"
)

var (
	queryCmd *cobra.Command

	flagQueryAuthor  string
	flagQueryTopic   string
	flagQuerySince   string
	flagQuerySinceID uint64
)

// AnnouncementQueries turns the query flags into client queries. `since`
// is checked here so a bad value fails before reaching the node.
func AnnouncementQueries(author, topic, since string, sinceID uint64) (qs []client.Q, err error) {
	if len(author) > 0 {
		qs = append(qs, client.Q{Key: client.QueryAuthor, Value: author})
	}
	if len(topic) > 0 {
		qs = append(qs, client.Q{Key: client.QueryTopic, Value: topic})
	}
	if len(since) > 0 {
		t, err := common.ParseTimeParam(since)
		if err != nil {
			return nil, err
		}
		qs = append(qs, client.Since(t, sinceID)...)
	}

	return
}

func newQueryCmd(use, short string, args cobra.PositionalArgs, load func(*client.Client, []string) (interface{}, error)) *cobra.Command {
	c := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		Run: func(c *cobra.Command, args []string) {
			cl := newClient()
			defer cl.Close()

			v, err := load(cl, args)
			if err != nil {
				cmdcommon.PrintError(c, err)
			}

			printOutput(c, v)
		},
	}
	addClientFlags(c, false)

	return c
}

func init() {
	queryCmd = &cobra.Command{
		Use:   "query",
		Short: "Read the state of a node",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}

	announcementsCmd := newQueryCmd(
		"announcements",
		"List announcements, newest first",
		cobra.NoArgs,
		func(cl *client.Client, args []string) (interface{}, error) {
			qs, err := AnnouncementQueries(flagQueryAuthor, flagQueryTopic, flagQuerySince, flagQuerySinceID)
			if err != nil {
				return nil, err
			}
			return cl.LoadAnnouncements(qs...)
		},
	)
	announcementsCmd.Flags().StringVar(&flagQueryAuthor, "author", "", "only from this author")
	announcementsCmd.Flags().StringVar(&flagQueryTopic, "topic", "", "only in this topic")
	announcementsCmd.Flags().StringVar(&flagQuerySince, "since", "", "not older than this time, ISO8601 or unix seconds")
	announcementsCmd.Flags().Uint64Var(&flagQuerySinceID, "since-id", 0, "with --since, skip announcements at that time with a lower id")

	queryCmd.AddCommand(
		newQueryCmd("node", "Show node information", cobra.NoArgs,
			func(cl *client.Client, args []string) (interface{}, error) {
				return cl.NodeInfo()
			},
		),
		newQueryCmd("whitelist", "Show the whitelist", cobra.NoArgs,
			func(cl *client.Client, args []string) (interface{}, error) {
				return cl.LoadWhitelist()
			},
		),
		newQueryCmd("pending", "Show open proposals", cobra.NoArgs,
			func(cl *client.Client, args []string) (interface{}, error) {
				return cl.LoadPending()
			},
		),
		announcementsCmd,
		newQueryCmd("announcement <id>", "Show an announcement", cobra.ExactArgs(1),
			func(cl *client.Client, args []string) (interface{}, error) {
				id, err := strconv.ParseUint(args[0], 10, 64)
				if err != nil {
					return nil, err
				}
				return cl.LoadAnnouncement(id)
			},
		),
		newQueryCmd("topics", "List topics", cobra.NoArgs,
			func(cl *client.Client, args []string) (interface{}, error) {
				return cl.LoadTopics()
			},
		),
		newQueryCmd("topic <identifier>", "Show a topic", cobra.ExactArgs(1),
			func(cl *client.Client, args []string) (interface{}, error) {
				return cl.LoadTopic(args[0])
			},
		),
		newQueryCmd("receipt <hash>", "Show the receipt of a transaction", cobra.ExactArgs(1),
			func(cl *client.Client, args []string) (interface{}, error) {
				return cl.LoadReceipt(args[0])
			},
		),
	)

	rootCmd.AddCommand(queryCmd)
}
