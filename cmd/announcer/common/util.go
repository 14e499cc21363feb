package common

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"boscoin.io/announcer/lib/errors"
)

// PrintFlagsError issues a message on Stderr then exits with an error code.
func PrintFlagsError(cmd *cobra.Command, flagName string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid '%s'; %s\n\n", flagName, ErrorString(err))
	}

	cmd.Help()

	os.Exit(1)
}

func PrintError(cmd *cobra.Command, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n\n", ErrorString(err))
	}

	cmd.Help()

	os.Exit(1)
}

// ErrorString prefers the message of a node error, with its data when it
// has any.
func ErrorString(err error) string {
	e, ok := err.(*errors.Error)
	if !ok {
		return err.Error()
	}
	if len(e.Data) < 1 {
		return e.Message
	}

	var data []string
	for k, v := range e.Data {
		data = append(data, fmt.Sprintf("%s=%v", k, v))
	}
	sort.Strings(data)
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(data, " "))
}

type ListFlags []string

func (i *ListFlags) Type() string {
	return "list"
}

func (i *ListFlags) String() string {
	return strings.Join([]string(*i), " ")
}

func (i *ListFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}
