package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/announcer/cmd/announcer/common"
	"boscoin.io/announcer/lib/client"
	"boscoin.io/announcer/lib/common/keypair"
	"boscoin.io/announcer/lib/transaction"
	"boscoin.io/announcer/lib/transaction/operation"
)

var (
	flagClientEndpoint  string
	flagClientNetworkID string
	flagSecretSeed      string
	flagOutputFormat    string

	output io.Writer = os.Stdout
)

// addClientFlags binds the flags of the commands talking to a node.
// `signing` adds the secret seed of the sender.
func addClientFlags(c *cobra.Command, signing bool) {
	c.Flags().StringVar(&flagClientEndpoint, "endpoint", settings.Endpoint, "endpoint of the node")
	c.Flags().StringVar(&flagOutputFormat, "format", "prettyjson", "output format, {json, prettyjson, yaml}")

	if signing {
		c.Flags().StringVar(&flagClientNetworkID, "network-id", settings.NetworkID, "network id")
		c.Flags().StringVar(&flagSecretSeed, "secret-seed", settings.SecretSeed, "secret seed of the sender")
	}
}

func newClient() *client.Client {
	return client.NewClient(flagClientEndpoint)
}

func parseSender(c *cobra.Command) *keypair.Full {
	kp, err := keypair.Parse(flagSecretSeed)
	if err != nil {
		cmdcommon.PrintFlagsError(c, "--secret-seed", err)
	}

	full, ok := kp.(*keypair.Full)
	if !ok {
		cmdcommon.PrintFlagsError(c, "--secret-seed", fmt.Errorf("provided key is an address, not a secret seed"))
	}

	return full
}

func printOutput(c *cobra.Command, v interface{}) {
	encode, ok := cmdcommon.GetEncode(flagOutputFormat)
	if !ok {
		cmdcommon.PrintFlagsError(c, "--format", fmt.Errorf(`"%s" not recognized`, flagOutputFormat))
	}

	if err := encode(v, output); err != nil {
		cmdcommon.PrintError(c, err)
	}
}

// MakeTransaction wraps `body` in a transaction signed by `kp`.
func MakeTransaction(kp *keypair.Full, networkID string, body operation.Body) (tx transaction.Transaction, err error) {
	var op operation.Operation
	if op, err = operation.NewOperation(body); err != nil {
		return
	}

	tx = transaction.NewTransaction(kp.Address(), op)
	tx.Sign(kp, []byte(networkID))
	err = tx.IsWellFormed([]byte(networkID))

	return
}

// submitOperation signs `body` with the sender of the command and prints
// the receipt.
func submitOperation(c *cobra.Command, body operation.Body) {
	if len(flagClientNetworkID) < 1 {
		cmdcommon.PrintFlagsError(c, "--network-id", fmt.Errorf("--network-id must be given"))
	}

	sender := parseSender(c)

	tx, err := MakeTransaction(sender, flagClientNetworkID, body)
	if err != nil {
		cmdcommon.PrintError(c, err)
	}

	cl := newClient()
	defer cl.Close()

	log.Debug("submitting transaction", "tx", tx.GetHash(), "caller", sender.Address(), "operation", tx.B.Operation.H.Type)

	receipt, err := cl.SubmitTransaction(tx)
	if err != nil {
		cmdcommon.PrintError(c, err)
	}

	printOutput(c, receipt)
}
