package key

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"boscoin.io/announcer/cmd/announcer/common"
	"boscoin.io/announcer/lib/common/keypair"
)

var (
	GenerateCmd *cobra.Command

	flagParse  bool
	flagFormat string
)

type keyPair struct {
	Seed    string `json:"seed" yaml:"seed"`
	Address string `json:"address" yaml:"address"`
}

var defaultTemplate = template.Must(template.New("").Parse(`   Secret Seed: {{ .Seed }}
Public Address: {{ .Address }}
`))

func defaultEncode(v interface{}, w io.Writer) error {
	return defaultTemplate.Execute(w, v)
}

func onelineEncode(v interface{}, w io.Writer) error {
	kp := v.(keyPair)
	_, err := fmt.Fprintf(w, "%s %s\n", kp.Seed, kp.Address)
	return err
}

func init() {
	GenerateCmd = &cobra.Command{
		Use:   "generate [<secret seed> | <passphrase>]",
		Short: "Generate keypair",
		Run: func(c *cobra.Command, args []string) {
			input := strings.TrimSpace(strings.Join(args, " "))

			if flagParse && len(input) == 0 {
				common.PrintFlagsError(c, "--parse", errors.New("--parse needs <secret seed>"))
			}

			kp, err := GenerateKP(input, flagParse)
			if err != nil {
				common.PrintFlagsError(c, "<input>", fmt.Errorf("failed to parse secret seed: %v", err))
			}

			encoders := map[string]common.Encode{
				"json":       common.DefaultEncodes["json"],
				"prettyjson": common.DefaultEncodes["prettyjson"],
				"yaml":       common.DefaultEncodes["yaml"],
				"default":    defaultEncode,
				"oneline":    onelineEncode,
			}

			encode, ok := encoders[flagFormat]
			if !ok {
				common.PrintFlagsError(c, "--format", fmt.Errorf(`"%s" not recognized`, flagFormat))
			}

			if err := encode(keyPair{Seed: kp.Seed(), Address: kp.Address()}, os.Stdout); err != nil {
				common.PrintError(c, err)
			}
		},
	}

	GenerateCmd.Flags().BoolVar(&flagParse, "parse", false, "parse secret seed")
	GenerateCmd.Flags().StringVar(&flagFormat, "format", "default", "format={default, json, oneline, prettyjson, yaml}")
}

// GenerateKP makes a random keypair, parses a secret seed when
// `fromSeed` is set, or derives the keypair from a passphrase.
func GenerateKP(seedOrPassphrase string, fromSeed bool) (full *keypair.Full, err error) {
	if len(seedOrPassphrase) == 0 {
		return keypair.RandomCanFail()
	}

	if !fromSeed {
		return keypair.Master(seedOrPassphrase).(*keypair.Full), nil
	}

	var kp keypair.KP
	if kp, err = keypair.Parse(seedOrPassphrase); err != nil {
		return
	}

	var ok bool
	if full, ok = kp.(*keypair.Full); !ok {
		err = errors.New("not a secret seed")
	}

	return
}
