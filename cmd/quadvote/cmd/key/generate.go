package key

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stellar/go/keypair"

	"quadvote.io/quadvote/cmd/quadvote/common"
)

var (
	GenerateCmd *cobra.Command

	flagParse  bool
	flagFormat string
)

type keyPair struct {
	Seed    string `json:"seed"`
	Address string `json:"address"`
}

func defaultEncode(v interface{}, w io.Writer) error {
	t := template.Must(template.New("").Parse(`   Secret Seed: {{ .Seed }}
Public Address: {{ .Address }}
`))
	return t.Execute(w, v)
}

func onelineEncode(v interface{}, w io.Writer) error {
	kp := v.(keyPair)
	fmt.Fprintf(w, "%s %s\n", kp.Seed, kp.Address)
	return nil
}

func init() {
	GenerateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate keypair",
		Run: func(c *cobra.Command, args []string) {
			input := strings.TrimSpace(strings.Join(args, " "))

			if flagParse && len(input) == 0 {
				common.PrintFlagsError(c, "--parse", errors.New("--parse needs <secret seed>"))
			}

			kp, err := generateKP(input, flagParse)
			if err != nil {
				common.PrintFlagsError(c, "<input>", fmt.Errorf("failed to parse secret seed: %v", err))
			}

			encoders := map[string]common.Encode{
				"json":       common.DefaultEncodes["json"],
				"prettyjson": common.DefaultEncodes["prettyjson"],
				"default":    defaultEncode,
				"oneline":    onelineEncode,
			}

			encode, ok := encoders[flagFormat]
			if !ok {
				common.PrintFlagsError(c, "--format", fmt.Errorf(`"%s" not recognized`, flagFormat))
			}

			if err := encode(keyPair{
				Seed:    kp.Seed(),
				Address: kp.Address(),
			}, os.Stdout); err != nil {
				panic(err)
			}
		},
	}

	GenerateCmd.Flags().BoolVar(&flagParse, "parse", false, "parse secret seed")
	GenerateCmd.Flags().StringVar(&flagFormat, "format", "default", "format={default, json, oneline, prettyjson}")
}

func generateKP(seed string, fromSeed bool) (full *keypair.Full, err error) {
	if len(seed) == 0 {
		full, err = keypair.Random()
		return
	}

	if !fromSeed {
		full = keypair.Master(seed).(*keypair.Full)
		return
	}

	var kp keypair.KP
	if kp, err = keypair.Parse(seed); err != nil {
		return
	}

	kf, ok := kp.(*keypair.Full)
	if !ok {
		err = fmt.Errorf("not a secret seed")
		return
	}
	full = kf

	return
}
