package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/donlabs/feedverify/engine/verifier"
	"github.com/donlabs/feedverify/model/feed"
	"github.com/donlabs/feedverify/state/registry"
)

var (
	flagSigners string
	flagReport  string
)

// signerSet is one entry of the signer-set file: a configuration the
// registry is seeded with before verification.
type signerSet struct {
	Digest   string   `json:"digest"`
	F        int      `json:"f"`
	Oracles  []string `json:"oracles"`
	Inactive bool     `json:"inactive,omitempty"`
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "feedverify",
		Short:        "verify oracle-signed data feed reports",
		SilenceUsage: true,
	}
	root.AddCommand(verifyCmd())
	return root
}

func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "verify a signed report against a signer-set file",
		Long: "Loads the signer-set file into a configuration registry, takes a " +
			"snapshot, verifies the report against it and prints the payload hex.",
		RunE: runVerify,
	}
	cmd.Flags().StringVar(&flagSigners, "signers", "", "path to the JSON signer-set file")
	cmd.Flags().StringVar(&flagReport, "report", "", "hex encoding of the signed report")
	_ = cmd.MarkFlagRequired("signers")
	_ = cmd.MarkFlagRequired("report")
	return cmd
}

func runVerify(cmd *cobra.Command, args []string) error {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	sets, err := loadSignerSets(flagSigners)
	if err != nil {
		return fmt.Errorf("could not load signer sets: %w", err)
	}

	reg := registry.New(log)
	for _, set := range sets {
		digest, err := feed.HexStringToDigest(set.Digest)
		if err != nil {
			return fmt.Errorf("invalid digest %q: %w", set.Digest, err)
		}
		oracles := make([][]byte, len(set.Oracles))
		for i, keyHex := range set.Oracles {
			oracles[i], err = feed.DecodeHexString(keyHex)
			if err != nil {
				return fmt.Errorf("invalid oracle key %q: %w", keyHex, err)
			}
		}
		if _, err := reg.Set(digest[:], oracles, set.F); err != nil {
			return fmt.Errorf("could not set configuration %s: %w", digest, err)
		}
		if set.Inactive {
			if _, err := reg.Deactivate(digest); err != nil {
				return fmt.Errorf("could not deactivate configuration %s: %w", digest, err)
			}
		}
	}

	payload, err := verifier.New(log).VerifyHex(reg.Snapshot(), flagReport)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), payload)
	return nil
}

func loadSignerSets(path string) ([]signerSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sets []signerSet
	if err := json.Unmarshal(raw, &sets); err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	return sets, nil
}
