package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/paranoid/core/paranoid"
	"github.com/dmitrymomot/paranoid/pkg/clientip"
	"github.com/dmitrymomot/paranoid/pkg/fingerprint"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Compute the fingerprint token for an address and user agent",
	Example: `  paranoid token --addr 192.0.2.1 --ua "Mozilla/5.0"
  paranoid token --addr 2001:db8::1 --granularity network --hash blake2b -v`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().String("addr", clientip.Placeholder, "Client address")
	tokenCmd.Flags().String("ua", "", "User-Agent header; empty means none was sent")
	tokenCmd.Flags().String("granularity", string(fingerprint.GranularityExact), "Address granularity: exact or network")
	tokenCmd.Flags().String("hash", string(fingerprint.HashSHA256), "Digest: sha256 or blake2b")
	tokenCmd.Flags().BoolP("verbose", "v", false, "Print the normalized inputs as well")
}

func runToken(cmd *cobra.Command, _ []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	ua, _ := cmd.Flags().GetString("ua")
	gran, _ := cmd.Flags().GetString("granularity")
	hash, _ := cmd.Flags().GetString("hash")
	verbose, _ := cmd.Flags().GetBool("verbose")

	g := fingerprint.Granularity(gran)
	if !g.Valid() {
		return fmt.Errorf("%w: %q", paranoid.ErrInvalidAddressGranularity, gran)
	}
	h := fingerprint.Hash(hash)
	if !h.Valid() {
		return fmt.Errorf("%w: %q", paranoid.ErrInvalidHashAlgorithm, hash)
	}

	gen := fingerprint.NewGenerator(fingerprint.WithGranularity(g), fingerprint.WithHash(h))
	token := gen.Token(addr, ua)

	out := cmd.OutOrStdout()
	if verbose {
		if ua == "" {
			ua = fingerprint.NoUserAgent
		}
		fmt.Fprintf(out, "address:    %s\n", fingerprint.NormalizeAddress(addr, g))
		fmt.Fprintf(out, "user agent: %s\n", ua)
		fmt.Fprintf(out, "hash:       %s\n", h)
		fmt.Fprintf(out, "token:      %s\n", token)
		return nil
	}
	fmt.Fprintln(out, token)
	return nil
}
