package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/suffix-labs/genblock/pkg/wallet"
)

var outPath string

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Write the dump's keys re-encoded for mainnet.",
	RunE:  convertRun,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default <dump>.mainnet).")
}

func convertRun(cmd *cobra.Command, args []string) error {
	keys, err := wallet.ParseDumpFile(dumpPath)
	if err != nil {
		return err
	}

	path := outPath
	if path == "" {
		path = dumpPath + ".mainnet"
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := wallet.WriteKeys(f, keys); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d keys to %s\n", len(keys), path)
	return nil
}
