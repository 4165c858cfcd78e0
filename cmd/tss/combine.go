package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gocrypto/tss"
)

var (
	combineShares     []string
	combineFiles      []string
	combineSelectBy   string
	combinePadBlock   int
	combinePaddingOff bool
	combineOutFile    string
)

var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Reconstruct a secret from a set of shares",
	RunE:  runCombine,
}

func init() {
	f := combineCmd.Flags()
	f.StringSliceVar(&combineShares, "share", nil, "a share string; repeat for each share")
	f.StringSliceVar(&combineFiles, "file", nil, "path to a file containing one share; repeat for each share")
	f.StringVar(&combineSelectBy, "select-by", "first", "subset selection: first, sample, or combinations")
	f.IntVar(&combinePadBlock, "pad-block-size", tss.DefaultPadBlockSize, "PKCS#7 pad block size used at split time; pass 0 if split used --pad-block-size 0")
	f.BoolVar(&combinePaddingOff, "no-padding", false, "disable PKCS#7 unpadding")
	f.StringVar(&combineOutFile, "out", "", "write the recovered secret to this file instead of stdout")
}

func runCombine(cmd *cobra.Command, args []string) error {
	shares, err := loadShares(combineShares, combineFiles)
	if err != nil {
		return err
	}

	selectBy, err := parseSelectByFlag(combineSelectBy)
	if err != nil {
		return err
	}

	cfg := tss.CombineConfig{
		SelectBy:   selectBy,
		PaddingOff: combinePaddingOff,
	}
	if cmd.Flags().Changed("pad-block-size") {
		cfg.PadBlockSize = &combinePadBlock
	}

	result, err := tss.Combine(shares, cfg)
	if err != nil {
		return fmt.Errorf("combine: %w", err)
	}
	defer zero(result.Secret)

	if combineOutFile != "" {
		return os.WriteFile(combineOutFile, result.Secret, 0o600)
	}
	fmt.Printf("%s\n", result.Secret)
	return nil
}

func loadShares(inline, files []string) ([]string, error) {
	if len(inline) == 0 && len(files) == 0 {
		return nil, fmt.Errorf("provide shares via --share or --file")
	}
	shares := make([]string, 0, len(inline)+len(files))
	shares = append(shares, inline...)
	for _, path := range files {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		shares = append(shares, string(b))
	}
	return shares, nil
}

func parseSelectByFlag(name string) (tss.SelectBy, error) {
	switch name {
	case "first":
		return tss.SelectFirst, nil
	case "sample":
		return tss.SelectSample, nil
	case "combinations":
		return tss.SelectCombinations, nil
	default:
		return 0, fmt.Errorf("unknown --select-by value %q; want first, sample, or combinations", name)
	}
}
