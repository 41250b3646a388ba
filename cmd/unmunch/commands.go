package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/unmunch"
	"github.com/npillmayer/unmunch/hunspell"
	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"
)

var (
	expandMode   bool
	findBaseMode bool

	rootCmd = &cobra.Command{
		Use:   "unmunch [flags] <affix-file> [dictionary-file]",
		Short: "Expand a Hunspell dictionary into a full word list",
		Long: `unmunch applies the affix rules of a Hunspell .aff file to the
stems of a .dic file and prints every derivable surface form, one per
line. With --expand it expands words read from stdin instead, and with
--find-base it recovers dictionary base words from inflected forms read
from stdin and prints their expansions.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
)

func init() {
	rootCmd.Flags().BoolVarP(&expandMode, "expand", "e", false,
		"expand words from stdin using the affix rules (dictionary optional)")
	rootCmd.Flags().BoolVarP(&findBaseMode, "find-base", "b", false,
		"recover base words from inflected stdin forms and expand them (dictionary required)")
}

func run(cmd *cobra.Command, args []string) error {
	if expandMode && findBaseMode {
		return fmt.Errorf("--expand and --find-base are mutually exclusive")
	}
	aff, err := loadAffix(args[0])
	if err != nil {
		return err
	}
	var dict *unmunch.Dictionary
	if len(args) == 2 {
		dict, err = loadDictionary(args[1], aff)
		if err != nil {
			return err
		}
	}
	expander := unmunch.NewExpander(aff)
	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	switch {
	case findBaseMode:
		if dict == nil {
			return fmt.Errorf("--find-base requires a dictionary file")
		}
		return eachInputWord(cmd, func(word string) {
			for _, form := range expander.FindBaseAndExpand(dict, word) {
				fmt.Fprintln(out, form)
			}
		})
	case expandMode:
		return eachInputWord(cmd, func(word string) {
			for _, form := range expandInput(expander, dict, word) {
				fmt.Fprintln(out, form)
			}
		})
	default:
		if dict == nil {
			return fmt.Errorf("unmunch mode requires a dictionary file")
		}
		expander.ExpandAll(dict, func(form string) {
			fmt.Fprintln(out, form)
		})
		return nil
	}
}

// expandInput expands one stdin word: with a dictionary, the word's entry
// provides the flags and unknown words pass through unexpanded; without
// one, every defined rule class is tried.
func expandInput(expander *unmunch.Expander, dict *unmunch.Dictionary, word string) []string {
	if dict == nil {
		return expander.ExpandUnknown(word)
	}
	entry, ok := dict.Lookup(word)
	if !ok {
		return []string{word}
	}
	return expander.ExpandWithFlags(entry.Stem, entry.Flags)
}

func eachInputWord(cmd *cobra.Command, process func(word string)) error {
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		word := strings.TrimSpace(norm.NFC.String(scanner.Text()))
		if word == "" {
			continue
		}
		process(word)
	}
	return scanner.Err()
}

func loadAffix(path string) (*unmunch.AffixFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return hunspell.LoadAffix(f)
}

func loadDictionary(path string, aff *unmunch.AffixFile) (*unmunch.Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return hunspell.LoadDictionary(f, aff)
}
