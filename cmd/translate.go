// Copyright (c) 2025 Csvlate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	stderrors "errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"csvlate/cli/internal/classify"
	"csvlate/cli/internal/config"
	"csvlate/cli/internal/deepl"
	apperrors "csvlate/cli/internal/errors"
	"csvlate/cli/internal/httperrors"
	"csvlate/cli/internal/keychain"
	"csvlate/cli/internal/lang"
	"csvlate/cli/internal/logging"
	"csvlate/cli/internal/table"
	"csvlate/cli/internal/translate"

	"atomicgo.dev/cursor"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	inPath             string
	outPath            string
	targetLang         string
	excludeIngredients bool
	includeIngredients bool
	onlyCols           string
	limitRows          int
	categoryContains   string
	estimateOnly       bool
	sepOverride        string
	encodingOverride   string
	verboseTranslate   bool
)

// translateCmd reads the input export, classifies its columns and routes
// the translatable ones through DeepL in batches, writing a CSV of
// identical shape. With --estimate it only reports character counts.
var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate the text columns of a product CSV export",
	Long: `The translate command loads a delimited product export (detecting header row,
delimiter and encoding when not given), partitions its columns into
translatable text and untouchable catalog data, and translates the text
columns through the DeepL API in batches of up to 50 values.

Columns holding structured data (IDs, SKUs, prices, stock, taxonomies,
media references) are never translated. HTML-bearing columns such as
descriptions are translated with tag handling so markup survives.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		// Enable verbose mode for all modules if --verbose is set
		if verboseTranslate {
			os.Setenv("CSVLATE_VERBOSE", "1")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// Resolve and validate the target language before touching the file.
		rawTarget := targetLang
		if strings.TrimSpace(rawTarget) == "" {
			rawTarget = cfg.DefaultTarget
		}
		if strings.TrimSpace(rawTarget) == "" {
			rawTarget = "HU"
		}
		target := lang.Normalize(rawTarget)
		if err := lang.Validate(target); err != nil {
			pterm.Printf("❌ Unrecognized target language: %s\n", rawTarget)
			pterm.Println("   Try a code like 'HU', 'DE', 'EN-GB', 'PT-BR' or a name like 'german'.")
			return err
		}

		// Resolve the API key from env first, then the OS keychain.
		apiKey := strings.TrimSpace(os.Getenv("DEEPL_API_KEY"))
		if apiKey == "" {
			if km, err := keychain.GetManager(); err == nil {
				if k, err := km.LoadAPIKey(); err == nil {
					apiKey = strings.TrimSpace(k)
				}
			}
		}
		if apiKey == "" {
			pterm.Println("⚠️  No DeepL API key configured.")
			pterm.Println("   Either run: csvlate key set <api-key>")
			pterm.Println("   or: export DEEPL_API_KEY='xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx:fx'")
			return apperrors.New(apperrors.ConfigInvalid, "missing DeepL API key")
		}

		if _, err := os.Stat(inPath); err != nil {
			wd, _ := os.Getwd()
			pterm.Printf("❌ Input file does not exist: %s\n", inPath)
			pterm.Printf("   Current directory: %s\n", wd)
			return apperrors.Wrap(apperrors.ConfigInvalid, "input file not found", err)
		}

		stopSpin := startInlineSpinner(os.Stderr, "Reading "+inPath, []string{"|", "/", "-", "\\"}, 120*time.Millisecond)
		tab, err := table.Load(inPath, sepOverride, encodingOverride)
		stopSpin()
		if err != nil {
			pterm.Println("❌ Could not read the CSV file.")
			pterm.Printf("   Details: %v\n", err)
			pterm.Println("   Hints: try --sep ';' or --sep '\\t' and/or --encoding 'utf-8' or 'cp1250'.")
			return err
		}

		if categoryContains != "" {
			tab = tab.Filter(categoryContains, 0)
			pterm.Printf("→ Category filter: %d rows remain.\n", len(tab.Rows))
		}
		if limitRows > 0 {
			tab = tab.Filter("", limitRows)
			pterm.Printf("→ Row limit: translating the first %d rows.\n", len(tab.Rows))
		}

		only := map[string]bool{}
		for _, c := range strings.Split(onlyCols, ",") {
			if c = strings.TrimSpace(c); c != "" {
				only[c] = true
			}
		}

		if includeIngredients {
			pterm.Println("→ --include-ingredients is deprecated and has no effect (ingredients translate by default).")
		}

		cls := classify.Classify(tab, excludeIngredients, only)

		if len(cls.Translate) == 0 {
			pterm.Println("⚠️  No translatable columns found. Check the column names or --only-cols.")
			return tab.Write(outPath)
		}

		pterm.Println(pterm.NewStyle(pterm.FgLightCyan).Sprint("→ Target language: ") + pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(target))
		pterm.Printf("→ Translating %d columns: %s\n", len(cls.Translate), strings.Join(cls.Translate, ", "))
		if len(cls.Markup) > 0 {
			pterm.Printf("→ HTML handling for: %s\n", strings.Join(cls.Markup, ", "))
		}
		if len(cls.Skip) > 0 {
			pterm.Printf("→ Skipping %d columns (taxonomies, IDs, SKUs, ...)\n", len(cls.Skip))
		}

		if estimateOnly {
			printEstimate(tab, cls.Translate)
			return nil
		}

		apiURL := strings.TrimSpace(os.Getenv("DEEPL_API_URL"))
		if apiURL == "" {
			apiURL = cfg.APIURL
		}

		orch := translate.New(deepl.New(apiURL, apiKey))
		sum := translate.NewSummary()

		cursor.Hide()
		area, areaErr := pterm.DefaultArea.WithRemoveWhenDone(true).Start()
		if areaErr == nil {
			orch.OnBatch = func(col string, done, total int) {
				area.Update(fmt.Sprintf("Translating %s: batch %d/%d", col, done, total))
			}
		}
		runErr := orch.Run(cmd.Context(), tab, cls, target, sum)
		if areaErr == nil {
			area.Stop()
		}
		cursor.Show()

		if runErr != nil {
			presentTranslationError(runErr)
			return runErr
		}

		if sum.Total() > 0 {
			pterm.Printf("→ Detected source languages (sample %d): %s | Most frequent: %s\n",
				sum.Total(), formatCounts(sum.Counts()), sum.Top())
		} else {
			pterm.Println("→ No language detection received (fields may have been empty).")
		}

		if err := tab.Write(outPath); err != nil {
			return err
		}
		pterm.Printf("✅ Done: %s\n", outPath)
		return nil
	},
}

// printEstimate reports per-column character counts, largest first, without
// sending anything to the API.
func printEstimate(tab *table.Table, cols []string) {
	est, total := translate.Estimate(tab, cols)
	sort.Slice(est, func(i, j int) bool {
		if est[i].Chars != est[j].Chars {
			return est[i].Chars > est[j].Chars
		}
		return est[i].Column < est[j].Column
	})
	pterm.Println()
	pterm.Println("Characters per column:")
	for _, e := range est {
		pterm.Printf("  %s: %d\n", e.Column, e.Chars)
	}
	pterm.Println()
	pterm.Printf("TOTAL: %d\n", total)
}

// presentTranslationError shows a useful failure message: API status
// failures print the (masked) provider response, anything else is treated
// as a network problem and routed through the hint panels.
func presentTranslationError(err error) {
	var se *deepl.StatusError
	if stderrors.As(err, &se) {
		pterm.Printf("❌ Translation failed: %s\n", logging.Mask(se.Error()))
		if se.Code == 403 {
			pterm.Println("   Check your API key: csvlate key show")
		}
		return
	}
	_ = httperrors.FormatNetworkError(err, "translating batches")
}

// formatCounts renders a language count map deterministically, highest first.
func formatCounts(counts map[string]int) string {
	langs := make([]string, 0, len(counts))
	for l := range counts {
		langs = append(langs, l)
	}
	sort.Slice(langs, func(i, j int) bool {
		if counts[langs[i]] != counts[langs[j]] {
			return counts[langs[i]] > counts[langs[j]]
		}
		return langs[i] < langs[j]
	})
	parts := make([]string, 0, len(langs))
	for _, l := range langs {
		parts = append(parts, fmt.Sprintf("%s=%d", l, counts[l]))
	}
	return strings.Join(parts, " ")
}

func init() {
	translateCmd.Flags().StringVar(&inPath, "in", "", "Input CSV (product export)")
	translateCmd.Flags().StringVar(&outPath, "out", "", "Output CSV with translations")
	translateCmd.Flags().StringVar(&targetLang, "to", "", "Target language (e.g. HU, DE, EN-GB, PT-BR, 'german')")
	translateCmd.Flags().BoolVar(&excludeIngredients, "exclude-ingredients", false, "Skip ingredient columns (translated by default)")
	translateCmd.Flags().BoolVar(&includeIngredients, "include-ingredients", false, "Deprecated: ingredients already translate by default (no effect)")
	translateCmd.Flags().StringVar(&onlyCols, "only-cols", "", "Comma-separated list of columns to translate (overrides all heuristics)")
	translateCmd.Flags().IntVar(&limitRows, "limit-rows", 0, "Translate only the first N rows (0 = all)")
	translateCmd.Flags().StringVar(&categoryContains, "category-contains", "", "Translate only rows whose 'Categories' cell contains this string (case-insensitive)")
	translateCmd.Flags().BoolVar(&estimateOnly, "estimate", false, "Do not call the API; show character counts per column and in total")
	translateCmd.Flags().StringVar(&sepOverride, "sep", "", "Manual delimiter (e.g. ',' ';' '\\t' '|')")
	translateCmd.Flags().StringVar(&encodingOverride, "encoding", "", "Manual encoding (e.g. 'utf-8-sig', 'cp1250')")
	translateCmd.Flags().BoolVar(&verboseTranslate, "verbose", false, "Enable verbose debug output")

	translateCmd.MarkFlagRequired("in")
	translateCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(translateCmd)
}
