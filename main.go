package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Metric selection
	lineMode   bool
	wordMode   bool
	byteMode   bool
	charMode   bool
	tokenMode  bool
	tokenModel string

	// Filtering (directory and repository expansion)
	includePatterns string
	excludePatterns string
	maxSizeBytes    int64
	maxDepth        int
	showHidden      bool
	noIgnore        bool

	// Failure policy
	noPartial bool

	// Web inputs
	traverseLinks bool
	linkDepth     int

	// Report destination
	outputFile      string
	copyToClipboard bool
	pdfOutputFile   string

	// Interactive mode
	interactiveMode bool

	langData *LoadedLanguageData
)

// version is the application version, set via ldflags.
var version string = "dev"

var rootCmd = &cobra.Command{
	Use:   "metron [INPUTS...]",
	Short: "Metron measures text: line, word, byte, character and token counts.",
	Long: `Metron reports line, word, byte/character and token counts for its
inputs, one row per input plus a total. Inputs can be files, directories
(expanded to their files), git URLs (cloned and counted) or web URLs
(fetched, with HTML reduced to its text). With no inputs it reads
standard input.`,
	Version: version,
	Args:    cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if interactiveMode {
			selected, err := runInteractiveFinder()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Interactive mode error: %v\n", err)
				os.Exit(1)
			}
			if selected == nil {
				// User aborted selection
				os.Exit(0)
			}
			args = selected
		}

		modes := resolveModes(lineMode, wordMode, byteMode, charMode, tokenMode)

		var tk Tokenizer
		if modes.Tokens {
			var err error
			tk, err = newTokenizer(tokenModel)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error initializing tokenizer: %v\n", err)
				os.Exit(1)
			}
		}

		partial := viper.GetBool("partial_counts") && !noPartial

		// Rows stream straight to stdout unless the report is headed
		// somewhere else.
		stream := outputFile == "" && !copyToClipboard && pdfOutputFile == ""
		rep := newReport(os.Stdout, stream)

		inputs, cleanups, expandFailed := expandArgs(args, os.Stderr)
		defer func() {
			for _, cleanup := range cleanups {
				cleanup()
			}
		}()

		_, failed, err := measure(inputs, len(inputs)+expandFailed, modes, tk, partial, rep, os.Stderr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		failed += expandFailed
		summary := Summary{Inputs: len(inputs) + expandFailed, Failed: failed}

		switch {
		case pdfOutputFile != "":
			if err := writeReportPDF(rep.Rows(), modes, summary, pdfOutputFile); err != nil {
				fmt.Fprintf(os.Stderr, "Error generating PDF: %v\n", err)
				os.Exit(1)
			}
		case outputFile != "":
			if err := os.WriteFile(outputFile, []byte(rep.String()), 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing to file %s: %v\n", outputFile, err)
				os.Exit(1)
			}
		case copyToClipboard:
			if err := clipboard.WriteAll(rep.String()); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing to clipboard: %v\n", err)
				fmt.Print(rep.String())
			}
		}

		if failed > 0 {
			os.Exit(1)
		}
	},
}

// expandArgs turns the positional arguments into the ordered input list.
// No arguments means the standard-input singleton. Arguments that cannot
// be expanded at all (missing path, failed clone or fetch) are reported in
// order and count as failed inputs; they still count toward the more-than-
// one-input rule that decides whether a total row prints. Git clones hand
// back cleanups that must run after counting.
func expandArgs(args []string, errw io.Writer) ([]Input, []func(), int) {
	if len(args) == 0 {
		return []Input{stdinInput()}, nil, 0
	}

	var inputs []Input
	var cleanups []func()
	failed := 0
	for _, arg := range args {
		var expanded []Input
		var err error
		switch {
		case isGitURL(arg):
			var cleanup func()
			expanded, cleanup, err = expandGitURL(arg, langData)
			if cleanup != nil {
				cleanups = append(cleanups, cleanup)
			}
		case isWebURL(arg):
			expanded, err = expandWebURL(arg, traverseLinks, linkDepth)
		default:
			expanded, err = expandLocalPath(arg, langData)
		}
		if err != nil {
			reportInputError(errw, arg, err)
			failed++
			continue
		}
		inputs = append(inputs, expanded...)
	}
	return inputs, cleanups, failed
}

// measure drives the stream counter over the inputs strictly in order:
// open, count, print the row, fold into the running total. Open failures
// skip the input entirely; read failures keep the partial count in the
// report and the total only when the partial policy is on, and either way
// the run continues with the next input. The total row prints exactly when
// more than one input was supplied, however many succeeded. Returns the
// total, the number of failed inputs, and any report-write error (the one
// failure that does abort).
func measure(inputs []Input, supplied int, modes Modes, tk Tokenizer, partial bool, rep *report, errw io.Writer) (Count, int, error) {
	total := newCount(modes)
	failed := 0

	for _, in := range inputs {
		stream, err := in.Open()
		if err != nil {
			reportInputError(errw, in.Name, err)
			failed++
			continue
		}

		cnt, countErr := countReader(stream, modes, tk)
		closeErr := stream.Close()

		if countErr != nil {
			reportInputError(errw, in.Name, countErr)
			failed++
			if partial {
				if err := rep.AddRow(cnt, in.Name); err != nil {
					return total, failed, err
				}
				total = total.Add(cnt)
			}
			continue
		}
		if closeErr != nil {
			fmt.Fprintf(errw, "Warning: failed to close %s: %v\n", in.Name, closeErr)
		}

		if err := rep.AddRow(cnt, in.Name); err != nil {
			return total, failed, err
		}
		total = total.Add(cnt)
	}

	if supplied > 1 {
		if err := rep.AddRow(total, "total"); err != nil {
			return total, failed, err
		}
	}
	return total, failed, nil
}

// reportInputError prints a per-input failure as "<name>: <description>",
// with no name prefix for standard input. PathErrors that already carry
// the input's name are unwrapped so the path isn't printed twice.
func reportInputError(errw io.Writer, name string, err error) {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) && pathErr.Path == name {
		err = pathErr.Err
	}
	if name == "" {
		fmt.Fprintf(errw, "%v\n", err)
		return
	}
	fmt.Fprintf(errw, "%s: %v\n", name, err)
}

func init() {
	cobra.OnInitialize(initConfig, initLanguages)

	// Metric selection. These are per-run choices and stay off viper.
	rootCmd.Flags().BoolVarP(&lineMode, "lines", "l", false, "Count lines")
	rootCmd.Flags().BoolVarP(&wordMode, "words", "w", false, "Count words")
	rootCmd.Flags().BoolVarP(&byteMode, "bytes", "c", false, "Count bytes")
	rootCmd.Flags().BoolVarP(&charMode, "chars", "m", false, "Count characters (Unicode code points)")
	rootCmd.Flags().BoolVarP(&tokenMode, "tokens", "t", false, "Count model tokens (encoded per line)")
	rootCmd.Flags().StringVar(&tokenModel, "model", "", "Model name for the token encoding (e.g. gpt-4o)")
	viper.BindPFlag("default_tokenizer_model", rootCmd.Flags().Lookup("model"))

	// Filtering for directory expansion
	rootCmd.Flags().StringVarP(&includePatterns, "include", "i", "", "Patterns to include when expanding directories (comma-separated, e.g. *.go,*.md)")
	viper.BindPFlag("include", rootCmd.Flags().Lookup("include"))
	rootCmd.Flags().StringVarP(&excludePatterns, "exclude", "e", "", "Patterns to exclude when expanding directories (comma-separated)")
	viper.BindPFlag("exclude", rootCmd.Flags().Lookup("exclude"))
	viper.BindPFlag("default_excludes", rootCmd.Flags().Lookup("exclude"))
	rootCmd.Flags().Int64Var(&maxSizeBytes, "max-size", 0, "Maximum file size in bytes when expanding directories (0 for no limit)")
	viper.BindPFlag("max_size", rootCmd.Flags().Lookup("max-size"))
	rootCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Maximum directory depth to expand (0 for no limit)")
	viper.BindPFlag("max_depth", rootCmd.Flags().Lookup("max-depth"))
	rootCmd.Flags().BoolVarP(&showHidden, "hidden", "H", false, "Include hidden files and directories")
	viper.BindPFlag("hidden", rootCmd.Flags().Lookup("hidden"))
	rootCmd.Flags().BoolVar(&noIgnore, "no-ignore", false, "Don't respect .gitignore files")
	viper.BindPFlag("no_ignore", rootCmd.Flags().Lookup("no-ignore"))

	// Failure policy
	rootCmd.Flags().BoolVar(&noPartial, "no-partial", false, "Discard partial counts from inputs that fail mid-read")

	// Web inputs
	rootCmd.Flags().BoolVar(&traverseLinks, "traverse-links", false, "Follow links when counting URLs")
	viper.BindPFlag("traverse_links", rootCmd.Flags().Lookup("traverse-links"))
	rootCmd.Flags().IntVar(&linkDepth, "link-depth", 1, "Maximum depth when following links")
	viper.BindPFlag("link_depth", rootCmd.Flags().Lookup("link-depth"))

	// Report destination
	rootCmd.Flags().StringVarP(&outputFile, "file", "f", "", "Save the report to the specified file")
	rootCmd.Flags().BoolVar(&copyToClipboard, "clipboard", false, "Copy the report to the clipboard")
	rootCmd.Flags().StringVar(&pdfOutputFile, "pdf", "", "Save the report as PDF")

	// Interactive mode
	rootCmd.Flags().BoolVar(&interactiveMode, "interactive", false, "Pick inputs with a fuzzy finder")

	viper.SetDefault("partial_counts", true)
	viper.SetDefault("max_size", 0)
	viper.SetDefault("max_depth", 0)
	viper.SetDefault("hidden", false)
	viper.SetDefault("no_ignore", false)
	viper.SetDefault("traverse_links", false)
	viper.SetDefault("link_depth", 1)
	viper.SetDefault("default_tokenizer_model", defaultTokenModel)
	viper.SetDefault("default_excludes", []string{
		".git",
		"node_modules",
		"target",
	})
}

// initConfig reads the config file and METRON_* environment variables.
func initConfig() {
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "metron"))
	}
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("METRON")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
		}
	}

	// Flags win over config; when a flag went unset, pull the configured
	// default through.
	if !rootCmd.Flags().Changed("exclude") {
		excludePatterns = strings.Join(viper.GetStringSlice("default_excludes"), ",")
	}
	if !rootCmd.Flags().Changed("model") {
		tokenModel = viper.GetString("default_tokenizer_model")
	}
	if !rootCmd.Flags().Changed("max-size") {
		maxSizeBytes = viper.GetInt64("max_size")
	}
	if !rootCmd.Flags().Changed("max-depth") {
		maxDepth = viper.GetInt("max_depth")
	}
	if !rootCmd.Flags().Changed("hidden") {
		showHidden = viper.GetBool("hidden")
	}
	if !rootCmd.Flags().Changed("no-ignore") {
		noIgnore = viper.GetBool("no_ignore")
	}
	if !rootCmd.Flags().Changed("traverse-links") {
		traverseLinks = viper.GetBool("traverse_links")
	}
	if !rootCmd.Flags().Changed("link-depth") {
		linkDepth = viper.GetInt("link_depth")
	}
}

// initLanguages loads languages.yml when one is present; without it every
// non-excluded file in a directory walk is counted.
func initLanguages() {
	langData, _ = loadLanguageData()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
