// elm-i18n — structural manager for generated Elm I18n translation modules.
package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/elm-tooling/elm-i18n/config"
	"github.com/elm-tooling/elm-i18n/elmfile"
	"github.com/elm-tooling/elm-i18n/i18n"
	"github.com/elm-tooling/elm-i18n/langmeta"
	"github.com/elm-tooling/elm-i18n/scaffold"
	"github.com/elm-tooling/elm-i18n/store"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flag
// ---------------------------------------------------------------------------

var filePath string

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd(cfg *config.Config, langs []string) *cobra.Command {
	root := &cobra.Command{
		Use:   "elm-i18n",
		Short: "Manage translations in a generated Elm I18n module",
		Long: `elm-i18n — manage translations in a generated Elm I18n module.

Keeps the Translations type alias and the per-language value records of
an I18n.elm file consistent when keys are added or removed. A .bak
sibling with the pre-edit bytes is written before every change.

Commands:
  init      Create a fresh I18n.elm with the configured languages
  add       Add a simple string translation
  add-fn    Add a function translation with a shared type signature
  check     Show a key's translations without modifying anything
  remove    Remove a key from the type alias and every language record
  status    Show file info and key statistics`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flag — inherited by all subcommands
	root.PersistentFlags().StringVar(&filePath, "file", cfg.File, "Path to the I18n.elm file")

	root.AddCommand(
		newInitCmd(cfg),
		newAddCmd(langs),
		newAddFnCmd(langs),
		newCheckCmd(),
		newRemoveCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")

	cfg, err := config.Load(".")
	if err != nil {
		logError("%v", err)
		os.Exit(1)
	}

	langs := activeLanguages(peekFileFlag(os.Args[1:], cfg.File), cfg)

	if err := newRootCmd(cfg, langs).Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// peekFileFlag extracts --file from raw arguments before cobra runs, so
// per-language value flags can be registered for the right document.
func peekFileFlag(args []string, fallback string) string {
	for i, a := range args {
		if a == "--file" && i+1 < len(args) {
			return args[i+1]
		}
		if v, ok := strings.CutPrefix(a, "--file="); ok {
			return v
		}
	}
	return fallback
}

// activeLanguages returns the document's language set when the file is
// readable, falling back to the configured init languages.
func activeLanguages(path string, cfg *config.Config) []string {
	if d, err := elmfile.ParseFile(path); err == nil {
		return d.Languages()
	}
	return cfg.Languages
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("elm-i18n version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// init (create a fresh I18n.elm)
// ---------------------------------------------------------------------------

func newInitCmd(cfg *config.Config) *cobra.Command {
	var languages string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a fresh I18n.elm with the configured languages",
		Long: `Create a new I18n.elm module with the basic structure: the
Translations type alias, one record per language seeded with starter
keys, and the Language helper functions.

Refuses to overwrite an existing file — remove it first to reinitialize.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			langs := cfg.Languages
			if languages != "" {
				langs = nil
				for _, lang := range strings.Split(languages, ",") {
					if lang = strings.TrimSpace(lang); lang != "" {
						langs = append(langs, lang)
					}
				}
			}
			if err := scaffold.Create(filePath, langs); err != nil {
				return err
			}
			logSuccess(i18n.T("Created %s with basic structure"), filePath)
			var shown []string
			for _, lang := range langs {
				shown = append(shown, langmeta.Display(lang))
			}
			logInfo(i18n.T("Languages: %s"), strings.Join(shown, ", "))

			// Record the setup for later runs, unless a project file
			// already pins it.
			if !fileExists(config.FileName) {
				saved := &config.Config{File: filePath, Languages: langs}
				if err := saved.Save("."); err != nil {
					return err
				}
				logInfo(i18n.T("Wrote %s"), config.FileName)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&languages, "languages", "", "Languages for the new module (comma-separated, default en,fr)")

	return cmd
}

// ---------------------------------------------------------------------------
// add / add-fn (insert translations)
// ---------------------------------------------------------------------------

func newAddCmd(langs []string) *cobra.Command {
	values := make(map[string]*string, len(langs))

	cmd := &cobra.Command{
		Use:   "add <key>",
		Short: "Add a simple string translation",
		Long: `Add a string translation under a new key.

A value must be supplied for every language of the document, e.g.:

  elm-i18n add greeting --en "Hello" --fr "Bonjour"

If the key already exists, its current values are shown and the file is
left unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, args[0], "", values)
		},
	}

	for _, lang := range langs {
		values[lang] = cmd.Flags().String(lang, "", langmeta.Resolve(lang).Name+" translation")
	}

	return cmd
}

func newAddFnCmd(langs []string) *cobra.Command {
	var typeSig string
	values := make(map[string]*string, len(langs))

	cmd := &cobra.Command{
		Use:   "add-fn <key>",
		Short: "Add a function translation with a shared type signature",
		Long: `Add a function translation: one type signature shared by all
languages, and one function-literal body per language, e.g.:

  elm-i18n add-fn itemCount --type-sig "Int -> String" \
      --en '\n -> String.fromInt n ++ " items"' \
      --fr '\n -> String.fromInt n ++ " éléments"'

Multi-line bodies are re-indented to fit the record block.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, args[0], typeSig, values)
		},
	}

	cmd.Flags().StringVar(&typeSig, "type-sig", "", `Elm type signature, e.g. "Int -> String"`)
	_ = cmd.MarkFlagRequired("type-sig")

	for _, lang := range langs {
		values[lang] = cmd.Flags().String(lang, "", langmeta.Resolve(lang).Name+" implementation")
	}

	return cmd
}

func runAdd(cmd *cobra.Command, key, typeSig string, values map[string]*string) error {
	supplied := make(map[string]string, len(values))
	for lang, v := range values {
		if cmd.Flags().Changed(lang) {
			supplied[lang] = *v
		}
	}

	s := store.New(filePath)
	var (
		res *store.Result
		err error
	)
	if typeSig == "" {
		res, err = s.Add(key, supplied)
	} else {
		res, err = s.AddFunction(key, typeSig, supplied)
	}

	switch {
	case errors.Is(err, elmfile.ErrDuplicateKey):
		logWarning(i18n.T("Translation '%s' already exists:"), key)
		printResult(res)
		fmt.Fprintln(os.Stderr)
		logInfo(i18n.T("The existing translations might be sufficient. Consider using a different key."))
		return err
	case errors.Is(err, store.ErrNotFound):
		logInfo(i18n.T("Run 'elm-i18n init' to create a new I18n.elm file"))
		return err
	case err != nil:
		return err
	}

	logSuccess(i18n.T("Added translation '%s' to %s"), key, filePath)
	printResult(res)
	return nil
}

// ---------------------------------------------------------------------------
// check (read-only lookup)
// ---------------------------------------------------------------------------

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <key>",
		Short: "Show a key's translations without modifying anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			res, err := store.New(filePath).Check(key)
			if errors.Is(err, elmfile.ErrKeyNotFound) {
				return fmt.Errorf(i18n.T("translation '%s' not found in %s"), key, filePath)
			}
			if err != nil {
				return err
			}
			logSuccess(i18n.T("Translation '%s' exists:"), key)
			printResult(res)
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// remove (delete a key everywhere)
// ---------------------------------------------------------------------------

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <key>",
		Short: "Remove a key from the type alias and every language record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			res, err := store.New(filePath).Remove(key)
			if errors.Is(err, elmfile.ErrKeyNotFound) {
				return fmt.Errorf(i18n.T("translation '%s' not found in %s"), key, filePath)
			}
			if err != nil {
				return err
			}
			logInfo(i18n.T("Removed translation '%s':"), key)
			printResult(res)
			logSuccess(i18n.T("Removed translation '%s' from %s"), key, filePath)
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// status (read-only: file info + key statistics)
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show file info and key statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !fileExists(filePath) {
				logInfo(i18n.T("No translation file at %s. Run 'elm-i18n init' to create one."), filePath)
				return fmt.Errorf("%w: %s", store.ErrNotFound, filePath)
			}

			d, err := elmfile.ParseFile(filePath)
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "\n%sTranslation Module%s\n", colorBlue, colorReset)
			fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
			fmt.Fprintf(os.Stderr, "  File:       %s\n", filePath)

			var shown []string
			for _, lang := range d.Languages() {
				shown = append(shown, langmeta.Display(lang))
			}
			fmt.Fprintf(os.Stderr, "  Languages:  %s\n", strings.Join(shown, ", "))

			simple, function := 0, 0
			for _, f := range d.Fields() {
				if elmfile.IsFunction(f.Sig) {
					function++
				} else {
					simple++
				}
			}
			fmt.Fprintf(os.Stderr, "  Keys:       %d (%d simple, %d function)\n", simple+function, simple, function)

			if fileExists(store.BackupPath(filePath)) {
				fmt.Fprintf(os.Stderr, "  Backup:     %s\n", store.BackupPath(filePath))
			}
			fmt.Fprintln(os.Stderr)
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// Output helpers
// ---------------------------------------------------------------------------

// printResult prints an entry's values per language, type signature first
// for function entries.
func printResult(res *store.Result) {
	if res == nil {
		return
	}
	if res.Function {
		fmt.Fprintf(os.Stderr, "  %sType%s: %s\n", colorBlue, colorReset, res.TypeSig)
	}
	langs := res.Languages
	if len(langs) == 0 {
		langs = make([]string, 0, len(res.Values))
		for lang := range res.Values {
			langs = append(langs, lang)
		}
		sort.Strings(langs)
	}
	for _, lang := range langs {
		value := res.Values[lang]
		if strings.ContainsRune(value, '\n') {
			// Continuation lines align under the language label.
			value = strings.ReplaceAll(value, "\n", "\n      ")
		}
		fmt.Fprintf(os.Stderr, "  %s%s%s: %s\n", colorGreen, strings.ToUpper(lang), colorReset, value)
	}
}
