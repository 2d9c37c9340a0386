package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/HalsekiRaika/destructure"
	destructureinternal "github.com/HalsekiRaika/destructure/internal/destructure"
)

var Version = "dev"

func init() {
	destructureinternal.Version = Version
}

var (
	tagsFlag  string
	testsFlag bool
	outFlag   string
	colorFlag string
	debugFlag bool
)

func main() {
	cmd := &cobra.Command{
		Use:           "destructure [packages]",
		Short:         "Generate companion types for the destructure pattern",
		Version:       Version,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&tagsFlag, "tags", "b", "", "comma-separated build tags")
	cmd.Flags().BoolVarP(&testsFlag, "tests", "t", false, "include test files")
	cmd.Flags().StringVarP(&outFlag, "output", "o", "", "output file name")
	cmd.Flags().StringVar(&colorFlag, "color", "auto", "colorize diagnostics (auto|always|never)")
	cmd.Flags().BoolVar(&debugFlag, "debug", false, "dump extracted record models to stderr")

	if err := cmd.Execute(); err != nil {
		printErr(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	switch colorFlag {
	case "auto":
		// fatih/color detects the terminal by itself.
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value: %s", colorFlag)
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	opts := destructure.Options{
		Dir:    wd,
		Tags:   tagsFlag,
		Tests:  testsFlag,
		Output: outFlag,
	}
	if debugFlag {
		opts.Debug = os.Stderr
	}

	patterns := args
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	outs, err := destructure.Generate(cmd.Context(), opts, patterns...)
	if err != nil {
		return err
	}

	// Output paths are already relative to the working directory.
	for out, code := range outs {
		if err := os.WriteFile(out, code, 0o644); err != nil {
			return err
		}
		fmt.Println("Generated:", out)
	}
	return nil
}

// printErr prints one diagnostic per line, positions dimmed and messages in
// red, so a long joined error stays readable.
func printErr(err error) {
	red := color.New(color.FgRed)
	dim := color.New(color.Faint)

	for line := range strings.Lines(err.Error()) {
		line = strings.TrimSuffix(line, "\n")
		if pos, msg, ok := strings.Cut(line, ": "); ok && strings.Count(pos, ":") == 2 {
			dim.Fprint(os.Stderr, pos+": ")
			red.Fprintln(os.Stderr, msg)
			continue
		}
		red.Fprintln(os.Stderr, line)
	}
}
