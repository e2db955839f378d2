// Command combiner provides a CLI for consolidating transcript
// segments.
//
// Usage:
//
//	combiner [command] [options]
//
// Commands:
//
//	combine     Combine strings into one consolidated string
//	segments    Combine a JSON segment file
//	align       Render a pairwise alignment of two strings
//	stats       Combine strings and report support statistics
//	version     Show version information
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pkg/profile"

	"github.com/ulagbulag/string-combiner/internal/align"
	"github.com/ulagbulag/string-combiner/internal/segment"
	"github.com/ulagbulag/string-combiner/internal/stats"
	"github.com/ulagbulag/string-combiner/internal/token"
	"github.com/ulagbulag/string-combiner/pkg/combiner"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "combine":
		combineCmd(os.Args[2:])
	case "segments":
		segmentsCmd(os.Args[2:])
	case "align":
		alignCmd(os.Args[2:])
	case "stats":
		statsCmd(os.Args[2:])
	case "version":
		fmt.Printf("combiner v%s\n", combiner.Version())
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`combiner - Transcript Segment Consolidation Tool

Usage:
  combiner <command> [options]

Commands:
  combine   Combine strings into one consolidated string
  segments  Combine a JSON segment file
  align     Render a pairwise alignment of two strings
  stats     Combine strings and report support statistics
  version   Show version information

Run 'combiner <command> -h' for command options.`)
}

// combinerFlags registers the shared consolidation options on a flag
// set and returns a builder for the configured combiner.
func combinerFlags(fs *flag.FlagSet) func() *combiner.Combiner {
	defaults := combiner.Default()
	gapOpen := fs.Int("gap-open", defaults.GapOpen, "gap open penalty")
	gapExtend := fs.Int("gap-extend", defaults.GapExtend, "gap extend penalty")
	thresholdY := fs.Int("threshold-deletion-y", defaults.ThresholdDeletionY,
		"maximum tolerated loss on the new side")
	thresholdX := fs.Int("threshold-deletion-x", defaults.ThresholdDeletionX,
		"maximum tolerated loss on the established side")
	workers := fs.Int("workers", defaults.Workers, "worker goroutines per step")

	return func() *combiner.Combiner {
		c := combiner.Default()
		c.GapOpen = *gapOpen
		c.GapExtend = *gapExtend
		c.ThresholdDeletionY = *thresholdY
		c.ThresholdDeletionX = *thresholdX
		c.Workers = *workers
		return c
	}
}

// readInputs returns the positional arguments, or stdin lines when none
// were given.
func readInputs(args []string) []string {
	if len(args) > 0 {
		return args
	}

	var inputs []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		inputs = append(inputs, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("reading stdin: %v", err)
	}
	return inputs
}

func combineCmd(args []string) {
	fs := flag.NewFlagSet("combine", flag.ExitOnError)
	build := combinerFlags(fs)
	prof := fs.Bool("profile", false, "write a CPU profile")
	fs.Parse(args)

	if *prof {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	inputs := readInputs(fs.Args())

	start := time.Now()
	output, ok := build().ConcatStrings(inputs)
	elapsed := time.Since(start)

	if !ok {
		log.Fatal("no inputs to combine")
	}

	fmt.Printf("Output: %s\n", output)
	fmt.Printf("Elapsed: %s\n", elapsed)
}

func segmentsCmd(args []string) {
	fs := flag.NewFlagSet("segments", flag.ExitOnError)
	build := combinerFlags(fs)
	file := fs.String("file", "", "segment JSON file (required)")
	byTokens := fs.Bool("tokens", false, "combine by decoder tokens instead of text")
	prof := fs.Bool("profile", false, "write a CPU profile")
	fs.Parse(args)

	if *file == "" {
		log.Fatal("segments: -file is required")
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("opening segment file: %v", err)
	}
	defer f.Close()

	segments, err := segment.Parse(f)
	if err != nil {
		log.Fatalf("parsing segment file: %v", err)
	}

	if *prof {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	c := build()
	start := time.Now()

	if *byTokens {
		combined, ok := c.ConcatSegmentTokens(segments)
		elapsed := time.Since(start)
		if !ok {
			log.Fatal("no segments to combine")
		}
		fmt.Printf("Tokens: %d\n", len(combined.Value))
		fmt.Printf("Span: %s\n", combined.Key.Duration())
		fmt.Printf("Elapsed: %s\n", elapsed)
		return
	}

	combined, ok := c.ConcatSegmentTexts(segments)
	elapsed := time.Since(start)
	if !ok {
		log.Fatal("no segments to combine")
	}
	fmt.Printf("Output: %s\n", combined.Value)
	fmt.Printf("Span: %s\n", combined.Key.Duration())
	fmt.Printf("Elapsed: %s\n", elapsed)
}

func alignCmd(args []string) {
	fs := flag.NewFlagSet("align", flag.ExitOnError)
	build := combinerFlags(fs)
	modeName := fs.String("mode", "local", "alignment mode: local, global or semiglobal")
	ncol := fs.Int("ncol", 80, "columns per output block")
	fs.Parse(args)

	if fs.NArg() != 2 {
		log.Fatal("align: expected exactly two strings")
	}

	var mode align.Mode
	switch *modeName {
	case "local":
		mode = align.Local
	case "global":
		mode = align.Global
	case "semiglobal":
		mode = align.Semiglobal
	default:
		log.Fatalf("align: unknown mode %q", *modeName)
	}

	fmt.Print(build().PrettyAlign(mode, fs.Arg(0), fs.Arg(1), *ncol))
}

func statsCmd(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	build := combinerFlags(fs)
	minSupport := fs.Int("min-support", 0, "drop tokens confirmed fewer times")
	fs.Parse(args)

	inputs := readInputs(fs.Args())

	seq, ok := build().ConsolidateRunes(inputs)
	if !ok {
		log.Fatal("no inputs to combine")
	}

	if *minSupport > 0 {
		seq = stats.FilterBySupport(seq, *minSupport)
	}

	fmt.Println(stats.FromSequence(seq))
	fmt.Printf("Output: %s\n", token.RuneString(seq))
}
