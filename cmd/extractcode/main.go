package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jessevdk/go-flags"
	"github.com/nguyengg/extractcode"
	"github.com/nguyengg/extractcode/internal"
	"github.com/schollz/progressbar/v3"
)

const version = "0.1.0"

var opts struct {
	Verbose         bool     `short:"v" long:"verbose" description:"print the relative path of every archive as it starts extracting"`
	Quiet           bool     `short:"q" long:"quiet" description:"suppress per-archive progress output"`
	Shallow         bool     `long:"shallow" description:"do not recurse into extracted archives"`
	ReplaceOriginal bool     `long:"replace-originals" description:"after the walk, delete every archive whose extraction had no warnings or errors and move its contents to the archive's former path"`
	Ignore          []string `long:"ignore" description:"glob pattern of files/directories to skip; repeatable" value-name:"glob"`
	AllFormats      bool     `long:"all-formats" description:"extract every recognized kind, including filesystem images, documentation, patches, and special packages"`
	About           bool     `long:"about" description:"print a short description and exit"`
	Version         bool     `long:"version" description:"print version and exit"`
	Args            struct {
		Input flags.Filename `positional-arg-name:"input" description:"the file or directory to extract" required:"yes"`
	} `positional-args:"yes"`
}

func main() {
	p := flags.NewParser(&opts, flags.Default)
	p.Name = "extractcode"

	args, err := p.Parse()
	switch {
	case err != nil:
		exit(err)
		return
	case opts.Version:
		fmt.Println(version)
		return
	case opts.About:
		fmt.Println("extractcode recursively extracts archives found in a file or directory tree.")
		return
	case len(args) != 0:
		_, _ = fmt.Fprintf(os.Stderr, "unknown positional arguments: %v\n", args)
		os.Exit(1)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx))
}

func run(ctx context.Context) int {
	input := string(opts.Args.Input)

	walkRoot, err := filepath.Abs(input)
	if err != nil {
		walkRoot = input
	}

	kinds := extractcode.DefaultKinds
	if opts.AllFormats {
		kinds = extractcode.AllKinds
	}

	// Verbose/progress printing below is driven directly off the event
	// stream, so Options.Verbose (which would additionally enable the
	// library's own internal logger) is deliberately left unset here.
	events := extractcode.ExtractArchives(ctx, input, extractcode.Options{
		Kinds:            kinds,
		Recurse:          !opts.Shallow,
		ReplaceOriginals: opts.ReplaceOriginal,
		IgnorePatterns:   opts.Ignore,
	})

	if !opts.Quiet {
		fmt.Println("Extracting archives...")
	}

	var bar *progressbar.ProgressBar
	if !opts.Quiet {
		bar = internal.ArchiveSpinner("extracting")
	}

	exitCode := 0
	var archiveCount int64
	for ev, err := range events {
		if err != nil {
			color.Red("ERROR extracting: %s: %s", input, err)
			exitCode = 1
			continue
		}

		if !ev.Done {
			if !opts.Quiet {
				name := filepath.Base(ev.Source)
				if opts.Verbose {
					if rel, relErr := filepath.Rel(walkRoot, ev.Source); relErr == nil {
						name = rel
					} else {
						name = ev.Source
					}
				}
				if bar != nil {
					_ = bar.Clear()
				}
				fmt.Println(name)
			}
			continue
		}

		archiveCount++
		if bar != nil {
			_ = bar.Add(1)
		}

		for _, w := range ev.Warnings {
			color.Yellow("WARNING extracting: %s: %s", ev.Source, w)
		}
		for _, e := range ev.Errors {
			color.Red("ERROR extracting: %s: %s", ev.Source, e)
			exitCode = 1
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}

	if !opts.Quiet {
		fmt.Printf("extracted %s archive(s)\n", humanize.Comma(archiveCount))
	}

	switch exitCode {
	case 0:
		color.Green("Extracting done.")
	default:
		color.Red("Extracting done with errors.")
	}

	return exitCode
}
