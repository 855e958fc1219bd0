// Package cli parses command-line arguments for the smfcodec binary.
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// Config holds the settings parsed from command-line arguments.
type Config struct {
	Command  string // "parse", "encode", "validate" or "convert"
	Path     string // input path (or bare filename, combined with Dir)
	Dir      string // directory to case-insensitively search for Path
	Out      string // output path, used by "encode" and "convert"
	BPM      int    // tempo for "convert"; 0 means "no tempo event"
	LogLevel string // debug, info, warn, error
	ShowHelp bool
}

var validCommands = map[string]bool{
	"parse":    true,
	"encode":   true,
	"validate": true,
	"convert":  true,
}

// ParseArgs parses command-line arguments into a Config.
func ParseArgs(args []string) (*Config, error) {
	reorderedArgs := reorderArgs(args)

	fs := flag.NewFlagSet("smfcodec", flag.ContinueOnError)

	config := &Config{}

	fs.StringVar(&config.Dir, "dir", "", "directory to search for Path case-insensitively")
	fs.StringVar(&config.Out, "out", "", "output path (encode, convert)")
	fs.IntVar(&config.BPM, "bpm", 0, "tempo in beats per minute (convert)")
	fs.StringVar(&config.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.StringVar(&config.LogLevel, "l", "info", "log level (shorthand)")
	fs.BoolVar(&config.ShowHelp, "help", false, "show this help")
	fs.BoolVar(&config.ShowHelp, "h", false, "show this help (shorthand)")

	if err := fs.Parse(reorderedArgs); err != nil {
		return nil, err
	}

	if config.ShowHelp {
		return config, nil
	}

	if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" && config.LogLevel == "info" {
		config.LogLevel = strings.ToLower(logLevelEnv)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[config.LogLevel] {
		return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.LogLevel)
	}

	if config.BPM < 0 {
		return nil, fmt.Errorf("bpm must be non-negative, got %d", config.BPM)
	}

	positional := fs.Args()
	if len(positional) < 1 {
		return nil, fmt.Errorf("missing command (parse, encode, validate, convert)")
	}
	config.Command = positional[0]
	if !validCommands[config.Command] {
		return nil, fmt.Errorf("unknown command %q (must be parse, encode, validate, or convert)", config.Command)
	}

	if len(positional) < 2 {
		return nil, fmt.Errorf("missing path argument for %q", config.Command)
	}
	config.Path = positional[1]

	return config, nil
}

// reorderArgs moves flags before positional arguments so flag.FlagSet can
// parse a command line like "smfcodec validate -dir ./songs track1.mid".
func reorderArgs(args []string) []string {
	var flags []string
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if len(arg) > 0 && arg[0] == '-' {
			flags = append(flags, arg)

			if i+1 < len(args) && len(args[i+1]) > 0 && args[i+1][0] != '-' {
				if arg != "-h" && arg != "--help" {
					i++
					flags = append(flags, args[i])
				}
			}
		} else {
			positional = append(positional, arg)
		}
	}

	return append(flags, positional...)
}

// PrintHelp prints the usage message.
func PrintHelp() {
	fmt.Fprintf(os.Stdout, `smfcodec - Standard MIDI File codec

Usage:
  smfcodec [options] <command> <path>

Commands:
  parse      read an SMF file and print a summary of its header and tracks
  encode     read an SMF file, re-encode it, and write the result to -out
  validate   read an SMF file and print semantic validation issues
  convert    read a note-list text file and write it out as an SMF file

Options:
  -dir <path>          directory to search for <path> case-insensitively
  -out <path>          output path (encode, convert)
  -bpm <n>             tempo in beats per minute (convert)
  -l, --log-level <lv> log level: debug, info, warn, error (default: info)
  -h, --help           show this help

Examples:
  smfcodec parse song.mid
  smfcodec validate -dir ./songs Song.MID
  smfcodec encode -out out.mid song.mid
  smfcodec convert -bpm 120 -out out.mid notes.txt
`)
}
