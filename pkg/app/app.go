// Package app wires the command-line interface together: argument parsing,
// logging, file lookup, and dispatch to the codec for each of the four
// subcommands.
package app

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/zurustar/smfcodec/pkg/cli"
	"github.com/zurustar/smfcodec/pkg/fileutil"
	"github.com/zurustar/smfcodec/pkg/logger"
	"github.com/zurustar/smfcodec/pkg/smf"
)

// Application manages the top-level control flow of the smfcodec binary.
type Application struct {
	config *cli.Config
	log    *slog.Logger
}

// New creates an Application.
func New() *Application {
	return &Application{}
}

// Run parses args, initializes logging, and dispatches to the command
// named by the parsed Config.
func (app *Application) Run(args []string) error {
	// 1. コマンドライン引数の解析
	if err := app.parseArgs(args); err != nil {
		return fmt.Errorf("failed to parse args: %w", err)
	}

	if app.config.ShowHelp {
		cli.PrintHelp()
		return nil
	}

	// 2. ロガーの初期化
	if err := app.initLogger(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	smf.DebugFunc = logger.Debugf

	app.log.Info("smfcodec started", "command", app.config.Command, "path", app.config.Path)

	// 3. 入力ファイルの解決
	path, err := app.resolvePath()
	if err != nil {
		return fmt.Errorf("failed to locate input file: %w", err)
	}
	app.log.Debug("resolved input path", "path", path)

	// 4. コマンドのディスパッチ
	switch app.config.Command {
	case "parse":
		err = app.runParse(path)
	case "encode":
		err = app.runEncode(path)
	case "validate":
		err = app.runValidate(path)
	case "convert":
		err = app.runConvert(path)
	default:
		err = fmt.Errorf("unknown command %q", app.config.Command)
	}
	if err != nil {
		return err
	}

	app.log.Info("smfcodec finished")
	return nil
}

// parseArgs コマンドライン引数を解析
func (app *Application) parseArgs(args []string) error {
	config, err := cli.ParseArgs(args)
	if err != nil {
		return err
	}
	app.config = config
	return nil
}

// initLogger ロガーを初期化
func (app *Application) initLogger() error {
	if err := logger.InitLogger(app.config.LogLevel); err != nil {
		return err
	}
	app.log = logger.GetLogger()
	return nil
}

// resolvePath finds the input file on disk, using the case-insensitive
// fileutil search when Dir is set.
func (app *Application) resolvePath() (string, error) {
	if app.config.Dir == "" {
		return app.config.Path, nil
	}
	return fileutil.FindFileCaseInsensitive(app.config.Dir, app.config.Path)
}

// runParse reads an SMF file and logs a summary of its header and tracks.
func (app *Application) runParse(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	file, err := smf.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	app.log.Info("parsed file", "format", file.Format, "declaredTracks", file.TrackCount, "parsedTracks", len(file.Tracks))
	if file.TimeDivision.Kind == smf.TimeDivisionPPQ {
		app.log.Info("time division", "kind", "ppq", "ppq", file.TimeDivision.PPQ)
	} else {
		app.log.Info("time division", "kind", "smpte", "framesPerSecond", file.TimeDivision.FramesPerSecond, "ticksPerFrame", file.TimeDivision.TicksPerFrame)
	}

	for i, track := range file.Tracks {
		app.log.Info("track", "index", i, "chunkType", track.ChunkType, "events", len(track.Events))
	}

	return nil
}

// runEncode reads an SMF file, re-encodes it, and writes the result to -out.
func (app *Application) runEncode(path string) error {
	if app.config.Out == "" {
		return fmt.Errorf("encode requires -out")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	file, err := smf.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	encoded, err := smf.Encode(file)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	if err := os.WriteFile(app.config.Out, encoded, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", app.config.Out, err)
	}

	app.log.Info("encoded file", "in", path, "out", app.config.Out, "bytes", len(encoded))
	return nil
}

// runValidate reads an SMF file and prints every semantic issue Validate
// finds, returning an error when there is at least one.
func (app *Application) runValidate(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	file, err := smf.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	issues := smf.Validate(file)
	if len(issues) == 0 {
		app.log.Info("no issues found", "path", path)
		return nil
	}

	app.log.Warn("validation issues found", "path", path, "count", len(issues))
	for _, issue := range issues {
		fmt.Fprintln(os.Stdout, issue)
	}
	return fmt.Errorf("%d validation issue(s) found in %s", len(issues), path)
}

// runConvert reads a newline-delimited note-list text file and writes the
// corresponding SMF file to -out.
func (app *Application) runConvert(path string) error {
	if app.config.Out == "" {
		return fmt.Errorf("convert requires -out")
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	notes, err := parseNoteList(f)
	if err != nil {
		return fmt.Errorf("failed to parse note list %s: %w", path, err)
	}

	file := smf.ConvertToMidi(smf.ConvertSpec{
		BPM:    app.config.BPM,
		Tracks: []smf.NoteTrackSpec{{Notes: notes}},
	})

	encoded, err := smf.Encode(file)
	if err != nil {
		return fmt.Errorf("failed to encode converted file: %w", err)
	}

	if err := os.WriteFile(app.config.Out, encoded, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", app.config.Out, err)
	}

	app.log.Info("converted note list", "in", path, "out", app.config.Out, "notes", len(notes))
	return nil
}

// parseNoteList reads "midiNote velocity startTick length" lines, one note
// per line, and turns the absolute startTick column into the relative Ticks
// advance smf.ConvertToMidi expects between consecutive notes. The first
// note is placed at tick 0; later notes keep their distance from it.
func parseNoteList(r *os.File) ([]smf.Note, error) {
	var notes []smf.Note
	var lastStart uint32

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, fmt.Errorf("line %d: expected 4 fields, got %d", lineNo, len(fields))
		}

		midiNote, err := strconv.ParseUint(fields[0], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad midiNote %q: %w", lineNo, fields[0], err)
		}
		velocity, err := strconv.ParseUint(fields[1], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad velocity %q: %w", lineNo, fields[1], err)
		}
		startTick, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad startTick %q: %w", lineNo, fields[2], err)
		}
		length, err := strconv.ParseUint(fields[3], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad length %q: %w", lineNo, fields[3], err)
		}

		// Ticks is the advance after a note, so the previous note's value is
		// known only once this line's startTick is read.
		if len(notes) > 0 {
			notes[len(notes)-1].Ticks = uint32(startTick) - lastStart
		}
		lastStart = uint32(startTick)

		notes = append(notes, smf.Note{
			MidiNote: uint8(midiNote),
			Velocity: uint8(velocity),
			Length:   uint32(length),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return notes, nil
}
