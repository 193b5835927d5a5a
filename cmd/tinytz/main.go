package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/tinytz/internal/config"
	"github.com/tinytz/posix/tzposix"
)

const (
	LevelTrace = slog.Level(-8)
	LevelFatal = slog.Level(12)
)

// Custom Logger methods for Trace and Fatal
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

func Fatal(msg string, args ...any) {
	slog.Log(context.Background(), LevelFatal, msg, args...)
	os.Exit(1) // Terminate the program after logging
}

// parseLogLevel accepts any prefix of trace, debug, info, warning, error
// or fatal.
func parseLogLevel(value string) (slog.Level, error) {
	lv := strings.ToLower(value)
	switch {
	case lv == "":
		return slog.LevelInfo, nil
	case strings.HasPrefix("trace", lv):
		return LevelTrace, nil
	case strings.HasPrefix("debug", lv):
		return slog.LevelDebug, nil
	case strings.HasPrefix("info", lv):
		return slog.LevelInfo, nil
	case strings.HasPrefix("warning", lv):
		return slog.LevelWarn, nil
	case strings.HasPrefix("error", lv):
		return slog.LevelError, nil
	case strings.HasPrefix("fatal", lv):
		return LevelFatal, nil
	}
	return 0, errors.Errorf("the loglevel value %q must be a prefix of one of these words, \"trace\", \"debug\", \"info\", \"warning\", \"error\" or \"fatal\"", value)
}

// options are the settings of one run, flags merged over the config file.
type options struct {
	configPath string
	logLevel   string
	parser     string
	partial    bool
	year       int
	at         string
	jsonFile   string
	zoneinfo   bool
	verify     bool

	cfg  *config.Config
	now  time.Time
	args []string
}

func newFlagSet(o *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("tinytz", pflag.ContinueOnError)
	fs.StringVarP(&o.logLevel, "loglevel", "l", "", "Set loglevel to trace, debug, info, warning, error or fatal")
	fs.StringVarP(&o.configPath, "config", "c", "", "YAML config file (default $"+config.EnvVar+")")
	fs.StringVarP(&o.parser, "parser", "p", "", "Descriptor parser, tiny or glibc")
	fs.BoolVar(&o.partial, "partial", false, "Keep the fields decoded before a parse failure")
	fs.IntVarP(&o.year, "year", "y", 0, "Year whose transitions are reported (default: year of --at)")
	fs.StringVarP(&o.at, "at", "a", "", "RFC 3339 instant for the DST status (default: now)")
	fs.StringVarP(&o.jsonFile, "json", "j", "", "Write the decoded zones as JSON")
	fs.Lookup("json").NoOptDefVal = "tinytz.json"
	// Parsed Arguments	Resulting Value
	// --json=zones.json	zones.json
	// --json		tinytz.json
	// [nothing]		""
	fs.BoolVarP(&o.zoneinfo, "zoneinfo", "z", false, "Decode the footer of every system zoneinfo file")
	fs.BoolVar(&o.verify, "verify", false, "Verify the configured zones against embedded IANA data")
	return fs
}

// load parses args, reads the config file and fills the zero flags
// from it.
func (o *options) load(args []string, now time.Time) error {
	fs := newFlagSet(o)
	if err := fs.Parse(args); err != nil {
		return err
	}
	o.args = fs.Args()

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if fs.Changed("parser") {
		cfg.Parser = o.parser
	}
	if fs.Changed("partial") && o.partial {
		cfg.Commit = tzposix.CommitPartial.String()
	}
	if fs.Changed("year") {
		cfg.Year = o.year
	}
	if fs.Changed("loglevel") {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg

	o.now = now.UTC()
	if o.at != "" {
		if o.now, err = time.Parse(time.RFC3339, o.at); err != nil {
			return errors.Wrap(err, "--at")
		}
	}
	if o.cfg.Year == 0 {
		o.cfg.Year = o.now.Year()
	}
	return nil
}

// newZone returns an empty zone configured by o.
func (o *options) newZone() *tzposix.Zone {
	parser, _ := tzposix.LookupParser(o.cfg.Parser)
	commit, _ := o.cfg.CommitMode()
	return tzposix.New(tzposix.WithParser(parser), tzposix.WithCommit(commit))
}

// descriptors are the command line arguments, or the configured zones.
func (o *options) descriptors() []config.Zone {
	if len(o.args) == 0 {
		return o.cfg.Zones
	}
	zones := make([]config.Zone, len(o.args))
	for i, d := range o.args {
		zones[i] = config.Zone{Descriptor: d}
	}
	return zones
}

func run(args []string, stdout io.Writer, now time.Time) error {
	var o options
	if err := o.load(args, now); err != nil {
		return err
	}
	level, err := parseLogLevel(o.cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetLogLoggerLevel(level)
	Trace("options", "parser", o.cfg.Parser, "commit", o.cfg.Commit, "year", o.cfg.Year, "at", o.now)

	var exports []ZoneJSON
	failed := 0
	switch {
	case o.zoneinfo:
		cat := newCatalog()
		for _, dir := range o.cfg.ZoneinfoDirs {
			cat.walk(dir)
		}
		exports, failed = listZoneinfo(stdout, &o, cat)
	case o.verify:
		exports, failed = verifyZones(stdout, &o)
	default:
		zones := o.descriptors()
		if len(zones) == 0 {
			return errors.New("no descriptor given and no zones configured")
		}
		for _, zc := range zones {
			z := o.newZone()
			e, err := writeReport(stdout, z, zc, o.cfg.Year, o.now)
			if err != nil {
				failed++
				slog.Error("descriptor rejected", "descriptor", zc.Descriptor, "error", err)
			}
			exports = append(exports, e)
		}
	}

	if o.jsonFile != "" {
		if err := writeJSON(o.jsonFile, exports); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Successfully wrote JSON data to %s\n", o.jsonFile)
	}
	if failed > 0 {
		return errors.Errorf("%d of %d zones failed", failed, len(exports))
	}
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, time.Now()); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		Fatal("tinytz failed", "error", err)
	}
}
