package main

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/decred/slog"
	flags "github.com/jessevdk/go-flags"
	"github.com/jmpnz/shift/perm"
)

const (
	defaultRounds      = 4
	defaultSeed        = 42
	defaultBits        = 4
	defaultLogLevel    = "info"
	defaultLogFilename = "shift.log"
)

// config defines the configuration options for shift.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ConfigFile  string `short:"C" long:"configfile" description:"Path to configuration file"`
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`
	DebugLevel  string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical}"`
	LogDir      string `long:"logdir" description:"Directory to write rotated log files to (stdout only when empty)"`

	Rounds    uint32 `short:"r" long:"rounds" description:"Number of Feistel rounds"`
	Seed      uint32 `short:"s" long:"seed" description:"Permutation seed"`
	SeedKey   string `long:"seedkey" description:"Derive the seed from this key (overrides --seed)"`
	Bits      uint32 `short:"b" long:"bits" description:"Width of the index domain in bits"`
	Count     uint32 `short:"n" long:"count" description:"Number of elements to shuffle, at most 2^bits (0 means 2^bits)"`
	GroupSize uint32 `short:"g" long:"groupsize" description:"Group size for the group command"`
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	path = os.ExpandEnv(path)

	if !strings.HasPrefix(path, "~") {
		return filepath.Clean(path)
	}

	// Expand initial ~ to the current user's home directory, or ~otheruser
	// to otheruser's home directory.  On Windows, both forward and backward
	// slashes can be used.
	path = path[1:]

	var pathSeparators string
	if runtime.GOOS == "windows" {
		pathSeparators = string(os.PathSeparator) + "/"
	} else {
		pathSeparators = string(os.PathSeparator)
	}

	userName := ""
	if i := strings.IndexAny(path, pathSeparators); i != -1 {
		userName = path[:i]
		path = path[i:]
	}

	homeDir := ""
	var u *user.User
	var err error
	if userName == "" {
		u, err = user.Current()
	} else {
		u, err = user.Lookup(userName)
	}
	if err == nil {
		homeDir = u.HomeDir
	}
	// Fallback to CWD if user lookup fails or user has no home directory.
	if homeDir == "" {
		homeDir = "."
	}

	return filepath.Join(homeDir, path)
}

// validLogLevel returns whether or not logLevel is a valid debug log level.
func validLogLevel(logLevel string) bool {
	_, ok := slog.LevelFromString(logLevel)
	return ok
}

// loadConfig initializes and parses the config using a config file and command
// line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//
// Command line options always take precedence.
func loadConfig(args []string) (*config, []string, error) {
	// Default config.
	cfg := config{
		DebugLevel: defaultLogLevel,
		Rounds:     defaultRounds,
		Seed:       defaultSeed,
		Bits:       defaultBits,
	}

	// Pre-parse the command line options to see if an alternative config
	// file or the version flag was specified.  Any errors aside from the
	// help message error can be ignored here since they will be caught by
	// the final parse below.
	preCfg := cfg
	preParser := flags.NewParser(&preCfg, flags.HelpFlag|flags.PassDoubleDash)
	_, err := preParser.ParseArgs(args)
	if err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, err)
			os.Exit(0)
		}
	}

	if preCfg.ShowVersion {
		fmt.Println("shift version", version)
		os.Exit(0)
	}

	// Load additional config from file.
	parser := flags.NewParser(&cfg, flags.Default)
	if preCfg.ConfigFile != "" {
		err = flags.NewIniParser(parser).ParseFile(cleanAndExpandPath(preCfg.ConfigFile))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing config file: %v\n", err)
			return nil, nil, err
		}
	}

	// Parse command line options again to ensure they take precedence.
	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		if e, ok := err.(*flags.Error); !ok || e.Type != flags.ErrHelp {
			fmt.Fprintln(os.Stderr, usageMessage)
		}
		return nil, nil, err
	}

	// Validate debug log level.
	if !validLogLevel(cfg.DebugLevel) {
		err := fmt.Errorf("the specified debug level [%v] is invalid", cfg.DebugLevel)
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usageMessage)
		return nil, nil, err
	}

	// Initialize log rotation.  After log rotation has been initialized,
	// the logger variables may be used.
	if cfg.LogDir != "" {
		cfg.LogDir = cleanAndExpandPath(cfg.LogDir)
		if err := initLogRotator(filepath.Join(cfg.LogDir, defaultLogFilename)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return nil, nil, err
		}
	}
	setLogLevels(cfg.DebugLevel)

	if cfg.SeedKey != "" {
		cfg.Seed = perm.SeedFromKey([]byte(cfg.SeedKey))
		log.Debugf("Derived seed %#08x from key %q", cfg.Seed, cfg.SeedKey)
	}
	if cfg.Bits <= perm.MaxBits && uint64(cfg.Count) > uint64(1)<<cfg.Bits {
		err := fmt.Errorf("count %d does not fit a %d-bit domain", cfg.Count, cfg.Bits)
		fmt.Fprintln(os.Stderr, err)
		return nil, nil, err
	}

	return &cfg, remainingArgs, nil
}
