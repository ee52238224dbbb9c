// Command shift prints shuffled positions, inverse positions, and group
// rosters for a stateless shuffle configuration.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jmpnz/shift"
	"github.com/jmpnz/shift/perm"
)

const version = "0.1.0"

const usageMessage = "Use shift -h to show options"

// commands maps each command name to its handler and one-line usage.
var commands = map[string]struct {
	usage string
	run   func(w io.Writer, cfg *config, args []string) error
}{
	"shuffle":   {"shuffle <index...>   print the shuffled position of each index", runShuffle},
	"unshuffle": {"unshuffle <index...> print the index at each shuffled position", runUnshuffle},
	"group":     {"group <index...>     print the group of each index (needs --groupsize)", runGroup},
	"table":     {"table                print the full index -> shuffled table", runTable},
}

func usage(errorMessage string) {
	fmt.Fprintln(os.Stderr, errorMessage)
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  shift [OPTIONS] <command> <args...>")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Commands:")
	for _, name := range []string{"shuffle", "unshuffle", "group", "table"} {
		fmt.Fprintf(os.Stderr, "  %s\n", commands[name].usage)
	}
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, usageMessage)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, args, err := loadConfig(args)
	if err != nil {
		return 1
	}
	defer func() {
		if logRotator != nil {
			logRotator.Close()
		}
	}()

	if len(args) < 1 {
		usage("No command specified")
		return 1
	}
	cmd, ok := commands[args[0]]
	if !ok {
		usage(fmt.Sprintf("Unknown command %q", args[0]))
		return 1
	}

	log.Debugf("Running %s: %d rounds, seed %#08x, %d-bit domain", args[0], cfg.Rounds, cfg.Seed, cfg.Bits)
	if err := cmd.run(os.Stdout, cfg, args[1:]); err != nil {
		log.Errorf("%s: %v", args[0], err)
		return 1
	}
	return 0
}

// count returns the number of elements being shuffled, defaulting to the
// whole domain.
func count(cfg *config, p perm.Feistel) uint32 {
	if cfg.Count == 0 || uint64(cfg.Count) >= p.Size() {
		return uint32(p.Size() - 1)
	}
	return cfg.Count - 1
}

func parseIndices(args []string, last uint32) ([]uint32, error) {
	if len(args) == 0 {
		return nil, errors.New("no indices given")
	}
	indices := make([]uint32, len(args))
	for i, a := range args {
		u, err := strconv.ParseUint(a, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid index %q: %v", a, err)
		}
		if uint32(u) > last {
			return nil, fmt.Errorf("index %d out of range [0, %d]", u, last)
		}
		indices[i] = uint32(u)
	}
	return indices, nil
}

func runShuffle(w io.Writer, cfg *config, args []string) error {
	s, err := shift.NewShuffler(cfg.Rounds, cfg.Seed, cfg.Bits)
	if err != nil {
		return err
	}
	last := count(cfg, s.Permutation())
	indices, err := parseIndices(args, last)
	if err != nil {
		return err
	}
	for _, i := range indices {
		fmt.Fprintf(w, "%d -> %d\n", i, shuffle(s, i, last))
	}
	return nil
}

func runUnshuffle(w io.Writer, cfg *config, args []string) error {
	s, err := shift.NewShuffler(cfg.Rounds, cfg.Seed, cfg.Bits)
	if err != nil {
		return err
	}
	last := count(cfg, s.Permutation())
	indices, err := parseIndices(args, last)
	if err != nil {
		return err
	}
	for _, i := range indices {
		u := s.FromShuffledIndex(i)
		if uint64(last) < s.Permutation().Size()-1 {
			u = perm.Unwalk(s.Permutation(), i, last+1)
		}
		fmt.Fprintf(w, "%d <- %d\n", u, i)
	}
	return nil
}

func runGroup(w io.Writer, cfg *config, args []string) error {
	if cfg.GroupSize == 0 {
		return errors.New("--groupsize is required")
	}
	g, err := shift.NewGrouper(cfg.GroupSize, cfg.Rounds, cfg.Seed, cfg.Bits)
	if err != nil {
		return err
	}
	indices, err := parseIndices(args, uint32(g.Permutation().Size()-1))
	if err != nil {
		return err
	}
	var members []uint32
	for _, i := range indices {
		members = g.Group(i, members)
		strs := make([]string, len(members))
		for j, m := range members {
			strs[j] = strconv.FormatUint(uint64(m), 10)
		}
		fmt.Fprintf(w, "%d: group %d [%s]\n", i, g.GroupID(i), strings.Join(strs, " "))
	}
	return nil
}

func runTable(w io.Writer, cfg *config, args []string) error {
	if len(args) != 0 {
		return errors.New("table takes no arguments")
	}
	s, err := shift.NewShuffler(cfg.Rounds, cfg.Seed, cfg.Bits)
	if err != nil {
		return err
	}
	last := count(cfg, s.Permutation())
	for i := uint64(0); i <= uint64(last); i++ {
		fmt.Fprintf(w, "%d -> %d\n", i, shuffle(s, uint32(i), last))
	}
	return nil
}

// shuffle cycle walks when fewer elements than the domain holds are in use.
func shuffle(s shift.Shuffler, index, last uint32) uint32 {
	if uint64(last) < s.Permutation().Size()-1 {
		return perm.Walk(s.Permutation(), index, last+1)
	}
	return s.ToShuffledIndex(index)
}
