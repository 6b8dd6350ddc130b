package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/fixedcol/fixedcol/pkg/common/log"
	"github.com/fixedcol/fixedcol/pkg/fixedvec"
	"github.com/fixedcol/fixedcol/pkg/flatmap"
	"github.com/fixedcol/fixedcol/pkg/hostinfo"
	"github.com/fixedcol/fixedcol/pkg/snapshot"
)

// Command completer for readline
var completer = readline.NewPrefixCompleter(
	readline.PcItem(".help"),
	readline.PcItem(".exit"),
	readline.PcItem(".stats"),
	readline.PcItem(".ls"),
	readline.PcItem(".new"),
	readline.PcItem(".use"),
	readline.PcItem(".drop"),
	readline.PcItem(".save"),
	readline.PcItem(".load"),
	readline.PcItem("PUSH"),
	readline.PcItem("POP"),
	readline.PcItem("INSERT"),
	readline.PcItem("ERASE"),
	readline.PcItem("GET"),
	readline.PcItem("SET"),
	readline.PcItem("FRONT"),
	readline.PcItem("BACK"),
	readline.PcItem("LIST"),
	readline.PcItem("RLIST"),
	readline.PcItem("RESIZE"),
	readline.PcItem("ASSIGN"),
	readline.PcItem("CLEAR"),
)

const helpText = `
fixedcol - interactive playground for fixed-capacity vectors.

Usage:
  fixedcol [options]

Options:
  -capacity int     - Capacity of the starting vector (default 16)
  -codec string     - Snapshot compression: none, snappy, zstd (default "snappy")
  -verbose          - Enable debug logging

Commands (interactive mode only):
  .help             - Show this help message
  .exit             - Exit the program
  .stats            - Show session and build information
  .ls               - List vectors in the session
  .new NAME CAP     - Create a vector with the given capacity and select it
  .use NAME         - Select a vector
  .drop NAME        - Remove a vector from the session
  .save PATH        - Write the selected vector's snapshot to PATH
  .load PATH        - Restore a snapshot from PATH into the selected vector

  PUSH value        - Append a value
  POP               - Remove and print the last value
  INSERT idx value  - Insert value at index idx
  ERASE from [to]   - Erase index from, or the half-open range [from, to)
  GET idx           - Print the value at index idx
  SET idx value     - Replace the value at index idx
  FRONT / BACK      - Print the first / last value
  LIST              - Print elements front to back
  RLIST             - Print elements back to front
  RESIZE n          - Set the length to n (grow fills empty strings)
  ASSIGN n value    - Replace contents with n copies of value
  CLEAR             - Remove all elements
`

// session holds the REPL state: a registry of named vectors and the name of
// the selected one.
type session struct {
	vectors *flatmap.Map[string, *fixedvec.Vector[string]]
	current string
	codec   snapshot.Codec
	logger  log.Logger
}

func (s *session) vec() (*fixedvec.Vector[string], error) {
	v, ok := s.vectors.Get(s.current)
	if !ok {
		return nil, fmt.Errorf("no vector selected; create one with .new")
	}
	return v, nil
}

func main() {
	capacity := flag.Int("capacity", 16, "capacity of the starting vector")
	codecName := flag.String("codec", "snappy", "snapshot compression: none, snappy, zstd")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	logger := log.New().With("component", "repl")
	if *verbose {
		logger.SetLevel(log.LevelDebug)
	}

	codec, err := snapshot.ParseCodec(*codecName)
	if err != nil {
		logger.Error("invalid -codec: %v", err)
		os.Exit(1)
	}

	s := &session{
		vectors: flatmap.New[string, *fixedvec.Vector[string]](flatmap.StringHasher),
		codec:   codec,
		logger:  logger,
	}
	start, err := fixedvec.New[string](*capacity)
	if err != nil {
		logger.Error("invalid -capacity: %v", err)
		os.Exit(1)
	}
	s.vectors.Put("main", start)
	s.current = "main"

	fmt.Printf("fixedcol (%s)\nType .help for help, .exit to quit.\n", hostinfo.Collect())

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "fixedcol> ",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       ".exit",
	})
	if err != nil {
		logger.Error("failed to initialize readline: %v", err)
		os.Exit(1)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Error("read error: %v", err)
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if done := s.dispatch(line); done {
			break
		}
	}
}

// dispatch runs one command line, returning true when the session ends.
func (s *session) dispatch(line string) bool {
	parts := strings.Fields(line)
	cmd := parts[0]
	args := parts[1:]

	if strings.HasPrefix(cmd, ".") {
		return s.dotCommand(strings.ToLower(cmd), args)
	}

	if err := s.vectorCommand(strings.ToUpper(cmd), args); err != nil {
		fmt.Printf("error: %v\n", err)
	}
	return false
}

func (s *session) dotCommand(cmd string, args []string) bool {
	switch cmd {
	case ".exit":
		return true
	case ".help":
		fmt.Print(helpText)
	case ".stats":
		s.printStats()
	case ".ls":
		s.listVectors()
	case ".new":
		if len(args) != 2 {
			fmt.Println("usage: .new NAME CAP")
			break
		}
		capacity, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Printf("invalid capacity %q\n", args[1])
			break
		}
		v, err := fixedvec.New[string](capacity)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			break
		}
		s.vectors.Put(args[0], v)
		s.current = args[0]
		s.logger.Debug("created vector %q with capacity %d", args[0], capacity)
	case ".use":
		if len(args) != 1 {
			fmt.Println("usage: .use NAME")
			break
		}
		if !s.vectors.Contains(args[0]) {
			fmt.Printf("no vector named %q\n", args[0])
			break
		}
		s.current = args[0]
	case ".drop":
		if len(args) != 1 {
			fmt.Println("usage: .drop NAME")
			break
		}
		if !s.vectors.Delete(args[0]) {
			fmt.Printf("no vector named %q\n", args[0])
			break
		}
		if s.current == args[0] {
			s.current = ""
		}
	case ".save":
		if len(args) != 1 {
			fmt.Println("usage: .save PATH")
			break
		}
		if err := s.save(args[0]); err != nil {
			fmt.Printf("error: %v\n", err)
		}
	case ".load":
		if len(args) != 1 {
			fmt.Println("usage: .load PATH")
			break
		}
		if err := s.load(args[0]); err != nil {
			fmt.Printf("error: %v\n", err)
		}
	default:
		fmt.Printf("unknown command %q; try .help\n", cmd)
	}
	return false
}

func (s *session) vectorCommand(cmd string, args []string) error {
	v, err := s.vec()
	if err != nil {
		return err
	}
	switch cmd {
	case "PUSH":
		if len(args) < 1 {
			return fmt.Errorf("usage: PUSH value")
		}
		return v.Push(strings.Join(args, " "))
	case "POP":
		val, err := v.Pop()
		if err != nil {
			return err
		}
		fmt.Println(val)
	case "INSERT":
		if len(args) < 2 {
			return fmt.Errorf("usage: INSERT idx value")
		}
		idx, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q", args[0])
		}
		return v.Insert(idx, strings.Join(args[1:], " "))
	case "ERASE":
		if len(args) < 1 || len(args) > 2 {
			return fmt.Errorf("usage: ERASE from [to]")
		}
		from, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q", args[0])
		}
		if len(args) == 1 {
			return v.Erase(from)
		}
		to, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid index %q", args[1])
		}
		return v.EraseRange(from, to)
	case "GET":
		if len(args) != 1 {
			return fmt.Errorf("usage: GET idx")
		}
		idx, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q", args[0])
		}
		val, err := v.At(idx)
		if err != nil {
			return err
		}
		fmt.Println(val)
	case "SET":
		if len(args) < 2 {
			return fmt.Errorf("usage: SET idx value")
		}
		idx, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q", args[0])
		}
		return v.Set(idx, strings.Join(args[1:], " "))
	case "FRONT":
		val, err := v.Front()
		if err != nil {
			return err
		}
		fmt.Println(val)
	case "BACK":
		val, err := v.Back()
		if err != nil {
			return err
		}
		fmt.Println(val)
	case "LIST":
		for i, e := range v.All() {
			fmt.Printf("%4d: %s\n", i, e)
		}
		fmt.Printf("%d element(s), capacity %d\n", v.Len(), v.Cap())
	case "RLIST":
		for i, e := range v.Backward() {
			fmt.Printf("%4d: %s\n", i, e)
		}
		fmt.Printf("%d element(s), capacity %d\n", v.Len(), v.Cap())
	case "RESIZE":
		if len(args) != 1 {
			return fmt.Errorf("usage: RESIZE n")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid length %q", args[0])
		}
		return v.Resize(n)
	case "ASSIGN":
		if len(args) < 2 {
			return fmt.Errorf("usage: ASSIGN n value")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid count %q", args[0])
		}
		return v.Assign(n, strings.Join(args[1:], " "))
	case "CLEAR":
		v.Clear()
	default:
		return fmt.Errorf("unknown command %q; try .help", cmd)
	}
	return nil
}

func (s *session) printStats() {
	info := hostinfo.Collect()
	fmt.Printf("build: %s\n", info)
	if info.Module != "" {
		fmt.Printf("module: %s\n", info.Module)
	}
	fmt.Printf("snapshot codec: %s\n", s.codec)
	fmt.Printf("vectors: %d\n", s.vectors.Len())
	if v, err := s.vec(); err == nil {
		fmt.Printf("selected: %s (len %d, cap %d)\n", s.current, v.Len(), v.Cap())
	}
}

func (s *session) listVectors() {
	names := make([]string, 0, s.vectors.Len())
	for name := range s.vectors.All() {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v, _ := s.vectors.Get(name)
		marker := " "
		if name == s.current {
			marker = "*"
		}
		fmt.Printf("%s %s (len %d, cap %d)\n", marker, name, v.Len(), v.Cap())
	}
}

func (s *session) save(path string) error {
	v, err := s.vec()
	if err != nil {
		return err
	}
	marshal, _ := snapshot.Strings()
	frame, err := snapshot.Encode(v, s.codec, marshal)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, frame, 0o644); err != nil {
		return err
	}
	s.logger.Info("saved %q (%d elements, %d bytes) to %s", s.current, v.Len(), len(frame), path)
	return nil
}

func (s *session) load(path string) error {
	v, err := s.vec()
	if err != nil {
		return err
	}
	frame, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, unmarshal := snapshot.Strings()
	if err := snapshot.Decode(frame, v, unmarshal); err != nil {
		return err
	}
	s.logger.Info("loaded %d element(s) into %q from %s", v.Len(), s.current, path)
	return nil
}
