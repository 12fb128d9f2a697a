package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/crossfill/config"
	"github.com/domino14/crossfill/crossword"
	"github.com/domino14/crossfill/solver"
)

type ShellController struct {
	l   *readline.Instance
	cfg *config.Config

	cw       *crossword.Crossword
	solution solver.Assignment
	threads  int
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mcrossfill>\033[0m ",
		HistoryFile:     "/tmp/crossfill_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	threads := cfg.Threads
	if threads < 1 {
		threads = 1
	}
	return &ShellController{l: l, cfg: cfg, threads: threads}
}

// load builds a puzzle from a structure file and a words file. Bare
// filenames are resolved against the configured data path.
func (sc *ShellController) load(structureFile, wordsFile string) error {
	cw, err := crossword.LoadFile(
		sc.resolve(structureFile), sc.resolve(wordsFile))
	if err != nil {
		return err
	}
	sc.cw = cw
	sc.solution = nil
	sc.showMessage(fmt.Sprintf("loaded puzzle: %d x %d, %d slots, %d words",
		cw.Width, cw.Height, len(cw.Variables), len(cw.Words)))
	return nil
}

func (sc *ShellController) resolve(name string) string {
	if strings.ContainsRune(name, os.PathSeparator) {
		return name
	}
	if _, err := os.Stat(name); err == nil {
		return name
	}
	return filepath.Join(sc.cfg.DataPath, name)
}

func (sc *ShellController) solve() error {
	if sc.cw == nil {
		return errors.New("no puzzle loaded; use the load command")
	}
	s := &solver.Solver{}
	if err := s.Init(sc.cw); err != nil {
		return err
	}
	s.SetThreads(sc.threads)

	// ctrl-C interrupts the solve, not the shell.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT)
	defer stop()
	solution, err := s.Solve(ctx)
	if errors.Is(err, solver.ErrNoSolution) {
		sc.showMessage("No solution.")
		return nil
	}
	if err != nil {
		return err
	}
	sc.solution = solution
	log.Info().Uint64("nodes", s.Nodes()).Msg("solved")
	sc.showMessage(sc.cw.GridString(solution))
	return nil
}

func (sc *ShellController) show() error {
	if sc.cw == nil {
		return errors.New("no puzzle loaded")
	}
	sc.showMessage(sc.cw.GridString(sc.solution))
	return nil
}

func (sc *ShellController) save(filename string) error {
	if sc.solution == nil {
		return errors.New("no solution to save; run solve first")
	}
	if err := sc.cw.SaveImage(sc.solution, filename); err != nil {
		return err
	}
	sc.showMessage("wrote " + filename)
	return nil
}

func (sc *ShellController) setThreads(arg string) error {
	t, err := strconv.Atoi(arg)
	if err != nil || t < 1 {
		return errors.New("threads must be a positive integer")
	}
	sc.threads = t
	sc.showMessage(fmt.Sprintf("threads set to %d", t))
	return nil
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.l.Stderr())
}

func (sc *ShellController) handle(line string) error {
	fields, err := shellquote.Split(line)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "load":
		if len(args) != 2 {
			return errors.New("usage: load <structure-file> <words-file>")
		}
		return sc.load(args[0], args[1])
	case "solve":
		return sc.solve()
	case "show":
		return sc.show()
	case "save":
		if len(args) != 1 {
			return errors.New("usage: save <output.png>")
		}
		return sc.save(args[0])
	case "threads":
		if len(args) != 1 {
			return errors.New("usage: threads <n>")
		}
		return sc.setThreads(args[0])
	case "help":
		usage(sc.l.Stderr())
		return nil
	default:
		return fmt.Errorf("unknown command %q; try help", cmd)
	}
}

func (sc *ShellController) Loop() {
	defer sc.l.Close()
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if line == "exit" || line == "quit" {
			break
		}
		if err := sc.handle(line); err != nil {
			sc.showMessage("error: " + err.Error())
		}
	}
	log.Debug().Msg("exiting shell..")
}
