//go:build linux

package main

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/srodi/sysmon/pkg/config"
	"github.com/srodi/sysmon/pkg/control"
	"github.com/srodi/sysmon/pkg/monitor"
	"github.com/srodi/sysmon/pkg/procfs"
	"github.com/srodi/sysmon/pkg/report"
	"github.com/srodi/sysmon/pkg/types"
	"github.com/srodi/sysmon/pkg/ui"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

func parseConfig(args []string) (config.Config, error) {
	def := config.Default()
	flags := flag.NewFlagSet("sysmon", flag.ExitOnError)
	configPath := flags.String("config", "", "optional YAML file; flags given on the command line override it")
	interval := flags.Duration("interval", def.Interval, "refresh interval (e.g. 3s, 1m)")
	topK := flags.Int("topk", def.TopK, "number of processes to display")
	sortName := flags.String("sort", def.Sort, "initial sort column: cpu or mem")
	hideKernel := flags.Bool("hide-kernel", def.HideKernel, "hide kernel threads such as kworker, ksoftirqd, etc")
	filter := flags.String("filter", "", "only show processes whose name contains this substring (case-insensitive)")
	procRoot := flags.String("proc", def.ProcRoot, "procfs mount point")
	sigName := flags.String("signal", def.Signal, "signal sent when terminating a process")
	watch := flags.Bool("watch", false, "display only; do not prompt for input")
	logFile := flags.String("log-file", "", "write log output to this file instead of stderr")
	if err := flags.Parse(args); err != nil {
		return def, err
	}

	cfg := def
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return def, err
		}
		cfg = loaded
	}

	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "interval":
			cfg.Interval = *interval
		case "topk":
			cfg.TopK = *topK
		case "sort":
			cfg.Sort = *sortName
		case "hide-kernel":
			cfg.HideKernel = *hideKernel
		case "filter":
			cfg.Filter = *filter
		case "proc":
			cfg.ProcRoot = *procRoot
		case "signal":
			cfg.Signal = *sigName
		case "watch":
			cfg.Watch = *watch
		case "log-file":
			cfg.LogFile = *logFile
		}
	})
	cfg.Normalize()
	return cfg, nil
}

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("opening log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	sig, err := control.ParseSignal(cfg.Signal)
	if err != nil {
		log.Fatalf("parsing signal: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mon := monitor.New(procfs.NewFS(cfg.ProcRoot))
	if err := mon.Prime(); err != nil {
		log.Fatalf("initializing CPU sampler: %v", err)
	}

	cleanupTerminal := enableSingleView(cfg.Watch)
	defer cleanupTerminal()

	var lines <-chan string
	if !cfg.Watch {
		lines = readLines(os.Stdin)
	}

	s := &session{cfg: cfg, sort: cfg.SortKey(), color: term.IsTerminal(int(os.Stdout.Fd()))}
	s.refresh(mon)
	s.draw(os.Stdout)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(mon)
			s.draw(os.Stdout)
		case line, ok := <-lines:
			if !ok {
				// stdin closed; keep refreshing without a prompt
				lines = nil
				s.cfg.Watch = true
				s.draw(os.Stdout)
				continue
			}
			action := s.prompt.Feed(line)
			if action.Quit {
				return
			}
			if action.SortChanged {
				s.sort = action.Sort
				s.draw(os.Stdout)
				continue
			}
			if action.PID > 0 {
				err := control.Terminate(action.PID, sig)
				if err != nil {
					log.Printf("terminate failed: %v", err)
				}
				s.action = control.Outcome(action.PID, err)
				s.actionErr = err != nil
			} else {
				s.action = ""
			}
			s.refresh(mon)
			s.draw(os.Stdout)
			ticker.Reset(cfg.Interval)
		}
	}
}

// session is the state carried between screens.
type session struct {
	cfg       config.Config
	sort      report.SortKey
	prompt    control.Prompt
	last      *types.Snapshot
	cycleErr  error
	action    string
	actionErr bool
	color     bool
}

func (s *session) refresh(mon *monitor.Monitor) {
	snap, err := mon.TakeSnapshot()
	if err != nil {
		log.Printf("snapshot failed: %v", err)
		s.last = nil
		s.cycleErr = err
		return
	}
	s.last = &snap
	s.cycleErr = nil
}

func (s *session) view() ui.View {
	v := ui.View{
		Snapshot: s.last,
		Sort:     s.sort,
		Filter:   s.cfg.FilterConfig(),
		TopK:     s.cfg.TopK,
		Interval: s.cfg.Interval,
		Color:    s.color,
	}
	if s.cycleErr != nil {
		v.Status = "snapshot failed: " + s.cycleErr.Error()
		v.StatusErr = true
	} else {
		v.Status = s.action
		v.StatusErr = s.actionErr
	}
	if s.cfg.Watch {
		v.Status += "\n(press Ctrl+C to exit)"
	} else {
		v.Prompt = s.prompt.Question()
	}
	return v
}

func (s *session) draw(out io.Writer) {
	v := s.view()
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		v.NameWidth = ui.NameWidthFor(width)
	}

	var buf bytes.Buffer
	if err := ui.Render(&buf, v); err != nil {
		log.Printf("render failed: %v", err)
		return
	}
	clearScreen(out)
	if _, err := out.Write(buf.Bytes()); err != nil {
		log.Printf("write failed: %v", err)
	}
}

// readLines forwards stdin lines until EOF, then closes the channel.
func readLines(r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			log.Printf("reading input: %v", err)
		}
	}()
	return lines
}

func clearScreen(out io.Writer) {
	fmt.Fprint(out, "\033[H\033[2J")
}

// enableSingleView switches to the alternate screen. In watch mode the
// cursor is hidden and stdin echo suppressed; interactive mode keeps both
// so the operator can see what they type.
func enableSingleView(watch bool) func() {
	stdoutFD := int(os.Stdout.Fd())
	stdinFD := int(os.Stdin.Fd())
	if !term.IsTerminal(stdoutFD) {
		return func() {}
	}

	fmt.Print("\033[?1049h") // switch to alternate buffer

	var restore []func()
	if watch {
		fmt.Print("\033[?25l") // hide cursor
		restore = append(restore, func() { fmt.Print("\033[?25h") })
		if term.IsTerminal(stdinFD) {
			if undoEcho, err := disableInputEcho(stdinFD); err != nil {
				log.Printf("unable to suppress stdin echo: %v", err)
			} else if undoEcho != nil {
				restore = append(restore, undoEcho)
			}
		}
	}

	return func() {
		for i := len(restore) - 1; i >= 0; i-- {
			restore[i]()
		}
		fmt.Print("\033[?1049l") // restore main buffer
	}
}

// disableInputEcho turns off stdin echo so the alternate-screen view stays clean.
func disableInputEcho(fd int) (func(), error) {
	termState, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return nil, err
	}

	updated := *termState
	updated.Lflag &^= unix.ECHO

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &updated); err != nil {
		return nil, err
	}

	return func() {
		_ = unix.IoctlSetTermios(fd, unix.TCSETS, termState)
	}, nil
}
