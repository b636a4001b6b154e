package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kingrea/gic-cinemas/internal/command"
)

type readResult struct {
	line string
	err  error
}

// Stdio talks to a terminal. Cancelling ctx (for example on SIGINT) makes a
// pending Prompt return command.ErrInterrupted.
type Stdio struct {
	ctx   context.Context
	out   io.Writer
	lines chan readResult
	err   error
}

// NewStdio starts reading lines from in in the background.
func NewStdio(ctx context.Context, in io.Reader, out io.Writer) *Stdio {
	s := &Stdio{ctx: ctx, out: out, lines: make(chan readResult)}
	go s.read(bufio.NewReader(in))
	return s
}

func (s *Stdio) read(r *bufio.Reader) {
	for {
		line, err := r.ReadString('\n')
		if line != "" || err == nil {
			if !s.send(readResult{line: strings.TrimRight(line, "\r\n")}) {
				return
			}
		}
		if err != nil {
			s.send(readResult{err: err})
			return
		}
	}
}

func (s *Stdio) send(r readResult) bool {
	select {
	case s.lines <- r:
		return true
	case <-s.ctx.Done():
		return false
	}
}

func (s *Stdio) Prompt(text string) (string, error) {
	fmt.Fprint(s.out, text)
	if s.err != nil {
		return "", s.err
	}
	select {
	case <-s.ctx.Done():
		s.err = command.ErrInterrupted
	case r := <-s.lines:
		if r.err == nil {
			return r.line, nil
		}
		s.err = r.err
	}
	return "", s.err
}

func (s *Stdio) Write(text string) { fmt.Fprintln(s.out, text) }
func (s *Stdio) Newline()          { fmt.Fprintln(s.out) }

// Script answers prompts from a fixed list of lines and echoes each answer
// after its prompt, so the output reads like a terminal transcript. When the
// lines run out Prompt returns End, which defaults to io.EOF.
type Script struct {
	lines []string
	out   io.Writer
	End   error
}

// NewScript returns a script writing its transcript to out.
func NewScript(out io.Writer, lines ...string) *Script {
	return &Script{lines: lines, out: out, End: io.EOF}
}

// ReadScript loads one answer per line from r.
func ReadScript(r io.Reader, out io.Writer) (*Script, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("console: read script: %w", err)
	}
	return NewScript(out, lines...), nil
}

// Remaining reports how many answers have not been consumed.
func (s *Script) Remaining() int { return len(s.lines) }

func (s *Script) Prompt(text string) (string, error) {
	fmt.Fprint(s.out, text)
	if len(s.lines) == 0 {
		return "", s.End
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	fmt.Fprintln(s.out, line)
	return line, nil
}

func (s *Script) Write(text string) { fmt.Fprintln(s.out, text) }
func (s *Script) Newline()          { fmt.Fprintln(s.out) }
