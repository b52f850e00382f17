package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/evan-wu/phoenix-jdbc-shell/internal/app"
)

// Executor runs statements for the shell.
type Executor interface {
	Execute(ctx context.Context, stmt string) (*app.Result, error)
	ListTables(ctx context.Context) (*app.Result, error)
}

// ErrEmptyStatement is returned for a batch invocation without SQL.
var ErrEmptyStatement = errors.New("empty statement")

// maxLineSize bounds a single script line.
const maxLineSize = 1 << 20

// RunBatch executes the statement formed by args and prints its result.
func RunBatch(ctx context.Context, ex Executor, args []string, out io.Writer) error {
	stmt := BatchStatement(args)
	if stmt == "" {
		return ErrEmptyStatement
	}
	res, err := ex.Execute(ctx, stmt)
	if err != nil {
		return err
	}
	return printResult(out, res)
}

// RunScript reads statements from r, as typed at the interactive prompt, and
// executes each one when it is terminated. A failing statement is reported
// on errOut and the script continues; the returned error counts failures.
func RunScript(ctx context.Context, ex Executor, r io.Reader, out, errOut io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var acc Accumulator
	failed := 0
	for scanner.Scan() {
		line := scanner.Text()
		if IsQuit(line) {
			break
		}

		var res *app.Result
		var err error
		if !acc.Pending() && strings.TrimSpace(line) == tablesCommand {
			res, err = ex.ListTables(ctx)
		} else {
			stmt, ok := acc.Add(line)
			if !ok {
				continue
			}
			res, err = ex.Execute(ctx, stmt)
		}
		if err != nil {
			failed++
			fmt.Fprintf(errOut, "Error: %v\n", err)
			continue
		}
		if err := printResult(out, res); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if failed > 0 {
		return fmt.Errorf("%d statement(s) failed", failed)
	}
	return nil
}

func printResult(w io.Writer, res *app.Result) error {
	if !res.Update {
		if _, err := fmt.Fprintln(w, res.Output); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, res.Summary())
	return err
}
