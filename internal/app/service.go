package app

import (
	"bytes"
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/evan-wu/phoenix-jdbc-shell/internal/database"
	"github.com/evan-wu/phoenix-jdbc-shell/internal/render"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Settings controls how query results are presented.
type Settings struct {
	Render render.Options
	Format render.DisplayFormat
}

// Result is the outcome of one executed statement.
type Result struct {
	ID        uuid.UUID
	Statement string
	// Output is the rendered result set; empty for updates.
	Output   string
	RowCount int64
	Update   bool
	Elapsed  time.Duration
}

// Summary returns the line printed after a statement.
func (r *Result) Summary() string {
	verb := "executed"
	if r.Update {
		verb = "updated"
	}
	return fmt.Sprintf("%d rows %s in (%d milliseconds)", r.RowCount, verb, r.Elapsed.Milliseconds())
}

// Service coordinates statement execution between the shell and the engine.
type Service struct {
	driver   database.Driver
	log      logrus.FieldLogger
	settings Settings
	target   string
}

// NewService creates a new application service.
func NewService(driver database.Driver, log logrus.FieldLogger, settings Settings) *Service {
	return &Service{driver: driver, log: log, settings: settings}
}

// Connect establishes the engine connection. target is the redacted
// connection description used in logs and errors.
func (s *Service) Connect(ctx context.Context, dsn, target string) error {
	s.log.Infof("Connection to %s", target)
	if err := s.driver.Connect(ctx, dsn); err != nil {
		s.log.WithError(err).Error("Failed to get connection")
		return &ErrConnection{Target: target, Cause: err}
	}
	s.target = target
	return nil
}

// Disconnect closes the engine connection.
func (s *Service) Disconnect() error {
	return s.driver.Close()
}

// Target returns the description of the connected engine.
func (s *Service) Target() string {
	return s.target
}

// DatabaseName returns the current database name.
func (s *Service) DatabaseName() string {
	return s.driver.DatabaseName()
}

// Execute classifies stmt, runs it and renders its result.
func (s *Service) Execute(ctx context.Context, stmt string) (*Result, error) {
	res := &Result{ID: uuid.New(), Statement: stmt, Update: IsUpdate(stmt)}
	log := s.log.WithField("stmt", res.ID.String())
	log.Infof("Executing sql %s", stmt)

	start := time.Now()
	var err error
	if res.Update {
		res.RowCount, err = s.driver.Exec(ctx, stmt)
	} else {
		res.Output, res.RowCount, err = s.query(ctx, stmt)
	}
	res.Elapsed = time.Since(start)
	if err != nil {
		log.WithError(err).Error("Statement failed")
		return nil, &ErrQuery{Query: stmt, Cause: err}
	}

	if !res.Update {
		log.Info("\n" + res.Output)
	}
	log.Info(res.Summary())
	return res, nil
}

func (s *Service) query(ctx context.Context, stmt string) (string, int64, error) {
	rows, err := s.driver.Query(ctx, stmt)
	if err != nil {
		return "", 0, err
	}
	defer rows.Close()

	var out bytes.Buffer
	n, err := render.Encode(&out, s.settings.Format, rows.Columns(), rows, s.settings.Render)
	if err != nil {
		return "", 0, err
	}
	return out.String(), int64(n), nil
}

// ListTables renders the engine's table names as a one column result.
func (s *Service) ListTables(ctx context.Context) (*Result, error) {
	res := &Result{ID: uuid.New(), Statement: "!tables"}
	start := time.Now()
	names, err := s.driver.ListTables(ctx)
	if err != nil {
		s.log.WithError(err).Error("Listing tables failed")
		return nil, &ErrQuery{Query: res.Statement, Cause: err}
	}

	column := database.Column{Label: "TABLE_NAME", TypeName: "VARCHAR"}
	column.DisplayWidth = utf8.RuneCountInString(column.Label)
	data := make([][]string, len(names))
	for i, name := range names {
		if w := utf8.RuneCountInString(name); w > column.DisplayWidth {
			column.DisplayWidth = w
		}
		data[i] = []string{name}
	}
	columns := []database.Column{column}

	var out bytes.Buffer
	n, err := render.Encode(&out, s.settings.Format, columns, database.FromStrings(columns, data), render.Options{})
	if err != nil {
		return nil, &ErrQuery{Query: res.Statement, Cause: err}
	}
	res.Output = out.String()
	res.RowCount = int64(n)
	res.Elapsed = time.Since(start)
	return res, nil
}
