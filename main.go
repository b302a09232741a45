package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/cccsat/cccsat/explain"
	"github.com/cccsat/cccsat/solver"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[0], os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// cli holds the parsed command line.
type cli struct {
	cfg     Config
	path    string
	verbose bool
	level   logrus.Level
}

func parseArgs(name string, args []string, stderr io.Writer) (*cli, error) {
	def := defaultConfig()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Syntax : %s [options] (file.cnf|-)\n", name)
		fs.PrintDefaults()
	}
	var (
		verbose    = fs.Bool("verbose", false, "sets verbose mode on")
		configPath = fs.String("config", "", "reads options from a YAML file; flags take precedence over it")
		logLevel   = fs.String("log-level", "warning", "level of the logs written on stderr; debug traces every step")
		strategy   = fs.String("strategy", def.Strategy, "search strategy: sweep or bombs")
		direction  = fs.String("direction", def.Direction, "direction of the sweep: ascending or descending")
		from       = fs.String("from", "", "first counter of the sweep, in decimal or with a 0x prefix")
		till       = fs.String("till", "", "exclusive bound of the sweep, unbounded by default")
		minStep    = fs.Int("bomb-min-step", def.Bombs.MinStep, "bombs are at least 2^min-step counters apart")
		spread     = fs.Int("bomb-spread", def.Bombs.Spread, "bombs are at most 2^(min-step+spread) counters apart")
		seed       = fs.Uint64("bomb-seed", def.Bombs.Seed, "seed of the bomb placement")
		progress   = fs.Bool("progress", false, "shows a progress bar on stderr")
		verify     = fs.Bool("verify", false, "checks the answer with an independent solver")
		count      = fs.Bool("count", false, "rather than solving the problem, counts the number of models it accepts")
		format     = fs.String("format", def.Format, "output format: dimacs or yaml")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, errors.New("expected exactly one problem file")
	}
	c := &cli{cfg: def, path: fs.Arg(0), verbose: *verbose}
	var err error
	if c.level, err = logrus.ParseLevel(*logLevel); err != nil {
		return nil, errors.Wrap(err, "invalid log level")
	}
	if *configPath != "" {
		if err := loadConfig(*configPath, &c.cfg); err != nil {
			return nil, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "strategy":
			c.cfg.Strategy = *strategy
		case "direction":
			c.cfg.Direction = *direction
		case "from":
			var counter uint64
			counter, err = parseCounter(*from)
			c.cfg.From = &counter
		case "till":
			var counter uint64
			counter, err = parseCounter(*till)
			c.cfg.Till = &counter
		case "bomb-min-step":
			c.cfg.Bombs.MinStep = *minStep
		case "bomb-spread":
			c.cfg.Bombs.Spread = *spread
		case "bomb-seed":
			c.cfg.Bombs.Seed = *seed
		case "progress":
			c.cfg.Progress = *progress
		case "verify":
			c.cfg.Verify = *verify
		case "count":
			c.cfg.Count = *count
		case "format":
			c.cfg.Format = *format
		}
	})
	if err != nil {
		return nil, errors.Wrapf(err, "invalid option")
	}
	if err := c.cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return c, nil
}

func run(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	c, err := parseArgs(name, args, stderr)
	if err != nil {
		return err
	}
	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetLevel(c.level)
	dimacs := c.cfg.Format == "dimacs"
	if dimacs {
		fmt.Fprintf(stdout, "c solving %s\n", c.path)
	}
	cs, err := parse(c.path, stdin)
	if err != nil {
		return err
	}
	if c.verbose && dimacs {
		fmt.Fprintf(stdout, "c ======================================================================================\n")
		fmt.Fprintf(stdout, "c | Number of clauses   : %9d                                                    |\n", cs.Len())
		fmt.Fprintf(stdout, "c | Number of variables : %9d                                                    |\n", cs.NbVars)
	}
	var obs observers
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		obs = append(obs, solver.LoggingObserver{Logger: logger.WithField("problem", c.path)})
	}
	var bar *progressObserver
	if c.cfg.Progress {
		bar = newProgressObserver(stderr, &c.cfg)
		obs = append(obs, bar)
	}
	opts := c.cfg.options()
	if len(obs) > 0 {
		opts = append(opts, solver.WithObserver(obs))
	}
	s, err := newSearch(cs, &c.cfg, opts)
	if err != nil {
		return err
	}
	if c.cfg.Count {
		nb := countModels(ctx, s.(*solver.Solver), c.verbose && dimacs, stdout)
		if bar != nil {
			bar.finish()
		}
		if s.Status() == solver.Indet {
			logger.Warn("count interrupted")
		}
		res := newReport(s.Status(), nil, s)
		res.Count = &nb
		if dimacs {
			if c.verbose {
				res.writeStats(stdout)
			}
			fmt.Fprintln(stdout, nb)
			return nil
		}
		return res.writeYAML(stdout)
	}
	status := solve(ctx, s)
	if bar != nil {
		bar.finish()
	}
	if status == solver.Indet {
		logger.Warn("search interrupted")
	}
	var model []bool
	if status == solver.Sat {
		if model, err = s.Model(); err != nil {
			return errors.Wrap(err, "could not get model")
		}
	}
	if c.cfg.Verify && status != solver.Indet {
		if err := explain.FromClauseSet(cs).Check(status, model); err != nil {
			return errors.Wrap(err, "invalid answer")
		}
		logger.WithField("status", status).Info("answer verified")
	}
	res := newReport(status, model, s)
	if dimacs {
		if c.verbose {
			res.writeStats(stdout)
		}
		res.writeDimacs(stdout)
		return nil
	}
	return res.writeYAML(stdout)
}

// parse reads the problem at path, or on stdin if path is "-".
func parse(path string, stdin io.Reader) (*solver.ClauseSet, error) {
	var (
		cs  *solver.ClauseSet
		err error
	)
	if path == "-" {
		cs, err = solver.ParseCNF(stdin)
	} else {
		cs, err = solver.ParseFile(path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not parse problem")
	}
	return cs, nil
}

func newSearch(cs *solver.ClauseSet, cfg *Config, opts []solver.Option) (solver.Interface, error) {
	if cfg.Strategy != "bombs" {
		return solver.New(cs, opts...), nil
	}
	b, err := solver.NewBombs(cs, cfg.bombConfig(), opts...)
	if err != nil {
		return nil, errors.Wrap(err, "could not drop bombs")
	}
	return b, nil
}

// countModels enumerates the models s can reach until it is over or ctx is done.
// If trace is true, a comment line is printed on w each time a model is found.
func countModels(ctx context.Context, s *solver.Solver, trace bool, w io.Writer) int {
	if !trace {
		return s.Enumerate(nil, ctx.Done())
	}
	models := make(chan []bool)
	go s.Enumerate(models, ctx.Done())
	nb := 0
	for range models {
		nb++
		fmt.Fprintf(w, "c %d models found\n", nb)
	}
	return nb
}

// solve runs s until it is over or ctx is done.
// It returns Indet if the search was interrupted.
func solve(ctx context.Context, s solver.Interface) solver.Status {
	for {
		select {
		case <-ctx.Done():
			return solver.Indet
		default:
		}
		if status := s.Step(); status != solver.Indet {
			return status
		}
	}
}
