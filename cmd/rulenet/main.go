// Command rulenet generates the reaction network of a TOML model.
//
// Usage:
//
//	rulenet [options] model.toml
//
// The network is written to stdout (or -out) as a species block followed
// by a reaction block, one entry per line.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/katalvlaran/rulenet/modelfile"
	"github.com/katalvlaran/rulenet/netgen"
)

var (
	verbose     = flag.Bool("v", false, "verbose (development) logging")
	outPath     = flag.String("out", "", "write the network to this file instead of stdout")
	metricsAddr = flag.String("metrics-addr", "", "serve Prometheus metrics on this address during the run, e.g. :9100")
	progress    = flag.Int("progress", 100, "log progress every N iterations (0 disables)")
	maxSpecies  = flag.Int("max-species", 0, "override max_species of the model")
	timeout     = flag.Duration("timeout", 0, "abort the run after this duration (0 means no limit)")
)

const usage = `rulenet generates a reaction network from a rule-based model.

Usage: rulenet [options] model.toml

`

func main() {
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	log, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "rulenet:", err)
		os.Exit(1)
	}
	err = run(log, flag.Arg(0))
	if err != nil {
		log.Error("run failed", zap.Error(err))
	}
	_ = log.Sync()
	if err != nil {
		os.Exit(exitCode(err))
	}
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

func run(log *zap.Logger, path string) error {
	setup, err := modelfile.Load(path)
	if err != nil {
		return err
	}
	cfg := setup.Config
	if *maxSpecies > 0 {
		cfg.MaxSpecies = *maxSpecies
	}
	log.Info("model loaded",
		zap.String("path", path),
		zap.Int("seeds", len(setup.Seeds)),
		zap.Int("rules", len(setup.Rules)),
		zap.String("memory_limit", humanize.IBytes(cfg.MemoryLimit)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	opts := []netgen.Option{
		netgen.WithConfig(cfg),
		netgen.WithLogger(log),
	}
	if *progress > 0 {
		opts = append(opts, netgen.WithProgress(func(p netgen.Progress) {
			log.Info("progress",
				zap.String("species", humanize.Comma(int64(p.Species))),
				zap.String("reactions", humanize.Comma(int64(p.Reactions))),
				zap.Int("iteration", p.Iteration),
				zap.String("heap", humanize.IBytes(p.HeapBytes)),
				zap.Duration("elapsed", p.Elapsed.Round(time.Millisecond)))
		}, *progress))
	}
	if *metricsAddr != "" {
		m := netgen.NewMetrics("rulenet")
		opts = append(opts, netgen.WithMetrics(m))
		srv := &http.Server{
			Addr:              *metricsAddr,
			Handler:           promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Warn("metrics server stopped", zap.Error(err))
			}
		}()
		defer func() { _ = srv.Close() }()
	}

	net, genErr := netgen.Generate(ctx, setup.Seeds, setup.Rules, opts...)
	if net == nil {
		return genErr
	}

	if *outPath == "" {
		err = write(os.Stdout, net)
	} else {
		err = writeFile(*outPath, net)
	}
	if err != nil {
		return err
	}

	return genErr
}

// writeFile writes the network to path. A failed Close is returned unless
// the write already failed.
func writeFile(path string, net *netgen.Network) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return write(f, net)
}

// write prints the network, partial or complete.
func write(w io.Writer, net *netgen.Network) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "begin species")
	for _, sp := range net.Species {
		fmt.Fprintf(bw, "%5d %s %g\n", sp.Index+1, sp.Key, sp.Concentration)
	}
	fmt.Fprintln(bw, "end species")
	fmt.Fprintln(bw, "begin reactions")
	for i, r := range net.Reactions {
		fmt.Fprintf(bw, "%5d %s %s %g #%s", i+1, indices(r.Reactants), indices(r.Products), r.Rate, r.Rule)
		if r.PropensityFactor != 1 {
			fmt.Fprintf(bw, " propensity=%g", r.PropensityFactor)
		}
		fmt.Fprintln(bw)
	}
	fmt.Fprintln(bw, "end reactions")

	return bw.Flush()
}

// indices renders 1-based species indices as "1,2", or "0" for none.
func indices(idx []int) string {
	if len(idx) == 0 {
		return "0"
	}
	s := ""
	for i, v := range idx {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprint(v + 1)
	}

	return s
}

// exitCode maps limit hits to 3 and cancellation to 130.
func exitCode(err error) int {
	switch {
	case errors.Is(err, netgen.ErrLimitExceeded):
		return 3
	case errors.Is(err, netgen.ErrCanceled):
		return 130
	default:
		return 1
	}
}
