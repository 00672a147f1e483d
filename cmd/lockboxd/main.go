/*
Command lockboxd runs a single lock-box ledger behind an HTTP API.

The state is persisted in an iavl store under db_dir. On the first start the
genesis file is applied, later starts resume from the last committed state.

	lockboxd -config lockboxd.toml
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/app"
	"github.com/iov-one/bridge/errors"
	"github.com/iov-one/bridge/ledger"
	"github.com/iov-one/bridge/store/iavl"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/tendermint/tendermint/libs/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	configPath := flag.String("config", "lockboxd.toml", "path to the node configuration file")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(bridge.Version())
		return
	}

	conf, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lockboxd: %s\n", err)
		os.Exit(2)
	}
	logger, closer, err := newLogger(conf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lockboxd: %s\n", err)
		os.Exit(2)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, conf, logger); err != nil {
		logger.Error("node stopped", "err", err)
		closer.Close()
		os.Exit(1)
	}
}

// newLogger writes to the log file when one is configured, rotating it,
// and to stdout otherwise.
func newLogger(conf *Config) (log.Logger, io.Closer, error) {
	var out io.WriteCloser = nopCloser{os.Stdout}
	if conf.LogFile != "" {
		out = &lumberjack.Logger{
			Filename:   conf.LogFile,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     28,
			Compress:   true,
		}
	}
	level, err := log.AllowLevel(conf.LogLevel)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	logger := log.NewTMLogger(log.NewSyncWriter(out)).With("module", "lockboxd")
	return log.NewFilter(logger, level), out, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func run(ctx context.Context, conf *Config, logger log.Logger) error {
	db := iavl.NewCommitStore(conf.DBDir, "lockbox")
	defer db.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	l, err := ledger.New(conf.ChainID, db, ledger.WithLogger(logger), ledger.WithMetrics(reg))
	if err != nil {
		return errors.Wrap(err, "open ledger")
	}
	if err := applyGenesis(l, conf, logger); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              conf.HTTP,
		Handler:           newRouter(l, reg, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "version", bridge.Version(), "addr", conf.HTTP, "chain", conf.ChainID, "height", l.Height())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrapf(errors.ErrState, "http server: %s", err)
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdown)
}

// applyGenesis initializes an empty store. A store that was initialized
// before is left as is.
func applyGenesis(l *ledger.Ledger, conf *Config, logger log.Logger) error {
	ok, err := l.Initialized()
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	if conf.Genesis == "" {
		return errors.Wrap(errors.ErrEmpty, "genesis file required to initialize the store")
	}
	gen, err := app.LoadGenesis(conf.Genesis)
	if err != nil {
		return err
	}
	if gen.ChainID != conf.ChainID {
		return errors.Wrapf(errors.ErrInput, "genesis is for chain %q", gen.ChainID)
	}
	if err := l.Genesis(gen.AppState); err != nil {
		return err
	}
	logger.Info("genesis applied", "file", conf.Genesis)
	return nil
}
