package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/bimakw/polywallet/internal/application/services"
	"github.com/bimakw/polywallet/internal/config"
	"github.com/bimakw/polywallet/internal/domain/entities"
	"github.com/bimakw/polywallet/internal/infrastructure/chart"
	"github.com/bimakw/polywallet/internal/infrastructure/polymarket"
	"github.com/bimakw/polywallet/internal/pkg/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	var (
		wallet    = flag.String("wallet", "", "wallet address to load (0x...)")
		period    = flag.String("period", "ALL", "leaderboard period: DAY, WEEK, MONTH or ALL")
		asJSON    = flag.Bool("json", false, "print the dashboard as JSON")
		chartPath = flag.String("chart", "", "write the cumulative PnL chart as PNG to this path")
		raw       = flag.String("raw", "", "print the raw upstream payload of positions, closed-positions or activity")
		timeout   = flag.Duration("timeout", 60*time.Second, "overall load timeout")
	)
	flag.Parse()

	if *wallet == "" && flag.NArg() > 0 {
		*wallet = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Log.Format == "json" {
		cfg.Log.Format = "console"
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log, options{
		wallet:    *wallet,
		period:    *period,
		asJSON:    *asJSON,
		chartPath: *chartPath,
		raw:       *raw,
		timeout:   *timeout,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	wallet    string
	period    string
	asJSON    bool
	chartPath string
	raw       string
	timeout   time.Duration
}

func run(cfg *config.Config, log *zap.Logger, opts options) error {
	period, err := entities.ParsePeriod(opts.period)
	if err != nil {
		return err
	}

	loc, err := cfg.Display.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	client := polymarket.NewClientFromConfig(cfg.Polymarket, log)
	service := services.NewDashboardService(client, loc, cfg.Polymarket.ProfileLookup, log)

	session, err := service.Load(ctx, opts.wallet)
	if err != nil {
		return err
	}

	if opts.chartPath != "" {
		if err := writeChart(opts.chartPath, session.Analysis.Chart); err != nil {
			return err
		}
		log.Info("Chart written", zap.String("path", opts.chartPath))
	}

	switch {
	case opts.raw != "":
		view, ok := session.Raw(opts.raw)
		if !ok {
			return fmt.Errorf("no data for endpoint %q", opts.raw)
		}
		return printJSON(view)
	case opts.asJSON:
		return printJSON(session.Dashboard(period))
	default:
		return renderText(os.Stdout, session.Dashboard(period).Data)
	}
}

func writeChart(path string, data services.ChartData) error {
	png, err := chart.RenderTimeline(data)
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return os.WriteFile(path, png, 0o644)
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(out))
	return err
}
