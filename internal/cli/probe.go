package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/freenight/internal/app"
	"github.com/MrSnakeDoc/freenight/internal/config"
	"github.com/MrSnakeDoc/freenight/internal/domain"
	"github.com/MrSnakeDoc/freenight/internal/logger"
	"github.com/MrSnakeDoc/freenight/internal/lookup"
	"github.com/MrSnakeDoc/freenight/internal/probe"
)

type probeOptions struct {
	hotel  string
	group  string
	date   string
	end    string
	dates  []string
	format string
}

func newProbeCmd() *cobra.Command {
	var opts probeOptions

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Probe availability directly against the configured providers",
		Example: `  freenight probe --hotel SINGI --group ZKFA25 --date 2025-11-12
  freenight probe --hotel SINGI --group ZKFA25 --date 2025-11-01 --end 2025-11-30 --format table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbe(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.hotel, "hotel", "", "hotel code, e.g. SINGI")
	f.StringVar(&opts.group, "group", "", "voucher group code, e.g. ZKFA25")
	f.StringVar(&opts.date, "date", "", "arrival date, or first date of a range (YYYY-MM-DD)")
	f.StringVar(&opts.end, "end", "", "last date of the range, inclusive")
	f.StringSliceVar(&opts.dates, "dates", nil, "explicit comma-separated arrival dates")
	f.StringVar(&opts.format, "format", "json", "output format: json or table")
	return cmd
}

func runProbe(cmd *cobra.Command, opts probeOptions) error {
	if opts.hotel == "" || opts.group == "" {
		return errors.New("--hotel and --group are required")
	}
	if opts.format != "json" && opts.format != "table" {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	cfg := config.Load()
	dates, err := opts.resolveDates(cfg.MaxDates)
	if err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = log.Sync() }()

	prober, _, err := app.NewProber(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	resp, err := lookup.NewService(prober, nil, 0, log).Lookup(ctx, lookup.Request{
		HotelCode: opts.hotel,
		GroupCode: opts.group,
		Dates:     dates,
	})
	if err != nil {
		return err
	}

	if opts.format == "table" {
		return writeTable(cmd.OutOrStdout(), resp)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// resolveDates turns the flags into arrival dates. --dates wins over --date/--end.
func (o probeOptions) resolveDates(maxDates int) ([]time.Time, error) {
	if len(o.dates) > 0 {
		return probe.ParseDates(o.dates, maxDates)
	}
	if o.date == "" {
		return nil, errors.New("--date or --dates is required")
	}
	start, err := domain.ParseDate(o.date)
	if err != nil {
		return nil, err
	}
	end := start
	if o.end != "" {
		if end, err = domain.ParseDate(o.end); err != nil {
			return nil, err
		}
	}
	return probe.ExpandRange(start, end, maxDates)
}

func writeTable(w io.Writer, resp *lookup.Response) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tSTATUS\tROOMS\tPROVIDER\tURL")
	for _, r := range resp.Results {
		rooms := "-"
		if r.Signal.RoomCount != nil {
			rooms = fmt.Sprint(*r.Signal.RoomCount)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.Date.Format(domain.DateLayout), r.Signal.Status, rooms, r.Provider, r.BookingURL)
	}
	s := resp.Summary
	fmt.Fprintf(tw, "\n%d dates: %d available, %d unavailable, %d indeterminate\n",
		s.Total, s.Available, s.Unavailable, s.Indeterminate)
	return tw.Flush()
}
