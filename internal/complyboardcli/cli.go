package complyboardcli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mmech/complyboard/internal/apiapp"
	"github.com/mmech/complyboard/internal/clientapp"
	"github.com/mmech/complyboard/internal/envutil"
	"github.com/mmech/complyboard/internal/extract"
	"github.com/mmech/complyboard/internal/report"
)

var ErrUsage = errors.New("usage")

func Execute(args []string) error {
	if len(args) < 1 {
		return usageError()
	}

	switch args[0] {
	case "setup":
		return runSetup(args[1:])
	case "check":
		return runCheck(args[1:])
	case "run":
		return runCommand(args[1:])
	default:
		return usageError()
	}
}

func PrintUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: complyboard setup --extract <path> [--env-file .env] [--force]")
	fmt.Fprintln(w, "       complyboard check [--extract <path>]")
	fmt.Fprintln(w, "       complyboard run api|client|all")
}

func usageError() error {
	return fmt.Errorf("%w: complyboard <setup|check|run> [...]", ErrUsage)
}

func runSetup(args []string) error {
	fs := flag.NewFlagSet("setup", flag.ContinueOnError)
	extractPath := fs.String("extract", "", "path to the compliance extract (csv, csv.xz, xlsx, or xls)")
	envPath := fs.String("env-file", ".env", "path to .env file")
	force := fs.Bool("force", false, "overwrite existing env file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *extractPath == "" {
		return errors.New("--extract is required")
	}
	if _, err := extract.Load(*extractPath); err != nil {
		return fmt.Errorf("invalid extract: %w", err)
	}

	values := map[string]string{
		"EXTRACT_PATH": *extractPath,
		"API_ADDR":     ":8080",
		"CLIENT_ADDR":  ":3000",
		"API_BASE_URL": "http://localhost:8080",
	}

	if err := envutil.WriteDotEnv(*envPath, values, *force); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", *envPath)
	return nil
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	extractPath := fs.String("extract", "", "path to the compliance extract (defaults to EXTRACT_PATH)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := *extractPath
	if path == "" {
		if err := envutil.LoadDotEnv(".env"); err != nil {
			return fmt.Errorf("load .env: %w", err)
		}
		path = os.Getenv("EXTRACT_PATH")
	}
	if path == "" {
		return errors.New("no extract path: pass --extract or set EXTRACT_PATH")
	}

	table, err := extract.Load(path)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d rows, %d supervisors, %d employees\n",
		path,
		len(table.Rows),
		len(table.DistinctValues(report.ColSupvID)),
		len(table.DistinctValues(report.ColID)),
	)
	return nil
}

func runCommand(args []string) error {
	if len(args) < 1 {
		return errors.New("missing run target: api | client | all")
	}

	if err := envutil.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch args[0] {
	case "api":
		return runAPI(ctx)
	case "client":
		return runClient(ctx)
	case "all":
		return runAll(ctx)
	default:
		return fmt.Errorf("unknown run target %q", args[0])
	}
}

func runAPI(ctx context.Context) error {
	if err := apiapp.Run(ctx, apiapp.DefaultConfigFromEnv()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runClient(ctx context.Context) error {
	if err := clientapp.Run(ctx, clientapp.DefaultConfigFromEnv()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runAll(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() { errCh <- runAPI(ctx) }()
	go func() {
		time.Sleep(500 * time.Millisecond)
		errCh <- runClient(ctx)
	}()

	for i := 0; i < 2; i++ {
		err := <-errCh
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}
	return nil
}
