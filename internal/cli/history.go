package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/vietddude/wsprobe/internal/core/config"
	redisclient "github.com/vietddude/wsprobe/internal/infra/redis"
)

var historyCmd = &cobra.Command{
	Use:   "history [count]",
	Short: "Show recently captured frames from the Redis capture buffer",
	Args:  cobra.MaximumNArgs(1),
	Run:   runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	count := int64(20)
	if len(args) == 1 {
		n, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || n <= 0 {
			fmt.Printf("Invalid count: %s\n", args[0])
			os.Exit(1)
		}
		count = n
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.Redis.URL == "" {
		fmt.Println("Frame capture is not configured (redis.url is empty)")
		os.Exit(1)
	}

	client, err := redisclient.NewClient(cfg.Redis)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = client.Close()
	}()

	ctx := context.Background()
	frames, err := client.Recent(ctx, cfg.Endpoint.URL, count)
	if err != nil {
		slog.Error("Failed to read capture buffer", "error", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "RECEIVED\tSESSION\tSEQ\tKIND\tPAYLOAD")
	for _, f := range frames {
		session := f.SessionID
		if len(session) > 8 {
			session = session[:8]
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			f.ReceivedAt.Format(time.RFC3339), session, f.Seq, f.Kind, f.Payload)
	}
	_ = w.Flush()
}
