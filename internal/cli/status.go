package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/vietddude/wsprobe/internal/core/config"
	"github.com/vietddude/wsprobe/internal/probe/health"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current status of a running probe",
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	url := fmt.Sprintf("http://localhost:%d/health/detailed", cfg.Server.Port)

	resp, err := client.Get(url)
	if err != nil {
		slog.Error("Failed to reach probe, is it running?", "url", url, "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var report health.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		slog.Error("Failed to decode health report", "error", err)
		os.Exit(1)
	}

	writeReport(os.Stdout, report)
}

// writeReport renders the health report as a table with a stable row order.
func writeReport(out io.Writer, report health.Report) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "FIELD\tVALUE")
	_, _ = fmt.Fprintf(w, "endpoint\t%s\n", report.Endpoint)
	_, _ = fmt.Fprintf(w, "status\t%s\n", report.Status)
	_, _ = fmt.Fprintf(w, "state\t%s\n", report.State)
	_, _ = fmt.Fprintf(w, "connects\t%d\n", report.Connects)
	for _, reason := range sortedKeys(report.Disconnects) {
		_, _ = fmt.Fprintf(w, "disconnects (%s)\t%d\n", reason, report.Disconnects[reason])
	}
	for _, kind := range sortedKeys(report.Frames) {
		_, _ = fmt.Fprintf(w, "frames (%s)\t%d\n", kind, report.Frames[kind])
	}
	if report.LastFrameAt != nil {
		_, _ = fmt.Fprintf(w, "last frame\t%s\n", report.LastFrameAt.Format(time.RFC3339))
	}
	if report.LastError != "" {
		_, _ = fmt.Fprintf(w, "last error\t%s\n", report.LastError)
	}
	_ = w.Flush()
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
