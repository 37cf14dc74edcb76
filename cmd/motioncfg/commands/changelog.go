package commands

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/sjson"

	"github.com/motion-firmware/motioncfg/pkg/log"
)

// LogFilterOptions holds the textual filter flags of the log commands.
type LogFilterOptions struct {
	Session      string
	Source       string
	PathPrefix   string
	RejectedOnly bool
	TimeStart    string
	TimeEnd      string
}

// Filter converts the flags into a log.Filter.
func (o LogFilterOptions) Filter() (log.Filter, error) {
	f := log.Filter{
		Session:      o.Session,
		PathPrefix:   o.PathPrefix,
		RejectedOnly: o.RejectedOnly,
	}
	if o.Source != "" {
		s, err := ParseSourceFlag(o.Source)
		if err != nil {
			return f, err
		}
		f.Source = &s
	}
	if o.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, o.TimeStart)
		if err != nil {
			return f, fmt.Errorf("invalid time-start: %w", err)
		}
		f.TimeStart = &t
	}
	if o.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, o.TimeEnd)
		if err != nil {
			return f, fmt.Errorf("invalid time-end: %w", err)
		}
		f.TimeEnd = &t
	}
	return f, nil
}

// ParseSourceFlag parses a change source name (case-insensitive).
func ParseSourceFlag(s string) (log.Source, error) {
	switch strings.ToLower(s) {
	case "file":
		return log.SourceFile, nil
	case "runtime":
		return log.SourceRuntime, nil
	case "snapshot":
		return log.SourceSnapshot, nil
	default:
		return 0, fmt.Errorf("invalid source: %s (must be file, runtime, or snapshot)", s)
	}
}

func eachEvent(path string, filter log.Filter, fn func(log.Event) error) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := fn(event); err != nil {
			return err
		}
	}
}

// formatEvent writes one line per event:
// timestamp [session] SOURCE path old -> new, or path REJECTED value: reason.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Time.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [%s] %-8s %s ", ts, shortenSession(event.Session), event.Source, event.Path)
	if event.Applied() {
		fmt.Fprintf(w, "%q -> %q\n", event.Old, event.New)
		return
	}
	fmt.Fprintf(w, "REJECTED %q: %s\n", event.New, event.Rejected)
}

func shortenSession(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// RunView prints the matching events of a change log.
func RunView(path string, filter log.Filter, w io.Writer) error {
	return eachEvent(path, filter, func(event log.Event) error {
		formatEvent(w, event)
		return nil
	})
}

// RunExport writes the matching events as JSON lines to output, or to w
// when output is empty.
func RunExport(path string, filter log.Filter, output string, w io.Writer) error {
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return eachEvent(path, filter, func(event log.Event) error {
		line, err := eventJSON(event)
		if err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", line)
		return err
	})
}

func eventJSON(event log.Event) ([]byte, error) {
	line := []byte(`{}`)
	fields := []struct {
		key   string
		value any
	}{
		{"time", event.Time.UTC().Format(time.RFC3339Nano)},
		{"session", event.Session},
		{"source", event.Source.String()},
		{"path", event.Path},
		{"old", event.Old},
		{"new", event.New},
		{"applied", event.Applied()},
	}
	var err error
	for _, f := range fields {
		if line, err = sjson.SetBytes(line, f.key, f.value); err != nil {
			return nil, err
		}
	}
	if !event.Applied() {
		return sjson.SetBytes(line, "rejected", event.Rejected)
	}
	return line, nil
}

// Stats holds aggregate figures about a change log.
type Stats struct {
	Total    int
	Rejected int
	BySource map[log.Source]int
	ByPath   map[string]int
	Sessions map[string]int
	Start    time.Time
	End      time.Time
}

// CollectStats reads the matching events of a change log.
func CollectStats(path string, filter log.Filter) (*Stats, error) {
	stats := &Stats{
		BySource: make(map[log.Source]int),
		ByPath:   make(map[string]int),
		Sessions: make(map[string]int),
	}
	err := eachEvent(path, filter, func(event log.Event) error {
		stats.Total++
		if !event.Applied() {
			stats.Rejected++
		}
		stats.BySource[event.Source]++
		stats.ByPath[event.Path]++
		stats.Sessions[event.Session]++
		if stats.Start.IsZero() || event.Time.Before(stats.Start) {
			stats.Start = event.Time
		}
		if event.Time.After(stats.End) {
			stats.End = event.Time
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// RunStats prints statistics about a change log.
func RunStats(path string, filter log.Filter, w io.Writer) error {
	stats, err := CollectStats(path, filter)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Configuration Change Log ===")
	fmt.Fprintln(w)

	if stats.Total > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.Start.Format(time.RFC3339),
			stats.End.Format(time.RFC3339))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.Total)
	fmt.Fprintf(w, "Rejected:     %d\n", stats.Rejected)
	fmt.Fprintf(w, "Sessions:     %d\n", len(stats.Sessions))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Source:")
	for _, s := range []log.Source{log.SourceFile, log.SourceRuntime, log.SourceSnapshot} {
		if count := stats.BySource[s]; count > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", s.String()+":", count)
		}
	}

	if len(stats.ByPath) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Most Changed Settings:")
	paths := make([]string, 0, len(stats.ByPath))
	for p := range stats.ByPath {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool {
		if stats.ByPath[paths[i]] != stats.ByPath[paths[j]] {
			return stats.ByPath[paths[i]] > stats.ByPath[paths[j]]
		}
		return paths[i] < paths[j]
	})
	if len(paths) > 10 {
		paths = paths[:10]
	}
	for _, p := range paths {
		fmt.Fprintf(w, "  %-40s %d\n", p, stats.ByPath[p])
	}
}
