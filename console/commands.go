package console

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mitchellh/colorstring"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"mospfd/daemon"
	"mospfd/internal/logger"
)

// Register wires the standard operator commands (ifaces, neighbors, lsdb,
// rt, spf, loglvl, exit) against d into ir. Grounded on the teacher's
// cmd/list.go, cmd/listdb.go, and cmd/loglvl.go command shape, generalized
// from chat-routing-table/chat-LSA inspection to mOSPF's own state.
func Register(ir *InputReader, d *daemon.Daemon) {
	ir.AddHandler("ifaces", func(args []string) { handleIfaces(d) })
	ir.AddHandler("neighbors", func(args []string) { handleNeighbors(d) })
	ir.AddHandler("lsdb", func(args []string) { handleLSDB(d) })
	ir.AddHandler("rt", func(args []string) { handleRT(d) })
	ir.AddHandler("spf", func(args []string) { handleSPF(d) })
	ir.AddHandler("loglvl", handleLogLevel)
	ir.AddHandler("exit", func(args []string) { fmt.Println("bye") })
}

func handleIfaces(d *daemon.Daemon) {
	interfaces := d.Interfaces()
	if len(interfaces) == 0 {
		colorstring.Println("[yellow]No interfaces attached.")
		return
	}

	colorstring.Println("[bold]Interfaces:")
	for _, i := range interfaces {
		line := fmt.Sprintf("  %-8s %s/%s  neighbors=%d", i.Name, i.IP, i.Mask, len(i.Neighbors))
		colorstring.Println(wrap("[green]" + line))
	}
}

func handleNeighbors(d *daemon.Daemon) {
	interfaces := d.Interfaces()
	any := false
	colorstring.Println("[bold]Neighbors:")
	for _, i := range interfaces {
		for _, n := range i.Neighbors {
			any = true
			line := fmt.Sprintf("  %-8s rid=%-15s ip=%-15s alive=%ds", i.Name, n.RouterID, n.IP, n.Alive)
			colorstring.Println(wrap("[cyan]" + line))
		}
	}
	if !any {
		colorstring.Println("[yellow]No neighbors discovered yet.")
	}
}

func handleLSDB(d *daemon.Daemon) {
	entries := d.LSDB().Entries()
	if len(entries) == 0 {
		colorstring.Println("[yellow]Link-state database is empty.")
		return
	}

	colorstring.Println("[bold]Link-State Database:")
	for _, e := range entries {
		colorstring.Printf("[cyan]  %s[reset] seq=%d\n", e.RouterID, e.Seq)
		for _, l := range e.LSAs {
			fmt.Printf("    %s/%s via %s\n", l.Subnet, l.Mask, l.AdvertisingRID)
		}
	}
}

func handleRT(d *daemon.Daemon) {
	entries := d.RTable().Snapshot()
	if len(entries) == 0 {
		colorstring.Println("[yellow]Forwarding table is empty.")
		return
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Destination.String() < entries[j].Destination.String()
	})

	colorstring.Println("[bold]Forwarding Table:")
	for _, e := range entries {
		if e.IsDirect() {
			colorstring.Printf("[green]  %s/%s[reset] direct via %s\n", e.Destination, e.Mask, e.Iface)
		} else {
			colorstring.Printf("[white]  %s/%s[reset] via %s dist=%d iface=%s\n", e.Destination, e.Mask, e.NextHopRID, e.Distance, e.Iface)
		}
	}
}

// handleSPF forces an immediate recompute. Before it runs, a progress bar
// steps once per current LSDB entry on a short fixed delay; the bar does not
// track the recompute itself, which is cheap (spec's scale is a handful of
// routers). The bar exists to surface the operation to the operator the same
// way the teacher surfaced file-transfer progress.
func handleSPF(d *daemon.Daemon) {
	entries := d.LSDB().Entries()
	bar := progressbar.NewOptions(len(entries),
		progressbar.OptionSetDescription("recomputing SPF"),
		progressbar.OptionThrottle(20*time.Millisecond),
		progressbar.OptionOnCompletion(func() { fmt.Println() }),
	)
	for range entries {
		bar.Add(1)
		time.Sleep(5 * time.Millisecond)
	}
	d.ForceSPF()
	handleRT(d)
}

func handleLogLevel(args []string) {
	if len(args) > 1 {
		fmt.Println("Usage: loglvl [NONE|WARN|INFO|DEBUG|TRACE]")
		return
	}

	if len(args) == 1 {
		levelStr := strings.ToUpper(args[0])
		var level logger.LogLevel
		switch levelStr {
		case "NONE":
			level = logger.None
		case "WARN":
			level = logger.Warn
		case "INFO":
			level = logger.Info
		case "DEBUG":
			level = logger.Debug
		case "TRACE":
			level = logger.Trace
		default:
			fmt.Printf("Invalid log level: %s\n", levelStr)
			return
		}
		logger.SetLogLevel(level)
		fmt.Printf("Log level set to %s\n", levelStr)
		return
	}

	fmt.Printf("Current log level: %s\n", logger.GetLogLevel().String())
}

// wrap truncates a dump line to the terminal width when stdout is a
// terminal, so long neighbor/interface dumps don't wrap mid-field on narrow
// windows. Falls back to returning s unchanged when the width can't be
// determined (piped output, non-terminal stdout).
func wrap(s string) string {
	width, _, err := term.GetSize(1)
	if err != nil || width <= 0 || len(s) <= width {
		return s
	}
	return s[:width]
}
