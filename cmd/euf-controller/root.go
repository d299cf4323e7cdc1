// Package main is the CLI entrypoint for the energy-utility feedback
// controller, a spf13/cobra root command in the shape of the teacher's
// akita/cmd package.
package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sarchlab/euf-controller/internal/api"
	"github.com/sarchlab/euf-controller/internal/configcache"
	"github.com/sarchlab/euf-controller/internal/configgen"
	"github.com/sarchlab/euf-controller/internal/controller"
	"github.com/sarchlab/euf-controller/internal/engineclient/fake"
	"github.com/sarchlab/euf-controller/internal/hwmodel"
	"github.com/sarchlab/euf-controller/internal/logging"
	"github.com/sarchlab/euf-controller/internal/pareto"
	"github.com/sarchlab/euf-controller/internal/telemetry"
	"github.com/sarchlab/euf-controller/internal/workload"
)

var log = logging.New("euf-controller")

var flags struct {
	url             string
	port            int
	user            string
	passwd          string
	nocurses        bool
	fake            bool
	refreshInterval int
	historyWindow   int
	noRAPL          bool
	wattsAtFullLoad float64
}

var rootCmd = &cobra.Command{
	Use:   "euf-controller",
	Short: "Energy-utility feedback controller for the execution engine.",
	Long: `euf-controller samples live performance and power counters, ` +
		`consults an analytical hardware/workload model to enumerate ` +
		`candidate CPU configurations, reduces them to a Pareto frontier, ` +
		`and pushes worker-enable/disable and frequency commands to the ` +
		`execution engine to minimise power subject to sustaining the ` +
		`offered task rate.`,
	RunE: runController,
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	rootCmd.Flags().StringVar(&flags.url, "url", os.Getenv("EUF_URL"), "execution engine URL")
	rootCmd.Flags().IntVar(&flags.port, "port", 5000, "HTTP control API port")
	rootCmd.Flags().StringVar(&flags.user, "user", os.Getenv("EUF_USER"), "engine auth user")
	rootCmd.Flags().StringVar(&flags.passwd, "passwd", os.Getenv("EUF_PASSWD"), "engine auth password")
	rootCmd.Flags().BoolVar(&flags.nocurses, "nocurses", false, "disable the terminal dashboard")
	rootCmd.Flags().BoolVar(&flags.fake, "fake", false, "run against an in-memory fake engine instead of a live one")
	rootCmd.Flags().IntVar(&flags.refreshInterval, "refresh-interval", 1, "telemetry pull cadence, in seconds")
	rootCmd.Flags().IntVar(&flags.historyWindow, "history-window", 300, "telemetry retention window, in seconds")
	rootCmd.Flags().BoolVar(&flags.noRAPL, "no-power-estimate", false, "disable the gopsutil-backed power estimate when no RAPL interface is present")
	rootCmd.Flags().Float64Var(&flags.wattsAtFullLoad, "watts-at-full-load", 65, "assumed package+DRAM wattage at 100% CPU utilisation, used by the power estimate")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}

func runController(_ *cobra.Command, _ []string) error {
	if !flags.fake && flags.url == "" {
		return fmt.Errorf("--url is required unless --fake is set")
	}

	client := fake.NewClient()
	if !flags.fake {
		// A real engine client is an external collaborator (spec.md §1);
		// wiring one in here is out of scope for this module.
		log.Fatal("a live --url engine connection is not wired into this build; pass --fake")
	}

	seedFakeEngine(client)

	axes := hwmodel.DefaultAxes(4)
	wm := workload.Default()
	hw := hwmodel.Analytical(axes)
	gen := configgen.New(hw, wm)
	cache := configcache.Build(gen, wm.Names(), pareto.Default)

	var rapl telemetry.RAPLReader
	if !flags.noRAPL {
		// No /sys/class/powercap reader is wired into this build; the
		// gopsutil-backed estimate stands in for it, per spec.md §4.6's
		// "If RAPL is unavailable" clause.
		rapl = &telemetry.GopsutilFallbackReader{WattsAtFullLoad: flags.wattsAtFullLoad}
	}

	puller := telemetry.New(client, rapl)
	puller.RefreshInterval = time.Duration(flags.refreshInterval) * time.Second
	puller.HistoryWindow = time.Duration(flags.historyWindow) * time.Second

	ctl := controller.New(client, cache, puller, axes)
	if err := ctl.SelectSession("default"); err != nil {
		return fmt.Errorf("selecting default session: %w", err)
	}

	if err := client.EnergyManagement(false, false); err != nil {
		return fmt.Errorf("disabling engine-native energy management: %w", err)
	}

	stop := make(chan struct{})
	go ctl.Run(stop)

	server := api.New(ctl, axes)
	addr := fmt.Sprintf("localhost:%d", flags.port)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		log.DieOnErr(err)
	}

	go func() {
		log.Printf("control API listening on http://%s\n", addr)

		if err := http.Serve(listener, server.Router()); err != nil {
			log.Printf("control API stopped: %v", err)
		}
	}()

	waitForShutdown()
	close(stop)
	listener.Close()

	return nil
}

func waitForShutdown() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGINT)
	<-sigCh
}

