// Package api is the Control API (API) of spec.md §4.9/§6: a small HTTP
// surface, routed with gorilla/mux in the style of the teacher's
// monitoring.Monitor, that mutates the controller's requested mode and
// exposes its state as JSON.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sarchlab/euf-controller/internal/controller"
	"github.com/sarchlab/euf-controller/internal/hwmodel"
)

// Server is the HTTP control surface. It holds no controller state of its
// own beyond a reference to the Controller it mutates and reads through.
type Server struct {
	ctl  *controller.Controller
	axes hwmodel.Axes
}

// New builds a Server over ctl. axes is needed to scale the
// /configurations payload's level fields (spec.md §6).
func New(ctl *controller.Controller, axes hwmodel.Axes) *Server {
	return &Server{ctl: ctl, axes: axes}
}

// Router builds the gorilla/mux router serving every route of spec.md §6.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", s.root)
	r.HandleFunc("/servicestatus", s.serviceStatus)
	r.HandleFunc("/services/eclon/{flag}", s.setEclOn)
	r.HandleFunc("/services/adapton/{flag}", s.setAdaptOn)
	r.HandleFunc("/configurations", s.configurations)
	r.HandleFunc("/benchmark/sessions", s.sessions)
	r.HandleFunc("/benchmark/setbenchmark/{session}/{bench}", s.setBenchmark)
	r.HandleFunc("/benchmark/setprofile/{session}/{profile}", s.setProfile)

	return r
}

func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/servicestatus", http.StatusFound)
}

func (s *Server) serviceStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{
		"adaptOn": false,
		"eclOn":   s.ctl.Enabled(),
	})
}

func (s *Server) setEclOn(w http.ResponseWriter, r *http.Request) {
	flag, ok := parseBinaryFlag(mux.Vars(r)["flag"])
	if !ok {
		badRequest(w, "eclon expects 0 or 1")
		return
	}

	s.ctl.SetEnabled(flag)
	w.WriteHeader(http.StatusOK)
}

// setAdaptOn is reserved: the route changes no state. It returns 200 for a
// flag of 0 or 1 and 400 for anything else.
func (s *Server) setAdaptOn(w http.ResponseWriter, r *http.Request) {
	if _, ok := parseBinaryFlag(mux.Vars(r)["flag"]); !ok {
		badRequest(w, "adapton expects 0 or 1")
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) sessions(w http.ResponseWriter, _ *http.Request) {
	names := s.ctl.SessionNames()

	managed := make([]map[string]string, 0, len(names))
	for _, n := range names {
		managed = append(managed, map[string]string{"name": n})
	}

	writeJSON(w, map[string]any{"managedBenchmarks": managed})
}

func (s *Server) setBenchmark(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := s.ctl.ActivateBenchmark(vars["session"], vars["bench"]); err != nil {
		badRequest(w, err.Error())
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) setProfile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := s.ctl.ActivateProfile(vars["session"], vars["profile"]); err != nil {
		badRequest(w, err.Error())
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) configurations(w http.ResponseWriter, _ *http.Request) {
	snap := s.ctl.Snapshot()

	minFreq, maxFreq := s.axes.MinFreq(), s.axes.MaxFreq()

	maxTPS := 0.0
	maxInvEPR := 0.0

	for _, c := range snap.AllCandidates {
		if c.TPS > maxTPS {
			maxTPS = c.TPS
		}

		if c.EPR > 0 {
			if invEPR := 1 / c.EPR; invEPR > maxInvEPR {
				maxInvEPR = invEPR
			}
		}
	}

	configs := make([]map[string]any, 0, len(snap.AllCandidates))

	for _, c := range snap.AllCandidates {
		active := snap.ActiveConfig != nil && c.Equal(*snap.ActiveConfig)

		configs = append(configs, map[string]any{
			"cpuCount":              c.CPUs,
			"avgCoreFrequency":      c.FreqKHz,
			"avgCoreFrequencyLevel": frequencyLevel(c.FreqKHz, minFreq, maxFreq),
			"uncoreFrequency":       2_400_000,
			"uncoreFrequencyLevel":  100,
			"relativePerformance":   percentOf(c.TPS, maxTPS),
			"relativeEE":            percentOfInvEPR(c.EPR, maxInvEPR),
			"active":                active,
		})
	}

	writeJSON(w, map[string]any{
		"sockets": []map[string]any{
			{
				"logicalId":      0,
				"adapting":       false,
				"reevalLeft":     0,
				"buildId":        s.ctl.ConfigCacheBuildID(),
				"configurations": configs,
			},
		},
	})
}

func frequencyLevel(freq, min, max int64) float64 {
	if max == min {
		return 0
	}

	return 100 * float64(freq-min) / float64(max-min)
}

func percentOf(value, max float64) float64 {
	if max == 0 {
		return 0
	}

	return 100 * value / max
}

func percentOfInvEPR(epr, maxInvEPR float64) float64 {
	if epr <= 0 || maxInvEPR == 0 {
		return 0
	}

	return 100 * (1 / epr) / maxInvEPR
}

func parseBinaryFlag(s string) (bool, bool) {
	switch s {
	case "0":
		return false, true
	case "1":
		return true, true
	default:
		return false, false
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, "Error: %s", msg)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}
