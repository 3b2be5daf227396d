// Package monitoring serves a frozen SoC descriptor and the build
// pipeline state over HTTP for inspection.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/gatefab/socforge/gateware"
	"github.com/gatefab/socforge/soc"
)

// Monitor turns a composed descriptor into an inspection server.
type Monitor struct {
	descriptor   *soc.Descriptor
	orchestrator *gateware.Orchestrator
	portNumber   int
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the server.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is not allowed for the inspection server. "+
				"Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterDescriptor sets the descriptor to serve.
func (m *Monitor) RegisterDescriptor(d *soc.Descriptor) {
	m.descriptor = d
}

// RegisterOrchestrator sets the orchestrator whose state is reported.
func (m *Monitor) RegisterOrchestrator(o *gateware.Orchestrator) {
	m.orchestrator = o
}

func (m *Monitor) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/ident", m.ident)
	r.HandleFunc("/api/memory_map", m.memoryMap)
	r.HandleFunc("/api/clock_domains", m.clockDomains)
	r.HandleFunc("/api/peripherals", m.listPeripherals)
	r.HandleFunc("/api/peripheral/{name}", m.peripheralDetails)
	r.HandleFunc("/api/constants", m.constants)
	r.HandleFunc("/api/build_state", m.buildState)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)

	return r
}

// StartServer starts the inspection server and optionally opens it in
// the default browser.
func (m *Monitor) StartServer(openBrowser bool) {
	r := m.router()

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d/api/memory_map",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Inspecting SoC with %s\n", url)

	if openBrowser {
		err = browser.OpenURL(url)
		dieOnErr(err)
	}

	go func() {
		err := http.Serve(listener, r)
		dieOnErr(err)
	}()
}

func (m *Monitor) ident(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{
		"ident":    m.descriptor.Ident,
		"board":    m.descriptor.Board,
		"revision": m.descriptor.Revision,
		"device":   m.descriptor.Device,
	})
}

func (m *Monitor) memoryMap(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, m.descriptor.Regions)
}

func (m *Monitor) clockDomains(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, m.descriptor.Domains)
}

func (m *Monitor) listPeripherals(w http.ResponseWriter, _ *http.Request) {
	names := make([]string, 0, len(m.descriptor.Peripherals))
	for _, p := range m.descriptor.Peripherals {
		names = append(names, p.Name)
	}

	writeJSON(w, names)
}

func (m *Monitor) peripheralDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	for i := range m.descriptor.Peripherals {
		if m.descriptor.Peripherals[i].Name != name {
			continue
		}

		serializer := goseth.NewSerializer()
		serializer.SetRoot(&m.descriptor.Peripherals[i])
		serializer.SetMaxDepth(2)
		err := serializer.Serialize(w)
		dieOnErr(err)

		return
	}

	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte("Peripheral not found"))
	dieOnErr(err)
}

func (m *Monitor) constants(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, m.descriptor.Constants)
}

func (m *Monitor) buildState(w http.ResponseWriter, _ *http.Request) {
	state := gateware.StateUnbuilt
	if m.orchestrator != nil {
		state = m.orchestrator.State()
	}

	writeJSON(w, map[string]string{"state": state.String()})
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memoryInfo, err := proc.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memoryInfo.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	dieOnErr(err)

	_, err = w.Write(data)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
