package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Simple Prometheus-style metrics for HTTP requests and captures.
// This is intentionally minimal and in-memory only.

var (
	mu             sync.RWMutex
	requestsTotal  = make(map[reqKey]int64)
	latencyMsSum   = make(map[latKey]int64)
	latencyMsCount = make(map[latKey]int64)

	capturesTotal   = make(map[capKey]int64)
	captureElements = make(map[capKey]int64)
)

type reqKey struct {
	Method string
	Path   string
	Status int
}

type latKey struct {
	Method string
	Path   string
}

type capKey struct {
	Engine  string
	Device  string
	Success string
}

// RecordRequest increments request counter and records latency.
func RecordRequest(method, path string, status int, latencyMs int64) {
	mu.Lock()
	defer mu.Unlock()

	rk := reqKey{Method: method, Path: path, Status: status}
	requestsTotal[rk]++

	lk := latKey{Method: method, Path: path}
	latencyMsSum[lk] += latencyMs
	latencyMsCount[lk]++
}

// RecordCapture increments capture counters per rendering engine and
// device, and accumulates extracted element counts.
func RecordCapture(engine, device string, elements int, success bool) {
	mu.Lock()
	defer mu.Unlock()

	s := "false"
	if success {
		s = "true"
	}
	key := capKey{Engine: engine, Device: device, Success: s}
	capturesTotal[key]++
	if elements > 0 {
		captureElements[key] += int64(elements)
	}
}

// Export returns Prometheus-style metrics text.
func Export() string {
	mu.RLock()
	defer mu.RUnlock()

	var b strings.Builder

	b.WriteString("# HELP sitecap_http_requests_total Total HTTP requests\n")
	b.WriteString("# TYPE sitecap_http_requests_total counter\n")

	// Sort keys for stable output
	var reqKeys []reqKey
	for k := range requestsTotal {
		reqKeys = append(reqKeys, k)
	}
	sort.Slice(reqKeys, func(i, j int) bool {
		if reqKeys[i].Method != reqKeys[j].Method {
			return reqKeys[i].Method < reqKeys[j].Method
		}
		if reqKeys[i].Path != reqKeys[j].Path {
			return reqKeys[i].Path < reqKeys[j].Path
		}
		return reqKeys[i].Status < reqKeys[j].Status
	})

	for _, k := range reqKeys {
		fmt.Fprintf(&b, "sitecap_http_requests_total{method=\"%s\",path=\"%s\",status=\"%d\"} %d\n",
			k.Method, k.Path, k.Status, requestsTotal[k])
	}

	b.WriteString("# HELP sitecap_http_request_latency_ms_sum Sum of request latency in ms\n")
	b.WriteString("# TYPE sitecap_http_request_latency_ms_sum counter\n")

	var latKeys []latKey
	for k := range latencyMsSum {
		latKeys = append(latKeys, k)
	}
	sort.Slice(latKeys, func(i, j int) bool {
		if latKeys[i].Method != latKeys[j].Method {
			return latKeys[i].Method < latKeys[j].Method
		}
		return latKeys[i].Path < latKeys[j].Path
	})

	for _, k := range latKeys {
		fmt.Fprintf(&b, "sitecap_http_request_latency_ms_sum{method=\"%s\",path=\"%s\"} %d\n",
			k.Method, k.Path, latencyMsSum[k])
	}

	b.WriteString("# HELP sitecap_http_request_latency_ms_count Count of latency observations\n")
	b.WriteString("# TYPE sitecap_http_request_latency_ms_count counter\n")
	for _, k := range latKeys {
		fmt.Fprintf(&b, "sitecap_http_request_latency_ms_count{method=\"%s\",path=\"%s\"} %d\n",
			k.Method, k.Path, latencyMsCount[k])
	}

	var capKeys []capKey
	for k := range capturesTotal {
		capKeys = append(capKeys, k)
	}
	sort.Slice(capKeys, func(i, j int) bool {
		if capKeys[i].Engine != capKeys[j].Engine {
			return capKeys[i].Engine < capKeys[j].Engine
		}
		if capKeys[i].Device != capKeys[j].Device {
			return capKeys[i].Device < capKeys[j].Device
		}
		return capKeys[i].Success < capKeys[j].Success
	})

	b.WriteString("# HELP sitecap_captures_total Total page captures\n")
	b.WriteString("# TYPE sitecap_captures_total counter\n")
	for _, k := range capKeys {
		fmt.Fprintf(&b, "sitecap_captures_total{engine=\"%s\",device=\"%s\",success=\"%s\"} %d\n",
			k.Engine, k.Device, k.Success, capturesTotal[k])
	}

	b.WriteString("# HELP sitecap_capture_elements_total Total elements extracted by captures\n")
	b.WriteString("# TYPE sitecap_capture_elements_total counter\n")
	for _, k := range capKeys {
		if v, ok := captureElements[k]; ok {
			fmt.Fprintf(&b, "sitecap_capture_elements_total{engine=\"%s\",device=\"%s\",success=\"%s\"} %d\n",
				k.Engine, k.Device, k.Success, v)
		}
	}

	return b.String()
}

// Reset clears all counters. Test helper.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	requestsTotal = make(map[reqKey]int64)
	latencyMsSum = make(map[latKey]int64)
	latencyMsCount = make(map[latKey]int64)
	capturesTotal = make(map[capKey]int64)
	captureElements = make(map[capKey]int64)
}
