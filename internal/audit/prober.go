package audit

import (
	"context"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultProbeTimeout bounds how long a single source check may wait.
	DefaultProbeTimeout = 10 * time.Second

	reachableStatusCodeConstant = http.StatusOK
)

// HTTPProber checks adlist sources with bounded HEAD requests.
type HTTPProber struct {
	httpClient *http.Client
	timeout    time.Duration
}

// NewHTTPProber constructs a prober enforcing the provided per-check timeout.
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &HTTPProber{
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
	}
}

// Check classifies a single source; only a 200 response counts as reachable.
func (prober *HTTPProber) Check(executionContext context.Context, source string) ProbeResult {
	probeContext, cancelProbe := context.WithTimeout(executionContext, prober.timeout)
	defer cancelProbe()

	probeRequest, requestError := http.NewRequestWithContext(probeContext, http.MethodHead, source, nil)
	if requestError != nil {
		return ProbeResult{Source: source, Reachable: false, Err: requestError}
	}

	probeResponse, responseError := prober.httpClient.Do(probeRequest)
	if responseError != nil {
		return ProbeResult{Source: source, Reachable: false, Err: responseError}
	}
	defer probeResponse.Body.Close()
	_, _ = io.Copy(io.Discard, probeResponse.Body)

	return ProbeResult{
		Source:     source,
		Reachable:  probeResponse.StatusCode == reachableStatusCodeConstant,
		StatusCode: probeResponse.StatusCode,
	}
}
