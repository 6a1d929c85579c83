package audit_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DeltaEpiales/PiU/internal/audit"
)

func TestHTTPProberCheckStatusClassification(testInstance *testing.T) {
	testCases := []struct {
		name              string
		statusCode        int
		expectedReachable bool
	}{
		{name: "ok is reachable", statusCode: http.StatusOK, expectedReachable: true},
		{name: "not found is unreachable", statusCode: http.StatusNotFound, expectedReachable: false},
		{name: "server error is unreachable", statusCode: http.StatusInternalServerError, expectedReachable: false},
		{name: "redirect result is unreachable", statusCode: http.StatusFound, expectedReachable: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			var observedMethod string
			testServer := httptest.NewServer(http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
				observedMethod = request.Method
				responseWriter.WriteHeader(testCase.statusCode)
			}))
			defer testServer.Close()

			prober := audit.NewHTTPProber(audit.DefaultProbeTimeout)
			probeResult := prober.Check(context.Background(), testServer.URL)

			require.Equal(subtestInstance, http.MethodHead, observedMethod)
			require.Equal(subtestInstance, testCase.expectedReachable, probeResult.Reachable)
			require.Equal(subtestInstance, testCase.statusCode, probeResult.StatusCode)
			require.NoError(subtestInstance, probeResult.Err)
		})
	}
}

func TestHTTPProberCheckTimeout(testInstance *testing.T) {
	requestReceived := make(chan struct{})
	releaseHandler := make(chan struct{})
	testServer := httptest.NewServer(http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		close(requestReceived)
		<-releaseHandler
	}))
	defer testServer.Close()
	defer close(releaseHandler)

	prober := audit.NewHTTPProber(50 * time.Millisecond)
	probeResult := prober.Check(context.Background(), testServer.URL)

	<-requestReceived
	require.False(testInstance, probeResult.Reachable)
	require.Zero(testInstance, probeResult.StatusCode)
	require.Error(testInstance, probeResult.Err)
}

func TestHTTPProberCheckConnectionRefused(testInstance *testing.T) {
	closedServer := httptest.NewServer(http.NotFoundHandler())
	unreachableURL := closedServer.URL
	closedServer.Close()

	prober := audit.NewHTTPProber(time.Second)
	probeResult := prober.Check(context.Background(), unreachableURL)

	require.False(testInstance, probeResult.Reachable)
	require.Zero(testInstance, probeResult.StatusCode)
	require.Error(testInstance, probeResult.Err)
}

func TestHTTPProberCheckInvalidSource(testInstance *testing.T) {
	prober := audit.NewHTTPProber(time.Second)
	probeResult := prober.Check(context.Background(), "http://[invalid source")

	require.False(testInstance, probeResult.Reachable)
	require.Error(testInstance, probeResult.Err)
}

func TestNewHTTPProberAppliesDefaultTimeout(testInstance *testing.T) {
	require.NotNil(testInstance, audit.NewHTTPProber(0))
	require.NotNil(testInstance, audit.NewHTTPProber(-time.Second))
}
