package netscan_test

import (
	"context"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"

	"github.com/DeltaEpiales/PiU/internal/netscan"
)

func startPTRServer(testInstance *testing.T, records map[string]string) string {
	testInstance.Helper()

	handler := dns.HandlerFunc(func(responseWriter dns.ResponseWriter, request *dns.Msg) {
		response := new(dns.Msg)
		response.SetReply(request)

		questionName := request.Question[0].Name
		ptrTarget, recordExists := records[questionName]
		if !recordExists {
			response.Rcode = dns.RcodeNameError
		} else {
			response.Answer = append(response.Answer, &dns.PTR{
				Hdr: dns.RR_Header{Name: questionName, Rrtype: dns.TypePTR, Class: dns.ClassINET, Ttl: 60},
				Ptr: ptrTarget,
			})
		}
		_ = responseWriter.WriteMsg(response)
	})

	server := &dns.Server{Addr: "127.0.0.1:0", Net: "udp", Handler: handler}

	startedSignal := make(chan struct{})
	server.NotifyStartedFunc = func() { close(startedSignal) }
	go func() { _ = server.ListenAndServe() }()

	select {
	case <-startedSignal:
	case <-time.After(2 * time.Second):
		testInstance.Fatal("dns test server did not start")
	}

	testInstance.Cleanup(func() { _ = server.Shutdown() })
	return server.PacketConn.LocalAddr().String()
}

func TestDNSReverseResolverReverse(testInstance *testing.T) {
	serverAddress := startPTRServer(testInstance, map[string]string{
		"1.1.168.192.in-addr.arpa.": "router.lan.",
	})

	resolver := netscan.NewDNSReverseResolver(serverAddress, time.Second)

	resolvedName, resolveError := resolver.Reverse(context.Background(), "192.168.1.1")
	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, "router.lan", resolvedName)
}

func TestDNSReverseResolverReverseNoRecord(testInstance *testing.T) {
	serverAddress := startPTRServer(testInstance, nil)

	resolver := netscan.NewDNSReverseResolver(serverAddress, time.Second)

	resolvedName, resolveError := resolver.Reverse(context.Background(), "192.168.1.99")
	require.NoError(testInstance, resolveError)
	require.Empty(testInstance, resolvedName)
}

func TestDNSReverseResolverReverseInvalidAddress(testInstance *testing.T) {
	resolver := netscan.NewDNSReverseResolver("127.0.0.1:53", time.Second)

	_, resolveError := resolver.Reverse(context.Background(), "not-an-address")
	require.Error(testInstance, resolveError)
}

func TestDNSReverseResolverReverseUnreachableServer(testInstance *testing.T) {
	resolver := netscan.NewDNSReverseResolver("127.0.0.1:1", 200*time.Millisecond)

	_, resolveError := resolver.Reverse(context.Background(), "192.168.1.1")
	require.Error(testInstance, resolveError)
}
