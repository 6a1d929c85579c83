package netscan

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
)

const (
	// DefaultQueryTimeout bounds each PTR lookup against the appliance.
	DefaultQueryTimeout = 2 * time.Second

	dnsPortConstant                    = "53"
	ptrLookupFailureTemplateConstant   = "ptr lookup for %s: %w"
	ptrResponseFailureTemplateConstant = "ptr lookup for %s: response code %s"
)

// DNSReverseResolver answers PTR queries directly against one DNS server.
type DNSReverseResolver struct {
	serverAddress string
	client        *dns.Client
}

// NewDNSReverseResolver constructs a resolver querying the provided server.
// A bare address is completed with the standard DNS port.
func NewDNSReverseResolver(serverAddress string, queryTimeout time.Duration) *DNSReverseResolver {
	if queryTimeout <= 0 {
		queryTimeout = DefaultQueryTimeout
	}
	if _, _, splitError := net.SplitHostPort(serverAddress); splitError != nil {
		serverAddress = net.JoinHostPort(serverAddress, dnsPortConstant)
	}
	return &DNSReverseResolver{
		serverAddress: serverAddress,
		client:        &dns.Client{Timeout: queryTimeout},
	}
}

// Reverse resolves the PTR name for an address; an empty name with a nil
// error means the server answered without a record.
func (resolver *DNSReverseResolver) Reverse(executionContext context.Context, address string) (string, error) {
	reverseName, reverseError := dns.ReverseAddr(address)
	if reverseError != nil {
		return "", fmt.Errorf(ptrLookupFailureTemplateConstant, address, reverseError)
	}

	ptrQuery := new(dns.Msg)
	ptrQuery.SetQuestion(reverseName, dns.TypePTR)

	ptrResponse, _, exchangeError := resolver.client.ExchangeContext(executionContext, ptrQuery, resolver.serverAddress)
	if exchangeError != nil {
		return "", fmt.Errorf(ptrLookupFailureTemplateConstant, address, exchangeError)
	}

	if ptrResponse.Rcode == dns.RcodeNameError {
		return "", nil
	}
	if ptrResponse.Rcode != dns.RcodeSuccess {
		return "", fmt.Errorf(ptrResponseFailureTemplateConstant, address, dns.RcodeToString[ptrResponse.Rcode])
	}

	for _, answerRecord := range ptrResponse.Answer {
		if ptrRecord, isPTR := answerRecord.(*dns.PTR); isPTR {
			return strings.TrimSuffix(ptrRecord.Ptr, "."), nil
		}
	}
	return "", nil
}
