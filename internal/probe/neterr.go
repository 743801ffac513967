package probe

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// classifyNetErr names the transport failure behind err for the result detail.
func classifyNetErr(err error) string {
	var de *net.DNSError
	var ne net.Error
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &de):
		if de.IsNotFound {
			return "dns: NXDOMAIN"
		}
		return "dns"
	case errors.Is(err, syscall.ECONNREFUSED):
		return "connection refused"
	case errors.Is(err, syscall.ECONNRESET):
		return "connection reset"
	case errors.As(err, &ne) && ne.Timeout():
		return "timeout"
	}
	return "unreachable"
}
