package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

const (
	// fetchTimeout bounds one model download, redirects included.
	fetchTimeout = 30 * time.Second
	dialTimeout  = 10 * time.Second
	maxRedirects = 10
)

// blockedAddress reports whether a model may not be downloaded from ip:
// private, loopback, link-local and unspecified addresses are refused.
func blockedAddress(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified()
}

// publicAddrs resolves host and fails when any address it resolves to is blocked.
func publicAddrs(ctx context.Context, host string) ([]net.IPAddr, error) {
	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("no IP addresses found for host: %s", host)
	}
	for _, a := range addrs {
		if blockedAddress(a.IP) {
			return nil, fmt.Errorf("model host %s resolves to blocked address %s", host, a.IP)
		}
	}
	return addrs, nil
}

// newModelClient returns the HTTP client for url inputs. Every connection
// and every redirect target must resolve to public addresses only.
func newModelClient() *http.Client {
	dialer := &net.Dialer{Timeout: dialTimeout}

	return &http.Client{
		Timeout: fetchTimeout,
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				host, port, err := net.SplitHostPort(addr)
				if err != nil {
					return nil, err
				}
				addrs, err := publicAddrs(ctx, host)
				if err != nil {
					return nil, err
				}
				return dialer.DialContext(ctx, network, net.JoinHostPort(addrs[0].IP.String(), port))
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			_, err := publicAddrs(req.Context(), req.URL.Hostname())
			return err
		},
	}
}
