package net

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

// ServiceType is the mDNS service a story proxy announces.
const ServiceType = "_storycuts._tcp"

var ErrNoProxy = errors.New("no story proxy found")

const discoverGrace = 250 * time.Millisecond

// Advertise announces a story proxy listening on port. The caller shuts the
// returned server down.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	var ips []net.IP
	if ip, err := GetOutgoingIP(); err == nil {
		if parsed := net.ParseIP(ip); parsed != nil {
			ips = []net.IP{parsed}
		}
	}

	service, err := mdns.NewMDNSService(host, ServiceType, "", "", port, ips, []string{"StoryCuts proxy"})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	log.Printf("[MDNS] Advertising %s on port %d", ServiceType, port)
	return server, nil
}

// Discover waits up to timeout for the first story proxy on the LAN and
// returns its host:port.
func Discover(ctx context.Context, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	// The query stops on its own at timeout; the grace lets a late answer
	// reach the caller before the context gives up.
	ctx, cancel := context.WithTimeout(ctx, timeout+discoverGrace)
	defer cancel()

	entries := make(chan *mdns.ServiceEntry, 8)
	found := make(chan string, 1)
	go func() {
		for e := range entries {
			if addr := entryAddr(e); addr != "" {
				select {
				case found <- addr:
				default:
				}
			}
		}
	}()

	queryErr := make(chan error, 1)
	go func() {
		queryErr <- mdns.Query(&mdns.QueryParam{
			Service:             ServiceType,
			Domain:              "local",
			Timeout:             timeout,
			Entries:             entries,
			DisableIPv6:         true,
			WantUnicastResponse: false,
		})
		close(entries)
	}()

	select {
	case addr := <-found:
		return addr, nil
	case err := <-queryErr:
		if addr, ok := pending(found); ok {
			return addr, nil
		}
		if err != nil {
			return "", fmt.Errorf("mdns query: %w", err)
		}
		return "", ErrNoProxy
	case <-ctx.Done():
		if addr, ok := pending(found); ok {
			return addr, nil
		}
		return "", ErrNoProxy
	}
}

func pending(found <-chan string) (string, bool) {
	select {
	case addr := <-found:
		return addr, true
	default:
		return "", false
	}
}

func entryAddr(e *mdns.ServiceEntry) string {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return ""
	}
	return net.JoinHostPort(e.AddrV4.String(), fmt.Sprint(e.Port))
}
