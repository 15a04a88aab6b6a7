package network

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// commonPorts is the quick-scan probe list: the services worth
// knowing about on any LAN host without paying for a full sweep.
var commonPorts = []int{
	21, 22, 23, 25, 53, 80, 110, 135, 139, 143, 443, 445, 993, 995,
	1433, 3306, 3389, 5432, 5900, 6379, 8080, 8443, 27017,
}

// serviceNames labels well-known ports; unknown ports report as
// "unknown".
var serviceNames = map[int]string{
	21:    "ftp",
	22:    "ssh",
	23:    "telnet",
	25:    "smtp",
	53:    "dns",
	80:    "http",
	110:   "pop3",
	135:   "msrpc",
	139:   "netbios-ssn",
	143:   "imap",
	443:   "https",
	445:   "microsoft-ds",
	993:   "imaps",
	995:   "pop3s",
	1433:  "ms-sql-s",
	3306:  "mysql",
	3389:  "rdp",
	5432:  "postgresql",
	5900:  "vnc",
	6379:  "redis",
	8080:  "http-proxy",
	8443:  "https-alt",
	27017: "mongodb",
}

// sensitiveServicePorts are services that should never face the local
// network unauthenticated.
var sensitiveServicePorts = map[int]bool{
	21: true, 23: true, 135: true, 139: true, 445: true, 1433: true,
	3306: true, 3389: true, 5432: true, 5900: true, 6379: true, 27017: true,
}

func serviceName(port int) string {
	if name, ok := serviceNames[port]; ok {
		return name
	}
	return "unknown"
}

// probePorts connect-scans the given ports on one host with bounded
// concurrency, grabbing a banner from ports that are open.
func (c *Collector) probePorts(ctx context.Context, host string, ports []int, withBanner bool) []types.Service {
	sem := make(chan struct{}, c.concurrency)
	var mu sync.Mutex
	var open []types.Service
	var wg sync.WaitGroup

	for _, port := range ports {
		select {
		case <-ctx.Done():
			wg.Wait()
			return sortServices(open)
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(port int) {
			defer wg.Done()
			defer func() { <-sem }()

			svc, ok := c.probePort(ctx, host, port, withBanner)
			if !ok {
				return
			}
			mu.Lock()
			open = append(open, svc)
			mu.Unlock()
		}(port)
	}
	wg.Wait()
	return sortServices(open)
}

func (c *Collector) probePort(ctx context.Context, host string, port int, withBanner bool) (types.Service, bool) {
	addr := net.JoinHostPort(host, fmt.Sprintf("%d", port))
	dctx, cancel := context.WithTimeout(ctx, c.dialTimeout)
	defer cancel()

	conn, err := c.dial(dctx, "tcp", addr)
	if err != nil {
		return types.Service{}, false
	}
	defer conn.Close()

	svc := types.Service{
		Port:      port,
		Protocol:  "tcp",
		Name:      serviceName(port),
		Sensitive: sensitiveServicePorts[port],
	}
	if withBanner {
		svc.Banner, svc.Version = grabBanner(conn, port, c.dialTimeout)
	}
	return svc, true
}

// grabBanner reads whatever the service volunteers after connect,
// nudging HTTP-speaking ports with a HEAD request first. The version
// is a best-effort extraction from the banner's first token run.
func grabBanner(conn net.Conn, port int, timeout time.Duration) (banner, version string) {
	_ = conn.SetDeadline(time.Now().Add(timeout))

	switch port {
	case 80, 8080, 8443, 443:
		fmt.Fprintf(conn, "HEAD / HTTP/1.0\r\nHost: %s\r\n\r\n", conn.RemoteAddr())
	}

	buf := make([]byte, 256)
	n, err := conn.Read(buf)
	if err != nil || n == 0 {
		return "", ""
	}

	banner = strings.TrimSpace(string(buf[:n]))
	if idx := strings.IndexAny(banner, "\r\n"); idx > 0 {
		banner = banner[:idx]
	}
	return banner, versionFromBanner(banner)
}

// versionFromBanner pulls a product/version token like
// "OpenSSH_9.6p1" or "nginx/1.24.0" out of a banner line.
func versionFromBanner(banner string) string {
	for _, field := range strings.Fields(banner) {
		if strings.ContainsAny(field, "/_") && strings.ContainsAny(field, "0123456789") {
			return field
		}
	}
	return ""
}

func sortServices(services []types.Service) []types.Service {
	sort.Slice(services, func(i, j int) bool { return services[i].Port < services[j].Port })
	return services
}

// deepPorts enumerates the full privileged range for a deep service
// scan.
func deepPorts() []int {
	ports := make([]int, 0, 1024)
	for p := 1; p <= 1024; p++ {
		ports = append(ports, p)
	}
	return ports
}
