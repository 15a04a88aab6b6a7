package network

import (
	"context"
	"net"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/Jjustmee23/CyberShieldX-sub000/internal/toolexec"
	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// Collector probes the local network. All external lookups are
// injectable so tests can run without touching a real LAN.
type Collector struct {
	log         hclog.Logger
	runner      toolexec.Runner
	goos        string
	concurrency int
	dialTimeout time.Duration
	arpPath     string

	dial       func(ctx context.Context, network, addr string) (net.Conn, error)
	lookupAddr func(ctx context.Context, addr string) ([]string, error)
	interfaces func() ([]types.NetInterface, error)
}

// New builds a Collector with production lookups bound.
func New(log hclog.Logger, runner toolexec.Runner, concurrency int) *Collector {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	if runner == nil {
		runner = toolexec.New(15 * time.Second)
	}
	if concurrency <= 0 {
		concurrency = 10
	}
	dialer := &net.Dialer{}
	resolver := &net.Resolver{}
	return &Collector{
		log:         log.Named("network"),
		runner:      runner,
		goos:        runtime.GOOS,
		concurrency: concurrency,
		dialTimeout: 500 * time.Millisecond,
		arpPath:     "/proc/net/arp",
		dial:        dialer.DialContext,
		lookupAddr:  resolver.LookupAddr,
		interfaces:  localInterfaces,
	}
}

// Collect runs the full network collection: discovery, service scan,
// firewall and wireless posture. A total discovery failure yields an
// empty device list with the Error field set, never a hard failure.
func (c *Collector) Collect(ctx context.Context, deep bool) *types.NetworkInfo {
	info := &types.NetworkInfo{}

	ifaces, err := c.interfaces()
	if err == nil {
		info.Interfaces = ifaces
		if iface, ok := primaryInterface(ifaces); ok {
			if subnet, err := subnetFor(iface); err == nil {
				info.Subnet = subnet
			}
		}
	}

	devices, err := c.DiscoverDevices(ctx)
	if err != nil {
		c.log.Warn("device discovery failed", "error", err)
		info.Error = err.Error()
	}
	info.Devices = devices

	if len(devices) > 0 {
		info.Services = c.scanDevices(ctx, devices, deep)
	}

	if fw := c.CheckFirewall(ctx); fw != nil {
		info.Firewall = fw
	}
	if wireless := c.Wireless(ctx); wireless != nil {
		info.WirelessSecurity = wireless
	}
	return info
}

// DiscoverDevices finds live hosts on the local subnet. Strategy
// order: nmap ping scan when the binary is present, TCP connect sweep
// otherwise, ARP table when neither produced anything. The ARP cache
// additionally backfills MAC addresses on swept hosts.
func (c *Collector) DiscoverDevices(ctx context.Context) ([]types.Device, error) {
	subnet, subnetErr := c.localSubnet()

	var devices []types.Device
	if subnetErr == nil {
		if _, ok := c.runner.LookPath("nmap"); ok {
			out, err := c.runner.Run(ctx, "nmap", "-sn", "-oG", "-", subnet)
			if err == nil {
				devices = parseNmapPingScan(out)
			} else {
				c.log.Debug("nmap ping scan failed, falling back to sweep", "error", err)
			}
		}
		if len(devices) == 0 {
			devices = c.sweepSubnet(ctx, subnet)
		}
	}

	arpDevices := c.arpTable(ctx)
	if len(devices) == 0 {
		devices = arpDevices
		if len(devices) == 0 && subnetErr != nil {
			return nil, subnetErr
		}
	} else {
		mergeARPFacts(devices, arpDevices)
	}

	c.enrich(ctx, devices)
	sort.Slice(devices, func(i, j int) bool { return devices[i].IP < devices[j].IP })
	return devices, nil
}

func (c *Collector) localSubnet() (string, error) {
	ifaces, err := c.interfaces()
	if err != nil {
		return "", err
	}
	iface, ok := primaryInterface(ifaces)
	if !ok {
		return "", errNoInterface
	}
	return subnetFor(iface)
}

// sweepSubnet probes a handful of indicative ports per host with
// bounded concurrency; any successful connect marks the host alive.
func (c *Collector) sweepSubnet(ctx context.Context, subnet string) []types.Device {
	hosts, err := hostsIn(subnet)
	if err != nil {
		c.log.Debug("cannot enumerate subnet", "subnet", subnet, "error", err)
		return nil
	}

	probePorts := []int{22, 80, 139, 443, 445}
	sem := make(chan struct{}, c.concurrency)
	var mu sync.Mutex
	var alive []types.Device
	var wg sync.WaitGroup

	for _, host := range hosts {
		select {
		case <-ctx.Done():
			wg.Wait()
			return alive
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(host string) {
			defer wg.Done()
			defer func() { <-sem }()

			for _, port := range probePorts {
				if _, ok := c.probePort(ctx, host, port, false); ok {
					mu.Lock()
					alive = append(alive, types.Device{IP: host, Source: "probe"})
					mu.Unlock()
					return
				}
			}
		}(host)
	}
	wg.Wait()
	return alive
}

// enrich adds reverse-DNS hostnames and OUI vendors to devices.
// Failures land in the device's own Error field and never remove the
// device from the list.
func (c *Collector) enrich(ctx context.Context, devices []types.Device) {
	for i := range devices {
		d := &devices[i]
		if d.Hostname == "" {
			names, err := c.lookupAddr(ctx, d.IP)
			if err == nil && len(names) > 0 {
				d.Hostname = strings.TrimSuffix(names[0], ".")
			} else if err != nil {
				d.Error = "reverse DNS lookup failed"
			}
		}
		if d.Vendor == "" && d.MAC != "" {
			d.Vendor = vendorForMAC(d.MAC)
		}
	}
}

// mergeARPFacts backfills MAC addresses (and hostnames) discovered
// via ARP onto the probed device list.
func mergeARPFacts(devices, arpDevices []types.Device) {
	byIP := make(map[string]types.Device, len(arpDevices))
	for _, d := range arpDevices {
		byIP[d.IP] = d
	}
	for i := range devices {
		arp, ok := byIP[devices[i].IP]
		if !ok {
			continue
		}
		if devices[i].MAC == "" {
			devices[i].MAC = arp.MAC
		}
		if devices[i].Hostname == "" {
			devices[i].Hostname = arp.Hostname
		}
	}
}

// QuickScan probes the common-ports list on the primary interface's
// own address, giving a fast exposure snapshot of this host.
func (c *Collector) QuickScan(ctx context.Context) *types.PortSnapshot {
	snapshot := &types.PortSnapshot{ScannedAt: time.Now().UTC()}

	ifaces, err := c.interfaces()
	if err != nil {
		snapshot.Error = err.Error()
		return snapshot
	}
	iface, ok := primaryInterface(ifaces)
	if !ok {
		snapshot.Error = errNoInterface.Error()
		return snapshot
	}

	snapshot.Host = iface.IP
	snapshot.OpenPorts = c.probePorts(ctx, iface.IP, commonPorts, true)
	return snapshot
}

// ScanServices discovers devices and probes each one. Deep scans walk
// ports 1-1024 with banner grabbing; the default probes the
// common-ports list.
func (c *Collector) ScanServices(ctx context.Context, deep bool) (map[string][]types.Service, error) {
	devices, err := c.DiscoverDevices(ctx)
	if err != nil {
		return nil, err
	}
	return c.scanDevices(ctx, devices, deep), nil
}

func (c *Collector) scanDevices(ctx context.Context, devices []types.Device, deep bool) map[string][]types.Service {
	ports := commonPorts
	if deep {
		ports = deepPorts()
	}

	services := make(map[string][]types.Service, len(devices))
	for _, device := range devices {
		open := c.probePorts(ctx, device.IP, ports, true)
		if len(open) > 0 {
			services[device.IP] = open
		}
	}
	return services
}
