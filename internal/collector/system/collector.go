// Package system collects host facts and security-configuration
// state. Basic mode returns OS/CPU/memory/disk only; detailed mode
// additionally enumerates users, processes, services and software,
// and runs seven independent security-configuration checks. Every
// platform command is a read-only query, and the failure of one
// check never aborts the others.
package system

import (
	"context"
	"net"
	"runtime"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/Jjustmee23/CyberShieldX-sub000/internal/toolexec"
	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// Mode selects the collection depth.
type Mode string

const (
	ModeBasic    Mode = "basic"
	ModeDetailed Mode = "detailed"
)

// Collector gathers system facts through a platform strategy chosen
// once at construction.
type Collector struct {
	log          hclog.Logger
	platform     platform
	checkTimeout time.Duration
}

// New builds a Collector for the current operating system.
func New(log hclog.Logger, runner toolexec.Runner, checkTimeout time.Duration) *Collector {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	if runner == nil {
		runner = toolexec.New(checkTimeout)
	}
	if checkTimeout <= 0 {
		checkTimeout = 15 * time.Second
	}
	return &Collector{
		log:          log.Named("system"),
		platform:     platformFor(runtime.GOOS, runner),
		checkTimeout: checkTimeout,
	}
}

// newWithPlatform is the test seam for substituting a fake platform.
func newWithPlatform(log hclog.Logger, p platform, checkTimeout time.Duration) *Collector {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Collector{log: log, platform: p, checkTimeout: checkTimeout}
}

// Collect gathers system information. The returned SecurityConfig is
// nil in basic mode. Collect itself never fails: unavailable facts
// degrade to zero values or error-tagged checks.
func (c *Collector) Collect(ctx context.Context, mode Mode) (*types.SystemInfo, *types.SecurityConfig) {
	info := &types.SystemInfo{}

	if osInfo, err := c.platform.OSInfo(ctx); err == nil {
		info.OS = osInfo
	} else {
		c.log.Warn("collecting OS info failed", "error", err)
		info.Error = err.Error()
	}
	if cpu, err := c.platform.CPUInfo(ctx); err == nil {
		info.CPU = cpu
	} else {
		c.log.Warn("collecting CPU info failed", "error", err)
	}
	if mem, err := c.platform.MemoryInfo(ctx); err == nil {
		info.Memory = mem
	} else {
		c.log.Warn("collecting memory info failed", "error", err)
	}
	if disks, err := c.platform.DiskInfo(ctx); err == nil {
		info.Disks = disks
	} else {
		c.log.Warn("collecting disk info failed", "error", err)
	}

	if mode != ModeDetailed {
		return info, nil
	}

	cfg := c.runChecks(ctx)

	cctx, cancel := context.WithTimeout(ctx, c.checkTimeout)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		if procs, err := c.platform.Processes(cctx); err == nil {
			info.Processes = procs
		}
	}()
	go func() {
		defer wg.Done()
		if svcs, err := c.platform.Services(cctx); err == nil {
			info.Services = svcs
		}
	}()
	go func() {
		defer wg.Done()
		if sw, err := c.platform.Software(cctx); err == nil {
			info.Software = sw
		}
	}()
	wg.Wait()

	return info, cfg
}

// runChecks executes the seven security-configuration checks
// concurrently. The checks are read-only and independent, so each
// writes its own field; the only discipline is the per-check timeout
// and error boundary.
func (c *Collector) runChecks(ctx context.Context) *types.SecurityConfig {
	cfg := &types.SecurityConfig{}

	var wg sync.WaitGroup
	wg.Add(7)

	go func() {
		defer wg.Done()
		cfg.Users = c.usersCheck(ctx)
	}()
	go func() {
		defer wg.Done()
		cfg.Authentication = c.authenticationCheck(ctx)
	}()
	go func() {
		defer wg.Done()
		cfg.Updates = c.updatesCheck(ctx)
	}()
	go func() {
		defer wg.Done()
		cfg.Encryption = c.encryptionCheck(ctx)
	}()
	go func() {
		defer wg.Done()
		cfg.NetworkConfig = c.networkConfigCheck(ctx)
	}()
	go func() {
		defer wg.Done()
		cfg.FirewallConfig = c.firewallCheck(ctx)
	}()
	go func() {
		defer wg.Done()
		cfg.SecuritySoftware = c.securitySoftwareCheck(ctx)
	}()

	wg.Wait()
	return cfg
}

// localInterfaces enumerates non-loopback IPv4 interfaces via the
// standard library; it is shared by all platform strategies.
func localInterfaces() ([]types.NetInterface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	var out []types.NetInterface
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		entry := types.NetInterface{Name: iface.Name, MAC: iface.HardwareAddr.String()}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok || ipNet.IP.To4() == nil {
				continue
			}
			entry.IP = ipNet.IP.String()
			entry.Netmask = net.IP(ipNet.Mask).String()
			break
		}
		if entry.IP != "" {
			out = append(out, entry)
		}
	}
	return out, nil
}
