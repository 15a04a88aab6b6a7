package network

import (
	"context"
	"net"
	"os"
	"strings"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// arpTable reads the kernel ARP cache, preferring procfs and falling
// back to the arp tool on systems without it.
func (c *Collector) arpTable(ctx context.Context) []types.Device {
	if data, err := os.ReadFile(c.arpPath); err == nil {
		if devices := parseProcNetARP(string(data)); len(devices) > 0 {
			return devices
		}
	}
	out, err := c.runner.Run(ctx, "arp", "-a")
	if err != nil {
		return nil
	}
	return parseARPOutput(out)
}

// parseProcNetARP parses /proc/net/arp. Incomplete entries carry a
// zero MAC and are dropped.
func parseProcNetARP(data string) []types.Device {
	var devices []types.Device
	for i, line := range strings.Split(data, "\n") {
		if i == 0 {
			continue // header
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		ip, mac := fields[0], fields[3]
		if net.ParseIP(ip) == nil || mac == "00:00:00:00:00:00" {
			continue
		}
		devices = append(devices, types.Device{IP: ip, MAC: mac, Source: "arp"})
	}
	return devices
}

// parseARPOutput parses `arp -a` lines of the form
// "gateway (192.168.1.1) at aa:bb:cc:dd:ee:ff [ether] on eth0".
func parseARPOutput(out string) []types.Device {
	var devices []types.Device
	for _, line := range strings.Split(out, "\n") {
		open := strings.Index(line, "(")
		end := strings.Index(line, ")")
		if open < 0 || end <= open {
			continue
		}
		ip := line[open+1 : end]
		if net.ParseIP(ip) == nil {
			continue
		}
		device := types.Device{IP: ip, Source: "arp"}
		if hostname := strings.TrimSpace(line[:open]); hostname != "" && hostname != "?" {
			device.Hostname = hostname
		}
		if at := strings.Index(line, " at "); at >= 0 {
			rest := strings.Fields(line[at+4:])
			if len(rest) > 0 && strings.Count(rest[0], ":") == 5 {
				device.MAC = rest[0]
			}
		}
		devices = append(devices, device)
	}
	return devices
}
