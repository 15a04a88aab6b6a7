package network

import (
	"errors"
	"net"
	"strings"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

var errNoInterface = errors.New("no active non-loopback interface with an IPv4 address")

// localInterfaces enumerates up, non-loopback interfaces carrying an
// IPv4 address.
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

// parseNmapPingScan parses grepable `nmap -sn -oG -` output lines of
// the form "Host: 192.168.1.10 (printer.lan)	Status: Up".
func parseNmapPingScan(out string) []types.Device {
	var devices []types.Device
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "Host:") || !strings.Contains(line, "Status: Up") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || net.ParseIP(fields[1]) == nil {
			continue
		}
		device := types.Device{IP: fields[1], Source: "nmap"}
		if len(fields) >= 3 && strings.HasPrefix(fields[2], "(") {
			hostname := strings.Trim(fields[2], "()")
			if hostname != "" {
				device.Hostname = hostname
			}
		}
		devices = append(devices, device)
	}
	return devices
}
