// Package network discovers devices and exposed services on the
// local subnet. Discovery degrades in stages: nmap when present, a
// bounded TCP connect sweep otherwise, and the ARP table as the last
// resort. A failing stage narrows the result set instead of aborting
// the collector.
package network

import (
	"fmt"
	"net"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// maxSweepHosts bounds the connect sweep so a misconfigured netmask
// cannot turn discovery into a /8 walk.
const maxSweepHosts = 256

// subnetFor derives the CIDR of an interface from its address and
// netmask, with the prefix length counted from the mask's set bits.
func subnetFor(iface types.NetInterface) (string, error) {
	ip := net.ParseIP(iface.IP)
	if ip == nil || ip.To4() == nil {
		return "", fmt.Errorf("interface %s has no usable IPv4 address", iface.Name)
	}
	mask := net.ParseIP(iface.Netmask)
	if mask == nil || mask.To4() == nil {
		return "", fmt.Errorf("interface %s has no usable netmask", iface.Name)
	}
	ipMask := net.IPMask(mask.To4())
	ones, bits := ipMask.Size()
	if bits == 0 {
		return "", fmt.Errorf("interface %s has a non-contiguous netmask %s", iface.Name, iface.Netmask)
	}
	network := ip.To4().Mask(ipMask)
	return fmt.Sprintf("%s/%d", network, ones), nil
}

// hostsIn enumerates usable host addresses in a CIDR, excluding the
// network and broadcast addresses and capped at maxSweepHosts.
func hostsIn(cidr string) ([]string, error) {
	ip, ipNet, err := net.ParseCIDR(cidr)
	if err != nil {
		return nil, err
	}
	var hosts []string
	for addr := ip.Mask(ipNet.Mask); ipNet.Contains(addr); incIP(addr) {
		hosts = append(hosts, addr.String())
		if len(hosts) > maxSweepHosts {
			break
		}
	}
	if len(hosts) <= 2 {
		return nil, fmt.Errorf("subnet %s has no usable hosts", cidr)
	}
	// Drop network and broadcast addresses.
	return hosts[1 : len(hosts)-1], nil
}

func incIP(ip net.IP) {
	for i := len(ip) - 1; i >= 0; i-- {
		ip[i]++
		if ip[i] != 0 {
			break
		}
	}
}

// primaryInterface returns the first interface carrying an IPv4
// address, which anchors subnet derivation and the quick scan.
func primaryInterface(ifaces []types.NetInterface) (types.NetInterface, bool) {
	for _, iface := range ifaces {
		if iface.IP != "" {
			return iface, true
		}
	}
	return types.NetInterface{}, false
}
