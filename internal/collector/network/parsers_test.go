package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

func TestSubnetFor(t *testing.T) {
	iface := types.NetInterface{Name: "eth0", IP: "192.168.1.42", Netmask: "255.255.255.0"}
	subnet, err := subnetFor(iface)
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.0/24", subnet)

	iface.Netmask = "255.255.0.0"
	subnet, err = subnetFor(iface)
	require.NoError(t, err)
	assert.Equal(t, "192.168.0.0/16", subnet)

	_, err = subnetFor(types.NetInterface{Name: "eth1", IP: "fe80::1", Netmask: "255.255.255.0"})
	assert.Error(t, err)

	_, err = subnetFor(types.NetInterface{Name: "eth2", IP: "10.0.0.5"})
	assert.Error(t, err)
}

func TestHostsIn(t *testing.T) {
	hosts, err := hostsIn("192.168.1.0/30")
	require.NoError(t, err)
	assert.Equal(t, []string{"192.168.1.1", "192.168.1.2"}, hosts)

	hosts, err = hostsIn("10.0.0.0/24")
	require.NoError(t, err)
	assert.Len(t, hosts, 254)
	assert.Equal(t, "10.0.0.1", hosts[0])
	assert.Equal(t, "10.0.0.254", hosts[253])

	// Oversized subnets are capped rather than enumerated.
	hosts, err = hostsIn("10.0.0.0/16")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(hosts), maxSweepHosts)

	_, err = hostsIn("not-a-cidr")
	assert.Error(t, err)
}

func TestParseProcNetARP(t *testing.T) {
	fixture := `IP address       HW type     Flags       HW address            Mask     Device
192.168.1.1      0x1         0x2         a4:91:b1:1a:2b:3c     *        eth0
192.168.1.50     0x1         0x0         00:00:00:00:00:00     *        eth0
192.168.1.17     0x1         0x2         b8:27:eb:aa:bb:cc     *        eth0
`
	devices := parseProcNetARP(fixture)
	require.Len(t, devices, 2)
	assert.Equal(t, "192.168.1.1", devices[0].IP)
	assert.Equal(t, "a4:91:b1:1a:2b:3c", devices[0].MAC)
	assert.Equal(t, "arp", devices[0].Source)
	assert.Equal(t, "192.168.1.17", devices[1].IP)
}

func TestParseARPOutput(t *testing.T) {
	fixture := `gateway (192.168.1.1) at a4:91:b1:1a:2b:3c [ether] on eth0
? (192.168.1.23) at b8:27:eb:11:22:33 [ether] on eth0
printer.lan (192.168.1.40) at <incomplete> on eth0
`
	devices := parseARPOutput(fixture)
	require.Len(t, devices, 3)
	assert.Equal(t, "gateway", devices[0].Hostname)
	assert.Equal(t, "a4:91:b1:1a:2b:3c", devices[0].MAC)
	assert.Empty(t, devices[1].Hostname)
	assert.Equal(t, "b8:27:eb:11:22:33", devices[1].MAC)
	assert.Equal(t, "printer.lan", devices[2].Hostname)
	assert.Empty(t, devices[2].MAC)
}

func TestParseNmapPingScan(t *testing.T) {
	fixture := `# Nmap 7.94 scan initiated
Host: 192.168.1.1 (gateway.lan)	Status: Up
Host: 192.168.1.23 ()	Status: Up
Host: 192.168.1.99 ()	Status: Down
# Nmap done
`
	devices := parseNmapPingScan(fixture)
	require.Len(t, devices, 2)
	assert.Equal(t, types.Device{IP: "192.168.1.1", Hostname: "gateway.lan", Source: "nmap"}, devices[0])
	assert.Equal(t, types.Device{IP: "192.168.1.23", Source: "nmap"}, devices[1])
}

func TestParseUfwState(t *testing.T) {
	state, found := parseUfwState("Status: active\n")
	require.True(t, found)
	assert.True(t, state.Enabled)
	assert.Equal(t, "on", state.Status)

	state, found = parseUfwState("Status: inactive\n")
	require.True(t, found)
	assert.False(t, state.Enabled)

	_, found = parseUfwState("ERROR: not running as root\n")
	assert.False(t, found)
}

func TestParseIptablesInput(t *testing.T) {
	assert.False(t, parseIptablesInput("-P INPUT ACCEPT\n").Enabled)
	assert.True(t, parseIptablesInput("-P INPUT DROP\n").Enabled)
	assert.True(t, parseIptablesInput("-P INPUT ACCEPT\n-A INPUT -p tcp --dport 22 -j ACCEPT\n").Enabled)
}

func TestParseNetshProfiles(t *testing.T) {
	on := "Domain Profile Settings:\nState  ON\n\nPrivate Profile Settings:\nState  ON\n"
	assert.True(t, parseNetshProfiles(on).Enabled)

	mixed := "State  ON\nState  OFF\n"
	state := parseNetshProfiles(mixed)
	assert.False(t, state.Enabled)
	assert.Equal(t, "off", state.Status)

	assert.Equal(t, "unknown", parseNetshProfiles("no state lines").Status)
}

func TestParseNmcliWifi(t *testing.T) {
	info := parseNmcliWifi("no:Neighbor:WPA2\nyes:HomeNet:WPA2\n")
	assert.Equal(t, "HomeNet", info.SSID)
	assert.Equal(t, "WPA2", info.Security)

	info = parseNmcliWifi("no:Neighbor:WPA2\n")
	assert.Equal(t, "unknown", info.Security)
	assert.NotEmpty(t, info.Error)
}

func TestParseAirportInfo(t *testing.T) {
	fixture := `     agrCtlRSSI: -55
           SSID: CoffeeShop
      link auth: wpa2-psk
`
	info := parseAirportInfo(fixture)
	assert.Equal(t, "CoffeeShop", info.SSID)
	assert.Equal(t, "WPA2", info.Security)
}

func TestParseNetshWlan(t *testing.T) {
	fixture := `    Name                   : Wi-Fi
    SSID                   : OfficeNet
    BSSID                  : a4:91:b1:1a:2b:3c
    Authentication         : WPA3-Personal
`
	info := parseNetshWlan(fixture)
	assert.Equal(t, "OfficeNet", info.SSID)
	assert.Equal(t, "WPA3", info.Security)
}

func TestNormalizeSecurity(t *testing.T) {
	cases := map[string]string{
		"WPA2":          "WPA2",
		"wpa2-psk":      "WPA2",
		"WPA3-Personal": "WPA3",
		"WPA1 WPA2":     "WPA2",
		"WPA-Personal":  "WPA",
		"WEP":           "WEP",
		"":              "open",
		"none":          "open",
		"Open":          "open",
	}
	for raw, want := range cases {
		assert.Equal(t, want, normalizeSecurity(raw), "raw %q", raw)
	}
}

func TestVendorForMAC(t *testing.T) {
	assert.Equal(t, "Raspberry Pi", vendorForMAC("b8:27:eb:aa:bb:cc"))
	assert.Equal(t, "Raspberry Pi", vendorForMAC("B8-27-EB-AA-BB-CC"))
	assert.Equal(t, "", vendorForMAC("ff:ff:ff:00:00:00"))
	assert.Equal(t, "", vendorForMAC("bogus"))
}

func TestVersionFromBanner(t *testing.T) {
	assert.Equal(t, "SSH-2.0-OpenSSH_9.6p1", versionFromBanner("SSH-2.0-OpenSSH_9.6p1 Ubuntu-3ubuntu13"))
	assert.Equal(t, "nginx/1.24.0", versionFromBanner("Server: nginx/1.24.0"))
	assert.Equal(t, "", versionFromBanner("220 welcome"))
}

func TestServiceName(t *testing.T) {
	assert.Equal(t, "ssh", serviceName(22))
	assert.Equal(t, "redis", serviceName(6379))
	assert.Equal(t, "unknown", serviceName(49152))
}
