package network

import (
	"context"
	"strings"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// CheckFirewall determines the local firewall posture with the
// platform's native tool. A failed probe reports status "unknown"
// with the error attached rather than nil.
func (c *Collector) CheckFirewall(ctx context.Context) *types.FirewallState {
	var state types.FirewallState
	switch c.goos {
	case "windows":
		state = c.windowsFirewall(ctx)
	case "darwin":
		state = c.darwinFirewall(ctx)
	default:
		state = c.linuxFirewall(ctx)
	}
	return &state
}

func (c *Collector) linuxFirewall(ctx context.Context) types.FirewallState {
	if _, ok := c.runner.LookPath("ufw"); ok {
		if out, err := c.runner.Run(ctx, "ufw", "status"); err == nil {
			if state, found := parseUfwState(out); found {
				return state
			}
		}
	}
	out, err := c.runner.Run(ctx, "iptables", "-S", "INPUT")
	if err != nil {
		return types.FirewallState{Status: "unknown", Error: err.Error()}
	}
	return parseIptablesInput(out)
}

func (c *Collector) darwinFirewall(ctx context.Context) types.FirewallState {
	out, err := c.runner.Run(ctx, "/usr/libexec/ApplicationFirewall/socketfilterfw", "--getglobalstate")
	if err != nil {
		return types.FirewallState{Status: "unknown", Error: err.Error()}
	}
	enabled := strings.Contains(strings.ToLower(out), "enabled")
	state := types.FirewallState{Enabled: enabled, Status: "off", Profile: "application firewall"}
	if enabled {
		state.Status = "on"
	}
	return state
}

func (c *Collector) windowsFirewall(ctx context.Context) types.FirewallState {
	out, err := c.runner.Run(ctx, "netsh", "advfirewall", "show", "allprofiles")
	if err != nil {
		return types.FirewallState{Status: "unknown", Error: err.Error()}
	}
	return parseNetshProfiles(out)
}

func parseUfwState(out string) (types.FirewallState, bool) {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "Status:") {
			continue
		}
		enabled := strings.TrimSpace(strings.TrimPrefix(line, "Status:")) == "active"
		state := types.FirewallState{Enabled: enabled, Status: "off", Profile: "ufw"}
		if enabled {
			state.Status = "on"
		}
		return state, true
	}
	return types.FirewallState{Status: "unknown"}, false
}

func parseIptablesInput(out string) types.FirewallState {
	state := types.FirewallState{Status: "off", Profile: "iptables"}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "-P INPUT DROP") ||
			strings.HasPrefix(line, "-P INPUT REJECT") ||
			strings.HasPrefix(line, "-A INPUT") {
			state.Enabled = true
		}
	}
	if state.Enabled {
		state.Status = "on"
	}
	return state
}

func parseNetshProfiles(out string) types.FirewallState {
	profiles, enabled := 0, 0
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] != "State" {
			continue
		}
		profiles++
		if strings.EqualFold(fields[len(fields)-1], "ON") {
			enabled++
		}
	}
	state := types.FirewallState{Status: "unknown", Profile: "windows defender firewall"}
	if profiles == 0 {
		return state
	}
	state.Enabled = enabled == profiles
	state.Status = "off"
	if state.Enabled {
		state.Status = "on"
	}
	return state
}
