package system

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// decodeJSONList unmarshals PowerShell ConvertTo-Json output, which
// emits a bare object for a single result and an array otherwise.
func decodeJSONList[T any](out string) ([]T, error) {
	out = strings.TrimSpace(out)
	if out == "" {
		return nil, nil
	}
	if strings.HasPrefix(out, "[") {
		var list []T
		if err := json.Unmarshal([]byte(out), &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var single T
	if err := json.Unmarshal([]byte(out), &single); err != nil {
		return nil, err
	}
	return []T{single}, nil
}

// parseNetAccounts reads password policy from `net accounts` output.
func parseNetAccounts(out string) (types.PasswordPolicy, bool) {
	policy := types.PasswordPolicy{}
	lockout := false
	for _, line := range strings.Split(out, "\n") {
		label, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		label = strings.TrimSpace(label)
		val = strings.TrimSpace(val)
		switch {
		case strings.HasPrefix(label, "Minimum password length"):
			if n, err := strconv.Atoi(val); err == nil {
				policy.MinLength = n
			}
		case strings.HasPrefix(label, "Maximum password age"):
			if n, err := strconv.Atoi(val); err == nil {
				policy.MaxAgeDays = n
			}
		case strings.HasPrefix(label, "Lockout threshold"):
			if n, err := strconv.Atoi(val); err == nil && n > 0 {
				lockout = true
			}
		}
	}
	return policy, lockout
}

// parseNetstatListening parses `netstat -ano` output, keeping TCP
// LISTENING sockets and UDP binds.
func parseNetstatListening(out string) []types.ListeningPort {
	seen := map[string]bool{}
	var ports []types.ListeningPort
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		proto := strings.ToLower(fields[0])
		if proto != "tcp" && proto != "udp" {
			continue
		}
		if proto == "tcp" && !strings.Contains(line, "LISTENING") {
			continue
		}
		local := fields[1]
		idx := strings.LastIndex(local, ":")
		if idx < 0 {
			continue
		}
		port, err := strconv.Atoi(local[idx+1:])
		if err != nil {
			continue
		}
		key := proto + "/" + strconv.Itoa(port)
		if seen[key] {
			continue
		}
		seen[key] = true
		ports = append(ports, types.ListeningPort{Port: port, Proto: proto})
	}
	return ports
}

// parseNetshFirewall reads profile states from `netsh advfirewall
// show allprofiles`. The firewall counts as enabled when every listed
// profile is ON.
func parseNetshFirewall(out string) types.FirewallState {
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
