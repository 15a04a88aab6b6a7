package system

import (
	"strconv"
	"strings"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// parseSysctlLoadAvg reads the one-minute average from
// `sysctl -n vm.loadavg`, formatted as "{ 1.23 1.10 0.98 }".
func parseSysctlLoadAvg(out string) float64 {
	fields := strings.Fields(strings.Trim(strings.TrimSpace(out), "{}"))
	if len(fields) == 0 {
		return 0
	}
	load, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	return load
}

// parseDsclUsers converts `dscl . -list /Users UniqueID` output into
// accounts, skipping the _service users and system UIDs below 500.
func parseDsclUsers(out string) []types.UserAccount {
	var accounts []types.UserAccount
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 || strings.HasPrefix(fields[0], "_") {
			continue
		}
		uid, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		if uid != 0 && uid < 500 {
			continue
		}
		if fields[0] == "nobody" || fields[0] == "daemon" {
			continue
		}
		accounts = append(accounts, types.UserAccount{
			Name:  fields[0],
			UID:   fields[1],
			Admin: uid == 0,
		})
	}
	return accounts
}

// parseDsclGroupMembership extracts names from a "GroupMembership:
// root alice bob" line.
func parseDsclGroupMembership(out string) []string {
	for _, line := range strings.Split(out, "\n") {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), "GroupMembership:"); ok {
			return strings.Fields(rest)
		}
	}
	return nil
}

// parsePwpolicy reads minChars and maxMinutesUntilChangePassword from
// legacy `pwpolicy -getglobalpolicy` output.
func parsePwpolicy(out string) types.PasswordPolicy {
	policy := types.PasswordPolicy{}
	for _, pair := range strings.Fields(out) {
		key, val, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			continue
		}
		switch key {
		case "minChars":
			policy.MinLength = n
		case "requiresAlpha", "requiresNumeric":
			if n == 1 {
				policy.RequireComplex = true
			}
		case "maxMinutesUntilChangePassword":
			policy.MaxAgeDays = n / (60 * 24)
		}
	}
	return policy
}

// parseSoftwareUpdateList counts pending items in `softwareupdate -l`
// output; Safari and macOS security point releases count as security.
func parseSoftwareUpdateList(out string) (pending, security int) {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "* Label:") && !strings.HasPrefix(line, "* ") {
			continue
		}
		pending++
		lower := strings.ToLower(line)
		if strings.Contains(lower, "security") || strings.Contains(lower, "safari") {
			security++
		}
	}
	return pending, security
}

// parseLsofListening parses `lsof -nP -iTCP -sTCP:LISTEN` output.
func parseLsofListening(out string) []types.ListeningPort {
	seen := map[int]bool{}
	var ports []types.ListeningPort
	for i, line := range strings.Split(out, "\n") {
		if i == 0 {
			continue // header
		}
		fields := strings.Fields(line)
		if len(fields) < 9 {
			continue
		}
		addr := fields[8]
		idx := strings.LastIndex(addr, ":")
		if idx < 0 {
			continue
		}
		port, err := strconv.Atoi(addr[idx+1:])
		if err != nil || seen[port] {
			continue
		}
		seen[port] = true
		ports = append(ports, types.ListeningPort{Port: port, Proto: "tcp", Process: fields[0]})
	}
	return ports
}

// parseLaunchctlList parses `launchctl list`, keeping labeled jobs
// with a live PID.
func parseLaunchctlList(out string) []types.ServiceInfo {
	var svcs []types.ServiceInfo
	for i, line := range strings.Split(out, "\n") {
		if i == 0 {
			continue // header
		}
		fields := strings.Fields(line)
		if len(fields) < 3 || fields[0] == "-" {
			continue
		}
		svcs = append(svcs, types.ServiceInfo{Name: fields[2], Status: "running"})
	}
	return svcs
}
