package system

import (
	"strconv"
	"strings"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// parseOSRelease extracts NAME and VERSION_ID from /etc/os-release.
func parseOSRelease(data string) (name, version string) {
	for _, line := range strings.Split(data, "\n") {
		key, val, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		val = strings.Trim(val, `"`)
		switch key {
		case "NAME":
			name = val
		case "VERSION_ID":
			version = val
		}
	}
	return name, version
}

// parseMeminfo reads MemTotal and MemAvailable (kB) from
// /proc/meminfo.
func parseMeminfo(data string) (total, free uint64) {
	for _, line := range strings.Split(data, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		kb, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			continue
		}
		switch fields[0] {
		case "MemTotal:":
			total = kb * 1024
		case "MemAvailable:":
			free = kb * 1024
		}
	}
	return total, free
}

// parseCPUModel extracts the first "model name" entry from
// /proc/cpuinfo.
func parseCPUModel(data string) string {
	for _, line := range strings.Split(data, "\n") {
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.TrimSpace(key) == "model name" {
			return strings.TrimSpace(val)
		}
	}
	return ""
}

// parseLoadAvg reads the one-minute average from /proc/loadavg.
func parseLoadAvg(data string) float64 {
	fields := strings.Fields(data)
	if len(fields) == 0 {
		return 0
	}
	load, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	return load
}

// parseDf converts `df -kP` output into per-mount disk usage. Pseudo
// filesystems without a capacity are skipped.
func parseDf(out string) []types.DiskInfo {
	var disks []types.DiskInfo
	for i, line := range strings.Split(out, "\n") {
		if i == 0 {
			continue // header
		}
		fields := strings.Fields(line)
		if len(fields) < 6 {
			continue
		}
		totalKB, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil || totalKB == 0 {
			continue
		}
		freeKB, _ := strconv.ParseUint(fields[3], 10, 64)
		disks = append(disks, types.DiskInfo{
			Mount:      fields[5],
			Filesystem: fields[0],
			TotalBytes: totalKB * 1024,
			FreeBytes:  freeKB * 1024,
		})
	}
	return disks
}

// parsePasswd returns human accounts from /etc/passwd: root plus
// UID >= 1000, excluding the nobody placeholder. Shells that forbid
// login are kept but flagged.
func parsePasswd(data string) []types.UserAccount {
	var accounts []types.UserAccount
	for _, line := range strings.Split(data, "\n") {
		fields := strings.Split(line, ":")
		if len(fields) < 7 {
			continue
		}
		uid, err := strconv.Atoi(fields[2])
		if err != nil {
			continue
		}
		if uid != 0 && uid < 1000 {
			continue
		}
		if fields[0] == "nobody" {
			continue
		}
		shell := fields[6]
		accounts = append(accounts, types.UserAccount{
			Name:    fields[0],
			UID:     fields[2],
			Admin:   uid == 0,
			NoLogin: strings.HasSuffix(shell, "nologin") || strings.HasSuffix(shell, "false"),
		})
	}
	return accounts
}

// parseGroupMembers extracts the member list of a `getent group`
// line, e.g. "sudo:x:27:alice,bob".
func parseGroupMembers(line string) []string {
	fields := strings.Split(strings.TrimSpace(line), ":")
	if len(fields) < 4 || fields[3] == "" {
		return nil
	}
	return strings.Split(fields[3], ",")
}

// parseShadowEmptyPasswords returns account names with an empty
// password field in /etc/shadow.
func parseShadowEmptyPasswords(data string) []string {
	var names []string
	for _, line := range strings.Split(data, "\n") {
		fields := strings.Split(line, ":")
		if len(fields) < 2 || fields[0] == "" {
			continue
		}
		if fields[1] == "" {
			names = append(names, fields[0])
		}
	}
	return names
}

// parseLoginDefs reads PASS_MIN_LEN and PASS_MAX_DAYS from
// /etc/login.defs.
func parseLoginDefs(data string) (minLen, maxAgeDays int) {
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		switch fields[0] {
		case "PASS_MIN_LEN":
			minLen = n
		case "PASS_MAX_DAYS":
			maxAgeDays = n
		}
	}
	return minLen, maxAgeDays
}

// parsePwquality reports whether pwquality.conf enforces character
// classes and raises the minimum length beyond login.defs.
func parsePwquality(data string) (minLen int, requireComplex bool) {
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		switch key {
		case "minlen":
			if n, err := strconv.Atoi(val); err == nil {
				minLen = n
			}
		case "minclass":
			if n, err := strconv.Atoi(val); err == nil && n >= 3 {
				requireComplex = true
			}
		case "dcredit", "ucredit", "lcredit", "ocredit":
			if n, err := strconv.Atoi(val); err == nil && n < 0 {
				requireComplex = true
			}
		}
	}
	return minLen, requireComplex
}

// parseFaillock reports whether faillock.conf sets a deny threshold.
func parseFaillock(data string) bool {
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if strings.TrimSpace(key) == "deny" {
			if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil && n > 0 {
				return true
			}
		}
	}
	return false
}

// parseAptUpgradable counts pending packages in `apt list
// --upgradable` output; security counts the ones coming from a
// -security pocket.
func parseAptUpgradable(out string) (pending, security int) {
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "[upgradable from:") {
			continue
		}
		pending++
		if strings.Contains(line, "-security") {
			security++
		}
	}
	return pending, security
}

// parseAptAutoUpgrades reports whether the 20auto-upgrades drop-in
// enables unattended upgrades.
func parseAptAutoUpgrades(data string) bool {
	for _, line := range strings.Split(data, "\n") {
		if strings.Contains(line, "APT::Periodic::Unattended-Upgrade") &&
			strings.Contains(line, `"1"`) {
			return true
		}
	}
	return false
}

// parseLsblkCrypt reports whether `lsblk -o NAME,TYPE` shows a dm-crypt
// mapping.
func parseLsblkCrypt(out string) bool {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[len(fields)-1] == "crypt" {
			return true
		}
	}
	return false
}

// parseSSListening parses `ss -tulnp` output. The process column is
// only present when the command ran with enough privilege.
func parseSSListening(out string) []types.ListeningPort {
	seen := map[string]bool{}
	var ports []types.ListeningPort
	for i, line := range strings.Split(out, "\n") {
		if i == 0 {
			continue // header
		}
		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}
		proto := strings.ToLower(fields[0])
		if proto != "tcp" && proto != "udp" {
			continue
		}
		local := fields[4]
		if proto == "tcp" && !strings.Contains(line, "LISTEN") {
			continue
		}
		idx := strings.LastIndex(local, ":")
		if idx < 0 {
			continue
		}
		port, err := strconv.Atoi(local[idx+1:])
		if err != nil {
			continue
		}
		process := ""
		if j := strings.Index(line, `users:(("`); j >= 0 {
			rest := line[j+len(`users:(("`):]
			if k := strings.Index(rest, `"`); k > 0 {
				process = rest[:k]
			}
		}
		key := proto + "/" + strconv.Itoa(port)
		if seen[key] {
			continue
		}
		seen[key] = true
		ports = append(ports, types.ListeningPort{Port: port, Proto: proto, Process: process})
	}
	return ports
}

// parseUfwStatus reads the state line of `ufw status`.
func parseUfwStatus(out string) (types.FirewallState, bool) {
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

// parseIptablesRules treats a DROP/REJECT input policy or any
// explicit rule as an active firewall.
func parseIptablesRules(out string) types.FirewallState {
	state := types.FirewallState{Status: "off", Profile: "iptables"}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "-P INPUT DROP") || strings.HasPrefix(line, "-P INPUT REJECT") {
			state.Enabled = true
		}
		if strings.HasPrefix(line, "-A ") {
			state.Enabled = true
		}
	}
	if state.Enabled {
		state.Status = "on"
	}
	return state
}

// knownAntivirus maps package name fragments to product names for the
// endpoint-protection inventory.
var knownAntivirus = map[string]string{
	"clamav":         "ClamAV",
	"sophos":         "Sophos",
	"eset":           "ESET",
	"falcon-sensor":  "CrowdStrike Falcon",
	"mcafee":         "McAfee",
	"bitdefender":    "Bitdefender",
	"kaspersky":      "Kaspersky",
	"sentinelagent":  "SentinelOne",
	"defender":       "Microsoft Defender",
	"rkhunter":       "Rootkit Hunter",
	"chkrootkit":     "chkrootkit",
	"osquery":        "osquery",
	"wazuh-agent":    "Wazuh",
	"ossec":          "OSSEC",
	"crowdstrike":    "CrowdStrike",
	"carbonblack":    "Carbon Black",
	"symantec":       "Symantec",
	"trendmicro":     "Trend Micro",
	"malwarebytes":   "Malwarebytes",
	"avast":          "Avast",
	"avg":            "AVG",
	"comodo":         "Comodo",
	"f-secure":       "F-Secure",
	"panda-security": "Panda",
}

// matchSecurityTools scans an installed-package listing for known
// endpoint-protection products.
func matchSecurityTools(packages []string) securitySoftwareFacts {
	var facts securitySoftwareFacts
	seen := map[string]bool{}
	for _, pkg := range packages {
		lower := strings.ToLower(pkg)
		for fragment, product := range knownAntivirus {
			if strings.Contains(lower, fragment) && !seen[product] {
				seen[product] = true
				facts.Antivirus = append(facts.Antivirus, product)
				facts.Installed = append(facts.Installed, pkg)
			}
		}
	}
	return facts
}

// parsePS converts `ps axo pid,user,comm` output, capped to keep
// payloads bounded.
func parsePS(out string, limit int) []types.ProcessInfo {
	var procs []types.ProcessInfo
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		pid, err := strconv.Atoi(fields[0])
		if err != nil {
			continue // header or garbage
		}
		procs = append(procs, types.ProcessInfo{
			PID:  pid,
			User: fields[1],
			Name: fields[2],
		})
		if limit > 0 && len(procs) >= limit {
			break
		}
	}
	return procs
}

// parseSystemctlServices parses `systemctl list-units --type=service
// --state=running --plain --no-legend`.
func parseSystemctlServices(out string) []types.ServiceInfo {
	var svcs []types.ServiceInfo
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 || !strings.HasSuffix(fields[0], ".service") {
			continue
		}
		svcs = append(svcs, types.ServiceInfo{
			Name:   strings.TrimSuffix(fields[0], ".service"),
			Status: fields[3],
		})
	}
	return svcs
}

// parsePackageList parses tab-separated "name<TAB>version" listings
// from dpkg-query or rpm, capped to keep payloads bounded.
func parsePackageList(out string, limit int) []types.SoftwareInfo {
	var sw []types.SoftwareInfo
	for _, line := range strings.Split(out, "\n") {
		name, version, _ := strings.Cut(strings.TrimSpace(line), "\t")
		if name == "" {
			continue
		}
		sw = append(sw, types.SoftwareInfo{Name: name, Version: version})
		if limit > 0 && len(sw) >= limit {
			break
		}
	}
	return sw
}
