package system

import (
	"context"
	"errors"
	"os"
	"runtime"
	"strings"

	"github.com/Jjustmee23/CyberShieldX-sub000/internal/toolexec"
	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// linuxPlatform reads procfs and standard config files directly and
// shells out for everything else. It is also the fallback strategy
// for unrecognized Unix-like systems.
type linuxPlatform struct {
	runner toolexec.Runner
}

func (p *linuxPlatform) OSInfo(ctx context.Context) (types.OSInfo, error) {
	info := types.OSInfo{Platform: "linux", Arch: runtime.GOARCH}
	info.Hostname, _ = os.Hostname()

	if data, err := os.ReadFile("/etc/os-release"); err == nil {
		info.Name, info.Version = parseOSRelease(string(data))
	}
	if info.Name == "" {
		out, err := p.runner.Run(ctx, "uname", "-sr")
		if err != nil {
			return info, err
		}
		fields := strings.Fields(out)
		if len(fields) >= 1 {
			info.Name = fields[0]
		}
		if len(fields) >= 2 {
			info.Version = fields[1]
		}
	}
	return info, nil
}

func (p *linuxPlatform) CPUInfo(ctx context.Context) (types.CPUInfo, error) {
	info := types.CPUInfo{Cores: runtime.NumCPU()}
	data, err := os.ReadFile("/proc/cpuinfo")
	if err != nil {
		return info, err
	}
	info.Model = parseCPUModel(string(data))
	if load, err := os.ReadFile("/proc/loadavg"); err == nil {
		info.LoadAvg = parseLoadAvg(string(load))
	}
	return info, nil
}

func (p *linuxPlatform) MemoryInfo(ctx context.Context) (types.MemoryInfo, error) {
	data, err := os.ReadFile("/proc/meminfo")
	if err != nil {
		return types.MemoryInfo{}, err
	}
	total, free := parseMeminfo(string(data))
	return types.MemoryInfo{TotalBytes: total, FreeBytes: free}, nil
}

func (p *linuxPlatform) DiskInfo(ctx context.Context) ([]types.DiskInfo, error) {
	out, err := p.runner.Run(ctx, "df", "-kP")
	if err != nil {
		return nil, err
	}
	return parseDf(out), nil
}

func (p *linuxPlatform) Users(ctx context.Context) ([]types.UserAccount, int, error) {
	data, err := os.ReadFile("/etc/passwd")
	if err != nil {
		return nil, 0, err
	}
	accounts := parsePasswd(string(data))

	// Group-based admin detection is best effort; uid 0 is already
	// flagged by the passwd parse.
	admins := map[string]bool{}
	for _, group := range []string{"sudo", "wheel"} {
		out, err := p.runner.Run(ctx, "getent", "group", group)
		if err != nil {
			continue
		}
		for _, member := range parseGroupMembers(out) {
			admins[member] = true
		}
	}
	for i := range accounts {
		if admins[accounts[i].Name] {
			accounts[i].Admin = true
		}
	}

	// Shadow is only readable as root; without it the passwordless
	// count stays 0 rather than failing the check.
	passwordless := 0
	if shadow, err := os.ReadFile("/etc/shadow"); err == nil {
		empty := map[string]bool{}
		for _, name := range parseShadowEmptyPasswords(string(shadow)) {
			empty[name] = true
		}
		for _, a := range accounts {
			if empty[a.Name] && !a.NoLogin {
				passwordless++
			}
		}
	}

	return accounts, passwordless, nil
}

func (p *linuxPlatform) Authentication(ctx context.Context) (authFacts, error) {
	data, err := os.ReadFile("/etc/login.defs")
	if err != nil {
		return authFacts{}, err
	}
	minLen, maxAge := parseLoginDefs(string(data))

	facts := authFacts{Policy: types.PasswordPolicy{MinLength: minLen, MaxAgeDays: maxAge}}
	if pq, err := os.ReadFile("/etc/security/pwquality.conf"); err == nil {
		pqMin, complexity := parsePwquality(string(pq))
		if pqMin > facts.Policy.MinLength {
			facts.Policy.MinLength = pqMin
		}
		facts.Policy.RequireComplex = complexity
	}
	if fl, err := os.ReadFile("/etc/security/faillock.conf"); err == nil {
		facts.LockoutEnabled = parseFaillock(string(fl))
	}
	return facts, nil
}

func (p *linuxPlatform) Updates(ctx context.Context) (updateFacts, error) {
	if _, ok := p.runner.LookPath("apt"); ok {
		out, err := p.runner.Run(ctx, "apt", "list", "--upgradable")
		if err != nil {
			return updateFacts{}, err
		}
		facts := updateFacts{}
		facts.Pending, facts.Security = parseAptUpgradable(out)
		if data, err := os.ReadFile("/etc/apt/apt.conf.d/20auto-upgrades"); err == nil {
			facts.AutoUpdate = parseAptAutoUpgrades(string(data))
		}
		return facts, nil
	}

	if _, ok := p.runner.LookPath("dnf"); ok {
		out, err := p.runner.Run(ctx, "dnf", "-q", "updateinfo", "--list", "--security")
		if err != nil {
			return updateFacts{}, err
		}
		facts := updateFacts{}
		for _, line := range strings.Split(out, "\n") {
			if strings.TrimSpace(line) != "" {
				facts.Security++
			}
		}
		facts.Pending = facts.Security
		return facts, nil
	}

	return updateFacts{}, errors.New("no supported package manager found")
}

func (p *linuxPlatform) Encryption(ctx context.Context) (encryptionFacts, error) {
	out, err := p.runner.Run(ctx, "lsblk", "-o", "NAME,TYPE")
	if err != nil {
		return encryptionFacts{}, err
	}
	if parseLsblkCrypt(out) {
		return encryptionFacts{Encrypted: true, Tool: "LUKS"}, nil
	}
	return encryptionFacts{}, nil
}

func (p *linuxPlatform) ListeningPorts(ctx context.Context) ([]types.ListeningPort, error) {
	out, err := p.runner.Run(ctx, "ss", "-tulnp")
	if err != nil {
		out, err = p.runner.Run(ctx, "netstat", "-tuln")
		if err != nil {
			return nil, err
		}
	}
	return parseSSListening(out), nil
}

func (p *linuxPlatform) Firewall(ctx context.Context) (types.FirewallState, error) {
	if _, ok := p.runner.LookPath("ufw"); ok {
		out, err := p.runner.Run(ctx, "ufw", "status")
		if err == nil {
			if state, found := parseUfwStatus(out); found {
				return state, nil
			}
		}
	}
	out, err := p.runner.Run(ctx, "iptables", "-S")
	if err != nil {
		return types.FirewallState{Status: "unknown"}, err
	}
	return parseIptablesRules(out), nil
}

func (p *linuxPlatform) SecuritySoftware(ctx context.Context) (securitySoftwareFacts, error) {
	packages, err := p.installedPackageNames(ctx)
	if err != nil {
		return securitySoftwareFacts{}, err
	}
	return matchSecurityTools(packages), nil
}

func (p *linuxPlatform) installedPackageNames(ctx context.Context) ([]string, error) {
	if _, ok := p.runner.LookPath("dpkg-query"); ok {
		out, err := p.runner.Run(ctx, "dpkg-query", "-W", "-f", "${Package}\n")
		if err != nil {
			return nil, err
		}
		return strings.Split(out, "\n"), nil
	}
	out, err := p.runner.Run(ctx, "rpm", "-qa", "--qf", "%{NAME}\n")
	if err != nil {
		return nil, err
	}
	return strings.Split(out, "\n"), nil
}

func (p *linuxPlatform) Processes(ctx context.Context) ([]types.ProcessInfo, error) {
	out, err := p.runner.Run(ctx, "ps", "axo", "pid,user,comm", "--no-headers")
	if err != nil {
		return nil, err
	}
	return parsePS(out, 200), nil
}

func (p *linuxPlatform) Services(ctx context.Context) ([]types.ServiceInfo, error) {
	out, err := p.runner.Run(ctx, "systemctl", "list-units", "--type=service",
		"--state=running", "--plain", "--no-legend")
	if err != nil {
		return nil, err
	}
	return parseSystemctlServices(out), nil
}

func (p *linuxPlatform) Software(ctx context.Context) ([]types.SoftwareInfo, error) {
	if _, ok := p.runner.LookPath("dpkg-query"); ok {
		out, err := p.runner.Run(ctx, "dpkg-query", "-W", "-f", "${Package}\t${Version}\n")
		if err != nil {
			return nil, err
		}
		return parsePackageList(out, 500), nil
	}
	out, err := p.runner.Run(ctx, "rpm", "-qa", "--qf", "%{NAME}\t%{VERSION}\n")
	if err != nil {
		return nil, err
	}
	return parsePackageList(out, 500), nil
}
