package system

import (
	"context"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/Jjustmee23/CyberShieldX-sub000/internal/toolexec"
	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// darwinPlatform shells out to the macOS admin tools. Several checks
// need elevated privileges; the ones that fail degrade individually.
type darwinPlatform struct {
	runner toolexec.Runner
}

func (p *darwinPlatform) OSInfo(ctx context.Context) (types.OSInfo, error) {
	name, err := p.runner.Run(ctx, "sw_vers", "-productName")
	if err != nil {
		return types.OSInfo{}, err
	}
	version, _ := p.runner.Run(ctx, "sw_vers", "-productVersion")
	hostname, _ := os.Hostname()
	return types.OSInfo{
		Platform: "darwin",
		Name:     strings.TrimSpace(name),
		Version:  strings.TrimSpace(version),
		Arch:     runtime.GOARCH,
		Hostname: hostname,
	}, nil
}

func (p *darwinPlatform) CPUInfo(ctx context.Context) (types.CPUInfo, error) {
	info := types.CPUInfo{Cores: runtime.NumCPU()}
	model, err := p.runner.Run(ctx, "sysctl", "-n", "machdep.cpu.brand_string")
	if err != nil {
		return info, err
	}
	info.Model = strings.TrimSpace(model)
	if out, err := p.runner.Run(ctx, "sysctl", "-n", "vm.loadavg"); err == nil {
		info.LoadAvg = parseSysctlLoadAvg(out)
	}
	return info, nil
}

func (p *darwinPlatform) MemoryInfo(ctx context.Context) (types.MemoryInfo, error) {
	out, err := p.runner.Run(ctx, "sysctl", "-n", "hw.memsize")
	if err != nil {
		return types.MemoryInfo{}, err
	}
	total, err := strconv.ParseUint(strings.TrimSpace(out), 10, 64)
	if err != nil {
		return types.MemoryInfo{}, err
	}
	return types.MemoryInfo{TotalBytes: total}, nil
}

func (p *darwinPlatform) DiskInfo(ctx context.Context) ([]types.DiskInfo, error) {
	out, err := p.runner.Run(ctx, "df", "-kP")
	if err != nil {
		return nil, err
	}
	return parseDf(out), nil
}

func (p *darwinPlatform) Users(ctx context.Context) ([]types.UserAccount, int, error) {
	out, err := p.runner.Run(ctx, "dscl", ".", "-list", "/Users", "UniqueID")
	if err != nil {
		return nil, 0, err
	}
	accounts := parseDsclUsers(out)

	if members, err := p.runner.Run(ctx, "dscl", ".", "-read", "/Groups/admin", "GroupMembership"); err == nil {
		admins := map[string]bool{}
		for _, name := range parseDsclGroupMembership(members) {
			admins[name] = true
		}
		for i := range accounts {
			if admins[accounts[i].Name] {
				accounts[i].Admin = true
			}
		}
	}

	// Passwordless detection needs directory-service queries per user
	// and admin rights; reported as 0 when unavailable.
	return accounts, 0, nil
}

func (p *darwinPlatform) Authentication(ctx context.Context) (authFacts, error) {
	out, err := p.runner.Run(ctx, "pwpolicy", "-getglobalpolicy")
	if err != nil {
		return authFacts{}, err
	}
	policy := parsePwpolicy(out)
	return authFacts{Policy: policy, LockoutEnabled: strings.Contains(out, "maxFailedLoginAttempts")}, nil
}

func (p *darwinPlatform) Updates(ctx context.Context) (updateFacts, error) {
	out, err := p.runner.Run(ctx, "softwareupdate", "-l", "--no-scan")
	if err != nil {
		// --no-scan is not accepted on every release.
		out, err = p.runner.Run(ctx, "softwareupdate", "-l")
		if err != nil {
			return updateFacts{}, err
		}
	}
	pending, security := parseSoftwareUpdateList(out)
	facts := updateFacts{Pending: pending, Security: security}
	if auto, err := p.runner.Run(ctx, "defaults", "read",
		"/Library/Preferences/com.apple.SoftwareUpdate", "AutomaticCheckEnabled"); err == nil {
		facts.AutoUpdate = strings.TrimSpace(auto) == "1"
	}
	return facts, nil
}

func (p *darwinPlatform) Encryption(ctx context.Context) (encryptionFacts, error) {
	out, err := p.runner.Run(ctx, "fdesetup", "status")
	if err != nil {
		return encryptionFacts{}, err
	}
	if strings.Contains(out, "FileVault is On") {
		return encryptionFacts{Encrypted: true, Tool: "FileVault"}, nil
	}
	return encryptionFacts{}, nil
}

func (p *darwinPlatform) ListeningPorts(ctx context.Context) ([]types.ListeningPort, error) {
	out, err := p.runner.Run(ctx, "lsof", "-nP", "-iTCP", "-sTCP:LISTEN")
	if err != nil {
		return nil, err
	}
	return parseLsofListening(out), nil
}

func (p *darwinPlatform) Firewall(ctx context.Context) (types.FirewallState, error) {
	out, err := p.runner.Run(ctx, "/usr/libexec/ApplicationFirewall/socketfilterfw", "--getglobalstate")
	if err != nil {
		return types.FirewallState{Status: "unknown"}, err
	}
	enabled := strings.Contains(strings.ToLower(out), "enabled")
	state := types.FirewallState{Enabled: enabled, Status: "off", Profile: "application firewall"}
	if enabled {
		state.Status = "on"
	}
	return state, nil
}

func (p *darwinPlatform) SecuritySoftware(ctx context.Context) (securitySoftwareFacts, error) {
	out, err := p.runner.Run(ctx, "ls", "/Applications")
	if err != nil {
		return securitySoftwareFacts{}, err
	}
	return matchSecurityTools(strings.Split(out, "\n")), nil
}

func (p *darwinPlatform) Processes(ctx context.Context) ([]types.ProcessInfo, error) {
	out, err := p.runner.Run(ctx, "ps", "axo", "pid,user,comm")
	if err != nil {
		return nil, err
	}
	return parsePS(out, 200), nil
}

func (p *darwinPlatform) Services(ctx context.Context) ([]types.ServiceInfo, error) {
	out, err := p.runner.Run(ctx, "launchctl", "list")
	if err != nil {
		return nil, err
	}
	return parseLaunchctlList(out), nil
}

func (p *darwinPlatform) Software(ctx context.Context) ([]types.SoftwareInfo, error) {
	out, err := p.runner.Run(ctx, "ls", "/Applications")
	if err != nil {
		return nil, err
	}
	var sw []types.SoftwareInfo
	for _, line := range strings.Split(out, "\n") {
		name := strings.TrimSuffix(strings.TrimSpace(line), ".app")
		if name == "" || name == line {
			continue
		}
		sw = append(sw, types.SoftwareInfo{Name: name})
	}
	return sw, nil
}
