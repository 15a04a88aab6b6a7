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

// windowsPlatform queries CIM through PowerShell and parses the JSON
// it emits. The netsh and netstat paths stay on classic tools since
// their output is stable across Windows versions.
type windowsPlatform struct {
	runner toolexec.Runner
}

func (p *windowsPlatform) ps(ctx context.Context, command string) (string, error) {
	return p.runner.Run(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", command)
}

func (p *windowsPlatform) OSInfo(ctx context.Context) (types.OSInfo, error) {
	out, err := p.ps(ctx, `Get-CimInstance Win32_OperatingSystem | Select-Object Caption,Version | ConvertTo-Json`)
	if err != nil {
		return types.OSInfo{}, err
	}
	rows, err := decodeJSONList[struct {
		Caption string `json:"Caption"`
		Version string `json:"Version"`
	}](out)
	if err != nil || len(rows) == 0 {
		return types.OSInfo{}, err
	}
	hostname, _ := os.Hostname()
	return types.OSInfo{
		Platform: "windows",
		Name:     strings.TrimSpace(rows[0].Caption),
		Version:  rows[0].Version,
		Arch:     runtime.GOARCH,
		Hostname: hostname,
	}, nil
}

func (p *windowsPlatform) CPUInfo(ctx context.Context) (types.CPUInfo, error) {
	out, err := p.ps(ctx, `Get-CimInstance Win32_Processor | Select-Object Name,NumberOfCores | ConvertTo-Json`)
	if err != nil {
		return types.CPUInfo{}, err
	}
	rows, err := decodeJSONList[struct {
		Name          string `json:"Name"`
		NumberOfCores int    `json:"NumberOfCores"`
	}](out)
	if err != nil || len(rows) == 0 {
		return types.CPUInfo{Cores: runtime.NumCPU()}, err
	}
	cores := 0
	for _, r := range rows {
		cores += r.NumberOfCores
	}
	if cores == 0 {
		cores = runtime.NumCPU()
	}
	return types.CPUInfo{Model: strings.TrimSpace(rows[0].Name), Cores: cores}, nil
}

func (p *windowsPlatform) MemoryInfo(ctx context.Context) (types.MemoryInfo, error) {
	out, err := p.ps(ctx, `Get-CimInstance Win32_OperatingSystem | Select-Object TotalVisibleMemorySize,FreePhysicalMemory | ConvertTo-Json`)
	if err != nil {
		return types.MemoryInfo{}, err
	}
	rows, err := decodeJSONList[struct {
		TotalVisibleMemorySize uint64 `json:"TotalVisibleMemorySize"`
		FreePhysicalMemory     uint64 `json:"FreePhysicalMemory"`
	}](out)
	if err != nil || len(rows) == 0 {
		return types.MemoryInfo{}, err
	}
	return types.MemoryInfo{
		TotalBytes: rows[0].TotalVisibleMemorySize * 1024,
		FreeBytes:  rows[0].FreePhysicalMemory * 1024,
	}, nil
}

func (p *windowsPlatform) DiskInfo(ctx context.Context) ([]types.DiskInfo, error) {
	out, err := p.ps(ctx, `Get-CimInstance Win32_LogicalDisk -Filter "DriveType=3" | Select-Object DeviceID,Size,FreeSpace | ConvertTo-Json`)
	if err != nil {
		return nil, err
	}
	rows, err := decodeJSONList[struct {
		DeviceID  string `json:"DeviceID"`
		Size      uint64 `json:"Size"`
		FreeSpace uint64 `json:"FreeSpace"`
	}](out)
	if err != nil {
		return nil, err
	}
	var disks []types.DiskInfo
	for _, r := range rows {
		if r.Size == 0 {
			continue
		}
		disks = append(disks, types.DiskInfo{
			Mount:      r.DeviceID,
			Filesystem: "NTFS",
			TotalBytes: r.Size,
			FreeBytes:  r.FreeSpace,
		})
	}
	return disks, nil
}

func (p *windowsPlatform) Users(ctx context.Context) ([]types.UserAccount, int, error) {
	out, err := p.ps(ctx, `Get-LocalUser | Select-Object Name,Enabled,PasswordRequired | ConvertTo-Json`)
	if err != nil {
		return nil, 0, err
	}
	rows, err := decodeJSONList[struct {
		Name             string `json:"Name"`
		Enabled          bool   `json:"Enabled"`
		PasswordRequired bool   `json:"PasswordRequired"`
	}](out)
	if err != nil {
		return nil, 0, err
	}

	admins := map[string]bool{}
	if members, err := p.ps(ctx, `Get-LocalGroupMember Administrators | Select-Object -ExpandProperty Name`); err == nil {
		for _, line := range strings.Split(members, "\n") {
			name := strings.TrimSpace(line)
			if idx := strings.LastIndex(name, `\`); idx >= 0 {
				name = name[idx+1:]
			}
			if name != "" {
				admins[name] = true
			}
		}
	}

	var accounts []types.UserAccount
	passwordless := 0
	for _, r := range rows {
		accounts = append(accounts, types.UserAccount{
			Name:    r.Name,
			Admin:   admins[r.Name],
			NoLogin: !r.Enabled,
		})
		if r.Enabled && !r.PasswordRequired {
			passwordless++
		}
	}
	return accounts, passwordless, nil
}

func (p *windowsPlatform) Authentication(ctx context.Context) (authFacts, error) {
	out, err := p.runner.Run(ctx, "net", "accounts")
	if err != nil {
		return authFacts{}, err
	}
	policy, lockout := parseNetAccounts(out)
	return authFacts{Policy: policy, LockoutEnabled: lockout}, nil
}

func (p *windowsPlatform) Updates(ctx context.Context) (updateFacts, error) {
	out, err := p.ps(ctx, `(New-Object -ComObject Microsoft.Update.Session).CreateUpdateSearcher().Search("IsInstalled=0").Updates.Count`)
	if err != nil {
		return updateFacts{}, err
	}
	pending, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return updateFacts{}, err
	}
	facts := updateFacts{Pending: pending}
	if auto, err := p.ps(ctx, `(Get-ItemProperty "HKLM:\SOFTWARE\Policies\Microsoft\Windows\WindowsUpdate\AU" -ErrorAction SilentlyContinue).NoAutoUpdate`); err == nil {
		facts.AutoUpdate = strings.TrimSpace(auto) != "1"
	}
	return facts, nil
}

func (p *windowsPlatform) Encryption(ctx context.Context) (encryptionFacts, error) {
	out, err := p.ps(ctx, `(Get-BitLockerVolume -MountPoint $env:SystemDrive).VolumeStatus`)
	if err != nil {
		return encryptionFacts{}, err
	}
	if strings.Contains(out, "FullyEncrypted") {
		return encryptionFacts{Encrypted: true, Tool: "BitLocker"}, nil
	}
	return encryptionFacts{}, nil
}

func (p *windowsPlatform) ListeningPorts(ctx context.Context) ([]types.ListeningPort, error) {
	out, err := p.runner.Run(ctx, "netstat", "-ano")
	if err != nil {
		return nil, err
	}
	return parseNetstatListening(out), nil
}

func (p *windowsPlatform) Firewall(ctx context.Context) (types.FirewallState, error) {
	out, err := p.runner.Run(ctx, "netsh", "advfirewall", "show", "allprofiles")
	if err != nil {
		return types.FirewallState{Status: "unknown"}, err
	}
	return parseNetshFirewall(out), nil
}

func (p *windowsPlatform) SecuritySoftware(ctx context.Context) (securitySoftwareFacts, error) {
	out, err := p.ps(ctx, `Get-CimInstance -Namespace root/SecurityCenter2 -ClassName AntiVirusProduct | Select-Object displayName | ConvertTo-Json`)
	if err != nil {
		return securitySoftwareFacts{}, err
	}
	rows, err := decodeJSONList[struct {
		DisplayName string `json:"displayName"`
	}](out)
	if err != nil {
		return securitySoftwareFacts{}, err
	}
	facts := securitySoftwareFacts{}
	for _, r := range rows {
		if r.DisplayName == "" {
			continue
		}
		facts.Antivirus = append(facts.Antivirus, r.DisplayName)
		facts.Installed = append(facts.Installed, r.DisplayName)
	}
	return facts, nil
}

func (p *windowsPlatform) Processes(ctx context.Context) ([]types.ProcessInfo, error) {
	out, err := p.ps(ctx, `Get-Process | Select-Object Id,ProcessName -First 200 | ConvertTo-Json`)
	if err != nil {
		return nil, err
	}
	rows, err := decodeJSONList[struct {
		ID          int    `json:"Id"`
		ProcessName string `json:"ProcessName"`
	}](out)
	if err != nil {
		return nil, err
	}
	var procs []types.ProcessInfo
	for _, r := range rows {
		procs = append(procs, types.ProcessInfo{PID: r.ID, Name: r.ProcessName})
	}
	return procs, nil
}

func (p *windowsPlatform) Services(ctx context.Context) ([]types.ServiceInfo, error) {
	out, err := p.ps(ctx, `Get-Service | Where-Object Status -eq Running | Select-Object Name | ConvertTo-Json`)
	if err != nil {
		return nil, err
	}
	rows, err := decodeJSONList[struct {
		Name string `json:"Name"`
	}](out)
	if err != nil {
		return nil, err
	}
	var svcs []types.ServiceInfo
	for _, r := range rows {
		svcs = append(svcs, types.ServiceInfo{Name: r.Name, Status: "running"})
	}
	return svcs, nil
}

func (p *windowsPlatform) Software(ctx context.Context) ([]types.SoftwareInfo, error) {
	out, err := p.ps(ctx, `Get-ItemProperty HKLM:\Software\Microsoft\Windows\CurrentVersion\Uninstall\* | Where-Object DisplayName | Select-Object DisplayName,DisplayVersion -First 500 | ConvertTo-Json`)
	if err != nil {
		return nil, err
	}
	rows, err := decodeJSONList[struct {
		DisplayName    string `json:"DisplayName"`
		DisplayVersion string `json:"DisplayVersion"`
	}](out)
	if err != nil {
		return nil, err
	}
	var sw []types.SoftwareInfo
	for _, r := range rows {
		sw = append(sw, types.SoftwareInfo{Name: r.DisplayName, Version: r.DisplayVersion})
	}
	return sw, nil
}
