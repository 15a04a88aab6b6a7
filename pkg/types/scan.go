// Package types defines the shared data model of the scan-to-report
// pipeline: raw collector output, the issue taxonomy, and the final
// report contract consumed by the persistence layer.
package types

import "time"

// ScanType selects which collectors and analyzer branches run.
type ScanType string

const (
	ScanQuick   ScanType = "quick"
	ScanSystem  ScanType = "system"
	ScanNetwork ScanType = "network"
	ScanFull    ScanType = "full"
)

// ValidScanType reports whether s is one of the four supported scan types.
func ValidScanType(s ScanType) bool {
	switch s {
	case ScanQuick, ScanSystem, ScanNetwork, ScanFull:
		return true
	}
	return false
}

// RawScanResult is the combined collector output for one scan. A nil
// sub-object means that area was not assessed; consumers must never
// read absence as "zero risk". The structure is immutable once a
// collector hands it off.
type RawScanResult struct {
	ScanType        ScanType             `json:"scanType"`
	System          *SystemInfo          `json:"system,omitempty"`
	Config          *SecurityConfig      `json:"config,omitempty"`
	Network         *NetworkInfo         `json:"network,omitempty"`
	Vulnerabilities *VulnerabilityResult `json:"vulnerabilities,omitempty"`
	Malware         *MalwareResult       `json:"malware,omitempty"`
	Compliance      *ComplianceResult    `json:"compliance,omitempty"`
}

// SystemInfo is the system collector's output. Basic mode fills OS,
// CPU, Memory and Disks only; detailed mode adds the enumerations.
type SystemInfo struct {
	OS        OSInfo         `json:"os"`
	CPU       CPUInfo        `json:"cpu"`
	Memory    MemoryInfo     `json:"memory"`
	Disks     []DiskInfo     `json:"disk"`
	Processes []ProcessInfo  `json:"processes,omitempty"`
	Services  []ServiceInfo  `json:"services,omitempty"`
	Software  []SoftwareInfo `json:"software,omitempty"`
	Error     string         `json:"error,omitempty"`
}

type OSInfo struct {
	Platform string `json:"platform"`
	Name     string `json:"name"`
	Version  string `json:"version"`
	Arch     string `json:"arch"`
	Hostname string `json:"hostname"`
}

type CPUInfo struct {
	Model   string  `json:"model"`
	Cores   int     `json:"cores"`
	LoadAvg float64 `json:"loadAvg,omitempty"`
}

type MemoryInfo struct {
	TotalBytes uint64 `json:"totalBytes"`
	FreeBytes  uint64 `json:"freeBytes"`
}

type DiskInfo struct {
	Mount      string `json:"mount"`
	Filesystem string `json:"filesystem,omitempty"`
	TotalBytes uint64 `json:"totalBytes"`
	FreeBytes  uint64 `json:"freeBytes"`
}

type ProcessInfo struct {
	PID     int    `json:"pid"`
	Name    string `json:"name"`
	User    string `json:"user,omitempty"`
	Command string `json:"command,omitempty"`
}

type ServiceInfo struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

type SoftwareInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// CheckResult is the uniform core of every security-configuration
// check. A check whose platform command failed carries Score 0,
// Rating "unknown" and a non-empty Error; sibling checks are not
// affected.
type CheckResult struct {
	Score  int    `json:"score"`
	Rating string `json:"rating"`
	Error  string `json:"error,omitempty"`
}

// Check ratings derived from fixed score thresholds.
const (
	RatingGood    = "good"
	RatingFair    = "fair"
	RatingPoor    = "poor"
	RatingUnknown = "unknown"
)

// RatingFor maps a 0-100 check score onto a rating label.
func RatingFor(score int) string {
	switch {
	case score >= 80:
		return RatingGood
	case score >= 50:
		return RatingFair
	default:
		return RatingPoor
	}
}

// SecurityConfig groups the seven configuration checks of a detailed
// system scan. Any nil check was not assessed on this platform.
type SecurityConfig struct {
	Users            *UsersCheck            `json:"users,omitempty"`
	Authentication   *AuthCheck             `json:"authentication,omitempty"`
	Updates          *UpdatesCheck          `json:"updates,omitempty"`
	Encryption       *EncryptionCheck       `json:"encryption,omitempty"`
	NetworkConfig    *NetworkConfigCheck    `json:"networkConfig,omitempty"`
	FirewallConfig   *FirewallCheck         `json:"firewallConfig,omitempty"`
	SecuritySoftware *SecuritySoftwareCheck `json:"securitySoftware,omitempty"`
}

type UserAccount struct {
	Name     string `json:"name"`
	UID      string `json:"uid,omitempty"`
	Admin    bool   `json:"admin"`
	NoLogin  bool   `json:"noLogin,omitempty"`
	LastSeen string `json:"lastSeen,omitempty"`
}

type UsersCheck struct {
	CheckResult
	Accounts          []UserAccount `json:"accounts,omitempty"`
	AdminCount        int           `json:"adminCount"`
	PasswordlessCount int           `json:"passwordlessCount"`
}

type PasswordPolicy struct {
	MinLength      int  `json:"minLength"`
	MaxAgeDays     int  `json:"maxAgeDays,omitempty"`
	RequireComplex bool `json:"requireComplex"`
}

type AuthCheck struct {
	CheckResult
	PasswordPolicy PasswordPolicy `json:"passwordPolicy"`
	LockoutEnabled bool           `json:"lockoutEnabled"`
}

type UpdatesCheck struct {
	CheckResult
	PendingUpdates  int    `json:"pendingUpdates"`
	PendingSecurity int    `json:"pendingSecurity"`
	AutoUpdate      bool   `json:"autoUpdate"`
	LastUpdate      string `json:"lastUpdate,omitempty"`
}

type EncryptionCheck struct {
	CheckResult
	DiskEncrypted bool   `json:"diskEncrypted"`
	Tool          string `json:"tool,omitempty"`
}

type ListeningPort struct {
	Port    int    `json:"port"`
	Proto   string `json:"proto"`
	Process string `json:"process,omitempty"`
}

type NetInterface struct {
	Name    string `json:"name"`
	IP      string `json:"ip,omitempty"`
	MAC     string `json:"mac,omitempty"`
	Netmask string `json:"netmask,omitempty"`
}

type NetworkConfigCheck struct {
	CheckResult
	ListeningPorts []ListeningPort `json:"listeningPorts,omitempty"`
	Interfaces     []NetInterface  `json:"interfaces,omitempty"`
}

// FirewallState is shared between the system configuration check and
// the network collector. Status is "on", "off" or "unknown".
type FirewallState struct {
	Enabled bool   `json:"enabled"`
	Status  string `json:"status"`
	Profile string `json:"profile,omitempty"`
	Error   string `json:"error,omitempty"`
}

type FirewallCheck struct {
	CheckResult
	FirewallStatus FirewallState `json:"firewallStatus"`
}

type SecuritySoftwareCheck struct {
	CheckResult
	Antivirus []string `json:"antivirus,omitempty"`
	Installed []string `json:"installed,omitempty"`
}

// NetworkInfo is the network collector's output.
type NetworkInfo struct {
	Devices          []Device             `json:"devices,omitempty"`
	Services         map[string][]Service `json:"services,omitempty"`
	Firewall         *FirewallState       `json:"firewall,omitempty"`
	WirelessSecurity *WirelessInfo        `json:"wirelessSecurity,omitempty"`
	Interfaces       []NetInterface       `json:"interfaces,omitempty"`
	Subnet           string               `json:"subnet,omitempty"`
	Error            string               `json:"error,omitempty"`
}

// Device is one discovered host. Source records which discovery
// strategy produced it ("probe", "nmap" or "arp").
type Device struct {
	IP       string `json:"ip"`
	MAC      string `json:"mac,omitempty"`
	Hostname string `json:"hostname,omitempty"`
	Vendor   string `json:"vendor,omitempty"`
	Source   string `json:"source,omitempty"`
	Error    string `json:"error,omitempty"`
}

type Service struct {
	Port      int    `json:"port"`
	Protocol  string `json:"protocol"`
	Name      string `json:"name"`
	Banner    string `json:"banner,omitempty"`
	Version   string `json:"version,omitempty"`
	Sensitive bool   `json:"sensitive"`
}

// PortSnapshot is the fast common-port probe of a quick scan.
type PortSnapshot struct {
	Host      string    `json:"host"`
	OpenPorts []Service `json:"openPorts"`
	ScannedAt time.Time `json:"scannedAt"`
	Error     string    `json:"error,omitempty"`
}

type WirelessInfo struct {
	SSID     string `json:"ssid,omitempty"`
	Security string `json:"security"`
	Error    string `json:"error,omitempty"`
}

// VulnerabilityResult carries findings from an external vulnerability
// assessment collaborator.
type VulnerabilityResult struct {
	Findings []Vulnerability `json:"findings,omitempty"`
	Summary  VulnSummary     `json:"summary"`
}

type Vulnerability struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Severity    Severity `json:"severity"`
	CVEIDs      []string `json:"cveIds,omitempty"`
	CVSS        float64  `json:"cvss,omitempty"`
	Component   string   `json:"component,omitempty"`
	FixedIn     string   `json:"fixedIn,omitempty"`
}

type VulnSummary struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// MalwareResult carries findings from an external malware scan
// collaborator, used by the full-scan breach correlation.
type MalwareResult struct {
	Findings              []MalwareFinding       `json:"findings,omitempty"`
	PersistenceMechanisms []PersistenceMechanism `json:"persistenceMechanisms,omitempty"`
	Suspicious            *SuspiciousActivity    `json:"suspicious,omitempty"`
}

type MalwareFinding struct {
	Path string `json:"path"`
	Name string `json:"name"`
	Type string `json:"type"`
	Hash string `json:"hash,omitempty"`
}

type PersistenceMechanism struct {
	Type     string `json:"type"`
	Location string `json:"location"`
	Value    string `json:"value,omitempty"`
}

type SuspiciousActivity struct {
	Connections         []SuspiciousConnection `json:"connections,omitempty"`
	Processes           []SuspiciousProcess    `json:"processes,omitempty"`
	SystemModifications []string               `json:"systemModifications,omitempty"`
}

type SuspiciousConnection struct {
	RemoteAddr string `json:"remoteAddr"`
	Port       int    `json:"port"`
	Process    string `json:"process,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

type SuspiciousProcess struct {
	PID    int    `json:"pid"`
	Name   string `json:"name"`
	Reason string `json:"reason,omitempty"`
}

// ComplianceResult carries per-framework compliance sub-results.
type ComplianceResult struct {
	GDPR     *ComplianceStatus `json:"gdpr,omitempty"`
	ISO27001 *ComplianceStatus `json:"iso27001,omitempty"`
	PCI      *ComplianceStatus `json:"pci,omitempty"`
	HIPAA    *ComplianceStatus `json:"hipaa,omitempty"`
}

type ComplianceStatus struct {
	Compliant bool     `json:"compliant"`
	Score     int      `json:"score"`
	Gaps      []string `json:"gaps,omitempty"`
}
