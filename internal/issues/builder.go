// Package issues re-walks raw scan data to produce fully described
// issues with remediation steps, references and effort estimates, and
// assembles the prioritized remediation plan. Like the analyzer it is
// a pure transform that never raises past its own boundary.
package issues

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// Builder constructs detailed reports from raw scan results.
type Builder struct {
	log   hclog.Logger
	newID func() string
}

// NewBuilder creates a Builder. A nil id generator defaults to UUID v4.
func NewBuilder(log hclog.Logger, newID func() string) *Builder {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	if newID == nil {
		newID = uuid.NewString
	}
	return &Builder{log: log, newID: newID}
}

// AnalyzeResults walks the five sub-processors over the raw data and
// assembles the detailed report. A panic is recovered into a
// fail-safe report carrying a single high-severity issue demanding
// manual review.
func (b *Builder) AnalyzeResults(raw *types.RawScanResult, clientID string) (report *types.DetailedReport) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("detailed analysis failed, returning fail-safe report", "panic", r)
			report = b.fallbackReport(clientID)
		}
	}()

	if raw == nil {
		return b.fallbackReport(clientID)
	}

	var all []types.Issue
	all = append(all, b.processNetwork(raw)...)
	all = append(all, b.processSystem(raw)...)
	all = append(all, b.processVulnerabilities(raw)...)
	all = append(all, b.processMalware(raw)...)
	all = append(all, b.processCompliance(raw)...)

	return &types.DetailedReport{
		ClientID:  clientID,
		Issues:    all,
		Plan:      buildPlan(all),
		RiskScore: linearRiskScore(all),
	}
}

func (b *Builder) fallbackReport(clientID string) *types.DetailedReport {
	is := b.newIssue(
		types.SeverityHigh, "configuration",
		"Automated issue analysis failed",
		"The detailed issue analysis could not complete. The security posture of this machine is unverified.",
		"Unassessed findings may hide real risk.",
		"host",
		"Perform a manual security review of this machine",
		[]string{
			"Review the agent log for the analysis failure",
			"Re-run the scan",
			"If the failure persists, inspect the machine manually",
		},
		nil,
	)
	all := []types.Issue{is}
	return &types.DetailedReport{
		ClientID:  clientID,
		Issues:    all,
		Plan:      buildPlan(all),
		RiskScore: linearRiskScore(all),
	}
}

func (b *Builder) processNetwork(raw *types.RawScanResult) []types.Issue {
	n := raw.Network
	if n == nil {
		return nil
	}
	var out []types.Issue

	if fw := n.Firewall; fw != nil && fw.Error == "" && fw.Status == "off" {
		out = append(out, b.newIssue(
			types.SeverityHigh, "firewall",
			"Network firewall disabled",
			"The firewall protecting this network segment is turned off, leaving every host service directly reachable.",
			"An attacker on the segment can reach every listening service on every host.",
			"network firewall",
			"Enable the firewall with a default-deny inbound policy",
			[]string{
				"Enable the firewall service",
				"Configure a default-deny inbound policy",
				"Add explicit allow rules for required services only",
				"Verify connectivity of required services still works",
			},
			nil,
		))
	}

	hosts := make([]string, 0, len(n.Services))
	for host := range n.Services {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)
	for _, host := range hosts {
		for _, svc := range n.Services[host] {
			if !svc.Sensitive {
				continue
			}
			out = append(out, b.newIssue(
				types.SeverityHigh, "network",
				fmt.Sprintf("Exposed %s service on %s", svc.Name, host),
				fmt.Sprintf("Port %d (%s) accepts connections on %s. This service class is a frequent initial-access vector.", svc.Port, svc.Name, host),
				"Exposed management and database services allow credential attacks and direct data access.",
				fmt.Sprintf("%s:%d", host, svc.Port),
				fmt.Sprintf("Close port %d or restrict the %s service to trusted sources", svc.Port, svc.Name),
				[]string{
					fmt.Sprintf("Identify the process listening on port %d", svc.Port),
					"Disable the service if it is not required",
					"Otherwise restrict access with firewall rules or a VPN",
					"Enforce strong authentication on the service",
				},
				nil,
			))
		}
	}

	unknown := 0
	for _, d := range n.Devices {
		if d.Hostname == "" && d.Vendor == "" {
			unknown++
		}
	}
	if unknown > 0 {
		out = append(out, b.newIssue(
			types.SeverityLow, "devices",
			"Unidentified devices on the network",
			fmt.Sprintf("%d device(s) on the local segment could not be identified by hostname or vendor.", unknown),
			"Unidentified devices may be unauthorized or compromised equipment.",
			"local subnet",
			"Identify every device on the network and remove unauthorized ones",
			[]string{
				"Cross-reference discovered devices against the asset inventory",
				"Physically locate devices that cannot be identified",
				"Remove or isolate unauthorized devices",
			},
			nil,
		))
	}

	if w := n.WirelessSecurity; w != nil && w.Error == "" {
		switch strings.ToUpper(w.Security) {
		case "WEP", "WPA":
			out = append(out, b.newIssue(
				types.SeverityHigh, "wireless",
				fmt.Sprintf("Wireless network uses legacy %s encryption", strings.ToUpper(w.Security)),
				fmt.Sprintf("The wireless network %q uses %s, which is cryptographically broken.", w.SSID, strings.ToUpper(w.Security)),
				"Wireless traffic can be decrypted and the network key recovered by a nearby attacker.",
				w.SSID,
				"Reconfigure the wireless network to WPA2 or WPA3",
				[]string{
					"Update the access point firmware",
					"Switch the security mode to WPA2-AES or WPA3",
					"Rotate the wireless passphrase",
					"Reconnect clients and disable legacy fallback modes",
				},
				nil,
			))
		case "OPEN", "NONE":
			out = append(out, b.newIssue(
				types.SeverityCritical, "wireless",
				"Unencrypted wireless network",
				fmt.Sprintf("The wireless network %q has no encryption.", w.SSID),
				"All wireless traffic is readable by anyone in radio range.",
				w.SSID,
				"Enable WPA2 or WPA3 encryption on the wireless network",
				[]string{
					"Enable WPA2-AES or WPA3 on the access point",
					"Set a strong passphrase",
					"Reconnect all clients",
				},
				nil,
			))
		}
	}

	return out
}

func (b *Builder) processSystem(raw *types.RawScanResult) []types.Issue {
	cfg := raw.Config
	if cfg == nil {
		return nil
	}
	var out []types.Issue

	if fw := cfg.FirewallConfig; fw != nil && fw.Error == "" && !fw.FirewallStatus.Enabled {
		out = append(out, b.newIssue(
			types.SeverityHigh, "configuration",
			"Host firewall disabled",
			"The host firewall is not active on this machine.",
			"Every listening service is directly reachable from the network.",
			"host firewall",
			"Enable the host firewall and restrict inbound traffic to required services",
			[]string{
				"Enable the platform firewall (Windows Defender Firewall, ufw, or the macOS application firewall)",
				"Set the inbound policy to deny by default",
				"Allow only the services this machine must expose",
			},
			nil,
		))
	}

	if ss := cfg.SecuritySoftware; ss != nil && ss.Error == "" && len(ss.Antivirus) == 0 {
		out = append(out, b.newIssue(
			types.SeverityHigh, "configuration",
			"No antivirus software installed",
			"No antivirus or endpoint protection product was found.",
			"Commodity malware will run undetected on this machine.",
			"security software",
			"Install and enable an antivirus or endpoint protection product",
			[]string{
				"Select an endpoint protection product appropriate for the platform",
				"Install it and enable real-time protection",
				"Run an initial full scan",
			},
			nil,
		))
	}

	if u := cfg.Users; u != nil && u.Error == "" && u.PasswordlessCount > 0 {
		out = append(out, b.newIssue(
			types.SeverityHigh, "configuration",
			"Accounts without a password",
			fmt.Sprintf("%d account(s) can log in without a password.", u.PasswordlessCount),
			"Anyone with physical or network access can use these accounts.",
			"user accounts",
			"Set a password on every login-capable account or disable the account",
			[]string{
				"List all accounts with an empty password",
				"Set a strong password or disable each account",
				"Audit recent logins of the affected accounts",
			},
			nil,
		))
	}

	if up := cfg.Updates; up != nil && up.Error == "" && up.PendingSecurity > 0 {
		sev := types.SeverityMedium
		if up.PendingSecurity > 5 {
			sev = types.SeverityHigh
		}
		out = append(out, b.newIssue(
			sev, "updates",
			"Pending security updates",
			fmt.Sprintf("%d security update(s) are available but not installed.", up.PendingSecurity),
			"Known, patched vulnerabilities remain exploitable on this machine.",
			"system updates",
			"Install all pending security updates",
			[]string{
				"Back up the system or snapshot critical data",
				"Install all pending security updates",
				"Reboot if required",
				"Enable automatic security updates",
			},
			nil,
		))
	}

	if enc := cfg.Encryption; enc != nil && enc.Error == "" && !enc.DiskEncrypted {
		out = append(out, b.newIssue(
			types.SeverityMedium, "encryption",
			"Disk encryption disabled",
			"The system disk is not encrypted.",
			"Data on the disk is readable if the device is lost, stolen, or its disk removed.",
			"system disk",
			"Enable full-disk encryption (BitLocker, FileVault or LUKS)",
			[]string{
				"Enable the platform disk encryption feature",
				"Store the recovery key in managed escrow",
				"Verify encryption status after the initial pass completes",
			},
			nil,
		))
	}

	return out
}

func (b *Builder) processVulnerabilities(raw *types.RawScanResult) []types.Issue {
	v := raw.Vulnerabilities
	if v == nil {
		return nil
	}
	var out []types.Issue

	for _, f := range v.Findings {
		rec := "Update the affected component to a patched version"
		if f.FixedIn != "" {
			rec = fmt.Sprintf("Update %s to version %s or later", f.Component, f.FixedIn)
		}
		out = append(out, b.newIssue(
			f.Severity, "vulnerabilities",
			f.Title,
			f.Description,
			fmt.Sprintf("A known vulnerability in %s is exploitable on this machine.", f.Component),
			f.Component,
			rec,
			[]string{
				fmt.Sprintf("Confirm the installed version of %s", f.Component),
				"Apply the vendor patch or upgrade",
				"Restart the affected service",
				"Re-scan to confirm the vulnerability is resolved",
			},
			f.CVEIDs,
		))
	}

	return out
}

func (b *Builder) processMalware(raw *types.RawScanResult) []types.Issue {
	m := raw.Malware
	if m == nil {
		return nil
	}
	var out []types.Issue

	for _, f := range m.Findings {
		sev := types.SeverityHigh
		if strings.EqualFold(f.Type, "rootkit") {
			sev = types.SeverityCritical
		}
		out = append(out, b.newIssue(
			sev, "malware",
			fmt.Sprintf("Malware found: %s", f.Name),
			fmt.Sprintf("A file of type %q matching a known malware signature was found at %s.", f.Type, f.Path),
			"The machine may be under an attacker's control.",
			f.Path,
			"Quarantine the file and investigate how it was introduced",
			[]string{
				"Isolate the machine from the network",
				fmt.Sprintf("Quarantine the file at %s", f.Path),
				"Run a full antivirus scan",
				"Investigate the infection vector before restoring connectivity",
			},
			nil,
		))
	}

	for _, p := range m.PersistenceMechanisms {
		out = append(out, b.newIssue(
			types.SeverityHigh, "malware",
			fmt.Sprintf("Suspicious persistence: %s", p.Type),
			fmt.Sprintf("An autostart entry of unknown origin was found at %s.", p.Location),
			"The entry re-launches attacker code at every boot or login.",
			p.Location,
			"Remove the unrecognized autostart entry and investigate its origin",
			[]string{
				fmt.Sprintf("Inspect the entry at %s", p.Location),
				"Remove the entry if it cannot be attributed to installed software",
				"Check for the binary it referenced and quarantine it",
			},
			nil,
		))
	}

	if s := m.Suspicious; s != nil && len(s.Connections) > 0 {
		out = append(out, b.newIssue(
			types.SeverityHigh, "malware",
			"Suspicious outbound connections",
			fmt.Sprintf("%d outbound connection(s) to flagged destinations are active.", len(s.Connections)),
			"Active connections to flagged destinations indicate possible command-and-control traffic.",
			"network connections",
			"Investigate the flagged connections and block their destinations",
			[]string{
				"Capture the current connection table",
				"Identify the owning process of each flagged connection",
				"Block the destinations at the firewall",
				"Investigate the owning processes",
			},
			nil,
		))
	}

	return out
}

func (b *Builder) processCompliance(raw *types.RawScanResult) []types.Issue {
	c := raw.Compliance
	if c == nil {
		return nil
	}
	var out []types.Issue

	frameworks := []struct {
		name   string
		status *types.ComplianceStatus
	}{
		{"GDPR", c.GDPR},
		{"HIPAA", c.HIPAA},
		{"ISO 27001", c.ISO27001},
		{"PCI DSS", c.PCI},
	}

	for _, fw := range frameworks {
		if fw.status == nil || fw.status.Compliant {
			continue
		}
		desc := fmt.Sprintf("The machine does not meet the assessed %s controls.", fw.name)
		if len(fw.status.Gaps) > 0 {
			desc = fmt.Sprintf("%d control gap(s) were found against %s: %s.", len(fw.status.Gaps), fw.name, strings.Join(fw.status.Gaps, "; "))
		}
		out = append(out, b.newIssue(
			types.SeverityMedium, "compliance",
			fmt.Sprintf("%s compliance gaps", fw.name),
			desc,
			"Non-compliance exposes the organization to regulatory and contractual risk.",
			fw.name,
			fmt.Sprintf("Address the identified %s control gaps", fw.name),
			[]string{
				"Review each identified control gap",
				"Assign an owner and deadline per gap",
				"Implement the missing controls",
				"Re-run the compliance assessment",
			},
			nil,
		))
	}

	return out
}
