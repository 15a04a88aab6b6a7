// Package analyzer classifies raw collector output into the
// four-level issue taxonomy and computes per-category and overall
// risk scores. It is a pure, synchronous transform: no I/O, no
// concurrency, and it never raises past its own boundary — any
// internal failure yields a fail-safe analysis biased toward
// overstating risk.
package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// Fixed point penalties per detected condition.
const (
	penaltyFirewallDisabled   = 25
	penaltyNoAntivirus        = 25
	penaltyPasswordlessUsers  = 20
	penaltyManyAdmins         = 10
	penaltyWeakPasswordPolicy = 15
	penaltySecurityUpdates    = 20
	penaltyAutoUpdateOff      = 10
	penaltyDiskUnencrypted    = 20
	penaltySensitiveListening = 15
	penaltySensitiveService   = 20
	penaltyUnknownDevice      = 5
	penaltyWirelessWEP        = 30
	penaltyWirelessOpen       = 40
	penaltyWirelessWPA1       = 15
	penaltyPersistence        = 15
	penaltySuspiciousConns    = 15
	penaltySuspiciousProcs    = 10
	penaltyNonCompliant       = 10
)

// breachRecommendation leads the recommendation list whenever the
// breach-indicator correlation fires.
const breachRecommendation = "Possible active security breach detected - isolate this machine from the network and start incident response immediately"

// Analyzer turns a RawScanResult into an Analysis.
type Analyzer struct {
	log   hclog.Logger
	newID func() string
}

// New creates an Analyzer. A nil id generator defaults to UUID v4.
func New(log hclog.Logger, newID func() string) *Analyzer {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	if newID == nil {
		newID = uuid.NewString
	}
	return &Analyzer{log: log, newID: newID}
}

// Analyze dispatches on the scan type and builds the analysis. Any
// panic during analysis is recovered into the fail-safe result.
func (a *Analyzer) Analyze(raw *types.RawScanResult) (analysis *types.Analysis) {
	scanType := types.ScanQuick
	if raw != nil {
		scanType = raw.ScanType
	}
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("analysis failed, returning fail-safe result", "panic", r)
			analysis = FallbackAnalysis(scanType)
		}
	}()

	if raw == nil {
		return FallbackAnalysis(scanType)
	}

	var scores map[string]int
	var issues []types.Issue

	switch raw.ScanType {
	case types.ScanQuick:
		scores, issues = a.analyzeQuick(raw)
	case types.ScanSystem:
		scores, issues = a.analyzeSystem(raw)
	case types.ScanNetwork:
		scores, issues = a.analyzeNetwork(raw)
	case types.ScanFull:
		scores, issues = a.analyzeFull(raw)
	default:
		scores = map[string]int{}
	}

	return a.assemble(raw.ScanType, scores, issues)
}

// FallbackAnalysis is the fixed fail-safe result: maximum risk and a
// single manual-investigation recommendation.
func FallbackAnalysis(scanType types.ScanType) *types.Analysis {
	return &types.Analysis{
		RiskScores: types.RiskScoreSet{
			Categories: map[string]int{"analysis": 100},
			Overall:    100,
		},
		Issues: types.IssuesBySeverity{},
		Recommendations: []string{
			"Automated analysis failed - a manual security investigation is required",
		},
		Summary: types.AnalysisSummary{
			RiskLevel: types.RiskHigh,
			ScanType:  scanType,
		},
	}
}

// assemble buckets issues by severity, derives recommendations from
// issue order, deduplicates them, and computes the summary. The
// summary risk level starts from the pure overall-score mapping and
// is floored at medium when high issues exist and at high when
// critical issues exist.
func (a *Analyzer) assemble(scanType types.ScanType, scores map[string]int, issues []types.Issue) *types.Analysis {
	buckets := bucketIssues(issues)

	var recs []string
	for _, list := range [][]types.Issue{buckets.Critical, buckets.High, buckets.Medium, buckets.Low} {
		for _, is := range list {
			if is.Recommendation != "" {
				recs = append(recs, is.Recommendation)
			}
		}
	}

	overall := OverallScore(scores)
	level := RiskLevel(overall)
	if len(buckets.Critical) > 0 {
		level = types.RiskHigh
	} else if len(buckets.High) > 0 && level == types.RiskLow {
		level = types.RiskMedium
	}

	return &types.Analysis{
		RiskScores: types.RiskScoreSet{
			Categories: scores,
			Overall:    overall,
		},
		Issues:          buckets,
		Recommendations: dedupeRecommendations(recs),
		Summary: types.AnalysisSummary{
			RiskLevel:   level,
			TotalIssues: buckets.Count(),
			ScanType:    scanType,
		},
	}
}

func bucketIssues(issues []types.Issue) types.IssuesBySeverity {
	var b types.IssuesBySeverity
	for _, is := range issues {
		switch is.Severity {
		case types.SeverityCritical:
			b.Critical = append(b.Critical, is)
		case types.SeverityHigh:
			b.High = append(b.High, is)
		case types.SeverityMedium:
			b.Medium = append(b.Medium, is)
		default:
			b.Low = append(b.Low, is)
		}
	}
	return b
}

func (a *Analyzer) issue(sev types.Severity, category, title, description, location, recommendation string) types.Issue {
	return types.Issue{
		ID:             a.newID(),
		Title:          title,
		Description:    description,
		Severity:       sev,
		Category:       category,
		Location:       location,
		Recommendation: recommendation,
	}
}

// analyzeQuick covers the bounded quick scan: basic host facts plus
// the common-port snapshot. Scores are clamped at 100.
func (a *Analyzer) analyzeQuick(raw *types.RawScanResult) (map[string]int, []types.Issue) {
	scores := map[string]int{}
	var issues []types.Issue

	if raw.Network != nil {
		for host, services := range raw.Network.Services {
			for _, svc := range services {
				if !svc.Sensitive {
					continue
				}
				scores["network"] += penaltySensitiveListening
				issues = append(issues, a.issue(
					types.SeverityMedium, "network",
					fmt.Sprintf("Sensitive port open: %d (%s)", svc.Port, svc.Name),
					fmt.Sprintf("Port %d (%s) is open on %s and exposes a service that is a common attack target.", svc.Port, svc.Name, host),
					host,
					fmt.Sprintf("Close port %d or restrict access to the %s service", svc.Port, svc.Name),
				))
			}
		}
	}

	for k, v := range scores {
		scores[k] = clamp100(v)
	}
	return scores, issues
}

// analyzeSystem walks the seven configuration checks. A check that
// carries an error was not assessed and contributes nothing — absence
// is never read as zero risk. Scores are clamped at 100.
func (a *Analyzer) analyzeSystem(raw *types.RawScanResult) (map[string]int, []types.Issue) {
	scores := map[string]int{}
	var issues []types.Issue

	cfg := raw.Config
	if cfg == nil {
		return scores, issues
	}

	if fw := cfg.FirewallConfig; fw != nil && fw.Error == "" && !fw.FirewallStatus.Enabled {
		scores["configuration"] += penaltyFirewallDisabled
		issues = append(issues, a.issue(
			types.SeverityHigh, "configuration",
			"Firewall disabled",
			"The host firewall is not active. All listening services are directly reachable from the network.",
			"host firewall",
			"Enable the host firewall and restrict inbound traffic to required services",
		))
	}

	if ss := cfg.SecuritySoftware; ss != nil && ss.Error == "" && len(ss.Antivirus) == 0 {
		scores["configuration"] += penaltyNoAntivirus
		issues = append(issues, a.issue(
			types.SeverityHigh, "configuration",
			"No antivirus software detected",
			"No installed antivirus or endpoint protection product was found on this system.",
			"security software",
			"Install and enable an antivirus or endpoint protection product",
		))
	}

	if u := cfg.Users; u != nil && u.Error == "" {
		if u.PasswordlessCount > 0 {
			scores["configuration"] += penaltyPasswordlessUsers
			issues = append(issues, a.issue(
				types.SeverityHigh, "configuration",
				"Accounts without a password",
				fmt.Sprintf("%d account(s) can log in without a password.", u.PasswordlessCount),
				"user accounts",
				"Set a password on every login-capable account or disable the account",
			))
		}
		if u.AdminCount > 3 {
			scores["configuration"] += penaltyManyAdmins
			issues = append(issues, a.issue(
				types.SeverityMedium, "configuration",
				"Excessive administrator accounts",
				fmt.Sprintf("%d accounts hold administrative privileges.", u.AdminCount),
				"user accounts",
				"Reduce the number of administrator accounts to the minimum required",
			))
		}
	}

	if auth := cfg.Authentication; auth != nil && auth.Error == "" && auth.PasswordPolicy.MinLength > 0 && auth.PasswordPolicy.MinLength < 8 {
		scores["configuration"] += penaltyWeakPasswordPolicy
		issues = append(issues, a.issue(
			types.SeverityMedium, "configuration",
			"Weak password policy",
			fmt.Sprintf("The minimum password length is %d characters.", auth.PasswordPolicy.MinLength),
			"authentication policy",
			"Require passwords of at least 8 characters and enable complexity rules",
		))
	}

	if up := cfg.Updates; up != nil && up.Error == "" {
		if up.PendingSecurity > 0 {
			scores["updates"] += penaltySecurityUpdates
			sev := types.SeverityMedium
			if up.PendingSecurity > 5 {
				sev = types.SeverityHigh
			}
			issues = append(issues, a.issue(
				sev, "updates",
				"Pending security updates",
				fmt.Sprintf("%d security update(s) are available but not installed.", up.PendingSecurity),
				"system updates",
				"Install all pending security updates",
			))
		}
		if !up.AutoUpdate {
			scores["updates"] += penaltyAutoUpdateOff
			issues = append(issues, a.issue(
				types.SeverityLow, "updates",
				"Automatic updates disabled",
				"The system does not install security updates automatically.",
				"system updates",
				"Enable automatic installation of security updates",
			))
		}
	}

	if enc := cfg.Encryption; enc != nil && enc.Error == "" && !enc.DiskEncrypted {
		scores["encryption"] += penaltyDiskUnencrypted
		issues = append(issues, a.issue(
			types.SeverityMedium, "encryption",
			"Disk encryption disabled",
			"The system disk is not encrypted. Data is readable if the device is lost or stolen.",
			"system disk",
			"Enable full-disk encryption (BitLocker, FileVault or LUKS)",
		))
	}

	if nc := cfg.NetworkConfig; nc != nil && nc.Error == "" {
		for _, lp := range nc.ListeningPorts {
			if !sensitivePort(lp.Port) {
				continue
			}
			scores["network"] += penaltySensitiveListening
			issues = append(issues, a.issue(
				types.SeverityMedium, "network",
				fmt.Sprintf("Sensitive service listening on port %d", lp.Port),
				fmt.Sprintf("A service is listening on port %d (%s), which is a common attack target.", lp.Port, lp.Proto),
				fmt.Sprintf("port %d", lp.Port),
				fmt.Sprintf("Stop the service on port %d or restrict it to trusted networks", lp.Port),
			))
		}
	}

	for k, v := range scores {
		scores[k] = clamp100(v)
	}
	return scores, issues
}

// analyzeNetwork walks the network collector output. This branch
// deliberately does not clamp category scores at 100; see DESIGN.md.
func (a *Analyzer) analyzeNetwork(raw *types.RawScanResult) (map[string]int, []types.Issue) {
	scores := map[string]int{}
	var issues []types.Issue

	n := raw.Network
	if n == nil {
		return scores, issues
	}

	if fw := n.Firewall; fw != nil && fw.Error == "" && fw.Status == "off" {
		scores["firewall"] += penaltyFirewallDisabled
		issues = append(issues, a.issue(
			types.SeverityHigh, "firewall",
			"Network firewall disabled",
			"The firewall protecting this network segment is turned off.",
			"network firewall",
			"Enable the firewall and review its ruleset",
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
			scores["network"] += penaltySensitiveService
			issues = append(issues, a.issue(
				types.SeverityHigh, "network",
				fmt.Sprintf("Sensitive service exposed: %s on %s", svc.Name, host),
				fmt.Sprintf("Port %d (%s) is open on %s. This service is frequently targeted and should not be exposed on the local segment.", svc.Port, svc.Name, host),
				host,
				fmt.Sprintf("Close port %d on %s or restrict access to the %s service", svc.Port, host, svc.Name),
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
		scores["devices"] += unknown * penaltyUnknownDevice
		issues = append(issues, a.issue(
			types.SeverityLow, "devices",
			"Unidentified devices on the network",
			fmt.Sprintf("%d device(s) on the local segment could not be identified by hostname or vendor.", unknown),
			"local subnet",
			"Identify every device on the network and remove unauthorized ones",
		))
	}

	if w := n.WirelessSecurity; w != nil && w.Error == "" {
		switch strings.ToUpper(w.Security) {
		case "WEP":
			scores["wireless"] += penaltyWirelessWEP
			issues = append(issues, a.issue(
				types.SeverityHigh, "wireless",
				"Wireless network uses WEP",
				"WEP encryption is broken and can be cracked in minutes.",
				w.SSID,
				"Reconfigure the wireless network to WPA2 or WPA3",
			))
		case "OPEN", "NONE", "":
			if w.Security != "" || w.SSID != "" {
				scores["wireless"] += penaltyWirelessOpen
				issues = append(issues, a.issue(
					types.SeverityCritical, "wireless",
					"Unencrypted wireless network",
					"The wireless network has no encryption. All traffic is readable by anyone in range.",
					w.SSID,
					"Enable WPA2 or WPA3 encryption on the wireless network",
				))
			}
		case "WPA":
			scores["wireless"] += penaltyWirelessWPA1
			issues = append(issues, a.issue(
				types.SeverityMedium, "wireless",
				"Wireless network uses WPA (version 1)",
				"WPA1 has known weaknesses and has been superseded by WPA2/WPA3.",
				w.SSID,
				"Upgrade the wireless network to WPA2 or WPA3",
			))
		}
	}

	return scores, issues
}

// analyzeFull reuses the system and network branches by synthesizing
// their expected input from the combined raw result, then layers
// vulnerability, malware and compliance scoring plus the
// breach-indicator correlation on top.
func (a *Analyzer) analyzeFull(raw *types.RawScanResult) (map[string]int, []types.Issue) {
	sysScores, sysIssues := a.analyzeSystem(&types.RawScanResult{
		ScanType: types.ScanSystem,
		System:   raw.System,
		Config:   raw.Config,
	})
	netScores, netIssues := a.analyzeNetwork(&types.RawScanResult{
		ScanType: types.ScanNetwork,
		Network:  raw.Network,
	})

	scores := make(map[string]int, len(sysScores)+len(netScores))
	for k, v := range sysScores {
		scores[k] = v
	}
	for k, v := range netScores {
		if v > scores[k] {
			scores[k] = v
		}
	}
	issues := append(sysIssues, netIssues...)

	if v := raw.Vulnerabilities; v != nil {
		s := v.Summary
		scores["vulnerabilities"] = clamp100(s.Critical*15 + s.High*8 + s.Medium*4 + s.Low*1)
		for _, f := range v.Findings {
			is := a.issue(
				f.Severity, "vulnerabilities",
				f.Title,
				f.Description,
				f.Component,
				fmt.Sprintf("Update %s to a patched version", f.Component),
			)
			is.CVEIDs = f.CVEIDs
			issues = append(issues, is)
		}
	}

	if m := raw.Malware; m != nil {
		if n := len(m.Findings); n > 0 {
			scores["malware"] += clamp100(30 + 10*n)
			issues = append(issues, a.issue(
				types.SeverityCritical, "malware",
				fmt.Sprintf("Malware detected (%d finding(s))", n),
				"Files matching known malware signatures were found on this system.",
				"filesystem",
				"Quarantine the detected files and run a full antivirus scan",
			))
		}
		if n := len(m.PersistenceMechanisms); n > 0 {
			scores["malware"] += penaltyPersistence
			issues = append(issues, a.issue(
				types.SeverityHigh, "malware",
				"Suspicious persistence mechanisms",
				fmt.Sprintf("%d autostart entry(ies) of unknown origin were found.", n),
				"autostart locations",
				"Review and remove unrecognized autostart entries",
			))
		}
		if s := m.Suspicious; s != nil {
			if len(s.Connections) > 2 {
				scores["malware"] += penaltySuspiciousConns
				issues = append(issues, a.issue(
					types.SeverityHigh, "malware",
					"Multiple suspicious network connections",
					fmt.Sprintf("%d outbound connections to flagged destinations are active.", len(s.Connections)),
					"network connections",
					"Investigate the flagged connections and block their destinations",
				))
			}
			if len(s.Processes) > 2 {
				scores["malware"] += penaltySuspiciousProcs
				issues = append(issues, a.issue(
					types.SeverityMedium, "malware",
					"Multiple suspicious processes",
					fmt.Sprintf("%d running processes were flagged as suspicious.", len(s.Processes)),
					"processes",
					"Investigate the flagged processes and terminate unrecognized ones",
				))
			}
		}
		scores["malware"] = clamp100(scores["malware"])
	}

	if c := raw.Compliance; c != nil {
		frameworks := map[string]*types.ComplianceStatus{
			"GDPR": c.GDPR, "ISO 27001": c.ISO27001, "PCI DSS": c.PCI, "HIPAA": c.HIPAA,
		}
		names := make([]string, 0, len(frameworks))
		for name := range frameworks {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			st := frameworks[name]
			if st == nil || st.Compliant {
				continue
			}
			scores["compliance"] += penaltyNonCompliant
			issues = append(issues, a.issue(
				types.SeverityMedium, "compliance",
				fmt.Sprintf("%s compliance gaps", name),
				fmt.Sprintf("%d control gap(s) were found against %s.", len(st.Gaps), name),
				name,
				fmt.Sprintf("Address the identified %s control gaps", name),
			))
		}
	}

	if indicators := breachIndicators(raw); indicators >= 2 {
		breach := a.issue(
			types.SeverityCritical, "malware",
			"Possible security breach",
			fmt.Sprintf("%d independent breach indicators are present simultaneously. This pattern is consistent with an active compromise.", indicators),
			"host",
			breachRecommendation,
		)
		// The breach issue leads all others so it buckets first.
		issues = append([]types.Issue{breach}, issues...)
	}

	return scores, issues
}

// breachIndicators counts how many of the four breach signals hold:
// a rootkit finding, more than two suspicious connections, more than
// two suspicious processes or more than three malware files, and
// suspicious system modifications.
func breachIndicators(raw *types.RawScanResult) int {
	m := raw.Malware
	if m == nil {
		return 0
	}
	count := 0

	for _, f := range m.Findings {
		if strings.EqualFold(f.Type, "rootkit") {
			count++
			break
		}
	}

	var conns, procs, mods int
	if m.Suspicious != nil {
		conns = len(m.Suspicious.Connections)
		procs = len(m.Suspicious.Processes)
		mods = len(m.Suspicious.SystemModifications)
	}
	if conns > 2 {
		count++
	}
	if procs > 2 || len(m.Findings) > 3 {
		count++
	}
	if mods > 0 {
		count++
	}
	return count
}

// sensitivePort reports whether a port exposes a service that should
// not be reachable on an end-user machine.
func sensitivePort(port int) bool {
	switch port {
	case 21, 23, 135, 139, 445, 1433, 3306, 3389, 5432, 5900, 6379, 27017:
		return true
	}
	return false
}
