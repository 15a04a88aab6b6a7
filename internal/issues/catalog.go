package issues

import "fmt"

// categoryInfo supplies per-category reference material attached to
// every issue and remediation action of that category.
type categoryInfo struct {
	resources       []string
	additionalNotes string
	verification    []string
}

var categoryCatalog = map[string]categoryInfo{
	"configuration": {
		resources: []string{
			"https://www.cisecurity.org/cis-benchmarks",
			"https://csrc.nist.gov/publications/detail/sp/800-123/final",
		},
		additionalNotes: "Harden the host against the applicable CIS benchmark for its operating system.",
		verification: []string{
			"Re-run a system scan and confirm the configuration check scores improved",
			"Verify the changed setting survives a reboot",
		},
	},
	"updates": {
		resources: []string{
			"https://csrc.nist.gov/publications/detail/sp/800-40/rev-4/final",
		},
		additionalNotes: "Establish a regular patch window; security updates should be applied within days, not months.",
		verification: []string{
			"Check the package manager or update service reports zero pending security updates",
		},
	},
	"encryption": {
		resources: []string{
			"https://csrc.nist.gov/publications/detail/sp/800-111/final",
		},
		additionalNotes: "Store recovery keys in a managed escrow, not on the encrypted device itself.",
		verification: []string{
			"Confirm the encryption tool reports the system volume as fully encrypted",
		},
	},
	"network": {
		resources: []string{
			"https://www.cisa.gov/resources-tools/resources/securing-network-infrastructure-devices",
			"https://owasp.org/www-project-top-ten/",
		},
		additionalNotes: "Every reachable service widens the attack surface; expose only what is operationally required.",
		verification: []string{
			"Re-run a network scan and confirm the port is no longer reachable",
		},
	},
	"firewall": {
		resources: []string{
			"https://csrc.nist.gov/publications/detail/sp/800-41/rev-1/final",
		},
		additionalNotes: "Prefer a default-deny inbound policy with explicit allow rules.",
		verification: []string{
			"Confirm the firewall reports an active default-deny inbound policy",
			"Probe a previously open port from another machine and confirm it is filtered",
		},
	},
	"devices": {
		resources: []string{
			"https://www.cisecurity.org/controls/inventory-and-control-of-enterprise-assets",
		},
		additionalNotes: "Maintain an asset inventory; unknown devices are either misconfigured or unauthorized.",
		verification: []string{
			"Re-run device discovery and confirm every device resolves to a known inventory entry",
		},
	},
	"wireless": {
		resources: []string{
			"https://www.wi-fi.org/discover-wi-fi/security",
		},
		additionalNotes: "WEP and WPA1 are considered broken; only WPA2-AES and WPA3 are acceptable.",
		verification: []string{
			"Confirm the access point advertises WPA2 or WPA3 and rejects legacy clients",
		},
	},
	"vulnerabilities": {
		resources: []string{
			"https://nvd.nist.gov/",
			"https://www.cisa.gov/known-exploited-vulnerabilities-catalog",
		},
		additionalNotes: "Prioritize vulnerabilities listed in the CISA KEV catalog regardless of CVSS score.",
		verification: []string{
			"Re-run the vulnerability assessment and confirm the finding no longer appears",
		},
	},
	"malware": {
		resources: []string{
			"https://www.cisa.gov/stopransomware",
			"https://attack.mitre.org/",
		},
		additionalNotes: "If active compromise is suspected, preserve forensic evidence before remediating.",
		verification: []string{
			"Run a full antivirus scan and confirm zero detections",
			"Review autostart locations and scheduled tasks for unrecognized entries",
		},
	},
	"compliance": {
		resources: []string{
			"https://gdpr.eu/",
			"https://www.iso.org/isoiec-27001-information-security.html",
			"https://www.pcisecuritystandards.org/",
		},
		additionalNotes: "Compliance gaps usually indicate missing process, not just missing configuration.",
		verification: []string{
			"Re-run the compliance assessment and confirm the gap is closed",
		},
	},
}

// catalogFor returns the catalog entry for a category, falling back
// to the configuration entry for unknown categories.
func catalogFor(category string) categoryInfo {
	if info, ok := categoryCatalog[category]; ok {
		return info
	}
	return categoryCatalog["configuration"]
}

// nvdLink builds the NVD reference URL for a CVE identifier.
func nvdLink(cveID string) string {
	return fmt.Sprintf("https://nvd.nist.gov/vuln/detail/%s", cveID)
}
