package system

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// failedCheck is the uniform result for a check whose platform
// command failed.
func failedCheck(err error) types.CheckResult {
	return types.CheckResult{Score: 0, Rating: types.RatingUnknown, Error: err.Error()}
}

func scoredCheck(score int) types.CheckResult {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return types.CheckResult{Score: score, Rating: types.RatingFor(score)}
}

// panicResult converts a panic inside a check into a failed result so
// a single misbehaving parser cannot take down the whole collection.
func panicResult(log hclog.Logger, name string, r interface{}) types.CheckResult {
	log.Error("security check panicked", "check", name, "panic", r)
	return failedCheck(fmt.Errorf("%s check panicked: %v", name, r))
}

func (c *Collector) usersCheck(ctx context.Context) (res *types.UsersCheck) {
	defer func() {
		if r := recover(); r != nil {
			res = &types.UsersCheck{CheckResult: panicResult(c.log, "users", r)}
		}
	}()

	cctx, cancel := context.WithTimeout(ctx, c.checkTimeout)
	defer cancel()

	accounts, passwordless, err := c.platform.Users(cctx)
	if err != nil {
		return &types.UsersCheck{CheckResult: failedCheck(err)}
	}

	admins := 0
	for _, a := range accounts {
		if a.Admin {
			admins++
		}
	}

	score := 100
	score -= 30 * passwordless
	if admins > 3 {
		score -= 10 * (admins - 3)
	}

	return &types.UsersCheck{
		CheckResult:       scoredCheck(score),
		Accounts:          accounts,
		AdminCount:        admins,
		PasswordlessCount: passwordless,
	}
}

func (c *Collector) authenticationCheck(ctx context.Context) (res *types.AuthCheck) {
	defer func() {
		if r := recover(); r != nil {
			res = &types.AuthCheck{CheckResult: panicResult(c.log, "authentication", r)}
		}
	}()

	cctx, cancel := context.WithTimeout(ctx, c.checkTimeout)
	defer cancel()

	facts, err := c.platform.Authentication(cctx)
	if err != nil {
		return &types.AuthCheck{CheckResult: failedCheck(err)}
	}

	score := 40
	switch {
	case facts.Policy.MinLength >= 12:
		score += 40
	case facts.Policy.MinLength >= 8:
		score += 25
	case facts.Policy.MinLength >= 6:
		score += 10
	}
	if facts.Policy.RequireComplex {
		score += 10
	}
	if facts.LockoutEnabled {
		score += 10
	}

	return &types.AuthCheck{
		CheckResult:    scoredCheck(score),
		PasswordPolicy: facts.Policy,
		LockoutEnabled: facts.LockoutEnabled,
	}
}

func (c *Collector) updatesCheck(ctx context.Context) (res *types.UpdatesCheck) {
	defer func() {
		if r := recover(); r != nil {
			res = &types.UpdatesCheck{CheckResult: panicResult(c.log, "updates", r)}
		}
	}()

	cctx, cancel := context.WithTimeout(ctx, c.checkTimeout)
	defer cancel()

	facts, err := c.platform.Updates(cctx)
	if err != nil {
		return &types.UpdatesCheck{CheckResult: failedCheck(err)}
	}

	score := 100
	score -= 2 * facts.Pending
	score -= 10 * facts.Security
	if !facts.AutoUpdate {
		score -= 20
	}

	return &types.UpdatesCheck{
		CheckResult:     scoredCheck(score),
		PendingUpdates:  facts.Pending,
		PendingSecurity: facts.Security,
		AutoUpdate:      facts.AutoUpdate,
		LastUpdate:      facts.LastUpdate,
	}
}

func (c *Collector) encryptionCheck(ctx context.Context) (res *types.EncryptionCheck) {
	defer func() {
		if r := recover(); r != nil {
			res = &types.EncryptionCheck{CheckResult: panicResult(c.log, "encryption", r)}
		}
	}()

	cctx, cancel := context.WithTimeout(ctx, c.checkTimeout)
	defer cancel()

	facts, err := c.platform.Encryption(cctx)
	if err != nil {
		return &types.EncryptionCheck{CheckResult: failedCheck(err)}
	}

	score := 20
	if facts.Encrypted {
		score = 100
	}

	return &types.EncryptionCheck{
		CheckResult:   scoredCheck(score),
		DiskEncrypted: facts.Encrypted,
		Tool:          facts.Tool,
	}
}

func (c *Collector) networkConfigCheck(ctx context.Context) (res *types.NetworkConfigCheck) {
	defer func() {
		if r := recover(); r != nil {
			res = &types.NetworkConfigCheck{CheckResult: panicResult(c.log, "networkConfig", r)}
		}
	}()

	cctx, cancel := context.WithTimeout(ctx, c.checkTimeout)
	defer cancel()

	ports, err := c.platform.ListeningPorts(cctx)
	if err != nil {
		return &types.NetworkConfigCheck{CheckResult: failedCheck(err)}
	}
	// Interface enumeration is best effort; listening ports are the
	// scored surface.
	ifaces, _ := localInterfaces()

	score := 100
	for _, p := range ports {
		if SensitivePort(p.Port) {
			score -= 15
		}
	}

	return &types.NetworkConfigCheck{
		CheckResult:    scoredCheck(score),
		ListeningPorts: ports,
		Interfaces:     ifaces,
	}
}

func (c *Collector) firewallCheck(ctx context.Context) (res *types.FirewallCheck) {
	defer func() {
		if r := recover(); r != nil {
			res = &types.FirewallCheck{
				CheckResult:    panicResult(c.log, "firewall", r),
				FirewallStatus: types.FirewallState{Status: "unknown"},
			}
		}
	}()

	cctx, cancel := context.WithTimeout(ctx, c.checkTimeout)
	defer cancel()

	state, err := c.platform.Firewall(cctx)
	if err != nil {
		return &types.FirewallCheck{
			CheckResult:    failedCheck(err),
			FirewallStatus: types.FirewallState{Status: "unknown", Error: err.Error()},
		}
	}

	score := 0
	if state.Enabled {
		score = 100
	}

	return &types.FirewallCheck{
		CheckResult:    scoredCheck(score),
		FirewallStatus: state,
	}
}

func (c *Collector) securitySoftwareCheck(ctx context.Context) (res *types.SecuritySoftwareCheck) {
	defer func() {
		if r := recover(); r != nil {
			res = &types.SecuritySoftwareCheck{CheckResult: panicResult(c.log, "securitySoftware", r)}
		}
	}()

	cctx, cancel := context.WithTimeout(ctx, c.checkTimeout)
	defer cancel()

	facts, err := c.platform.SecuritySoftware(cctx)
	if err != nil {
		return &types.SecuritySoftwareCheck{CheckResult: failedCheck(err)}
	}

	score := 10
	if len(facts.Antivirus) > 0 {
		score = 100
	}

	return &types.SecuritySoftwareCheck{
		CheckResult: scoredCheck(score),
		Antivirus:   facts.Antivirus,
		Installed:   facts.Installed,
	}
}

// SensitivePort reports whether a listening port belongs to a service
// that should not normally be exposed.
func SensitivePort(port int) bool {
	switch port {
	case 21, 23, 135, 139, 445, 1433, 3306, 3389, 5432, 5900, 6379, 27017:
		return true
	}
	return false
}
