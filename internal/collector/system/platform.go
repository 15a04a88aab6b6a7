package system

import (
	"context"

	"github.com/Jjustmee23/CyberShieldX-sub000/internal/toolexec"
	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// updateFacts is the raw pending-update state before scoring.
type updateFacts struct {
	Pending    int
	Security   int
	AutoUpdate bool
	LastUpdate string
}

// authFacts is the raw authentication policy before scoring.
type authFacts struct {
	Policy         types.PasswordPolicy
	LockoutEnabled bool
}

// encryptionFacts is the raw disk-encryption state before scoring.
type encryptionFacts struct {
	Encrypted bool
	Tool      string
}

// securitySoftwareFacts is the raw endpoint-protection inventory
// before scoring.
type securitySoftwareFacts struct {
	Antivirus []string
	Installed []string
}

// platform gathers raw host facts with OS-specific commands. Scoring
// is platform-independent and lives in checks.go, so every strategy
// produces the same result shape.
type platform interface {
	OSInfo(ctx context.Context) (types.OSInfo, error)
	CPUInfo(ctx context.Context) (types.CPUInfo, error)
	MemoryInfo(ctx context.Context) (types.MemoryInfo, error)
	DiskInfo(ctx context.Context) ([]types.DiskInfo, error)

	Users(ctx context.Context) ([]types.UserAccount, int, error)
	Authentication(ctx context.Context) (authFacts, error)
	Updates(ctx context.Context) (updateFacts, error)
	Encryption(ctx context.Context) (encryptionFacts, error)
	ListeningPorts(ctx context.Context) ([]types.ListeningPort, error)
	Firewall(ctx context.Context) (types.FirewallState, error)
	SecuritySoftware(ctx context.Context) (securitySoftwareFacts, error)

	Processes(ctx context.Context) ([]types.ProcessInfo, error)
	Services(ctx context.Context) ([]types.ServiceInfo, error)
	Software(ctx context.Context) ([]types.SoftwareInfo, error)
}

func platformFor(goos string, runner toolexec.Runner) platform {
	switch goos {
	case "windows":
		return &windowsPlatform{runner: runner}
	case "darwin":
		return &darwinPlatform{runner: runner}
	default:
		return &linuxPlatform{runner: runner}
	}
}
