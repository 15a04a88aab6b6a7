package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jjustmee23/CyberShieldX-sub000/internal/analyzer"
	"github.com/Jjustmee23/CyberShieldX-sub000/internal/collector/system"
	"github.com/Jjustmee23/CyberShieldX-sub000/internal/config"
	"github.com/Jjustmee23/CyberShieldX-sub000/internal/issues"
	"github.com/Jjustmee23/CyberShieldX-sub000/internal/report"
	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

type fakeSystem struct {
	lastMode system.Mode
	calls    int
}

func (f *fakeSystem) Collect(ctx context.Context, mode system.Mode) (*types.SystemInfo, *types.SecurityConfig) {
	f.lastMode = mode
	f.calls++

	info := &types.SystemInfo{OS: types.OSInfo{Platform: "linux", Name: "Ubuntu", Version: "24.04"}}
	if mode != system.ModeDetailed {
		return info, nil
	}
	return info, &types.SecurityConfig{
		FirewallConfig: &types.FirewallCheck{
			CheckResult:    types.CheckResult{Score: 0, Rating: types.RatingPoor},
			FirewallStatus: types.FirewallState{Enabled: false, Status: "off"},
		},
	}
}

type fakeNetwork struct {
	collectCalls int
	quickCalls   int
	lastDeep     bool
}

func (f *fakeNetwork) Collect(ctx context.Context, deep bool) *types.NetworkInfo {
	f.collectCalls++
	f.lastDeep = deep
	return &types.NetworkInfo{
		Devices: []types.Device{{IP: "192.168.1.41", Source: "probe"}},
	}
}

func (f *fakeNetwork) QuickScan(ctx context.Context) *types.PortSnapshot {
	f.quickCalls++
	return &types.PortSnapshot{
		Host: "192.168.1.42",
		OpenPorts: []types.Service{
			{Port: 3389, Protocol: "tcp", Name: "rdp", Sensitive: true},
		},
	}
}

func testPipeline(t *testing.T) (*Pipeline, *fakeSystem, *fakeNetwork) {
	t.Helper()

	cfg := config.Defaults()
	cfg.ClientID = "client-7"
	cfg.ReportsDir = filepath.Join(t.TempDir(), "reports")

	seq := 0
	pctx := &Context{
		Log:    hclog.NewNullLogger(),
		Config: &cfg,
		Now:    func() time.Time { return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC) },
		NewID: func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		},
	}

	sys := &fakeSystem{}
	nw := &fakeNetwork{}
	p := &Pipeline{
		pctx:     pctx,
		system:   sys,
		network:  nw,
		analyzer: analyzer.New(pctx.Log, pctx.NewID),
		builder:  issues.NewBuilder(pctx.Log, pctx.NewID),
		reporter: report.NewReporter(pctx.Log, cfg.ReportsDir, pctx.Now, pctx.NewID),
	}
	return p, sys, nw
}

func TestRunRejectsUnknownScanType(t *testing.T) {
	p, _, _ := testPipeline(t)

	_, err := p.Run(context.Background(), types.ScanType("bogus"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestRunLogsScanDuration(t *testing.T) {
	p, _, _ := testPipeline(t)

	var buf bytes.Buffer
	p.pctx.Log = hclog.New(&hclog.LoggerOptions{Output: &buf, JSONFormat: true})

	// Each clock read advances 100ms; Run reads it once at start and
	// once at finish.
	base := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	tick := 0
	p.pctx.Now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * 100 * time.Millisecond)
	}

	_, err := p.Run(context.Background(), types.ScanSystem)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "scan finished")
	assert.Contains(t, buf.String(), `"duration":"100ms"`)
}

func TestRunSystemScan(t *testing.T) {
	p, sys, nw := testPipeline(t)

	rep, err := p.Run(context.Background(), types.ScanSystem)
	require.NoError(t, err)
	require.NotNil(t, rep)

	assert.Equal(t, system.ModeDetailed, sys.lastMode)
	assert.Zero(t, nw.collectCalls)
	assert.Zero(t, nw.quickCalls)

	assert.Equal(t, types.ScanSystem, rep.ScanType)
	assert.Equal(t, types.StatusCompleted, rep.Summary.OverallStatus)
	// The disabled firewall from the fake collector must surface.
	assert.GreaterOrEqual(t, rep.Summary.IssueCount, 1)
	assert.NotEqual(t, types.RiskLow, rep.Summary.RiskLevel)

	entries, err := os.ReadDir(p.pctx.Config.ReportsDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "report persisted to disk")
}

func TestRunQuickScan(t *testing.T) {
	p, sys, nw := testPipeline(t)

	rep, err := p.Run(context.Background(), types.ScanQuick)
	require.NoError(t, err)

	assert.Equal(t, system.ModeBasic, sys.lastMode)
	assert.Equal(t, 1, nw.quickCalls)
	assert.Zero(t, nw.collectCalls)

	// The sensitive RDP port from the snapshot becomes an issue.
	assert.GreaterOrEqual(t, rep.Summary.IssueCount, 1)
}

func TestRunNetworkScanPassesDeepFlag(t *testing.T) {
	p, sys, nw := testPipeline(t)
	p.pctx.Config.DeepScan = true

	_, err := p.Run(context.Background(), types.ScanNetwork)
	require.NoError(t, err)

	assert.Zero(t, sys.calls)
	assert.Equal(t, 1, nw.collectCalls)
	assert.True(t, nw.lastDeep)
}

func TestRunFullScanRunsBothCollectors(t *testing.T) {
	p, sys, nw := testPipeline(t)

	rep, err := p.Run(context.Background(), types.ScanFull)
	require.NoError(t, err)

	assert.Equal(t, 1, sys.calls)
	assert.Equal(t, system.ModeDetailed, sys.lastMode)
	assert.Equal(t, 1, nw.collectCalls)
	assert.Equal(t, types.ScanFull, rep.ScanType)
}

func TestQuickNetworkInfo(t *testing.T) {
	assert.Nil(t, quickNetworkInfo(nil))

	info := quickNetworkInfo(&types.PortSnapshot{Error: "no interface"})
	require.NotNil(t, info)
	assert.Equal(t, "no interface", info.Error)
	assert.Nil(t, info.Services)

	info = quickNetworkInfo(&types.PortSnapshot{
		Host:      "10.0.0.5",
		OpenPorts: []types.Service{{Port: 22, Name: "ssh"}},
	})
	require.Contains(t, info.Services, "10.0.0.5")
}
