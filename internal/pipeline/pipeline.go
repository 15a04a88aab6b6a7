package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/Jjustmee23/CyberShieldX-sub000/internal/analyzer"
	"github.com/Jjustmee23/CyberShieldX-sub000/internal/collector/network"
	"github.com/Jjustmee23/CyberShieldX-sub000/internal/collector/system"
	"github.com/Jjustmee23/CyberShieldX-sub000/internal/issues"
	"github.com/Jjustmee23/CyberShieldX-sub000/internal/report"
	"github.com/Jjustmee23/CyberShieldX-sub000/internal/toolexec"
	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// SystemCollector is the system stage as the pipeline consumes it.
type SystemCollector interface {
	Collect(ctx context.Context, mode system.Mode) (*types.SystemInfo, *types.SecurityConfig)
}

// NetworkCollector is the network stage as the pipeline consumes it.
type NetworkCollector interface {
	Collect(ctx context.Context, deep bool) *types.NetworkInfo
	QuickScan(ctx context.Context) *types.PortSnapshot
}

// Pipeline runs collect → analyze → build issues → report for one
// scan. Collection is the only stage that can take real time; the
// downstream stages are pure and fail-safe.
type Pipeline struct {
	pctx     *Context
	system   SystemCollector
	network  NetworkCollector
	analyzer *analyzer.Analyzer
	builder  *issues.Builder
	reporter *report.Reporter
}

// New wires a production pipeline from the shared Context.
func New(pctx *Context) *Pipeline {
	runner := toolexec.New(pctx.Config.Timeout)
	return &Pipeline{
		pctx:     pctx,
		system:   system.New(pctx.Log, runner, pctx.Config.Timeout),
		network:  network.New(pctx.Log, runner, pctx.Config.Concurrency),
		analyzer: analyzer.New(pctx.Log, pctx.NewID),
		builder:  issues.NewBuilder(pctx.Log, pctx.NewID),
		reporter: report.NewReporter(pctx.Log, pctx.Config.ReportsDir, pctx.Now, pctx.NewID),
	}
}

// Run executes one scan end to end and returns the persisted report.
// The only hard failure is an unknown scan type; everything past
// collection degrades to a fallback result instead of erroring.
func (p *Pipeline) Run(ctx context.Context, scanType types.ScanType) (*types.Report, error) {
	if !types.ValidScanType(scanType) {
		return nil, fmt.Errorf("unknown scan type %q", scanType)
	}

	scanID := p.pctx.NewID()
	start := p.pctx.Now()
	log := p.pctx.Log.With("scanId", scanID, "scanType", scanType)
	log.Info("scan started")

	raw := p.collect(ctx, scanType)

	analysis := p.analyzer.Analyze(raw)
	detailed := p.builder.AnalyzeResults(raw, p.pctx.Config.ClientID)
	rep := p.reporter.Generate(scanID, scanType, raw, analysis, detailed, p.pctx.Config.ClientID)

	log.Info("scan finished",
		"riskLevel", rep.Summary.RiskLevel,
		"issues", rep.Summary.IssueCount,
		"status", rep.Summary.OverallStatus,
		"duration", report.FormatDuration(p.pctx.Now().Sub(start)))
	return rep, nil
}

func (p *Pipeline) collect(ctx context.Context, scanType types.ScanType) *types.RawScanResult {
	raw := &types.RawScanResult{ScanType: scanType}

	switch scanType {
	case types.ScanQuick:
		raw.System, _ = p.system.Collect(ctx, system.ModeBasic)
		raw.Network = quickNetworkInfo(p.network.QuickScan(ctx))

	case types.ScanSystem:
		raw.System, raw.Config = p.system.Collect(ctx, system.ModeDetailed)

	case types.ScanNetwork:
		raw.Network = p.network.Collect(ctx, p.pctx.Config.DeepScan)

	case types.ScanFull:
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			raw.System, raw.Config = p.system.Collect(ctx, system.ModeDetailed)
		}()
		go func() {
			defer wg.Done()
			raw.Network = p.network.Collect(ctx, p.pctx.Config.DeepScan)
		}()
		wg.Wait()
	}
	return raw
}

// quickNetworkInfo lifts the quick port snapshot into the network
// sub-result shape the analyzer consumes.
func quickNetworkInfo(snapshot *types.PortSnapshot) *types.NetworkInfo {
	if snapshot == nil {
		return nil
	}
	info := &types.NetworkInfo{Error: snapshot.Error}
	if snapshot.Host != "" && len(snapshot.OpenPorts) > 0 {
		info.Services = map[string][]types.Service{snapshot.Host: snapshot.OpenPorts}
	}
	return info
}
