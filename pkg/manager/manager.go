// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package manager

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/nfvri/ran-beam-sampler/pkg/angles"
	"github.com/nfvri/ran-beam-sampler/pkg/antenna"
	"github.com/nfvri/ran-beam-sampler/pkg/channel"
	"github.com/nfvri/ran-beam-sampler/pkg/device"
	"github.com/nfvri/ran-beam-sampler/pkg/metrics"
	"github.com/nfvri/ran-beam-sampler/pkg/model"
	"github.com/nfvri/ran-beam-sampler/pkg/sampler"
	"github.com/nfvri/ran-beam-sampler/pkg/scenario"
	"github.com/nfvri/ran-beam-sampler/pkg/scheduler"
	"github.com/nfvri/ran-beam-sampler/pkg/spectrum"
	"github.com/nfvri/ran-beam-sampler/pkg/statistics"
	redisLib "github.com/nfvri/ran-beam-sampler/pkg/store/redis"
	"github.com/nfvri/ran-beam-sampler/pkg/store/trace"
	"github.com/nfvri/ran-beam-sampler/pkg/utils"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// ProgressInterval is the simulated time between two progress updates
const ProgressInterval = 20 * time.Millisecond

const redisConnectTimeout = 30 * time.Second

// NewManager builds a run from a loaded model
func NewManager(m *model.Model) (*Manager, error) {
	log.Info("Creating Manager")
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if m.LogLevel != "" {
		level, err := log.ParseLevel(m.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid logLevel: %w", err)
		}
		log.SetLevel(level)
	}

	mgr := &Manager{
		model:     m,
		scheduler: scheduler.NewScheduler(),
		devices:   map[string]*device.Device{},
		recorder:  &recorder{},
	}
	if err := mgr.initDevices(); err != nil {
		return nil, err
	}
	if err := mgr.initChannel(); err != nil {
		return nil, err
	}

	mgr.trace = trace.NewWriter(TracePath(m))
	mgr.progress = trace.NewProgress(ProgressPath(m))
	collector, err := metrics.NewCollector(m.JobID)
	if err != nil {
		return nil, err
	}
	mgr.metrics = collector
	return mgr, nil
}

// Manager drives one sampling run
type Manager struct {
	model     *model.Model
	scenario  scenario.Scenario
	scheduler *scheduler.Scheduler
	devices   map[string]*device.Device
	channel   *channel.FreeSpace
	txPsd     spectrum.Value
	noisePsd  spectrum.Value
	trace     *trace.Writer
	progress  *trace.Progress
	metrics   *metrics.Collector
	recorder  *recorder
	store     redisLib.Store
	rdbClient *goredis.Client
}

// TracePath returns the trace file of the job
func TracePath(m *model.Model) string {
	return filepath.Join(m.OutputDir, fmt.Sprintf("sinr-trace-%s.txt", m.JobID))
}

// ProgressPath returns the file holding the simulated time the job has reached
func ProgressPath(m *model.Model) string {
	return filepath.Join(m.OutputDir, fmt.Sprintf("progress-%s.txt", m.JobID))
}

// SetStore replaces the redis store, which is otherwise created from the model when enabled
func (m *Manager) SetStore(store redisLib.Store) {
	m.store = store
}

// Device returns the named device of the scenario
func (m *Manager) Device(id string) (*device.Device, bool) {
	d, ok := m.devices[id]
	return d, ok
}

// Metrics returns the metrics of the run
func (m *Manager) Metrics() *metrics.Collector {
	return m.metrics
}

// Samples returns the samples taken so far
func (m *Manager) Samples() []sampler.Sample {
	return m.recorder.samples
}

func (m *Manager) initDevices() error {
	s, err := scenario.Load(m.model)
	if err != nil {
		return err
	}
	m.scenario = s
	for id, node := range s.Nodes {
		kind, cfg := device.Ue, m.model.UeAntenna
		if scenario.IsEnb(id) {
			kind, cfg = device.Enb, m.model.EnbAntenna
		}
		element, err := antenna.NewElement(cfg.Element)
		if err != nil {
			return err
		}
		array := &antenna.Array{
			Rows:     cfg.Rows,
			Columns:  cfg.Columns,
			Element:  element,
			Bearing:  angles.DegreesToRadians(node.Bearing),
			Downtilt: angles.DegreesToRadians(node.Downtilt),
		}
		m.devices[id] = device.NewDevice(id, kind, node.Position, array, device.WithBeamUpdatePeriod(m.model.CbUpdatePeriod, m.scheduler))
		log.Debugf("Created %s %s at %+v", kind, id, node.Position)
	}
	return nil
}

func (m *Manager) initChannel() error {
	var err error
	if m.channel, err = channel.NewFreeSpace(m.model.Frequency); err != nil {
		return err
	}
	if m.txPsd, err = spectrum.NewTxPsd(m.model.TxPower, m.model.Bandwidth, m.model.NumBins, nil); err != nil {
		return err
	}
	m.noisePsd, err = spectrum.NewNoisePsd(m.model.NoiseFigure, m.model.Bandwidth, m.model.NumBins)
	return err
}

func (m *Manager) initStore(ctx context.Context) error {
	if m.store != nil || !m.model.Redis.Enabled {
		return nil
	}
	host := utils.If(m.model.Redis.Host != "", m.model.Redis.Host, utils.GetEnv("REDIS_HOST", "localhost"))
	port := utils.If(m.model.Redis.Port != "", m.model.Redis.Port, utils.GetEnv("REDIS_PORT", "6379"))
	m.rdbClient = redisLib.InitClient(host, port, m.model.Redis.DB, m.model.Redis.Username, m.model.Redis.Password)
	if err := redisLib.Connect(ctx, m.rdbClient, redisConnectTimeout); err != nil {
		return err
	}
	m.store = &redisLib.RedisStore{DB: m.rdbClient}
	return nil
}

func (m *Manager) device(id string) (*device.Device, error) {
	d, ok := m.devices[id]
	if !ok {
		return nil, errors.NewNotFound("node %s is missing from scenario %s", id, m.scenario.Name)
	}
	return d, nil
}

func (m *Manager) link() (sampler.Link, error) {
	ids := []string{scenario.ServingEnb, scenario.ServingUe, scenario.InterferEnb, scenario.InterferUe}
	nodes := make([]*device.Device, len(ids))
	for i, id := range ids {
		d, err := m.device(id)
		if err != nil {
			return sampler.Link{}, err
		}
		nodes[i] = d
	}
	return sampler.Link{
		ServingTx: nodes[0],
		ServingRx: nodes[1],
		InterfTx:  nodes[2],
		InterfRx:  nodes[3],
	}, nil
}

// Run samples the link every timeStep until simTime and returns the run statistics.
// A run too short for a single sample returns an empty summary.
func (m *Manager) Run(ctx context.Context) (statistics.Summary, error) {
	log.Infof("Running job %s: scenario %s for %v", m.model.JobID, m.scenario.Name, m.model.SimTime)
	if err := m.initStore(ctx); err != nil {
		return statistics.Summary{}, err
	}
	if err := m.trace.Init(); err != nil {
		return statistics.Summary{}, err
	}

	link, err := m.link()
	if err != nil {
		return statistics.Summary{}, err
	}
	sinks := []sampler.Sink{m.trace, m.metrics, m.recorder}
	if m.store != nil {
		sinks = append(sinks, redisLib.NewSink(m.store, m.model.JobID))
	}
	s := sampler.NewSampler(link, m.channel, m.txPsd, m.noisePsd, m.scheduler, sinks...)

	step := m.model.TimeStep
	if err := m.scheduler.SchedulePeriodic(step, m.model.NumSamples(), step/2, s.Tick); err != nil {
		return statistics.Summary{}, err
	}
	progressTicks := int(m.model.SimTime/ProgressInterval) + 1
	if err := m.scheduler.SchedulePeriodic(ProgressInterval, progressTicks, 0, m.logProgress); err != nil {
		return statistics.Summary{}, err
	}

	start := time.Now()
	err = m.scheduler.Run(ctx, m.model.SimTime)
	if perr := m.progress.Done(); perr != nil {
		log.Warnf("Unable to reset %s: %v", m.progress.Path(), perr)
	}
	if err != nil {
		log.Errorf("Run of job %s failed: %v", m.model.JobID, err)
		return statistics.Summary{}, err
	}
	log.Infof("Job %s took %v of wall time for %d samples", m.model.JobID, time.Since(start), len(m.recorder.samples))

	if len(m.recorder.samples) == 0 {
		log.Warnf("simTime %v is shorter than one timeStep %v, no sample taken", m.model.SimTime, step)
		return statistics.Summary{}, nil
	}
	return m.report(ctx)
}

func (m *Manager) logProgress(ctx context.Context) error {
	now := m.scheduler.Now()
	log.Infof("Simulation time: %v", now)
	return m.progress.Update(now)
}

func (m *Manager) report(ctx context.Context) (statistics.Summary, error) {
	samples := m.recorder.samples
	summary, err := statistics.Summarize(samples, statistics.DefaultOutageThresholdDb)
	if err != nil {
		return statistics.Summary{}, err
	}
	log.Infof("Job %s summary: %+v", m.model.JobID, summary)

	if m.model.PlotFile != "" {
		title := fmt.Sprintf("%s (%s)", m.scenario.Name, m.model.JobID)
		if err := statistics.PlotTrace(samples, title, m.outputPath(m.model.PlotFile)); err != nil {
			return summary, err
		}
	}
	if m.model.MetricsFile != "" {
		if err := m.metrics.WriteToTextfile(m.outputPath(m.model.MetricsFile)); err != nil {
			return summary, err
		}
	}
	if m.store != nil {
		if err := m.store.AddSummary(ctx, m.model.JobID, summary); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

func (m *Manager) outputPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(m.model.OutputDir, name)
}

// ServingRange solves for the boresight distance at which the serving link SNR drops to refSnrDb
func (m *Manager) ServingRange(refSnrDb float64) (float64, error) {
	enb, err := m.device(scenario.ServingEnb)
	if err != nil {
		return 0, err
	}
	ue, err := m.device(scenario.ServingUe)
	if err != nil {
		return 0, err
	}
	enbBoresight := enb.Beam()
	ueBoresight := ue.Beam()
	gain := enb.Array().Gain(enbBoresight, enbBoresight) + ue.Array().Gain(ueBoresight, ueBoresight)

	enbPos, _ := enb.Position()
	uePos, _ := ue.Position()
	return channel.SolveRange(channel.RangeProblem{
		TxPowerDbm:  m.model.TxPower,
		GainDb:      gain,
		NoisePowerW: m.noisePsd.Power(),
		Frequency:   m.model.Frequency,
		RefSnrDb:    refSnrDb,
	}, model.Distance(enbPos, uePos))
}

// Close releases the redis connection, if any
func (m *Manager) Close() {
	log.Info("Closing Manager")
	if m.rdbClient != nil {
		if err := m.rdbClient.Close(); err != nil {
			log.Warn(err)
		}
	}
}

// recorder keeps the samples in memory for the end of run report
type recorder struct {
	samples []sampler.Sample
}

func (r *recorder) Append(ctx context.Context, sample sampler.Sample) error {
	r.samples = append(r.samples, sample)
	return nil
}
