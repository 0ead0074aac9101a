// Package engine drives one scenario run end to end: schedule, simulation,
// derived series, summary, store append.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"gonum.org/v1/gonum/floats"

	"epidemic-scenarios/internal/analysis"
	"epidemic-scenarios/internal/metrics"
	"epidemic-scenarios/internal/model"
	"epidemic-scenarios/internal/schedule"
	"epidemic-scenarios/internal/store"
)

// Simulated horizon in model days.
const (
	horizonStart = 1.0
	horizonEnd   = 365.0
)

// ModelEngine is the epidemic model engine contract the runner consumes.
type ModelEngine interface {
	Defaults(icuBeds int) model.ParameterSet
	RunSimulation(ctx context.Context, init, grid []float64, p model.ParameterSet) (*model.RawTrajectory, error)
	DeriveSeries(raw *model.RawTrajectory, p model.ParameterSet) (*model.ProcessedSeries, error)
}

// Runner executes scenario runs against one session's store. Runs are
// serialized: a second trigger blocks until the in-flight run completes.
type Runner struct {
	mu      sync.Mutex
	store   *store.Store
	engine  ModelEngine
	icuBeds int
	log     zerolog.Logger
	metrics *metrics.Collector
}

func New(st *store.Store, eng ModelEngine, icuBeds int, log zerolog.Logger, mc *metrics.Collector) *Runner {
	return &Runner{
		store:   st,
		engine:  eng,
		icuBeds: icuBeds,
		log:     log,
		metrics: mc,
	}
}

// Run processes one snapshotted request. On any error the store is left
// untouched and the next id is not consumed.
func (r *Runner) Run(ctx context.Context, req model.RunRequest) (*model.RunResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	resp, err := r.run(ctx, req, start)
	elapsed := time.Since(start)

	if r.metrics != nil {
		r.metrics.RunDuration.Observe(elapsed.Seconds())
		if err != nil {
			r.metrics.RunFailures.WithLabelValues(model.ErrorCode(err)).Inc()
		} else {
			r.metrics.RunsTotal.Inc()
		}
	}

	if err != nil {
		r.log.Warn().
			Err(err).
			Str("code", model.ErrorCode(err)).
			Dur("elapsed", elapsed).
			Msg("scenario run aborted")
		return nil, err
	}

	r.log.Info().
		Int("scenario_id", resp.RunMetadata.ScenarioID).
		Str("sip_end", req.SIPEndDate).
		Str("sd_end", req.SDEndDate).
		Dur("elapsed", elapsed).
		Msg("scenario recorded")
	return resp, nil
}

func (r *Runner) run(ctx context.Context, req model.RunRequest, start time.Time) (*model.RunResponse, error) {
	sched, err := schedule.Build(req.SIPEndDate, req.SDEndDate)
	if err != nil {
		return nil, err
	}

	p := r.engine.Defaults(r.icuBeds)
	p.StartTimeSocialDistancing = float64(sched.SDStart)
	p.EndTimeSocialDistancing = float64(sched.SDEnd)
	p.StartTimeSIP = float64(sched.SIPStart)
	p.EndTimeSIP = float64(sched.SIPEnd)

	grid := timeGrid(horizonStart, horizonEnd, p.Timestep)

	id := r.store.NextID()

	raw, err := r.engine.RunSimulation(ctx, p.InitVec, grid, p)
	if err != nil {
		return nil, err
	}
	series, err := r.engine.DeriveSeries(raw, p)
	if err != nil {
		return nil, err
	}
	summary, err := analysis.Summarize(raw, series, p)
	if err != nil {
		return nil, err
	}

	record := model.ScheduleRecord{
		ScenarioID:     id,
		SIPEndDate:     req.SIPEndDate,
		SDEndDate:      req.SDEndDate,
		SDStartOffset:  sched.SDStart,
		SDEndOffset:    sched.SDEnd,
		SIPStartOffset: sched.SIPStart,
		SIPEndOffset:   sched.SIPEnd,
	}

	if err := r.store.Append(model.Scenario{
		ID:      id,
		Params:  record,
		Raw:     *raw,
		Series:  *series,
		Summary: *summary,
	}); err != nil {
		return nil, err
	}

	completed := time.Now().UTC()
	return &model.RunResponse{
		RunMetadata: model.RunMetadata{
			ScenarioID:  id,
			StartedAt:   start.UTC().Format(time.RFC3339),
			CompletedAt: completed.Format(time.RFC3339),
			DurationMs:  time.Since(start).Milliseconds(),
			Outcome:     model.OutcomeSuccess,
		},
		Params:  record,
		Summary: *summary,
	}, nil
}

// timeGrid spans the horizon at the model timestep, both endpoints included.
func timeGrid(from, to, dt float64) []float64 {
	n := int((to-from)/dt) + 1
	return floats.Span(make([]float64, n), from, to)
}
