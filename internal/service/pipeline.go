package service

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"exusiai.dev/mapbook/internal/modconfig"
	"exusiai.dev/mapbook/internal/model"
	"exusiai.dev/mapbook/internal/model/types"
	"exusiai.dev/mapbook/internal/pkg/observability"
	"exusiai.dev/mapbook/internal/util/verifs"
)

var tracer = otel.Tracer("service")

const (
	StageSynthesize = "synthesize"
	StageLoot       = "loot"
	StageContainers = "containers"
	StageSlots      = "special_slots"
	StageInsurance  = "insurance"
	StageVerify     = "verify"
)

// RunResult gathers everything one pipeline run did.
type RunResult struct {
	RunID      string            `json:"runId"`
	Item       *model.Template   `json:"-"`
	Offers     []model.Offer     `json:"offers"`
	Loot       types.LootOutcome `json:"loot"`
	Containers types.Outcomes    `json:"containers,omitempty"`
	Slots      types.Outcomes    `json:"specialSlots,omitempty"`
	Insurance  types.Outcomes    `json:"insurance,omitempty"`
	// InsuranceErr is set when the insurance stage could not resolve the new item.
	InsuranceErr error          `json:"-"`
	Report       *verifs.Report `json:"report"`
}

type Pipeline struct {
	SynthesizerService *Synthesizer
	LootService        *Loot
	PatcherService     *Patcher
	InsuranceService   *Insurance
	Verifiers          *verifs.Verifiers
}

func NewPipeline(synthesizerService *Synthesizer, lootService *Loot, patcherService *Patcher, insuranceService *Insurance, verifiers *verifs.Verifiers) *Pipeline {
	return &Pipeline{
		SynthesizerService: synthesizerService,
		LootService:        lootService,
		PatcherService:     patcherService,
		InsuranceService:   insuranceService,
		Verifiers:          verifiers,
	}
}

// Run applies conf to the catalog: synthesis, loot propagation, container and slot patching,
// insurance toggling, then validation. A synthesis error is returned as is and no later stage
// runs; every other stage is best-effort and reports through the result.
func (p *Pipeline) Run(ctx context.Context, conf *modconfig.Config) (*RunResult, error) {
	result := &RunResult{RunID: ulid.Make().String()}
	ctx = p.runLogger(ctx, conf, result.RunID)
	l := log.Ctx(ctx)

	l.Info().
		Str("evt.name", "pipeline.start").
		Str("itemId", conf.ItemID).
		Int("slots", len(conf.Maps)).
		Msg("applying mapbook")

	resolved, discovered := p.resolveTargets(ctx, conf)

	err := p.stage(ctx, StageSynthesize, func(ctx context.Context) error {
		item, offers, err := p.SynthesizerService.Synthesize(ctx, resolved)
		result.Item = item
		result.Offers = offers
		return err
	})
	if err != nil {
		l.Error().
			Err(err).
			Str("evt.name", "pipeline.synthesize.failed").
			Msg("failed to synthesize mapbook, aborting")
		return result, err
	}

	itemID := result.Item.ID

	p.stage(ctx, StageLoot, func(ctx context.Context) error {
		result.Loot = p.LootService.Propagate(ctx, resolved, itemID)
		return nil
	})

	if resolved.AllowInSecureContainers {
		p.stage(ctx, StageContainers, func(ctx context.Context) error {
			result.Containers = p.PatcherService.AllowInContainers(ctx, resolved, itemID)
			countOutcomes(StageContainers, result.Containers)
			return nil
		})
	}

	if resolved.AllowInSpecialSlots {
		p.stage(ctx, StageSlots, func(ctx context.Context) error {
			result.Slots = p.PatcherService.AllowInSpecialSlots(ctx, resolved, discovered, itemID)
			countOutcomes(StageSlots, result.Slots)
			return nil
		})
	}

	if !resolved.AllowInsurance {
		p.stage(ctx, StageInsurance, func(ctx context.Context) error {
			outcomes, err := p.InsuranceService.Disable(ctx, resolved, itemID)
			result.Insurance = outcomes
			result.InsuranceErr = err
			countOutcomes(StageInsurance, outcomes)
			if err != nil {
				l.Error().
					Err(err).
					Str("evt.name", "pipeline.insurance.failed").
					Msg("failed to disable insurance")
			}
			return err
		})
	}

	result.Report = p.verify(ctx, resolved)

	l.Info().
		Str("evt.name", "pipeline.done").
		Bool("passed", result.Report.Passed).
		Int("offers", len(result.Offers)).
		Int("lootContainers", result.Loot.Containers).
		Msg(result.Report.Summary)

	return result, nil
}

// Verify runs the validator alone against an already patched catalog.
func (p *Pipeline) Verify(ctx context.Context, conf *modconfig.Config) *verifs.Report {
	ctx = p.runLogger(ctx, conf, ulid.Make().String())
	resolved, _ := p.resolveTargets(ctx, conf)

	report := p.verify(ctx, resolved)
	log.Ctx(ctx).Info().
		Str("evt.name", "pipeline.verify.done").
		Bool("passed", report.Passed).
		Strs("failed", report.Failed()).
		Msg(report.Summary)

	return report
}

func (p *Pipeline) verify(ctx context.Context, conf *modconfig.Config) *verifs.Report {
	var report *verifs.Report
	p.stage(ctx, StageVerify, func(ctx context.Context) error {
		report = p.Verifiers.Verify(ctx, conf)
		return nil
	})
	return report
}

func (p *Pipeline) runLogger(ctx context.Context, conf *modconfig.Config, runID string) context.Context {
	logger := log.Ctx(ctx).With().Str("run.id", runID).Logger()
	if level := logger.GetLevel(); conf.EnableDebugging && level > zerolog.DebugLevel && level < zerolog.Disabled {
		logger = logger.Level(zerolog.DebugLevel)
	}
	return logger.WithContext(ctx)
}

// resolveTargets returns a copy of conf whose secure containers and special slots include the
// discovered ones, configured entries first.
func (p *Pipeline) resolveTargets(ctx context.Context, conf *modconfig.Config) (*modconfig.Config, []SpecialSlot) {
	resolved := *conf

	if conf.ShouldDiscoverSecureContainers() {
		resolved.SecureContainers = conf.SecureContainers.Merge(p.PatcherService.DiscoverSecureContainers(ctx))
	}

	discovered := p.PatcherService.DiscoverSpecialSlots(ctx)
	resolved.SpecialSlots = lo.Union(conf.SpecialSlots, lo.Map(discovered, func(s SpecialSlot, _ int) string {
		return s.SlotID
	}))

	return &resolved, discovered
}

func (p *Pipeline) stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	start := time.Now()
	l := log.Ctx(ctx)

	ctx, span := tracer.Start(ctx, "pipeline.stage."+name, trace.WithAttributes(attribute.String("stage", name)))
	defer span.End()

	l.Debug().
		Str("evt.name", "pipeline.stage.start").
		Str("stage", name).
		Msg("stage started")

	err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(attribute.Bool("failed", err != nil))

	took := time.Since(start)
	observability.StageDuration.WithLabelValues(name).Observe(took.Seconds())

	l.Debug().
		Str("evt.name", "pipeline.stage.done").
		Str("stage", name).
		Dur("took", took).
		Msg("stage finished")

	return err
}

func countOutcomes(stage string, outcomes types.Outcomes) {
	for _, outcome := range outcomes {
		observability.TargetOutcomes.WithLabelValues(stage, string(outcome.Status)).Inc()
	}
}

func logOutcome(l *zerolog.Logger, kind string, outcome types.TargetOutcome) {
	var evt *zerolog.Event
	switch outcome.Status {
	case types.TargetFailed:
		evt = l.Error().Err(outcome.Err)
	case types.TargetSkipped:
		evt = l.Debug()
	default:
		evt = l.Info()
	}

	evt.Str("evt.name", "patcher.target."+string(outcome.Status)).
		Str("kind", kind).
		Str("target", outcome.TargetID).
		Str("label", outcome.Label).
		Msg(kind + " " + string(outcome.Status))
}
