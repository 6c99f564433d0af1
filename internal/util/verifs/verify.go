package verifs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"exusiai.dev/mapbook/internal/modconfig"
	"exusiai.dev/mapbook/internal/pkg/observability"
)

var tracer = otel.Tracer("verifs")

type Verifier interface {
	Name() string
	Verify(ctx context.Context, conf *modconfig.Config) *Rejection
}

type Verifiers []Verifier

func NewVerifiers(itemVerifier *ItemVerifier, slotVerifier *SlotVerifier, vendorVerifier *VendorVerifier, containerVerifier *ContainerVerifier, insuranceVerifier *InsuranceVerifier) *Verifiers {
	return &Verifiers{
		itemVerifier,
		slotVerifier,
		vendorVerifier,
		containerVerifier,
		insuranceVerifier,
	}
}

// Verify runs every verifier against the catalog, regardless of earlier rejections, and logs each
// rejection at its severity.
func (verifiers Verifiers) Verify(ctx context.Context, conf *modconfig.Config) *Report {
	l := log.Ctx(ctx)
	report := &Report{Passed: true, Results: make([]Result, 0, len(verifiers))}

	for _, pipe := range verifiers {
		start := time.Now()
		name := pipe.Name()

		spanCtx, span := tracer.Start(ctx, "verifs.verifier."+name)
		rejection := pipe.Verify(spanCtx, conf)
		if rejection != nil {
			span.SetStatus(codes.Error, rejection.Message)
		}
		span.SetAttributes(attribute.Bool("passed", rejection == nil))
		span.End()

		result := Result{Name: name, Passed: rejection == nil}
		if rejection != nil {
			result.Message = rejection.Message
			report.Passed = false

			l.WithLevel(rejection.Severity).
				Str("evt.name", "verifs.rejected").
				Str("verifier", name).
				Msg(rejection.Message)
			observability.VerifierResults.WithLabelValues(name, "fail").Inc()
		} else {
			observability.VerifierResults.WithLabelValues(name, "pass").Inc()
		}

		l.Trace().
			Str("verifier", name).
			Dur("took", time.Since(start)).
			Msg("verifier finished")

		report.Results = append(report.Results, result)
	}

	if report.Passed {
		report.Summary = SummarySuccess
	} else {
		report.Summary = SummaryPartialFailure
	}

	return report
}
