package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cardioscope-ai/riskscore/pkg/common/logger"
	"github.com/cardioscope-ai/riskscore/pkg/common/models"
	"github.com/cardioscope-ai/riskscore/pkg/features"
	"github.com/cardioscope-ai/riskscore/pkg/history"
	"github.com/cardioscope-ai/riskscore/pkg/model"
	"github.com/cardioscope-ai/riskscore/pkg/normalizer"
	"github.com/cardioscope-ai/riskscore/pkg/observability/metrics"
	"github.com/google/uuid"
)

var ErrHistoryDisabled = errors.New("history persistence is disabled")

// Engine scales and scores one feature vector. *model.Bundle is the
// production implementation; tests substitute fakes.
type Engine interface {
	Score(vector []float64) (float64, error)
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, eventType string, data map[string]interface{}) error
}

// Service is the scoring pipeline: validate → normalize → derive → build →
// scale → predict → verdict. Engines are loaded once at startup and shared
// read-only; the history store is the only mutable collaborator.
type Service struct {
	registry      *features.Registry
	engines       map[string]Engine
	validator     *normalizer.Validator
	defaultSchema string
	history       history.Store
	producer      EventPublisher
	cache         *ResultCache
}

func NewService(registry *features.Registry, engines map[string]Engine, validator *normalizer.Validator, defaultSchema string, store history.Store, producer EventPublisher, cache *ResultCache) *Service {
	return &Service{
		registry:      registry,
		engines:       engines,
		validator:     validator,
		defaultSchema: defaultSchema,
		history:       store,
		producer:      producer,
		cache:         cache,
	}
}

func (s *Service) Score(ctx context.Context, req models.ScoreRequest) (models.ScoredResult, error) {
	start := time.Now()

	schemaName := req.Schema
	if schemaName == "" {
		schemaName = s.defaultSchema
	}
	schema, err := s.registry.Get(schemaName)
	if err != nil {
		return models.ScoredResult{}, err
	}
	engine, ok := s.engines[schemaName]
	if !ok {
		return models.ScoredResult{}, fmt.Errorf("no artifacts loaded for schema '%s': %w", schemaName, features.ErrSchemaUnknown)
	}

	// Everything that can reject the request runs before any artifact call,
	// so a rejected observation leaves no history row behind.
	if err := s.validator.Validate(req.Observation); err != nil {
		return models.ScoredResult{}, err
	}
	codes, err := normalizer.Normalize(req.Observation)
	if err != nil {
		return models.ScoredResult{}, err
	}

	values := features.Assemble(req.Observation, codes, schema.DerivedMetrics)
	vector, err := features.BuildVector(schema, values)
	if err != nil {
		return models.ScoredResult{}, err
	}

	var probability float64
	var riskLevel string
	cached := false
	if s.cache != nil {
		probability, riskLevel, cached = s.cache.Get(ctx, schemaName, vector)
	}
	if !cached {
		probability, err = engine.Score(vector)
		if err != nil {
			metrics.RecordFailure()
			if errors.Is(err, model.ErrSchemaMismatch) {
				logger.Log.WithError(err).WithField("schema", schemaName).Error("schema mismatch between vector and artifacts, check deployment pairing")
			} else {
				logger.Log.WithError(err).WithField("schema", schemaName).Error("model inference failed")
			}
			return models.ScoredResult{}, err
		}
		riskLevel, err = Verdict(probability, Policy(schema.Policy))
		if err != nil {
			return models.ScoredResult{}, err
		}
		if s.cache != nil {
			s.cache.Set(ctx, schemaName, vector, probability, riskLevel)
		}
	}

	result := models.ScoredResult{
		ID:                 uuid.New().String(),
		Schema:             schemaName,
		Probability:        probability,
		ProbabilityPercent: int(math.Round(probability * 100)),
		RiskLevel:          riskLevel,
		Policy:             schema.Policy,
		RiskFactors:        RiskFactors(req.Observation, codes),
		Cached:             cached,
		ScoredAt:           time.Now().UTC(),
	}
	result.LatencyMS = time.Since(start).Milliseconds()

	if s.history != nil {
		record := models.HistoryRecord{
			Timestamp:          result.ScoredAt,
			Name:               req.Observation.Name,
			AgeYears:           req.Observation.AgeYears,
			Gender:             req.Observation.Gender,
			ProbabilityPercent: result.ProbabilityPercent,
			RiskLevel:          result.RiskLevel,
		}
		inputs := make(map[string]interface{}, len(vector))
		for i, name := range schema.Features {
			inputs[name] = vector[i]
		}
		if _, err := s.history.Append(ctx, record, inputs); err != nil {
			return models.ScoredResult{}, fmt.Errorf("persist history: %w", err)
		}
		metrics.RecordHistoryAppend()
	}

	if s.producer != nil {
		if err := s.producer.PublishEvent(ctx, "prediction.scored", map[string]interface{}{
			"prediction_id":       result.ID,
			"schema":              schemaName,
			"probability_percent": result.ProbabilityPercent,
			"risk_level":          result.RiskLevel,
		}); err != nil {
			logger.Log.WithError(err).Warn("audit event not published")
		}
	}

	metrics.RecordPrediction(result.RiskLevel)
	return result, nil
}

func (s *Service) Schemas() []features.Schema {
	return s.registry.List()
}

func (s *Service) History(ctx context.Context) ([]models.HistoryRecord, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	return s.history.List(ctx)
}

func (s *Service) DeleteHistory(ctx context.Context, id string) error {
	if s.history == nil {
		return ErrHistoryDisabled
	}
	if err := s.history.Delete(ctx, id); err != nil {
		return err
	}
	metrics.RecordHistoryDelete()
	return nil
}

func (s *Service) DeleteHistoryAt(ctx context.Context, index int) error {
	if s.history == nil {
		return ErrHistoryDisabled
	}
	if err := s.history.DeleteAt(ctx, index); err != nil {
		return err
	}
	metrics.RecordHistoryDelete()
	return nil
}

func (s *Service) ClearHistory(ctx context.Context) error {
	if s.history == nil {
		return ErrHistoryDisabled
	}
	return s.history.Clear(ctx)
}
