package recommendation

import (
	"context"

	"github.com/MrSnakeDoc/recommendations/internal/domain"
	"github.com/MrSnakeDoc/recommendations/internal/logger"
)

// Service persists recommendations and enforces business rules.
type Service interface {
	AddRecommendation(ctx context.Context, in domain.RecommendationInput) (*domain.Recommendation, error)
	EditRecommendation(ctx context.Context, id string, edit domain.RecommendationEdit) (*domain.Recommendation, error)
	DeleteRecommendation(ctx context.Context, id string) error
	ListRecommendations(ctx context.Context) ([]*domain.Recommendation, error)
}

// Controller validates envelopes, calls the Service and shapes responses.
// Errors are returned unchanged.
type Controller struct {
	service Service
	logger  logger.Logger
}

func NewController(service Service, log logger.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  log,
	}
}

func (c *Controller) AddRecommendation(ctx context.Context, env Envelope) (*Response, error) {
	in, err := ExtractRecommendation(env)
	if err != nil {
		c.rejected("add", err)
		return nil, err
	}

	rec, err := c.service.AddRecommendation(ctx, in)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("recommendation added",
		logger.String("id", rec.ID),
		logger.String("url", in.URL.String()))
	return Serialize(rec), nil
}

func (c *Controller) EditRecommendation(ctx context.Context, env Envelope) (*Response, error) {
	id, err := ExtractID(env)
	if err != nil {
		c.rejected("edit", err)
		return nil, err
	}

	edit, err := ExtractRecommendationEdit(env)
	if err != nil {
		c.rejected("edit", err)
		return nil, err
	}

	rec, err := c.service.EditRecommendation(ctx, id, edit)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("recommendation edited", logger.String("id", id))
	return Serialize(rec), nil
}

func (c *Controller) DeleteRecommendation(ctx context.Context, env Envelope) error {
	id, err := ExtractID(env)
	if err != nil {
		c.rejected("delete", err)
		return err
	}

	if err := c.service.DeleteRecommendation(ctx, id); err != nil {
		return err
	}

	c.logger.Debug("recommendation deleted", logger.String("id", id))
	return nil
}

func (c *Controller) ListRecommendations(ctx context.Context) (*Response, error) {
	recs, err := c.service.ListRecommendations(ctx)
	if err != nil {
		return nil, err
	}
	return Serialize(recs...), nil
}

func (c *Controller) rejected(op string, err error) {
	c.logger.Debug("malformed recommendation request",
		logger.String("operation", op),
		logger.Error(err))
}
