package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/serenica/retreat-backoffice/internal/models"
	"github.com/serenica/retreat-backoffice/internal/repository"
	"github.com/serenica/retreat-backoffice/pkg/rabbitmq"
	"gorm.io/gorm"
)

type RetreatService interface {
	CreateRetreat(ctx context.Context, retreat *models.Retreat) error
	GetRetreat(ctx context.Context, id uint) (*models.Retreat, error)
	ListRetreats(ctx context.Context) ([]models.Retreat, error)
}

type retreatService struct {
	repo      repository.RetreatRepository
	publisher *rabbitmq.Publisher
}

func NewRetreatService(repo repository.RetreatRepository, publisher *rabbitmq.Publisher) RetreatService {
	return &retreatService{repo: repo, publisher: publisher}
}

func (s *retreatService) CreateRetreat(ctx context.Context, retreat *models.Retreat) error {
	if err := s.repo.Create(ctx, retreat); err != nil {
		return fmt.Errorf("create retreat: %w", err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish(rabbitmq.KeyRetreatCreated, retreat)
	}

	return nil
}

func (s *retreatService) GetRetreat(ctx context.Context, id uint) (*models.Retreat, error) {
	retreat, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRetreatNotFound
		}
		return nil, fmt.Errorf("load retreat %d: %w", id, err)
	}
	return retreat, nil
}

func (s *retreatService) ListRetreats(ctx context.Context) ([]models.Retreat, error) {
	return s.repo.FindAll(ctx)
}
