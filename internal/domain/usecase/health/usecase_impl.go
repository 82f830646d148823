package health

import (
	"context"

	"taskboard/internal/domain/gateway/cache"
	"taskboard/internal/domain/gateway/db"
	"taskboard/internal/domain/model"
)

type healthUseCase struct {
	dbGateway    db.HealthDBGateway
	cacheGateway cache.TaskListCache
}

func NewHealthUseCase(dbGateway db.HealthDBGateway, cacheGateway cache.TaskListCache) UseCase {
	if cacheGateway == nil {
		cacheGateway = cache.NoopTaskListCache{}
	}
	return &healthUseCase{
		dbGateway:    dbGateway,
		cacheGateway: cacheGateway,
	}
}

func (useCase *healthUseCase) CheckHealth(ctx context.Context) model.HealthResponse {
	return model.NewHealthResponse(
		useCase.dbGateway.Health(ctx),
		useCase.cacheGateway.Health(ctx),
	)
}
