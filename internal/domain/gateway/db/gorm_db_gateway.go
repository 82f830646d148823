package db

import (
	"context"
	"strconv"

	"gorm.io/gorm"

	"taskboard/internal/domain/model"
)

type GormHealthDBGateway struct {
	DB *gorm.DB
}

var _ HealthDBGateway = (*GormHealthDBGateway)(nil)

func NewGormHealthDBGateway(db *gorm.DB) *GormHealthDBGateway {
	return &GormHealthDBGateway{DB: db}
}

func (gateway *GormHealthDBGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	details := map[string]string{"dialect": gateway.DB.Dialector.Name()}

	sqlDB, err := gateway.DB.DB()
	if err != nil {
		return model.ComponentDown(err, details)
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		return model.ComponentDown(err, details)
	}

	stats := sqlDB.Stats()
	details["open_connections"] = strconv.Itoa(stats.OpenConnections)
	details["in_use"] = strconv.Itoa(stats.InUse)
	return model.ComponentUp(details)
}
