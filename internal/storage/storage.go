package storage

import "lpreturns/internal/model"

// Storage defines a sink for computed daily return points.
type Storage interface {
	PutDailyPoints(points []model.DailyReturnPoint) error
}
