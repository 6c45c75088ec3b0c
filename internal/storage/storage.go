package storage

import (
	"context"
	"errors"

	"github.com/martinsuchenak/migrateplan/internal/model"
)

var (
	ErrWorkloadNotFound   = errors.New("workload not found")
	ErrDataCenterNotFound = errors.New("data center not found")
	ErrPlanNotFound       = errors.New("migration plan not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidID          = errors.New("invalid ID")
	ErrMissingOwner       = errors.New("owner user ID required")
)

// WorkloadStorage lists and creates workloads. Lists are scoped to
// filter.UserID and ordered by creation time, newest first.
type WorkloadStorage interface {
	ListWorkloads(ctx context.Context, filter *model.WorkloadFilter) ([]model.Workload, error)
	GetWorkload(ctx context.Context, userID, id string) (*model.Workload, error)
	CreateWorkload(ctx context.Context, w *model.Workload) error
}

// DataCenterStorage lists and creates data centers.
type DataCenterStorage interface {
	ListDataCenters(ctx context.Context, filter *model.DataCenterFilter) ([]model.DataCenter, error)
	GetDataCenter(ctx context.Context, userID, id string) (*model.DataCenter, error)
	CreateDataCenter(ctx context.Context, dc *model.DataCenter) error
}

// PlanStorage lists and creates migration plans.
type PlanStorage interface {
	ListPlans(ctx context.Context, filter *model.PlanFilter) ([]model.MigrationPlan, error)
	GetPlan(ctx context.Context, userID, id string) (*model.MigrationPlan, error)
	CreatePlan(ctx context.Context, p *model.MigrationPlan) error
}

// UserStorage manages token-holding users.
type UserStorage interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUser(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

// SnapshotStorage records periodic portfolio summaries.
type SnapshotStorage interface {
	CreateSnapshot(ctx context.Context, s *model.Snapshot) error
	ListSnapshots(ctx context.Context, userID string, limit int) ([]model.Snapshot, error)
	SnapshotOwners(ctx context.Context) ([]string, error)
}

// Storage is the full data store used by the server.
type Storage interface {
	WorkloadStorage
	DataCenterStorage
	PlanStorage
	UserStorage
	SnapshotStorage

	Ping(ctx context.Context) error
	Close() error
}
