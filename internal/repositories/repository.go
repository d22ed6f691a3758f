package repositories

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repositories when a requested record does not
// exist. Services translate it into their own domain errors.
var ErrNotFound = errors.New("record not found")

// Repository aggregates all repository interfaces
type Repository interface {
	// Core domain
	Student() StudentRepository
	Course() CourseRepository
	Activity() ActivityRepository

	// Account domain
	User() UserRepository

	// Dashboard domain
	Dashboard() DashboardRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with database connections
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
