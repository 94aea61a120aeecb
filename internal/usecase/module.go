package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/pointbank/internal/pkg/keylock"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	keylock.New,
	NewPointUseCase,
	NewAuditUseCase,
)
