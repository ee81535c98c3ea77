package services

import (
	"context"

	"github.com/airenamify/dlgate/pkg/dlapi/config"
	"github.com/airenamify/dlgate/pkg/dlog"
	"github.com/airenamify/dlgate/pkg/relstore"
	"github.com/airenamify/dlgate/pkg/resolve"
)

type Services struct {
	Store    relstore.Store
	Resolver *resolve.Resolver
}

func NewServices(ctx context.Context, cfg *config.EnvConfig, logger *dlog.Logger) (*Services, error) {
	store, err := relstore.New(ctx, cfg.StoreConfig())
	if err != nil {
		return nil, err
	}

	return NewServicesWithStore(store, cfg.ResolverConfig(), logger), nil
}

// NewServicesWithStore wires services around an existing store.
func NewServicesWithStore(store relstore.Store, rc resolve.Config, logger *dlog.Logger) *Services {
	return &Services{
		Store:    store,
		Resolver: resolve.New(store, rc, logger),
	}
}

func EmptyServices() *Services {
	return &Services{
		Store:    nil,
		Resolver: nil,
	}
}
