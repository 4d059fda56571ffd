package supabase

import (
	"github.com/tokpa/feexgate/internal/config"
	"github.com/tokpa/feexgate/internal/order/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("store.supabase",
	fx.Provide(func(cfg config.Config, log *zap.Logger) domain.Store {
		return NewClient(cfg, log)
	}),
)
