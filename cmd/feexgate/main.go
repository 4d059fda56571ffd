package main

import (
	"github.com/tokpa/feexgate/internal/config"
	"github.com/tokpa/feexgate/internal/observability"
	"github.com/tokpa/feexgate/internal/order"
	"github.com/tokpa/feexgate/internal/server"
	"github.com/tokpa/feexgate/internal/store/supabase"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		config.Module,
		observability.Module,

		// Functional Domains
		supabase.Module,
		order.Module,
		server.Module,
	)
	app.Run()
}
