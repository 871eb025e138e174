// Package di provides dependency injection configuration for the StyleSync server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/stylesyncapp/stylesync-server/internal/config"
	"github.com/stylesyncapp/stylesync-server/internal/di/providers"
	"github.com/stylesyncapp/stylesync-server/internal/evaluator"
	"github.com/stylesyncapp/stylesync-server/internal/logger"
	"github.com/stylesyncapp/stylesync-server/internal/rules"
	"github.com/stylesyncapp/stylesync-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Static rule tables
	do.Provide(injector, providers.ProvideRuleIndex)
	do.Provide(injector, providers.ProvideEvaluator)

	// Business services
	do.Provide(injector, providers.ProvideRulesService)
	do.Provide(injector, providers.ProvideValidationService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*rules.Index](injector)
	_ = do.MustInvoke[*evaluator.Evaluator](injector)

	// Business services
	_ = do.MustInvoke[*service.RulesService](injector)
	_ = do.MustInvoke[*service.ValidationService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
