package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/stylesyncapp/stylesync-server/internal/config"
	"github.com/stylesyncapp/stylesync-server/internal/evaluator"
	"github.com/stylesyncapp/stylesync-server/internal/logger"
	"github.com/stylesyncapp/stylesync-server/internal/rules"
	"github.com/stylesyncapp/stylesync-server/internal/service"
)

// ProvideRuleIndex provides the static compatibility rule index.
func ProvideRuleIndex(i do.Injector) (*rules.Index, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	var (
		index *rules.Index
		err   error
	)
	if cfg.Rules.TablesPath != "" {
		index, err = rules.LoadFile(cfg.Rules.TablesPath)
	} else {
		index, err = rules.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	log.Info("Static rule tables loaded",
		"materials", index.MaterialCount(),
		"source", ruleSource(cfg.Rules.TablesPath),
	)

	return index, nil
}

func ruleSource(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

// ProvideEvaluator provides the constraint evaluator.
func ProvideEvaluator(i do.Injector) (*evaluator.Evaluator, error) {
	index := do.MustInvoke[*rules.Index](i)
	return evaluator.New(index), nil
}

// ProvideRulesService provides the dynamic rule store service, seeding
// defaults on first start.
func ProvideRulesService(i do.Injector) (*service.RulesService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRulesService(context.Background(), storeHandle.Store, log.Logger)
}

// ProvideValidationService provides the outfit validation service.
func ProvideValidationService(i do.Injector) (*service.ValidationService, error) {
	eval := do.MustInvoke[*evaluator.Evaluator](i)
	rulesService := do.MustInvoke[*service.RulesService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewValidationService(eval, rulesService, log.Logger), nil
}
