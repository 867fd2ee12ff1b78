package app

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"

	gohttp "github.com/km-arc/go-validation/framework/http"
	"github.com/km-arc/go-validation/framework/providers"
	"github.com/km-arc/go-validation/framework/ruleset"
	"github.com/km-arc/go-validation/framework/validation"
)

// AdHocContext names the context of POST /validate in events and metrics.
const AdHocContext = "adhoc"

// Controller is an embeddable base for HTTP controllers.
type Controller struct{}

func (c *Controller) Request(r *http.Request) *gohttp.Request {
	return gohttp.NewRequest(r)
}
func (c *Controller) Response(w http.ResponseWriter) *gohttp.Response {
	return gohttp.NewResponse(w)
}

// mountRoutes registers the HTTP API:
//
//	GET  /rules                 registered rules and their default messages
//	GET  /rulesets              loaded rule sets
//	GET  /rulesets/{ruleset}    one rule set
//	POST /validate/{ruleset}    validate the body against a rule set
//	POST /validate              validate {"data", "rules", "messages"}
//	GET  <METRICS_PATH>         Prometheus metrics, when enabled
func (a *Application) mountRoutes() {
	router := a.Router()
	ctrl := &validationController{app: a}

	router.Get("/rules", ctrl.rules)
	router.Get("/rulesets", ctrl.ruleSets)
	router.Get("/rulesets/{ruleset}", ctrl.ruleSet)
	router.Post("/validate/{ruleset}", ctrl.validateRuleSet)
	router.Post("/validate", ctrl.validate)

	if cfg := a.Config(); cfg.Metrics.Enabled {
		router.Handle(cfg.Metrics.Path, a.Metrics().Handler())
	}
}

// ── Controller ────────────────────────────────────────────────────────────────

type validationController struct {
	Controller
	app *Application
}

// payloadRules validates the body of POST /validate. It runs without events
// so metrics only count the caller's validation.
var payloadRules = validation.Rules{
	"rules":    "required|object",
	"data":     "nullable|object",
	"messages": "nullable|object",
}

func (c *validationController) rules(w http.ResponseWriter, r *http.Request) {
	registry := c.app.Registry()

	out := make([]map[string]string, 0, len(registry.Names()))
	for _, name := range registry.Names() {
		out = append(out, map[string]string{
			"name":    name,
			"message": registry.Get(name).Message(),
		})
	}
	c.Response(w).Success(out)
}

func (c *validationController) ruleSets(w http.ResponseWriter, r *http.Request) {
	store := c.app.RuleSets()

	out := make([]map[string]any, 0)
	for _, name := range store.Names() {
		set, err := store.Get(name)
		if err != nil {
			continue // removed by a reload since Names
		}
		fields := make([]string, 0, len(set.Rules()))
		for field := range set.Rules() {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		out = append(out, map[string]any{"name": name, "fields": fields})
	}
	c.Response(w).Success(out)
}

func (c *validationController) ruleSet(w http.ResponseWriter, r *http.Request) {
	res := c.Response(w)
	set, ok := c.lookup(res, c.Request(r).RouteParam("ruleset"))
	if !ok {
		return
	}
	res.Success(map[string]any{
		"name":       set.Name(),
		"rules":      set.Rules(),
		"messages":   set.Messages(),
		"attributes": set.Attributes(),
	})
}

func (c *validationController) validateRuleSet(w http.ResponseWriter, r *http.Request) {
	req, res := c.Request(r), c.Response(w)

	set, ok := c.lookup(res, req.RouteParam("ruleset"))
	if !ok {
		return
	}
	v, err := c.validator(req, set)
	if err != nil {
		res.BadRequest(err.Error())
		return
	}
	result, err := req.Validate(v, nil, nil)
	if err != nil {
		res.BadRequest(err.Error())
		return
	}
	res.Validated(result)
}

func (c *validationController) validate(w http.ResponseWriter, r *http.Request) {
	req, res := c.Request(r), c.Response(w)

	body, err := req.Data()
	if err != nil {
		res.BadRequest(err.Error())
		return
	}
	check, err := validation.New(c.app.Registry()).Validate(body, payloadRules, nil)
	if err != nil {
		c.serverError(res, err)
		return
	}
	if check.Fails() {
		res.ValidationError(check)
		return
	}

	v, err := c.validator(req, validation.NewContext(AdHocContext))
	if err != nil {
		res.BadRequest(err.Error())
		return
	}
	data, _ := body["data"].(map[string]any)
	rules, _ := body["rules"].(map[string]any)
	result, err := v.Validate(data, rules, messagesOf(body["messages"]))
	if err != nil {
		res.BadRequest(err.Error())
		return
	}
	res.Validated(result)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (c *validationController) lookup(res *gohttp.Response, name string) (validation.Context, bool) {
	set, err := c.app.RuleSets().Get(name)
	switch {
	case errors.Is(err, ruleset.ErrRuleSetNotFound):
		res.NotFound("Rule set not found.")
		return set, false
	case err != nil:
		c.serverError(res, err)
		return set, false
	}
	return set, true
}

// serverError sends 500, with the cause only in debug mode.
func (c *validationController) serverError(res *gohttp.Response, err error) {
	c.app.Logger().Error("request failed", slog.Any("error", err))
	if c.app.IsDebug() {
		res.ServerError(err.Error())
		return
	}
	res.ServerError()
}

// validator builds a per-request Validator over the shared registry. The
// strategy query parameter overrides VALIDATION_STRATEGY.
func (c *validationController) validator(req *gohttp.Request, ctx validation.Context) (*validation.Validator, error) {
	shared := c.app.Validator()
	strategy := shared.Strategy()
	if name := req.Query(gohttp.StrategyParam); name != "" {
		var err error
		if strategy, err = providers.NewStrategy(c.app.Container, name); err != nil {
			return nil, err
		}
	}
	return validation.New(shared.Registry(),
		validation.WithStrategy(strategy),
		validation.WithContext(ctx),
		validation.WithEvents(c.app.Events()),
	), nil
}

func messagesOf(v any) validation.Messages {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(validation.Messages, len(m))
	for k, msg := range m {
		out[k] = validation.Stringify(msg)
	}
	return out
}
