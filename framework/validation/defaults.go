package validation

// DefaultRules returns a fresh instance of every built-in rule.
func DefaultRules() []Rule {
	return []Rule{
		Required(), Nullable(),
		String(), Integer(), Numeric(), Float(), Boolean(), Array(), ObjectRule(),
		Min(), Max(), Size(), Between(),
		Email(), URL(), Alpha(), AlphaNum(), AlphaDash(), Regex(), UUID(), StartsWith(), EndsWith(),
		In(), NotIn(),
		GT(), GTE(), LT(), LTE(), Same(), Different(),
	}
}

// DefaultRegistry returns a new Registry holding DefaultRules.
func DefaultRegistry() *Registry {
	return NewRegistry(DefaultRules()...)
}
