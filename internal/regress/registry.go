package regress

import "fmt"

// Family groups providers by what downstream stages can do with them:
// tree ensembles support grid tuning and feature importances, linear
// models do not.
type Family int

const (
	FamilyLinear Family = iota
	FamilyTree
)

func (f Family) String() string {
	if f == FamilyTree {
		return "tree-ensemble"
	}
	return "linear"
}

// Provider names a constructible model. New must either return a usable
// Regressor or an error; a provider that is absent from the registry is a
// different condition from one whose constructor fails.
type Provider struct {
	Name   string
	Family Family
	New    func(Params) (Regressor, error)
}

// Registry is an ordered set of providers. Enumeration order is registration
// order, which downstream tie-breaking depends on.
type Registry struct {
	order  []Provider
	byName map[string]Provider
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Provider)}
}

// Register adds a provider. Duplicate names are an error.
func (r *Registry) Register(p Provider) error {
	if p.Name == "" || p.New == nil {
		return fmt.Errorf("provider must have a name and a constructor")
	}
	if _, dup := r.byName[p.Name]; dup {
		return fmt.Errorf("provider %q already registered", p.Name)
	}
	r.byName[p.Name] = p
	r.order = append(r.order, p)
	return nil
}

// Providers returns all registered providers in registration order.
func (r *Registry) Providers() []Provider {
	out := make([]Provider, len(r.order))
	copy(out, r.order)
	return out
}

// Lookup returns the named provider.
func (r *Registry) Lookup(name string) (Provider, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// Available reports whether a provider was registered at startup.
func (r *Registry) Available(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Default is the registry the CLI populates on startup.
var Default = NewRegistry()

// CoreProviders returns the five always-present candidates in their fixed
// comparison order.
func CoreProviders() []Provider {
	return []Provider{
		{Name: "linear", Family: FamilyLinear, New: newLinear},
		{Name: "ridge", Family: FamilyLinear, New: newRidge},
		{Name: "lasso", Family: FamilyLinear, New: newLasso},
		{Name: "forest", Family: FamilyTree, New: newForest},
		{Name: "gbm", Family: FamilyTree, New: newGBM},
	}
}

// ExtendedProvider returns the optional regularized boosting candidate. It
// is registered after the core five when the build carries it; comparisons
// omit it when it is not registered.
func ExtendedProvider() Provider {
	return Provider{Name: "xgb", Family: FamilyTree, New: newXGB}
}

// RegisterBuiltins fills a registry with every candidate this build provides.
func RegisterBuiltins(r *Registry) error {
	for _, p := range CoreProviders() {
		if err := r.Register(p); err != nil {
			return err
		}
	}
	return r.Register(ExtendedProvider())
}
