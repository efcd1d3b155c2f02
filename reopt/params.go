package reopt

// Params bundles the reoptimization tunables spec.md §6 lists as the
// settings bundle's reopt.* keys, configured through functional options
// in the style consistent across ciplp's packages (lp.Config,
// tolerance.Settings).
type Params struct {
	SaveSols            int
	Delay               float64
	MaxSavedNodes        int
	MaxDiffOfNodes       int
	DynamicDiffOfNodes   bool
	ShrinkTransit        bool
	ReduceToFrontier     bool
	SaveLPBasis          bool
	LocalDelay           float64
	ObjSimRootLP         float64
	ForceHeurRestart     int
	SolveLP              int
	SolveLPDiff          int
	SepaInfSubtrees      bool // reopt.globalcons.sepainfsubtrees
	SepaSols             bool // reopt.localcons.sepasols
}

// Option customizes a Params before it is handed to NewParams.
type Option func(*Params)

// WithSaveSols sets the maximum number of solutions SolTree retains.
func WithSaveSols(n int) Option { return func(p *Params) { p.SaveSols = n } }

// WithDelay sets the similarity threshold below which a global restart
// is triggered (spec.md §4.8).
func WithDelay(delay float64) Option { return func(p *Params) { p.Delay = delay } }

// WithMaxSavedNodes sets the stored-node count above which a global
// restart is triggered.
func WithMaxSavedNodes(n int) Option { return func(p *Params) { p.MaxSavedNodes = n } }

// WithMaxDiffOfNodes sets the static path-shrinking threshold.
func WithMaxDiffOfNodes(n int) Option { return func(p *Params) { p.MaxDiffOfNodes = n } }

// WithDynamicDiffOfNodes toggles the dynamic path-shrinking threshold
// (ceil(log2(nbinvars - pathlen))) in place of the static one.
func WithDynamicDiffOfNodes(b bool) Option { return func(p *Params) { p.DynamicDiffOfNodes = b } }

// WithShrinkTransit toggles path-shrinking for transit/logicornode/leaf
// nodes with no local constraints.
func WithShrinkTransit(b bool) Option { return func(p *Params) { p.ShrinkTransit = b } }

// WithReduceToFrontier toggles pruning feasible/pruned subtrees down to
// their frontier on save.
func WithReduceToFrontier(b bool) Option { return func(p *Params) { p.ReduceToFrontier = b } }

// WithSaveLPBasis sets the SaveLPBasis flag. The flag is only recorded:
// nothing in this package reads it, and no LP basis is captured on save.
func WithSaveLPBasis(b bool) Option { return func(p *Params) { p.SaveLPBasis = b } }

// WithLocalDelay sets the local (per-node) similarity delay.
func WithLocalDelay(delay float64) Option { return func(p *Params) { p.LocalDelay = delay } }

// WithObjSimRootLP sets the root-LP objective-similarity threshold.
func WithObjSimRootLP(sim float64) Option { return func(p *Params) { p.ObjSimRootLP = sim } }

// WithForceHeurRestart sets the repeated-optimum count after which a
// restart is forced to escape a reopt-driven heuristic rut.
func WithForceHeurRestart(n int) Option { return func(p *Params) { p.ForceHeurRestart = n } }

// WithSolveLP sets how many LPs are resolved per reoptimized node.
func WithSolveLP(n int) Option { return func(p *Params) { p.SolveLP = n } }

// WithSolveLPDiff sets the bound-change-count difference above which a
// reoptimized node's LP is resolved rather than reused.
func WithSolveLPDiff(n int) Option { return func(p *Params) { p.SolveLPDiff = n } }

// WithSepaInfSubtrees toggles separating global constraints for
// infeasible subtrees.
func WithSepaInfSubtrees(b bool) Option { return func(p *Params) { p.SepaInfSubtrees = b } }

// WithSepaSols toggles separating local constraints for stored
// solutions.
func WithSepaSols(b bool) Option { return func(p *Params) { p.SepaSols = b } }

// NewParams builds a Params from package defaults plus opts, applied in
// order (later options win).
func NewParams(opts ...Option) *Params {
	p := &Params{
		SaveSols:           100,
		Delay:              0.8,
		MaxSavedNodes:      1000,
		MaxDiffOfNodes:     5,
		DynamicDiffOfNodes: true,
		ShrinkTransit:      true,
		ReduceToFrontier:   true,
		LocalDelay:         0.8,
		ObjSimRootLP:       0,
		ForceHeurRestart:   3,
		SolveLP:            0,
		SolveLPDiff:        0,
		SepaInfSubtrees:    true,
		SepaSols:           false,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
