package concept

// OntologyLabel is one item of the fixed, domain-neutral shared vocabulary
// used as an interlingua between knowledge domains. The set is closed:
// translation results outside it are contract violations.
type OntologyLabel string

const (
	LabelSignalPropagation  OntologyLabel = "signal_propagation"
	LabelSelectiveFocus     OntologyLabel = "selective_focus"
	LabelDispatchRouting    OntologyLabel = "dispatch_routing"
	LabelFeedbackRegulation OntologyLabel = "feedback_regulation"
	LabelRedundancy         OntologyLabel = "redundancy_fault_tolerance"
	LabelHierarchy          OntologyLabel = "hierarchical_composition"
	LabelGradientFollowing  OntologyLabel = "gradient_following"
	LabelResourcePooling    OntologyLabel = "resource_pooling"
	LabelBoundaryEnforce    OntologyLabel = "boundary_enforcement"
	LabelPhaseTransition    OntologyLabel = "phase_transition"
	LabelSymbiosis          OntologyLabel = "symbiosis_mutualism"
	LabelCompression        OntologyLabel = "compression_summarization"
)

// AllLabels lists the shared ontology in a stable order
var AllLabels = []OntologyLabel{
	LabelSignalPropagation,
	LabelSelectiveFocus,
	LabelDispatchRouting,
	LabelFeedbackRegulation,
	LabelRedundancy,
	LabelHierarchy,
	LabelGradientFollowing,
	LabelResourcePooling,
	LabelBoundaryEnforce,
	LabelPhaseTransition,
	LabelSymbiosis,
	LabelCompression,
}

var labelSet = func() map[OntologyLabel]bool {
	set := make(map[OntologyLabel]bool, len(AllLabels))
	for _, l := range AllLabels {
		set[l] = true
	}
	return set
}()

// IsOntologyLabel reports whether s belongs to the closed shared vocabulary
func IsOntologyLabel(s string) bool {
	return labelSet[OntologyLabel(s)]
}

// String returns the string representation
func (l OntologyLabel) String() string { return string(l) }

// labelAffinity holds the precomputed pairwise affinity between distinct
// labels. Keys are canonically ordered (lexicographic). Pairs absent from
// the table share only the weak baseline relatedness every label has.
var labelAffinity = map[[2]OntologyLabel]float64{
	pairKey(LabelSignalPropagation, LabelDispatchRouting):    0.70,
	pairKey(LabelSignalPropagation, LabelFeedbackRegulation): 0.55,
	pairKey(LabelSignalPropagation, LabelGradientFollowing):  0.45,
	pairKey(LabelSelectiveFocus, LabelCompression):           0.60,
	pairKey(LabelSelectiveFocus, LabelBoundaryEnforce):       0.50,
	pairKey(LabelSelectiveFocus, LabelDispatchRouting):       0.40,
	pairKey(LabelDispatchRouting, LabelResourcePooling):      0.55,
	pairKey(LabelDispatchRouting, LabelHierarchy):            0.45,
	pairKey(LabelFeedbackRegulation, LabelGradientFollowing): 0.65,
	pairKey(LabelFeedbackRegulation, LabelPhaseTransition):   0.45,
	pairKey(LabelRedundancy, LabelResourcePooling):           0.60,
	pairKey(LabelRedundancy, LabelSymbiosis):                 0.40,
	pairKey(LabelHierarchy, LabelCompression):                0.50,
	pairKey(LabelHierarchy, LabelBoundaryEnforce):            0.45,
	pairKey(LabelGradientFollowing, LabelPhaseTransition):    0.50,
	pairKey(LabelResourcePooling, LabelSymbiosis):            0.55,
	pairKey(LabelBoundaryEnforce, LabelPhaseTransition):      0.35,
	pairKey(LabelSymbiosis, LabelFeedbackRegulation):         0.45,
	pairKey(LabelCompression, LabelSignalPropagation):        0.35,
}

// baselineAffinity applies to label pairs with no tabled relationship.
const baselineAffinity = 0.15

func pairKey(a, b OntologyLabel) [2]OntologyLabel {
	if b < a {
		a, b = b, a
	}
	return [2]OntologyLabel{a, b}
}

// LabelAffinity returns the affinity between two ontology labels in [0,1].
// Identical labels have maximum affinity.
func LabelAffinity(a, b OntologyLabel) float64 {
	if a == b {
		return 1.0
	}
	if v, ok := labelAffinity[pairKey(a, b)]; ok {
		return v
	}
	return baselineAffinity
}
