package pkg

const (
	INVALID_PARTITION_ID = -1
	DEFAULT_MARGIN       = 10
	DEFAULT_PART_COUNT   = 2
)

// kernighan-lin
const (
	KL_DEFAULT_MAX_ITERATION        = 50
	KL_LARGE_GRAPH_MAX_ITERATION    = 20
	KL_LARGE_GRAPH_VERTEX_THRESHOLD = 5000
)

// perturbation
const (
	PERTURBATION_MAX_ATTEMPT_FACTOR = 10
	PERTURBATION_TARGET_PART_TRIES  = 10
	FIRST_PERTURBATION_RATIO        = 0.15
	NEXT_PERTURBATION_RATIO         = 0.10
)

// hybrid
const (
	HYBRID_BASE_RANDOM_TRIALS            = 3
	HYBRID_SPARSE_DENSITY                = 0.01
	HYBRID_MEDIUM_DENSITY                = 0.1
	HYBRID_LARGE_GRAPH_VERTEX_THRESHOLD  = 10000
	HYBRID_LARGE_GRAPH_RANDOM_TRIALS     = 2
	HYBRID_PERTURBATION_ROUNDS           = 2
	HYBRID_PERTURBATION_ROUNDS_LARGE     = 3
	HYBRID_PERTURBATION_VERTEX_THRESHOLD = 1000
)
