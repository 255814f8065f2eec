package types

const NO_PAGINATION = 0

const (
	LANGUAGE_EN_KEY = "en"
	LANGUAGE_CN_KEY = "zh-CN"
)

// Retrieval defaults. The chunk window mirrors the resource library's
// ingestion settings; retrieval picks 4 diverse chunks from a wider
// candidate pool.
const (
	CHUNK_MAX_SIZE      = 1000
	CHUNK_OVERLAP       = 200
	RETRIEVE_TOP_K      = 4
	RETRIEVE_CANDIDATES = 20
	RETRIEVE_LAMBDA     = 0.5
)

// NO_CONTEXT_SENTINEL replaces the retrieved context when the index has
// nothing relevant, so prompt assembly can steer the model to its general
// knowledge instead of an empty block.
const NO_CONTEXT_SENTINEL = "No specific expert context was found in the resource library. " +
	"Generate the plan based on your general knowledge as an early childhood expert."

// FALLBACK_SOURCE is the single source label reported alongside the
// sentinel.
const FALLBACK_SOURCE = "General Knowledge"
