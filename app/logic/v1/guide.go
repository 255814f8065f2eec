package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sproutplan/sproutplan/app/core"
	"github.com/sproutplan/sproutplan/pkg/ai"
	"github.com/sproutplan/sproutplan/pkg/errors"
	"github.com/sproutplan/sproutplan/pkg/i18n"
	"github.com/sproutplan/sproutplan/pkg/rag"
	"github.com/sproutplan/sproutplan/pkg/types"
)

// GuideLogic runs the retrieval and generation pipeline for one teacher
// request.
type GuideLogic struct {
	ctx  context.Context
	core *core.Core
	user types.UserTokenMeta
}

func NewGuideLogic(ctx context.Context, core *core.Core) *GuideLogic {
	user, _ := InjectUserMeta(ctx)
	return &GuideLogic{
		ctx:  ctx,
		core: core,
		user: user,
	}
}

type GenerateGuideResult struct {
	Guide   *types.Guide `json:"guide"`
	Sources []string     `json:"sources"`
}

// Generate produces an activity guide. Per-user rate limiting and a
// process-wide concurrency cap guard the provider; both reject with 429
// rather than queueing.
func (l *GuideLogic) Generate(req *types.PlanRequest) (*GenerateGuideResult, error) {
	if req.AgeCohort == "" || req.Domain == "" || req.Component == "" {
		return nil, errors.New("GuideLogic.Generate.args", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}
	if req.PlayTypeName == "" {
		req.PlayTypeName = "Not specified"
	}
	if req.PlayTypeContext == "" {
		req.PlayTypeContext = types.PLAY_CONTEXT_STANDARD
	}

	if !l.core.GenerateLimiter().Allow(l.user.UserID) {
		return nil, errors.New("GuideLogic.Generate.rateLimit", i18n.ERROR_TOO_MANY_REQUESTS, nil).Code(http.StatusTooManyRequests)
	}

	if !l.core.Semaphore().TryAcquire() {
		return nil, errors.New("GuideLogic.Generate.semaphore", i18n.ERROR_TOO_MANY_REQUESTS, nil).Code(http.StatusTooManyRequests)
	}
	defer l.core.Semaphore().Release()

	timer := l.core.Metrics().AIRequestTimer("generate_guide")
	defer timer.ObserveDuration()

	retriever := rag.NewRetriever(l.core.Srv().AI(), l.core.Store().ChunkStore())
	orchestrator := rag.NewOrchestrator(retriever, l.core.Srv().AI())

	result, err := orchestrator.Generate(l.ctx, req)
	if err != nil {
		l.core.Metrics().AIErrorInc("generate_guide")
		return nil, l.wrapGenerateError(err)
	}

	logActivity(l.ctx, l.core, l.user.UserID, fmt.Sprintf("Generated RAG plan for %s, '%s'", req.AgeCohort, req.Component))

	return &GenerateGuideResult{
		Guide:   result.Guide,
		Sources: result.Sources,
	}, nil
}

func (l *GuideLogic) wrapGenerateError(err error) error {
	var (
		embedErr  *ai.EmbeddingError
		genErr    *ai.GenerationError
		schemaErr *ai.SchemaError
	)
	switch {
	case errors.Is(err, ai.ErrNotConfigured):
		return errors.New("GuideLogic.Generate.notConfigured", i18n.ERROR_AI_NOT_CONFIGURED, err).Code(http.StatusServiceUnavailable)
	case errors.As(err, &schemaErr):
		return errors.New("GuideLogic.Generate.schema", i18n.ERROR_AI_INCOMPLETE_GUIDE, err).Code(http.StatusBadGateway)
	case errors.As(err, &embedErr):
		return errors.New("GuideLogic.Generate.embedding", i18n.ERROR_AI_EMBEDDING_FAILED, err).Code(http.StatusBadGateway)
	case errors.As(err, &genErr):
		return errors.New("GuideLogic.Generate.generation", i18n.ERROR_AI_GENERATE_FAILED, err).Code(http.StatusBadGateway)
	default:
		return errors.New("GuideLogic.Generate", i18n.ERROR_INTERNAL, err)
	}
}
