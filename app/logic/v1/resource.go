package v1

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sproutplan/sproutplan/app/core"
	"github.com/sproutplan/sproutplan/pkg/errors"
	"github.com/sproutplan/sproutplan/pkg/i18n"
	"github.com/sproutplan/sproutplan/pkg/rag"
	"github.com/sproutplan/sproutplan/pkg/types"
	"github.com/sproutplan/sproutplan/pkg/utils"
)

// ResourceLogic manages the expert resource library and its vector
// index. Every write to the library also rebuilds the affected chunks.
type ResourceLogic struct {
	ctx  context.Context
	core *core.Core
	user types.UserTokenMeta

	ingestor *rag.Ingestor
}

func NewResourceLogic(ctx context.Context, core *core.Core) *ResourceLogic {
	user, _ := InjectUserMeta(ctx)
	return &ResourceLogic{
		ctx:      ctx,
		core:     core,
		user:     user,
		ingestor: rag.NewIngestor(rag.NewLoader(), core.Srv().AI(), &chunkRebuilder{core: core}),
	}
}

// chunkRebuilder swaps a resource's chunks atomically: the stale set is
// deleted, the new set inserted and the resource's chunk count updated
// in one transaction.
type chunkRebuilder struct {
	core *core.Core
}

func (r *chunkRebuilder) Rebuild(ctx context.Context, resourceID string, chunks []*types.Chunk) error {
	return r.core.Store().Transaction(ctx, func(ctx context.Context) error {
		if err := r.core.Store().ChunkStore().DeleteByResource(ctx, resourceID); err != nil {
			return err
		}
		if err := r.core.Store().ChunkStore().BatchCreate(ctx, chunks); err != nil {
			return err
		}
		return r.core.Store().ResourceStore().UpdateChunkCount(ctx, resourceID, len(chunks))
	})
}

func (l *ResourceLogic) ListResources(page, pageSize uint64) ([]types.ResourceDetail, int64, error) {
	list, err := l.core.Store().ResourceStore().List(l.ctx, page, pageSize)
	if err != nil && err != sql.ErrNoRows {
		return nil, 0, errors.New("ResourceLogic.ListResources.ResourceStore.List", i18n.ERROR_INTERNAL, err)
	}

	total, err := l.core.Store().ResourceStore().Total(l.ctx)
	if err != nil {
		return nil, 0, errors.New("ResourceLogic.ListResources.ResourceStore.Total", i18n.ERROR_INTERNAL, err)
	}

	res := make([]types.ResourceDetail, 0, len(list))
	for _, item := range list {
		detail, err := l.resourceDetail(item)
		if err != nil {
			return nil, 0, err
		}
		res = append(res, detail)
	}
	return res, total, nil
}

func (l *ResourceLogic) GetResource(id string) (*types.ResourceDetail, error) {
	resource, err := l.core.Store().ResourceStore().Get(l.ctx, id)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("ResourceLogic.GetResource.ResourceStore.Get", i18n.ERROR_INTERNAL, err)
	}
	if resource == nil {
		return nil, errors.New("ResourceLogic.GetResource.nil", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	detail, err := l.resourceDetail(*resource)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (l *ResourceLogic) resourceDetail(resource types.Resource) (types.ResourceDetail, error) {
	cohortIDs, err := l.core.Store().ResourceStore().ListAgeCohortIDs(l.ctx, resource.ID)
	if err != nil && err != sql.ErrNoRows {
		return types.ResourceDetail{}, errors.New("ResourceLogic.resourceDetail.ListAgeCohortIDs", i18n.ERROR_INTERNAL, err)
	}
	domainIDs, err := l.core.Store().ResourceStore().ListDomainIDs(l.ctx, resource.ID)
	if err != nil && err != sql.ErrNoRows {
		return types.ResourceDetail{}, errors.New("ResourceLogic.resourceDetail.ListDomainIDs", i18n.ERROR_INTERNAL, err)
	}
	return types.ResourceDetail{
		Resource:     resource,
		AgeCohortIDs: cohortIDs,
		DomainIDs:    domainIDs,
	}, nil
}

// SaveUpload writes a pdf upload into the upload directory and returns
// the stored path for the resource's content_path.
func (l *ResourceLogic) SaveUpload(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil || fileHeader.Filename == "" {
		return "", errors.New("ResourceLogic.SaveUpload.empty", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	dir := l.core.Cfg().Upload.Path()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.New("ResourceLogic.SaveUpload.MkdirAll", i18n.ERROR_INTERNAL, err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", errors.New("ResourceLogic.SaveUpload.Open", i18n.ERROR_INTERNAL, err)
	}
	defer src.Close()

	// Uploads are renamed, the original filename is only kept as a suffix.
	dst := filepath.Join(dir, fmt.Sprintf("%s_%s", utils.GenUniqIDStr(), filepath.Base(fileHeader.Filename)))
	out, err := os.Create(dst)
	if err != nil {
		return "", errors.New("ResourceLogic.SaveUpload.Create", i18n.ERROR_INTERNAL, err)
	}
	defer out.Close()

	if _, err = io.Copy(out, src); err != nil {
		return "", errors.New("ResourceLogic.SaveUpload.Copy", i18n.ERROR_INTERNAL, err)
	}
	return dst, nil
}

// CreateResource stores the resource with its tag links and ingests it
// into the vector index. An ingestion failure does not roll the resource
// back, the library entry stays and can be re-indexed later.
func (l *ResourceLogic) CreateResource(title, resourceType, contentPath string, ageCohortIDs, domainIDs []int64) (*types.ResourceDetail, error) {
	resource := types.Resource{
		ID:           utils.GenUniqIDStr(),
		Title:        title,
		ResourceType: resourceType,
		ContentPath:  contentPath,
		CreatedAt:    time.Now().Unix(),
	}

	err := l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().ResourceStore().Create(ctx, resource); err != nil {
			return errors.New("ResourceLogic.CreateResource.ResourceStore.Create", i18n.ERROR_INTERNAL, err)
		}
		if err := l.core.Store().ResourceStore().SetAgeCohorts(ctx, resource.ID, ageCohortIDs); err != nil {
			return errors.New("ResourceLogic.CreateResource.SetAgeCohorts", i18n.ERROR_INTERNAL, err)
		}
		if err := l.core.Store().ResourceStore().SetDomains(ctx, resource.ID, domainIDs); err != nil {
			return errors.New("ResourceLogic.CreateResource.SetDomains", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err = l.Ingest(resource.ID); err != nil {
		slog.Error("resource created but ingestion failed",
			slog.String("resource_id", resource.ID),
			slog.String("title", title),
			slog.Any("error", err))
	}

	logActivity(l.ctx, l.core, l.user.UserID, fmt.Sprintf("Admin uploaded resource: %s", title))

	detail, err := l.resourceDetail(resource)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (l *ResourceLogic) UpdateResource(id, title, resourceType, contentPath string, ageCohortIDs, domainIDs []int64) error {
	err := l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().ResourceStore().Update(ctx, id, title, resourceType, contentPath); err != nil {
			return errors.New("ResourceLogic.UpdateResource.ResourceStore.Update", i18n.ERROR_INTERNAL, err)
		}
		if err := l.core.Store().ResourceStore().SetAgeCohorts(ctx, id, ageCohortIDs); err != nil {
			return errors.New("ResourceLogic.UpdateResource.SetAgeCohorts", i18n.ERROR_INTERNAL, err)
		}
		if err := l.core.Store().ResourceStore().SetDomains(ctx, id, domainIDs); err != nil {
			return errors.New("ResourceLogic.UpdateResource.SetDomains", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err = l.Ingest(id); err != nil {
		slog.Error("resource updated but ingestion failed",
			slog.String("resource_id", id),
			slog.Any("error", err))
	}
	return nil
}

// DeleteResource removes the resource, its tag links and its chunks in
// one transaction.
func (l *ResourceLogic) DeleteResource(id string) error {
	resource, err := l.core.Store().ResourceStore().Get(l.ctx, id)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("ResourceLogic.DeleteResource.ResourceStore.Get", i18n.ERROR_INTERNAL, err)
	}
	if resource == nil {
		return errors.New("ResourceLogic.DeleteResource.nil", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	err = l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().ChunkStore().DeleteByResource(ctx, id); err != nil {
			return errors.New("ResourceLogic.DeleteResource.ChunkStore.DeleteByResource", i18n.ERROR_INTERNAL, err)
		}
		if err := l.core.Store().ResourceStore().Delete(ctx, id); err != nil {
			return errors.New("ResourceLogic.DeleteResource.ResourceStore.Delete", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logActivity(l.ctx, l.core, l.user.UserID, fmt.Sprintf("Admin deleted resource: %s", resource.Title))
	return nil
}

// Ingest loads, chunks and embeds one resource, replacing whatever the
// index held for it.
func (l *ResourceLogic) Ingest(id string) error {
	detail, err := l.GetResource(id)
	if err != nil {
		return err
	}

	domains, err := l.tagNames(l.core.Store().DomainStore().Get, detail.DomainIDs)
	if err != nil {
		return err
	}
	cohorts, err := l.cohortNames(detail.AgeCohortIDs)
	if err != nil {
		return err
	}

	count, err := l.ingestor.Ingest(l.ctx, &detail.Resource, domains, cohorts)
	if err != nil {
		var loadErr *rag.LoadError
		if errors.As(err, &loadErr) {
			return errors.New("ResourceLogic.Ingest.Load", i18n.ERROR_RESOURCE_LOAD_FAILED, err).Code(http.StatusUnprocessableEntity)
		}
		return errors.New("ResourceLogic.Ingest", i18n.ERROR_INTERNAL, err)
	}

	l.core.Metrics().IngestChunks(count)
	return nil
}

// ListChunks pages through a resource's indexed chunks, mainly for
// checking what ingestion produced.
func (l *ResourceLogic) ListChunks(resourceID string, page, pageSize uint64) ([]types.Chunk, int64, error) {
	if _, err := l.GetResource(resourceID); err != nil {
		return nil, 0, err
	}

	opts := types.GetChunksOptions{ResourceID: resourceID}
	list, err := l.core.Store().ChunkStore().List(l.ctx, opts, page, pageSize)
	if err != nil && err != sql.ErrNoRows {
		return nil, 0, errors.New("ResourceLogic.ListChunks.ChunkStore.List", i18n.ERROR_INTERNAL, err)
	}

	total, err := l.core.Store().ChunkStore().Total(l.ctx, opts)
	if err != nil {
		return nil, 0, errors.New("ResourceLogic.ListChunks.ChunkStore.Total", i18n.ERROR_INTERNAL, err)
	}
	return list, total, nil
}

func (l *ResourceLogic) tagNames(get func(context.Context, int64) (*types.Domain, error), ids []int64) ([]string, error) {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		item, err := get(l.ctx, id)
		if err != nil && err != sql.ErrNoRows {
			return nil, errors.New("ResourceLogic.tagNames.Get", i18n.ERROR_INTERNAL, err)
		}
		if item != nil {
			names = append(names, item.Name)
		}
	}
	return names, nil
}

func (l *ResourceLogic) cohortNames(ids []int64) ([]string, error) {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		item, err := l.core.Store().AgeCohortStore().Get(l.ctx, id)
		if err != nil && err != sql.ErrNoRows {
			return nil, errors.New("ResourceLogic.cohortNames.Get", i18n.ERROR_INTERNAL, err)
		}
		if item != nil {
			names = append(names, item.Name)
		}
	}
	return names, nil
}

// ReindexFailure reports one resource the batch could not ingest.
type ReindexFailure struct {
	ResourceID string `json:"resource_id"`
	Title      string `json:"title"`
	Error      string `json:"error"`
}

// ReindexAll rebuilds the whole vector index, resource by resource. Run
// after switching the embedding driver, the stored vectors are only
// comparable within one model. A failed resource is skipped and reported
// so one bad link cannot block the rest of the library.
func (l *ResourceLogic) ReindexAll() (int, []ReindexFailure, error) {
	var (
		page      uint64 = 1
		processed int
		failures  []ReindexFailure
	)
	for {
		list, err := l.core.Store().ResourceStore().List(l.ctx, page, 50)
		if err != nil && err != sql.ErrNoRows {
			return processed, failures, errors.New("ResourceLogic.ReindexAll.ResourceStore.List", i18n.ERROR_INTERNAL, err)
		}
		if len(list) == 0 {
			return processed, failures, nil
		}

		n, failed := reindexResources(list, l.Ingest)
		processed += n
		failures = append(failures, failed...)
		page++
	}
}

func reindexResources(list []types.Resource, ingest func(id string) error) (int, []ReindexFailure) {
	var (
		processed int
		failures  []ReindexFailure
	)
	for _, resource := range list {
		if err := ingest(resource.ID); err != nil {
			slog.Error("reindex skipped resource",
				slog.String("resource_id", resource.ID),
				slog.String("title", resource.Title),
				slog.Any("error", err))
			failures = append(failures, ReindexFailure{
				ResourceID: resource.ID,
				Title:      resource.Title,
				Error:      err.Error(),
			})
			continue
		}
		processed++
	}
	return processed, failures
}
