package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/ParthChaturvedi07/InvestorSarthi/internal/cache"
	apperrors "github.com/ParthChaturvedi07/InvestorSarthi/internal/errors"
	"github.com/ParthChaturvedi07/InvestorSarthi/internal/model"
	"github.com/ParthChaturvedi07/InvestorSarthi/internal/repository"
	"github.com/ParthChaturvedi07/InvestorSarthi/internal/storage"
)

const projectCacheTTL = 5 * time.Minute

// galleryFolder is the blob-storage folder gallery images are uploaded under.
const galleryFolder = "projects"

// ProjectService handles listing operations and gallery management.
type ProjectService interface {
	Create(ctx context.Context, project *model.Project) (*model.Project, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Project, error)
	List(ctx context.Context, typeFilter string) ([]model.Project, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddGalleryImages(ctx context.Context, id uuid.UUID, files [][]byte) (*model.Project, error)
	RemoveGalleryImage(ctx context.Context, id uuid.UUID, imageURL string) (*model.Project, error)
}

type projectService struct {
	repo    repository.ProjectRepository
	storage storage.Storage
	cache   *cache.Client
}

// NewProjectService creates a new project service.
func NewProjectService(repo repository.ProjectRepository, storage storage.Storage, cache *cache.Client) ProjectService {
	return &projectService{
		repo:    repo,
		storage: storage,
		cache:   cache,
	}
}

func (s *projectService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("project:%s", id.String())
}

func (s *projectService) findProject(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return project, nil
}

// Create persists a new project. The gallery starts empty unless the caller
// provided one that already fits the cap.
func (s *projectService) Create(ctx context.Context, project *model.Project) (*model.Project, error) {
	if len(project.Gallery) > model.GalleryLimit {
		return nil, apperrors.ErrGalleryFull
	}
	if project.Gallery == nil {
		project.Gallery = model.StringList{}
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

// Get retrieves a project by ID with read-through caching.
func (s *projectService) Get(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Project
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	project, err := s.findProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(project); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, projectCacheTTL)
	}
	return project, nil
}

// List returns projects most recent first, optionally filtered by type.
func (s *projectService) List(ctx context.Context, typeFilter string) ([]model.Project, error) {
	return s.repo.List(ctx, typeFilter)
}

// Update applies a partial field-merge update. Gallery is out of bounds here;
// it is managed only through the dedicated gallery operations.
func (s *projectService) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Project, error) {
	if _, err := s.findProject(ctx, id); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
			return nil, fmt.Errorf("update project: %w", err)
		}
		_ = s.cache.Delete(ctx, s.cacheKey(id))
	}
	return s.findProject(ctx, id)
}

// Delete removes a project and best-effort deletes its gallery blobs. The
// row delete is the primary effect; blob cleanup failures are only logged.
func (s *projectService) Delete(ctx context.Context, id uuid.UUID) error {
	project, err := s.findProject(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))

	for _, url := range project.Gallery {
		if err := s.storage.DeleteByURL(ctx, url); err != nil {
			log.Printf("gallery blob cleanup failed for %s: %v", url, err)
		}
	}
	return nil
}

// AddGalleryImages uploads files concurrently and appends the resulting URLs
// to the gallery, preserving input order. The quota is checked before any
// upload is attempted, and nothing is persisted unless every upload succeeds.
func (s *projectService) AddGalleryImages(ctx context.Context, id uuid.UUID, files [][]byte) (*model.Project, error) {
	project, err := s.findProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, apperrors.ErrNoFilesUploaded
	}
	if len(project.Gallery)+len(files) > model.GalleryLimit {
		return nil, apperrors.ErrGalleryFull
	}

	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			url, err := s.storage.Upload(gctx, file, galleryFolder)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
	}

	gallery := make(model.StringList, 0, len(project.Gallery)+len(urls))
	gallery = append(gallery, project.Gallery...)
	gallery = append(gallery, urls...)

	ok, err := s.repo.UpdateGallery(ctx, id, gallery, project.Version)
	if err != nil {
		return nil, fmt.Errorf("persist gallery: %w", err)
	}
	if !ok {
		return nil, apperrors.ErrGalleryConflict
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))

	project.Gallery = gallery
	project.Version++
	return project, nil
}

// RemoveGalleryImage drops a URL from the gallery and persists, then
// best-effort deletes the blob. The document update is the primary effect;
// a failed blob delete never undoes it.
func (s *projectService) RemoveGalleryImage(ctx context.Context, id uuid.UUID, imageURL string) (*model.Project, error) {
	project, err := s.findProject(ctx, id)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, url := range project.Gallery {
		if url == imageURL {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.ErrImageNotInGallery
	}

	gallery := make(model.StringList, 0, len(project.Gallery)-1)
	gallery = append(gallery, project.Gallery[:idx]...)
	gallery = append(gallery, project.Gallery[idx+1:]...)

	ok, err := s.repo.UpdateGallery(ctx, id, gallery, project.Version)
	if err != nil {
		return nil, fmt.Errorf("persist gallery: %w", err)
	}
	if !ok {
		return nil, apperrors.ErrGalleryConflict
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))

	if err := s.storage.DeleteByURL(ctx, imageURL); err != nil {
		log.Printf("gallery blob cleanup failed for %s: %v", imageURL, err)
	}

	project.Gallery = gallery
	project.Version++
	return project, nil
}
