package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/laptop_store/internal/events"
	"github.com/Skotchmaster/laptop_store/internal/logging"
	"github.com/Skotchmaster/laptop_store/internal/models"
	"github.com/Skotchmaster/laptop_store/internal/repo"
)

type CatalogService struct {
	Laptops LaptopStore
	Index   Indexer
	Images  ImageStore
	Events  Publisher
}

type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

func laptopErr(op, id string, err error) error {
	if errors.Is(err, repo.ErrNotFound) || errors.Is(err, repo.ErrNotModified) {
		return fmt.Errorf("%s %s: %w: %w", op, id, ErrNotFound, err)
	}
	return fmt.Errorf("%s %s: %w", op, id, err)
}

func (s *CatalogService) index(ctx context.Context, l models.Laptop) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexLaptop(ctx, l); err != nil {
		logging.FromContext(ctx).Warn("index_laptop_error", "id", l.ID, "error", err)
	}
}

func (s *CatalogService) Create(ctx context.Context, l models.Laptop) (*models.Laptop, error) {
	l.ID = ""
	l.Normalize()
	if err := s.Laptops.CreateLaptop(ctx, &l); err != nil {
		return nil, fmt.Errorf("create laptop: %w", err)
	}

	s.index(ctx, l)
	publish(ctx, s.Events, events.TopicLaptops, l.ID, "laptop_created", l)
	return &l, nil
}

func (s *CatalogService) List(ctx context.Context) ([]models.Laptop, error) {
	items, err := s.Laptops.ListLaptops(ctx)
	if err != nil {
		return nil, fmt.Errorf("list laptops: %w", err)
	}
	return items, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*models.Laptop, error) {
	l, err := s.Laptops.GetLaptop(ctx, id)
	if err != nil {
		return nil, laptopErr("get laptop", id, err)
	}
	return l, nil
}

// Update replaces every mutable field. A replacement that changes nothing is
// reported as ErrNotFound wrapping repo.ErrNotModified.
func (s *CatalogService) Update(ctx context.Context, id string, upd models.Laptop) (*models.Laptop, error) {
	upd.Normalize()
	l, err := s.Laptops.UpdateLaptop(ctx, id, upd)
	if err != nil {
		return nil, laptopErr("update laptop", id, err)
	}

	s.index(ctx, *l)
	publish(ctx, s.Events, events.TopicLaptops, l.ID, "laptop_updated", l)
	return l, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.Laptops.DeleteLaptop(ctx, id); err != nil {
		return laptopErr("delete laptop", id, err)
	}

	if s.Index != nil {
		if err := s.Index.DeleteLaptop(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("unindex_laptop_error", "id", id, "error", err)
		}
	}
	publish(ctx, s.Events, events.TopicLaptops, id, "laptop_deleted", map[string]any{"id": id})
	return nil
}

// Import inserts the records in order. On failure the returned count holds the
// records stored before the rejected one.
func (s *CatalogService) Import(ctx context.Context, items []models.Laptop) (int, error) {
	for i := range items {
		items[i].ID = ""
		items[i].Normalize()
	}

	n, err := s.Laptops.InsertLaptops(ctx, items)
	if n > 0 && s.Index != nil {
		if ierr := s.Index.IndexLaptops(ctx, items[:n]); ierr != nil {
			logging.FromContext(ctx).Warn("index_import_error", "count", n, "error", ierr)
		}
	}
	if err != nil {
		return n, fmt.Errorf("import laptops: %w", err)
	}

	publish(ctx, s.Events, events.TopicLaptops, "import", "laptops_imported", map[string]any{"inserted_count": n})
	return n, nil
}

// Reindex copies the whole catalog into the search index. It is a no-op
// without an index.
func (s *CatalogService) Reindex(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, nil
	}
	items, err := s.Laptops.ListLaptops(ctx)
	if err != nil {
		return 0, fmt.Errorf("list laptops: %w", err)
	}
	if len(items) == 0 {
		return 0, nil
	}
	if err := s.Index.IndexLaptops(ctx, items); err != nil {
		return 0, fmt.Errorf("index laptops: %w", err)
	}
	return len(items), nil
}

func (s *CatalogService) Search(ctx context.Context, f models.LaptopFilter) ([]models.Laptop, error) {
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return nil, fmt.Errorf("%w: min_price is greater than max_price", ErrValidation)
	}
	f.Brand = strings.TrimSpace(f.Brand)

	var (
		items []models.Laptop
		err   error
	)
	if s.Index != nil {
		items, err = s.Index.SearchLaptops(ctx, f)
		if err != nil {
			logging.FromContext(ctx).Warn("index_search_error", "error", err)
			items = nil
		}
	}
	if items == nil {
		items, err = s.Laptops.SearchLaptops(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("search laptops: %w", err)
		}
	}

	out := make([]models.Laptop, 0, len(items))
	for _, l := range items {
		if f.Match(l) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *CatalogService) SetImage(ctx context.Context, id string, img ImageUpload) (*models.Laptop, error) {
	if s.Images == nil {
		return nil, ErrImagesDisabled
	}
	if !strings.HasPrefix(img.ContentType, "image/") {
		return nil, fmt.Errorf("%w: content type %q is not an image", ErrValidation, img.ContentType)
	}
	if _, err := s.Laptops.GetLaptop(ctx, id); err != nil {
		return nil, laptopErr("get laptop", id, err)
	}

	key := fmt.Sprintf("laptops/%s/%s%s", id, uuid.NewString(), strings.ToLower(path.Ext(img.Filename)))
	url, err := s.Images.PutImage(ctx, key, img.Body, img.Size, img.ContentType)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	l, err := s.Laptops.SetLaptopImage(ctx, id, url)
	if err != nil {
		return nil, laptopErr("set laptop image", id, err)
	}

	s.index(ctx, *l)
	publish(ctx, s.Events, events.TopicLaptops, l.ID, "laptop_updated", l)
	return l, nil
}
