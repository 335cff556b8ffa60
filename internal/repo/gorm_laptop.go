package repo

import (
	"context"

	"github.com/Skotchmaster/laptop_store/internal/models"
)

func (r *GormRepo) CreateLaptop(ctx context.Context, l *models.Laptop) error {
	return r.DB.WithContext(ctx).Create(l).Error
}

func (r *GormRepo) ListLaptops(ctx context.Context) ([]models.Laptop, error) {
	items := []models.Laptop{}
	if err := r.DB.WithContext(ctx).Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetLaptop(ctx context.Context, id string) (*models.Laptop, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	var l models.Laptop
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&l).Error; err != nil {
		return nil, notFound(err)
	}
	return &l, nil
}

// UpdateLaptop replaces the mutable fields. A replacement equal to the stored
// record yields ErrNotModified.
func (r *GormRepo) UpdateLaptop(ctx context.Context, id string, upd models.Laptop) (*models.Laptop, error) {
	current, err := r.GetLaptop(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.SameContent(upd) {
		return nil, ErrNotModified
	}

	current.ApplyContent(upd)
	if err := r.DB.WithContext(ctx).Save(current).Error; err != nil {
		return nil, err
	}
	return current, nil
}

func (r *GormRepo) SetLaptopImage(ctx context.Context, id, url string) (*models.Laptop, error) {
	l, err := r.GetLaptop(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Model(l).Update("image_url", url).Error; err != nil {
		return nil, err
	}
	l.ImageURL = url
	return l, nil
}

func (r *GormRepo) DeleteLaptop(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Laptop{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertLaptops inserts one record at a time and stops at the first failure.
func (r *GormRepo) InsertLaptops(ctx context.Context, items []models.Laptop) (int, error) {
	for i := range items {
		if err := r.DB.WithContext(ctx).Create(&items[i]).Error; err != nil {
			return i, &ImportError{Inserted: i, Err: err}
		}
	}
	return len(items), nil
}

func (r *GormRepo) SearchLaptops(ctx context.Context, f models.LaptopFilter) ([]models.Laptop, error) {
	q := r.DB.WithContext(ctx).Model(&models.Laptop{})
	if f.Brand != "" {
		q = q.Where(`LOWER(brand) LIKE ? ESCAPE '\'`, containsPattern(f.Brand))
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}

	items := []models.Laptop{}
	if err := q.Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
