package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/laptop_store/internal/events"
	"github.com/Skotchmaster/laptop_store/internal/models"
	"github.com/Skotchmaster/laptop_store/internal/repo"
)

func newCatalog(t *testing.T) (*CatalogService, *stubIndex, *stubPublisher) {
	idx := newStubIndex()
	pub := &stubPublisher{}
	return &CatalogService{Laptops: newTestRepo(t), Index: idx, Events: pub}, idx, pub
}

func TestCatalog_CreateGetList(t *testing.T) {
	svc, idx, pub := newCatalog(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleLaptop("Acme", 500, "4 stars"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, models.PlaceholderImageURL, created.ImageURL)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 500.0, got.Price)

	withImage := sampleLaptop("Zeta", 700, "3 stars")
	withImage.ImageURL = "http://img/z.png"
	_, err = svc.Create(ctx, withImage)
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	assert.Contains(t, idx.docs, created.ID)
	assert.Equal(t, []string{"laptop_created", "laptop_created"}, pub.types())
	assert.Equal(t, events.TopicLaptops, pub.got[0].topic)
}

func TestCatalog_GetMissingAndMalformed(t *testing.T) {
	svc, _, _ := newCatalog(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, "not-an-id")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(ctx, "6b1c1c2e-0000-4000-8000-000000000000")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCatalog_Update(t *testing.T) {
	svc, idx, pub := newCatalog(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleLaptop("Acme", 500, "4 stars"))
	require.NoError(t, err)

	upd := sampleLaptop("Acme", 450, "4 stars")
	updated, err := svc.Update(ctx, created.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 450.0, updated.Price)
	assert.Equal(t, models.PlaceholderImageURL, updated.ImageURL)
	assert.Equal(t, 450.0, idx.docs[created.ID].Price)

	want := *created
	want.Price = 450
	stored, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	for _, got := range []*models.Laptop{updated, stored} {
		assert.True(t, want.SameContent(*got), "got %+v", *got)
		assert.Equal(t, "Acme", got.Brand)
		assert.Equal(t, 16, got.RAMGB)
		assert.Equal(t, "4 stars", got.Rating)
		assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, time.Millisecond)
	}

	_, err = svc.Update(ctx, created.ID, upd)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, err, repo.ErrNotModified)

	_, err = svc.Update(ctx, "missing", upd)
	require.ErrorIs(t, err, ErrNotFound)
	require.NotErrorIs(t, err, repo.ErrNotModified)

	assert.Equal(t, []string{"laptop_created", "laptop_updated"}, pub.types())
}

func TestCatalog_Delete(t *testing.T) {
	svc, idx, pub := newCatalog(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleLaptop("Acme", 500, "4 stars"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.NotContains(t, idx.docs, created.ID)
	require.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNotFound)

	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, []string{"laptop_created", "laptop_deleted"}, pub.types())
}

func TestCatalog_Import(t *testing.T) {
	svc, idx, pub := newCatalog(t)
	ctx := context.Background()

	n, err := svc.Import(ctx, []models.Laptop{
		sampleLaptop("A", 100, "1 star"),
		sampleLaptop("B", 200, "2 stars"),
		sampleLaptop("C", 300, "3 stars"),
	})
	require.NoError(t, err)
	require.Equal(t, 3, n)
	assert.Len(t, idx.docs, 3)
	assert.Equal(t, []string{"laptops_imported"}, pub.types())

	n, err = svc.Import(ctx, nil)
	require.NoError(t, err)
	require.Zero(t, n)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	for _, l := range all {
		assert.Equal(t, models.PlaceholderImageURL, l.ImageURL)
	}
}

type failingStore struct {
	LaptopStore
	failAt int
}

func (f failingStore) InsertLaptops(ctx context.Context, items []models.Laptop) (int, error) {
	for i := range items {
		if i == f.failAt {
			return i, &repo.ImportError{Inserted: i, Err: errors.New("store rejected record")}
		}
		items[i].ID = strings.Repeat("x", i+1)
	}
	return len(items), nil
}

func TestCatalog_ImportPartialFailure(t *testing.T) {
	idx := newStubIndex()
	pub := &stubPublisher{}
	svc := &CatalogService{Laptops: failingStore{LaptopStore: newTestRepo(t), failAt: 2}, Index: idx, Events: pub}

	n, err := svc.Import(context.Background(), []models.Laptop{
		sampleLaptop("A", 1, "1"), sampleLaptop("B", 2, "2"), sampleLaptop("C", 3, "3"),
	})
	require.Error(t, err)
	require.Equal(t, 2, n)

	var ie *repo.ImportError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 2, ie.Inserted)
	assert.Len(t, idx.docs, 2)
	assert.Empty(t, pub.types())
}

func TestCatalog_SearchFromStore(t *testing.T) {
	svc, _, _ := newCatalog(t)
	svc.Index = nil
	ctx := context.Background()

	_, err := svc.Import(ctx, []models.Laptop{
		sampleLaptop("ASUS", 400, "4.5 stars"),
		sampleLaptop("Acer", 900, "3 stars"),
		sampleLaptop("asus", 1200, "No rating"),
	})
	require.NoError(t, err)

	res, err := svc.Search(ctx, models.LaptopFilter{Brand: " Asus "})
	require.NoError(t, err)
	assert.Len(t, res, 2)

	res, err = svc.Search(ctx, models.LaptopFilter{MinRating: fptr(4)})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "ASUS", res[0].Brand)

	res, err = svc.Search(ctx, models.LaptopFilter{MinPrice: fptr(400), MaxPrice: fptr(900)})
	require.NoError(t, err)
	assert.Len(t, res, 2)

	res, err = svc.Search(ctx, models.LaptopFilter{})
	require.NoError(t, err)
	assert.Len(t, res, 3)

	_, err = svc.Search(ctx, models.LaptopFilter{MinPrice: fptr(10), MaxPrice: fptr(5)})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCatalog_SearchUsesIndexAndFallsBack(t *testing.T) {
	svc, idx, _ := newCatalog(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, sampleLaptop("Lenovo", 800, "4 stars"))
	require.NoError(t, err)

	res, err := svc.Search(ctx, models.LaptopFilter{Brand: "len"})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, 1, idx.searched)

	idx.searchErr = errors.New("cluster red")
	res, err = svc.Search(ctx, models.LaptopFilter{Brand: "len"})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, 2, idx.searched)
}

func TestCatalog_ReindexBackfillsExistingCatalog(t *testing.T) {
	store := newTestRepo(t)
	ctx := context.Background()

	seed := &CatalogService{Laptops: store}
	for _, l := range []models.Laptop{
		sampleLaptop("Lenovo ThinkPad", 900, "5 stars"),
		sampleLaptop("Lenovo IdeaPad", 400, "3 stars"),
		sampleLaptop("Dell", 700, "4 stars"),
	} {
		_, err := seed.Create(ctx, l)
		require.NoError(t, err)
	}

	idx := newStubIndex()
	svc := &CatalogService{Laptops: store, Index: idx}

	n, err := svc.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Len(t, idx.docs, 3)

	res, err := svc.Search(ctx, models.LaptopFilter{Brand: "lenovo"})
	require.NoError(t, err)
	assert.Len(t, res, 2)
	assert.Equal(t, 1, idx.searched)

	idx.failWrite = true
	_, err = svc.Reindex(ctx)
	require.Error(t, err)

	n, err = (&CatalogService{Laptops: store}).Reindex(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCatalog_IndexAndPublishFailuresAreIgnored(t *testing.T) {
	svc, idx, pub := newCatalog(t)
	idx.failWrite = true
	pub.fail = true
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleLaptop("Acme", 500, "4 stars"))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))
}

func TestCatalog_SetImage(t *testing.T) {
	svc, idx, _ := newCatalog(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleLaptop("Acme", 500, "4 stars"))
	require.NoError(t, err)

	_, err = svc.SetImage(ctx, created.ID, ImageUpload{ContentType: "image/png", Body: strings.NewReader("x")})
	require.ErrorIs(t, err, ErrImagesDisabled)

	imgs := &stubImages{}
	svc.Images = imgs

	_, err = svc.SetImage(ctx, created.ID, ImageUpload{ContentType: "text/plain", Body: strings.NewReader("x")})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.SetImage(ctx, "missing", ImageUpload{ContentType: "image/png", Body: strings.NewReader("x")})
	require.ErrorIs(t, err, ErrNotFound)

	l, err := svc.SetImage(ctx, created.ID, ImageUpload{
		Filename:    "Front.PNG",
		ContentType: "image/png",
		Size:        3,
		Body:        strings.NewReader("png"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(imgs.key, "laptops/"+created.ID+"/"))
	assert.True(t, strings.HasSuffix(imgs.key, ".png"))
	assert.Equal(t, "png", string(imgs.data))
	assert.Equal(t, "http://images.test/"+imgs.key, l.ImageURL)
	assert.Equal(t, l.ImageURL, idx.docs[created.ID].ImageURL)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, l.ImageURL, got.ImageURL)
}
