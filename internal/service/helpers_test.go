package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Skotchmaster/laptop_store/internal/events"
	"github.com/Skotchmaster/laptop_store/internal/hash"
	"github.com/Skotchmaster/laptop_store/internal/models"
	"github.com/Skotchmaster/laptop_store/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.Laptop{}, &models.Order{}))
	return &repo.GormRepo{DB: gdb}
}

func testHasher() *hash.Hasher {
	return &hash.Hasher{Cost: bcrypt.MinCost}
}

type published struct {
	topic, key string
	event      events.Event
}

type stubPublisher struct {
	mu   sync.Mutex
	got  []published
	fail bool
}

func (p *stubPublisher) PublishEvent(ctx context.Context, topic, key string, event any) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, published{topic: topic, key: key, event: event.(events.Event)})
	return nil
}

func (p *stubPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.got))
	for _, e := range p.got {
		out = append(out, e.event.Type)
	}
	return out
}

type stubIndex struct {
	docs      map[string]models.Laptop
	searchErr error
	failWrite bool
	searched  int
}

func newStubIndex() *stubIndex { return &stubIndex{docs: map[string]models.Laptop{}} }

func (s *stubIndex) IndexLaptop(ctx context.Context, l models.Laptop) error {
	if s.failWrite {
		return errors.New("index down")
	}
	s.docs[l.ID] = l
	return nil
}

func (s *stubIndex) IndexLaptops(ctx context.Context, items []models.Laptop) error {
	for _, l := range items {
		if err := s.IndexLaptop(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

func (s *stubIndex) DeleteLaptop(ctx context.Context, id string) error {
	if s.failWrite {
		return errors.New("index down")
	}
	delete(s.docs, id)
	return nil
}

func (s *stubIndex) SearchLaptops(ctx context.Context, f models.LaptopFilter) ([]models.Laptop, error) {
	s.searched++
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	out := []models.Laptop{}
	for _, l := range s.docs {
		if f.Match(l) {
			out = append(out, l)
		}
	}
	return out, nil
}

type stubImages struct {
	key, contentType string
	data             []byte
}

func (s *stubImages) PutImage(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	s.key, s.contentType = key, contentType
	s.data, _ = io.ReadAll(r)
	return "http://images.test/" + key, nil
}

func sampleLaptop(brand string, price float64, rating string) models.Laptop {
	return models.Laptop{
		Brand:          brand,
		ProcessorBrand: "Intel",
		ProcessorName:  "Core i7",
		RAMGB:          16,
		RAMType:        "DDR5",
		SSD:            1024,
		HDD:            0,
		OS:             "Windows",
		Price:          price,
		Rating:         rating,
	}
}

func fptr(v float64) *float64 { return &v }
