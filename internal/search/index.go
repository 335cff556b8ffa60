package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"

	"github.com/Skotchmaster/laptop_store/internal/config"
	"github.com/Skotchmaster/laptop_store/internal/models"
)

const maxResults = 10000

const mapping = `{
  "mappings": {
    "properties": {
      "id":              {"type": "keyword"},
      "brand":           {"type": "keyword"},
      "processor_brand": {"type": "keyword"},
      "processor_name":  {"type": "text"},
      "ram_gb":          {"type": "integer"},
      "ram_type":        {"type": "keyword"},
      "ssd":             {"type": "integer"},
      "hdd":             {"type": "integer"},
      "os":              {"type": "keyword"},
      "price":           {"type": "double"},
      "rating":          {"type": "keyword"},
      "rating_value":    {"type": "float"},
      "image_url":       {"type": "keyword", "index": false},
      "created_at":      {"type": "date"}
    }
  }
}`

func NewClient(cfg config.Elastic) (*elasticsearch.Client, error) {
	slog.Info("connecting to elasticsearch", "url", cfg.URL)

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.User,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch error: %s: %s", res.Status(), body)
	}

	return client, nil
}

// Index mirrors the laptop catalog into one elasticsearch index.
type Index struct {
	es   *elasticsearch.Client
	name string
}

func NewIndex(es *elasticsearch.Client, name string) *Index {
	return &Index{es: es, name: name}
}

type laptopDoc struct {
	ID             string    `json:"id"`
	Brand          string    `json:"brand"`
	ProcessorBrand string    `json:"processor_brand"`
	ProcessorName  string    `json:"processor_name"`
	RAMGB          int       `json:"ram_gb"`
	RAMType        string    `json:"ram_type"`
	SSD            int       `json:"ssd"`
	HDD            int       `json:"hdd"`
	OS             string    `json:"os"`
	Price          float64   `json:"price"`
	Rating         string    `json:"rating"`
	RatingValue    *float64  `json:"rating_value,omitempty"`
	ImageURL       string    `json:"image_url"`
	CreatedAt      time.Time `json:"created_at"`
}

func toDoc(l models.Laptop) laptopDoc {
	d := laptopDoc{
		ID:             l.ID,
		Brand:          l.Brand,
		ProcessorBrand: l.ProcessorBrand,
		ProcessorName:  l.ProcessorName,
		RAMGB:          l.RAMGB,
		RAMType:        l.RAMType,
		SSD:            l.SSD,
		HDD:            l.HDD,
		OS:             l.OS,
		Price:          l.Price,
		Rating:         l.Rating,
		ImageURL:       l.ImageURL,
		CreatedAt:      l.CreatedAt,
	}
	if v, ok := models.RatingValue(l.Rating); ok {
		d.RatingValue = &v
	}
	return d
}

func (d laptopDoc) model() models.Laptop {
	return models.Laptop{
		ID:             d.ID,
		Brand:          d.Brand,
		ProcessorBrand: d.ProcessorBrand,
		ProcessorName:  d.ProcessorName,
		RAMGB:          d.RAMGB,
		RAMType:        d.RAMType,
		SSD:            d.SSD,
		HDD:            d.HDD,
		OS:             d.OS,
		Price:          d.Price,
		Rating:         d.Rating,
		ImageURL:       d.ImageURL,
		CreatedAt:      d.CreatedAt,
	}
}

func responseError(op string, res *esapi.Response) error {
	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("elasticsearch %s: %s: %s", op, res.Status(), strings.TrimSpace(string(body)))
}

func (i *Index) CreateIndexIfNotExist(ctx context.Context) error {
	res, err := esapi.IndicesExistsRequest{Index: []string{i.name}}.Do(ctx, i.es)
	if err != nil {
		return fmt.Errorf("elasticsearch exists: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("elasticsearch exists: %s", res.Status())
	}

	res, err = esapi.IndicesCreateRequest{
		Index: i.name,
		Body:  strings.NewReader(mapping),
	}.Do(ctx, i.es)
	if err != nil {
		return fmt.Errorf("elasticsearch create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("create index", res)
	}
	return nil
}

func (i *Index) IndexLaptop(ctx context.Context, l models.Laptop) error {
	body, err := json.Marshal(toDoc(l))
	if err != nil {
		return err
	}
	res, err := esapi.IndexRequest{
		Index:      i.name,
		DocumentID: l.ID,
		Body:       bytes.NewReader(body),
		Refresh:    "true",
	}.Do(ctx, i.es)
	if err != nil {
		return fmt.Errorf("elasticsearch index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index", res)
	}
	return nil
}

// IndexLaptops sends one bulk request for the whole batch.
func (i *Index) IndexLaptops(ctx context.Context, items []models.Laptop) error {
	if len(items) == 0 {
		return nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, l := range items {
		meta := map[string]any{"index": map[string]any{"_index": i.name, "_id": l.ID}}
		if err := enc.Encode(meta); err != nil {
			return err
		}
		if err := enc.Encode(toDoc(l)); err != nil {
			return err
		}
	}

	res, err := esapi.BulkRequest{Body: &buf, Refresh: "true"}.Do(ctx, i.es)
	if err != nil {
		return fmt.Errorf("elasticsearch bulk: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("bulk", res)
	}

	var out struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return fmt.Errorf("elasticsearch bulk decode: %w", err)
	}
	if out.Errors {
		return fmt.Errorf("elasticsearch bulk: some documents were rejected")
	}
	return nil
}

func (i *Index) DeleteLaptop(ctx context.Context, id string) error {
	res, err := esapi.DeleteRequest{Index: i.name, DocumentID: id, Refresh: "true"}.Do(ctx, i.es)
	if err != nil {
		return fmt.Errorf("elasticsearch delete: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete", res)
	}
	return nil
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

func buildQuery(f models.LaptopFilter) map[string]any {
	filters := []any{}
	if f.Brand != "" {
		filters = append(filters, map[string]any{
			"wildcard": map[string]any{
				"brand": map[string]any{
					"value":            "*" + wildcardEscaper.Replace(f.Brand) + "*",
					"case_insensitive": true,
				},
			},
		})
	}
	price := map[string]any{}
	if f.MinPrice != nil {
		price["gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		filters = append(filters, map[string]any{"range": map[string]any{"price": price}})
	}
	if f.MinRating != nil {
		filters = append(filters, map[string]any{
			"range": map[string]any{"rating_value": map[string]any{"gte": *f.MinRating}},
		})
	}

	return map[string]any{
		"size":  maxResults,
		"query": map[string]any{"bool": map[string]any{"filter": filters}},
		"sort":  []any{map[string]any{"created_at": "asc"}},
	}
}

func (i *Index) SearchLaptops(ctx context.Context, f models.LaptopFilter) ([]models.Laptop, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(buildQuery(f)); err != nil {
		return nil, err
	}

	res, err := i.es.Search(
		i.es.Search.WithContext(ctx),
		i.es.Search.WithIndex(i.name),
		i.es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, responseError("search", res)
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source laptopDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("elasticsearch decode: %w", err)
	}

	items := make([]models.Laptop, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		items = append(items, hit.Source.model())
	}
	return items, nil
}
