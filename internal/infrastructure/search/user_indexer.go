package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-ddd-user-registration/internal/domain/entity"
)

const indexTimeout = 3 * time.Second

// UserIndexer writes registered users into an Elasticsearch index.
// Only the id, email and registration time are indexed.
type UserIndexer struct {
	es    *elasticsearch.Client
	index string
}

func NewUserIndexer(es *elasticsearch.Client, index string) *UserIndexer {
	return &UserIndexer{es: es, index: index}
}

type userDocument struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	RegisteredAt string `json:"registered_at"`
}

func newUserDocument(u *entity.User, registeredAt time.Time) userDocument {
	return userDocument{
		ID:           u.ID().String(),
		Email:        u.Email().String(),
		RegisteredAt: registeredAt.UTC().Format(time.RFC3339Nano),
	}
}

func (x *UserIndexer) IndexUser(ctx context.Context, u *entity.User, registeredAt time.Time) error {
	if x == nil || x.es == nil || x.index == "" {
		return nil
	}
	b, err := json.Marshal(newUserDocument(u, registeredAt))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      x.index,
		DocumentID: u.ID().String(),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return fmt.Errorf("index user: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index user: %s", res.Status())
	}
	return nil
}

const usersMapping = `{
  "mappings": {
    "properties": {
      "id":            {"type": "keyword"},
      "email":         {"type": "keyword"},
      "registered_at": {"type": "date"}
    }
  }
}`

// EnsureIndex creates the users index with its mapping when it does not exist yet.
func (x *UserIndexer) EnsureIndex(ctx context.Context) error {
	if x == nil || x.es == nil || x.index == "" {
		return nil
	}
	c, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	exists, err := esapi.IndicesExistsRequest{Index: []string{x.index}}.Do(c, x.es)
	if err != nil {
		return fmt.Errorf("index exists %s: %w", x.index, err)
	}
	_ = exists.Body.Close()
	if exists.StatusCode == 200 {
		return nil
	}

	res, err := esapi.IndicesCreateRequest{Index: x.index, Body: strings.NewReader(usersMapping)}.Do(c, x.es)
	if err != nil {
		return fmt.Errorf("create index %s: %w", x.index, err)
	}
	defer func() { _ = res.Body.Close() }()
	// 400 here is resource_already_exists from a concurrent creator
	if res.IsError() && res.StatusCode != 400 {
		return fmt.Errorf("create index %s: %s", x.index, res.Status())
	}
	return nil
}
