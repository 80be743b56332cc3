package quiz

import (
	"errors"
	"strings"

	"github.com/knolage/knolage/internal/docstore"
)

type Repo struct {
	store *docstore.Store[*Test]
}

func NewRepo(path string) *Repo {
	return &Repo{store: docstore.New[*Test](path)}
}

func (r *Repo) All() ([]*Test, error) {
	return r.store.List()
}

func (r *Repo) Get(id string) (*Test, bool, error) {
	return r.store.Get(id)
}

func (r *Repo) Save(t *Test) (*Test, error) {
	if t == nil {
		return nil, errors.New("quiz: nil test")
	}
	return r.store.Save(t)
}

func (r *Repo) Delete(id string) error {
	_, _, err := r.store.Delete(id)
	return err
}

// ByArticleID returns every test whose ArticleIDs contain the given id
// (case-insensitive), in collection order.
func (r *Repo) ByArticleID(articleID string) ([]*Test, error) {
	if strings.TrimSpace(articleID) == "" {
		return nil, nil
	}
	all, err := r.store.List()
	if err != nil {
		return nil, err
	}
	var matched []*Test
	for _, t := range all {
		for _, id := range t.ArticleIDs {
			if strings.EqualFold(id, articleID) {
				matched = append(matched, t)
				break
			}
		}
	}
	return matched, nil
}
