// Package knowledge stores the article collection and owns the lifecycle
// of the media paths its articles reference.
package knowledge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knolage/knolage/internal/docstore"
	"github.com/knolage/knolage/internal/storage"
)

type Repo struct {
	store *docstore.Store[*KnowledgeArticle]
	media storage.MediaStore
}

func NewRepo(path string, media storage.MediaStore) *Repo {
	return &Repo{store: docstore.New[*KnowledgeArticle](path), media: media}
}

func (r *Repo) All() ([]*KnowledgeArticle, error) {
	return r.store.List()
}

func (r *Repo) Get(id string) (*KnowledgeArticle, bool, error) {
	return r.store.Get(id)
}

// Save promotes any staged thumbnail/image sources into managed storage,
// then upserts the article. Timestamps are stamped by the store.
func (r *Repo) Save(a *KnowledgeArticle) (*KnowledgeArticle, error) {
	if a == nil {
		return nil, errors.New("knowledge: nil article")
	}
	if err := r.promoteStaged(a); err != nil {
		return nil, err
	}
	return r.store.Save(a)
}

func (r *Repo) promoteStaged(a *KnowledgeArticle) error {
	if a.StagedThumbnail != "" {
		p, err := r.media.CopyIntoManagedStorage(a.StagedThumbnail)
		if err != nil {
			return fmt.Errorf("promote thumbnail: %w", err)
		}
		a.ThumbnailPath = p
		a.StagedThumbnail = ""
	}
	for i := range a.Blocks {
		b := &a.Blocks[i]
		if b.Type != BlockImage || b.StagedSource == "" {
			continue
		}
		p, err := r.media.CopyIntoManagedStorage(b.StagedSource)
		if err != nil {
			return fmt.Errorf("promote image block: %w", err)
		}
		b.Content = p
		b.StagedSource = ""
	}
	return nil
}

// Delete removes the article and asks the media store to drop its
// thumbnail and every image block path, one call per path, duplicates
// included. Cleanup failures do not undo the removal; the first one is
// returned after all paths were attempted.
func (r *Repo) Delete(id string) error {
	removed, ok, err := r.store.Delete(id)
	if err != nil || !ok {
		return err
	}
	var firstErr error
	cleanup := func(path string) {
		if strings.TrimSpace(path) == "" {
			return
		}
		if err := r.media.DeleteIfExists(path); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	cleanup(removed.ThumbnailPath)
	for _, b := range removed.Blocks {
		if b.Type == BlockImage {
			cleanup(b.Content)
		}
	}
	return firstErr
}
