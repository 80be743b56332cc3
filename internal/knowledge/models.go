package knowledge

import "time"

type BlockType string

const (
	BlockHeader    BlockType = "header"
	BlockParagraph BlockType = "paragraph"
	BlockImage     BlockType = "image"
	BlockList      BlockType = "list"
	BlockQuote     BlockType = "quote"
	BlockDivider   BlockType = "divider"
)

// ArticleBlock is one display-ordered unit of article content. For image
// blocks Content is a managed-storage path; divider blocks carry empty
// content.
type ArticleBlock struct {
	Type    BlockType `json:"type"`
	Content string    `json:"content"`

	// StagedSource is an unmanaged path waiting to be promoted into
	// managed storage on the next save. Never persisted.
	StagedSource string `json:"-"`
}

type KnowledgeArticle struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Subtitle      string         `json:"subtitle"`
	ThumbnailPath string         `json:"thumbnailPath"`
	Tags          []string       `json:"tags"`
	Blocks        []ArticleBlock `json:"blocks"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`

	// StagedThumbnail mirrors ArticleBlock.StagedSource for the thumbnail.
	StagedThumbnail string `json:"-"`
}

func (a *KnowledgeArticle) Key() string      { return a.ID }
func (a *KnowledgeArticle) SetKey(id string) { a.ID = id }

func (a *KnowledgeArticle) CreatedTime() time.Time { return a.CreatedAt }
func (a *KnowledgeArticle) SetCreated(t time.Time) { a.CreatedAt = t }
func (a *KnowledgeArticle) SetUpdated(t time.Time) { a.UpdatedAt = t }
