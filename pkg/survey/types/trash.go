package types

import "time"

type TrashItemType string

const (
	TRASH_ITEM_TYPE_BLOCK    TrashItemType = "block"
	TRASH_ITEM_TYPE_QUESTION TrashItemType = "question"
)

// TrashItem is a deleted block or question kept for restoring. Exactly one of Block and
// Question is set, matching Type.
type TrashItem struct {
	ID       string        `bson:"id" json:"id"`
	Type     TrashItemType `bson:"type" json:"type"`
	Block    *Block        `bson:"block,omitempty" json:"block,omitempty"`
	Question *Question     `bson:"question,omitempty" json:"question,omitempty"`
	// OriginalBlockID is the block a deleted question belonged to.
	OriginalBlockID string    `bson:"originalBlockId,omitempty" json:"originalBlockId,omitempty"`
	DeletedAt       time.Time `bson:"deletedAt" json:"deletedAt"`
	ExpiresAt       time.Time `bson:"expiresAt" json:"expiresAt"`
}

func (t TrashItem) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
