package models

import "time"

// PromptClick tracks one of the fixed prompt templates. The set of rows is seeded once
// and never grows; Clicks only ever increases.
type PromptClick struct {
	ID            int64      `json:"-" gorm:"primaryKey;autoIncrement"`
	PromptID      int        `json:"id" gorm:"uniqueIndex;not null"`
	Text          string     `json:"text" gorm:"not null"`
	Clicks        int64      `json:"clicks" gorm:"not null;default:0"`
	LastClickedAt *time.Time `json:"last_clicked_at"`
	CreatedAt     time.Time  `json:"-" gorm:"autoCreateTime"`
}

func (PromptClick) TableName() string {
	return "prompt_clicks"
}

// PromptTemplates are the fixed prompts, keyed by position (id = index + 1).
var PromptTemplates = []string{
	"What is the political bias of {source}?",
	"Show me recent top stories from {source}",
	"How does {source} compare to other news outlets?",
	"What are the most controversial topics covered by {source}?",
	"Is {source} a reliable news source?",
}
