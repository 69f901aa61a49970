package ingredient

import "time"

type Ingredient struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"category_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// ImportResult summarizes one CSV import run.
type ImportResult struct {
	CategoriesCreated  int      `json:"categories_created"`
	IngredientsCreated int      `json:"ingredients_created"`
	IngredientsUpdated int      `json:"ingredients_updated"`
	SkippedRows        int      `json:"skipped_rows"`
	ArchiveURL         string   `json:"archive_url,omitempty"`
	Errors             []string `json:"errors,omitempty"`
}
