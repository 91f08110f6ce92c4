package document

import "time"

type Category string

const (
	CategoryNotice   Category = "notice"
	CategoryCircular Category = "circular"
	CategoryPolicy   Category = "policy"
	CategoryForm     Category = "form"
	CategoryOther    Category = "other"
)

var Categories = []string{
	string(CategoryNotice), string(CategoryCircular), string(CategoryPolicy), string(CategoryForm), string(CategoryOther),
}

type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	FileName    string    `json:"file_name"`
	FilePath    string    `json:"-"`
	FileSize    int64     `json:"file_size"`
	FileType    string    `json:"file_type"`
	Category    Category  `json:"category"`
	UploadedBy  string    `json:"uploaded_by"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined fields
	UploaderName *string `json:"uploader_name,omitempty"`
}
