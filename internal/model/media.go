package model

// MediaSize is a derived variant of an uploaded image (thumbnail, square,
// social-card, and so on).
type MediaSize struct {
	URL      *string `json:"url"`
	Width    *int    `json:"width"`
	Height   *int    `json:"height"`
	MimeType *string `json:"mimeType"`
	Filesize *int64  `json:"filesize"`
	Filename *string `json:"filename"`
}

// Media is an uploaded file record in the store, including its derived
// size variants keyed by variant name.
type Media struct {
	ID        int                  `json:"id"`
	URL       *string              `json:"url"`
	Filename  *string              `json:"filename"`
	MimeType  *string              `json:"mimeType"`
	Filesize  *int64               `json:"filesize"`
	Width     *int                 `json:"width"`
	Height    *int                 `json:"height"`
	Sizes     map[string]MediaSize `json:"sizes,omitempty"`
	CreatedAt string               `json:"createdAt"`
	UpdatedAt string               `json:"updatedAt"`
}
