package images

// AddURLRequest is the body of POST /api/add-url.
type AddURLRequest struct {
	URL      string `json:"url" binding:"required,url"`
	FileName string `json:"fileName"`
}
