package response

type ErrorResponse struct {
	Error string `json:"error" example:"requirement not found"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type TokenResponse struct {
	Token    string `json:"token"`
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

// Page wraps one page of a paginated listing.
type Page[T any] struct {
	Items   []T   `json:"items"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
}

func NewPage[T any](items []T, page, perPage int, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if perPage > 0 {
		pages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return Page[T]{Items: items, Page: page, PerPage: perPage, Total: total, Pages: pages}
}
