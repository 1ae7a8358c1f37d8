package notification

type BulkCreateDTO struct {
	UserIDs []uint `json:"user_ids" binding:"required,min=1"`
	Type    Type   `json:"type" binding:"required"`
	Title   string `json:"title" binding:"required,max=200"`
	Message string `json:"message"`
	Link    string `json:"link" binding:"max=200"`
}
