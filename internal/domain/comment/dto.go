package comment

type CreateCommentDTO struct {
	Body     string  `json:"body" form:"body" binding:"required"`
	ParentID *uint   `json:"parent_id,omitempty" form:"parent_id"`
	ImageURL *string `json:"image_url,omitempty" form:"image_url" binding:"omitempty,url"`
}

type UpdateCommentDTO struct {
	Body string `json:"body" form:"body" binding:"required"`
}

type ModerateDTO struct {
	Action string `json:"action" binding:"required,oneof=hide delete"`
	Reason string `json:"reason"`
}
