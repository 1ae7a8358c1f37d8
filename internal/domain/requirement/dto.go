package requirement

type CreateRequirementDTO struct {
	Title       string   `json:"title" form:"title" binding:"required,max=140"`
	Description string   `json:"description" form:"description" binding:"required"`
	CategoryID  uint     `json:"category_id" form:"category_id" binding:"required"`
	Priority    Priority `json:"priority,omitempty" form:"priority" binding:"omitempty,oneof=Low Medium High"`
	ImageURL    *string  `json:"image_url,omitempty" form:"image_url" binding:"omitempty,url"`
}

type UpdateRequirementDTO struct {
	Title       *string   `json:"title,omitempty" form:"title" binding:"omitempty,max=140"`
	Description *string   `json:"description,omitempty" form:"description"`
	CategoryID  *uint     `json:"category_id,omitempty" form:"category_id"`
	Priority    *Priority `json:"priority,omitempty" form:"priority" binding:"omitempty,oneof=Low Medium High"`
	ImageURL    *string   `json:"image_url,omitempty" form:"image_url" binding:"omitempty,url"`
}

type UpdateStatusDTO struct {
	Status Status `json:"status" binding:"required,oneof=Submitted InProgress Done Rejected"`
}

type BulkStatusDTO struct {
	IDs    []uint `json:"ids" binding:"required,min=1"`
	Status Status `json:"status" binding:"required,oneof=Submitted InProgress Done Rejected"`
}

type BulkDeleteDTO struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// Sort orders for requirement listings.
const (
	SortNewest  = "newest"
	SortOldest  = "oldest"
	SortSupport = "support"
)
