package project

type CreateProjectDTO struct {
	Title       string  `json:"title" form:"title" binding:"required,max=140"`
	Description string  `json:"description" form:"description" binding:"required"`
	CategoryID  uint    `json:"category_id" form:"category_id" binding:"required"`
	ImageURL    *string `json:"image_url,omitempty" form:"image_url" binding:"omitempty,url"`
}

type UpdateProjectDTO struct {
	Title       *string `json:"title,omitempty" form:"title" binding:"omitempty,max=140"`
	Description *string `json:"description,omitempty" form:"description"`
	CategoryID  *uint   `json:"category_id,omitempty" form:"category_id"`
	ImageURL    *string `json:"image_url,omitempty" form:"image_url" binding:"omitempty,url"`
}

type UpdateStatusDTO struct {
	Status Status `json:"status" binding:"required,oneof=Active Completed Closed"`
}

type AddCollaboratorDTO struct {
	UserID uint             `json:"user_id" binding:"required"`
	Role   CollaboratorRole `json:"role" binding:"omitempty,oneof=Contributor Moderator"`
}
