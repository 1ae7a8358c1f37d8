package category

type CreateCategoryDTO struct {
	Name        string  `json:"name" form:"name" binding:"required,max=64" example:"Infrastruktur"`
	Description *string `json:"description,omitempty" form:"description"`
}

type UpdateCategoryDTO struct {
	Name        *string `json:"name,omitempty" form:"name" binding:"omitempty,max=64"`
	Description *string `json:"description,omitempty" form:"description"`
}
