package user

type RegisterInput struct {
	Username string `json:"username" form:"username" binding:"required,min=3,max=64" example:"budi"`
	Email    string `json:"email" form:"email" binding:"required,email" example:"budi@example.com"`
	Name     string `json:"name" form:"name" binding:"required,max=120" example:"Budi Santoso"`
	Password string `json:"password" form:"password" binding:"required,min=6" example:"rahasia123"`
}

type LoginInput struct {
	Username string `json:"username" form:"username" binding:"required" example:"budi"`
	Password string `json:"password" form:"password" binding:"required" example:"rahasia123"`
}

type UpdateProfileInput struct {
	Name      *string `json:"name,omitempty" form:"name" binding:"omitempty,max=120"`
	Bio       *string `json:"bio,omitempty" form:"bio"`
	AvatarURL *string `json:"avatar_url,omitempty" form:"avatar_url" binding:"omitempty,url"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" form:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" form:"new_password" binding:"required,min=6"`
}

type UpdateRoleInput struct {
	Role Role `json:"role" binding:"required,oneof=Regular Admin Developer" example:"Developer"`
}

type SetActiveInput struct {
	Active *bool `json:"active" binding:"required" example:"false"`
}
