package dto

// Mutation arguments are decoded from GraphQL argument maps with
// mapstructure; tag names follow the schema's camelCase field names.

type SignupInput struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type SigninInput struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

type RequestResetInput struct {
	Email string `mapstructure:"email"`
}

type ResetPasswordInput struct {
	ResetToken      string `mapstructure:"resetToken"`
	Password        string `mapstructure:"password"`
	ConfirmPassword string `mapstructure:"confirmPassword"`
}

type UpdatePermissionsInput struct {
	UserID      uint     `mapstructure:"userId"`
	Permissions []string `mapstructure:"permissions"`
}
