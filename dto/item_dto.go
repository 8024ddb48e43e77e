package dto

type CreateItemInput struct {
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	Image       string `mapstructure:"image"`
	LargeImage  string `mapstructure:"largeImage"`
	Price       int    `mapstructure:"price"`
}

type UpdateItemInput struct {
	ID          uint    `mapstructure:"id"`
	Title       *string `mapstructure:"title"`
	Description *string `mapstructure:"description"`
	Price       *int    `mapstructure:"price"`
}
