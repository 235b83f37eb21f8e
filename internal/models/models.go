package models

// AllModels lists every entity managed by AutoMigrate, in dependency order.
var AllModels = []interface{}{
	&User{},
	&Project{},
	&Task{},
	&PasswordResetToken{},
}
