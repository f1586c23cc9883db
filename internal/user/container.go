package user

import "gorm.io/gorm"

type UserContainer struct {
	Repo    UserRepository
	Service UserService
	Handler *Handler
}

func NewUserContainer(db *gorm.DB) *UserContainer {
	repo := NewUserRepository(db)
	service := NewUserService(repo)
	handler := NewHandler(service)

	return &UserContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
