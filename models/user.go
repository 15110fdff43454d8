package models

import (
	"context"
	"time"

	"github.com/mmsalesdesk/salesdesk_backend/config"
	"github.com/mmsalesdesk/salesdesk_backend/utils"
	"gorm.io/gorm"
)

type User struct {
	ID          int       `gorm:"primary_key" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Email       string    `gorm:"size:100;uniqueIndex;not null" json:"email" binding:"required"`
	BackupEmail string    `gorm:"size:100" json:"backup_email"`
	Role        UserRole  `gorm:"size:50;not null" json:"role" binding:"required"`
	IsActive    *bool     `gorm:"not null;default:true" json:"is_active"`
	Password    string    `gorm:"size:255;not null" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewUser struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	BackupEmail string `json:"backup_email"`
	Role        string `json:"role" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

type SigninInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthPayload struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

func (input *NewUser) validate(ctx context.Context, id int) error {
	if !utils.IsValidEmail(input.Email) {
		return utils.ValidationError("email is not valid")
	}
	if _, err := ParseUserRole(input.Role); err != nil {
		return utils.ValidationError(err.Error())
	}
	if len(input.Password) < 8 {
		return utils.ValidationError("password must be at least 8 characters")
	}
	if err := utils.ValidateUnique[User](ctx, "email", input.Email, id); err != nil {
		return err
	}
	return nil
}

// CreateUser is admin-only; there is no open signup for internal staff.
func CreateUser(ctx context.Context, input *NewUser) (*User, error) {
	if err := RequireCapability(ctx, CapUsersManage); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role, _ := ParseUserRole(input.Role)
	user := User{
		Name:        input.Name,
		Email:       input.Email,
		BackupEmail: input.BackupEmail,
		Role:        role,
		Password:    string(hashed),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func Signin(ctx context.Context, input *SigninInput) (*AuthPayload, error) {
	db := config.GetDB()

	var user User
	err := db.WithContext(ctx).Where("email = ?", input.Email).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, utils.ValidationError("invalid email or password")
	} else if err != nil {
		return nil, err
	}

	if user.IsActive != nil && !*user.IsActive {
		return nil, utils.ForbiddenError("account is inactive")
	}

	if err := utils.ComparePassword(user.Password, input.Password); err != nil {
		return nil, utils.ValidationError("invalid email or password")
	}

	token, err := utils.JwtGenerate(user.ID, user.Name, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &AuthPayload{Token: token, User: &user}, nil
}

func ToggleUserActive(ctx context.Context, id int, isActive bool) (*User, error) {
	if err := RequireCapability(ctx, CapUsersManage); err != nil {
		return nil, err
	}

	user, err := utils.FetchModel[User](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(user).UpdateColumn("IsActive", isActive).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func GetUser(ctx context.Context, id int) (*User, error) {
	return utils.FetchModel[User](ctx, id)
}

func GetUsers(ctx context.Context) ([]*User, error) {
	if err := RequireCapability(ctx, CapUsersManage); err != nil {
		return nil, err
	}
	return utils.FetchAllModels[User](ctx)
}
