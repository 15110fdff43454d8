package models

import (
	"context"
	"time"

	"github.com/mmsalesdesk/salesdesk_backend/config"
	"github.com/mmsalesdesk/salesdesk_backend/utils"
)

type Client struct {
	ID             int       `gorm:"primary_key" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Email          string    `gorm:"size:100" json:"email"`
	BackupEmail    string    `gorm:"size:100" json:"backup_email"`
	Phone          string    `gorm:"size:20" json:"phone"`
	BillingAddress string    `gorm:"type:text" json:"billing_address"`
	Gstin          string    `gorm:"size:15" json:"gstin"`
	IsActive       *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewClient struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email"`
	BackupEmail    string `json:"backup_email"`
	Phone          string `json:"phone"`
	BillingAddress string `json:"billing_address"`
	Gstin          string `json:"gstin"`
}

// validate input for both create & update. (id = 0 for create)
func (input *NewClient) validate(ctx context.Context, id int) error {
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return utils.ValidationError("email is not valid")
	}
	if input.BackupEmail != "" && !utils.IsValidEmail(input.BackupEmail) {
		return utils.ValidationError("backup email is not valid")
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return utils.ValidationError("phone number is not valid")
		}
	}
	if err := utils.ValidateUnique[Client](ctx, "name", input.Name, id); err != nil {
		return err
	}
	return nil
}

func CreateClient(ctx context.Context, input *NewClient) (*Client, error) {
	if err := RequireCapability(ctx, CapClientsManage); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	client := Client{
		Name:           input.Name,
		Email:          input.Email,
		BackupEmail:    input.BackupEmail,
		Phone:          input.Phone,
		BillingAddress: input.BillingAddress,
		Gstin:          input.Gstin,
	}

	db := config.GetDB()
	// db action
	if err := db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func UpdateClient(ctx context.Context, id int, input *NewClient) (*Client, error) {
	if err := RequireCapability(ctx, CapClientsManage); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	client, err := utils.FetchModel[Client](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(client).Updates(map[string]interface{}{
		"Name":           input.Name,
		"Email":          input.Email,
		"BackupEmail":    input.BackupEmail,
		"Phone":          input.Phone,
		"BillingAddress": input.BillingAddress,
		"Gstin":          input.Gstin,
	}).Error; err != nil {
		return nil, err
	}
	return client, nil
}

func DeleteClient(ctx context.Context, id int) (*Client, error) {
	if err := RequireCapability(ctx, CapClientsManage); err != nil {
		return nil, err
	}

	client, err := utils.FetchModel[Client](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()

	// Do not delete clients that documents still reference.
	var count int64
	if err := db.WithContext(ctx).Model(&Quote{}).Where("client_id = ?", id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.ConflictError("used by quote")
	}
	if err := db.WithContext(ctx).Model(&Invoice{}).Where("client_id = ?", id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.ConflictError("used by invoice")
	}

	if err := db.WithContext(ctx).Delete(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

func GetClient(ctx context.Context, id int) (*Client, error) {
	return utils.FetchModel[Client](ctx, id)
}

func GetClients(ctx context.Context, name *string) ([]*Client, error) {
	db := config.GetDB()
	var results []*Client

	dbCtx := db.WithContext(ctx)
	if name != nil && len(*name) > 0 {
		dbCtx = dbCtx.Where("name LIKE ?", "%"+*name+"%")
	}
	if err := dbCtx.Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ReminderEmail returns the address payment reminders go to: primary email
// first, backup as fallback, empty when the client has no email on file.
func (c *Client) ReminderEmail() string {
	if c.Email != "" {
		return c.Email
	}
	return c.BackupEmail
}
