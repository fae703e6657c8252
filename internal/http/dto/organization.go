package dto

import (
	"orghub.app/api-server/internal/service"
)

type CreateOrganizationRequest struct {
	OrganizationName string `json:"organization_name" binding:"required,min=1,max=255"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=6"`
}

type UpdateOrganizationRequest struct {
	NewName     *string `json:"new_name,omitempty" binding:"omitempty,min=1,max=255"`
	Email       *string `json:"email,omitempty" binding:"omitempty,email"`
	Password    *string `json:"password,omitempty" binding:"omitempty,min=6"`
	CurrentName string  `json:"current_name" binding:"required"`
}

type DeleteOrganizationRequest struct {
	OrganizationName string `json:"organization_name" binding:"required"`
}

type OrganizationResponse struct {
	OrganizationName string `json:"organization_name"`
	CollectionName   string `json:"collection_name"`
	AdminEmail       string `json:"admin_email"`
	ID               int64  `json:"id,string"`
}

func ToOrganizationResponse(record *service.OrganizationRecord) *OrganizationResponse {
	return &OrganizationResponse{
		ID:               record.ID,
		OrganizationName: record.OrganizationName,
		CollectionName:   record.CollectionName,
		AdminEmail:       record.AdminEmail,
	}
}
