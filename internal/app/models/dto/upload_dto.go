package dto

// UploadResponse is returned by POST /api/upload.
type UploadResponse struct {
	Success      bool   `json:"success" example:"true"`
	URL          string `json:"url" example:"https://res.cloudinary.com/demo/image/upload/v1/profiles/1/me.png"`
	PublicID     string `json:"public_id" example:"profiles/1/me"`
	ResourceType string `json:"resource_type" example:"image"`
}

// RosterUploadResponse is returned by POST /api/admin/upload.
type RosterUploadResponse struct {
	Success              bool   `json:"success" example:"true"`
	Message              string `json:"message" example:"Processed 10 records (8 new, 2 updated)"`
	Total                int    `json:"total" example:"10"`
	Created              int    `json:"created" example:"8"`
	Updated              int    `json:"updated" example:"2"`
	NotificationFailures int    `json:"notification_failures" example:"0"`
}
