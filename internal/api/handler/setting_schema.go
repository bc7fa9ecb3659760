package handler

type updateSettingRequest struct {
	Value string `json:"value" validate:"required"`
}

type bulkSettingsRequest struct {
	Settings map[string]string `json:"settings" validate:"required"`
}
