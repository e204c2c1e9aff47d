package licenseserver

// Action действие проверки лицензии
type Action string

const (
	ActionActivate   Action = "activate"
	ActionDeactivate Action = "deactivate"
	ActionCheck      Action = "check"
)

// ValidateRequest тело запроса к серверу лицензий
type ValidateRequest struct {
	Plugin       string `json:"plugin"`
	Version      string `json:"version"`
	Action       Action `json:"action"`
	Source       string `json:"source"`
	PurchaseCode string `json:"purchase_code"`
	LicenseCode  string `json:"license_code"`
	SiteURL      string `json:"site_url"`
	Domain       string `json:"domain"`
	InstanceID   string `json:"instance_id"`
	Platform     string `json:"platform"`
}

// ValidateResponse ответ сервера лицензий
type ValidateResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    LicenseData `json:"data"`
}

// LicenseData данные лицензии из ответа
type LicenseData struct {
	LicenseKey string `json:"license_key"`
	Customer   string `json:"customer"`
	Source     string `json:"source"`
	ValidUntil string `json:"valid_until"` // YYYY-MM-DD или пусто
}
