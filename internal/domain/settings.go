package domain

import "time"

// GeneralSettings is the site identity shown on every page.
type GeneralSettings struct {
	ID                string    `json:"id" db:"id"`
	SiteName          string    `json:"site_name" db:"site_name" validate:"required"`
	Logo              string    `json:"logo" db:"logo"`
	Favicon           string    `json:"favicon" db:"favicon"`
	FooterDescription string    `json:"footer_description" db:"footer_description"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultGeneralSettings is served until an admin saves real settings.
func DefaultGeneralSettings() GeneralSettings {
	return GeneralSettings{
		SiteName: "Animate Me",
		Logo:     "/logo.png",
		Favicon:  "/favicon.png",
	}
}

// Page keys for the content blocks stored in page_content.
const (
	PageHome          = "home"
	PageServices      = "services"
	PagePortfolio     = "portfolio"
	PageTestimonials  = "testimonials"
	PageContact       = "contact"
	PageQuote         = "quote"
	PageCaseStudies   = "case_studies"
	PageBlog          = "blog"
	PageAbout         = "about"
	PageDisclaimer    = "disclaimer"
	PagePrivacyPolicy = "privacy_policy"
	PageEstore        = "estore"
)

// PageKeys lists every editable page block.
var PageKeys = []string{
	PageHome, PageServices, PagePortfolio, PageTestimonials, PageContact, PageQuote,
	PageCaseStudies, PageBlog, PageAbout, PageDisclaimer, PagePrivacyPolicy, PageEstore,
}

// IsPageKey reports whether key names a known page block.
func IsPageKey(key string) bool {
	for _, k := range PageKeys {
		if k == key {
			return true
		}
	}
	return false
}

// PageContent is the free-form text block behind one public page.
type PageContent struct {
	Page      string                 `json:"page" db:"page" validate:"required"`
	Content   map[string]interface{} `json:"content" db:"content"`
	CreatedAt time.Time              `json:"created_at" db:"created_at"`
	UpdatedAt time.Time              `json:"updated_at" db:"updated_at"`
}

// BankAccountDetails is shown on the checkout page for manual transfers.
type BankAccountDetails struct {
	Name          string `json:"name"`
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
	IFSCCode      string `json:"ifsc_code"`
}

// PaymentSettings configures the manual checkout flow.
type PaymentSettings struct {
	ID                 string             `json:"id" db:"id"`
	WhatsAppNumber     string             `json:"whatsapp_number" db:"whatsapp_number"`
	UPIID              string             `json:"upi_id" db:"upi_id"`
	QRCodeURL          string             `json:"qr_code_url" db:"qr_code_url"`
	BankAccountDetails BankAccountDetails `json:"bank_account_details" db:"bank_account_details"`
	CreatedAt          time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" db:"updated_at"`
}
