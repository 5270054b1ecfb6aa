package domain

import "time"

type ContactRequest struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// LicenseUpload nunca guarda la clave en texto plano: solo hash y sufijo.
type LicenseUpload struct {
	ID             string       `json:"id"`
	LicenseType    string       `json:"license_type"`
	LicenseKeyHash string       `json:"-"`
	LicenseKeyHint string       `json:"license_key_hint"`
	AdditionalInfo string       `json:"additional_info,omitempty"`
	File           *LicenseFile `json:"file,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

type LicenseFile struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Data        []byte `json:"-"`
}

type ValuationRequest struct {
	ID           string    `json:"id"`
	SoftwareName string    `json:"software_name"`
	Version      string    `json:"version"`
	Quantity     int       `json:"quantity"`
	PurchaseDate time.Time `json:"purchase_date"`
	ContactEmail string    `json:"contact_email"`
	CreatedAt    time.Time `json:"created_at"`
}

const (
	PaymentBankTransfer = "bankTransfer"
	PaymentPayPal       = "paypal"
	PaymentCheck        = "check"
	PaymentCrypto       = "crypto"
)

type PaymentDetails struct {
	ID             string    `json:"id"`
	FullName       string    `json:"full_name"`
	CompanyName    string    `json:"company_name"`
	PaymentMethod  string    `json:"payment_method"`
	PaymentDetails string    `json:"payment_details"`
	CreatedAt      time.Time `json:"created_at"`
}

type SubmissionKind string

const (
	SubmissionContact   SubmissionKind = "contact"
	SubmissionUpload    SubmissionKind = "license_upload"
	SubmissionValuation SubmissionKind = "valuation"
	SubmissionPayment   SubmissionKind = "payment"
)

// SubmissionResult es la respuesta explicita de exito de un formulario.
type SubmissionResult struct {
	ID          string         `json:"id"`
	Kind        SubmissionKind `json:"kind"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
}
