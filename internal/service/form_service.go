package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"softsell-api/internal/domain"
	"softsell-api/internal/email"
	"softsell-api/internal/repository"
)

var (
	ErrFormServiceNotConfigured = errors.New("form service not configured")
	ErrFormInvalid              = errors.New("form invalid")
	ErrFormPersist              = errors.New("form persist failed")
)

// bcrypt ignora todo lo que pase de 72 bytes.
const maxLicenseKeyLen = 72

var allowedLicenseFileExt = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".txt":  true,
}

// FormService reemplaza los envios simulados del sitio: valida, persiste,
// avisa al equipo y devuelve un resultado explicito.
type FormService struct {
	logger     *zap.Logger
	contacts   repository.ContactRepository
	uploads    repository.LicenseUploadRepository
	valuations repository.ValuationRepository
	payments   repository.PaymentRepository
	notifier   email.Notifier
	maxFile    int64
	now        func() time.Time
}

func NewFormService(
	logger *zap.Logger,
	contacts repository.ContactRepository,
	uploads repository.LicenseUploadRepository,
	valuations repository.ValuationRepository,
	payments repository.PaymentRepository,
	notifier email.Notifier,
	maxFileBytes int64,
) *FormService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = email.NewDisabledSender("")
	}
	if maxFileBytes <= 0 {
		maxFileBytes = 10 << 20
	}
	return &FormService{
		logger:     logger,
		contacts:   contacts,
		uploads:    uploads,
		valuations: valuations,
		payments:   payments,
		notifier:   notifier,
		maxFile:    maxFileBytes,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

type ContactInput struct {
	Name    string
	Email   string
	Company string
	Message string
}

type LicenseUploadInput struct {
	LicenseType    string
	LicenseKey     string
	AdditionalInfo string
	File           *FileInput
}

type FileInput struct {
	Name        string
	ContentType string
	Data        []byte
}

type ValuationInput struct {
	SoftwareName string
	Version      string
	Quantity     int
	PurchaseDate string
	ContactEmail string
}

type PaymentInput struct {
	FullName       string
	CompanyName    string
	PaymentMethod  string
	PaymentDetails string
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrFormInvalid, fmt.Sprintf(format, args...))
}

func (s *FormService) SubmitContact(ctx context.Context, in ContactInput) (domain.SubmissionResult, error) {
	if s == nil || s.contacts == nil {
		return domain.SubmissionResult{}, ErrFormServiceNotConfigured
	}
	req := domain.ContactRequest{
		Name:    singleLine(in.Name),
		Email:   normalizeEmail(in.Email),
		Company: singleLine(in.Company),
		Message: strings.TrimSpace(in.Message),
	}
	if req.Name == "" || req.Company == "" || req.Message == "" {
		return domain.SubmissionResult{}, invalid("name, company and message are required")
	}
	if !validEmail(req.Email) {
		return domain.SubmissionResult{}, invalid("email is invalid")
	}
	req.ID = uuid.NewString()
	req.CreatedAt = s.now()

	if err := s.contacts.Create(ctx, req); err != nil {
		return domain.SubmissionResult{}, fmt.Errorf("%w: contact: %v", ErrFormPersist, err)
	}

	s.notify(ctx, email.Notification{
		Subject: "New contact request from " + req.Name,
		Body:    fmt.Sprintf("Name: %s\nEmail: %s\nCompany: %s\n\n%s\n", req.Name, req.Email, req.Company, req.Message),
		ReplyTo: req.Email,
	})

	return domain.SubmissionResult{
		ID:          req.ID,
		Kind:        domain.SubmissionContact,
		Title:       "Message sent!",
		Description: "We'll get back to you as soon as possible.",
	}, nil
}

func (s *FormService) SubmitLicenseUpload(ctx context.Context, in LicenseUploadInput) (domain.SubmissionResult, error) {
	if s == nil || s.uploads == nil {
		return domain.SubmissionResult{}, ErrFormServiceNotConfigured
	}
	licenseType := singleLine(in.LicenseType)
	licenseKey := strings.TrimSpace(in.LicenseKey)
	if licenseType == "" || licenseKey == "" {
		return domain.SubmissionResult{}, invalid("license type and license key are required")
	}
	if len(licenseKey) > maxLicenseKeyLen {
		return domain.SubmissionResult{}, invalid("license key is too long")
	}

	var file *domain.LicenseFile
	if in.File != nil {
		f, err := s.validateFile(*in.File)
		if err != nil {
			return domain.SubmissionResult{}, err
		}
		file = f
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(licenseKey), bcrypt.DefaultCost)
	if err != nil {
		return domain.SubmissionResult{}, fmt.Errorf("hash license key: %w", err)
	}

	upload := domain.LicenseUpload{
		ID:             uuid.NewString(),
		LicenseType:    licenseType,
		LicenseKeyHash: string(hash),
		LicenseKeyHint: licenseKeyHint(licenseKey),
		AdditionalInfo: strings.TrimSpace(in.AdditionalInfo),
		File:           file,
		CreatedAt:      s.now(),
	}
	if err := s.uploads.Create(ctx, upload); err != nil {
		return domain.SubmissionResult{}, fmt.Errorf("%w: license upload: %v", ErrFormPersist, err)
	}

	body := fmt.Sprintf("License type: %s\nLicense key: %s\n", upload.LicenseType, upload.LicenseKeyHint)
	if file != nil {
		body += fmt.Sprintf("File: %s (%d bytes)\n", file.Name, file.Size)
	}
	if upload.AdditionalInfo != "" {
		body += "\n" + upload.AdditionalInfo + "\n"
	}
	s.notify(ctx, email.Notification{
		Subject: "New license upload: " + upload.LicenseType,
		Body:    body,
	})

	return domain.SubmissionResult{
		ID:          upload.ID,
		Kind:        domain.SubmissionUpload,
		Title:       "License uploaded successfully!",
		Description: "We'll review your license and provide a valuation within 24 hours.",
	}, nil
}

func (s *FormService) SubmitValuation(ctx context.Context, in ValuationInput) (domain.SubmissionResult, error) {
	if s == nil || s.valuations == nil {
		return domain.SubmissionResult{}, ErrFormServiceNotConfigured
	}
	req := domain.ValuationRequest{
		SoftwareName: singleLine(in.SoftwareName),
		Version:      singleLine(in.Version),
		Quantity:     in.Quantity,
		ContactEmail: normalizeEmail(in.ContactEmail),
	}
	if req.SoftwareName == "" || req.Version == "" {
		return domain.SubmissionResult{}, invalid("software name and version are required")
	}
	if req.Quantity < 1 {
		return domain.SubmissionResult{}, invalid("quantity must be at least 1")
	}
	if !validEmail(req.ContactEmail) {
		return domain.SubmissionResult{}, invalid("contact email is invalid")
	}
	purchase, err := time.Parse(time.DateOnly, strings.TrimSpace(in.PurchaseDate))
	if err != nil {
		return domain.SubmissionResult{}, invalid("purchase date must be YYYY-MM-DD")
	}
	now := s.now()
	if purchase.After(now) {
		return domain.SubmissionResult{}, invalid("purchase date is in the future")
	}
	req.PurchaseDate = purchase
	req.ID = uuid.NewString()
	req.CreatedAt = now

	if err := s.valuations.Create(ctx, req); err != nil {
		return domain.SubmissionResult{}, fmt.Errorf("%w: valuation: %v", ErrFormPersist, err)
	}

	s.notify(ctx, email.Notification{
		Subject: fmt.Sprintf("Valuation request: %s %s x%d", req.SoftwareName, req.Version, req.Quantity),
		Body: fmt.Sprintf("Software: %s\nVersion: %s\nQuantity: %d\nPurchased: %s\nContact: %s\n",
			req.SoftwareName, req.Version, req.Quantity, req.PurchaseDate.Format(time.DateOnly), req.ContactEmail),
		ReplyTo: req.ContactEmail,
	})

	return domain.SubmissionResult{
		ID:          req.ID,
		Kind:        domain.SubmissionValuation,
		Title:       "Valuation request submitted!",
		Description: "We'll analyze your license details and provide a valuation within 24 hours.",
	}, nil
}

func (s *FormService) SubmitPayment(ctx context.Context, in PaymentInput) (domain.SubmissionResult, error) {
	if s == nil || s.payments == nil {
		return domain.SubmissionResult{}, ErrFormServiceNotConfigured
	}
	details := domain.PaymentDetails{
		FullName:       singleLine(in.FullName),
		CompanyName:    singleLine(in.CompanyName),
		PaymentMethod:  strings.TrimSpace(in.PaymentMethod),
		PaymentDetails: strings.TrimSpace(in.PaymentDetails),
	}
	if details.FullName == "" || details.CompanyName == "" || details.PaymentDetails == "" {
		return domain.SubmissionResult{}, invalid("full name, company name and payment details are required")
	}
	if !validPaymentMethod(details.PaymentMethod) {
		return domain.SubmissionResult{}, invalid("payment method %q is not supported", details.PaymentMethod)
	}
	details.ID = uuid.NewString()
	details.CreatedAt = s.now()

	if err := s.payments.Create(ctx, details); err != nil {
		return domain.SubmissionResult{}, fmt.Errorf("%w: payment: %v", ErrFormPersist, err)
	}

	// Los datos de pago no viajan por correo.
	s.notify(ctx, email.Notification{
		Subject: "Payment details submitted by " + details.CompanyName,
		Body:    fmt.Sprintf("Name: %s\nCompany: %s\nMethod: %s\nReference: %s\n", details.FullName, details.CompanyName, details.PaymentMethod, details.ID),
	})

	return domain.SubmissionResult{
		ID:          details.ID,
		Kind:        domain.SubmissionPayment,
		Title:       "Payment details submitted!",
		Description: "We'll process your payment within 3 business days.",
	}, nil
}

func (s *FormService) validateFile(in FileInput) (*domain.LicenseFile, error) {
	name := filepath.Base(strings.TrimSpace(in.Name))
	if name == "" || name == "." || name == "/" {
		return nil, invalid("license file name is required")
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedLicenseFileExt[ext] {
		return nil, invalid("license file type %q is not allowed", ext)
	}
	size := int64(len(in.Data))
	if size == 0 {
		return nil, invalid("license file is empty")
	}
	if size > s.maxFile {
		return nil, invalid("license file exceeds %d bytes", s.maxFile)
	}
	return &domain.LicenseFile{
		Name:        name,
		ContentType: strings.TrimSpace(in.ContentType),
		Size:        size,
		Data:        in.Data,
	}, nil
}

// notify no hace fallar el envio: el formulario ya quedo guardado.
func (s *FormService) notify(ctx context.Context, n email.Notification) {
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn("form notification failed", zap.String("subject", n.Subject), zap.Error(err))
	}
}

// singleLine colapsa saltos de linea y espacios repetidos. Estos campos
// terminan en el asunto del correo.
func singleLine(v string) string {
	return strings.Join(strings.Fields(v), " ")
}

func normalizeEmail(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func validEmail(v string) bool {
	if v == "" {
		return false
	}
	addr, err := mail.ParseAddress(v)
	return err == nil && addr.Address == v
}

func validPaymentMethod(m string) bool {
	switch m {
	case domain.PaymentBankTransfer, domain.PaymentPayPal, domain.PaymentCheck, domain.PaymentCrypto:
		return true
	}
	return false
}

func licenseKeyHint(key string) string {
	r := []rune(key)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	return strings.Repeat("*", len(r)-4) + string(r[len(r)-4:])
}
