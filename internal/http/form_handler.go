package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"softsell-api/internal/domain"
	"softsell-api/internal/service"
)

// FormHandler expone los formularios del sitio.
type FormHandler struct {
	logger   *zap.Logger
	forms    *service.FormService
	maxBytes int64
}

func NewFormHandler(logger *zap.Logger, forms *service.FormService, maxUploadBytes int64) *FormHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &FormHandler{
		logger:   logger,
		forms:    forms,
		maxBytes: maxUploadBytes,
	}
}

// SubmitContact maneja POST /forms/contact.
func (h *FormHandler) SubmitContact(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Company string `json:"company" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid contact request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	res, err := h.forms.SubmitContact(c.Request.Context(), service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Message: req.Message,
	})
	h.respond(c, "contact", res, err)
}

// SubmitLicenseUpload maneja POST /forms/license-uploads (multipart).
func (h *FormHandler) SubmitLicenseUpload(c *gin.Context) {
	// Margen para los campos de texto ademas del archivo.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+1<<20)

	var req struct {
		LicenseType    string `form:"licenseType" binding:"required"`
		LicenseKey     string `form:"licenseKey" binding:"required"`
		AdditionalInfo string `form:"additionalInfo"`
	}
	if err := c.ShouldBind(&req); err != nil {
		if isBodyTooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "license file too large"})
			return
		}
		h.logger.Warn("invalid license upload request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	in := service.LicenseUploadInput{
		LicenseType:    req.LicenseType,
		LicenseKey:     req.LicenseKey,
		AdditionalInfo: req.AdditionalInfo,
	}

	header, err := c.FormFile("licenseFile")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// archivo opcional
	case isBodyTooLarge(err):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "license file too large"})
		return
	case err != nil:
		h.logger.Warn("invalid license file", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid license file"})
		return
	default:
		if header.Size > h.maxBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "license file too large"})
			return
		}
		f, err := header.Open()
		if err != nil {
			h.logger.Error("open license file failed", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid license file"})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			h.logger.Error("read license file failed", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid license file"})
			return
		}
		in.File = &service.FileInput{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	res, err := h.forms.SubmitLicenseUpload(c.Request.Context(), in)
	h.respond(c, "license upload", res, err)
}

// SubmitValuation maneja POST /forms/valuations.
func (h *FormHandler) SubmitValuation(c *gin.Context) {
	var req struct {
		SoftwareName string `json:"software_name" binding:"required"`
		Version      string `json:"version" binding:"required"`
		Quantity     int    `json:"quantity" binding:"required,min=1"`
		PurchaseDate string `json:"purchase_date" binding:"required"`
		ContactEmail string `json:"contact_email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid valuation request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	res, err := h.forms.SubmitValuation(c.Request.Context(), service.ValuationInput{
		SoftwareName: req.SoftwareName,
		Version:      req.Version,
		Quantity:     req.Quantity,
		PurchaseDate: req.PurchaseDate,
		ContactEmail: req.ContactEmail,
	})
	h.respond(c, "valuation", res, err)
}

// SubmitPayment maneja POST /forms/payments.
func (h *FormHandler) SubmitPayment(c *gin.Context) {
	var req struct {
		FullName       string `json:"full_name" binding:"required"`
		CompanyName    string `json:"company_name" binding:"required"`
		PaymentMethod  string `json:"payment_method" binding:"required,oneof=bankTransfer paypal check crypto"`
		PaymentDetails string `json:"payment_details" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid payment request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	res, err := h.forms.SubmitPayment(c.Request.Context(), service.PaymentInput{
		FullName:       req.FullName,
		CompanyName:    req.CompanyName,
		PaymentMethod:  req.PaymentMethod,
		PaymentDetails: req.PaymentDetails,
	})
	h.respond(c, "payment", res, err)
}

func (h *FormHandler) respond(c *gin.Context, form string, res domain.SubmissionResult, err error) {
	if err != nil {
		if errors.Is(err, service.ErrFormInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("form submission failed", zap.String("form", form), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not submit " + form})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"result": res})
}

func isBodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
