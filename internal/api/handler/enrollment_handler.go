package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sudhanthirapriya/face-recognition-project/internal/api/metrics"
	"github.com/sudhanthirapriya/face-recognition-project/internal/core/domain"
	"github.com/sudhanthirapriya/face-recognition-project/internal/core/ports"
)

// EnrollmentHandler handles the multipart registration endpoint.
type EnrollmentHandler struct {
	service ports.EnrollmentService
}

func NewEnrollmentHandler(service ports.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: service}
}

// registerRequest mirrors the multipart form fields; the photo travels as a
// file part and is validated separately.
type registerRequest struct {
	Name       string `form:"name"        validate:"required"`
	DOB        string `form:"dob"         validate:"required"`
	Email      string `form:"email"       validate:"required,email"`
	BloodGroup string `form:"blood_group" validate:"required"`
	Phone      string `form:"phone"       validate:"required"`
	Password   string `form:"password"    validate:"required,min=6"`
}

// statusResponse is the envelope shared by the registration and login
// endpoints: a status keyword plus a human-readable message.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	// IdentityID is set when a new identity was created.
	IdentityID string `json:"identity_id,omitempty"`
	// Phone carries the already-enrolled phone number on a duplicate-face hit.
	Phone string `json:"phone,omitempty"`
}

// Register enrolls a new identity from a multipart form.
//
// @Summary      Register a new identity with a face photo
// @Tags         enrollment
// @Accept       multipart/form-data
// @Produce      json
// @Param        name         formData  string  true   "Full name"
// @Param        dob          formData  string  true   "Date of birth"
// @Param        email        formData  string  true   "Email address"
// @Param        blood_group  formData  string  true   "Blood group"
// @Param        phone        formData  string  true   "Phone number (login key)"
// @Param        password     formData  string  true   "Password"
// @Param        photo        formData  file    true   "Face photo"
// @Success      200  {object}  statusResponse
// @Failure      400  {object}  statusResponse
// @Failure      413  {object}  map[string]string
// @Router       /register [post]
func (h *EnrollmentHandler) Register(c echo.Context) error {
	start := time.Now()

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return h.reject(c, start, "validation_error", "invalid form payload")
	}
	if err := c.Validate(&req); err != nil {
		return h.reject(c, start, "validation_error", err.Error())
	}

	photo, err := readPhoto(c)
	if err != nil {
		return h.reject(c, start, "validation_error", "photo is required")
	}

	result, err := h.service.Enroll(c.Request().Context(), ports.EnrollInput{
		Name:          req.Name,
		DOB:           req.DOB,
		Email:         req.Email,
		BloodGroup:    req.BloodGroup,
		Phone:         req.Phone,
		Password:      req.Password,
		Photo:         photo.data,
		PhotoFilename: photo.filename,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			return h.reject(c, start, "validation_error", "Please provide all required fields.")
		case errors.Is(err, domain.ErrInvalidImage):
			return h.reject(c, start, "image_error", "The uploaded photo could not be processed.")
		case errors.Is(err, domain.ErrPhoneExists):
			return h.reject(c, start, "duplicate_phone", "This phone number is already registered.")
		default:
			h.observe(start, "error")
			return err
		}
	}

	switch result.Outcome {
	case ports.OutcomeDuplicateFace:
		h.observe(start, "duplicate_face")
		return c.JSON(http.StatusOK, statusResponse{
			Status:  "info",
			Message: fmt.Sprintf("Image found in the database. The phone number is %s.", result.MatchedPhone),
			Phone:   result.MatchedPhone,
		})
	default:
		h.observe(start, "created")
		return c.JSON(http.StatusOK, statusResponse{
			Status:     "success",
			Message:    "Registration successful. You can now log in with your phone number and password.",
			IdentityID: result.IdentityID,
		})
	}
}

func (h *EnrollmentHandler) reject(c echo.Context, start time.Time, result, message string) error {
	h.observe(start, result)
	return c.JSON(http.StatusBadRequest, statusResponse{Status: "danger", Message: message})
}

func (h *EnrollmentHandler) observe(start time.Time, result string) {
	metrics.EnrollmentsTotal.WithLabelValues(result).Inc()
	metrics.EnrollmentDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}

type uploadedPhoto struct {
	data     []byte
	filename string
}

func readPhoto(c echo.Context) (*uploadedPhoto, error) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return nil, err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("empty photo upload")
	}

	return &uploadedPhoto{data: data, filename: fileHeader.Filename}, nil
}
