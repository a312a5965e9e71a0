package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/shop-backend/models"
	"github.com/yashrajoria/shop-backend/validation"
)

// ValidationController checks form input field by field, without side
// effects, so a form can show messages as the user types.
type ValidationController struct{}

func NewValidationController() *ValidationController {
	return &ValidationController{}
}

func renderResults(c *gin.Context, results map[string]validation.Result) {
	valid := true
	for _, r := range results {
		valid = valid && r.Successful
	}
	c.JSON(http.StatusOK, gin.H{"valid": valid, "fields": results})
}

// Signup handles POST /validate/signup.
func (vc *ValidationController) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	renderResults(c, map[string]validation.Result{
		validation.FieldFirstName:       validation.ValidateName(req.FirstName),
		validation.FieldLastName:        validation.ValidateName(req.LastName),
		validation.FieldEmail:           validation.ValidateEmail(req.Email),
		validation.FieldPassword:        validation.ValidateSignupPassword(req.Password),
		validation.FieldConfirmPassword: validation.ValidateConfirmPassword(req.Password, req.ConfirmPassword),
	})
}

// Login handles POST /validate/login.
func (vc *ValidationController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	renderResults(c, map[string]validation.Result{
		validation.FieldEmail:    validation.ValidateEmail(req.Email),
		validation.FieldPassword: validation.ValidateLoginPassword(req.Password),
	})
}

// Address handles POST /validate/address.
func (vc *ValidationController) Address(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	renderResults(c, map[string]validation.Result{
		validation.FieldFirstName: validation.ValidateName(req.FirstName),
		validation.FieldLastName:  validation.ValidateName(req.LastName),
		validation.FieldStreet:    validation.ValidateStreet(req.Street),
		validation.FieldCity:      validation.ValidateCity(req.City),
		validation.FieldZipCode:   validation.ValidateZipCode(req.ZipCode),
	})
}
