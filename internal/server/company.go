package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	companydomain "github.com/JohnBartlett/bluejay-acct/internal/company/domain"
)

type updateCompanyRequest struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	LogoText *string `json:"logo_text"`
}

// @Summary      Get Company
// @Description  Get the issuing company profile
// @Tags         company
// @Accept       json
// @Produce      json
// @Success      200  {object}  companydomain.Company
// @Router       /company [get]
func (s *Server) GetCompany(c *gin.Context) {
	resp, err := s.companySvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Company
// @Description  Update the issuing company profile, creating it on first write
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        request body updateCompanyRequest true "Update Company Request"
// @Success      200  {object}  companydomain.Company
// @Router       /company [put]
func (s *Server) UpdateCompany(c *gin.Context) {
	var req updateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.companySvc.Update(c.Request.Context(), companydomain.UpdateCompanyRequest{
		Name:     req.Name,
		Address:  req.Address,
		Email:    req.Email,
		Phone:    req.Phone,
		LogoText: req.LogoText,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
