package httpapi

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Amrit-pandey/airbnb-clone/internal/server/models"
	"github.com/Amrit-pandey/airbnb-clone/internal/server/services"
)

// maxUploadSize bounds a single uploaded photo.
const maxUploadSize = 32 << 20

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type placeRequest struct {
	ID string `json:"id"`
	models.ListingFields
}

type bookingRequest struct {
	Place          string    `json:"place" binding:"required"`
	CheckIn        time.Time `json:"checkIn" binding:"required"`
	CheckOut       time.Time `json:"checkOut" binding:"required"`
	NumberOfGuests int       `json:"numberOfGuests"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Price          int       `json:"price"`
}

type uploadByLinkRequest struct {
	Link string `json:"link" binding:"required,url"`
}

func (s *HTTPServer) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, "server is up and running")
}

func (s *HTTPServer) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "registered", "email", user.Email)
	c.JSON(http.StatusOK, user)
}

func (s *HTTPServer) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.setSessionCookie(c, token)
	c.JSON(http.StatusOK, user)
}

func (s *HTTPServer) handleLogout(c *gin.Context) {
	s.clearSessionCookie(c)
	c.JSON(http.StatusOK, true)
}

// handleProfile resolves the session to the stored user record. Anonymous
// callers get a null body, matching what the SPA expects on first load.
func (s *HTTPServer) handleProfile(c *gin.Context) {
	identity := identityFrom(c)
	if identity.IsAnonymous() {
		c.JSON(http.StatusOK, nil)
		return
	}

	user, err := s.users.Profile(c.Request.Context(), identity)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *HTTPServer) handleCreatePlace(c *gin.Context) {
	var req placeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := s.listings.Create(c.Request.Context(), identityFrom(c), req.ListingFields)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (s *HTTPServer) handleUpdatePlace(c *gin.Context) {
	var req placeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and fields are required"})
		return
	}

	listing, err := s.listings.Update(c.Request.Context(), identityFrom(c), req.ID, req.ListingFields)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (s *HTTPServer) handleUserPlaces(c *gin.Context) {
	result, err := s.listings.ListOwned(c.Request.Context(), identityFrom(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *HTTPServer) handleListAllPlaces(c *gin.Context) {
	result, err := s.listings.ListAll(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *HTTPServer) handleGetPlace(c *gin.Context) {
	listing, err := s.listings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (s *HTTPServer) handleCreateBooking(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := s.bookings.Create(c.Request.Context(), identityFrom(c), services.BookingFields{
		ListingID:      req.Place,
		CheckIn:        req.CheckIn,
		CheckOut:       req.CheckOut,
		NumberOfGuests: req.NumberOfGuests,
		GuestName:      req.Name,
		GuestPhone:     req.Phone,
		Price:          req.Price,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (s *HTTPServer) handleMyBookings(c *gin.Context) {
	result, err := s.bookings.ListMy(c.Request.Context(), identityFrom(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// handleUpload stores each multipart "photos" file in object storage and
// returns the public URLs in order.
func (s *HTTPServer) handleUpload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	urls := make([]string, 0)
	for _, fh := range form.File["photos"] {
		if fh.Size > maxUploadSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
			return
		}

		f, err := fh.Open()
		if err != nil {
			s.writeError(c, err)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			s.writeError(c, err)
			return
		}

		url, err := s.uploads.Upload(c.Request.Context(), data, fh.Filename, fh.Header.Get("Content-Type"))
		if err != nil {
			s.writeError(c, err)
			return
		}
		urls = append(urls, url)
	}

	c.JSON(http.StatusOK, urls)
}

func (s *HTTPServer) handleUploadByLink(c *gin.Context) {
	var req uploadByLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := s.uploads.UploadByLink(c.Request.Context(), req.Link)
	if err != nil {
		s.logger.Warn(c.Request.Context(), "upload by link failed", "err", err.Error())
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not fetch image"})
		return
	}
	c.JSON(http.StatusOK, url)
}
