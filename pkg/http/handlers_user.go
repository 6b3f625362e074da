package http

import (
	"net/http"
	"strconv"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
	"github.com/gin-gonic/gin"
	"roomsense.io/room-comfort-service/pkg/comfort"
)

type RegisterUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

var registerUserRequestSchema = z.Struct(z.Shape{
	"Username": z.String().Required(),
	"Password": z.String().Required(),
	"Email":    z.String().Required(),
})

func (rs *RestfulServer) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := registerUserRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	profile, err := rs.Comfort.User.Register(c.Request.Context(), &comfort.UserAuthInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		replyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

var loginRequestSchema = z.Struct(z.Shape{
	"Username": z.String().Required(),
	"Password": z.String().Required(),
})

func (rs *RestfulServer) LoginUser(c *gin.Context) {
	var req LoginRequest
	if err := loginRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	profile, err := rs.Comfort.User.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		replyError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

var refreshRequestSchema = z.Struct(z.Shape{
	"RefreshToken": z.String().Required(),
})

func (rs *RestfulServer) RefreshUser(c *gin.Context) {
	var req RefreshRequest
	if err := refreshRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	profile, err := rs.Comfort.User.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		replyError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (rs *RestfulServer) GetUsername(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id must be an integer"})
		return
	}

	username, err := rs.Comfort.User.UsernameByID(c.Request.Context(), uint(userID))
	if err != nil {
		replyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"username": username})
}

func (rs *RestfulServer) GetUserProfile(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id must be an integer"})
		return
	}

	profile, err := rs.Comfort.User.Profile(c.Request.Context(), uint(userID))
	if err != nil {
		replyError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

type UsernameUpdateRequest struct {
	Username string `json:"username"`
	Version  int    `json:"version"`
}

var usernameUpdateRequestSchema = z.Struct(z.Shape{
	"Username": z.String().Required(),
	"Version":  z.Int().Required(),
})

func (rs *RestfulServer) PutUsername(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id must be an integer"})
		return
	}

	var req UsernameUpdateRequest
	if err := usernameUpdateRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	profile, err := rs.Comfort.User.ChangeUsername(
		c.Request.Context(), uint(userID), req.Username, int64(req.Version))
	if err != nil {
		replyError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
