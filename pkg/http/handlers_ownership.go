package http

import (
	"net/http"
	"strconv"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
	"github.com/gin-gonic/gin"
	"roomsense.io/room-comfort-service/pkg/comfort"
)

type OwnershipRequest struct {
	UserID    int    `json:"userId"`
	ChipID    string `json:"chipId"`
	RoomName  string `json:"roomName"`
	ImageName string `json:"imageName"`
}

var ownershipRequestSchema = z.Struct(z.Shape{
	"UserID":    z.Int().Required(),
	"ChipID":    z.String().Required(),
	"RoomName":  z.String().Required(),
	"ImageName": z.String().Required(),
})

func (rs *RestfulServer) RegisterOwnership(c *gin.Context) {
	var req OwnershipRequest
	if err := ownershipRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	room, err := rs.Comfort.Ownership.Register(c.Request.Context(), &comfort.OwnershipInput{
		UserID:    uint(req.UserID),
		ChipID:    req.ChipID,
		RoomName:  req.RoomName,
		ImageName: req.ImageName,
	})
	if err != nil {
		replyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, room)
}

// OwnershipUpdateRequest distinguishes "not supplied" (nil) from "supplied
// blank" (validation error), so it binds with pointers instead of a zog
// schema.
type OwnershipUpdateRequest struct {
	ChipID    string  `json:"chipId"`
	RoomName  *string `json:"roomName"`
	ImageName *string `json:"imageName"`
}

func (rs *RestfulServer) UpdateOwnership(c *gin.Context) {
	var req OwnershipUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := rs.Comfort.Ownership.Update(c.Request.Context(), &comfort.OwnershipUpdate{
		ChipID:    req.ChipID,
		RoomName:  req.RoomName,
		ImageName: req.ImageName,
	}, c.GetHeader("If-Match"))
	if err != nil {
		replyError(c, err)
		return
	}

	c.Header("ETag", outcome.Tag)
	c.Status(http.StatusNoContent)
}

func (rs *RestfulServer) DeleteOwnership(c *gin.Context) {
	chipID := c.Param("chip_id")
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id must be an integer"})
		return
	}

	if err := rs.Comfort.Ownership.Delete(c.Request.Context(), chipID, uint(userID)); err != nil {
		replyError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (rs *RestfulServer) GetRooms(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id must be an integer"})
		return
	}

	rooms, err := rs.Comfort.Ownership.RoomsByUser(c.Request.Context(), uint(userID))
	if err != nil {
		replyError(c, err)
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// SyncOwnership is the ESP-facing conditional GET: the chip polls with its
// last ETag and usually gets a cheap 304 back. Validators are sent on every
// response, including the 304.
func (rs *RestfulServer) SyncOwnership(c *gin.Context) {
	chipID := c.Param("chip_id")

	sync, err := rs.Comfort.Ownership.SyncForChip(c.Request.Context(), chipID)
	if err != nil {
		replyError(c, err)
		return
	}

	c.Header("ETag", sync.ETag)
	c.Header("Last-Modified", sync.LastModified.Format(http.TimeFormat))
	c.Header("Cache-Control", "no-store, no-cache, must-revalidate")
	c.Header("Pragma", "no-cache")

	if c.GetHeader("If-None-Match") == sync.ETag {
		c.Status(http.StatusNotModified)
		return
	}

	c.JSON(http.StatusOK, sync)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	chipID := comfort.NormalizeChipID(c.Param("chip_id"))

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(chipID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}
