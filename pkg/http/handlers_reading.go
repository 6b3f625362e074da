package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"roomsense.io/room-comfort-service/pkg/comfort"
	"roomsense.io/room-comfort-service/pkg/models"
)

// ReadingRequest mirrors the ESP32 telemetry payload. Every sensor field is
// optional: a chip only sends what it has wired up.
type ReadingRequest struct {
	ChipID             string   `json:"chipId"`
	TemperatureDht     *float64 `json:"temperatureDht"`
	HumidityDht        *float64 `json:"humidityDht"`
	TemperatureBme     *float64 `json:"temperatureBme"`
	HumidityBme        *float64 `json:"humidityBme"`
	GasDetected        *bool    `json:"gasDetected"`
	Mq2Analog          *int     `json:"mq2Analog"`
	Mq2AnalogPercent   *float64 `json:"mq2AnalogPercent"`
	Light              *string  `json:"light"`
	LightAnalog        *int     `json:"lightAnalog"`
	LightAnalogPercent *float64 `json:"lightAnalogPercent"`
	Pressure           *float64 `json:"pressure"`
	Altitude           *float64 `json:"altitude"`
}

type ReadingResponse struct {
	ID                 uint      `json:"id"`
	ChipID             string    `json:"chipId"`
	TemperatureDht     *float64  `json:"temperatureDht"`
	HumidityDht        *float64  `json:"humidityDht"`
	TemperatureBme     *float64  `json:"temperatureBme"`
	HumidityBme        *float64  `json:"humidityBme"`
	GasDetected        *bool     `json:"gasDetected"`
	Mq2Analog          *int      `json:"mq2Analog"`
	Mq2AnalogPercent   *float64  `json:"mq2AnalogPercent"`
	Light              *string   `json:"light"`
	LightAnalog        *int      `json:"lightAnalog"`
	LightAnalogPercent *float64  `json:"lightAnalogPercent"`
	Pressure           *float64  `json:"pressure"`
	Altitude           *float64  `json:"altitude"`
	CreatedAt          time.Time `json:"createdAt"`
	RoomName           string    `json:"roomName,omitempty"`
}

func mapReadingResponse(r *models.Reading, roomName string) ReadingResponse {
	return ReadingResponse{
		ID:                 r.ID,
		ChipID:             r.ChipID,
		TemperatureDht:     r.TemperatureDht,
		HumidityDht:        r.HumidityDht,
		TemperatureBme:     r.TemperatureBme,
		HumidityBme:        r.HumidityBme,
		GasDetected:        r.GasDetected,
		Mq2Analog:          r.Mq2Analog,
		Mq2AnalogPercent:   r.Mq2AnalogPercent,
		Light:              r.Light,
		LightAnalog:        r.LightAnalog,
		LightAnalogPercent: r.LightAnalogPercent,
		Pressure:           r.Pressure,
		Altitude:           r.Altitude,
		CreatedAt:          r.CreatedAt,
		RoomName:           roomName,
	}
}

func (rs *RestfulServer) PostReading(c *gin.Context) {
	var req ReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chipID := comfort.NormalizeChipID(req.ChipID)
	if !rs.CheckChipLimiter(chipID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	id, err := rs.Comfort.Reading.SaveReading(c.Request.Context(), &models.Reading{
		ChipID:             req.ChipID,
		TemperatureDht:     req.TemperatureDht,
		HumidityDht:        req.HumidityDht,
		TemperatureBme:     req.TemperatureBme,
		HumidityBme:        req.HumidityBme,
		GasDetected:        req.GasDetected,
		Mq2Analog:          req.Mq2Analog,
		Mq2AnalogPercent:   req.Mq2AnalogPercent,
		Light:              req.Light,
		LightAnalog:        req.LightAnalog,
		LightAnalogPercent: req.LightAnalogPercent,
		Pressure:           req.Pressure,
		Altitude:           req.Altitude,
	})
	if err != nil {
		replyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reading saved", "id": id})
}

func (rs *RestfulServer) GetLatestReading(c *gin.Context) {
	chipID := c.Param("chip_id")

	latest, err := rs.Comfort.Reading.LatestReading(c.Request.Context(), chipID)
	if err != nil {
		replyError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapReadingResponse(&latest.Reading, latest.RoomName))
}

func (rs *RestfulServer) GetReadingHistory(c *gin.Context) {
	chipID := c.Param("chip_id")

	take, err := strconv.Atoi(c.DefaultQuery("take", "100"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "take must be an integer"})
		return
	}

	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be RFC3339"})
			return
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be RFC3339"})
			return
		}
		to = &t
	}

	readings, err := rs.Comfort.Reading.ReadingHistory(c.Request.Context(), chipID, from, to, take)
	if err != nil {
		replyError(c, err)
		return
	}

	responses := make([]ReadingResponse, 0, len(readings))
	for i := range readings {
		responses = append(responses, mapReadingResponse(&readings[i], ""))
	}
	c.JSON(http.StatusOK, responses)
}
