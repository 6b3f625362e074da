package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"roomsense.io/room-comfort-service/pkg/comfort"
)

func (rs *RestfulServer) GetEffectiveSettings(c *gin.Context) {
	chipID := c.Param("chip_id")

	settings, err := rs.Comfort.Threshold.EffectiveByChip(c.Request.Context(), chipID)
	if err != nil {
		replyError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

type AdjustmentResponse struct {
	LowDelta  float64 `json:"lowDelta"`
	HighDelta float64 `json:"highDelta"`
	Version   int64   `json:"version"`
}

func (rs *RestfulServer) GetAdjustment(c *gin.Context) {
	chipID := c.Param("chip_id")
	parameter := c.Param("parameter")

	adj, tag, err := rs.Comfort.Threshold.GetAdjustment(c.Request.Context(), chipID, parameter)
	if err != nil {
		replyError(c, err)
		return
	}

	c.Header("ETag", tag)
	c.JSON(http.StatusOK, AdjustmentResponse{
		LowDelta:  adj.LowDelta,
		HighDelta: adj.HighDelta,
		Version:   adj.Version,
	})
}

type AdjustmentUpdateRequest struct {
	LowDelta  *float64 `json:"lowDelta"`
	HighDelta *float64 `json:"highDelta"`
}

func (rs *RestfulServer) PutAdjustment(c *gin.Context) {
	chipID := c.Param("chip_id")
	parameter := c.Param("parameter")

	var req AdjustmentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := rs.Comfort.Threshold.UpdateAdjustment(
		c.Request.Context(), chipID, parameter, req.LowDelta, req.HighDelta, c.GetHeader("If-Match"))
	if err != nil {
		replyError(c, err)
		return
	}

	c.Header("ETag", outcome.Tag)
	c.Status(http.StatusNoContent)
}

type AbsoluteAdjustmentRequest struct {
	Items []AbsoluteAdjustmentItem `json:"items"`
}

type AbsoluteAdjustmentItem struct {
	ParameterName string   `json:"parameterName"`
	Low           *float64 `json:"low"`
	High          *float64 `json:"high"`
}

func (rs *RestfulServer) PostAbsoluteAdjustments(c *gin.Context) {
	chipID := c.Param("chip_id")

	var req AbsoluteAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]comfort.AbsoluteAdjustment, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, comfort.AbsoluteAdjustment{
			ParameterName: item.ParameterName,
			Low:           item.Low,
			High:          item.High,
		})
	}

	result, err := rs.Comfort.Threshold.ApplyAbsolute(c.Request.Context(), chipID, items)
	if err != nil {
		replyError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (rs *RestfulServer) GetLatestAdvice(c *gin.Context) {
	chipID := c.Param("chip_id")

	advice, err := rs.Comfort.Advice.ComputeLatestAdvice(c.Request.Context(), chipID)
	if err != nil {
		replyError(c, err)
		return
	}

	c.JSON(http.StatusOK, advice)
}

func (rs *RestfulServer) SaveLatestAdvice(c *gin.Context) {
	chipID := c.Param("chip_id")

	result, err := rs.Comfort.Advice.SaveLatestAdvice(c.Request.Context(), chipID)
	if err != nil {
		replyError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (rs *RestfulServer) GetAdviceHistory(c *gin.Context) {
	chipID := c.Param("chip_id")

	take, err := strconv.Atoi(c.DefaultQuery("take", "50"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "take must be an integer"})
		return
	}

	entries, err := rs.Comfort.Advice.AdviceHistory(c.Request.Context(), chipID, take)
	if err != nil {
		replyError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
