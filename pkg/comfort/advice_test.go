package comfort

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomsense.io/room-comfort-service/pkg/common"
	"roomsense.io/room-comfort-service/pkg/models"
	_ "roomsense.io/room-comfort-service/pkg/testing"
)

func testThresholds() map[string]EffectiveThreshold {
	return map[string]EffectiveThreshold{
		"temperature": {
			Low:         common.Ptr(18.0),
			High:        common.Ptr(25.0),
			LowMessage:  "Too cold",
			HighMessage: "Too hot",
		},
		"humidity": {
			Low:         common.Ptr(40.0),
			High:        common.Ptr(60.0),
			LowMessage:  "Too dry",
			HighMessage: "Too humid",
		},
		"gas": {
			High:        common.Ptr(30.0),
			HighMessage: "Gas detected",
		},
	}
}

func TestBuildAdvice_OrderAndSensorFallback(t *testing.T) {
	// DHT absent: the BME values must be evaluated instead
	reading := &models.Reading{
		TemperatureBme: common.Ptr(10.0),
		HumidityBme:    common.Ptr(90.0),
		GasDetected:    common.Ptr(true),
	}

	msgs := BuildAdvice(reading, testThresholds())
	assert.Equal(t, []string{"Too cold", "Too humid", "Gas detected"}, msgs)
}

func TestBuildAdvice_DhtPreferredOverBme(t *testing.T) {
	// DHT says nominal, BME says too hot: DHT wins
	reading := &models.Reading{
		TemperatureDht: common.Ptr(22.0),
		TemperatureBme: common.Ptr(35.0),
	}

	msgs := BuildAdvice(reading, testThresholds())
	assert.Empty(t, msgs)
}

func TestBuildAdvice_GasPrecedence(t *testing.T) {
	eff := testThresholds()

	// raised boolean dominates a nominal analog value
	msgs := BuildAdvice(&models.Reading{
		GasDetected:      common.Ptr(true),
		Mq2AnalogPercent: common.Ptr(0.0),
	}, eff)
	assert.Equal(t, []string{"Gas detected"}, msgs)

	// boolean low: the analog percentage is evaluated against the high bound
	msgs = BuildAdvice(&models.Reading{
		GasDetected:      common.Ptr(false),
		Mq2AnalogPercent: common.Ptr(55.0),
	}, eff)
	assert.Equal(t, []string{"Gas detected"}, msgs)

	msgs = BuildAdvice(&models.Reading{
		GasDetected:      common.Ptr(false),
		Mq2AnalogPercent: common.Ptr(10.0),
	}, eff)
	assert.Empty(t, msgs)
}

func TestBuildAdvice_MissingPiecesStayQuiet(t *testing.T) {
	// no sensor values at all
	msgs := BuildAdvice(&models.Reading{}, testThresholds())
	assert.Empty(t, msgs)

	// bound present but message blank
	eff := map[string]EffectiveThreshold{
		"temperature": {High: common.Ptr(25.0)},
	}
	msgs = BuildAdvice(&models.Reading{TemperatureDht: common.Ptr(30.0)}, eff)
	assert.Empty(t, msgs)

	// value present but bound missing
	eff = map[string]EffectiveThreshold{
		"temperature": {HighMessage: "Too hot"},
	}
	msgs = BuildAdvice(&models.Reading{TemperatureDht: common.Ptr(30.0)}, eff)
	assert.Empty(t, msgs)
}

func TestJoinAdvice(t *testing.T) {
	assert.Equal(t, "Too hot. Too humid.", joinAdvice([]string{"Too hot!", "Too humid."}))
	assert.Equal(t, "Too cold.", joinAdvice([]string{" Too cold? "}))
	assert.Equal(t, AllNominalMessage+".", joinAdvice(nil))
	assert.Equal(t, AllNominalMessage+".", joinAdvice([]string{"...", "  "}))
}

func TestComputeLatestAdvice_AdjustedBoundary(t *testing.T) {
	common.SetTestLoggerNop()

	comfortObj := GetTestComfortWithMemorySqliteDialector(t)
	ctx := context.Background()

	user := createTestUser(t, comfortObj)
	own := createTestOwnership(t, comfortObj, user.ID, "studio")

	// shift the temperature ceiling from the default 25 to 28
	_, err := comfortObj.Threshold.ApplyAbsolute(ctx, own.ChipID, []AbsoluteAdjustment{
		{ParameterName: "temperature", Low: common.Ptr(18.0), High: common.Ptr(28.0)},
	})
	require.NoError(t, err)

	createTestReading(t, comfortObj, own.ChipID, func(r *models.Reading) {
		r.TemperatureDht = common.Ptr(27.0)
	})

	advice, err := comfortObj.Advice.ComputeLatestAdvice(ctx, own.ChipID)
	require.NoError(t, err)
	assert.Equal(t, own.ChipID, advice.ChipID)
	assert.Equal(t, "studio", advice.RoomName)
	assert.Equal(t, []string{AllNominalMessage}, advice.Messages)

	createTestReading(t, comfortObj, own.ChipID, func(r *models.Reading) {
		r.TemperatureDht = common.Ptr(29.0)
		r.CreatedAt = time.Now().UTC().Add(time.Second)
	})

	advice, err = comfortObj.Advice.ComputeLatestAdvice(ctx, own.ChipID)
	require.NoError(t, err)
	require.Len(t, advice.Messages, 1)
	assert.Contains(t, advice.Messages[0], "hot")
}

func TestSaveAdviceForReading_AtMostOnce(t *testing.T) {
	common.SetTestLoggerNop()

	comfortObj := GetTestComfortWithMemorySqliteDialector(t)
	ctx := context.Background()

	user := createTestUser(t, comfortObj)
	own := createTestOwnership(t, comfortObj, user.ID, "attic")

	// ingestion already persists the recommendation
	_, err := comfortObj.Reading.SaveReading(ctx, &models.Reading{
		ChipID:         own.ChipID,
		TemperatureDht: common.Ptr(30.0),
	})
	require.NoError(t, err)

	result, err := comfortObj.Advice.SaveLatestAdvice(ctx, own.ChipID)
	require.NoError(t, err)
	assert.False(t, result.Saved)
	assert.Equal(t, 1, result.Count)

	var count int64
	require.NoError(t, comfortObj.Db.Conn.
		Model(&models.Recommendation{}).
		Where("ownership_id = ?", own.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSaveAdviceForReading_UnregisteredChip(t *testing.T) {
	common.SetTestLoggerNop()

	comfortObj := GetTestComfortWithMemorySqliteDialector(t)
	ctx := context.Background()

	reading := createTestReading(t, comfortObj, "chip-without-owner", nil)

	_, err := comfortObj.Advice.SaveAdviceForReading(ctx, reading)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdviceHistory(t *testing.T) {
	common.SetTestLoggerNop()

	comfortObj := GetTestComfortWithMemorySqliteDialector(t)
	ctx := context.Background()

	user := createTestUser(t, comfortObj)
	own := createTestOwnership(t, comfortObj, user.ID, "cellar")

	for i := 0; i < 3; i++ {
		reading := createTestReading(t, comfortObj, own.ChipID, func(r *models.Reading) {
			r.TemperatureDht = common.Ptr(30.0)
			r.CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Second)
		})
		_, err := comfortObj.Advice.SaveAdviceForReading(ctx, reading)
		require.NoError(t, err)
	}

	entries, err := comfortObj.Advice.AdviceHistory(ctx, own.ChipID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for _, entry := range entries {
		assert.Equal(t, "cellar", entry.RoomName)
		assert.NotEmpty(t, entry.Recommendation)
	}
	assert.True(t, entries[0].CreatedAt.After(entries[2].CreatedAt))

	// take below 1 is clamped to a single entry
	entries, err = comfortObj.Advice.AdviceHistory(ctx, own.ChipID, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	// readings older than the 7-day window fall out
	old := createTestReading(t, comfortObj, own.ChipID, func(r *models.Reading) {
		r.TemperatureDht = common.Ptr(30.0)
		r.CreatedAt = time.Now().UTC().AddDate(0, 0, -8)
	})
	_, err = comfortObj.Advice.SaveAdviceForReading(ctx, old)
	require.NoError(t, err)

	entries, err = comfortObj.Advice.AdviceHistory(ctx, own.ChipID, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
