package comfort

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomsense.io/room-comfort-service/pkg/common"
	"roomsense.io/room-comfort-service/pkg/models"
	_ "roomsense.io/room-comfort-service/pkg/testing"
)

func TestEffectiveThresholds_BaseDefaults(t *testing.T) {
	common.SetTestLoggerNop()

	comfortObj := GetTestComfortWithMemorySqliteDialector(t)
	ctx := context.Background()

	eff, err := comfortObj.Threshold.EffectiveThresholds(ctx, nil)
	require.NoError(t, err)

	temperature := eff["temperature"]
	require.NotNil(t, temperature.Low)
	require.NotNil(t, temperature.High)
	assert.Equal(t, 18.0, *temperature.Low)
	assert.Equal(t, 25.0, *temperature.High)

	humidity := eff["humidity"]
	require.NotNil(t, humidity.Low)
	require.NotNil(t, humidity.High)
	assert.Equal(t, 40.0, *humidity.Low)
	assert.Equal(t, 60.0, *humidity.High)

	gas := eff["gas"]
	assert.Nil(t, gas.Low)
	require.NotNil(t, gas.High)
	assert.Equal(t, 30.0, *gas.High)
	assert.Empty(t, gas.LowMessage)
	assert.NotEmpty(t, gas.HighMessage)
}

func TestApplyAbsolute_ConvertsToDeltas(t *testing.T) {
	common.SetTestLoggerNop()

	comfortObj := GetTestComfortWithMemorySqliteDialector(t)
	ctx := context.Background()

	user := createTestUser(t, comfortObj)
	own := createTestOwnership(t, comfortObj, user.ID, "living room")

	result, err := comfortObj.Threshold.ApplyAbsolute(ctx, own.ChipID, []AbsoluteAdjustment{
		{ParameterName: "temperature", Low: common.Ptr(18.0), High: common.Ptr(28.0)},
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	item := result.Items[0]
	assert.Equal(t, "temperature", item.ParameterName)
	assert.Equal(t, 0.0, item.LowDelta)
	assert.Equal(t, 3.0, item.HighDelta)
	assert.Equal(t, int64(1), item.Version)
	require.NotNil(t, item.EffectiveHigh)
	assert.Equal(t, 28.0, *item.EffectiveHigh)

	// the effective view for the chip reflects the shifted bound
	settings, err := comfortObj.Threshold.EffectiveByChip(ctx, own.ChipID)
	require.NoError(t, err)
	for _, s := range settings {
		if s.ParameterName == "temperature" {
			require.NotNil(t, s.High)
			assert.Equal(t, 28.0, *s.High)
		}
	}

	// a second apply replaces the delta and bumps the version
	result, err = comfortObj.Threshold.ApplyAbsolute(ctx, own.ChipID, []AbsoluteAdjustment{
		{ParameterName: "temperature", Low: common.Ptr(16.0), High: common.Ptr(28.0)},
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, -2.0, result.Items[0].LowDelta)
	assert.Equal(t, int64(2), result.Items[0].Version)
}

func TestApplyAbsolute_NilBaseStaysNil(t *testing.T) {
	common.SetTestLoggerNop()

	comfortObj := GetTestComfortWithMemorySqliteDialector(t)
	ctx := context.Background()

	user := createTestUser(t, comfortObj)
	own := createTestOwnership(t, comfortObj, user.ID, "kitchen")

	// gas has no low base bound: an absolute low cannot adjust it into existence
	result, err := comfortObj.Threshold.ApplyAbsolute(ctx, own.ChipID, []AbsoluteAdjustment{
		{ParameterName: "gas", Low: common.Ptr(5.0), High: common.Ptr(35.0)},
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	item := result.Items[0]
	assert.Equal(t, 0.0, item.LowDelta)
	assert.Equal(t, 5.0, item.HighDelta)
	assert.Nil(t, item.EffectiveLow)
	require.NotNil(t, item.EffectiveHigh)
	assert.Equal(t, 35.0, *item.EffectiveHigh)

	eff, err := comfortObj.Threshold.EffectiveThresholds(ctx, &Scope{UserID: user.ID, OwnershipID: own.ID})
	require.NoError(t, err)
	assert.Nil(t, eff["gas"].Low)
}

func TestApplyAbsolute_UnknownParameterSkipped(t *testing.T) {
	common.SetTestLoggerNop()

	comfortObj := GetTestComfortWithMemorySqliteDialector(t)
	ctx := context.Background()

	user := createTestUser(t, comfortObj)
	own := createTestOwnership(t, comfortObj, user.ID, "office")

	result, err := comfortObj.Threshold.ApplyAbsolute(ctx, own.ChipID, []AbsoluteAdjustment{
		{ParameterName: "co2", Low: common.Ptr(1.0), High: common.Ptr(2.0)},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Items)

	_, err = comfortObj.Threshold.ApplyAbsolute(ctx, own.ChipID, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateAdjustment_PreconditionFlow(t *testing.T) {
	common.SetTestLoggerNop()

	comfortObj := GetTestComfortWithMemorySqliteDialector(t)
	ctx := context.Background()

	user := createTestUser(t, comfortObj)
	own := createTestOwnership(t, comfortObj, user.ID, "bedroom")

	_, err := comfortObj.Threshold.ApplyAbsolute(ctx, own.ChipID, []AbsoluteAdjustment{
		{ParameterName: "humidity", Low: common.Ptr(45.0), High: common.Ptr(65.0)},
	})
	require.NoError(t, err)

	adj, tag, err := comfortObj.Threshold.GetAdjustment(ctx, own.ChipID, "humidity")
	require.NoError(t, err)
	assert.Equal(t, int64(1), adj.Version)
	assert.Equal(t, fmt.Sprintf("\"%d-%d-%d-1\"", adj.UserID, adj.ThresholdID, adj.OwnershipID), tag)

	// missing precondition
	_, err = comfortObj.Threshold.UpdateAdjustment(ctx, own.ChipID, "humidity", common.Ptr(1.0), nil, "")
	assert.ErrorIs(t, err, ErrPreconditionRequired)

	// stale precondition mutates nothing
	_, err = comfortObj.Threshold.UpdateAdjustment(ctx, own.ChipID, "humidity", common.Ptr(1.0), nil, "\"0-0-0-99\"")
	assert.ErrorIs(t, err, ErrPreconditionFailed)

	unchanged, _, err := comfortObj.Threshold.GetAdjustment(ctx, own.ChipID, "humidity")
	require.NoError(t, err)
	assert.Equal(t, adj.LowDelta, unchanged.LowDelta)
	assert.Equal(t, int64(1), unchanged.Version)

	// matching precondition bumps the version by exactly one
	outcome, err := comfortObj.Threshold.UpdateAdjustment(ctx, own.ChipID, "humidity", common.Ptr(1.0), common.Ptr(5.0), tag)
	require.NoError(t, err)
	assert.True(t, outcome.Changed)
	assert.Equal(t, fmt.Sprintf("\"%d-%d-%d-2\"", adj.UserID, adj.ThresholdID, adj.OwnershipID), outcome.Tag)

	// a no-op write keeps the tag and the version
	again, err := comfortObj.Threshold.UpdateAdjustment(ctx, own.ChipID, "humidity", common.Ptr(1.0), common.Ptr(5.0), outcome.Tag)
	require.NoError(t, err)
	assert.False(t, again.Changed)
	assert.Equal(t, outcome.Tag, again.Tag)

	final, _, err := comfortObj.Threshold.GetAdjustment(ctx, own.ChipID, "humidity")
	require.NoError(t, err)
	assert.Equal(t, int64(2), final.Version)
	assert.Equal(t, 1.0, final.LowDelta)
	assert.Equal(t, 5.0, final.HighDelta)
}

func TestGetAdjustment_NotFoundCases(t *testing.T) {
	common.SetTestLoggerNop()

	comfortObj := GetTestComfortWithMemorySqliteDialector(t)
	ctx := context.Background()

	_, _, err := comfortObj.Threshold.GetAdjustment(ctx, "no-such-chip", "temperature")
	assert.ErrorIs(t, err, ErrNotFound)

	user := createTestUser(t, comfortObj)
	own := createTestOwnership(t, comfortObj, user.ID, "den")

	_, _, err = comfortObj.Threshold.GetAdjustment(ctx, own.ChipID, "co2")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = comfortObj.Threshold.GetAdjustment(ctx, own.ChipID, "temperature")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertThreshold(t *testing.T) {
	common.SetTestLoggerNop()

	comfortObj := GetTestComfortWithMemorySqliteDialector(t)
	ctx := context.Background()

	err := comfortObj.Threshold.UpsertThreshold(ctx, &models.Threshold{
		Name:        "CO2",
		High:        common.Ptr(1000.0),
		HighMessage: "CO2 level is high, ventilate the room",
	})
	require.NoError(t, err)

	eff, err := comfortObj.Threshold.EffectiveThresholds(ctx, nil)
	require.NoError(t, err)

	// names are stored lower-cased
	co2, ok := eff["co2"]
	require.True(t, ok)
	require.NotNil(t, co2.High)
	assert.Equal(t, 1000.0, *co2.High)

	// upserting the same name overwrites in place
	err = comfortObj.Threshold.UpsertThreshold(ctx, &models.Threshold{
		Name:        "co2",
		High:        common.Ptr(1200.0),
		HighMessage: "CO2 level is high, ventilate the room",
	})
	require.NoError(t, err)

	eff, err = comfortObj.Threshold.EffectiveThresholds(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, *eff["co2"].High)

	err = comfortObj.Threshold.UpsertThreshold(ctx, &models.Threshold{Name: "  "})
	assert.ErrorIs(t, err, ErrValidation)
}
