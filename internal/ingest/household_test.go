package ingest

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "Date;Time;Global_active_power;Global_reactive_power;Voltage;Global_intensity;Sub_metering_1;Sub_metering_2;Sub_metering_3\n"

func TestHouseholdParser_Parse(t *testing.T) {
	input := header +
		"16/12/2006;17:24:00;4.216;0.418;234.840;18.400;0.000;1.000;17.000\n" +
		"16/12/2006;17:25:00;5.360;0.436;233.630;23.000;0.000;1.000;16.000\n"

	readings, stats, err := (&HouseholdParser{}).Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, 2, stats.Rows)
	assert.Equal(t, 2, stats.Kept())

	r := readings[0]
	assert.Equal(t, time.Date(2006, 12, 16, 17, 24, 0, 0, time.UTC), r.Timestamp)
	assert.InDelta(t, 4.216, r.GlobalActivePower, 1e-9)
	assert.InDelta(t, 0.418, r.GlobalReactivePower, 1e-9)
	assert.InDelta(t, 234.84, r.Voltage, 1e-9)
	assert.InDelta(t, 18.4, r.GlobalIntensity, 1e-9)
	assert.InDelta(t, 0.0, r.SubMetering1, 1e-9)
	assert.InDelta(t, 1.0, r.SubMetering2, 1e-9)
	assert.InDelta(t, 17.0, r.SubMetering3, 1e-9)
}

func TestHouseholdParser_DropsPlaceholderRows(t *testing.T) {
	input := header +
		"16/12/2006;17:24:00;4.216;0.418;234.840;18.400;0.000;1.000;17.000\n" +
		"16/12/2006;17:25:00;?;?;?;?;?;?;?\n" +
		"16/12/2006;17:26:00;5.374;0.498;233.290;23.000;0.000;2.000;\n" +
		"16/12/2006;17:27:00;5.388;0.502;nan;23.000;0.000;1.000;17.000\n"

	readings, stats, err := (&HouseholdParser{}).Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, 4, stats.Rows)
	assert.Equal(t, 3, stats.MissingValue)
	assert.Equal(t, 0, stats.BadTimestamp)
}

func TestHouseholdParser_DropsBadTimestamps(t *testing.T) {
	input := header +
		"31/2/2007;00:01:00;2.552;0.100;241.750;10.400;0.000;0.000;0.000\n" +
		"2007-01-01;00:01:00;2.552;0.100;241.750;10.400;0.000;0.000;0.000\n" +
		";00:01:00;2.552;0.100;241.750;10.400;0.000;0.000;0.000\n" +
		"1/1/2007;00:02:00;2.550;0.100;241.640;10.400;0.000;0.000;0.000\n"

	readings, stats, err := (&HouseholdParser{}).Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, 3, stats.BadTimestamp)
	assert.Equal(t, time.Date(2007, 1, 1, 0, 2, 0, 0, time.UTC), readings[0].Timestamp)
}

func TestHouseholdParser_ColumnsByName(t *testing.T) {
	input := "Time;Date;Extra;Sub_metering_3;Sub_metering_2;Sub_metering_1;Global_intensity;Voltage;Global_reactive_power;Global_active_power\n" +
		"17:24:00;16/12/2006;x;17;1;0;18.4;234.84;0.418;4.216\n"

	readings, _, err := (&HouseholdParser{}).Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.InDelta(t, 4.216, readings[0].GlobalActivePower, 1e-9)
	assert.InDelta(t, 17.0, readings[0].SubMetering3, 1e-9)
}

func TestHouseholdParser_MissingColumn(t *testing.T) {
	input := "Date;Time;Global_active_power\n16/12/2006;17:24:00;4.216\n"

	_, _, err := (&HouseholdParser{}).Parse(strings.NewReader(input))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), "Global_reactive_power")
}

func TestHouseholdParser_EmptyInput(t *testing.T) {
	_, _, err := (&HouseholdParser{}).Parse(strings.NewReader(""))
	assert.Error(t, err)
}

func TestLoadFile_SampleFile(t *testing.T) {
	readings, stats, err := LoadFile("../../testdata/household_sample.txt")

	require.NoError(t, err)
	assert.Equal(t, 10, stats.Rows)
	assert.Equal(t, 1, stats.MissingValue)
	assert.Equal(t, 1, stats.BadTimestamp)
	require.Len(t, readings, 8)

	for _, r := range readings {
		assert.False(t, r.Timestamp.IsZero())
		assert.Greater(t, r.Voltage, 0.0)
	}
	assert.Equal(t, time.Date(2007, 1, 1, 0, 0, 0, 0, time.UTC), readings[6].Timestamp)
}

func TestLoadFile_NotFound(t *testing.T) {
	_, _, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadFile_NoUsableRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	content := header + "16/12/2006;17:24:00;?;?;?;?;?;?;?\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, stats, err := LoadFile(path)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoUsableRows))
	assert.Equal(t, 1, stats.Rows)
}

func TestHouseholdParser_StrayQuoteDropsOnlyThatRow(t *testing.T) {
	input := header +
		"16/12/2006;17:24:00;4.216;0.418;234.840;18.400;0.000;1.000;17.000\n" +
		"16/12/2006;17:25:00;4\"2;0.436;233.630;23.000;0.000;1.000;16.000\n" +
		"16/12/2006;17:26:00;5.374;0.498;233.290;23.000;0.000;2.000;17.000\n"

	readings, stats, err := (&HouseholdParser{}).Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, 3, stats.Rows)
	assert.Equal(t, 1, stats.MissingValue)
	assert.Equal(t, 2, stats.Kept())
	assert.Equal(t, time.Date(2006, 12, 16, 17, 26, 0, 0, time.UTC), readings[1].Timestamp)
}

func TestHouseholdParser_DropsInfinities(t *testing.T) {
	input := header +
		"16/12/2006;17:24:00;4.216;0.418;234.840;18.400;0.000;1.000;17.000\n" +
		"16/12/2006;17:25:00;inf;0.436;233.630;23.000;0.000;1.000;16.000\n" +
		"16/12/2006;17:26:00;5.374;-Infinity;233.290;23.000;0.000;2.000;17.000\n" +
		"16/12/2006;17:27:00;5.388;0.502;233.740;+Inf;0.000;1.000;17.000\n"

	readings, stats, err := (&HouseholdParser{}).Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, 3, stats.MissingValue)
	assert.InDelta(t, 4.216, readings[0].GlobalActivePower, 1e-9)
}
