package repo

import (
	"testing"
	"time"

	"cmdb/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkCreateKeepsOneRowPerPartition(t *testing.T) {
	entry := newTestEntry(t)

	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	points := []models.MonitorData{
		{Instance: "h1", Metric: "m-usage", Value: 0.2, ExtraFlag: "/dev/vda1", Time: now},
		{Instance: "h1", Metric: "m-usage", Value: 0.8, ExtraFlag: "/dev/vdb1", Time: now},
	}
	require.NoError(t, entry.MonitorData().BulkCreate(points))

	got, count, err := entry.MonitorData().List("h1", "m-usage", time.Time{}, time.Time{}, models.Page{})
	require.NoError(t, err)
	require.EqualValues(t, 2, count, "同一时刻的每个分区都应各占一行")

	flags := []string{got[0].ExtraFlag, got[1].ExtraFlag}
	assert.ElementsMatch(t, []string{"/dev/vda1", "/dev/vdb1"}, flags)
}

func TestBulkCreateSkipsReplayedPoints(t *testing.T) {
	entry := newTestEntry(t)

	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	points := []models.MonitorData{
		{Instance: "h1", Metric: "m-load", Value: 0.75, Time: now},
		{Instance: "h1", Metric: "m-usage", Value: 0.2, ExtraFlag: "/dev/vda1", Time: now},
	}
	require.NoError(t, entry.MonitorData().BulkCreate(points))
	// 同一批次重放不报错也不产生新行
	require.NoError(t, entry.MonitorData().BulkCreate(points))

	_, count, err := entry.MonitorData().List("h1", "", time.Time{}, time.Time{}, models.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count, "重放不应产生重复行")
}

func TestBulkCreateEmptyBatch(t *testing.T) {
	entry := newTestEntry(t)
	require.NoError(t, entry.MonitorData().BulkCreate(nil))
}
