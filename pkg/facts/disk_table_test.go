package facts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDiskTable(t *testing.T) {
	raw := `/dev/vda1 52403200 10485760 41917440 20%
/dev/vdb1 104806400 52428800 52377600 50%`

	parsed, err := ParseDiskTable(raw)
	require.NoError(t, err)
	require.Len(t, parsed, 2)

	vda := parsed["/dev/vda1"]
	assert.InDelta(t, 10.0, vda.UsageGB, 0.01)
	assert.InDelta(t, 39.97, vda.AvailableGB, 0.01)
	assert.InDelta(t, 0.20, vda.UsedPercent, 0.0001)

	vdb := parsed["/dev/vdb1"]
	assert.InDelta(t, 50.0, vdb.UsageGB, 0.01)
	assert.InDelta(t, 0.50, vdb.UsedPercent, 0.0001)
}

// 使用率必须落在 [0,1] 区间，分区数等于记录组数
func TestParseDiskTablePercentRange(t *testing.T) {
	raw := "/dev/vda1 100 0 100 0%\n/dev/vdb1 100 100 0 100%\n/dev/vdc1 100 37 63 37%"

	parsed, err := ParseDiskTable(raw)
	require.NoError(t, err)
	require.Len(t, parsed, 3)
	for name, d := range parsed {
		assert.GreaterOrEqual(t, d.UsedPercent, 0.0, name)
		assert.LessOrEqual(t, d.UsedPercent, 1.0, name)
	}
}

// 空行和多余逗号在分组前过滤
func TestParseDiskTableNoise(t *testing.T) {
	raw := "\n\n/dev/vda1, 52403200, 10485760, 41917440, 20%,\n\n"

	parsed, err := ParseDiskTable(raw)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Contains(t, parsed, "/dev/vda1")
}

// 残缺记录是硬错误，不返回部分结果
func TestParseDiskTableMalformedGroup(t *testing.T) {
	raw := "/dev/vda1 52403200 10485760 41917440 20%\n/dev/vdb1 104806400 52428800"

	parsed, err := ParseDiskTable(raw)
	require.Error(t, err)
	assert.Nil(t, parsed)

	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestParseDiskTableBadNumber(t *testing.T) {
	raw := "/dev/vda1 52403200 abc 41917440 20%"

	_, err := ParseDiskTable(raw)
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestParseDiskTableEmpty(t *testing.T) {
	parsed, err := ParseDiskTable("")
	require.NoError(t, err)
	assert.Empty(t, parsed)
}

func TestDiskUsageField(t *testing.T) {
	d := DiskUsage{UsageGB: 1, AvailableGB: 2, UsedPercent: 0.3}

	v, ok := d.Field("disk_usage")
	require.True(t, ok)
	assert.Equal(t, 1.0, v)

	v, ok = d.Field("disk_avail")
	require.True(t, ok)
	assert.Equal(t, 2.0, v)

	v, ok = d.Field("disk_used_percent")
	require.True(t, ok)
	assert.Equal(t, 0.3, v)

	_, ok = d.Field("cpu_usage")
	assert.False(t, ok)
}
