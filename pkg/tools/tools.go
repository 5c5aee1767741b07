package tools

import (
	"crypto/md5"
	"encoding/hex"
	"net"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/xid"
)

// RandId 生成随机短ID，用于作业ID等场景
func RandId() string {
	return xid.New().String()
}

// GenerateUUID 生成32位十六进制UUID（不带连字符）
// 数据库各资源表的 uuid 字段统一使用该格式
func GenerateUUID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// Md5Hash 计算字符串的MD5十六进制摘要
// 磁盘唯一标识由分区UUID与设备链接ID拼接后经此函数生成
func Md5Hash(s string) string {
	if s == "" {
		return ""
	}
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// ExtractIPFromInstance 从instance字符串中提取IP地址
// 支持格式: "10.10.217.225:22" -> "10.10.217.225"
// 如果已经是IP格式，直接返回；输入为空返回空字符串
func ExtractIPFromInstance(instance string) string {
	if instance == "" {
		return ""
	}

	if strings.Contains(instance, ":") {
		parts := strings.Split(instance, ":")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}

	return strings.TrimSpace(instance)
}

// IsPrivateAddress 判断IP地址是否为内网地址
// IP记录的类型（内网/外网）由地址自动推导，不允许调用方指定
func IsPrivateAddress(address string) bool {
	ip := net.ParseIP(strings.TrimSpace(address))
	if ip == nil {
		return false
	}
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast()
}

// LeadingInt 取字符串开头的整数部分，例如 "500 GB" -> 500
// 无法解析时返回 0
func LeadingInt(s string) int {
	s = strings.TrimSpace(s)
	n := 0
	seen := false
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		seen = true
		n = n*10 + int(c-'0')
	}
	if !seen {
		return 0
	}
	return n
}
