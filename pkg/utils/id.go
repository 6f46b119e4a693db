package utils

import "strconv"

// NextID 按集合当前长度分配 id：prefix + (size+1)。
// 与现有数据文件保持一致；集合若出现删除，会与已有 id 冲突。
func NextID(prefix string, size int) string {
	return prefix + strconv.Itoa(size+1)
}
