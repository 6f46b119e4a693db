package domain

import "time"

const RolePatient = "patient"

type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"` // stored as-is, never returned
	Role      string `json:"role"`               // "patient" / "doctor" / ...
	CreatedAt string `json:"createdAt"`          // 原样保存，新用户写 ISO 8601 毫秒 UTC
}

// TimeLayout createdAt 的写入格式，例如 2024-05-01T08:00:00.000Z
const TimeLayout = "2006-01-02T15:04:05.000Z"

// FormatTime 按 TimeLayout 输出 UTC 时间
func FormatTime(t time.Time) string { return t.UTC().Format(TimeLayout) }

// WithoutCredential 返回去掉密码的副本（对外响应只用它）
func (u User) WithoutCredential() User {
	u.Password = ""
	return u
}
