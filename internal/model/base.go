package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// ── 逗号分隔 TEXT 自定义类型 ──

// StringList 以逗号分隔文本存储的字符串列表（课程关键词等），
// 实现 GORM Scanner/Valuer 接口。
type StringList []string

// Scan 将数据库返回的逗号分隔文本解析为 []string。
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var s string
	switch v := src.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return fmt.Errorf("StringList.Scan: unsupported type %T", src)
	}
	if s == "" {
		*l = StringList{}
		return nil
	}
	parts := strings.Split(s, ",")
	arr := make(StringList, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			arr = append(arr, p)
		}
	}
	*l = arr
	return nil
}

// Value 将 []string 序列化为逗号分隔文本。
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "", nil
	}
	return strings.Join(l, ","), nil
}

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
