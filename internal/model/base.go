package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ── JSON 列自定义类型 ──

// StringList 以 JSON 数组存储的字符串列表（PostgreSQL JSONB / SQLite TEXT）
type StringList []string

// Scan 将数据库中的 JSON 文本解析为 []string
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("StringList.Scan: unsupported type %T", src)
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("StringList.Scan: %w", err)
	}
	*l = out
	return nil
}

// Value 将 []string 序列化为 JSON 文本，nil 写为 []
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Contains 是否包含指定元素
func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

// OperationalHours 区域运营时段，格式 HH:MM
type OperationalHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Scan 实现 sql.Scanner
func (h *OperationalHours) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("OperationalHours.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(raw, h)
}

// Value 实现 driver.Valuer
func (h OperationalHours) Value() (driver.Value, error) {
	b, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// newID 由应用生成主键，SQLite 与 PostgreSQL 行为一致
func newID(id *string) {
	if *id == "" {
		*id = uuid.New().String()
	}
}

// All 返回需要建表的全部模型（按外键依赖排序）
func All() []interface{} {
	return []interface{}{
		&Employee{},
		&ProductionArea{},
		&ProcessStep{},
		&ProductionOrder{},
		&ShiftAssignment{},
		&ProductionAlert{},
	}
}
