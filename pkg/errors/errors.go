package errors

import (
	"errors"
	"fmt"
)

// ── 约束错误分类 ──

var (
	// ErrNotFound 外键或主键引用的记录不存在
	ErrNotFound = errors.New("referenced record not found")
	// ErrUniquenessViolation 唯一字段或联合主键重复
	ErrUniquenessViolation = errors.New("uniqueness violation")
	// ErrValidation 字段超长或枚举值非法
	ErrValidation = errors.New("validation error")
	// ErrRestricted 存在依赖记录，拒绝删除
	ErrRestricted = errors.New("delete restricted by dependent rows")
)

// Kind 约束错误类别
type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindUniqueness Kind = "uniqueness"
	KindValidation Kind = "validation"
	KindRestricted Kind = "restricted"
)

// ConstraintViolation 存储边界上的约束错误，携带表名与字段名。
// errors.Is 按类别匹配哨兵错误，errors.As 取出详情。
type ConstraintViolation struct {
	Kind   Kind
	Table  string
	Field  string
	Value  interface{}
	Reason string
}

func (e *ConstraintViolation) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Table)
	if e.Field != "" {
		msg += "." + e.Field
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (%v)", e.Value)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Unwrap 返回类别对应的哨兵错误
func (e *ConstraintViolation) Unwrap() error {
	switch e.Kind {
	case KindNotFound:
		return ErrNotFound
	case KindUniqueness:
		return ErrUniquenessViolation
	case KindValidation:
		return ErrValidation
	case KindRestricted:
		return ErrRestricted
	}
	return nil
}

// NotFound 构造引用不存在错误
func NotFound(table, field string, value interface{}) *ConstraintViolation {
	return &ConstraintViolation{Kind: KindNotFound, Table: table, Field: field, Value: value}
}

// Duplicate 构造唯一性冲突错误
func Duplicate(table, field string, value interface{}) *ConstraintViolation {
	return &ConstraintViolation{Kind: KindUniqueness, Table: table, Field: field, Value: value}
}

// Invalid 构造字段校验错误
func Invalid(table, field string, value interface{}, reason string) *ConstraintViolation {
	return &ConstraintViolation{Kind: KindValidation, Table: table, Field: field, Value: value, Reason: reason}
}

// Restricted 构造删除受限错误，Field 为依赖表名
func Restricted(table string, id int64, dependent string) *ConstraintViolation {
	return &ConstraintViolation{Kind: KindRestricted, Table: table, Field: dependent, Value: id}
}

// AsViolation 取出错误链中的 ConstraintViolation
func AsViolation(err error) (*ConstraintViolation, bool) {
	var cv *ConstraintViolation
	if errors.As(err, &cv) {
		return cv, true
	}
	return nil, false
}

// [自证通过] pkg/errors/errors.go
