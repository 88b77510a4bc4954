package diff

import (
	"github.com/utkarsh5026/grut/pkg/common/err"
)

const pkgName = "diff"

func corruptHistory(op, message string, cause error) error {
	return err.New(pkgName, err.CodeCorruptHistory, op, message, cause)
}

func wrap(cause error, op string) error {
	return err.Wrap(cause, pkgName, op)
}
