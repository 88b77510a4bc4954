package commit

import (
	"github.com/utkarsh5026/grut/pkg/common/err"
)

const pkgName = "commit"

func corrupt(op, message string, cause error) error {
	return err.New(pkgName, err.CodeCorruptHistory, op, message, cause)
}

func invalid(op, message string, cause error) error {
	return err.New(pkgName, err.CodeInvalidInput, op, message, cause)
}
