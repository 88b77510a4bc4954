package index

import (
	"github.com/utkarsh5026/grut/pkg/common/err"
)

const pkgName = "index"

func corruptIndex(op, message string, cause error) error {
	return err.New(pkgName, err.CodeInvalidFormat, op, message, cause)
}

func invalidEntry(op, message string, cause error) error {
	return err.New(pkgName, err.CodeInvalidInput, op, message, cause)
}

func internal(op string, cause error) error {
	return err.New(pkgName, err.CodeInternal, op, "", cause)
}

func locked(op, path string) error {
	return err.New(pkgName, err.CodeAlreadyExists, op, "another process holds the lock "+path, nil)
}
